package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphclip/pkg/blueprint"
	pkgio "github.com/matzehuels/graphclip/pkg/io"
	"github.com/matzehuels/graphclip/pkg/schema"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	var schemaOnly bool

	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Check that a document parses, migrates and validates",
		Long: `Validate parses FILE ("-" for stdin), migrates it to the current schema
version and checks its structure. Unless --schema-only is given, it then
pastes the document into a scratch graph and lists the nodes and
connections that would be skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			_, err = c.runValidate(cmd.Context(), args[0], data, !schemaOnly)
			return err
		},
	}

	cmd.Flags().BoolVar(&schemaOnly, "schema-only", false, "skip the trial paste against the node library")

	return cmd
}

// runValidate checks data and prints the result. With resolve set it also
// decodes the document into a scratch graph; the report is returned.
func (c *CLI) runValidate(ctx context.Context, name string, data []byte, resolve bool) (*pkgio.Report, error) {
	logger := loggerFromContext(ctx)

	doc, err := pkgio.Unmarshal(data)
	if err != nil {
		printError("%s is not a valid document", name)
		return nil, err
	}

	printSuccess("%s is valid", name)
	version := doc.Version()
	if version == "" {
		version = schema.CurrentVersion + " (assumed)"
	}
	printKeyValue("Version", version)
	if doc.Metadata != nil && doc.Metadata.ProducerVersion != "" {
		printKeyValue("Producer", doc.Metadata.ProducerVersion)
	}
	if doc.Metadata != nil && doc.Metadata.ExportDate != "" {
		printKeyValue("Exported", doc.Metadata.ExportDate)
	}
	printStats(doc.NodeCount(), doc.ConnectionCount())

	if !resolve {
		return nil, nil
	}
	dec, err := c.newDecoder()
	if err != nil {
		return nil, err
	}
	report, err := dec.Decode(blueprint.New(defaultGraphName), doc)
	if err != nil {
		return nil, fmt.Errorf("trial paste: %w", err)
	}
	printReport(report)
	logger.Debug("trial paste finished", "result", report.String())
	return report, nil
}
