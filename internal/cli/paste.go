package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphclip/pkg/blueprint"
	pkgio "github.com/matzehuels/graphclip/pkg/io"
)

// pasteOpts holds the flags of the paste command.
type pasteOpts struct {
	into   string // document to paste into; empty starts from an empty graph
	output string // output file; empty writes to stdout
	graph  string // name of the target graph
}

// pasteCommand creates the paste command.
//
// Without --into this is a round trip: the document is pasted into an empty
// graph and the graph is written back out, which shows exactly what the
// decoder restored.
func (c *CLI) pasteCommand() *cobra.Command {
	opts := pasteOpts{graph: defaultGraphName}

	cmd := &cobra.Command{
		Use:   "paste FILE",
		Short: "Paste a document into a graph and write the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var out io.Writer = cmd.OutOrStdout()
			if opts.output != "" {
				f, err := os.Create(opts.output)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}
			if err := c.runPaste(cmd, args[0], opts, out); err != nil {
				return err
			}
			if opts.output != "" {
				printSuccess("Pasted %s", args[0])
				printFile(opts.output)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.into, "into", "", "document to paste into (default: empty graph)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&opts.graph, "graph", opts.graph, "name of the target graph")

	return cmd
}

func (c *CLI) runPaste(cmd *cobra.Command, path string, opts pasteOpts, out io.Writer) error {
	logger := loggerFromContext(cmd.Context())
	prog := newProgress(logger)

	dec, err := c.newDecoder()
	if err != nil {
		return err
	}

	g := blueprint.New(opts.graph)
	if opts.into != "" {
		base, err := pkgio.ImportJSON(opts.into)
		if err != nil {
			return err
		}
		if _, err := dec.Restore(g, base); err != nil {
			return fmt.Errorf("load %s: %w", opts.into, err)
		}
	}

	data, err := readInput(cmd, path)
	if err != nil {
		return err
	}
	clip, err := pkgio.Unmarshal(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	report, err := dec.Paste(g, clip)
	if err != nil {
		return err
	}
	for _, issue := range report.Issues {
		logger.Warn("skipped", "subject", issue.Subject, "reason", issue.Message)
	}
	prog.done(fmt.Sprintf("Pasted %s", report))

	return pkgio.WriteJSON(g, pkgio.NewEncoder(c.codecOptions()...), out)
}
