package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/graphclip/pkg/io"
	"github.com/matzehuels/graphclip/pkg/render/nodelink"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPNG = "png"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file; the extension picks the format
	format   string // explicit format, overrides the extension
	detailed bool   // show pin categories and defaults
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Draw a document as a node-link diagram",
		Long: `Render draws the nodes and connections of FILE with Graphviz.

The output format follows the extension of --output (.dot, .svg, .png) or
--format. Without --output the DOT source is written to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := renderFormat(opts)
			if err != nil {
				return err
			}
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			doc, err := pkgio.Unmarshal(data)
			if err != nil {
				return err
			}

			prog := newProgress(loggerFromContext(cmd.Context()))
			out, err := renderDocument(nodelink.ToDOT(doc, nodelink.Options{Detailed: opts.detailed}), format)
			if err != nil {
				return err
			}
			if opts.output == "" {
				_, err := cmd.OutOrStdout().Write(out)
				return err
			}
			if err := os.WriteFile(opts.output, out, 0o644); err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Rendered %d nodes", doc.NodeCount()))
			printFile(opts.output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: DOT to stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: dot, svg, png")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show pin categories and default values")

	return cmd
}

// renderFormat picks the output format from the flags.
func renderFormat(opts renderOpts) (string, error) {
	format := strings.ToLower(opts.format)
	if format == "" && opts.output != "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(opts.output)), ".")
	}
	switch format {
	case "", "gv", formatDOT:
		return formatDOT, nil
	case formatSVG, formatPNG:
		return format, nil
	}
	return "", fmt.Errorf("unsupported render format %q (want dot, svg or png)", format)
}

func renderDocument(dot, format string) ([]byte, error) {
	switch format {
	case formatSVG:
		return nodelink.RenderSVG(dot)
	case formatPNG:
		return nodelink.RenderPNG(dot)
	}
	return []byte(dot), nil
}
