package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/graphclip/pkg/io"
	"github.com/matzehuels/graphclip/pkg/schema"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var nodeID string

	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Show the nodes of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			doc, err := pkgio.Unmarshal(data)
			if err != nil {
				return err
			}
			if nodeID == "" {
				fmt.Fprintln(cmd.OutOrStdout(), nodeTable(doc))
				printStats(doc.NodeCount(), doc.ConnectionCount())
				return nil
			}
			rec := doc.Node(nodeID)
			if rec == nil {
				return fmt.Errorf("no node %q in %s", nodeID, args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), nodeDetails(rec))
			return nil
		},
	}

	cmd.Flags().StringVar(&nodeID, "node", "", "show pins of the node with this id")

	return cmd
}

// nodeTable renders one row per node.
func nodeTable(doc *schema.Document) string {
	rows := make([][]string, 0, doc.NodeCount())
	for i := range doc.Graph.Nodes {
		n := &doc.Graph.Nodes[i]
		rows = append(rows, []string{
			n.ID,
			n.Type,
			n.Title,
			formatPosition(n.Position),
			formatIdentity(n),
			fmt.Sprint(len(n.Pins)),
		})
	}
	return newTable("ID", "Type", "Title", "Position", "Identity", "Pins").Rows(rows...).Render()
}

// nodeDetails renders the header fields and pin table of one node.
func nodeDetails(n *schema.NodeRecord) string {
	var b strings.Builder
	key := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	line := func(k, v string) {
		if v == "" {
			v = "-"
		}
		b.WriteString(key.Render(k) + " " + StyleValue.Render(v) + "\n")
	}
	b.WriteString(StyleTitle.Render(n.ID) + "\n")
	line("Type", n.Type)
	line("Title", n.Title)
	line("Position", formatPosition(n.Position))
	line("Identity", formatIdentity(n))
	b.WriteString("\n")

	rows := make([][]string, 0, len(n.Pins))
	for _, p := range n.Pins {
		typ := p.PinCategory
		if p.PinSubCategory != "" {
			typ += "/" + p.PinSubCategory
		}
		rows = append(rows, []string{
			p.Name,
			p.Direction,
			typ,
			p.DefaultValue,
			strings.Join(p.ConnectedNodeIDs, ", "),
		})
	}
	b.WriteString(newTable("Pin", "Direction", "Type", "Default", "Connected").Rows(rows...).Render())
	return b.String()
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if col == 0 {
				return StyleHighlight
			}
			return lipgloss.NewStyle()
		})
}

func formatPosition(p *schema.Position) string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("%g, %g", p.X, p.Y)
}

// formatIdentity summarizes the type-specific fields of a node.
func formatIdentity(n *schema.NodeRecord) string {
	switch {
	case n.FunctionName != "":
		return "fn " + n.FunctionName
	case n.VariableName != "":
		return "var " + n.VariableName
	case n.IsCustomEvent && n.EventName != "":
		return "custom event " + n.EventName
	case n.EventName != "":
		if n.EventClass != "" {
			return "event " + n.EventClass + "." + n.EventName
		}
		return "event " + n.EventName
	}
	return ""
}
