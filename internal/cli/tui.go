package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/graphclip/pkg/io"
	"github.com/matzehuels/graphclip/pkg/schema"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand creates the browse command.
func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse FILE",
		Short: "Browse the nodes and pins of a document interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := pkgio.ImportJSON(args[0])
			if err != nil {
				return err
			}
			if doc.NodeCount() == 0 {
				printInfo("%s has no nodes", args[0])
				return nil
			}
			p := tea.NewProgram(NewNodeListModel(doc), tea.WithContext(cmd.Context()), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
}

// =============================================================================
// NodeListModel - Interactive node browser
// =============================================================================

// NodeListModel is the bubbletea model of the browse command: a scrolling
// node list with the pins of the selected node underneath.
type NodeListModel struct {
	Nodes    []schema.NodeRecord
	Cursor   int
	Height   int
	Offset   int
	ShowPins bool
}

// NewNodeListModel creates a node list over the nodes of doc.
func NewNodeListModel(doc *schema.Document) NodeListModel {
	var nodes []schema.NodeRecord
	if doc != nil && doc.Graph != nil {
		nodes = doc.Graph.Nodes
	}
	return NodeListModel{Nodes: nodes, Height: 10, ShowPins: true}
}

func (m NodeListModel) Init() tea.Cmd {
	return nil
}

func (m NodeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Nodes)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			m.Cursor = max(len(m.Nodes)-1, 0)
			m.Offset = max(m.Cursor-m.Height+1, 0)
		case "enter", "tab":
			m.ShowPins = !m.ShowPins
		}
	case tea.WindowSizeMsg:
		// Leave room for the header and the pin pane.
		m.Height = max(msg.Height/2-4, 3)
		if m.Cursor >= m.Offset+m.Height {
			m.Offset = m.Cursor - m.Height + 1
		}
	}
	return m, nil
}

func (m NodeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Nodes"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ toggle pins  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Nodes))
	for i := m.Offset; i < end; i++ {
		n := &m.Nodes[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		title := n.Title
		if title == "" {
			title = n.Type
		}
		line := fmt.Sprintf("%s%-32s %s", cursor, title, listDimStyle.Render(n.Type))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", min(m.Cursor+1, len(m.Nodes)), len(m.Nodes))))
	b.WriteString("\n")

	if m.ShowPins && m.Cursor < len(m.Nodes) {
		b.WriteString("\n")
		b.WriteString(m.pinPane(&m.Nodes[m.Cursor]))
	}
	return b.String()
}

func (m NodeListModel) pinPane(n *schema.NodeRecord) string {
	var b strings.Builder
	b.WriteString(StyleHighlight.Render(n.ID))
	if id := formatIdentity(n); id != "" {
		b.WriteString("  " + listDimStyle.Render(id))
	}
	b.WriteString("\n")
	if len(n.Pins) == 0 {
		b.WriteString(listDimStyle.Render("  no pins"))
		return b.String()
	}
	for _, p := range n.Pins {
		dir := "in "
		if p.Direction == "output" {
			dir = "out"
		}
		line := fmt.Sprintf("  %s %-20s %s", listDimStyle.Render(dir), p.Name, listDimStyle.Render(p.PinCategory))
		if p.DefaultValue != "" {
			line += " = " + StyleValue.Render(p.DefaultValue)
		}
		if len(p.ConnectedNodeIDs) > 0 {
			line += listDimStyle.Render("  ⇢ " + strings.Join(p.ConnectedNodeIDs, ", "))
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
