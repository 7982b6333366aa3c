package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lingraph/lingraph/pkg/graph"
)

// List styles
var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// NodeListModel - Interactive node browsing
// =============================================================================

// NodeListModel is the bubbletea model for scrolling through the nodes
// of a decoded graph.
type NodeListModel struct {
	Nodes  []graph.Node
	Cursor int
	Height int
	Offset int
}

// NewNodeListModel creates a node list model over the graph's nodes.
func NewNodeListModel(g *graph.Graph) NodeListModel {
	return NodeListModel{
		Nodes:  g.Nodes,
		Cursor: 0,
		Height: 15,
		Offset: 0,
	}
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
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m NodeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Graph Nodes"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Nodes) {
		end = len(m.Nodes)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		n := m.Nodes[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		span := fmt.Sprintf("[%d,%d)", n.Span.Start, n.Span.End)
		flags := strings.Join(n.Flags.Names(), ",")
		if flags == "" {
			flags = "—"
		}

		rows = append(rows, []string{
			cursor,
			fmt.Sprintf("n%d", n.ID),
			n.Type.String(),
			nodePOS(n),
			span,
			flags,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Node", "Type", "POS", "Span", "Flags").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			base := lipgloss.NewStyle()
			if col >= 4 {
				base = base.Foreground(colorDim)
			}

			if m.Offset+row == m.Cursor {
				if col >= 4 {
					return base.Foreground(colorGray).Bold(true)
				}
				return base.Foreground(colorCyan).Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Nodes))))

	return b.String()
}

// runNodeBrowser launches the interactive node table for a graph.
func runNodeBrowser(g *graph.Graph) error {
	if g.NodeCount() == 0 {
		printInfo("Graph has no nodes")
		return nil
	}
	_, err := tea.NewProgram(NewNodeListModel(g)).Run()
	return err
}
