package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bifconv/pkg/network"
	"github.com/matzehuels/bifconv/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "browse <file.bif>",
		Short:             "Browse variables and their CPTs interactively",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeBIF,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			n, err := c.newRunner().Load(ctx, pipeline.Options{Path: args[0], Logger: loggerFromContext(ctx)})
			if err != nil {
				return err
			}
			p := tea.NewProgram(NewBrowseModel(n), tea.WithContext(ctx), tea.WithOutput(c.Stderr), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				return err
			}
			return nil
		},
	}
}

// =============================================================================
// BrowseModel - Interactive variable list and CPT view
// =============================================================================

// BrowseModel is the bubbletea model of the browse command. In list mode it
// shows the variables; once one is selected it shows that variable's CPT.
type BrowseModel struct {
	Network  *network.Network
	Cursor   int
	Offset   int
	Height   int
	Selected string // variable whose CPT is shown; empty in list mode
}

// NewBrowseModel creates a browse model positioned on the first variable.
func NewBrowseModel(n *network.Network) BrowseModel {
	return BrowseModel{Network: n, Height: 15}
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Selected != "" {
			switch msg.String() {
			case "q", "ctrl+c":
				return m, tea.Quit
			case "esc", "backspace", "left", "h":
				m.Selected = ""
			}
			return m, nil
		}

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
			if m.Cursor < len(m.Network.Variables)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", "right", "l":
			if len(m.Network.Variables) > 0 {
				m.Selected = m.Network.Variables[m.Cursor]
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m BrowseModel) View() string {
	if m.Selected != "" {
		return m.cptView()
	}
	return m.listView()
}

func (m BrowseModel) listView() string {
	var b strings.Builder

	title := m.Network.Name
	if title == "" {
		title = "Variables"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ show CPT  q quit"))
	b.WriteString("\n\n")

	vars := m.Network.Variables
	end := min(m.Offset+m.Height, len(vars))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		v := vars[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			v,
			strconv.Itoa(m.Network.Cardinality(v)),
			listOrDash(m.Network.Parents[v]),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Variable", "States", "Parents").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == headerRow {
				return styleHeader
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			if col == 3 {
				return listDimStyle
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(vars))))

	return b.String()
}

func (m BrowseModel) cptView() string {
	var b strings.Builder
	v := m.Selected
	n := m.Network

	b.WriteString(StyleTitle.Render("P(" + cptCondition(v, n.Parents[v]) + ")"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("esc back  q quit"))
	b.WriteString("\n\n")

	b.WriteString(cptTable(n, v))
	return b.String()
}

// cptTable lays out the CPT of v with one row per state of v and one column
// per parent combination.
func cptTable(n *network.Network, v string) string {
	cpt := n.CPTs[v]
	combos := n.Combinations(v)

	headers := make([]string, 0, 1+len(combos))
	headers = append(headers, v)
	for _, combo := range combos {
		if len(combo) == 0 {
			headers = append(headers, "P")
			continue
		}
		headers = append(headers, strings.Join(combo, ", "))
	}

	cols := cpt.Columns()
	rows := make([][]string, 0, cpt.Rows())
	for i, state := range n.States[v] {
		row := make([]string, 0, 1+cols)
		row = append(row, state)
		for _, p := range cpt.Values[i*cols : (i+1)*cols] {
			row = append(row, strconv.FormatFloat(p, 'g', -1, 64))
		}
		rows = append(rows, row)
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == headerRow || col == 0 {
				return styleHeader
			}
			return StyleNumber
		}).
		Render()
}

func cptCondition(v string, parents []string) string {
	if len(parents) == 0 {
		return v
	}
	return v + " | " + strings.Join(parents, ", ")
}
