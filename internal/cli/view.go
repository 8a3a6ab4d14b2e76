package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/vpctree/pkg/pipeline"
	"github.com/matzehuels/vpctree/pkg/tree"
)

// viewCommand creates the view command, an interactive pager for one tree.
func (c *CLI) viewCommand() *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:               "view VPC_ID",
		Short:             "Browse the resource tree of a VPC interactively",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeVPCIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			snap, err := c.loadSnapshot()
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx, false)
			if err != nil {
				return err
			}
			defer runner.Close()

			result, err := runner.Execute(ctx, snap, pipeline.Options{VpcID: args[0], Refresh: refresh})
			if err != nil {
				return err
			}

			p := tea.NewProgram(NewTreeViewModel(args[0], result.Lines), tea.WithAltScreen(), tea.WithContext(ctx))
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "re-render even if a cached report exists")

	return cmd
}

// =============================================================================
// TreeViewModel - Scrollable tree pager
// =============================================================================

// TreeViewModel is the bubbletea model for paging through a rendered tree.
type TreeViewModel struct {
	Title  string
	Lines  []string
	Offset int
	Height int
}

// NewTreeViewModel creates a pager over lines.
func NewTreeViewModel(title string, lines []string) TreeViewModel {
	return TreeViewModel{
		Title:  title,
		Lines:  lines,
		Height: 20,
	}
}

func (m TreeViewModel) Init() tea.Cmd {
	return nil
}

func (m TreeViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.scroll(-1)
		case "down", "j":
			m.scroll(1)
		case "pgup", "b":
			m.scroll(-m.Height)
		case "pgdown", "f", " ":
			m.scroll(m.Height)
		case "home", "g":
			m.Offset = 0
		case "end", "G":
			m.Offset = m.maxOffset()
		case "n":
			m.nextSection()
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 4
		if m.Height < 5 {
			m.Height = 5
		}
		m.scroll(0)
	}
	return m, nil
}

func (m TreeViewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ scroll  pgup/pgdn page  n next section  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Lines))
	for _, line := range m.Lines[m.Offset:end] {
		b.WriteString(styleTreeLine(line))
		b.WriteString("\n")
	}

	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d-%d/%d]", m.Offset+1, end, len(m.Lines))))
	return b.String()
}

func (m *TreeViewModel) scroll(delta int) {
	m.Offset = max(0, min(m.Offset+delta, m.maxOffset()))
}

func (m TreeViewModel) maxOffset() int {
	return max(0, len(m.Lines)-m.Height)
}

// nextSection moves to the next heading line below the top of the view,
// wrapping to the top after the last one.
func (m *TreeViewModel) nextSection() {
	for i := m.Offset + 1; i < len(m.Lines); i++ {
		if _, content := tree.SplitPrefix(m.Lines[i]); strings.HasSuffix(content, ":") {
			m.Offset = min(i, m.maxOffset())
			return
		}
	}
	m.Offset = 0
}
