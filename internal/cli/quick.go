package cli

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sorttrace/pkg/quicktrace"
)

// defaultQuickInput is the array the stepper shows when none is given.
var defaultQuickInput = []int{8, 3, 1, 7, 0, 10, 2}

// quickCommand creates the quicksort stepper command.
func (c *CLI) quickCommand() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "quick [values...]",
		Short: "Step through a quicksort",
		Long: `Step forwards and backwards through a recorded quicksort.

The pivot of every call is its last element. Each step shows the list being
sorted, the partition around the pivot, and the call tree so far.

Keys: right or n next, left or p previous, r restart, q quit.`,
		Example: `  sorttrace quick
  sorttrace quick 5,2,9,1,7
  sorttrace quick --plain 3 1 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			values := defaultQuickInput
			if len(args) > 0 {
				v, err := parseTraceValues(args)
				if err != nil {
					return err
				}
				values = v
			}
			tr, err := quicktrace.Build(values)
			if err != nil {
				return err
			}
			if plain {
				printQuickTrace(cmd.OutOrStdout(), tr)
				return nil
			}
			_, err = tea.NewProgram(newQuickModel(tr), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print every step instead of stepping interactively")

	return cmd
}

// printQuickTrace writes every step, one per line, followed by the result.
func printQuickTrace(w io.Writer, tr *quicktrace.Trace[int]) {
	for i, s := range tr.Steps() {
		fmt.Fprintf(w, "%3d  %s\n", i+1, s)
	}
	fmt.Fprintf(w, "sorted %s in %d steps, %d calls, depth %d\n",
		formatList(tr.Result()), tr.Len(), len(tr.Nodes()), tr.Depth())
}

// stepMessage explains what a step does.
func stepMessage(s quicktrace.Step[int]) string {
	switch s.Kind {
	case quicktrace.StepStart:
		return fmt.Sprintf("Call #%d starts sorting %s at level %d.", s.NodeID, formatList(s.List), s.Level)
	case quicktrace.StepBase:
		if len(s.List) == 0 {
			return "An empty list is already sorted."
		}
		return fmt.Sprintf("A single element %s is already sorted.", formatList(s.List))
	case quicktrace.StepPartition:
		return fmt.Sprintf("Pivot %d splits the rest into %s (less) and %s (greater or equal).",
			s.Pivot, formatList(s.Lesser), formatList(s.GreaterOrEqual))
	case quicktrace.StepResult:
		return fmt.Sprintf("Lesser, pivot and greater combine into %s.", formatList(s.List))
	}
	return ""
}

// =============================================================================
// quickModel - Quicksort stepper
// =============================================================================

// quickModel is the bubbletea model for the quicksort stepper.
type quickModel struct {
	cursor *quicktrace.Cursor[int]
	width  int
}

func newQuickModel(tr *quicktrace.Trace[int]) quickModel {
	return quickModel{cursor: quicktrace.NewCursor(tr)}
}

func (m quickModel) Init() tea.Cmd {
	return nil
}

func (m quickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "n", "l":
			m.cursor.Next()
		case "left", "p", "h":
			m.cursor.Prev()
		case "r", "home":
			m.cursor.Reset()
		case "end":
			_ = m.cursor.Seek(m.cursor.Trace().Len() - 1)
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

func (m quickModel) View() string {
	tr := m.cursor.Trace()
	s := m.cursor.Current()

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Quicksort"))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  Step %d of %d", m.cursor.Index()+1, tr.Len())))
	b.WriteString("\n\n")

	b.WriteString(labeled("step", s.Kind.String()))
	b.WriteString("\n")
	b.WriteString(labeled("level", fmt.Sprint(s.Level)))
	b.WriteString("\n")
	b.WriteString(labeled("list", truncate(formatList(s.List), m.width-16)))
	b.WriteString("\n")
	if s.Kind == quicktrace.StepPartition {
		b.WriteString(labeled("pivot", fmt.Sprint(s.Pivot)))
		b.WriteString("\n")
		b.WriteString(labeled("lesser", truncate(formatList(s.Lesser), m.width-16)))
		b.WriteString("\n")
		b.WriteString(labeled("greaterOrEqual", truncate(formatList(s.GreaterOrEqual), m.width-16)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(StyleHighlight.Render(stepMessage(s)))
	b.WriteString("\n\n")

	b.WriteString(m.renderTree())
	b.WriteString("\n")

	if m.cursor.AtEnd() {
		b.WriteString(StyleSuccess.Render(iconSuccess + " sorted " + formatList(tr.Result())))
		b.WriteString("\n\n")
	}
	b.WriteString(helpStyle.Render("←/p previous  →/n next  r restart  q quit"))
	return b.String()
}

// renderTree draws the calls started so far, one line per level in slot
// order. Resolved calls show their output; the current call is highlighted.
func (m quickModel) renderTree() string {
	tr := m.cursor.Trace()
	idx := m.cursor.Index()
	current := m.cursor.Current().NodeID

	var b strings.Builder
	for level, ids := range tr.Levels() {
		var parts []string
		for _, id := range ids {
			if !tr.Started(id, idx) {
				continue
			}
			n, _ := tr.Node(id)
			text := formatList(m.cursor.ListAt(id))
			switch {
			case id == current:
				parts = append(parts, nodeCurrentStyle.Render(text))
			case idx >= n.ResolvedAt:
				parts = append(parts, nodeDoneStyle.Render(text))
			default:
				parts = append(parts, nodePendingStyle.Render(text))
			}
		}
		if len(parts) == 0 {
			continue
		}
		line := StyleDim.Render(fmt.Sprintf("L%-2d ", level)) + strings.Join(parts, " ")
		b.WriteString(truncate(line, m.width))
		b.WriteString("\n")
	}
	return b.String()
}
