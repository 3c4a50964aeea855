package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sorttrace/pkg/bounds"
	"github.com/matzehuels/sorttrace/pkg/config"
	"github.com/matzehuels/sorttrace/pkg/errors"
	"github.com/matzehuels/sorttrace/pkg/mergetrace"
)

// mergeCommand creates the merge sort animation command.
func (c *CLI) mergeCommand() *cobra.Command {
	var (
		in       inputOpts
		interval int
		plain    bool
	)

	cmd := &cobra.Command{
		Use:   "merge [values...]",
		Short: "Animate a merge sort",
		Long: `Animate a top-down merge sort in the terminal.

Without values a random array is generated. The recursion tree is drawn before
the sort starts and colored as ranges are entered and finished.

Keys: space start/pause, s or right step, r reset, g new array,
+/- speed, q quit.`,
		Example: `  sorttrace merge 5 2 4 6 1 3
  sorttrace merge --size 32 --interval 40
  sorttrace merge --plain 3,1,2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.settings()
			values, err := resolveValues(args, cfg, in)
			if err != nil {
				return err
			}
			if plain {
				return printMergeTrace(cmd.OutOrStdout(), values)
			}
			if interval == 0 {
				interval = cfg.Animation.IntervalMS
			}
			if interval < config.MinIntervalMS || interval > config.MaxIntervalMS {
				return errors.New(errors.ErrCodeInvalidInput, "interval must be between %d and %d ms, got %d",
					config.MinIntervalMS, config.MaxIntervalMS, interval)
			}
			regen := func() []int {
				opts := in
				opts.size = len(values)
				opts.seed = 0
				v, err := randomInput(cfg, opts)
				if err != nil {
					return values
				}
				return v
			}
			m := newMergeModel(values, time.Duration(interval)*time.Millisecond, regen)
			_, err = tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().IntVarP(&in.size, "size", "n", 0, "size of the random array (default from config, max 600)")
	cmd.Flags().IntVar(&in.maxValue, "max-value", 0, "largest random value (default 5 × size)")
	cmd.Flags().Uint64Var(&in.seed, "seed", 0, "random seed (0 = random)")
	cmd.Flags().IntVar(&interval, "interval", 0, "milliseconds between steps (1-2000)")
	cmd.Flags().BoolVar(&plain, "plain", false, "print the event stream instead of animating")

	return cmd
}

// printMergeTrace writes every event of the trace, one per line, followed by
// the sorted array and the comparison count.
func printMergeTrace(w io.Writer, values []int) error {
	g, arr := mergetrace.Begin(values)
	compares := 0
	for ev, err := range g.All() {
		if err != nil {
			return err
		}
		if ev.Kind == mergetrace.KindCompare {
			compares++
		}
		fmt.Fprintln(w, ev.String())
	}
	b, err := bounds.Of(len(values))
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "sorted %s in %d comparisons (best %d, worst %d)\n",
		mergetrace.FormatSlice(arr), compares, b.Best, b.Worst)
	return nil
}

// =============================================================================
// mergeModel - Merge sort animation
// =============================================================================

type rangeState uint8

const (
	rangePending rangeState = iota
	rangeActive
	rangeDone
)

type rangeKey struct{ l, r int }

// mergeTickMsg advances a running animation. id ties the tick to the run
// that scheduled it so ticks from before a pause or reset are dropped.
type mergeTickMsg struct{ id int }

// mergeModel is the bubbletea model for the merge sort animation. One tick
// pulls one event from the generator.
type mergeModel struct {
	input      []int
	regenerate func() []int

	gen    *mergetrace.Generator[int]
	arr    []int
	ranges []mergetrace.Range
	index  map[rangeKey]int
	state  []rangeState
	bounds bounds.Bounds

	last        mergetrace.Event[int]
	pulled      bool
	comparing   [2]int
	writing     string
	comparisons int
	done        bool
	err         error

	running  bool
	tickID   int
	interval time.Duration
	width    int
}

func newMergeModel(values []int, interval time.Duration, regenerate func() []int) mergeModel {
	m := mergeModel{interval: interval, regenerate: regenerate}
	m.load(values)
	return m
}

// load starts a fresh trace over values.
func (m *mergeModel) load(values []int) {
	m.input = values
	m.gen, m.arr = mergetrace.Begin(values)
	m.ranges = mergetrace.Ranges(len(values))
	m.index = make(map[rangeKey]int, len(m.ranges))
	for i, r := range m.ranges {
		m.index[rangeKey{r.L, r.R}] = i
	}
	m.state = make([]rangeState, len(m.ranges))
	m.bounds, _ = bounds.Of(len(values))
	m.last = mergetrace.Event[int]{}
	m.pulled = false
	m.comparing = [2]int{-1, -1}
	m.writing = ""
	m.comparisons = 0
	m.done = false
	m.err = nil
	m.running = false
	m.tickID++
}

func (m mergeModel) tick() tea.Cmd {
	id := m.tickID
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return mergeTickMsg{id: id} })
}

func (m mergeModel) Init() tea.Cmd {
	return nil
}

func (m mergeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			if m.done {
				return m, nil
			}
			m.running = !m.running
			m.tickID++
			if m.running {
				return m, m.tick()
			}
		case "s", "right":
			if !m.running {
				m.step()
			}
		case "r":
			m.load(m.input)
		case "g":
			if m.regenerate != nil {
				m.load(m.regenerate())
			}
		case "+", "=":
			m.interval = max(m.interval/2, time.Duration(config.MinIntervalMS)*time.Millisecond)
		case "-", "_":
			m.interval = min(m.interval*2, time.Duration(config.MaxIntervalMS)*time.Millisecond)
		}
	case mergeTickMsg:
		if msg.id != m.tickID || !m.running {
			return m, nil
		}
		m.step()
		if m.done {
			m.running = false
			return m, nil
		}
		return m, m.tick()
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

// step pulls one event and updates the view state.
func (m *mergeModel) step() {
	if m.done {
		return
	}
	ev, err := m.gen.Next()
	if err != nil {
		m.done = true
		m.comparing = [2]int{-1, -1}
		if !errors.Is(err, errors.ErrCodeEndOfTrace) {
			m.err = err
		}
		return
	}
	m.last = ev
	m.pulled = true

	switch ev.Kind {
	case mergetrace.KindEnter:
		m.setState(ev.L, ev.R, rangeActive)
		m.writing = ""
	case mergetrace.KindCompare:
		m.comparisons++
		m.comparing = [2]int{ev.I, ev.J}
	case mergetrace.KindWrite:
		m.comparing = [2]int{-1, -1}
		m.writing = fmt.Sprintf("writing %d:%d", ev.Pos, ev.Value)
	case mergetrace.KindExit:
		m.setState(ev.L, ev.R, rangeDone)
		m.comparing = [2]int{-1, -1}
		m.writing = ""
	}
}

func (m *mergeModel) setState(l, r int, s rangeState) {
	if i, ok := m.index[rangeKey{l, r}]; ok {
		m.state[i] = s
	}
}

func (m mergeModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Merge sort"))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  n=%d  %s", len(m.input), m.interval)))
	b.WriteString("\n\n")

	b.WriteString(m.renderTree())
	b.WriteString("\n")

	b.WriteString(labeled("array", truncate(formatList(m.arr), m.width-16)))
	b.WriteString("\n")
	b.WriteString(labeled("comparisons", fmt.Sprintf("%d  (best %d, worst %d)", m.comparisons, m.bounds.Best, m.bounds.Worst)))
	b.WriteString("\n")
	last := "-"
	if m.pulled {
		last = m.last.String()
	}
	b.WriteString(labeled("event", truncate(last, m.width-16)))
	b.WriteString("\n")
	if m.writing != "" {
		b.WriteString(labeled("segment", m.writing))
		b.WriteString("\n")
	}

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(errors.UserMessage(m.err)))
		b.WriteString("\n")
	case m.done:
		b.WriteString(StyleSuccess.Render(iconSuccess + " sorted"))
		b.WriteString("\n")
	case m.running:
		b.WriteString(StyleHighlight.Render("running"))
		b.WriteString("\n")
	default:
		b.WriteString(StyleDim.Render("paused"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("space start/pause  s step  r reset  g new array  +/- speed  q quit"))
	return b.String()
}

// renderTree draws one line per recursion depth. Each range shows the current
// contents of its segment, colored by its state; leaves being compared are
// highlighted.
func (m mergeModel) renderTree() string {
	depth := 0
	for _, r := range m.ranges {
		depth = max(depth, r.Depth+1)
	}
	lines := make([][]string, depth)
	for i, r := range m.ranges {
		lines[r.Depth] = append(lines[r.Depth], m.renderRange(i, r))
	}

	var b strings.Builder
	for _, parts := range lines {
		b.WriteString(truncate(strings.Join(parts, " "), m.width))
		b.WriteString("\n")
	}
	return b.String()
}

func (m mergeModel) renderRange(i int, r mergetrace.Range) string {
	text := formatList(m.arr[r.L:r.R])
	if r.Leaf() && r.R > r.L && (r.L == m.comparing[0] || r.L == m.comparing[1]) {
		return nodeCompareStyle.Render(text)
	}
	switch m.state[i] {
	case rangeActive:
		return nodeActiveStyle.Render(text)
	case rangeDone:
		return nodeDoneStyle.Render(text)
	}
	return nodePendingStyle.Render(text)
}
