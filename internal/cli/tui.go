package cli

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Tree node styles shared by the merge player and the quicksort stepper.
var (
	nodePendingStyle = lipgloss.NewStyle().Foreground(colorDim)
	nodeActiveStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	nodeDoneStyle    = lipgloss.NewStyle().Foreground(colorGreen)
	nodeCompareStyle = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	nodeCurrentStyle = lipgloss.NewStyle().Bold(true).Foreground(colorYellow).Underline(true)

	helpStyle  = lipgloss.NewStyle().Foreground(colorDim)
	labelStyle = lipgloss.NewStyle().Foreground(colorGray).Width(16)
	errorStyle = lipgloss.NewStyle().Foreground(colorRed)
)

// formatList renders values as "[a b c]".
func formatList(values []int) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range values {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(v))
	}
	b.WriteByte(']')
	return b.String()
}

// labeled renders one "label  value" line of a detail panel.
func labeled(label, value string) string {
	return labelStyle.Render(label) + StyleValue.Render(value)
}

// truncate cuts s to width cells. Styled strings are measured by their
// visible width.
func truncate(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}

// newTable returns a rounded table with a bold gray header row. highlight,
// if non-nil, marks data rows to render in the warning color.
func newTable(headers []string, rows [][]string, highlight func(row int) bool) *table.Table {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			if highlight != nil && highlight(row) {
				return cell.Foreground(colorYellow)
			}
			if col == 0 {
				return cell.Foreground(colorCyan)
			}
			return cell.Foreground(colorWhite)
		})
}
