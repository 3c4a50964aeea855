package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Palette. Numbers are ANSI 256 colors so output degrades cleanly on
// terminals without true color.
var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220") // active range
	colorRed    = lipgloss.Color("167") // pivots, errors
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240") // pending nodes
)

var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleSuccess   = lipgloss.NewStyle().Foreground(colorGreen)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// status lines written by the commands; one icon, one message
var (
	successLine = statusLine(iconSuccess, colorGreen, false)
	errorLine   = statusLine(iconError, colorRed, false)
	warningLine = statusLine(iconWarning, colorYellow, true)
	infoLine    = statusLine(iconInfo, colorGray, false)
)

func statusLine(icon string, color lipgloss.Color, tintMessage bool) func(string) string {
	iconStyle := lipgloss.NewStyle().Foreground(color)
	return func(msg string) string {
		if tintMessage {
			msg = iconStyle.Render(msg)
		}
		return iconStyle.Render(icon) + " " + msg
	}
}

func printSuccess(format string, args ...any) { fmt.Println(successLine(fmt.Sprintf(format, args...))) }
func printError(format string, args ...any)   { fmt.Println(errorLine(fmt.Sprintf(format, args...))) }
func printWarning(format string, args ...any) { fmt.Println(warningLine(fmt.Sprintf(format, args...))) }
func printInfo(format string, args ...any)    { fmt.Println(infoLine(fmt.Sprintf(format, args...))) }

func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printSweepStats prints one dim summary line under a compare table, e.g.
// "12 sizes · seed 7 · 41ms · cached".
func printSweepStats(sizes int, seed uint64, d time.Duration, cached bool) {
	fmt.Println("  " + sweepStats(sizes, seed, d, cached))
}

func sweepStats(sizes int, seed uint64, d time.Duration, cached bool) string {
	source := lipgloss.NewStyle().Foreground(colorGray).Render("fresh")
	if cached {
		source = StyleSuccess.Render("cached")
	}
	parts := []string{
		StyleDim.Render(fmt.Sprintf("%d sizes", sizes)),
		StyleDim.Render(fmt.Sprintf("seed %d", seed)),
		StyleDim.Render(d.Round(time.Millisecond).String()),
		source,
	}
	return strings.Join(parts, StyleDim.Render(" · "))
}

func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}
