package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/gallery/pkg/schema"
)

// stdout receives command output; logs and the spinner use stderr.
var stdout io.Writer = os.Stdout

// =============================================================================
// Palette & Styles
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleSuccess   = lipgloss.NewStyle().Foreground(colorGreen)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorYellow)

	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	separator   = " · "
)

// =============================================================================
// Status Lines
// =============================================================================

// status prints one line prefixed by a colored icon.
func status(icon string, color lipgloss.Color, msg string) {
	fmt.Fprintln(stdout, lipgloss.NewStyle().Foreground(color).Render(icon)+" "+msg)
}

func printSuccess(format string, args ...any) {
	status(iconSuccess, colorGreen, fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	status(iconError, colorRed, fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	status(iconWarning, colorYellow, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	status(iconInfo, colorGray, fmt.Sprintf(format, args...))
}

// printDetail prints an indented, muted line under a status line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile lists a written file.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleKey.Render(key)+" "+StyleValue.Render(value))
}

func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Fprintln(stdout)
}

// =============================================================================
// Layout Summary
// =============================================================================

// layoutSummary describes l in one line, e.g. "12 images · 4 rows · 1200×986 px".
func layoutSummary(l schema.Layout) string {
	parts := []string{fmt.Sprintf("%d images", len(l.Tiles))}
	switch {
	case l.IsColumns():
		parts = append(parts, fmt.Sprintf("%d columns", l.Columns))
	case l.RowCount > 0:
		parts = append(parts, fmt.Sprintf("%d rows", l.RowCount))
	}
	parts = append(parts, fmt.Sprintf("%.0f×%.0f px", l.Width, l.Height))
	return strings.Join(parts, separator)
}

// printLayoutStats prints the summary followed by the cache state.
func printLayoutStats(l schema.Layout, cached bool) {
	state := StyleDim.Render("fresh")
	if cached {
		state = StyleSuccess.Render("cached")
	}
	fmt.Fprintln(stdout, "  "+StyleDim.Render(layoutSummary(l)+separator)+state)
}
