// Package output provides styled terminal rendering helpers for tasktimer.
package output

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/blackwell-systems/tasktimer/internal/analyzer"
)

// Color constants for consistent styling across the CLI.
var (
	// ColorPrimary is used for headers and emphasis.
	ColorPrimary = lipgloss.Color("#64b5f6")

	// ColorSuccess is used for Excellent and Good ratings and improvements.
	ColorSuccess = lipgloss.Color("#66bb6a")

	// ColorError is used for Low ratings and regressions.
	ColorError = lipgloss.Color("#ef5350")

	// ColorWarning is used for Fair ratings and suggestions.
	ColorWarning = lipgloss.Color("#fff59d")

	// ColorMuted is used for secondary text and rules.
	ColorMuted = lipgloss.Color("#888888")
)

// Styles provides reusable lipgloss styles.
var (
	StyleHeader  lipgloss.Style
	StyleSuccess lipgloss.Style
	StyleError   lipgloss.Style
	StyleWarning lipgloss.Style
	StyleMuted   lipgloss.Style
	StyleBold    lipgloss.Style

	// StyleLabel is used for field labels in status and dashboard output.
	StyleLabel lipgloss.Style

	// StyleValue is used for field values.
	StyleValue lipgloss.Style
)

func init() {
	applyStyles(false)
}

// noColor tracks whether color output is disabled.
var noColor bool

// SetNoColor disables or enables color output globally. Unlike a one-way
// switch, passing false restores the colored styles.
func SetNoColor(disabled bool) {
	noColor = disabled
	applyStyles(disabled)
}

// IsNoColor returns whether color output is currently disabled.
func IsNoColor() bool {
	return noColor
}

func applyStyles(plain bool) {
	base := lipgloss.NewStyle()
	if plain {
		StyleHeader = base
		StyleSuccess = base
		StyleError = base
		StyleWarning = base
		StyleMuted = base
		StyleBold = base
		StyleLabel = base.Width(20)
		StyleValue = base
		return
	}
	StyleHeader = base.Foreground(ColorPrimary).Bold(true)
	StyleSuccess = base.Foreground(ColorSuccess)
	StyleError = base.Foreground(ColorError)
	StyleWarning = base.Foreground(ColorWarning)
	StyleMuted = base.Foreground(ColorMuted)
	StyleBold = base.Bold(true)
	StyleLabel = base.Width(20)
	StyleValue = base.Bold(true)
}

// RatingStyle returns the style used for a productivity rating.
func RatingStyle(r analyzer.Rating) lipgloss.Style {
	switch r {
	case analyzer.RatingExcellent, analyzer.RatingGood:
		return StyleSuccess
	case analyzer.RatingFair:
		return StyleWarning
	default:
		return StyleError
	}
}

// Field renders a "label value" line for status output.
func Field(label, value string) string {
	return " " + StyleLabel.Render(label) + StyleValue.Render(value)
}
