package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/blackwell-systems/tasktimer/internal/analyzer"
	"github.com/blackwell-systems/tasktimer/internal/report"
)

// ScoreBar renders a progress bar for a 0-100 productivity score, colored by
// the score's rating.
// Example: "████████░░ 80/100 Good"
func ScoreBar(score, width int) string {
	if width <= 0 {
		width = 20
	}
	score = min(max(score, 0), 100)
	filled := score * width / 100

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	rating := analyzer.RatingFor(score)
	style := RatingStyle(rating)

	return fmt.Sprintf("%s %s %s", style.Render(bar), StyleMuted.Render(fmt.Sprintf("%d/100", score)), style.Render(string(rating)))
}

// TrendArrow returns a styled trend indicator for a delta value.
// Positive delta shows an up arrow, negative shows down, zero shows a dash.
// higherIsBetter selects which direction counts as an improvement.
func TrendArrow(delta float64, higherIsBetter bool) string {
	return trend(delta, higherIsBetter, "%.1f")
}

// TrendArrowInt is TrendArrow for whole-number metrics such as the score.
func TrendArrowInt(delta int, higherIsBetter bool) string {
	return trend(float64(delta), higherIsBetter, "%.0f")
}

// TrendArrowDuration is TrendArrow for deltas measured in seconds.
func TrendArrowDuration(deltaSeconds float64, higherIsBetter bool) string {
	if deltaSeconds == 0 {
		return StyleMuted.Render("─")
	}
	label := report.FormatDuration(int64(max(deltaSeconds, -deltaSeconds)))
	if deltaSeconds > 0 {
		return improvedStyle(true, higherIsBetter).Render("▲ +" + label)
	}
	return improvedStyle(false, higherIsBetter).Render("▼ -" + label)
}

func trend(delta float64, higherIsBetter bool, verb string) string {
	if delta == 0 {
		return StyleMuted.Render("─")
	}
	if delta > 0 {
		return improvedStyle(true, higherIsBetter).Render(fmt.Sprintf("▲ +"+verb, delta))
	}
	return improvedStyle(false, higherIsBetter).Render(fmt.Sprintf("▼ "+verb, delta))
}

func improvedStyle(positive, higherIsBetter bool) lipgloss.Style {
	if positive == higherIsBetter {
		return StyleSuccess
	}
	return StyleError
}

// Section prints a styled section header with a horizontal rule.
func Section(title string, width int) string {
	if width <= 0 {
		width = 66
	}
	header := StyleHeader.Render(title)
	rule := StyleMuted.Render(strings.Repeat("─", width))
	return fmt.Sprintf("\n %s\n %s", header, rule)
}
