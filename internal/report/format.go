// Package report renders daily reports, weekly reports and insights as text,
// JSON, Markdown or CSV. Rendering is pure: every function returns a string
// and writing it anywhere is the caller's job.
package report

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/blackwell-systems/tasktimer/internal/analyzer"
)

// Format is an output format tag.
type Format string

// Supported formats.
const (
	Text     Format = "text"
	JSON     Format = "json"
	Markdown Format = "markdown"
	CSV      Format = "csv"
)

// Formats lists every supported format in display order.
var Formats = []Format{Text, JSON, Markdown, CSV}

// ErrUnsupportedFormat is returned for an unknown format tag or a value the
// formatter cannot render.
var ErrUnsupportedFormat = errors.New("unsupported format")

// ParseFormat resolves a format tag. "md" is accepted as an alias for
// markdown and matching ignores case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case Text, JSON, Markdown, CSV:
		return f, nil
	case "md":
		return Markdown, nil
	default:
		return "", fmt.Errorf("%w %q (want one of %s)", ErrUnsupportedFormat, s, formatList())
	}
}

func formatList() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// Options configures chart and time rendering.
type Options struct {
	// BarWidth is the chart width of a 100% bar, in glyphs.
	BarWidth int

	// Glyph is the single character bars are drawn with.
	Glyph string

	// Location is used to display clock times. Nil means time.Local.
	Location *time.Location
}

// DefaultOptions returns a 30 glyph wide chart drawn with full blocks.
func DefaultOptions() Options {
	return Options{BarWidth: 30, Glyph: "█", Location: time.Local}
}

// Formatter renders analyzer results. It is immutable and safe for
// concurrent use.
type Formatter struct {
	opts Options
}

// NewFormatter validates opts and returns a Formatter. Invalid options are
// reported as *analyzer.ConfigError.
func NewFormatter(opts Options) (*Formatter, error) {
	if opts.BarWidth <= 0 {
		return nil, &analyzer.ConfigError{Field: "bar_width", Reason: fmt.Sprintf("must be positive, got %d", opts.BarWidth)}
	}
	if utf8.RuneCountInString(opts.Glyph) != 1 {
		return nil, &analyzer.ConfigError{Field: "bar_glyph", Reason: fmt.Sprintf("must be a single character, got %q", opts.Glyph)}
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &Formatter{opts: opts}, nil
}

// Render dispatches on the type of v, which must be an analyzer.DailyReport,
// analyzer.WeeklyReport or analyzer.Insights (or a pointer to one).
func (f *Formatter) Render(v any, format Format) (string, error) {
	switch r := v.(type) {
	case analyzer.DailyReport:
		return f.Daily(r, format)
	case *analyzer.DailyReport:
		return f.Daily(*r, format)
	case analyzer.WeeklyReport:
		return f.Weekly(r, format)
	case *analyzer.WeeklyReport:
		return f.Weekly(*r, format)
	case analyzer.Insights:
		return f.Insights(r, format)
	case *analyzer.Insights:
		return f.Insights(*r, format)
	default:
		return "", fmt.Errorf("%w: cannot render %T", ErrUnsupportedFormat, v)
	}
}

// FormatDuration renders seconds as "1h 30m", "2h", "45m" or "0m". Seconds
// below a minute are dropped; negative input renders as "0m".
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60

	switch {
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}

// barLength is round(width * pct / 100), clamped to [0, width].
func barLength(width, pct int) int {
	n := (width*pct + 50) / 100
	return max(0, min(width, n))
}
