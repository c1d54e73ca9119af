package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/blackwell-systems/tasktimer/internal/analyzer"
	"github.com/blackwell-systems/tasktimer/internal/session"
)

// Daily renders a daily report.
func (f *Formatter) Daily(r analyzer.DailyReport, format Format) (string, error) {
	switch format {
	case JSON:
		return marshalJSON(r)
	case CSV:
		return sessionsCSV(r.Sessions)
	case Text, Markdown:
		d := newDoc(format)
		d.heading(1, "Daily Report - "+r.Date)
		f.totals(d, r.Summary, r.SkippedCount)
		f.breakdown(d, r.Distribution)
		f.sessions(d, r.Sessions, false)
		return d.String(), nil
	default:
		return "", unsupported(format)
	}
}

// Weekly renders a weekly report.
func (f *Formatter) Weekly(r analyzer.WeeklyReport, format Format) (string, error) {
	switch format {
	case JSON:
		return marshalJSON(r)
	case CSV:
		return sessionsCSV(r.Sessions)
	case Text, Markdown:
		d := newDoc(format)
		d.heading(1, fmt.Sprintf("Weekly Report - %s to %s", r.StartDate, r.EndDate))
		f.totals(d, r.Summary, r.SkippedCount)

		if len(r.PerDay) > 0 {
			d.heading(2, "Daily Totals")
			rows := make([][]string, len(r.PerDay))
			for i, day := range r.PerDay {
				rows[i] = []string{day.Date, FormatDuration(day.TotalDuration), strconv.Itoa(day.SessionCount)}
			}
			d.table([]string{"Date", "Duration", "Sessions"}, rows)
		}

		f.breakdown(d, r.Distribution)
		f.sessions(d, r.Sessions, true)
		return d.String(), nil
	default:
		return "", unsupported(format)
	}
}

// Insights renders an insights analysis.
func (f *Formatter) Insights(in analyzer.Insights, format Format) (string, error) {
	switch format {
	case JSON:
		return marshalJSON(in)
	case CSV:
		return distributionCSV(in.Distribution)
	case Text, Markdown:
		return f.insightsDoc(in, format), nil
	default:
		return "", unsupported(format)
	}
}

func (f *Formatter) insightsDoc(in analyzer.Insights, format Format) string {
	d := newDoc(format)
	d.heading(1, fmt.Sprintf("Insights - last %d days", in.PeriodDays))

	if !in.Start.IsZero() {
		last := in.End.AddDate(0, 0, -1)
		d.field("Period", fmt.Sprintf("%s to %s", in.Start.Format(analyzer.DateLayout), last.Format(analyzer.DateLayout)))
	}
	d.field("Total Duration", FormatDuration(in.TotalDuration))
	d.field("Sessions", strconv.Itoa(in.SessionCount))
	d.field("Average per Day", FormatDuration(in.AvgDailyDuration))
	d.field("Productivity Score", fmt.Sprintf("%d/100 (%s)", in.ProductivityScore, in.Rating))
	if in.MostCommonCategory != "" {
		d.field("Most Common Category", in.MostCommonCategory)
	}
	if in.SkippedCount > 0 {
		d.field("Skipped Records", strconv.Itoa(in.SkippedCount))
	}
	d.blank()

	if in.SessionCount > 0 {
		d.heading(2, "Score Breakdown")
		d.table([]string{"Component", "Score"}, [][]string{
			{"Volume", fmt.Sprintf("%.0f", in.SubScores.Volume)},
			{"Consistency", fmt.Sprintf("%.0f", in.SubScores.Consistency)},
			{"Diversity", fmt.Sprintf("%.0f", in.SubScores.Diversity)},
		})
	}

	f.breakdown(d, in.Distribution)

	if len(in.PeakHours) > 0 {
		d.heading(2, "Peak Hours")
		for i, h := range in.PeakHours {
			d.line(fmt.Sprintf("%d. %02d:00 - %s (%s)", i+1, h.Hour, FormatDuration(h.Duration), plural(h.Sessions, "session")))
		}
		d.blank()
	}

	if len(in.WorkBlocks) > 0 {
		d.heading(2, "Work Blocks")
		for _, b := range in.WorkBlocks {
			d.bullet(fmt.Sprintf("%s %s-%s, %s tracked (%s)",
				b.Start.In(f.opts.Location).Format(analyzer.DateLayout),
				f.clock(b.Start), f.clock(b.End),
				FormatDuration(b.TotalDuration), plural(b.SessionCount, "session")))
		}
		d.blank()
	}

	if len(in.Suggestions) > 0 {
		d.heading(2, "Suggestions")
		for _, s := range in.Suggestions {
			d.bullet(s)
		}
		d.blank()
	}

	return d.String()
}

func (f *Formatter) totals(d *doc, s analyzer.Summary, skipped int) {
	d.field("Total Duration", FormatDuration(s.TotalDuration))
	d.field("Sessions", strconv.Itoa(s.SessionCount))
	if skipped > 0 {
		d.field("Skipped Records", strconv.Itoa(skipped))
	}
	d.blank()
}

// breakdown writes the category table followed by the bar chart.
func (f *Formatter) breakdown(d *doc, shares []analyzer.CategoryShare) {
	d.heading(2, "Category Breakdown")
	if len(shares) == 0 {
		d.line("No sessions recorded.")
		d.blank()
		return
	}

	rows := make([][]string, len(shares))
	for i, s := range shares {
		rows[i] = []string{s.Category, FormatDuration(s.Duration), strconv.Itoa(s.Sessions), fmt.Sprintf("%d%%", s.Percent)}
	}
	d.table([]string{"Category", "Duration", "Sessions", "Percent"}, rows)
	d.block(f.Chart(shares))
}

// Chart returns one bar line per category:
// "<category> <bar> <duration> (<pct>%)", with round(BarWidth*pct/100)
// glyphs per bar. Categories and bars are padded so the columns align.
func (f *Formatter) Chart(shares []analyzer.CategoryShare) []string {
	labelWidth := 0
	for _, s := range shares {
		labelWidth = max(labelWidth, runewidth.StringWidth(s.Category))
	}

	lines := make([]string, len(shares))
	for i, s := range shares {
		n := barLength(f.opts.BarWidth, s.Percent)
		bar := strings.Repeat(f.opts.Glyph, n) + strings.Repeat(" ", f.opts.BarWidth-n)
		lines[i] = fmt.Sprintf("%s %s %s (%d%%)",
			runewidth.FillRight(s.Category, labelWidth), bar, FormatDuration(s.Duration), s.Percent)
	}
	return lines
}

func (f *Formatter) sessions(d *doc, sessions []session.Session, withDate bool) {
	if len(sessions) == 0 {
		return
	}
	d.heading(2, "Sessions")
	for _, s := range sessions {
		when := f.clock(s.StartTime) + "-" + f.clock(s.EndTime)
		if withDate {
			when = s.StartTime.In(f.opts.Location).Format(analyzer.DateLayout) + " " + when
		}
		d.bullet(fmt.Sprintf("%s %s (%s) - %s", when, d.strong(s.Task), d.text(s.Category), FormatDuration(s.DurationSeconds)))
	}
	d.blank()
}

func (f *Formatter) clock(t time.Time) string {
	return t.In(f.opts.Location).Format("15:04")
}

func marshalJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding json: %w", err)
	}
	return string(data) + "\n", nil
}

// sessionsCSV writes one row per session. Timestamps are RFC 3339.
func sessionsCSV(sessions []session.Session) (string, error) {
	rows := [][]string{{"id", "task", "category", "start_time", "end_time", "duration_seconds"}}
	for _, s := range sessions {
		rows = append(rows, []string{
			s.ID,
			s.Task,
			s.Category,
			s.StartTime.Format(time.RFC3339),
			s.EndTime.Format(time.RFC3339),
			strconv.FormatInt(s.DurationSeconds, 10),
		})
	}
	return writeCSV(rows)
}

// distributionCSV writes one row per category.
func distributionCSV(shares []analyzer.CategoryShare) (string, error) {
	rows := [][]string{{"category", "duration_seconds", "sessions", "percent"}}
	for _, s := range shares {
		rows = append(rows, []string{
			s.Category,
			strconv.FormatInt(s.Duration, 10),
			strconv.Itoa(s.Sessions),
			strconv.Itoa(s.Percent),
		})
	}
	return writeCSV(rows)
}

func writeCSV(rows [][]string) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return "", fmt.Errorf("encoding csv: %w", err)
	}
	return buf.String(), nil
}

func unsupported(format Format) error {
	return fmt.Errorf("%w %q", ErrUnsupportedFormat, string(format))
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
