package app

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/tasktimer/internal/analyzer"
	"github.com/blackwell-systems/tasktimer/internal/output"
	"github.com/blackwell-systems/tasktimer/internal/report"
	"github.com/blackwell-systems/tasktimer/internal/store"
)

var (
	trackCompare int
	trackHistory int
	trackDays    int
)

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Snapshot insights and compare them over time",
	Long: `Run the insights analysis, store the result as a snapshot, and compare it
against an earlier snapshot with trend arrows. Suggestions that appeared or
cleared since that snapshot are listed.`,
	RunE: runTrack,
}

func init() {
	trackCmd.Flags().IntVar(&trackCompare, "compare", 1, "Compare against Nth previous snapshot (1 = most recent)")
	trackCmd.Flags().IntVar(&trackHistory, "history", 0, "Show metric trends across N most recent snapshots")
	trackCmd.Flags().IntVar(&trackDays, "days", 0, "Number of days to analyze (default analysis.period_days)")
	rootCmd.AddCommand(trackCmd)
}

func runTrack(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = e.Close() }()

	in, err := insightsFor(e, trackDays, nil)
	if err != nil {
		return err
	}

	current := snapshotFromInsights(in)
	current.TakenAt = now()
	if _, err := e.db.CreateSnapshot(current); err != nil {
		return fmt.Errorf("creating snapshot: %w", err)
	}
	logger.Info("snapshot recorded", "id", current.ID, "score", current.Score)

	if trackHistory > 0 {
		snapshots, err := e.db.GetRecentSnapshots(trackHistory)
		if err != nil {
			return fmt.Errorf("loading snapshots: %w", err)
		}
		slices.Reverse(snapshots)
		if flagJSON {
			return writeJSON(cmd, map[string]any{"history": snapshots})
		}
		renderHistory(cmd.OutOrStdout(), snapshots)
		return nil
	}

	// trackCompare=1 means the immediate predecessor, one behind the snapshot
	// just written.
	prev, err := e.db.GetSnapshotN(trackCompare + 1)
	if err != nil {
		return fmt.Errorf("loading previous snapshot: %w", err)
	}

	var diff *store.SnapshotDiff
	if prev != nil {
		diff = &store.SnapshotDiff{
			Previous: prev,
			Current:  current,
			Deltas:   computeDeltas(prev, current),
		}
	}

	if flagJSON {
		result := map[string]any{"snapshot": current}
		if diff != nil {
			result["diff"] = diff
		}
		return writeJSON(cmd, result)
	}
	renderTrackOutput(cmd.OutOrStdout(), current, diff)
	return nil
}

// snapshotFromInsights flattens an analysis into a storable snapshot.
func snapshotFromInsights(in analyzer.Insights) *store.Snapshot {
	s := &store.Snapshot{
		PeriodDays:       in.PeriodDays,
		Score:            in.ProductivityScore,
		Rating:           string(in.Rating),
		TotalDuration:    in.TotalDuration,
		SessionCount:     in.SessionCount,
		AvgDailyDuration: in.AvgDailyDuration,
		Volume:           in.SubScores.Volume,
		Consistency:      in.SubScores.Consistency,
		Diversity:        in.SubScores.Diversity,
		WorkBlocks:       len(in.WorkBlocks),
		TopCategory:      in.MostCommonCategory,
		SkippedCount:     in.SkippedCount,
	}
	for i, msg := range in.Suggestions {
		s.Suggestions = append(s.Suggestions, store.SnapshotSuggestion{
			Rule:    in.SuggestionRules[i],
			Message: msg,
		})
	}
	return s
}

type metricKind int

const (
	countMetric metricKind = iota
	scoreMetric
	durationMetric
)

// trackedMetric is one numeric snapshot field compared across snapshots.
type trackedMetric struct {
	name           string
	label          string
	higherIsBetter bool
	kind           metricKind
	value          func(*store.Snapshot) float64
}

// trackedMetrics lists the compared fields in display order.
var trackedMetrics = []trackedMetric{
	{"score", "Score", true, countMetric, func(s *store.Snapshot) float64 { return float64(s.Score) }},
	{"total_duration", "Total Time", true, durationMetric, func(s *store.Snapshot) float64 { return float64(s.TotalDuration) }},
	{"avg_daily_duration", "Avg per Day", true, durationMetric, func(s *store.Snapshot) float64 { return float64(s.AvgDailyDuration) }},
	{"session_count", "Sessions", true, countMetric, func(s *store.Snapshot) float64 { return float64(s.SessionCount) }},
	{"work_blocks", "Work Blocks", true, countMetric, func(s *store.Snapshot) float64 { return float64(s.WorkBlocks) }},
	{"volume", "Volume", true, scoreMetric, func(s *store.Snapshot) float64 { return s.Volume }},
	{"consistency", "Consistency", true, scoreMetric, func(s *store.Snapshot) float64 { return s.Consistency }},
	{"diversity", "Diversity", true, scoreMetric, func(s *store.Snapshot) float64 { return s.Diversity }},
	{"skipped_count", "Skipped Records", false, countMetric, func(s *store.Snapshot) float64 { return float64(s.SkippedCount) }},
}

func lookupMetric(name string) (trackedMetric, bool) {
	for _, m := range trackedMetrics {
		if m.name == name {
			return m, true
		}
	}
	return trackedMetric{}, false
}

// computeDeltas compares every tracked metric of two snapshots.
func computeDeltas(prev, curr *store.Snapshot) []store.MetricDelta {
	deltas := make([]store.MetricDelta, 0, len(trackedMetrics))
	for _, m := range trackedMetrics {
		p, c := m.value(prev), m.value(curr)
		delta := c - p

		direction := "unchanged"
		if delta != 0 {
			if (delta > 0) == m.higherIsBetter {
				direction = "improved"
			} else {
				direction = "regressed"
			}
		}

		deltas = append(deltas, store.MetricDelta{
			Name:      m.name,
			Previous:  p,
			Current:   c,
			Delta:     delta,
			Direction: direction,
		})
	}
	return deltas
}

// suggestionChanges returns the rule IDs present only in curr and only in prev.
func suggestionChanges(prev, curr *store.Snapshot) (added, cleared []string) {
	rules := func(s *store.Snapshot) []string {
		out := make([]string, len(s.Suggestions))
		for i, sg := range s.Suggestions {
			out[i] = sg.Rule
		}
		return out
	}
	before, after := rules(prev), rules(curr)
	for _, r := range after {
		if !slices.Contains(before, r) {
			added = append(added, r)
		}
	}
	for _, r := range before {
		if !slices.Contains(after, r) {
			cleared = append(cleared, r)
		}
	}
	return added, cleared
}

func formatMetric(m trackedMetric, v float64) string {
	switch m.kind {
	case durationMetric:
		return report.FormatDuration(int64(v))
	case countMetric:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.1f", v)
	}
}

func metricTrend(m trackedMetric, delta float64) string {
	if m.kind == durationMetric {
		return output.TrendArrowDuration(delta, m.higherIsBetter)
	}
	return output.TrendArrow(delta, m.higherIsBetter)
}

func renderTrackOutput(w io.Writer, current *store.Snapshot, diff *store.SnapshotDiff) {
	fmt.Fprintln(w, output.Section("Track: Snapshot Comparison", 0))
	fmt.Fprintln(w)
	fmt.Fprintf(w, " Snapshot #%d taken at %s\n", current.ID, current.TakenAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, " %s\n\n", output.ScoreBar(current.Score, 20))

	if diff == nil {
		fmt.Fprintln(w, " First snapshot recorded. Run 'tasktimer track' again later to see trends.")
		return
	}

	fmt.Fprintf(w, " Comparing against snapshot #%d (%s)\n\n",
		diff.Previous.ID, diff.Previous.TakenAt.Format("2006-01-02 15:04:05"))

	tbl := output.NewTable("Metric", "Previous", "Current", "Trend")
	for _, d := range diff.Deltas {
		m, _ := lookupMetric(d.Name)
		tbl.AddRow(m.label, formatMetric(m, d.Previous), formatMetric(m, d.Current), metricTrend(m, d.Delta))
	}
	_ = tbl.Fprint(w)

	added, cleared := suggestionChanges(diff.Previous, diff.Current)
	for _, r := range added {
		fmt.Fprintf(w, " %s %s\n", output.StyleWarning.Render("+ new suggestion:"), r)
	}
	for _, r := range cleared {
		fmt.Fprintf(w, " %s %s\n", output.StyleSuccess.Render("- resolved:"), r)
	}
}

// renderHistory shows a multi-snapshot timeline table, oldest first.
func renderHistory(w io.Writer, snapshots []store.Snapshot) {
	fmt.Fprintln(w, output.Section("Track: Metric History", 0))
	fmt.Fprintln(w)
	fmt.Fprintf(w, " Showing %d most recent snapshots\n\n", len(snapshots))

	headers := []string{"Metric"}
	for _, s := range snapshots {
		headers = append(headers, fmt.Sprintf("#%d %s", s.ID, s.TakenAt.Format("Jan 02")))
	}
	headers = append(headers, "Trend")
	tbl := output.NewTable(headers...)

	for _, m := range trackedMetrics {
		row := []string{m.label}
		for i := range snapshots {
			row = append(row, formatMetric(m, m.value(&snapshots[i])))
		}

		// Trend from first to last.
		trend := ""
		if len(snapshots) >= 2 {
			delta := m.value(&snapshots[len(snapshots)-1]) - m.value(&snapshots[0])
			trend = metricTrend(m, delta)
		}
		row = append(row, trend)
		tbl.AddRow(row...)
	}

	_ = tbl.Fprint(w)
}
