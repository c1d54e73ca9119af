package app

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/tasktimer/internal/analyzer"
	"github.com/blackwell-systems/tasktimer/internal/report"
)

var (
	weeklyStart  string
	weeklyEnd    string
	weeklyFormat report.Format
	weeklyOut    string
	weeklyRender bool
)

var weeklyCmd = &cobra.Command{
	Use:   "weekly",
	Short: "Report on a range of days",
	Long: `Summarize an inclusive range of calendar days with per-day totals. By
default the range is the current week, Monday through Sunday. With only
--start the range covers the seven days beginning there.

Examples:
  tasktimer weekly
  tasktimer weekly --start 2026-03-09 --end 2026-03-13 --format csv`,
	RunE: runWeekly,
}

func init() {
	weeklyCmd.Flags().StringVar(&weeklyStart, "start", "", "First day, YYYY-MM-DD (default this Monday)")
	weeklyCmd.Flags().StringVar(&weeklyEnd, "end", "", "Last day, YYYY-MM-DD (default six days after --start)")
	addFormatFlag(weeklyCmd.Flags(), &weeklyFormat)
	weeklyCmd.Flags().StringVarP(&weeklyOut, "output", "o", "", "Write the report to a file")
	weeklyCmd.Flags().BoolVar(&weeklyRender, "render", false, "Render markdown for the terminal")
	rootCmd.AddCommand(weeklyCmd)
}

func runWeekly(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = e.Close() }()

	start, end, err := weekRange(weeklyStart, weeklyEnd, e.location())
	if err != nil {
		return err
	}
	r, err := weeklyReport(e, start, end)
	if err != nil {
		return err
	}
	return emitReport(cmd, e, r, weeklyFormat, weeklyOut, weeklyRender)
}

// weekRange resolves the --start and --end values.
func weekRange(startValue, endValue string, loc *time.Location) (time.Time, time.Time, error) {
	var start time.Time
	if startValue == "" {
		start, _ = analyzer.WeekOf(now(), loc)
	} else {
		var err error
		if start, err = parseDay(startValue, loc); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}

	end := start.AddDate(0, 0, 6)
	if endValue != "" {
		var err error
		if end, err = parseDay(endValue, loc); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return start, end, nil
}

func weeklyReport(e *env, start, end time.Time) (analyzer.WeeklyReport, error) {
	sessions, err := e.sessionsIn(analyzer.DaysRange(start, end, e.location()), nil)
	if err != nil {
		return analyzer.WeeklyReport{}, err
	}
	return e.engine.Weekly(sessions, start, end)
}
