package app

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/blackwell-systems/tasktimer/internal/analyzer"
	"github.com/blackwell-systems/tasktimer/internal/output"
	"github.com/blackwell-systems/tasktimer/internal/report"
	"github.com/blackwell-systems/tasktimer/internal/tracker"
)

// dashboardDays is the insights window of the bare command.
const dashboardDays = 7

// dashboard is the summary shown by the bare command.
type dashboard struct {
	Timer    tracker.Status        `json:"timer"`
	Today    analyzer.DailyReport  `json:"today"`
	Week     analyzer.WeeklyReport `json:"week"`
	Insights analyzer.Insights     `json:"insights"`
}

// loadDashboard builds today's report, this week's report and the recent
// insights concurrently. Each runs its own store query over its own slice.
func loadDashboard(e *env) (*dashboard, error) {
	var d dashboard
	loc := e.location()
	today := now()

	var g errgroup.Group
	g.Go(func() error {
		var err error
		d.Timer, err = e.tracker().Status()
		return err
	})
	g.Go(func() error {
		sessions, err := e.sessionsIn(analyzer.DayRange(today, loc), nil)
		if err != nil {
			return fmt.Errorf("loading today's sessions: %w", err)
		}
		d.Today = e.engine.Daily(sessions, today)
		return nil
	})
	g.Go(func() error {
		monday, sunday := analyzer.WeekOf(today, loc)
		var err error
		d.Week, err = weeklyReport(e, monday, sunday)
		return err
	})
	g.Go(func() error {
		var err error
		d.Insights, err = insightsFor(e, dashboardDays, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &d, nil
}

func runDashboard(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = e.Close() }()

	d, err := loadDashboard(e)
	if err != nil {
		return err
	}
	if flagJSON {
		return writeJSON(cmd, d)
	}
	renderDashboard(cmd.OutOrStdout(), e, d)
	return nil
}

func renderDashboard(w io.Writer, e *env, d *dashboard) {
	fmt.Fprintf(w, " tasktimer %s\n", appVersion)

	fmt.Fprintln(w, output.Section("Timer", 0))
	if d.Timer.Running {
		fmt.Fprintln(w, output.Field("Running", fmt.Sprintf("%s (%s)", d.Timer.Timer.Task, d.Timer.Timer.Category)))
		fmt.Fprintln(w, output.Field("Elapsed", report.FormatDuration(d.Timer.ElapsedSeconds)))
	} else {
		fmt.Fprintln(w, output.StyleMuted.Render(" No timer running. Start one with 'tasktimer start'."))
	}

	fmt.Fprintln(w, output.Section("Today "+d.Today.Date, 0))
	fmt.Fprintln(w, output.Field("Tracked", report.FormatDuration(d.Today.TotalDuration)))
	fmt.Fprintln(w, output.Field("Sessions", fmt.Sprint(d.Today.SessionCount)))
	for _, line := range e.formatter.Chart(d.Today.Distribution) {
		fmt.Fprintln(w, " "+line)
	}

	fmt.Fprintln(w, output.Section(fmt.Sprintf("Week %s to %s", d.Week.StartDate, d.Week.EndDate), 0))
	tbl := output.NewTable("Day", "Tracked", "Sessions")
	for _, day := range d.Week.PerDay {
		tbl.AddRow(day.Date, report.FormatDuration(day.TotalDuration), fmt.Sprint(day.SessionCount))
	}
	_ = tbl.Fprint(w)

	in := d.Insights
	fmt.Fprintln(w, output.Section(fmt.Sprintf("Last %d Days", in.PeriodDays), 0))
	fmt.Fprintln(w, " "+output.ScoreBar(in.ProductivityScore, 20))
	fmt.Fprintln(w, output.Field("Average per Day", report.FormatDuration(in.AvgDailyDuration)))
	if in.MostCommonCategory != "" {
		fmt.Fprintln(w, output.Field("Top Category", in.MostCommonCategory))
	}
	for _, s := range in.Suggestions {
		fmt.Fprintln(w, " "+output.StyleWarning.Render("•")+" "+s)
	}
	if in.SkippedCount > 0 {
		fmt.Fprintln(w, output.StyleMuted.Render(fmt.Sprintf(" %d invalid records skipped.", in.SkippedCount)))
	}
}
