package app

import (
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/tasktimer/internal/analyzer"
	"github.com/blackwell-systems/tasktimer/internal/report"
)

var (
	dailyDate   string
	dailyFormat report.Format
	dailyOut    string
	dailyRender bool
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Report on a single day",
	Long: `Summarize one calendar day: total time, the category breakdown with a
bar chart, and every session that started that day.

Examples:
  tasktimer daily
  tasktimer daily --date 2026-03-10 --format markdown -o today.md
  tasktimer daily --render`,
	RunE: runDaily,
}

func init() {
	dailyCmd.Flags().StringVarP(&dailyDate, "date", "d", "", "Day to report on, YYYY-MM-DD (default today)")
	addFormatFlag(dailyCmd.Flags(), &dailyFormat)
	dailyCmd.Flags().StringVarP(&dailyOut, "output", "o", "", "Write the report to a file")
	dailyCmd.Flags().BoolVar(&dailyRender, "render", false, "Render markdown for the terminal")
	rootCmd.AddCommand(dailyCmd)
}

func runDaily(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = e.Close() }()

	day, err := parseDay(dailyDate, e.location())
	if err != nil {
		return err
	}
	sessions, err := e.sessionsIn(analyzer.DayRange(day, e.location()), nil)
	if err != nil {
		return err
	}

	r := e.engine.Daily(sessions, day)
	return emitReport(cmd, e, r, dailyFormat, dailyOut, dailyRender)
}
