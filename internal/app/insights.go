package app

import (
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/tasktimer/internal/analyzer"
	"github.com/blackwell-systems/tasktimer/internal/report"
)

var (
	insightsDays       int
	insightsCategories []string
	insightsFormat     report.Format
	insightsOut        string
	insightsRender     bool
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Analyze recent work patterns",
	Long: `Analyze the last N days (today included): category distribution, peak
hours, work blocks, a 0-100 productivity score with its rating, and
suggestions.

Examples:
  tasktimer insights
  tasktimer insights --days 30 --category development --category bugfix
  tasktimer insights --format json -o insights.json`,
	RunE: runInsights,
}

func init() {
	insightsCmd.Flags().IntVar(&insightsDays, "days", 0, "Number of days to analyze (default analysis.period_days)")
	insightsCmd.Flags().StringSliceVarP(&insightsCategories, "category", "c", nil, "Only analyze these categories")
	addFormatFlag(insightsCmd.Flags(), &insightsFormat)
	insightsCmd.Flags().StringVarP(&insightsOut, "output", "o", "", "Write the report to a file")
	insightsCmd.Flags().BoolVar(&insightsRender, "render", false, "Render markdown for the terminal")
	rootCmd.AddCommand(insightsCmd)
}

func runInsights(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = e.Close() }()

	in, err := insightsFor(e, insightsDays, insightsCategories)
	if err != nil {
		return err
	}
	return emitReport(cmd, e, in, insightsFormat, insightsOut, insightsRender)
}

// insightsFor analyzes the days calendar days ending today. days <= 0 uses
// the configured period.
func insightsFor(e *env, days int, categories []string) (analyzer.Insights, error) {
	p := e.engine.DefaultPeriod(now())
	if days > 0 {
		p = analyzer.LastDays(now(), days, e.location())
	}
	p.Categories = categories

	last := p.Start.AddDate(0, 0, p.Days-1)
	sessions, err := e.sessionsIn(analyzer.DaysRange(p.Start, last, e.location()), categories)
	if err != nil {
		return analyzer.Insights{}, err
	}
	return e.engine.Insights(sessions, p), nil
}
