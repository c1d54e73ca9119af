package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/tasktimer/internal/analyzer"
	"github.com/blackwell-systems/tasktimer/internal/output"
	"github.com/blackwell-systems/tasktimer/internal/report"
	"github.com/blackwell-systems/tasktimer/internal/store"
)

var (
	listCategories []string
	listToday      bool
	listWeek       bool
	listLimit      int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded sessions, newest first",
	Long: `List recorded sessions, newest first. Records that fail validation are
listed too so they can be found and deleted; reports skip them.

Examples:
  tasktimer list --today
  tasktimer list --week --category meetings
  tasktimer list --limit 50 --json`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringSliceVarP(&listCategories, "category", "c", nil, "Only sessions in these categories")
	listCmd.Flags().BoolVar(&listToday, "today", false, "Only sessions started today")
	listCmd.Flags().BoolVar(&listWeek, "week", false, "Only sessions started this week (Monday to Sunday)")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "Maximum number of sessions (0 = all)")
	listCmd.MarkFlagsMutuallyExclusive("today", "week")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = e.Close() }()

	f := store.SessionFilter{
		Categories: listCategories,
		Limit:      listLimit,
		Newest:     true,
	}
	loc := e.location()
	switch {
	case listToday:
		r := analyzer.DayRange(now(), loc)
		f.Start, f.End = r.Start, r.End
	case listWeek:
		monday, sunday := analyzer.WeekOf(now(), loc)
		r := analyzer.DaysRange(monday, sunday, loc)
		f.Start, f.End = r.Start, r.End
	}

	sessions, err := e.sessions(f)
	if err != nil {
		return err
	}
	if flagJSON {
		return writeJSON(cmd, sessions)
	}

	w := cmd.OutOrStdout()
	if len(sessions) == 0 {
		fmt.Fprintln(w, "No sessions found.")
		return nil
	}

	tbl := output.NewTable("ID", "Date", "Time", "Duration", "Category", "Task")
	tbl.SetMaxCellWidth(40)
	for _, s := range sessions {
		start := s.StartTime.In(loc)
		tbl.AddRow(
			s.ID,
			start.Format(analyzer.DateLayout),
			start.Format("15:04")+"-"+s.EndTime.In(loc).Format("15:04"),
			report.FormatDuration(s.DurationSeconds),
			s.Category,
			s.Task,
		)
	}
	return tbl.Fprint(w)
}
