package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/tasktimer/internal/output"
	"github.com/blackwell-systems/tasktimer/internal/report"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the running timer",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = e.Close() }()

	st, err := e.tracker().Status()
	if err != nil {
		return err
	}
	if flagJSON {
		return writeJSON(cmd, st)
	}

	w := cmd.OutOrStdout()
	if !st.Running {
		fmt.Fprintln(w, "No timer running.")
		return nil
	}
	fmt.Fprintln(w, output.Field("Task", st.Timer.Task))
	fmt.Fprintln(w, output.Field("Category", st.Timer.Category))
	fmt.Fprintln(w, output.Field("Started", st.Timer.StartTime.In(e.location()).Format("2006-01-02 15:04")))
	fmt.Fprintln(w, output.Field("Elapsed", report.FormatDuration(st.ElapsedSeconds)))
	return nil
}
