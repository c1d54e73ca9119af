package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	startTask     string
	startCategory string
)

var startCmd = &cobra.Command{
	Use:   "start [task...]",
	Short: "Start timing a task",
	Long: `Start the timer for a task in one of the configured categories. Only one
timer can run at a time; stop or cancel it before starting another.

Examples:
  tasktimer start --task "review PR 42" --category development
  tasktimer start -c meetings standup`,
	RunE: runStart,
}

func init() {
	startCmd.Flags().StringVarP(&startTask, "task", "t", "", "Task description")
	startCmd.Flags().StringVarP(&startCategory, "category", "c", "development", "Task category")
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = e.Close() }()

	task := startTask
	if task == "" {
		task = strings.Join(args, " ")
	}

	timer, err := e.tracker().Start(task, startCategory)
	if err != nil {
		return err
	}
	logger.Debug("timer started", "task", timer.Task, "category", timer.Category)

	if flagJSON {
		return writeJSON(cmd, timer)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Started %q (%s) at %s\n",
		timer.Task, timer.Category, timer.StartTime.In(e.location()).Format("15:04"))
	return nil
}
