package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/tasktimer/internal/report"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running timer and record the session",
	RunE:  runStop,
}

func init() {
	rootCmd.AddCommand(stopCmd)
}

func runStop(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = e.Close() }()

	s, err := e.tracker().Stop()
	if err != nil {
		return err
	}
	logger.Info("session recorded", "id", s.ID, "duration_seconds", s.DurationSeconds)

	if flagJSON {
		return writeJSON(cmd, s)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Stopped %q (%s) after %s\n",
		s.Task, s.Category, report.FormatDuration(s.DurationSeconds))
	return nil
}
