package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Discard the running timer without recording a session",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = e.Close() }()

		if err := e.tracker().Cancel(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Timer cancelled.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cancelCmd)
}
