package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import sessions from a JSON file",
	Long: `Import sessions from a {"sessions": [...]} JSON file ("-" reads stdin).
Sessions whose ID is already stored are left untouched. Records that fail
validation are imported anyway; reports skip them and count them as skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = e.Close() }()

	in, err := openInput(args[0])
	if err != nil {
		return fmt.Errorf("opening %s: %w", args[0], err)
	}
	defer func() { _ = in.Close() }()

	sessions, err := readSessions(in, e.location())
	if err != nil {
		return err
	}
	_, rejected := e.engine.Partition(sessions)
	logSkipped(rejected)

	added, err := e.db.InsertSessions(sessions)
	if err != nil {
		return err
	}
	logger.Info("sessions imported", "read", len(sessions), "added", added, "invalid", len(rejected))

	if flagJSON {
		return writeJSON(cmd, map[string]int{
			"read":    len(sessions),
			"added":   added,
			"invalid": len(rejected),
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d of %d sessions (%d invalid).\n", added, len(sessions), len(rejected))
	return nil
}
