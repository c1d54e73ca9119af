package app

import (
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/tasktimer/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run an MCP stdio server exposing reports and timer status",
	Long: `Start a Model Context Protocol server on stdin/stdout. It exposes four
tools:

  get_insights        Score, distribution, peak hours and suggestions for N days
  get_daily_report    One day's totals, breakdown and sessions
  get_weekly_report   Totals and per-day rows for a range of days
  get_timer_status    The running timer and its elapsed time

Example MCP client configuration:
  {"mcpServers":{"tasktimer":{"command":"tasktimer","args":["serve"]}}}`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = e.Close() }()

	srv := mcp.NewServer(e.db, e.engine,
		mcp.WithLogger(logger),
		mcp.WithClock(now),
		mcp.WithVersion(appVersion),
	)
	logger.Debug("mcp server listening on stdio")
	return srv.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
}
