package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/tasktimer/internal/analyzer"
	"github.com/blackwell-systems/tasktimer/internal/config"
	"github.com/blackwell-systems/tasktimer/internal/output"
	"github.com/blackwell-systems/tasktimer/internal/report"
	"github.com/blackwell-systems/tasktimer/internal/session"
	"github.com/blackwell-systems/tasktimer/internal/store"
	"github.com/blackwell-systems/tasktimer/internal/tracker"
)

// env bundles what a command needs: configuration, the open store, and the
// engine and formatter built from both.
type env struct {
	cfg        *config.Config
	db         *store.DB
	custom     []string
	engine     *analyzer.Engine
	formatter  *report.Formatter
	categories []string
}

// openEnv loads the configuration, opens the database and builds the engine
// with the configured and custom categories. Callers must Close it.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if cfg.File != "" {
		logger.Debug("config loaded", "file", cfg.File)
	} else {
		logger.Debug("no config file found, using defaults")
	}
	configureColor(cfg, cmd.OutOrStdout())

	db, err := store.Open(cfg.DBPath())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	logger.Debug("database opened", "path", db.Path())

	e := &env{cfg: cfg, db: db}
	if err := e.rebuild(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return e, nil
}

// rebuild reloads custom categories and reconstructs the engine.
func (e *env) rebuild() error {
	custom, err := e.db.ListCategories()
	if err != nil {
		return fmt.Errorf("loading categories: %w", err)
	}
	ec, err := e.cfg.EngineConfig(custom)
	if err != nil {
		return err
	}
	engine, err := analyzer.NewEngine(ec)
	if err != nil {
		return err
	}
	opts, err := e.cfg.FormatterOptions()
	if err != nil {
		return err
	}
	formatter, err := report.NewFormatter(opts)
	if err != nil {
		return err
	}

	e.custom = custom
	e.engine = engine
	e.formatter = formatter
	e.categories = ec.Categories
	return nil
}

func (e *env) Close() error {
	return e.db.Close()
}

func (e *env) tracker() *tracker.Tracker {
	return tracker.New(e.db, e.categories, tracker.WithClock(now))
}

func (e *env) location() *time.Location {
	return e.engine.Location()
}

// sessions loads the stored sessions selected by f and logs the records the
// engine will skip.
func (e *env) sessions(f store.SessionFilter) ([]session.Session, error) {
	sessions, err := e.db.ListSessions(f)
	if err != nil {
		return nil, err
	}
	_, rejected := e.engine.Partition(sessions)
	logSkipped(rejected)
	return sessions, nil
}

// sessionsIn loads sessions starting inside r.
func (e *env) sessionsIn(r analyzer.Range, categories []string) ([]session.Session, error) {
	return e.sessions(store.SessionFilter{Start: r.Start, End: r.End, Categories: categories})
}

// configureColor disables styling for --no-color, output.color: false, or
// when w is not a terminal.
func configureColor(cfg *config.Config, w io.Writer) {
	if flagNoColor || !cfg.Output.Color || !isTerminal(w) {
		output.SetNoColor(true)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// reportFormat resolves --format against the global --json flag.
func reportFormat(format report.Format) report.Format {
	if flagJSON {
		return report.JSON
	}
	return format
}

var errRenderFormat = errors.New("--render requires text or markdown output")

// emitReport writes a rendered report to outPath, or to the command's
// output. With render set the markdown form is styled by glamour first.
func emitReport(cmd *cobra.Command, e *env, v any, format report.Format, outPath string, render bool) error {
	format = reportFormat(format)
	if render {
		if format != report.Text && format != report.Markdown {
			return errRenderFormat
		}
		format = report.Markdown
	}

	content, err := e.formatter.Render(v, format)
	if err != nil {
		return err
	}
	if render {
		content, err = output.RenderMarkdown(content, e.cfg.Output.Width)
		if err != nil {
			return fmt.Errorf("rendering markdown: %w", err)
		}
	}

	if outPath == "" {
		_, err = fmt.Fprint(cmd.OutOrStdout(), content)
		return err
	}
	if err := os.WriteFile(outPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	logger.Info("report written", "path", outPath, "format", format)
	fmt.Fprintf(cmd.ErrOrStderr(), "Report saved to %s\n", outPath)
	return nil
}

// parseDay parses a YYYY-MM-DD date in loc. An empty value means today.
func parseDay(value string, loc *time.Location) (time.Time, error) {
	if value == "" {
		return session.StartOfDay(now(), loc), nil
	}
	day, err := time.ParseInLocation(analyzer.DateLayout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", value)
	}
	return day, nil
}

// writeJSON encodes v as indented JSON on the command's output.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
