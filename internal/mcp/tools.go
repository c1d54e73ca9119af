package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/blackwell-systems/tasktimer/internal/analyzer"
	"github.com/blackwell-systems/tasktimer/internal/session"
	"github.com/blackwell-systems/tasktimer/internal/store"
	"github.com/blackwell-systems/tasktimer/internal/tracker"
)

var (
	noArgsSchema   = json.RawMessage(`{"type":"object","properties":{},"additionalProperties":false}`)
	insightsSchema = json.RawMessage(`{"type":"object","properties":{"days":{"type":"integer","description":"Number of days ending today (default: configured period)"},"categories":{"type":"array","items":{"type":"string"},"description":"Only analyze these categories"}},"additionalProperties":false}`)
	dailySchema    = json.RawMessage(`{"type":"object","properties":{"date":{"type":"string","description":"Day as YYYY-MM-DD (default today)"}},"additionalProperties":false}`)
	weeklySchema   = json.RawMessage(`{"type":"object","properties":{"start":{"type":"string","description":"First day as YYYY-MM-DD (default this Monday)"},"end":{"type":"string","description":"Last day as YYYY-MM-DD (default six days after start)"}},"additionalProperties":false}`)
)

// addTools registers every tool handler on s.
func addTools(s *Server) {
	s.registerTool(toolDef{
		Name:        "get_insights",
		Description: "Productivity score, category distribution, peak hours, work blocks and suggestions for the last N days.",
		InputSchema: insightsSchema,
		Handler:     s.handleGetInsights,
	})
	s.registerTool(toolDef{
		Name:        "get_daily_report",
		Description: "Total time, category breakdown and sessions for one day.",
		InputSchema: dailySchema,
		Handler:     s.handleGetDailyReport,
	})
	s.registerTool(toolDef{
		Name:        "get_weekly_report",
		Description: "Totals, category breakdown and per-day totals for a range of days.",
		InputSchema: weeklySchema,
		Handler:     s.handleGetWeeklyReport,
	})
	s.registerTool(toolDef{
		Name:        "get_timer_status",
		Description: "The running timer, if any, and how long it has been running.",
		InputSchema: noArgsSchema,
		Handler:     s.handleGetTimerStatus,
	})
}

func decodeArgs(args json.RawMessage, v any) error {
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// day parses a YYYY-MM-DD argument in the engine's location. Empty means
// fallback.
func (s *Server) day(value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return fallback, nil
	}
	t, err := time.ParseInLocation(analyzer.DateLayout, value, s.engine.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", value)
	}
	return t, nil
}

func (s *Server) sessionsIn(r analyzer.Range, categories []string) ([]session.Session, error) {
	return s.db.ListSessions(store.SessionFilter{Start: r.Start, End: r.End, Categories: categories})
}

func (s *Server) handleGetInsights(_ context.Context, args json.RawMessage) (any, error) {
	var params struct {
		Days       int      `json:"days"`
		Categories []string `json:"categories"`
	}
	if err := decodeArgs(args, &params); err != nil {
		return nil, err
	}
	if params.Days < 0 {
		return nil, fmt.Errorf("days must be positive, got %d", params.Days)
	}

	p := s.engine.DefaultPeriod(s.now())
	if params.Days > 0 {
		p = analyzer.LastDays(s.now(), params.Days, s.engine.Location())
	}
	p.Categories = params.Categories

	last := p.Start.AddDate(0, 0, p.Days-1)
	sessions, err := s.sessionsIn(analyzer.DaysRange(p.Start, last, s.engine.Location()), params.Categories)
	if err != nil {
		return nil, err
	}
	return s.engine.Insights(sessions, p), nil
}

func (s *Server) handleGetDailyReport(_ context.Context, args json.RawMessage) (any, error) {
	var params struct {
		Date string `json:"date"`
	}
	if err := decodeArgs(args, &params); err != nil {
		return nil, err
	}
	day, err := s.day(params.Date, s.now())
	if err != nil {
		return nil, err
	}

	sessions, err := s.sessionsIn(analyzer.DayRange(day, s.engine.Location()), nil)
	if err != nil {
		return nil, err
	}
	return s.engine.Daily(sessions, day), nil
}

func (s *Server) handleGetWeeklyReport(_ context.Context, args json.RawMessage) (any, error) {
	var params struct {
		Start string `json:"start"`
		End   string `json:"end"`
	}
	if err := decodeArgs(args, &params); err != nil {
		return nil, err
	}

	monday, _ := analyzer.WeekOf(s.now(), s.engine.Location())
	start, err := s.day(params.Start, monday)
	if err != nil {
		return nil, err
	}
	end, err := s.day(params.End, start.AddDate(0, 0, 6))
	if err != nil {
		return nil, err
	}

	sessions, err := s.sessionsIn(analyzer.DaysRange(start, end, s.engine.Location()), nil)
	if err != nil {
		return nil, err
	}
	return s.engine.Weekly(sessions, start, end)
}

func (s *Server) handleGetTimerStatus(_ context.Context, _ json.RawMessage) (any, error) {
	t := tracker.New(s.db, s.engine.Config().Categories, tracker.WithClock(s.now))
	return t.Status()
}
