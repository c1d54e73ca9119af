package analyzer

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/blackwell-systems/tasktimer/internal/session"
	"github.com/blackwell-systems/tasktimer/internal/suggest"
)

// ErrInvalidRange is returned when a report range ends before it starts.
var ErrInvalidRange = errors.New("end date is before start date")

// Engine produces reports and insights from completed sessions. It holds only
// its validated configuration, so one Engine may serve concurrent callers as
// long as each passes its own session slice.
type Engine struct {
	cfg     Config
	suggest *suggest.Engine
}

// NewEngine validates cfg and returns an engine. An invalid configuration is
// reported as a *ConfigError before any session is processed.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Categories = slices.Clone(cfg.Categories)
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	cfg.Suggestions.Dominance = cfg.DominanceThreshold

	return &Engine{
		cfg:     cfg,
		suggest: suggest.NewEngine(cfg.Suggestions, cfg.MaxSuggestions),
	}, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() Config {
	cfg := e.cfg
	cfg.Categories = slices.Clone(e.cfg.Categories)
	return cfg
}

// Location returns the location used for day and hour attribution.
func (e *Engine) Location() *time.Location {
	return e.cfg.Location
}

// Partition splits sessions into valid records and the validation errors of
// the rest.
func (e *Engine) Partition(sessions []session.Session) ([]session.Session, []error) {
	return session.Partition(sessions, e.cfg.Categories)
}

// Daily builds the report for the calendar day containing day.
func (e *Engine) Daily(sessions []session.Session, day time.Time) DailyReport {
	valid, rejected := e.Partition(sessions)
	r := DayRange(day, e.cfg.Location)
	included := Filter(valid, r, nil)

	return DailyReport{
		Date:         r.Start.Format(DateLayout),
		Summary:      summarize(included),
		Sessions:     included,
		SkippedCount: len(rejected),
	}
}

// Weekly builds the report for the inclusive range of days from start through
// end. Every day in the range gets a per-day row, including days with no
// sessions.
func (e *Engine) Weekly(sessions []session.Session, start, end time.Time) (WeeklyReport, error) {
	loc := e.cfg.Location
	first := session.StartOfDay(start, loc)
	last := session.StartOfDay(end, loc)
	if last.Before(first) {
		return WeeklyReport{}, fmt.Errorf("weekly report %s to %s: %w",
			first.Format(DateLayout), last.Format(DateLayout), ErrInvalidRange)
	}

	valid, rejected := e.Partition(sessions)
	included := Filter(valid, DaysRange(first, last, loc), nil)

	perDay := []DayTotal{}
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		perDay = append(perDay, DayTotal{Date: day.Format(DateLayout)})
	}
	for _, s := range included {
		idx := dayIndex(first, s.Day(loc))
		if idx < 0 || idx >= len(perDay) {
			continue
		}
		perDay[idx].TotalDuration += s.DurationSeconds
		perDay[idx].SessionCount++
	}

	return WeeklyReport{
		StartDate:    first.Format(DateLayout),
		EndDate:      last.Format(DateLayout),
		Summary:      summarize(included),
		PerDay:       perDay,
		Sessions:     included,
		SkippedCount: len(rejected),
	}, nil
}

// Period selects the sessions an insights analysis covers.
type Period struct {
	// Start is the first calendar day of the period.
	Start time.Time

	// Days is the number of calendar days covered, starting at Start.
	Days int

	// Categories restricts the analysis; empty means every category.
	Categories []string
}

// LastDays returns the period of days calendar days ending on the day of now.
func LastDays(now time.Time, days int, loc *time.Location) Period {
	if days < 1 {
		days = 1
	}
	return Period{
		Start: session.StartOfDay(now, loc).AddDate(0, 0, -(days - 1)),
		Days:  days,
	}
}

// DefaultPeriod returns the configured insights window ending on the day of now.
func (e *Engine) DefaultPeriod(now time.Time) Period {
	return LastDays(now, e.cfg.PeriodDays, e.cfg.Location)
}

// Insights runs the full analysis over the sessions that start inside p.
// Invalid records are excluded and counted in SkippedCount; the analysis
// itself never fails.
func (e *Engine) Insights(sessions []session.Session, p Period) Insights {
	loc := e.cfg.Location
	days := max(p.Days, 1)
	first := session.StartOfDay(p.Start, loc)
	last := first.AddDate(0, 0, days-1)

	valid, rejected := e.Partition(sessions)
	included := Filter(valid, DaysRange(first, last, loc), p.Categories)
	summary := summarize(included)
	blocks := DetectWorkBlocks(included, e.cfg.GapThreshold)

	score, rating, subs := ComputeScore(ScoreInput{
		PeriodDays:    days,
		TotalDuration: summary.TotalDuration,
		SessionCount:  summary.SessionCount,
		Distribution:  summary.Distribution,
		WorkBlocks:    blocks,
	}, e.cfg)

	ctx := suggestContext(included, summary, blocks, days)
	ctx.Score = score
	ctx.DiversityScore = subs.Diversity
	suggestions := e.suggest.Run(ctx)

	rules := make([]string, len(suggestions))
	for i, s := range suggestions {
		rules[i] = s.Rule
	}

	return Insights{
		PeriodDays:         days,
		Start:              first,
		End:                last.AddDate(0, 0, 1),
		TotalDuration:      summary.TotalDuration,
		SessionCount:       summary.SessionCount,
		AvgDailyDuration:   summary.TotalDuration / int64(days),
		ProductivityScore:  score,
		Rating:             rating,
		SubScores:          subs,
		MostCommonCategory: MostCommonCategory(summary.Distribution),
		Distribution:       summary.Distribution,
		PeakHours:          PeakHours(included, loc, e.cfg.TopPeakHours),
		WorkBlocks:         blocks,
		Suggestions:        suggest.Messages(suggestions),
		SuggestionRules:    rules,
		SkippedCount:       len(rejected),
	}
}

// suggestContext derives the statistics the suggestion rules read.
func suggestContext(sessions []session.Session, summary Summary, blocks []WorkBlock, days int) *suggest.Context {
	ctx := &suggest.Context{
		PeriodDays:     days,
		TotalDuration:  summary.TotalDuration,
		SessionCount:   summary.SessionCount,
		WorkBlocks:     len(blocks),
		LongestBlock:   LongestBlock(blocks),
		CategoryShares: make(map[string]float64, len(summary.Distribution)),
	}
	if days > 0 {
		ctx.AvgDailyDuration = float64(summary.TotalDuration) / float64(days)
	}
	if summary.SessionCount > 0 {
		ctx.AvgSessionDuration = float64(summary.TotalDuration) / float64(summary.SessionCount)
	}
	for _, s := range sessions {
		ctx.LongestSession = max(ctx.LongestSession, s.DurationSeconds)
	}
	if summary.TotalDuration > 0 {
		for _, share := range summary.Distribution {
			ctx.CategoryShares[share.Category] = float64(share.Duration) / float64(summary.TotalDuration)
		}
	}
	// Distribution is ordered by duration, so the first entry holds the most time.
	if len(summary.Distribution) > 0 {
		ctx.TopCategory = summary.Distribution[0].Category
	}
	return ctx
}

func summarize(included []session.Session) Summary {
	summary := Summary{SessionCount: len(included)}
	for _, s := range included {
		summary.TotalDuration += s.DurationSeconds
	}
	summary.Distribution = Distribution(included)
	return summary
}

// dayIndex counts calendar days from first to day. Both must be midnights in
// the same location; AddDate keeps DST transitions from skewing the count.
func dayIndex(first, day time.Time) int {
	n := 0
	for d := first; d.Before(day); d = d.AddDate(0, 0, 1) {
		n++
	}
	return n
}
