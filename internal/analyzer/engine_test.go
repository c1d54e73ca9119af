package analyzer

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/tasktimer/internal/session"
	"github.com/blackwell-systems/tasktimer/internal/suggest"
)

func TestNewEngine_RejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name  string
		field string
		edit  func(*Config)
	}{
		{"negative gap", "gap_threshold", func(c *Config) { c.GapThreshold = -time.Minute }},
		{"no categories", "categories", func(c *Config) { c.Categories = nil }},
		{"duplicate category", "categories", func(c *Config) { c.Categories = []string{"docs", "docs"} }},
		{"blank category", "categories", func(c *Config) { c.Categories = []string{"docs", " "} }},
		{"zero daily target", "daily_target", func(c *Config) { c.DailyTarget = 0 }},
		{"zero period", "period_days", func(c *Config) { c.PeriodDays = 0 }},
		{"dominance above one", "dominance_threshold", func(c *Config) { c.DominanceThreshold = 1.5 }},
		{"dominance cap too large", "dominance_cap", func(c *Config) { c.DominanceCap = 101 }},
		{"zero spread", "min_spread", func(c *Config) { c.MinSpread = 0 }},
		{"focus ratio of one", "focus_ratio", func(c *Config) { c.FocusRatio = 1 }},
		{"zero focus block", "focus_block", func(c *Config) { c.FocusBlock = 0 }},
		{"negative peak hours", "top_peak_hours", func(c *Config) { c.TopPeakHours = -1 }},
		{"weights do not sum to one", "weights", func(c *Config) { c.Weights = Weights{Volume: 0.5, Consistency: 0.5, Diversity: 0.5} }},
		{"negative weight", "weights", func(c *Config) { c.Weights = Weights{Volume: 1.2, Consistency: -0.2} }},
		{"negative suggestion limit", "max_suggestions", func(c *Config) { c.MaxSuggestions = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.edit(&cfg)

			e, err := NewEngine(cfg)

			assert.Nil(t, e)
			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr), "got %v", err)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestNewEngine_DefaultsLocation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Location = nil

	e, err := NewEngine(cfg)

	require.NoError(t, err)
	assert.Equal(t, time.Local, e.Location())
}

func TestNewEngine_CopiesCategories(t *testing.T) {
	cfg := testConfig()
	e, err := NewEngine(cfg)
	require.NoError(t, err)

	cfg.Categories[0] = "mutated"

	assert.Equal(t, DefaultCategories, e.Config().Categories)
}

func TestEngine_Daily(t *testing.T) {
	e := testEngine(t)
	sessions := []session.Session{
		sess("s2", "meetings", at(11, 0), 30*time.Minute),
		sess("s1", "development", at(9, 0), 90*time.Minute),
		sess("other-day", "development", at(-2, 0), time.Hour),
	}

	report := e.Daily(sessions, at(15, 0))

	assert.Equal(t, "2026-03-10", report.Date)
	assert.Equal(t, int64(7200), report.TotalDuration)
	assert.Equal(t, 2, report.SessionCount)
	require.Len(t, report.Distribution, 2)
	assert.Equal(t, "development", report.Distribution[0].Category)
	assert.Equal(t, 75, report.Distribution[0].Percent)
	assert.Equal(t, "meetings", report.Distribution[1].Category)
	assert.Equal(t, 25, report.Distribution[1].Percent)
	require.Len(t, report.Sessions, 2)
	assert.Equal(t, "s1", report.Sessions[0].ID)
	assert.Zero(t, report.SkippedCount)
}

func TestEngine_Daily_SkipsMalformed(t *testing.T) {
	e := testEngine(t)
	bad := session.Session{
		ID:              "bad",
		Task:            "broken",
		Category:        "development",
		StartTime:       at(12, 0),
		EndTime:         at(11, 0),
		DurationSeconds: 3600,
	}
	sessions := []session.Session{
		sess("ok", "development", at(9, 0), time.Hour),
		bad,
	}

	report := e.Daily(sessions, day)

	assert.Equal(t, 1, report.SkippedCount)
	assert.Equal(t, 1, report.SessionCount)
	assert.Equal(t, int64(3600), report.TotalDuration)
}

func TestEngine_Daily_SkipsUnknownCategory(t *testing.T) {
	e := testEngine(t)

	report := e.Daily([]session.Session{sess("x", "gardening", at(9, 0), time.Hour)}, day)

	assert.Equal(t, 1, report.SkippedCount)
	assert.Zero(t, report.SessionCount)
	assert.Empty(t, report.Distribution)
}

func TestEngine_Weekly(t *testing.T) {
	e := testEngine(t)
	monday, sunday := WeekOf(day, time.UTC)
	sessions := []session.Session{
		sess("mon", "development", monday.Add(9*time.Hour), 2*time.Hour),
		sess("tue", "docs", at(10, 0), time.Hour),
		sess("tue2", "development", at(14, 0), time.Hour),
		sess("next-week", "development", sunday.AddDate(0, 0, 1).Add(9*time.Hour), time.Hour),
	}

	report, err := e.Weekly(sessions, monday, sunday)

	require.NoError(t, err)
	assert.Equal(t, "2026-03-09", report.StartDate)
	assert.Equal(t, "2026-03-15", report.EndDate)
	assert.Equal(t, int64(4*3600), report.TotalDuration)
	assert.Equal(t, 3, report.SessionCount)
	require.Len(t, report.PerDay, 7)
	assert.Equal(t, DayTotal{Date: "2026-03-09", TotalDuration: 7200, SessionCount: 1}, report.PerDay[0])
	assert.Equal(t, DayTotal{Date: "2026-03-10", TotalDuration: 7200, SessionCount: 2}, report.PerDay[1])
	assert.Equal(t, DayTotal{Date: "2026-03-15"}, report.PerDay[6])
}

func TestEngine_Weekly_InvalidRange(t *testing.T) {
	e := testEngine(t)

	_, err := e.Weekly(nil, day, day.AddDate(0, 0, -1))

	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestEngine_Insights_Empty(t *testing.T) {
	e := testEngine(t)

	ins := e.Insights(nil, LastDays(day, 7, time.UTC))

	assert.Equal(t, 7, ins.PeriodDays)
	assert.Equal(t, 0, ins.ProductivityScore)
	assert.Equal(t, RatingLow, ins.Rating)
	assert.Empty(t, ins.Distribution)
	assert.Empty(t, ins.PeakHours)
	assert.Empty(t, ins.WorkBlocks)
	assert.Equal(t, []string{suggest.InsufficientDataMessage}, ins.Suggestions)
	assert.Zero(t, ins.SkippedCount)
}

func TestEngine_Insights_SingleCategoryDominates(t *testing.T) {
	e := testEngine(t)
	sessions := []session.Session{
		sess("a", "development", at(9, 0), 2*time.Hour),
		sess("b", "development", at(11, 10), 2*time.Hour),
	}

	ins := e.Insights(sessions, Period{Start: day, Days: 1})

	assert.Contains(t, ins.SuggestionRules, "dominance")
	assert.Equal(t, ins.Suggestions[0], suggest.Dominance.Message(&suggest.Context{
		TopCategory:    "development",
		CategoryShares: map[string]float64{"development": 1},
	}, suggest.DefaultThresholds))
	assert.Equal(t, "development", ins.MostCommonCategory)
}

func TestEngine_Insights_FullAnalysis(t *testing.T) {
	e := testEngine(t)
	sessions := []session.Session{
		sess("a", "development", at(9, 0), 90*time.Minute),
		sess("b", "meetings", at(10, 40), 30*time.Minute),
		sess("c", "docs", at(14, 0), time.Hour),
		sess("bad", "nope", at(16, 0), time.Hour),
	}

	ins := e.Insights(sessions, Period{Start: day, Days: 1})

	assert.Equal(t, day, ins.Start)
	assert.Equal(t, day.AddDate(0, 0, 1), ins.End)
	assert.Equal(t, int64(3*3600), ins.TotalDuration)
	assert.Equal(t, int64(3*3600), ins.AvgDailyDuration)
	assert.Equal(t, 3, ins.SessionCount)
	assert.Equal(t, 1, ins.SkippedCount)
	assert.Len(t, ins.WorkBlocks, 2)
	require.NotEmpty(t, ins.PeakHours)
	assert.Equal(t, 9, ins.PeakHours[0].Hour)
	assert.Len(t, ins.Suggestions, len(ins.SuggestionRules))
	assert.GreaterOrEqual(t, ins.ProductivityScore, 0)
	assert.LessOrEqual(t, ins.ProductivityScore, 100)
	assert.Equal(t, RatingFor(ins.ProductivityScore), ins.Rating)
}

func TestEngine_Insights_CategoryFilter(t *testing.T) {
	e := testEngine(t)
	sessions := []session.Session{
		sess("a", "development", at(9, 0), time.Hour),
		sess("b", "meetings", at(11, 0), time.Hour),
	}

	ins := e.Insights(sessions, Period{Start: day, Days: 1, Categories: []string{"meetings"}})

	assert.Equal(t, 1, ins.SessionCount)
	require.Len(t, ins.Distribution, 1)
	assert.Equal(t, "meetings", ins.Distribution[0].Category)
}

func TestEngine_Insights_MaxSuggestions(t *testing.T) {
	cfg := testConfig()
	cfg.MaxSuggestions = 1
	e, err := NewEngine(cfg)
	require.NoError(t, err)
	sessions := []session.Session{
		sess("a", "development", at(9, 0), 5*time.Minute),
		sess("b", "development", at(11, 0), 5*time.Minute),
		sess("c", "development", at(15, 0), 5*time.Minute),
	}

	ins := e.Insights(sessions, Period{Start: day, Days: 1})

	assert.Equal(t, []string{"dominance"}, ins.SuggestionRules)
}

func TestEngine_Insights_Deterministic(t *testing.T) {
	e := testEngine(t)
	sessions := []session.Session{
		sess("c", "docs", at(14, 0), time.Hour),
		sess("a", "development", at(9, 0), 90*time.Minute),
		sess("b", "meetings", at(10, 40), 30*time.Minute),
	}
	want := e.Insights(sessions, Period{Start: day, Days: 1})

	var wg sync.WaitGroup
	results := make([]Insights, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			own := append([]session.Session(nil), sessions...)
			results[i] = e.Insights(own, Period{Start: day, Days: 1})
		}()
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestLastDays(t *testing.T) {
	p := LastDays(at(18, 30), 7, time.UTC)

	assert.Equal(t, 7, p.Days)
	assert.Equal(t, time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), p.Start)

	assert.Equal(t, 1, LastDays(day, 0, time.UTC).Days)
}
