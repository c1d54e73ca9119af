package analyzer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/tasktimer/internal/session"
)

// day is a Tuesday.
var day = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func sess(id, category string, start time.Time, d time.Duration) session.Session {
	return session.New(id, "task "+id, category, start, start.Add(d))
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Location = time.UTC
	return cfg
}

func testEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(testConfig())
	require.NoError(t, err)
	return e
}
