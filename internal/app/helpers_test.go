package app

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/tasktimer/internal/report"
	"github.com/blackwell-systems/tasktimer/internal/store"
)

func TestFormatValue(t *testing.T) {
	var f report.Format
	v := newFormatValue(report.Text, &f)

	assert.Equal(t, "text", v.String())
	assert.Equal(t, "format", v.Type())

	require.NoError(t, v.Set("MD"))
	assert.Equal(t, report.Markdown, f)

	err := v.Set("yaml")
	assert.ErrorIs(t, err, report.ErrUnsupportedFormat)
	assert.Equal(t, report.Markdown, f, "failed Set leaves the value unchanged")
}

func TestParseTimestamp(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)

	tests := []struct {
		name  string
		input string
		want  time.Time
		ok    bool
	}{
		{"rfc3339", "2026-03-10T09:00:00Z", time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), true},
		{"offset", "2026-03-10T09:00:00+01:00", time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC), true},
		{"zoneless", "2026-03-10T09:00:00", time.Date(2026, 3, 10, 7, 0, 0, 0, time.UTC), true},
		{"zoneless fraction", "2026-03-10T09:00:00.250000", time.Date(2026, 3, 10, 7, 0, 0, 250_000_000, time.UTC), true},
		{"space separated", "2026-03-10 09:00:00", time.Date(2026, 3, 10, 7, 0, 0, 0, time.UTC), true},
		{"garbage", "tuesday", time.Time{}, false},
		{"empty", "", time.Time{}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := parseTimestamp(tc.input, loc)
			assert.Equal(t, tc.ok, ok)
			assert.True(t, tc.want.Equal(got), "got %s, want %s", got, tc.want)
		})
	}
}

func TestReadSessions_AssignsMissingIDs(t *testing.T) {
	body := `{"sessions":[{"task":"x","category":"docs","start_time":"2026-03-10T09:00:00Z","end_time":"bad","duration_seconds":60}]}`

	sessions, err := readSessions(strings.NewReader(body), time.UTC)

	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Len(t, sessions[0].ID, 36)
	assert.True(t, sessions[0].EndTime.IsZero())
	assert.Error(t, sessions[0].Validate([]string{"docs"}))
}

func TestComputeDeltas(t *testing.T) {
	prev := &store.Snapshot{Score: 60, TotalDuration: 3600, SkippedCount: 2, Volume: 50}
	curr := &store.Snapshot{Score: 70, TotalDuration: 1800, SkippedCount: 3, Volume: 50}

	deltas := computeDeltas(prev, curr)
	byName := map[string]store.MetricDelta{}
	for _, d := range deltas {
		byName[d.Name] = d
	}

	require.Len(t, deltas, len(trackedMetrics))
	assert.Equal(t, "improved", byName["score"].Direction)
	assert.Equal(t, 10.0, byName["score"].Delta)
	assert.Equal(t, "regressed", byName["total_duration"].Direction)
	assert.Equal(t, "regressed", byName["skipped_count"].Direction, "more skipped records is worse")
	assert.Equal(t, "unchanged", byName["volume"].Direction)
}

func TestSuggestionChanges(t *testing.T) {
	prev := &store.Snapshot{Suggestions: []store.SnapshotSuggestion{{Rule: "dominance"}, {Rule: "overwork"}}}
	curr := &store.Snapshot{Suggestions: []store.SnapshotSuggestion{{Rule: "overwork"}, {Rule: "fragmentation"}}}

	added, cleared := suggestionChanges(prev, curr)

	assert.Equal(t, []string{"fragmentation"}, added)
	assert.Equal(t, []string{"dominance"}, cleared)
}

func TestNewLogger_Levels(t *testing.T) {
	var sb strings.Builder

	newLogger(&sb, false).Info("hidden")
	newLogger(&sb, false).Warn("shown")
	newLogger(&sb, true).Debug("debug shown")

	out := sb.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "debug shown")
}
