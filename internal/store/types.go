// Package store provides SQLite database access for tasktimer sessions, the
// running timer, custom categories and insight snapshots.
package store

import (
	"errors"
	"time"
)

var (
	// ErrTimerRunning is returned when starting a timer while one is active.
	ErrTimerRunning = errors.New("a timer is already running")

	// ErrNoActiveTimer is returned when stopping without an active timer.
	ErrNoActiveTimer = errors.New("no timer is running")

	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")
)

// timeLayout is the stored timestamp layout. Values are always UTC.
const timeLayout = time.RFC3339

// ActiveTimer is the single in-progress timer. It is never passed to the
// analytics engine.
type ActiveTimer struct {
	Task      string    `json:"task"`
	Category  string    `json:"category"`
	StartTime time.Time `json:"start_time"`
}

// SessionFilter selects stored sessions. Zero values do not filter.
type SessionFilter struct {
	// Start and End bound the session start time to [Start, End).
	Start time.Time
	End   time.Time

	// Categories restricts results to the listed categories.
	Categories []string

	// Limit caps the number of rows returned.
	Limit int

	// Newest orders results by start time descending instead of ascending.
	Newest bool
}

// Snapshot is a stored point-in-time insights summary.
type Snapshot struct {
	ID               int64     `json:"id"`
	TakenAt          time.Time `json:"taken_at"`
	PeriodDays       int       `json:"period_days"`
	Score            int       `json:"score"`
	Rating           string    `json:"rating"`
	TotalDuration    int64     `json:"total_duration"`
	SessionCount     int       `json:"session_count"`
	AvgDailyDuration int64     `json:"avg_daily_duration"`
	Volume           float64   `json:"volume"`
	Consistency      float64   `json:"consistency"`
	Diversity        float64   `json:"diversity"`
	WorkBlocks       int       `json:"work_blocks"`
	TopCategory      string    `json:"top_category,omitempty"`
	SkippedCount     int       `json:"skipped_count"`

	// Suggestions are loaded by GetSnapshot and friends in their stored order.
	Suggestions []SnapshotSuggestion `json:"suggestions"`
}

// SnapshotSuggestion is one suggestion recorded with a snapshot.
type SnapshotSuggestion struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// SnapshotDiff represents the comparison between two snapshots.
type SnapshotDiff struct {
	Previous *Snapshot     `json:"previous"`
	Current  *Snapshot     `json:"current"`
	Deltas   []MetricDelta `json:"deltas"`
}

// MetricDelta represents the change in a single metric between snapshots.
type MetricDelta struct {
	Name      string  `json:"name"`
	Previous  float64 `json:"previous"`
	Current   float64 `json:"current"`
	Delta     float64 `json:"delta"`
	Direction string  `json:"direction"` // "improved", "regressed", "unchanged"
}
