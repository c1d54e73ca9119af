// Package session defines the completed work session record consumed by the
// analytics engine, along with its validation rules.
package session

import (
	"fmt"
	"slices"
	"time"
)

// Session is a completed, timed unit of work. Sessions are immutable once
// recorded; in-progress timers are never represented as a Session.
type Session struct {
	// ID is an opaque identifier, unique per stored session.
	ID string `json:"id"`

	// Task is the free-form description of the work.
	Task string `json:"task"`

	// Category is one of the configured category names.
	Category string `json:"category"`

	// StartTime is when the session began.
	StartTime time.Time `json:"start_time"`

	// EndTime is when the session ended. Never before StartTime.
	EndTime time.Time `json:"end_time"`

	// DurationSeconds is EndTime - StartTime in whole seconds.
	DurationSeconds int64 `json:"duration_seconds"`
}

// New builds a Session from its boundaries, deriving DurationSeconds.
func New(id, task, category string, start, end time.Time) Session {
	return Session{
		ID:              id,
		Task:            task,
		Category:        category,
		StartTime:       start,
		EndTime:         end,
		DurationSeconds: int64(end.Sub(start) / time.Second),
	}
}

// Duration returns DurationSeconds as a time.Duration.
func (s Session) Duration() time.Duration {
	return time.Duration(s.DurationSeconds) * time.Second
}

// Day returns the calendar date of StartTime in loc. Sessions that cross
// midnight belong wholly to the day they started.
func (s Session) Day(loc *time.Location) time.Time {
	return StartOfDay(s.StartTime, loc)
}

// StartOfDay truncates t to midnight in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// durationTolerance absorbs sub-second truncation when durations were
// rounded down on export.
const durationTolerance = 1

// ValidationError describes why a session record cannot be analyzed.
type ValidationError struct {
	SessionID string
	Reason    string
}

func (e *ValidationError) Error() string {
	if e.SessionID == "" {
		return "invalid session: " + e.Reason
	}
	return fmt.Sprintf("invalid session %s: %s", e.SessionID, e.Reason)
}

// Validate checks the session invariants against the allowed categories.
// It returns nil or a *ValidationError.
func (s Session) Validate(categories []string) error {
	invalid := func(format string, args ...any) error {
		return &ValidationError{SessionID: s.ID, Reason: fmt.Sprintf(format, args...)}
	}

	if s.StartTime.IsZero() || s.EndTime.IsZero() {
		return invalid("missing start or end time")
	}
	if s.EndTime.Before(s.StartTime) {
		return invalid("end time %s is before start time %s",
			s.EndTime.Format(time.RFC3339), s.StartTime.Format(time.RFC3339))
	}
	if s.DurationSeconds < 0 {
		return invalid("negative duration %d", s.DurationSeconds)
	}
	span := int64(s.EndTime.Sub(s.StartTime) / time.Second)
	if diff := span - s.DurationSeconds; diff > durationTolerance || diff < -durationTolerance {
		return invalid("duration %ds does not match time span %ds", s.DurationSeconds, span)
	}
	if !slices.Contains(categories, s.Category) {
		return invalid("unknown category %q", s.Category)
	}
	return nil
}

// Partition splits sessions into valid records and validation errors for the
// rest. The input slice is not modified.
func Partition(sessions []Session, categories []string) ([]Session, []error) {
	valid := make([]Session, 0, len(sessions))
	var rejected []error
	for _, s := range sessions {
		if err := s.Validate(categories); err != nil {
			rejected = append(rejected, err)
			continue
		}
		valid = append(valid, s)
	}
	return valid, rejected
}
