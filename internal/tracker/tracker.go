// Package tracker runs the start/stop timer that produces completed sessions.
package tracker

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/blackwell-systems/tasktimer/internal/session"
	"github.com/blackwell-systems/tasktimer/internal/store"
)

var (
	// ErrEmptyTask is returned when starting a timer without a task.
	ErrEmptyTask = errors.New("task description cannot be empty")

	// ErrUnknownCategory is returned when starting a timer with a category
	// outside the configured enumeration.
	ErrUnknownCategory = errors.New("unknown category")
)

// TimerStore persists the running timer and completed sessions.
type TimerStore interface {
	StartTimer(t store.ActiveTimer) error
	ActiveTimer() (*store.ActiveTimer, error)
	StopTimer(s session.Session) error
	CancelTimer() error
}

// Tracker starts and stops the single running timer.
type Tracker struct {
	store      TimerStore
	categories []string
	now        func() time.Time
	newID      func() string
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithIDGenerator replaces the random UUID session IDs.
func WithIDGenerator(newID func() string) Option {
	return func(t *Tracker) { t.newID = newID }
}

// New returns a Tracker that accepts the given categories.
func New(st TimerStore, categories []string, opts ...Option) *Tracker {
	t := &Tracker{
		store:      st,
		categories: slices.Clone(categories),
		now:        time.Now,
		newID:      func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start begins timing task. It fails with ErrEmptyTask, ErrUnknownCategory or
// store.ErrTimerRunning.
func (t *Tracker) Start(task, category string) (store.ActiveTimer, error) {
	task = strings.TrimSpace(task)
	if task == "" {
		return store.ActiveTimer{}, ErrEmptyTask
	}
	if !slices.Contains(t.categories, category) {
		return store.ActiveTimer{}, fmt.Errorf("%w %q (valid: %s)", ErrUnknownCategory, category, strings.Join(t.categories, ", "))
	}

	timer := store.ActiveTimer{
		Task:      task,
		Category:  category,
		StartTime: t.clock(),
	}
	if err := t.store.StartTimer(timer); err != nil {
		return store.ActiveTimer{}, err
	}
	return timer, nil
}

// Stop completes the running timer into a session and stores it. It fails
// with store.ErrNoActiveTimer when nothing is running.
func (t *Tracker) Stop() (session.Session, error) {
	active, err := t.store.ActiveTimer()
	if err != nil {
		return session.Session{}, err
	}
	if active == nil {
		return session.Session{}, store.ErrNoActiveTimer
	}

	end := t.clock()
	if end.Before(active.StartTime) {
		end = active.StartTime
	}
	s := session.New(t.newID(), active.Task, active.Category, active.StartTime, end)
	if err := t.store.StopTimer(s); err != nil {
		return session.Session{}, err
	}
	return s, nil
}

// Cancel discards the running timer without recording a session.
func (t *Tracker) Cancel() error {
	return t.store.CancelTimer()
}

// Status describes the running timer, if any.
type Status struct {
	Running bool               `json:"running"`
	Timer   *store.ActiveTimer `json:"timer,omitempty"`
	Elapsed time.Duration      `json:"-"`

	// ElapsedSeconds mirrors Elapsed for JSON output.
	ElapsedSeconds int64 `json:"elapsed_seconds"`
}

// Status reports the running timer and how long it has been running.
func (t *Tracker) Status() (Status, error) {
	active, err := t.store.ActiveTimer()
	if err != nil {
		return Status{}, err
	}
	if active == nil {
		return Status{}, nil
	}
	elapsed := max(t.clock().Sub(active.StartTime), 0)
	return Status{
		Running:        true,
		Timer:          active,
		Elapsed:        elapsed,
		ElapsedSeconds: int64(elapsed / time.Second),
	}, nil
}

// clock returns the current time truncated to whole seconds, matching the
// stored timestamp resolution.
func (t *Tracker) clock() time.Time {
	return t.now().Truncate(time.Second)
}
