package session

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCategories = []string{"development", "meetings"}

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 2, hour, minute, 0, 0, time.UTC)
}

func TestNew_DerivesDuration(t *testing.T) {
	s := New("s1", "write tests", "development", at(9, 0), at(10, 30))
	assert.Equal(t, int64(5400), s.DurationSeconds)
	assert.Equal(t, 90*time.Minute, s.Duration())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		session Session
		wantErr string
	}{
		{
			name:    "valid",
			session: New("ok", "task", "development", at(9, 0), at(10, 0)),
		},
		{
			name:    "end before start",
			session: Session{ID: "bad", Category: "development", StartTime: at(10, 0), EndTime: at(9, 0), DurationSeconds: 0},
			wantErr: "before start time",
		},
		{
			name:    "negative duration",
			session: Session{ID: "neg", Category: "development", StartTime: at(9, 0), EndTime: at(9, 0), DurationSeconds: -5},
			wantErr: "negative duration",
		},
		{
			name:    "unknown category",
			session: New("cat", "task", "gardening", at(9, 0), at(10, 0)),
			wantErr: `unknown category "gardening"`,
		},
		{
			name:    "duration mismatch",
			session: Session{ID: "mm", Category: "development", StartTime: at(9, 0), EndTime: at(10, 0), DurationSeconds: 60},
			wantErr: "does not match",
		},
		{
			name:    "missing end",
			session: Session{ID: "open", Category: "development", StartTime: at(9, 0)},
			wantErr: "missing start or end",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.session.Validate(testCategories)
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tc.session.ID, verr.SessionID)
		})
	}
}

func TestValidate_ToleratesSubSecondTruncation(t *testing.T) {
	s := Session{
		ID:              "trunc",
		Category:        "meetings",
		StartTime:       at(9, 0),
		EndTime:         at(9, 30).Add(900 * time.Millisecond),
		DurationSeconds: 1799,
	}
	assert.NoError(t, s.Validate(testCategories))
}

func TestPartition(t *testing.T) {
	sessions := []Session{
		New("a", "task", "development", at(9, 0), at(10, 0)),
		{ID: "b", Category: "development", StartTime: at(11, 0), EndTime: at(10, 0)},
		New("c", "task", "meetings", at(13, 0), at(13, 30)),
	}

	valid, rejected := Partition(sessions, testCategories)
	require.Len(t, valid, 2)
	require.Len(t, rejected, 1)
	assert.Equal(t, "a", valid[0].ID)
	assert.Equal(t, "c", valid[1].ID)
	assert.Contains(t, rejected[0].Error(), "invalid session b")
}

func TestDay_AttributesToStartDay(t *testing.T) {
	s := New("late", "deploy", "development",
		time.Date(2026, 3, 2, 23, 30, 0, 0, time.UTC),
		time.Date(2026, 3, 3, 1, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), s.Day(time.UTC))
}
