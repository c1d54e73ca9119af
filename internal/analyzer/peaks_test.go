package analyzer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/tasktimer/internal/session"
)

func TestPeakHours_Empty(t *testing.T) {
	peaks := PeakHours(nil, time.UTC, 3)
	assert.NotNil(t, peaks)
	assert.Empty(t, peaks)
}

func TestPeakHours_AllAtNine(t *testing.T) {
	sessions := []session.Session{
		sess("a", "development", at(9, 0), 20*time.Minute),
		sess("b", "development", at(9, 25), 30*time.Minute),
		sess("c", "docs", day.AddDate(0, 0, 1).Add(9*time.Hour+50*time.Minute), 3*time.Hour),
	}

	peaks := PeakHours(sessions, time.UTC, 3)

	require.Len(t, peaks, 1)
	assert.Equal(t, 9, peaks[0].Hour)
	assert.Equal(t, int64(20*60+30*60+3*3600), peaks[0].Duration)
	assert.Equal(t, 3, peaks[0].Sessions)
}

func TestHourlyTotals_Ordering(t *testing.T) {
	sessions := []session.Session{
		sess("a", "development", at(14, 0), time.Hour),
		sess("b", "development", at(10, 0), time.Hour),
		sess("c", "development", at(16, 0), 2*time.Hour),
		sess("d", "development", at(8, 0), 10*time.Minute),
	}

	totals := HourlyTotals(sessions, time.UTC)

	hours := make([]int, len(totals))
	for i, h := range totals {
		hours[i] = h.Hour
	}
	assert.Equal(t, []int{16, 10, 14, 8}, hours)
}

func TestPeakHours_TopN(t *testing.T) {
	var sessions []session.Session
	for h := 8; h < 14; h++ {
		sessions = append(sessions, sess(string(rune('a'+h)), "development", at(h, 0), time.Duration(h)*time.Minute))
	}

	assert.Len(t, PeakHours(sessions, time.UTC, 3), 3)
	assert.Equal(t, 13, PeakHours(sessions, time.UTC, 3)[0].Hour)
	assert.Len(t, PeakHours(sessions, time.UTC, 0), 6, "non-positive n returns every hour")
}

func TestPeakHours_UsesLocation(t *testing.T) {
	plusTwo := time.FixedZone("UTC+2", 2*60*60)
	sessions := []session.Session{sess("a", "development", at(9, 0), time.Hour)}

	peaks := PeakHours(sessions, plusTwo, 1)

	require.Len(t, peaks, 1)
	assert.Equal(t, 11, peaks[0].Hour)
}
