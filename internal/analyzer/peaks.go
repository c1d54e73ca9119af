package analyzer

import (
	"cmp"
	"slices"
	"time"

	"github.com/blackwell-systems/tasktimer/internal/session"
)

// HourlyTotals attributes each session's full duration to the hour of day of
// its start time in loc. Durations are not split across hour boundaries.
// The result holds one entry per hour that saw a session, ordered by
// duration descending, then hour ascending.
func HourlyTotals(sessions []session.Session, loc *time.Location) []HourTotal {
	if loc == nil {
		loc = time.Local
	}

	var byHour [24]HourTotal
	var seen [24]bool
	for _, s := range sessions {
		h := s.StartTime.In(loc).Hour()
		byHour[h].Hour = h
		byHour[h].Duration += s.DurationSeconds
		byHour[h].Sessions++
		seen[h] = true
	}

	totals := []HourTotal{}
	for h := range byHour {
		if seen[h] {
			totals = append(totals, byHour[h])
		}
	}
	slices.SortFunc(totals, func(a, b HourTotal) int {
		if c := cmp.Compare(b.Duration, a.Duration); c != 0 {
			return c
		}
		return cmp.Compare(a.Hour, b.Hour)
	})
	return totals
}

// PeakHours returns the top n entries of HourlyTotals. A non-positive n
// returns every hour.
func PeakHours(sessions []session.Session, loc *time.Location, n int) []HourTotal {
	totals := HourlyTotals(sessions, loc)
	if n > 0 && len(totals) > n {
		totals = totals[:n]
	}
	return totals
}
