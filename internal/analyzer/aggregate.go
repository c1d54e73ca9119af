package analyzer

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/blackwell-systems/tasktimer/internal/session"
)

// Range is a half-open time interval [Start, End). A zero bound is open.
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the range.
func (r Range) Contains(t time.Time) bool {
	if !r.Start.IsZero() && t.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && !t.Before(r.End) {
		return false
	}
	return true
}

// DayRange returns the range covering the calendar day of day in loc.
func DayRange(day time.Time, loc *time.Location) Range {
	start := session.StartOfDay(day, loc)
	return Range{Start: start, End: start.AddDate(0, 0, 1)}
}

// DaysRange returns the range covering the inclusive calendar days from
// first through last.
func DaysRange(first, last time.Time, loc *time.Location) Range {
	return Range{
		Start: session.StartOfDay(first, loc),
		End:   session.StartOfDay(last, loc).AddDate(0, 0, 1),
	}
}

// WeekOf returns the Monday and Sunday of the week containing t.
func WeekOf(t time.Time, loc *time.Location) (time.Time, time.Time) {
	day := session.StartOfDay(t, loc)
	offset := (int(day.Weekday()) + 6) % 7
	monday := day.AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, 6)
}

// Filter returns the sessions whose start time falls in r and whose category
// is in categories (all categories when empty), ordered by start time then
// ID. Sessions are never split at range boundaries.
func Filter(sessions []session.Session, r Range, categories []string) []session.Session {
	out := make([]session.Session, 0, len(sessions))
	for _, s := range sessions {
		if !r.Contains(s.StartTime) {
			continue
		}
		if len(categories) > 0 && !slices.Contains(categories, s.Category) {
			continue
		}
		out = append(out, s)
	}
	slices.SortStableFunc(out, compareSessions)
	return out
}

// Aggregate totals the sessions that start inside r and match the category
// filter. Empty input yields a zero Summary with an empty distribution.
func Aggregate(sessions []session.Session, r Range, categories []string) Summary {
	return summarize(Filter(sessions, r, categories))
}

// Distribution groups sessions by category, ordered by duration descending
// then name. Percentages use largest-remainder apportionment, so a non-empty
// distribution sums to exactly 100 and each share is its exact percentage
// rounded up or down. A zero total leaves every percentage at 0.
func Distribution(sessions []session.Session) []CategoryShare {
	byCategory := make(map[string]*CategoryShare)
	var total int64
	for _, s := range sessions {
		share, ok := byCategory[s.Category]
		if !ok {
			share = &CategoryShare{Category: s.Category}
			byCategory[s.Category] = share
		}
		share.Duration += s.DurationSeconds
		share.Sessions++
		total += s.DurationSeconds
	}

	shares := make([]CategoryShare, 0, len(byCategory))
	for _, share := range byCategory {
		shares = append(shares, *share)
	}
	slices.SortFunc(shares, func(a, b CategoryShare) int {
		if c := cmp.Compare(b.Duration, a.Duration); c != 0 {
			return c
		}
		return strings.Compare(a.Category, b.Category)
	})
	if total > 0 {
		apportion(shares, total)
	}
	return shares
}

// apportion assigns whole percentages summing to 100. Each share gets the
// floor of its exact percentage; the leftover points go to the largest
// remainders, earlier shares first on ties.
func apportion(shares []CategoryShare, total int64) {
	remainders := make([]int64, len(shares))
	assigned := 0
	for i := range shares {
		scaled := 100 * shares[i].Duration
		shares[i].Percent = int(scaled / total)
		remainders[i] = scaled % total
		assigned += shares[i].Percent
	}

	order := make([]int, len(shares))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(remainders[b], remainders[a])
	})
	// unvalidated input with negative durations can leave nothing to hand out
	extra := min(max(100-assigned, 0), len(order))
	for _, i := range order[:extra] {
		shares[i].Percent++
	}
}

// MostCommonCategory returns the category with the most sessions. Ties go
// to the category with more tracked time, then to the earlier name. It
// returns "" for an empty distribution.
func MostCommonCategory(shares []CategoryShare) string {
	var best *CategoryShare
	for i := range shares {
		s := &shares[i]
		if best == nil || moreCommon(s, best) {
			best = s
		}
	}
	if best == nil {
		return ""
	}
	return best.Category
}

func moreCommon(a, b *CategoryShare) bool {
	if a.Sessions != b.Sessions {
		return a.Sessions > b.Sessions
	}
	if a.Duration != b.Duration {
		return a.Duration > b.Duration
	}
	return a.Category < b.Category
}

// compareSessions orders by start time, then ID for determinism.
func compareSessions(a, b session.Session) int {
	if c := a.StartTime.Compare(b.StartTime); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}
