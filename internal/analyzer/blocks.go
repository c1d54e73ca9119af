package analyzer

import (
	"slices"
	"time"

	"github.com/blackwell-systems/tasktimer/internal/session"
)

// DefaultGapThreshold is the idle time below which sessions share a block.
const DefaultGapThreshold = 30 * time.Minute

// DetectWorkBlocks merges temporally adjacent sessions into work blocks.
//
// Sessions are stable-sorted by start time (ties by ID). A session joins the
// current block when the gap between its start and the block's end is below
// threshold; overlapping sessions have a negative gap and always merge. The
// block end is the latest end time seen, so a session nested in a longer one
// cannot split the block. The input slice is not modified.
func DetectWorkBlocks(sessions []session.Session, threshold time.Duration) []WorkBlock {
	blocks := []WorkBlock{}
	if len(sessions) == 0 {
		return blocks
	}

	sorted := slices.Clone(sessions)
	slices.SortStableFunc(sorted, compareSessions)

	current := newBlock(sorted[0])
	for _, s := range sorted[1:] {
		if s.StartTime.Sub(current.End) < threshold {
			current.add(s)
			continue
		}
		blocks = append(blocks, current)
		current = newBlock(s)
	}
	return append(blocks, current)
}

func newBlock(s session.Session) WorkBlock {
	return WorkBlock{
		Start:         s.StartTime,
		End:           s.EndTime,
		TotalDuration: s.DurationSeconds,
		SessionCount:  1,
		SessionIDs:    []string{s.ID},
		Sessions:      []session.Session{s},
	}
}

func (b *WorkBlock) add(s session.Session) {
	if s.EndTime.After(b.End) {
		b.End = s.EndTime
	}
	b.TotalDuration += s.DurationSeconds
	b.SessionCount++
	b.SessionIDs = append(b.SessionIDs, s.ID)
	b.Sessions = append(b.Sessions, s)
}

// BlockSessions concatenates the sessions of every block, in block order.
func BlockSessions(blocks []WorkBlock) []session.Session {
	var out []session.Session
	for _, b := range blocks {
		out = append(out, b.Sessions...)
	}
	return out
}

// LongestBlock returns the longest block span in seconds.
func LongestBlock(blocks []WorkBlock) int64 {
	var longest int64
	for _, b := range blocks {
		longest = max(longest, b.Span())
	}
	return longest
}
