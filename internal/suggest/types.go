// Package suggest provides the rule table and engine that turn period
// statistics into ordered productivity suggestions.
package suggest

import "time"

// Suggestion is a single piece of advice produced by a rule.
type Suggestion struct {
	// Rule is the ID of the rule that produced the suggestion.
	Rule string `json:"rule"`

	// Message is the human-readable advice.
	Message string `json:"message"`
}

// Context provides the aggregate and derived statistics rules are evaluated
// against. It is populated by the analyzer before the engine runs.
type Context struct {
	// PeriodDays is the number of calendar days the statistics cover.
	PeriodDays int `json:"period_days"`

	// TotalDuration is the tracked time in seconds.
	TotalDuration int64 `json:"total_duration"`

	// SessionCount is the number of sessions analyzed.
	SessionCount int `json:"session_count"`

	// AvgDailyDuration is TotalDuration / PeriodDays, in seconds.
	AvgDailyDuration float64 `json:"avg_daily_duration"`

	// AvgSessionDuration is the mean session length in seconds.
	AvgSessionDuration float64 `json:"avg_session_duration"`

	// LongestSession is the longest single session in seconds.
	LongestSession int64 `json:"longest_session"`

	// WorkBlocks is the number of detected work blocks.
	WorkBlocks int `json:"work_blocks"`

	// LongestBlock is the longest work block span in seconds.
	LongestBlock int64 `json:"longest_block"`

	// TopCategory is the category holding the most tracked time.
	TopCategory string `json:"top_category"`

	// CategoryShares maps category to its share of TotalDuration (0.0-1.0).
	CategoryShares map[string]float64 `json:"category_shares"`

	// Score is the productivity score (0-100).
	Score int `json:"score"`

	// DiversityScore is the diversity sub-score (0-100).
	DiversityScore float64 `json:"diversity_score"`
}

// TopShare returns the share of the top category, or 0 when unknown.
func (c *Context) TopShare() float64 {
	if c.CategoryShares == nil {
		return 0
	}
	return c.CategoryShares[c.TopCategory]
}

// Thresholds configures the rule predicates. Values are heuristic defaults,
// not invariants.
type Thresholds struct {
	// Dominance is the top-category share above which diversification is
	// suggested.
	Dominance float64 `json:"dominance"`

	// MeetingCategory names the category treated as meetings.
	MeetingCategory string `json:"meeting_category"`

	// MeetingShare is the meeting share above which deep work protection is
	// suggested.
	MeetingShare float64 `json:"meeting_share"`

	// LongSession is the average session length considered long.
	LongSession time.Duration `json:"long_session"`

	// LongBlock is the work block span considered an unbroken stretch.
	LongBlock time.Duration `json:"long_block"`

	// MarathonSession is a single session length that always warrants a break.
	MarathonSession time.Duration `json:"marathon_session"`

	// OverworkDaily is the average daily duration considered too much.
	OverworkDaily time.Duration `json:"overwork_daily"`

	// UnderworkDaily is the average daily duration considered too little.
	UnderworkDaily time.Duration `json:"underwork_daily"`

	// MinBlocksPerDay is the expected work blocks per period day.
	MinBlocksPerDay float64 `json:"min_blocks_per_day"`

	// ShortSession is the average session length considered fragmented.
	ShortSession time.Duration `json:"short_session"`

	// FragmentationMinSessions is the session count needed before
	// fragmentation is reported.
	FragmentationMinSessions int `json:"fragmentation_min_sessions"`

	// AffirmScore is the score at or above which work is affirmed.
	AffirmScore int `json:"affirm_score"`

	// AffirmDiversity is the diversity sub-score required for affirmation.
	AffirmDiversity float64 `json:"affirm_diversity"`
}

// DefaultThresholds holds the documented default rule thresholds.
var DefaultThresholds = Thresholds{
	Dominance:                0.80,
	MeetingCategory:          "meetings",
	MeetingShare:             0.50,
	LongSession:              90 * time.Minute,
	LongBlock:                3 * time.Hour,
	MarathonSession:          4 * time.Hour,
	OverworkDaily:            10 * time.Hour,
	UnderworkDaily:           2 * time.Hour,
	MinBlocksPerDay:          0.5,
	ShortSession:             15 * time.Minute,
	FragmentationMinSessions: 3,
	AffirmScore:              80,
	AffirmDiversity:          60,
}

// Rule pairs a predicate over the statistics with the message it produces.
type Rule struct {
	ID      string
	Applies func(ctx *Context, th Thresholds) bool
	Message func(ctx *Context, th Thresholds) string
}
