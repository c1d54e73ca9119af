package suggest

import (
	"fmt"
	"math"
)

// InsufficientDataMessage is the single suggestion returned when there is no
// tracked time to analyze.
const InsufficientDataMessage = "Start tracking your work sessions to get personalized insights!"

// InsufficientDataRule is the rule ID attached to InsufficientDataMessage.
const InsufficientDataRule = "insufficient-data"

// Dominance fires when one category holds more than the dominance threshold
// of tracked time.
var Dominance = Rule{
	ID: "dominance",
	Applies: func(ctx *Context, th Thresholds) bool {
		return ctx.TopCategory != "" && ctx.TopShare() > th.Dominance
	},
	Message: func(ctx *Context, th Thresholds) string {
		return fmt.Sprintf(
			"%s accounts for %s of your tracked time. Try to balance your work across categories, "+
				"or plan dedicated refactor or learning time.",
			ctx.TopCategory, percent(ctx.TopShare()),
		)
	},
}

// MeetingLoad fires when meetings take more than the configured share.
var MeetingLoad = Rule{
	ID: "meeting-load",
	Applies: func(ctx *Context, th Thresholds) bool {
		if th.MeetingCategory == "" || ctx.CategoryShares == nil {
			return false
		}
		return ctx.CategoryShares[th.MeetingCategory] > th.MeetingShare
	},
	Message: func(ctx *Context, th Thresholds) string {
		return fmt.Sprintf(
			"High meeting load: %s of tracked time went to %s. Protect some blocks for deep work.",
			percent(ctx.CategoryShares[th.MeetingCategory]), th.MeetingCategory,
		)
	},
}

// TakeBreaks fires on long sessions strung together without a real break,
// or on any single marathon session.
var TakeBreaks = Rule{
	ID: "take-breaks",
	Applies: func(ctx *Context, th Thresholds) bool {
		longStretch := ctx.AvgSessionDuration > th.LongSession.Seconds() &&
			float64(ctx.LongestBlock) >= th.LongBlock.Seconds()
		marathon := th.MarathonSession > 0 && float64(ctx.LongestSession) > th.MarathonSession.Seconds()
		return longStretch || marathon
	},
	Message: func(ctx *Context, th Thresholds) string {
		return fmt.Sprintf(
			"Your longest stretch ran %s without a real break. Consider taking breaks during long "+
				"sessions to maintain focus and prevent burnout.",
			humanSeconds(max(ctx.LongestBlock, ctx.LongestSession)),
		)
	},
}

// Overwork fires when the daily average exceeds the overwork threshold.
var Overwork = Rule{
	ID: "overwork",
	Applies: func(ctx *Context, th Thresholds) bool {
		return th.OverworkDaily > 0 && ctx.AvgDailyDuration > th.OverworkDaily.Seconds()
	},
	Message: func(ctx *Context, th Thresholds) string {
		return fmt.Sprintf(
			"You averaged %s per day. Remember to take time for rest and recovery.",
			humanSeconds(int64(ctx.AvgDailyDuration)),
		)
	},
}

// Underwork fires when the daily average is below the underwork threshold.
var Underwork = Rule{
	ID: "underwork",
	Applies: func(ctx *Context, th Thresholds) bool {
		return ctx.AvgDailyDuration < th.UnderworkDaily.Seconds()
	},
	Message: func(ctx *Context, th Thresholds) string {
		return fmt.Sprintf(
			"You averaged %s of tracked work per day. Consider increasing your focused work time.",
			humanSeconds(int64(ctx.AvgDailyDuration)),
		)
	},
}

// Consistency fires when there are few work blocks for the length of the
// period.
var Consistency = Rule{
	ID: "consistency",
	Applies: func(ctx *Context, th Thresholds) bool {
		if ctx.PeriodDays <= 0 {
			return false
		}
		return float64(ctx.WorkBlocks) < float64(ctx.PeriodDays)*th.MinBlocksPerDay
	},
	Message: func(ctx *Context, th Thresholds) string {
		return fmt.Sprintf(
			"Only %d work block(s) over %d day(s). A steadier daily rhythm builds momentum; "+
				"try to schedule at least one focus block on most days.",
			ctx.WorkBlocks, ctx.PeriodDays,
		)
	},
}

// Fragmentation fires when many sessions are very short.
var Fragmentation = Rule{
	ID: "fragmentation",
	Applies: func(ctx *Context, th Thresholds) bool {
		return ctx.SessionCount >= th.FragmentationMinSessions &&
			ctx.AvgSessionDuration < th.ShortSession.Seconds()
	},
	Message: func(ctx *Context, th Thresholds) string {
		return fmt.Sprintf(
			"Your %d sessions average %s each. Batch small tasks together to reduce context switching.",
			ctx.SessionCount, humanSeconds(int64(ctx.AvgSessionDuration)),
		)
	},
}

// Affirm reinforces a high score with good diversity.
var Affirm = Rule{
	ID: "affirm",
	Applies: func(ctx *Context, th Thresholds) bool {
		return ctx.Score >= th.AffirmScore && ctx.DiversityScore >= th.AffirmDiversity
	},
	Message: func(ctx *Context, th Thresholds) string {
		return fmt.Sprintf("Keep up the great work! A score of %d with a balanced mix of work looks healthy.", ctx.Score)
	},
}

// DefaultRules returns the built-in rules in priority order.
func DefaultRules() []Rule {
	return []Rule{
		Dominance,
		MeetingLoad,
		TakeBreaks,
		Overwork,
		Underwork,
		Consistency,
		Fragmentation,
		Affirm,
	}
}

func percent(share float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(share*100)))
}

// humanSeconds renders seconds as "1h 30m", "2h" or "45m".
func humanSeconds(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	switch {
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}
