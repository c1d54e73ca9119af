// Package analyzer turns completed work sessions into aggregated reports,
// work blocks, peak hours, a productivity score and suggestions.
//
// Every function in this package is pure: inputs are never mutated, nothing
// is persisted, and the same input always yields the same output.
package analyzer

import (
	"time"

	"github.com/blackwell-systems/tasktimer/internal/session"
)

// CategoryShare is one category's slice of the tracked time.
type CategoryShare struct {
	// Category is the category name.
	Category string `json:"category"`

	// Duration is the accumulated duration in seconds.
	Duration int64 `json:"duration"`

	// Sessions is the number of sessions in the category.
	Sessions int `json:"sessions"`

	// Percent is round(100 * Duration / total), or 0 when total is 0.
	Percent int `json:"percent"`
}

// Summary holds the totals of an aggregated set of sessions.
type Summary struct {
	// TotalDuration is the sum of included session durations in seconds.
	TotalDuration int64 `json:"total_duration"`

	// SessionCount is the number of included sessions.
	SessionCount int `json:"session_count"`

	// Distribution is ordered by duration descending, then category name.
	Distribution []CategoryShare `json:"category_distribution"`
}

// WorkBlock is a maximal run of sessions separated by gaps below the gap
// threshold.
type WorkBlock struct {
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	TotalDuration int64     `json:"total_duration"`
	SessionCount  int       `json:"session_count"`
	SessionIDs    []string  `json:"session_ids"`

	// Sessions are the block's sessions in start order.
	Sessions []session.Session `json:"-"`
}

// Span returns the wall-clock length of the block in seconds.
func (b WorkBlock) Span() int64 {
	return int64(b.End.Sub(b.Start) / time.Second)
}

// HourTotal is the tracked duration attributed to one hour of the day.
type HourTotal struct {
	Hour     int   `json:"hour"`
	Duration int64 `json:"duration"`
	Sessions int   `json:"sessions"`
}

// Rating is the label attached to a productivity score.
type Rating string

// Rating labels, from best to worst.
const (
	RatingExcellent Rating = "Excellent"
	RatingGood      Rating = "Good"
	RatingFair      Rating = "Fair"
	RatingLow       Rating = "Low"
)

// SubScores are the normalized (0-100) components of the productivity score.
type SubScores struct {
	Volume      float64 `json:"volume"`
	Consistency float64 `json:"consistency"`
	Diversity   float64 `json:"diversity"`
}

// Insights is the full analysis of a period.
type Insights struct {
	PeriodDays int       `json:"period_days"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`

	TotalDuration    int64 `json:"total_duration"`
	SessionCount     int   `json:"session_count"`
	AvgDailyDuration int64 `json:"avg_daily_duration"`

	ProductivityScore int       `json:"productivity_score"`
	Rating            Rating    `json:"rating"`
	SubScores         SubScores `json:"sub_scores"`

	MostCommonCategory string          `json:"most_common_category,omitempty"`
	Distribution       []CategoryShare `json:"category_distribution"`
	PeakHours          []HourTotal     `json:"peak_hours"`
	WorkBlocks         []WorkBlock     `json:"work_blocks"`
	Suggestions        []string        `json:"suggestions"`

	// SuggestionRules holds the rule ID behind each entry of Suggestions.
	SuggestionRules []string `json:"-"`

	// SkippedCount is the number of records excluded as invalid.
	SkippedCount int `json:"skipped_count"`
}

// DayTotal is one day's row in a weekly report.
type DayTotal struct {
	Date          string `json:"date"`
	TotalDuration int64  `json:"total_duration"`
	SessionCount  int    `json:"session_count"`
}

// DailyReport summarizes a single calendar day.
type DailyReport struct {
	Date string `json:"date"`
	Summary
	Sessions     []session.Session `json:"sessions"`
	SkippedCount int               `json:"skipped_count"`
}

// WeeklyReport summarizes an inclusive range of calendar days.
type WeeklyReport struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Summary
	PerDay       []DayTotal        `json:"per_day_totals"`
	Sessions     []session.Session `json:"sessions"`
	SkippedCount int               `json:"skipped_count"`
}

// DateLayout is the layout used for report dates.
const DateLayout = "2006-01-02"
