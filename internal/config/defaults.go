// Package config provides configuration loading and defaults for tasktimer.
package config

import (
	"github.com/blackwell-systems/tasktimer/internal/analyzer"
	"github.com/blackwell-systems/tasktimer/internal/report"
	"github.com/blackwell-systems/tasktimer/internal/suggest"
)

// DefaultConfigDir is the default location for tasktimer configuration.
const DefaultConfigDir = "~/.config/tasktimer"

// DefaultDataDir is the default location of the session database.
const DefaultDataDir = "~/.local/share/tasktimer"

// DefaultDBName is the filename for the SQLite database.
const DefaultDBName = "tasktimer.db"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// EnvPrefix prefixes environment overrides, e.g. TASKTIMER_TIMEZONE.
const EnvPrefix = "TASKTIMER"

// DefaultCategories is the built-in category enumeration.
var DefaultCategories = analyzer.DefaultCategories

// DefaultAnalysis holds the default engine tuning.
var DefaultAnalysis = analysisFrom(analyzer.DefaultConfig())

// DefaultSuggestions holds the default suggestion thresholds.
var DefaultSuggestions = suggestionsFrom(suggest.DefaultThresholds, 0)

// DefaultReport holds the default chart settings.
var DefaultReport = Report{
	BarWidth: report.DefaultOptions().BarWidth,
	Glyph:    report.DefaultOptions().Glyph,
}

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}

func analysisFrom(c analyzer.Config) Analysis {
	return Analysis{
		GapThreshold:       c.GapThreshold,
		DailyTarget:        c.DailyTarget,
		PeriodDays:         c.PeriodDays,
		DominanceThreshold: c.DominanceThreshold,
		DominanceCap:       c.DominanceCap,
		MinSpread:          c.MinSpread,
		FocusRatio:         c.FocusRatio,
		FocusBlock:         c.FocusBlock,
		TopPeakHours:       c.TopPeakHours,
		Weights: Weights{
			Volume:      c.Weights.Volume,
			Consistency: c.Weights.Consistency,
			Diversity:   c.Weights.Diversity,
		},
	}
}

func suggestionsFrom(th suggest.Thresholds, maxCount int) Suggestions {
	return Suggestions{
		MaxCount:                 maxCount,
		MeetingCategory:          th.MeetingCategory,
		MeetingShare:             th.MeetingShare,
		LongSession:              th.LongSession,
		LongBlock:                th.LongBlock,
		MarathonSession:          th.MarathonSession,
		OverworkDaily:            th.OverworkDaily,
		UnderworkDaily:           th.UnderworkDaily,
		MinBlocksPerDay:          th.MinBlocksPerDay,
		ShortSession:             th.ShortSession,
		FragmentationMinSessions: th.FragmentationMinSessions,
		AffirmScore:              th.AffirmScore,
		AffirmDiversity:          th.AffirmDiversity,
	}
}
