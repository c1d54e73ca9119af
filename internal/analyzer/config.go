package analyzer

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/blackwell-systems/tasktimer/internal/suggest"
)

// ConfigError reports an invalid engine configuration value. It is a caller
// bug, raised before any session is processed.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration %s: %s", e.Field, e.Reason)
}

// Weights are the fixed weights of the productivity sub-scores. They must be
// non-negative and sum to 1.
type Weights struct {
	Volume      float64
	Consistency float64
	Diversity   float64
}

// DefaultWeights weights volume 50%, consistency 30% and diversity 20%.
var DefaultWeights = Weights{Volume: 0.5, Consistency: 0.3, Diversity: 0.2}

// DefaultCategories is the category enumeration used when none is configured.
var DefaultCategories = []string{"development", "meetings", "bugfix", "refactor", "docs", "learning"}

// Config is the engine configuration.
type Config struct {
	// Categories is the allowed category enumeration.
	Categories []string

	// Location is used for day and hour attribution. Nil means time.Local.
	Location *time.Location

	// GapThreshold is the largest idle gap merged into a work block.
	GapThreshold time.Duration

	// DailyTarget is the tracked time per day that earns a full volume score.
	DailyTarget time.Duration

	// PeriodDays is the default insights window.
	PeriodDays int

	// DominanceThreshold is the top-category share that caps diversity and
	// triggers the dominance suggestion.
	DominanceThreshold float64

	// DominanceCap is the diversity score ceiling under dominance.
	DominanceCap float64

	// MinSpread is the number of categories that earns full diversity.
	MinSpread int

	// FocusRatio is the sessions-per-block ratio that earns a full merge score.
	FocusRatio float64

	// FocusBlock is the average block length that earns a full length score.
	FocusBlock time.Duration

	// TopPeakHours is how many peak hours insights report.
	TopPeakHours int

	Weights Weights

	// Suggestions holds the rule thresholds. Its Dominance field is replaced
	// by DominanceThreshold.
	Suggestions suggest.Thresholds

	// MaxSuggestions limits the suggestion count; 0 means unlimited.
	MaxSuggestions int
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		Categories:         append([]string(nil), DefaultCategories...),
		Location:           time.Local,
		GapThreshold:       30 * time.Minute,
		DailyTarget:        7 * time.Hour,
		PeriodDays:         7,
		DominanceThreshold: 0.80,
		DominanceCap:       20,
		MinSpread:          3,
		FocusRatio:         3,
		FocusBlock:         90 * time.Minute,
		TopPeakHours:       3,
		Weights:            DefaultWeights,
		Suggestions:        suggest.DefaultThresholds,
	}
}

// weightTolerance allows for float rounding in configured weights.
const weightTolerance = 0.001

// Validate checks every field and returns the first *ConfigError found.
func (c Config) Validate() error {
	invalid := func(field, format string, args ...any) error {
		return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
	}

	if len(c.Categories) == 0 {
		return invalid("categories", "at least one category is required")
	}
	seen := make(map[string]bool, len(c.Categories))
	for _, cat := range c.Categories {
		if strings.TrimSpace(cat) == "" {
			return invalid("categories", "category names cannot be blank")
		}
		if seen[cat] {
			return invalid("categories", "duplicate category %q", cat)
		}
		seen[cat] = true
	}
	if c.GapThreshold < 0 {
		return invalid("gap_threshold", "must not be negative, got %s", c.GapThreshold)
	}
	if c.DailyTarget <= 0 {
		return invalid("daily_target", "must be positive, got %s", c.DailyTarget)
	}
	if c.PeriodDays < 1 {
		return invalid("period_days", "must be at least 1, got %d", c.PeriodDays)
	}
	if c.DominanceThreshold <= 0 || c.DominanceThreshold > 1 {
		return invalid("dominance_threshold", "must be in (0, 1], got %v", c.DominanceThreshold)
	}
	if c.DominanceCap < 0 || c.DominanceCap > 100 {
		return invalid("dominance_cap", "must be in [0, 100], got %v", c.DominanceCap)
	}
	if c.MinSpread < 1 {
		return invalid("min_spread", "must be at least 1, got %d", c.MinSpread)
	}
	if c.FocusRatio <= 1 {
		return invalid("focus_ratio", "must be greater than 1, got %v", c.FocusRatio)
	}
	if c.FocusBlock <= 0 {
		return invalid("focus_block", "must be positive, got %s", c.FocusBlock)
	}
	if c.TopPeakHours < 0 {
		return invalid("top_peak_hours", "must not be negative, got %d", c.TopPeakHours)
	}
	w := c.Weights
	if w.Volume < 0 || w.Consistency < 0 || w.Diversity < 0 {
		return invalid("weights", "must not be negative, got %+v", w)
	}
	if sum := w.Volume + w.Consistency + w.Diversity; math.Abs(sum-1) > weightTolerance {
		return invalid("weights", "must sum to 1, got %.3f", sum)
	}
	if c.MaxSuggestions < 0 {
		return invalid("max_suggestions", "must not be negative, got %d", c.MaxSuggestions)
	}
	return nil
}
