package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/blackwell-systems/tasktimer/internal/analyzer"
	"github.com/blackwell-systems/tasktimer/internal/report"
	"github.com/blackwell-systems/tasktimer/internal/suggest"
)

// Config is the top-level tasktimer configuration.
type Config struct {
	DataDir     string      `mapstructure:"data_dir"`
	Timezone    string      `mapstructure:"timezone"`
	Categories  []string    `mapstructure:"categories"`
	Analysis    Analysis    `mapstructure:"analysis"`
	Suggestions Suggestions `mapstructure:"suggestions"`
	Report      Report      `mapstructure:"report"`
	Output      Output      `mapstructure:"output"`

	// File is the config file that was read, or "" when defaults were used.
	File string `mapstructure:"-"`
}

// Analysis tunes work-block detection and scoring.
type Analysis struct {
	GapThreshold       time.Duration `mapstructure:"gap_threshold"`
	DailyTarget        time.Duration `mapstructure:"daily_target"`
	PeriodDays         int           `mapstructure:"period_days"`
	DominanceThreshold float64       `mapstructure:"dominance_threshold"`
	DominanceCap       float64       `mapstructure:"dominance_cap"`
	MinSpread          int           `mapstructure:"min_spread"`
	FocusRatio         float64       `mapstructure:"focus_ratio"`
	FocusBlock         time.Duration `mapstructure:"focus_block"`
	TopPeakHours       int           `mapstructure:"top_peak_hours"`
	Weights            Weights       `mapstructure:"weights"`
}

// Weights are the productivity sub-score weights.
type Weights struct {
	Volume      float64 `mapstructure:"volume"`
	Consistency float64 `mapstructure:"consistency"`
	Diversity   float64 `mapstructure:"diversity"`
}

// Suggestions holds the suggestion rule thresholds.
type Suggestions struct {
	MaxCount                 int           `mapstructure:"max_count"`
	MeetingCategory          string        `mapstructure:"meeting_category"`
	MeetingShare             float64       `mapstructure:"meeting_share"`
	LongSession              time.Duration `mapstructure:"long_session"`
	LongBlock                time.Duration `mapstructure:"long_block"`
	MarathonSession          time.Duration `mapstructure:"marathon_session"`
	OverworkDaily            time.Duration `mapstructure:"overwork_daily"`
	UnderworkDaily           time.Duration `mapstructure:"underwork_daily"`
	MinBlocksPerDay          float64       `mapstructure:"min_blocks_per_day"`
	ShortSession             time.Duration `mapstructure:"short_session"`
	FragmentationMinSessions int           `mapstructure:"fragmentation_min_sessions"`
	AffirmScore              int           `mapstructure:"affirm_score"`
	AffirmDiversity          float64       `mapstructure:"affirm_diversity"`
}

// Report defines the chart settings.
type Report struct {
	BarWidth int    `mapstructure:"bar_width"`
	Glyph    string `mapstructure:"glyph"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied. A missing config file is
// not an error. Any key can be overridden from the environment, e.g.
// TASKTIMER_ANALYSIS_DAILY_TARGET=6h.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		v.AddConfigPath(expandPath(DefaultConfigDir))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	if _, err := os.Stat(cfg.File); err != nil {
		cfg.File = ""
	}
	cfg.DataDir = expandPath(cfg.DataDir)

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", DefaultDataDir)
	v.SetDefault("timezone", "Local")
	v.SetDefault("categories", DefaultCategories)

	a := DefaultAnalysis
	v.SetDefault("analysis.gap_threshold", a.GapThreshold)
	v.SetDefault("analysis.daily_target", a.DailyTarget)
	v.SetDefault("analysis.period_days", a.PeriodDays)
	v.SetDefault("analysis.dominance_threshold", a.DominanceThreshold)
	v.SetDefault("analysis.dominance_cap", a.DominanceCap)
	v.SetDefault("analysis.min_spread", a.MinSpread)
	v.SetDefault("analysis.focus_ratio", a.FocusRatio)
	v.SetDefault("analysis.focus_block", a.FocusBlock)
	v.SetDefault("analysis.top_peak_hours", a.TopPeakHours)
	v.SetDefault("analysis.weights.volume", a.Weights.Volume)
	v.SetDefault("analysis.weights.consistency", a.Weights.Consistency)
	v.SetDefault("analysis.weights.diversity", a.Weights.Diversity)

	s := DefaultSuggestions
	v.SetDefault("suggestions.max_count", s.MaxCount)
	v.SetDefault("suggestions.meeting_category", s.MeetingCategory)
	v.SetDefault("suggestions.meeting_share", s.MeetingShare)
	v.SetDefault("suggestions.long_session", s.LongSession)
	v.SetDefault("suggestions.long_block", s.LongBlock)
	v.SetDefault("suggestions.marathon_session", s.MarathonSession)
	v.SetDefault("suggestions.overwork_daily", s.OverworkDaily)
	v.SetDefault("suggestions.underwork_daily", s.UnderworkDaily)
	v.SetDefault("suggestions.min_blocks_per_day", s.MinBlocksPerDay)
	v.SetDefault("suggestions.short_session", s.ShortSession)
	v.SetDefault("suggestions.fragmentation_min_sessions", s.FragmentationMinSessions)
	v.SetDefault("suggestions.affirm_score", s.AffirmScore)
	v.SetDefault("suggestions.affirm_diversity", s.AffirmDiversity)

	v.SetDefault("report.bar_width", DefaultReport.BarWidth)
	v.SetDefault("report.glyph", DefaultReport.Glyph)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)
}

// Location resolves the configured timezone. "" and "Local" mean the system
// timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// AllCategories returns the configured categories followed by custom ones
// not already present.
func (c *Config) AllCategories(custom []string) []string {
	all := slices.Clone(c.Categories)
	for _, name := range custom {
		if !slices.Contains(all, name) {
			all = append(all, name)
		}
	}
	return all
}

// EngineConfig translates the configuration into the analyzer's. custom
// categories are merged into the enumeration. Values are validated by
// analyzer.NewEngine, not here.
func (c *Config) EngineConfig(custom []string) (analyzer.Config, error) {
	loc, err := c.Location()
	if err != nil {
		return analyzer.Config{}, err
	}

	a := c.Analysis
	s := c.Suggestions
	return analyzer.Config{
		Categories:         c.AllCategories(custom),
		Location:           loc,
		GapThreshold:       a.GapThreshold,
		DailyTarget:        a.DailyTarget,
		PeriodDays:         a.PeriodDays,
		DominanceThreshold: a.DominanceThreshold,
		DominanceCap:       a.DominanceCap,
		MinSpread:          a.MinSpread,
		FocusRatio:         a.FocusRatio,
		FocusBlock:         a.FocusBlock,
		TopPeakHours:       a.TopPeakHours,
		Weights: analyzer.Weights{
			Volume:      a.Weights.Volume,
			Consistency: a.Weights.Consistency,
			Diversity:   a.Weights.Diversity,
		},
		Suggestions: suggest.Thresholds{
			Dominance:                a.DominanceThreshold,
			MeetingCategory:          s.MeetingCategory,
			MeetingShare:             s.MeetingShare,
			LongSession:              s.LongSession,
			LongBlock:                s.LongBlock,
			MarathonSession:          s.MarathonSession,
			OverworkDaily:            s.OverworkDaily,
			UnderworkDaily:           s.UnderworkDaily,
			MinBlocksPerDay:          s.MinBlocksPerDay,
			ShortSession:             s.ShortSession,
			FragmentationMinSessions: s.FragmentationMinSessions,
			AffirmScore:              s.AffirmScore,
			AffirmDiversity:          s.AffirmDiversity,
		},
		MaxSuggestions: s.MaxCount,
	}, nil
}

// FormatterOptions translates the report settings.
func (c *Config) FormatterOptions() (report.Options, error) {
	loc, err := c.Location()
	if err != nil {
		return report.Options{}, err
	}
	return report.Options{
		BarWidth: c.Report.BarWidth,
		Glyph:    c.Report.Glyph,
		Location: loc,
	}, nil
}

// DBPath returns the full path to the SQLite database.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, DefaultDBName)
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
