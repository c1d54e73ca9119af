package analyzer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/blackwell-systems/tasktimer/internal/session"
)

func TestComputeScore_Empty(t *testing.T) {
	score, rating, subs := ComputeScore(ScoreInput{PeriodDays: 7}, testConfig())

	assert.Equal(t, 0, score)
	assert.Equal(t, RatingLow, rating)
	assert.Equal(t, SubScores{}, subs)
}

func TestComputeScore_FullMarks(t *testing.T) {
	sessions := []session.Session{
		sess("a", "development", at(9, 0), 3*time.Hour),
		sess("b", "bugfix", at(12, 10), 2*time.Hour),
		sess("c", "docs", at(14, 20), 2*time.Hour),
	}
	summary := Aggregate(sessions, Range{}, nil)

	score, rating, subs := ComputeScore(ScoreInput{
		PeriodDays:    1,
		TotalDuration: summary.TotalDuration,
		SessionCount:  summary.SessionCount,
		Distribution:  summary.Distribution,
		WorkBlocks:    DetectWorkBlocks(sessions, DefaultGapThreshold),
	}, testConfig())

	assert.Equal(t, 100, score)
	assert.Equal(t, RatingExcellent, rating)
	assert.Equal(t, SubScores{Volume: 100, Consistency: 100, Diversity: 100}, subs)
}

func TestComputeScore_MonotonicInDailyDuration(t *testing.T) {
	cfg := testConfig()
	blocks := DetectWorkBlocks([]session.Session{
		sess("a", "development", at(9, 0), time.Hour),
		sess("b", "development", at(10, 10), time.Hour),
	}, DefaultGapThreshold)
	dist := []CategoryShare{{Category: "development", Duration: 1, Sessions: 2, Percent: 100}}

	prev := -1
	for hours := 1; hours <= 12; hours++ {
		score, _, _ := ComputeScore(ScoreInput{
			PeriodDays:    1,
			TotalDuration: int64(hours * 3600),
			SessionCount:  2,
			Distribution:  dist,
			WorkBlocks:    blocks,
		}, cfg)
		assert.GreaterOrEqual(t, score, prev, "score dropped at %dh", hours)
		prev = score
	}
}

func TestRatingFor(t *testing.T) {
	tests := []struct {
		score int
		want  Rating
	}{
		{100, RatingExcellent},
		{85, RatingExcellent},
		{84, RatingGood},
		{65, RatingGood},
		{64, RatingFair},
		{40, RatingFair},
		{39, RatingLow},
		{0, RatingLow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RatingFor(tt.score), "score %d", tt.score)
	}
}

func TestVolumeScore(t *testing.T) {
	assert.InDelta(t, 50.0, VolumeScore(3.5*3600, 7*time.Hour), 0.001)
	assert.Equal(t, 100.0, VolumeScore(9*3600, 7*time.Hour), "capped at 100")
	assert.Equal(t, 0.0, VolumeScore(3600, 0))
}

func TestConsistencyScore(t *testing.T) {
	oneLongBlock := DetectWorkBlocks([]session.Session{
		sess("a", "development", at(9, 0), 30*time.Minute),
		sess("b", "development", at(9, 35), 30*time.Minute),
		sess("c", "development", at(10, 10), 30*time.Minute),
	}, DefaultGapThreshold)
	fragmented := DetectWorkBlocks([]session.Session{
		sess("a", "development", at(9, 0), 9*time.Minute),
		sess("b", "development", at(11, 0), 9*time.Minute),
	}, DefaultGapThreshold)

	focused := ConsistencyScore(3, oneLongBlock, 3, 90*time.Minute)
	scattered := ConsistencyScore(2, fragmented, 3, 90*time.Minute)

	// 3 sessions per block is the full merge score; a 100 minute span caps length.
	assert.Equal(t, 100.0, focused)
	// No merging scores 0; a 9 minute average block is 10% of the focus length.
	assert.InDelta(t, 5.0, scattered, 0.001)
	assert.Equal(t, 0.0, ConsistencyScore(0, nil, 3, 90*time.Minute))
}

func TestDiversityScore(t *testing.T) {
	one := []CategoryShare{{Category: "development", Duration: 3600}}
	two := []CategoryShare{{Category: "development", Duration: 1800}, {Category: "docs", Duration: 1800}}
	dominated := []CategoryShare{
		{Category: "development", Duration: 9000},
		{Category: "docs", Duration: 500},
		{Category: "bugfix", Duration: 500},
	}
	spread := []CategoryShare{
		{Category: "development", Duration: 1000},
		{Category: "docs", Duration: 1000},
		{Category: "bugfix", Duration: 1000},
		{Category: "learning", Duration: 1000},
	}

	assert.Equal(t, 20.0, DiversityScore(one, 0.8, 20, 3), "single category is dominant")
	assert.InDelta(t, 66.667, DiversityScore(two, 0.8, 20, 3), 0.001)
	assert.Equal(t, 20.0, DiversityScore(dominated, 0.8, 20, 3))
	assert.Equal(t, 100.0, DiversityScore(spread, 0.8, 20, 3))
	assert.Equal(t, 0.0, DiversityScore(nil, 0.8, 20, 3))
}
