package analyzer

import (
	"math"
	"time"
)

// ScoreInput carries the period statistics the scorer combines.
type ScoreInput struct {
	PeriodDays    int
	TotalDuration int64
	SessionCount  int
	Distribution  []CategoryShare
	WorkBlocks    []WorkBlock
}

// ComputeScore calculates the 0-100 productivity score and its rating.
//
// Scoring breakdown (default weights):
//   - Volume:      50% (average daily duration against the daily target)
//   - Consistency: 30% (merged, long work blocks over fragmented sessions)
//   - Diversity:   20% (spread across categories, capped under dominance)
//
// Zero tracked time scores 0 and rates Low without evaluating sub-scores.
func ComputeScore(in ScoreInput, cfg Config) (int, Rating, SubScores) {
	if in.TotalDuration <= 0 || in.PeriodDays <= 0 {
		return 0, RatingLow, SubScores{}
	}

	avgDaily := float64(in.TotalDuration) / float64(in.PeriodDays)
	subs := SubScores{
		Volume:      VolumeScore(avgDaily, cfg.DailyTarget),
		Consistency: ConsistencyScore(in.SessionCount, in.WorkBlocks, cfg.FocusRatio, cfg.FocusBlock),
		Diversity:   DiversityScore(in.Distribution, cfg.DominanceThreshold, cfg.DominanceCap, cfg.MinSpread),
	}

	w := cfg.Weights
	weighted := w.Volume*subs.Volume + w.Consistency*subs.Consistency + w.Diversity*subs.Diversity
	score := int(clamp(math.Round(weighted), 0, 100))
	return score, RatingFor(score), subs
}

// RatingFor maps a score to its rating band.
func RatingFor(score int) Rating {
	switch {
	case score >= 85:
		return RatingExcellent
	case score >= 65:
		return RatingGood
	case score >= 40:
		return RatingFair
	default:
		return RatingLow
	}
}

// VolumeScore is min(100, 100 * avgDailySeconds / target).
func VolumeScore(avgDailySeconds float64, target time.Duration) float64 {
	if target <= 0 {
		return 0
	}
	return clamp(100*avgDailySeconds/target.Seconds(), 0, 100)
}

// ConsistencyScore averages a merge sub-score and a length sub-score.
//
// The merge sub-score grows with sessions per block: a ratio of 1 (nothing
// merged) scores 0 and focusRatio or more scores 100. The length sub-score is
// the average block span against focusBlock.
func ConsistencyScore(sessionCount int, blocks []WorkBlock, focusRatio float64, focusBlock time.Duration) float64 {
	if len(blocks) == 0 || sessionCount == 0 {
		return 0
	}

	merge := 0.0
	if focusRatio > 1 {
		ratio := float64(sessionCount) / float64(len(blocks))
		merge = clamp(100*(ratio-1)/(focusRatio-1), 0, 100)
	}

	length := 0.0
	if focusBlock > 0 {
		var span int64
		for _, b := range blocks {
			span += b.Span()
		}
		avg := float64(span) / float64(len(blocks))
		length = clamp(100*avg/focusBlock.Seconds(), 0, 100)
	}

	return (merge + length) / 2
}

// DiversityScore rewards spreading time over categories: each category with
// tracked time earns 100/minSpread points. When the top category's share
// exceeds dominance the score is capped at dominanceCap.
func DiversityScore(shares []CategoryShare, dominance, dominanceCap float64, minSpread int) float64 {
	var total, top int64
	present := 0
	for _, s := range shares {
		if s.Duration <= 0 {
			continue
		}
		present++
		total += s.Duration
		top = max(top, s.Duration)
	}
	if total == 0 || minSpread < 1 {
		return 0
	}

	score := clamp(100*float64(present)/float64(minSpread), 0, 100)
	if float64(top)/float64(total) > dominance {
		score = math.Min(score, dominanceCap)
	}
	return score
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
