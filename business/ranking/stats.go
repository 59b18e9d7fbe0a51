package ranking

import (
	"context"
	"fmt"
	"foodRanking/domain"
	"math"
)

type scoreBucket struct {
	label    string
	min, max float64
}

// Buckets are half-open; the last one is unbounded above.
var scoreBuckets = []scoreBucket{
	{"0-20", 0, 20},
	{"20-40", 20, 40},
	{"40-60", 40, 60},
	{"60-80", 60, 80},
	{"80-100", 80, math.MaxFloat64},
}

// GetRankingStats summarizes persisted scores across active vendors.
func (s *RankingService) GetRankingStats(ctx context.Context) (domain.RankingStats, error) {
	if err := ctx.Err(); err != nil {
		return domain.RankingStats{}, fmt.Errorf("context error: %w", err)
	}

	sum, err := s.repo.ScoreSummary(ctx)
	if err != nil {
		return domain.RankingStats{}, err
	}

	var stats domain.RankingStats
	stats.TotalVendors = sum.Count
	stats.GeneratedAt = s.now()

	stats.Averages.Score = round2(sum.AvgScore)
	stats.Averages.Stars = round1(sum.AvgStars)
	stats.Averages.OnTimeRate = round1(sum.AvgOnTimeRate)
	stats.Averages.VolumeScore = round1(sum.AvgVolumeScore)

	stats.Ranges.Score = domain.ValueRange{Min: round2(sum.MinScore), Max: round2(sum.MaxScore)}
	stats.Ranges.Stars = domain.ValueRange{Min: round1(sum.MinStars), Max: round1(sum.MaxStars)}
	stats.Ranges.OnTimeRate = domain.ValueRange{Min: round1(sum.MinOnTimeRate), Max: round1(sum.MaxOnTimeRate)}

	stats.ScoreDistribution = make([]domain.ScoreBucket, 0, len(scoreBuckets))
	for _, b := range scoreBuckets {
		n, err := s.repo.CountActiveVendorsInRange(ctx, b.min, b.max)
		if err != nil {
			return domain.RankingStats{}, err
		}
		stats.ScoreDistribution = append(stats.ScoreDistribution, domain.ScoreBucket{Range: b.label, Count: n})
	}

	return stats, nil
}
