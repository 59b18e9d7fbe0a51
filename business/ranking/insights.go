package ranking

import (
	"context"
	"fmt"
	"foodRanking/domain"

	"github.com/google/uuid"
)

const competitorCount = 3

const (
	starsThreshold  = 4.0
	starsTarget     = 4.5
	onTimeThreshold = 85.0
	onTimeTarget    = 90.0
	volumeThreshold = 40.0
	volumeTarget    = 60.0
)

// GetVendorRankingInsights explains a vendor's standing: fresh metrics, its
// position, the leading competitors and what to work on.
func (s *RankingService) GetVendorRankingInsights(ctx context.Context, vendorID uuid.UUID) (domain.RankingInsights, error) {
	if err := ctx.Err(); err != nil {
		return domain.RankingInsights{}, fmt.Errorf("context error: %w", err)
	}

	vendor, in, err := s.extract(ctx, s.repo, vendorID)
	if err != nil {
		return domain.RankingInsights{}, err
	}

	pos, err := s.position(ctx, vendor.RankingScore)
	if err != nil {
		return domain.RankingInsights{}, err
	}

	rivals, err := s.repo.TopActiveVendors(ctx, competitorCount, vendorID)
	if err != nil {
		return domain.RankingInsights{}, err
	}

	competitors := make([]domain.Competitor, 0, len(rivals))
	for _, r := range rivals {
		competitors = append(competitors, domain.Competitor{
			VendorID:     r.ID,
			BusinessName: r.BusinessName,
			Score:        r.RankingScore,
			Stars:        r.Stars,
			OnTimeRate:   r.OnTimeRate,
		})
	}

	return domain.RankingInsights{
		Score:       vendor.RankingScore,
		Position:    pos,
		Metrics:     in,
		Competitors: competitors,
		Suggestions: Suggestions(in),
	}, nil
}

// Suggestions lists the weakest areas of a vendor's metrics, most impactful first.
func Suggestions(in domain.VendorScoreInput) []domain.ImprovementSuggestion {
	out := []domain.ImprovementSuggestion{}

	if in.StarsAverage < starsThreshold {
		out = append(out, domain.ImprovementSuggestion{
			Area:    "ratings",
			Current: in.StarsAverage,
			Target:  starsTarget,
			Impact:  "high",
			Actions: []string{
				"Improve food quality and presentation",
				"Respond to customer reviews",
				"Keep menu descriptions accurate",
			},
		})
	}

	if in.OnTimeRate < onTimeThreshold {
		out = append(out, domain.ImprovementSuggestion{
			Area:    "punctuality",
			Current: in.OnTimeRate,
			Target:  onTimeTarget,
			Impact:  "medium",
			Actions: []string{
				"Set realistic preparation times",
				"Prepare ingredients ahead of peak hours",
			},
		})
	}

	if in.VolumeScore < volumeThreshold {
		out = append(out, domain.ImprovementSuggestion{
			Area:    "order_volume",
			Current: in.VolumeScore,
			Target:  volumeTarget,
			Impact:  "low",
			Actions: []string{
				"Run promotions during slow hours",
				"Extend opening hours",
			},
		})
	}

	return out
}
