package ranking

import (
	"fmt"
	"foodRanking/domain"
)

// Fixed weights of the ranking formula. The plan bonus is added on top unweighted,
// so a PREMIUM vendor can exceed the weighted maximum of 38 (nominal ceiling 48).
const (
	WeightStars  = 0.6
	WeightOnTime = 0.25
	WeightVolume = 0.1
)

// ComputeScore is round2(stars*0.6 + onTimeRate*0.25 + volumeScore*0.1 + planBonus).
func ComputeScore(in domain.VendorScoreInput) float64 {
	base := in.StarsAverage*WeightStars +
		in.OnTimeRate*WeightOnTime +
		in.VolumeScore*WeightVolume

	return round2(base + in.PlanBonus)
}

// ValidateInput rejects inputs outside the domain the formula is defined on.
func ValidateInput(in domain.VendorScoreInput) error {
	if in.StarsAverage < 0 || in.StarsAverage > maxStars {
		return fmt.Errorf("%w: stars %.2f out of range", domain.ErrInvalidMetrics, in.StarsAverage)
	}
	if in.OnTimeRate < 0 || in.OnTimeRate > maxPercentage {
		return fmt.Errorf("%w: on-time rate %.2f out of range", domain.ErrInvalidMetrics, in.OnTimeRate)
	}
	if in.VolumeScore < 0 || in.VolumeScore > maxPercentage {
		return fmt.Errorf("%w: volume score %.2f out of range", domain.ErrInvalidMetrics, in.VolumeScore)
	}
	switch in.PlanBonus {
	case 0, planBonusPro, planBonusPremium:
	default:
		return fmt.Errorf("%w: plan bonus %.2f", domain.ErrInvalidMetrics, in.PlanBonus)
	}
	return nil
}
