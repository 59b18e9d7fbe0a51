package ranking

import (
	"foodRanking/domain"
	"math"
)

const (
	planBonusPro     = 5.0
	planBonusPremium = 10.0

	maxStars      = 5.0
	maxPercentage = 100.0
)

// VolumeScore maps the number of delivered orders in the trailing window onto 0..100.
//
//	n <= 10       n/10 * 20
//	10 < n <= 50  20 + (n-10)/40 * 40
//	n > 50        60 + min((n-50)/50 * 40, 40)
//
// The result is clamped to [0, 100] and rounded to one decimal.
func VolumeScore(delivered int64) float64 {
	n := float64(delivered)

	var score float64
	switch {
	case n <= 10:
		score = (n / 10) * 20
	case n <= 50:
		score = 20 + ((n-10)/40)*40
	default:
		score = 60 + math.Min(((n-50)/50)*40, 40)
	}

	return round1(clamp(score, 0, maxPercentage))
}

// PlanBonus is the additive boost for a subscription tier.
func PlanBonus(plan domain.SubscriptionPlan) float64 {
	switch plan {
	case domain.PlanPremium:
		return planBonusPremium
	case domain.PlanPro:
		return planBonusPro
	default:
		return 0
	}
}

// OnTimeRate is the percentage of on-time deliveries, 0 when there were none.
func OnTimeRate(onTime, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return round1(100 * float64(onTime) / float64(total))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
