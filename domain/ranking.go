package domain

import (
	"time"

	"github.com/google/uuid"
)

// VendorScoreInput holds the signals a ranking score is computed from.
type VendorScoreInput struct {
	StarsAverage float64 `json:"stars"`
	OnTimeRate   float64 `json:"on_time_rate"`
	VolumeScore  float64 `json:"volume_score"`
	PlanBonus    float64 `json:"plan_bonus"`
}

// VendorRankingScore is what the engine writes back onto the vendor row.
type VendorRankingScore struct {
	VendorID     uuid.UUID `json:"vendor_id"`
	StarsAverage float64   `json:"stars"`
	OnTimeRate   float64   `json:"on_time_rate"`
	VolumeScore  float64   `json:"volume_score"`
	Score        float64   `json:"score"`
}

type RankingPosition struct {
	Position     int64 `json:"position"`
	TotalVendors int64 `json:"total_vendors"`
	Percentile   int   `json:"percentile"`
}

type TopVendor struct {
	Position     int              `json:"position"`
	VendorID     uuid.UUID        `json:"id"`
	BusinessName string           `json:"business_name"`
	Logo         string           `json:"logo,omitempty"`
	Score        float64          `json:"ranking_score"`
	Stars        float64          `json:"stars"`
	OnTimeRate   float64          `json:"on_time_rate"`
	VolumeScore  float64          `json:"volume_score"`
	Plan         SubscriptionPlan `json:"plan"`
}

type RecomputeFailure struct {
	VendorID uuid.UUID `json:"vendor_id"`
	Error    string    `json:"error"`
}

type RecomputeResult struct {
	UpdatedCount int                `json:"updated_count"`
	FailedCount  int                `json:"failed_count"`
	Failures     []RecomputeFailure `json:"failures,omitempty"`
	Timestamp    time.Time          `json:"timestamp"`
}

type ImprovementSuggestion struct {
	Area    string   `json:"area"`
	Current float64  `json:"current"`
	Target  float64  `json:"target"`
	Impact  string   `json:"impact"`
	Actions []string `json:"actions"`
}

type Competitor struct {
	VendorID     uuid.UUID `json:"vendor_id"`
	BusinessName string    `json:"business_name"`
	Score        float64   `json:"ranking_score"`
	Stars        float64   `json:"stars"`
	OnTimeRate   float64   `json:"on_time_rate"`
}

type RankingInsights struct {
	Score       float64                 `json:"score"`
	Position    RankingPosition         `json:"position"`
	Metrics     VendorScoreInput        `json:"metrics"`
	Competitors []Competitor            `json:"competitors"`
	Suggestions []ImprovementSuggestion `json:"suggestions"`
}

// ScoreSummary is the aggregate over active vendors' persisted ranking fields.
type ScoreSummary struct {
	Count          int64
	AvgScore       float64
	AvgStars       float64
	AvgOnTimeRate  float64
	AvgVolumeScore float64
	MinScore       float64
	MaxScore       float64
	MinStars       float64
	MaxStars       float64
	MinOnTimeRate  float64
	MaxOnTimeRate  float64
}

type ValueRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type ScoreBucket struct {
	Range string `json:"range"`
	Count int64  `json:"count"`
}

type RankingStats struct {
	TotalVendors int64 `json:"total_vendors"`
	Averages     struct {
		Score       float64 `json:"ranking_score"`
		Stars       float64 `json:"stars"`
		OnTimeRate  float64 `json:"on_time_rate"`
		VolumeScore float64 `json:"volume_score"`
	} `json:"averages"`
	Ranges struct {
		Score      ValueRange `json:"ranking_score"`
		Stars      ValueRange `json:"stars"`
		OnTimeRate ValueRange `json:"on_time_rate"`
	} `json:"ranges"`
	ScoreDistribution []ScoreBucket `json:"score_distribution"`
	GeneratedAt       time.Time     `json:"generated_at"`
}
