package domain

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionPlan string

const (
	PlanFree    SubscriptionPlan = "FREE"
	PlanPro     SubscriptionPlan = "PRO"
	PlanPremium SubscriptionPlan = "PREMIUM"
)

// Vendor is a merchant account. Stars, OnTimeRate, VolumeScore and RankingScore
// are owned by the ranking engine; everything else is read-only to it.
type Vendor struct {
	ID           uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID      uuid.UUID     `gorm:"column:owner_id;type:uuid" json:"owner_id"`
	BusinessName string        `gorm:"column:business_name;type:text;not null" json:"business_name"`
	Logo         string        `gorm:"column:logo;type:text" json:"logo,omitempty"`
	IsActive     bool          `gorm:"column:is_active;default:true;index" json:"is_active"`
	Stars        float64       `gorm:"column:stars;default:0" json:"stars"`
	OnTimeRate   float64       `gorm:"column:on_time_rate;default:0" json:"on_time_rate"`
	VolumeScore  float64       `gorm:"column:volume_score;default:0" json:"volume_score"`
	RankingScore float64       `gorm:"column:ranking_score;default:0;index" json:"ranking_score"`
	Subscription *Subscription `gorm:"foreignKey:VendorID" json:"subscription,omitempty"`
	CreatedAt    time.Time     `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time     `gorm:"column:updated_at" json:"updated_at"`
}

func (Vendor) TableName() string {
	return "vendor_profiles"
}

// Plan returns the vendor's subscription plan, FREE when there is none.
func (v Vendor) Plan() SubscriptionPlan {
	if v.Subscription == nil || v.Subscription.Plan == "" {
		return PlanFree
	}
	return v.Subscription.Plan
}

type Subscription struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	VendorID  uuid.UUID        `gorm:"column:vendor_id;type:uuid;uniqueIndex;not null" json:"vendor_id"`
	Plan      SubscriptionPlan `gorm:"column:plan;type:text;not null;default:FREE" json:"plan"`
	CreatedAt time.Time        `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time        `gorm:"column:updated_at" json:"updated_at"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
