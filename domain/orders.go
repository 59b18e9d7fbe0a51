package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	OrderStatusPending   = "PENDING"
	OrderStatusPreparing = "PREPARING"
	OrderStatusOnTheWay  = "ON_THE_WAY"
	OrderStatusDelivered = "DELIVERED"
	OrderStatusCancelled = "CANCELLED"

	// DefaultEstimatedMinutes is recorded on a delivery metric when the order had no estimate.
	DefaultEstimatedMinutes = 30
)

type Order struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	VendorID      uuid.UUID  `gorm:"column:vendor_id;type:uuid;not null;index" json:"vendor_id"`
	CustomerID    uuid.UUID  `gorm:"column:customer_id;type:uuid;not null" json:"customer_id"`
	Status        string     `gorm:"column:status;not null;default:PENDING;index" json:"status"`
	Total         float64    `gorm:"column:total;type:numeric" json:"total"`
	EstimatedTime *int       `gorm:"column:estimated_time" json:"estimated_time,omitempty"`
	DeliveredAt   *time.Time `gorm:"column:delivered_at" json:"delivered_at,omitempty"`
	CreatedAt     time.Time  `gorm:"column:created_at;index" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

// DeliveryMetric is the per-order punctuality record. One row per order.
type DeliveryMetric struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID       uuid.UUID `gorm:"column:order_id;type:uuid;uniqueIndex;not null" json:"order_id"`
	EstimatedTime int       `gorm:"column:estimated_time;not null" json:"estimated_time"`
	ActualTime    int       `gorm:"column:actual_time;not null" json:"actual_time"`
	IsOnTime      bool      `gorm:"column:is_on_time;not null" json:"is_on_time"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (DeliveryMetric) TableName() string {
	return "delivery_metrics"
}

// NewDeliveryMetric measures the order's delivery against its estimate, in whole minutes.
// Orders without an estimate count as on time.
func NewDeliveryMetric(order Order, deliveredAt time.Time) DeliveryMetric {
	actual := int(deliveredAt.Sub(order.CreatedAt).Round(time.Minute) / time.Minute)

	estimated := DefaultEstimatedMinutes
	onTime := true
	if order.EstimatedTime != nil {
		estimated = *order.EstimatedTime
		onTime = actual <= estimated
	}

	return DeliveryMetric{
		ID:            uuid.New(),
		OrderID:       order.ID,
		EstimatedTime: estimated,
		ActualTime:    actual,
		IsOnTime:      onTime,
	}
}
