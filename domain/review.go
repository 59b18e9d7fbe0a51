package domain

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID    uuid.UUID `gorm:"column:order_id;type:uuid;uniqueIndex;not null" json:"order_id"`
	CustomerID uuid.UUID `gorm:"column:customer_id;type:uuid;not null" json:"customer_id"`
	Rating     int       `gorm:"column:rating;not null" json:"rating"`
	Comment    string    `gorm:"column:comment;type:text" json:"comment,omitempty"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Review) TableName() string {
	return "reviews"
}

// ReviewFilter selects a page of a vendor's reviews. Rating 0 means any rating.
type ReviewFilter struct {
	Page   int
	Limit  int
	Rating int
}

type ReviewPage struct {
	Reviews []Review `json:"reviews"`
	Page    int      `json:"page"`
	Limit   int      `json:"limit"`
	Total   int64    `json:"total"`
}
