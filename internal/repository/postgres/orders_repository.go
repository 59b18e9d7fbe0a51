package postgres

import (
	"context"
	"errors"
	"fmt"
	"foodRanking/business/orders"
	"foodRanking/domain"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrdersRepository struct {
	DB *gorm.DB
}

var _ orders.OrdersRepository = (*OrdersRepository)(nil)

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{
		DB: db,
	}
}

func (r *OrdersRepository) FindOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	return findOrder(ctx, r.DB, orderID)
}

func findOrder(ctx context.Context, db *gorm.DB, orderID uuid.UUID) (domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("context error: %w", err)
	}

	var order domain.Order
	err := db.WithContext(ctx).First(&order, "id = ?", orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	if err != nil {
		return domain.Order{}, domain.NewDataError("find order", err)
	}

	return order, nil
}

// MarkDelivered flips the order to DELIVERED and upserts its delivery metric in
// one transaction. Re-delivering an order overwrites the previous measurement.
func (r *OrdersRepository) MarkDelivered(ctx context.Context, order domain.Order, metric domain.DeliveryMetric) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Order{}).
			Where("id = ?", order.ID).
			Updates(map[string]any{
				"status":       order.Status,
				"delivered_at": order.DeliveredAt,
				"updated_at":   time.Now().UTC(),
			})
		if res.Error != nil {
			return domain.NewDataError("update order status", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrOrderNotFound
		}

		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"estimated_time", "actual_time", "is_on_time", "updated_at"}),
		}).Create(&metric).Error
		if err != nil {
			return domain.NewDataError("upsert delivery metric", err)
		}

		return nil
	})
}
