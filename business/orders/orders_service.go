package orders

import (
	"context"
	"fmt"
	"foodRanking/domain"
	"foodRanking/pkg/logger"
	"time"

	"github.com/google/uuid"
)

type OrdersRepository interface {
	FindOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error)
	// MarkDelivered updates the order and upserts its delivery metric atomically.
	MarkDelivered(ctx context.Context, order domain.Order, metric domain.DeliveryMetric) error
}

// RankingNotifier is told when a vendor's ranking inputs changed.
type RankingNotifier interface {
	NotifyVendorChanged(ctx context.Context, vendorID uuid.UUID, trigger string)
}

const TriggerOrderDelivered = "order_delivered"

type OrdersService struct {
	orderRepo OrdersRepository
	ranking   RankingNotifier
}

func NewOrdersService(orderRepo OrdersRepository, ranking RankingNotifier) *OrdersService {
	return &OrdersService{
		orderRepo: orderRepo,
		ranking:   ranking,
	}
}

func (s *OrdersService) GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	return s.orderRepo.FindOrder(ctx, orderID)
}

// MarkDelivered records the delivery and its punctuality, then refreshes the
// vendor's ranking. A failed ranking refresh does not fail the delivery.
func (s *OrdersService) MarkDelivered(ctx context.Context, orderID uuid.UUID, deliveredAt time.Time) (domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("context error: %w", err)
	}

	order, err := s.orderRepo.FindOrder(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}

	if order.Status == domain.OrderStatusCancelled {
		return domain.Order{}, domain.ErrOrderCancelled
	}

	if deliveredAt.IsZero() {
		deliveredAt = time.Now()
	}
	if deliveredAt.Before(order.CreatedAt) {
		deliveredAt = order.CreatedAt
	}

	metric := domain.NewDeliveryMetric(order, deliveredAt)

	order.Status = domain.OrderStatusDelivered
	order.DeliveredAt = &deliveredAt

	if err := s.orderRepo.MarkDelivered(ctx, order, metric); err != nil {
		return domain.Order{}, err
	}

	logger.Info("order delivered",
		"order_id", order.ID,
		"vendor_id", order.VendorID,
		"actual_minutes", metric.ActualTime,
		"on_time", metric.IsOnTime,
	)

	if s.ranking != nil {
		s.ranking.NotifyVendorChanged(ctx, order.VendorID, TriggerOrderDelivered)
	}

	return order, nil
}
