package postgres

import (
	"context"
	"errors"
	"fmt"
	"foodRanking/business/ranking"
	"foodRanking/domain"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RankingRepository struct {
	DB *gorm.DB
}

var _ ranking.Repository = (*RankingRepository)(nil)

func NewRankingRepository(db *gorm.DB) *RankingRepository {
	return &RankingRepository{DB: db}
}

// ---- Vendors ----

func (r *RankingRepository) FindVendor(ctx context.Context, vendorID uuid.UUID) (domain.Vendor, error) {
	if err := ctx.Err(); err != nil {
		return domain.Vendor{}, fmt.Errorf("context error: %w", err)
	}

	var vendor domain.Vendor
	err := r.DB.WithContext(ctx).
		Preload("Subscription").
		First(&vendor, "id = ?", vendorID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Vendor{}, domain.ErrVendorNotFound
	}
	if err != nil {
		return domain.Vendor{}, domain.NewDataError("find vendor", err)
	}

	return vendor, nil
}

func (r *RankingRepository) ListActiveVendorIDs(ctx context.Context) ([]uuid.UUID, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var ids []uuid.UUID
	err := r.DB.WithContext(ctx).
		Model(&domain.Vendor{}).
		Where("is_active = ?", true).
		Order("id ASC").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, domain.NewDataError("list active vendors", err)
	}

	return ids, nil
}

// ---- Raw signals ----

func (r *RankingRepository) ReviewStats(ctx context.Context, vendorID uuid.UUID) (ranking.ReviewStats, error) {
	if err := ctx.Err(); err != nil {
		return ranking.ReviewStats{}, fmt.Errorf("context error: %w", err)
	}

	var row struct {
		Count   int64
		Average float64
	}
	err := r.DB.WithContext(ctx).
		Table("reviews").
		Select("COUNT(reviews.id) AS count, COALESCE(AVG(reviews.rating), 0)::float8 AS average").
		Joins("JOIN orders ON orders.id = reviews.order_id").
		Where("orders.vendor_id = ?", vendorID).
		Scan(&row).Error
	if err != nil {
		return ranking.ReviewStats{}, domain.NewDataError("review stats", err)
	}

	return ranking.ReviewStats{Count: row.Count, Average: row.Average}, nil
}

func (r *RankingRepository) DeliveryStats(ctx context.Context, vendorID uuid.UUID, from, to time.Time) (ranking.DeliveryStats, error) {
	if err := ctx.Err(); err != nil {
		return ranking.DeliveryStats{}, fmt.Errorf("context error: %w", err)
	}

	var row struct {
		Total  int64
		OnTime int64
	}
	err := r.DB.WithContext(ctx).
		Table("delivery_metrics").
		Select("COUNT(delivery_metrics.id) AS total, "+
			"COALESCE(SUM(CASE WHEN delivery_metrics.is_on_time THEN 1 ELSE 0 END), 0) AS on_time").
		Joins("JOIN orders ON orders.id = delivery_metrics.order_id").
		Where("orders.vendor_id = ?", vendorID).
		Where("orders.created_at >= ? AND orders.created_at < ?", from, to).
		Scan(&row).Error
	if err != nil {
		return ranking.DeliveryStats{}, domain.NewDataError("delivery stats", err)
	}

	return ranking.DeliveryStats{Total: row.Total, OnTime: row.OnTime}, nil
}

func (r *RankingRepository) CountDeliveredOrders(ctx context.Context, vendorID uuid.UUID, from, to time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	var n int64
	err := r.DB.WithContext(ctx).
		Model(&domain.Order{}).
		Where("vendor_id = ? AND status = ?", vendorID, domain.OrderStatusDelivered).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&n).Error
	if err != nil {
		return 0, domain.NewDataError("count delivered orders", err)
	}

	return n, nil
}

// ---- Writes ----

func (r *RankingRepository) SaveScore(ctx context.Context, score domain.VendorRankingScore) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	res := r.DB.WithContext(ctx).
		Model(&domain.Vendor{}).
		Where("id = ?", score.VendorID).
		Updates(map[string]any{
			"stars":         score.StarsAverage,
			"on_time_rate":  score.OnTimeRate,
			"volume_score":  score.VolumeScore,
			"ranking_score": score.Score,
			"updated_at":    time.Now().UTC(),
		})
	if res.Error != nil {
		return domain.NewDataError("save ranking score", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrVendorNotFound
	}

	return nil
}

// Transaction runs fn on a repository bound to a single database transaction.
// Any error returned by fn rolls the transaction back and is returned unchanged.
func (r *RankingRepository) Transaction(ctx context.Context, fn func(repo ranking.Repository) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&RankingRepository{DB: tx})
	})
}

// ---- Lookups ----

func (r *RankingRepository) FindOrderVendorID(ctx context.Context, orderID uuid.UUID) (uuid.UUID, error) {
	if err := ctx.Err(); err != nil {
		return uuid.Nil, fmt.Errorf("context error: %w", err)
	}

	var order domain.Order
	err := r.DB.WithContext(ctx).
		Select("id", "vendor_id").
		First(&order, "id = ?", orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return uuid.Nil, domain.NewDataError("find order vendor", err)
	}

	return order.VendorID, nil
}

func (r *RankingRepository) FindReviewVendorID(ctx context.Context, reviewID uuid.UUID) (uuid.UUID, error) {
	if err := ctx.Err(); err != nil {
		return uuid.Nil, fmt.Errorf("context error: %w", err)
	}

	var ids []uuid.UUID
	err := r.DB.WithContext(ctx).
		Table("reviews").
		Joins("JOIN orders ON orders.id = reviews.order_id").
		Where("reviews.id = ?", reviewID).
		Limit(1).
		Pluck("orders.vendor_id", &ids).Error
	if err != nil {
		return uuid.Nil, domain.NewDataError("find review vendor", err)
	}
	if len(ids) == 0 {
		return uuid.Nil, domain.ErrReviewNotFound
	}

	return ids[0], nil
}

// ---- Ranking reads ----

func (r *RankingRepository) activeVendors(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).
		Model(&domain.Vendor{}).
		Where("is_active = ?", true)
}

func (r *RankingRepository) CountActiveVendors(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	var n int64
	if err := r.activeVendors(ctx).Count(&n).Error; err != nil {
		return 0, domain.NewDataError("count active vendors", err)
	}

	return n, nil
}

func (r *RankingRepository) CountActiveVendorsAbove(ctx context.Context, score float64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	var n int64
	if err := r.activeVendors(ctx).Where("ranking_score > ?", score).Count(&n).Error; err != nil {
		return 0, domain.NewDataError("count vendors above score", err)
	}

	return n, nil
}

func (r *RankingRepository) CountActiveVendorsInRange(ctx context.Context, min, max float64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	var n int64
	err := r.activeVendors(ctx).
		Where("ranking_score >= ? AND ranking_score < ?", min, max).
		Count(&n).Error
	if err != nil {
		return 0, domain.NewDataError("count vendors in score range", err)
	}

	return n, nil
}

func (r *RankingRepository) TopActiveVendors(ctx context.Context, limit int, exclude uuid.UUID) ([]domain.Vendor, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	q := r.activeVendors(ctx).Preload("Subscription")
	if exclude != uuid.Nil {
		q = q.Where("id <> ?", exclude)
	}

	var vendors []domain.Vendor
	err := q.Order("ranking_score DESC").
		Order("id ASC").
		Limit(limit).
		Find(&vendors).Error
	if err != nil {
		return nil, domain.NewDataError("top vendors", err)
	}

	return vendors, nil
}

func (r *RankingRepository) ScoreSummary(ctx context.Context) (domain.ScoreSummary, error) {
	if err := ctx.Err(); err != nil {
		return domain.ScoreSummary{}, fmt.Errorf("context error: %w", err)
	}

	var sum domain.ScoreSummary
	err := r.activeVendors(ctx).
		Select(`COUNT(*) AS count,
			COALESCE(AVG(ranking_score), 0) AS avg_score,
			COALESCE(AVG(stars), 0) AS avg_stars,
			COALESCE(AVG(on_time_rate), 0) AS avg_on_time_rate,
			COALESCE(AVG(volume_score), 0) AS avg_volume_score,
			COALESCE(MIN(ranking_score), 0) AS min_score,
			COALESCE(MAX(ranking_score), 0) AS max_score,
			COALESCE(MIN(stars), 0) AS min_stars,
			COALESCE(MAX(stars), 0) AS max_stars,
			COALESCE(MIN(on_time_rate), 0) AS min_on_time_rate,
			COALESCE(MAX(on_time_rate), 0) AS max_on_time_rate`).
		Scan(&sum).Error
	if err != nil {
		return domain.ScoreSummary{}, domain.NewDataError("score summary", err)
	}

	return sum, nil
}
