package postgres

import (
	"context"
	"errors"
	"fmt"
	"foodRanking/business/review"
	"foodRanking/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewRepository struct {
	DB *gorm.DB
}

var _ review.ReviewRepository = (*ReviewRepository)(nil)

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{DB: db}
}

func (r *ReviewRepository) FindOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	return findOrder(ctx, r.DB, orderID)
}

func (r *ReviewRepository) CreateReview(ctx context.Context, rv domain.Review) (domain.Review, error) {
	if err := ctx.Err(); err != nil {
		return domain.Review{}, fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&domain.Review{}).Where("order_id = ?", rv.OrderID).Count(&n).Error; err != nil {
			return domain.NewDataError("check existing review", err)
		}
		if n > 0 {
			return domain.ErrReviewExists
		}

		if err := tx.Create(&rv).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrReviewExists
			}
			return domain.NewDataError("create review", err)
		}
		return nil
	})
	if err != nil {
		return domain.Review{}, err
	}

	return rv, nil
}

func (r *ReviewRepository) FindReview(ctx context.Context, reviewID uuid.UUID) (domain.Review, error) {
	if err := ctx.Err(); err != nil {
		return domain.Review{}, fmt.Errorf("context error: %w", err)
	}

	var rv domain.Review
	err := r.DB.WithContext(ctx).First(&rv, "id = ?", reviewID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Review{}, domain.ErrReviewNotFound
	}
	if err != nil {
		return domain.Review{}, domain.NewDataError("find review", err)
	}

	return rv, nil
}

func (r *ReviewRepository) UpdateReview(ctx context.Context, rv domain.Review) (domain.Review, error) {
	if err := ctx.Err(); err != nil {
		return domain.Review{}, fmt.Errorf("context error: %w", err)
	}

	res := r.DB.WithContext(ctx).
		Model(&rv).
		Select("rating", "comment", "updated_at").
		Updates(domain.Review{Rating: rv.Rating, Comment: rv.Comment})
	if res.Error != nil {
		return domain.Review{}, domain.NewDataError("update review", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.Review{}, domain.ErrReviewNotFound
	}

	return r.FindReview(ctx, rv.ID)
}

func (r *ReviewRepository) ListByVendor(ctx context.Context, vendorID uuid.UUID, filter domain.ReviewFilter) ([]domain.Review, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, fmt.Errorf("context error: %w", err)
	}

	q := r.DB.WithContext(ctx).
		Model(&domain.Review{}).
		Joins("JOIN orders ON orders.id = reviews.order_id").
		Where("orders.vendor_id = ?", vendorID)
	if filter.Rating > 0 {
		q = q.Where("reviews.rating = ?", filter.Rating)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, domain.NewDataError("count vendor reviews", err)
	}

	var reviews []domain.Review
	err := q.Order("reviews.created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, domain.NewDataError("list vendor reviews", err)
	}

	return reviews, total, nil
}
