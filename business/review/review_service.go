package review

import (
	"context"
	"errors"
	"fmt"
	"foodRanking/domain"
	"foodRanking/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var ErrInvalidInput = errors.New("invalid review input")

type ReviewRepository interface {
	FindOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error)
	// CreateReview fails with domain.ErrReviewExists when the order already has one.
	CreateReview(ctx context.Context, review domain.Review) (domain.Review, error)
	FindReview(ctx context.Context, reviewID uuid.UUID) (domain.Review, error)
	UpdateReview(ctx context.Context, review domain.Review) (domain.Review, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID, filter domain.ReviewFilter) ([]domain.Review, int64, error)
}

type RankingNotifier interface {
	NotifyVendorChanged(ctx context.Context, vendorID uuid.UUID, trigger string)
}

const (
	TriggerReviewCreated = "review_created"
	TriggerReviewUpdated = "review_updated"

	defaultPageLimit = 20
	maxPageLimit     = 100
)

type SubmitInput struct {
	OrderID uuid.UUID `validate:"required"`
	Rating  int       `validate:"min=1,max=5"`
	Comment string    `validate:"max=500"`
}

type EditInput struct {
	Rating  int    `validate:"min=1,max=5"`
	Comment string `validate:"max=500"`
}

type ReviewService struct {
	repo     ReviewRepository
	ranking  RankingNotifier
	validate *validator.Validate
}

func NewReviewService(repo ReviewRepository, ranking RankingNotifier) *ReviewService {
	return &ReviewService{
		repo:     repo,
		ranking:  ranking,
		validate: validator.New(),
	}
}

// SubmitReview rates a delivered order on behalf of its customer.
func (s *ReviewService) SubmitReview(ctx context.Context, customerID uuid.UUID, in SubmitInput) (domain.Review, error) {
	if err := s.check(in); err != nil {
		return domain.Review{}, err
	}

	order, err := s.repo.FindOrder(ctx, in.OrderID)
	if err != nil {
		return domain.Review{}, err
	}
	if order.CustomerID != customerID {
		return domain.Review{}, domain.ErrReviewForbidden
	}
	if order.Status != domain.OrderStatusDelivered {
		return domain.Review{}, domain.ErrOrderNotDelivered
	}

	created, err := s.repo.CreateReview(ctx, domain.Review{
		ID:         uuid.New(),
		OrderID:    order.ID,
		CustomerID: customerID,
		Rating:     in.Rating,
		Comment:    in.Comment,
	})
	if err != nil {
		return domain.Review{}, err
	}

	logger.Info("review submitted",
		"review_id", created.ID,
		"order_id", order.ID,
		"vendor_id", order.VendorID,
		"rating", created.Rating,
	)

	s.notify(ctx, order.VendorID, TriggerReviewCreated)

	return created, nil
}

// EditReview changes the rating or comment of the caller's own review.
func (s *ReviewService) EditReview(ctx context.Context, customerID, reviewID uuid.UUID, in EditInput) (domain.Review, error) {
	if err := s.check(in); err != nil {
		return domain.Review{}, err
	}

	existing, err := s.repo.FindReview(ctx, reviewID)
	if err != nil {
		return domain.Review{}, err
	}
	if existing.CustomerID != customerID {
		return domain.Review{}, domain.ErrReviewForbidden
	}

	order, err := s.repo.FindOrder(ctx, existing.OrderID)
	if err != nil {
		return domain.Review{}, err
	}

	existing.Rating = in.Rating
	existing.Comment = in.Comment

	updated, err := s.repo.UpdateReview(ctx, existing)
	if err != nil {
		return domain.Review{}, err
	}

	s.notify(ctx, order.VendorID, TriggerReviewUpdated)

	return updated, nil
}

// ListVendorReviews pages through a vendor's reviews, newest first.
func (s *ReviewService) ListVendorReviews(ctx context.Context, vendorID uuid.UUID, filter domain.ReviewFilter) (domain.ReviewPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}
	if filter.Rating < 0 || filter.Rating > 5 {
		return domain.ReviewPage{}, domain.ErrInvalidRating
	}

	reviews, total, err := s.repo.ListByVendor(ctx, vendorID, filter)
	if err != nil {
		return domain.ReviewPage{}, err
	}

	return domain.ReviewPage{
		Reviews: reviews,
		Page:    filter.Page,
		Limit:   filter.Limit,
		Total:   total,
	}, nil
}

func (s *ReviewService) check(in any) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Field() == "Rating" {
				return domain.ErrInvalidRating
			}
		}
	}
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}

func (s *ReviewService) notify(ctx context.Context, vendorID uuid.UUID, trigger string) {
	if s.ranking != nil {
		s.ranking.NotifyVendorChanged(ctx, vendorID, trigger)
	}
}
