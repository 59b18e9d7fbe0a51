//go:build !integration

package rest

import (
	"context"
	"errors"
	"foodRanking/business/review"
	"foodRanking/domain"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

var errBackend = errors.New("connection refused")

type fakeRankingService struct {
	top       []domain.TopVendor
	lastLimit int
	position  domain.RankingPosition
	metrics   domain.VendorScoreInput
	insights  domain.RankingInsights
	owners    map[uuid.UUID]uuid.UUID
	err       error
	recompute domain.RecomputeResult
	score     domain.VendorRankingScore
	stats     domain.RankingStats
}

func (f *fakeRankingService) GetTopVendors(_ context.Context, limit int) ([]domain.TopVendor, error) {
	f.lastLimit = limit
	return f.top, f.err
}

func (f *fakeRankingService) GetVendorRankingPosition(context.Context, uuid.UUID) (domain.RankingPosition, error) {
	return f.position, f.err
}

func (f *fakeRankingService) CalculateVendorMetrics(context.Context, uuid.UUID) (domain.VendorScoreInput, error) {
	return f.metrics, f.err
}

func (f *fakeRankingService) GetVendorRankingInsights(context.Context, uuid.UUID) (domain.RankingInsights, error) {
	return f.insights, f.err
}

func (f *fakeRankingService) IsVendorOwner(_ context.Context, vendorID, userID uuid.UUID) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	owner, ok := f.owners[vendorID]
	if !ok {
		return false, domain.ErrVendorNotFound
	}
	return owner == userID, nil
}

func (f *fakeRankingService) RecomputeAll(context.Context) (domain.RecomputeResult, error) {
	return f.recompute, f.err
}

func (f *fakeRankingService) RecomputeVendor(_ context.Context, vendorID uuid.UUID) (domain.VendorRankingScore, error) {
	if f.err != nil {
		return domain.VendorRankingScore{}, f.err
	}
	s := f.score
	s.VendorID = vendorID
	return s, nil
}

func (f *fakeRankingService) GetRankingStats(context.Context) (domain.RankingStats, error) {
	return f.stats, f.err
}

type fakeOrdersService struct {
	orders          map[uuid.UUID]domain.Order
	lastDeliveredAt time.Time
	err             error
}

func (f *fakeOrdersService) GetOrder(_ context.Context, id uuid.UUID) (domain.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return o, nil
}

func (f *fakeOrdersService) MarkDelivered(_ context.Context, id uuid.UUID, deliveredAt time.Time) (domain.Order, error) {
	if f.err != nil {
		return domain.Order{}, f.err
	}
	o, ok := f.orders[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	f.lastDeliveredAt = deliveredAt
	o.Status = domain.OrderStatusDelivered
	o.DeliveredAt = &deliveredAt
	return o, nil
}

type fakeReviewService struct {
	submitted  []review.SubmitInput
	lastFilter domain.ReviewFilter
	err        error
}

func (f *fakeReviewService) SubmitReview(_ context.Context, customerID uuid.UUID, in review.SubmitInput) (domain.Review, error) {
	if f.err != nil {
		return domain.Review{}, f.err
	}
	f.submitted = append(f.submitted, in)
	return domain.Review{ID: uuid.New(), OrderID: in.OrderID, CustomerID: customerID, Rating: in.Rating, Comment: in.Comment}, nil
}

func (f *fakeReviewService) EditReview(_ context.Context, customerID, reviewID uuid.UUID, in review.EditInput) (domain.Review, error) {
	if f.err != nil {
		return domain.Review{}, f.err
	}
	return domain.Review{ID: reviewID, CustomerID: customerID, Rating: in.Rating, Comment: in.Comment}, nil
}

func (f *fakeReviewService) ListVendorReviews(_ context.Context, _ uuid.UUID, filter domain.ReviewFilter) (domain.ReviewPage, error) {
	f.lastFilter = filter
	if f.err != nil {
		return domain.ReviewPage{}, f.err
	}
	return domain.ReviewPage{Page: filter.Page, Limit: filter.Limit}, nil
}

// newContext builds an echo context with path params given as name, value pairs.
func newContext(method, target, body string, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()

	var req = httptest.NewRequest(method, target, nil)
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var names, values []string
	for i := 0; i+1 < len(params); i += 2 {
		names = append(names, params[i])
		values = append(values, params[i+1])
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)

	return c, rec
}

func asUser(c echo.Context, id uuid.UUID, role string) {
	c.Set("user_id", id)
	c.Set("role", role)
}
