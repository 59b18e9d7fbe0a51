package rest

import (
	"context"
	"foodRanking/business/review"
	"foodRanking/domain"
	"foodRanking/pkg/logger"
	"net/http"
	"strconv"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type (
	ReviewHandler struct {
		validate      *validator.Validate
		reviewService ReviewService
	}

	ReviewService interface {
		SubmitReview(ctx context.Context, customerID uuid.UUID, in review.SubmitInput) (domain.Review, error)
		EditReview(ctx context.Context, customerID, reviewID uuid.UUID, in review.EditInput) (domain.Review, error)
		ListVendorReviews(ctx context.Context, vendorID uuid.UUID, filter domain.ReviewFilter) (domain.ReviewPage, error)
	}

	ReviewInput struct {
		OrderID string `json:"order_id" validate:"required,uuid"`
		Rating  int    `json:"rating" validate:"required"`
		Comment string `json:"comment"`
	}

	EditReviewInput struct {
		Rating  int    `json:"rating" validate:"required"`
		Comment string `json:"comment"`
	}
)

func NewReviewHandler(reviewService ReviewService) *ReviewHandler {
	return &ReviewHandler{
		validate:      validator.New(),
		reviewService: reviewService,
	}
}

// POST /api/v1/reviews
func (h *ReviewHandler) CreateReview(c echo.Context) error {
	userID, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "user not authenticated"})
	}

	var request ReviewInput
	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate review", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	rv, err := h.reviewService.SubmitReview(c.Request().Context(), userID, review.SubmitInput{
		OrderID: uuid.MustParse(request.OrderID),
		Rating:  request.Rating,
		Comment: request.Comment,
	})
	if err != nil {
		logger.Error("Failed to submit review", "order_id", request.OrderID, "error", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(rv))
}

// PUT /api/v1/reviews/:id
func (h *ReviewHandler) UpdateReview(c echo.Context) error {
	userID, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "user not authenticated"})
	}

	reviewID, ok := pathUUID(c, "id")
	if !ok {
		return invalidParam(c, "id")
	}

	var request EditReviewInput
	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate review", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	rv, err := h.reviewService.EditReview(c.Request().Context(), userID, reviewID, review.EditInput{
		Rating:  request.Rating,
		Comment: request.Comment,
	})
	if err != nil {
		logger.Error("Failed to update review", "review_id", reviewID, "error", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(rv))
}

// GET /api/v1/vendors/:vendorId/reviews?page=1&limit=20&rating=5
func (h *ReviewHandler) ListVendorReviews(c echo.Context) error {
	vendorID, ok := pathUUID(c, "vendorId")
	if !ok {
		return invalidParam(c, "vendorId")
	}

	var filter domain.ReviewFilter
	for name, dst := range map[string]*int{"page": &filter.Page, "limit": &filter.Limit, "rating": &filter.Rating} {
		raw := c.QueryParam(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return invalidParam(c, name)
		}
		*dst = n
	}

	page, err := h.reviewService.ListVendorReviews(c.Request().Context(), vendorID, filter)
	if err != nil {
		logger.Error("Failed to list vendor reviews", "vendor_id", vendorID, "error", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(page))
}
