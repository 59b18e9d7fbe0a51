package rest

import (
	"context"
	"foodRanking/domain"
	"foodRanking/pkg/logger"
	"net/http"
	"strconv"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type (
	RankingHandler struct {
		rankingService RankingService
	}

	RankingService interface {
		GetTopVendors(ctx context.Context, limit int) ([]domain.TopVendor, error)
		GetVendorRankingPosition(ctx context.Context, vendorID uuid.UUID) (domain.RankingPosition, error)
		CalculateVendorMetrics(ctx context.Context, vendorID uuid.UUID) (domain.VendorScoreInput, error)
		GetVendorRankingInsights(ctx context.Context, vendorID uuid.UUID) (domain.RankingInsights, error)
		IsVendorOwner(ctx context.Context, vendorID, userID uuid.UUID) (bool, error)
	}

	TopVendorsResponse struct {
		Vendors     []domain.TopVendor `json:"vendors"`
		GeneratedAt time.Time          `json:"generated_at"`
	}

	VendorRankingResponse struct {
		VendorID    uuid.UUID               `json:"vendor_id"`
		Ranking     domain.RankingPosition  `json:"ranking"`
		Metrics     domain.VendorScoreInput `json:"metrics"`
		GeneratedAt time.Time               `json:"generated_at"`
	}

	VendorInsightsResponse struct {
		VendorID    uuid.UUID              `json:"vendor_id"`
		Insights    domain.RankingInsights `json:"insights"`
		GeneratedAt time.Time              `json:"generated_at"`
	}
)

func NewRankingHandler(rankingService RankingService) *RankingHandler {
	return &RankingHandler{
		rankingService: rankingService,
	}
}

// GET /api/v1/ranking/top?limit=10
func (h *RankingHandler) GetTopVendors(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return invalidParam(c, "limit")
		}
		limit = n
	}

	vendors, err := h.rankingService.GetTopVendors(c.Request().Context(), limit)
	if err != nil {
		logger.Error("Failed to get top vendors", "error", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(TopVendorsResponse{
		Vendors:     vendors,
		GeneratedAt: time.Now().UTC(),
	}))
}

// GET /api/v1/ranking/vendors/:vendorId
func (h *RankingHandler) GetVendorRanking(c echo.Context) error {
	vendorID, ok := pathUUID(c, "vendorId")
	if !ok {
		return invalidParam(c, "vendorId")
	}

	ctx := c.Request().Context()

	position, err := h.rankingService.GetVendorRankingPosition(ctx, vendorID)
	if err != nil {
		logger.Error("Failed to get vendor ranking position", "vendor_id", vendorID, "error", err)
		return errorJSON(c, err)
	}

	metrics, err := h.rankingService.CalculateVendorMetrics(ctx, vendorID)
	if err != nil {
		logger.Error("Failed to calculate vendor metrics", "vendor_id", vendorID, "error", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(VendorRankingResponse{
		VendorID:    vendorID,
		Ranking:     position,
		Metrics:     metrics,
		GeneratedAt: time.Now().UTC(),
	}))
}

// GET /api/v1/ranking/insights/:vendorId
// Only the vendor's owner or an admin may read insights.
func (h *RankingHandler) GetVendorInsights(c echo.Context) error {
	vendorID, ok := pathUUID(c, "vendorId")
	if !ok {
		return invalidParam(c, "vendorId")
	}

	ctx := c.Request().Context()

	if !isAdmin(c) {
		userID, ok := currentUser(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, ResponseError{Message: "user not authenticated"})
		}

		owner, err := h.rankingService.IsVendorOwner(ctx, vendorID, userID)
		if err != nil {
			return errorJSON(c, err)
		}
		if !owner {
			return c.JSON(http.StatusForbidden, ResponseError{Message: "you can only view your own vendor insights"})
		}
	}

	insights, err := h.rankingService.GetVendorRankingInsights(ctx, vendorID)
	if err != nil {
		logger.Error("Failed to get vendor insights", "vendor_id", vendorID, "error", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(VendorInsightsResponse{
		VendorID:    vendorID,
		Insights:    insights,
		GeneratedAt: time.Now().UTC(),
	}))
}
