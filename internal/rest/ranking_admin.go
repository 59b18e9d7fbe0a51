package rest

import (
	"context"
	"foodRanking/domain"
	"foodRanking/pkg/logger"
	"net/http"

	"github.com/AMFarhan21/fres"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type RankingAdminService interface {
	RecomputeAll(ctx context.Context) (domain.RecomputeResult, error)
	RecomputeVendor(ctx context.Context, vendorID uuid.UUID) (domain.VendorRankingScore, error)
	GetRankingStats(ctx context.Context) (domain.RankingStats, error)
}

type RankingAdminHandler struct {
	adminService RankingAdminService
}

func NewRankingAdminHandler(adminService RankingAdminService) *RankingAdminHandler {
	return &RankingAdminHandler{
		adminService: adminService,
	}
}

// POST /api/v1/admin/ranking/recompute
func (h *RankingAdminHandler) RecomputeAll(c echo.Context) error {
	result, err := h.adminService.RecomputeAll(c.Request().Context())
	if err != nil {
		logger.Error("Failed to recompute vendor rankings", "error", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}

// POST /api/v1/admin/ranking/vendors/:vendorId/recompute
func (h *RankingAdminHandler) RecomputeVendor(c echo.Context) error {
	vendorID, ok := pathUUID(c, "vendorId")
	if !ok {
		return invalidParam(c, "vendorId")
	}

	score, err := h.adminService.RecomputeVendor(c.Request().Context(), vendorID)
	if err != nil {
		logger.Error("Failed to recompute vendor ranking", "vendor_id", vendorID, "error", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(score))
}

// GET /api/v1/admin/ranking/stats
func (h *RankingAdminHandler) GetStats(c echo.Context) error {
	stats, err := h.adminService.GetRankingStats(c.Request().Context())
	if err != nil {
		logger.Error("Failed to get ranking stats", "error", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(stats))
}
