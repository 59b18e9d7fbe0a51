package ranking

import (
	"context"
	"fmt"
	"foodRanking/domain"
	"foodRanking/pkg/logger"
	"foodRanking/pkg/metrics"
	"math"
	"time"

	"github.com/google/uuid"
)

const (
	queryPosition = "position"
	queryTop      = "top"
)

// GetVendorRankingPosition reports where a vendor's persisted score ranks among
// active vendors. Equal scores share a position.
func (s *RankingService) GetVendorRankingPosition(ctx context.Context, vendorID uuid.UUID) (domain.RankingPosition, error) {
	if err := ctx.Err(); err != nil {
		return domain.RankingPosition{}, fmt.Errorf("context error: %w", err)
	}

	start := time.Now()
	defer func() {
		metrics.RankingQueryLatency.WithLabelValues(queryPosition).Observe(time.Since(start).Seconds())
	}()

	vendor, err := s.repo.FindVendor(ctx, vendorID)
	if err != nil {
		return domain.RankingPosition{}, err
	}

	return s.position(ctx, vendor.RankingScore)
}

func (s *RankingService) position(ctx context.Context, score float64) (domain.RankingPosition, error) {
	above, err := s.repo.CountActiveVendorsAbove(ctx, score)
	if err != nil {
		return domain.RankingPosition{}, err
	}

	total, err := s.repo.CountActiveVendors(ctx)
	if err != nil {
		return domain.RankingPosition{}, err
	}

	pos := domain.RankingPosition{
		Position:     above + 1,
		TotalVendors: total,
	}
	pos.Percentile = percentile(pos.Position, total)

	return pos, nil
}

// percentile is round(100*(total-position)/total). An inactive vendor can rank
// past the active total, so the result never goes below 0.
func percentile(position, total int64) int {
	if total <= 0 {
		return 0
	}
	p := math.Round(100 * float64(total-position) / float64(total))
	if p < 0 {
		return 0
	}
	return int(p)
}

// GetTopVendors lists active vendors by score descending, ties by id ascending.
func (s *RankingService) GetTopVendors(ctx context.Context, limit int) ([]domain.TopVendor, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	start := time.Now()
	defer func() {
		metrics.RankingQueryLatency.WithLabelValues(queryTop).Observe(time.Since(start).Seconds())
	}()

	limit = s.normalizeLimit(limit)

	if s.cache != nil {
		cached, ok, err := s.cache.GetTop(ctx, limit)
		switch {
		case err != nil:
			logger.Warn("failed to read top vendor cache", "limit", limit, "error", err)
		case ok:
			metrics.RankingTopCacheHits.WithLabelValues("hit").Inc()
			return cached, nil
		default:
			metrics.RankingTopCacheHits.WithLabelValues("miss").Inc()
		}
	}

	vendors, err := s.repo.TopActiveVendors(ctx, limit, uuid.Nil)
	if err != nil {
		return nil, err
	}

	top := make([]domain.TopVendor, 0, len(vendors))
	for i, v := range vendors {
		top = append(top, domain.TopVendor{
			Position:     i + 1,
			VendorID:     v.ID,
			BusinessName: v.BusinessName,
			Logo:         v.Logo,
			Score:        v.RankingScore,
			Stars:        v.Stars,
			OnTimeRate:   v.OnTimeRate,
			VolumeScore:  v.VolumeScore,
			Plan:         v.Plan(),
		})
	}

	if s.cache != nil {
		if err := s.cache.SetTop(ctx, limit, top); err != nil {
			logger.Warn("failed to write top vendor cache", "limit", limit, "error", err)
		}
	}

	return top, nil
}

func (s *RankingService) normalizeLimit(limit int) int {
	if limit <= 0 {
		limit = s.cfg.TopDefault
	}
	if limit > s.cfg.TopMax {
		limit = s.cfg.TopMax
	}
	return limit
}

// IsVendorOwner reports whether userID owns the vendor.
func (s *RankingService) IsVendorOwner(ctx context.Context, vendorID, userID uuid.UUID) (bool, error) {
	vendor, err := s.repo.FindVendor(ctx, vendorID)
	if err != nil {
		return false, err
	}
	return vendor.OwnerID == userID, nil
}
