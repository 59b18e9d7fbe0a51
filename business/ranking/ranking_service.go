package ranking

import (
	"bytes"
	"context"
	"fmt"
	"foodRanking/domain"
	"foodRanking/pkg/logger"
	"foodRanking/pkg/metrics"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ---- Repository interfaces ----

type ReviewStats struct {
	Count   int64
	Average float64
}

type DeliveryStats struct {
	Total  int64
	OnTime int64
}

// Repository is the data access the ranking engine needs. Everything except
// SaveScore is read-only.
type Repository interface {
	FindVendor(ctx context.Context, vendorID uuid.UUID) (domain.Vendor, error)
	ListActiveVendorIDs(ctx context.Context) ([]uuid.UUID, error)

	// ReviewStats aggregates ratings of all reviews on the vendor's orders.
	ReviewStats(ctx context.Context, vendorID uuid.UUID) (ReviewStats, error)
	// DeliveryStats counts delivery metrics of vendor orders created in [from, to).
	DeliveryStats(ctx context.Context, vendorID uuid.UUID, from, to time.Time) (DeliveryStats, error)
	// CountDeliveredOrders counts DELIVERED vendor orders created in [from, to).
	CountDeliveredOrders(ctx context.Context, vendorID uuid.UUID, from, to time.Time) (int64, error)

	SaveScore(ctx context.Context, score domain.VendorRankingScore) error
	// Transaction runs fn against a repository bound to one database transaction.
	Transaction(ctx context.Context, fn func(repo Repository) error) error

	FindOrderVendorID(ctx context.Context, orderID uuid.UUID) (uuid.UUID, error)
	FindReviewVendorID(ctx context.Context, reviewID uuid.UUID) (uuid.UUID, error)

	CountActiveVendors(ctx context.Context) (int64, error)
	CountActiveVendorsAbove(ctx context.Context, score float64) (int64, error)
	CountActiveVendorsInRange(ctx context.Context, min, max float64) (int64, error)
	// TopActiveVendors orders by ranking score desc then id asc; exclude may be uuid.Nil.
	TopActiveVendors(ctx context.Context, limit int, exclude uuid.UUID) ([]domain.Vendor, error)
	ScoreSummary(ctx context.Context) (domain.ScoreSummary, error)
}

// TopVendorCache memoizes top-N responses between recomputes.
type TopVendorCache interface {
	GetTop(ctx context.Context, limit int) ([]domain.TopVendor, bool, error)
	SetTop(ctx context.Context, limit int, vendors []domain.TopVendor) error
	Invalidate(ctx context.Context) error
}

type Config struct {
	// Concurrency bounds parallel vendor recomputes in a batch run.
	Concurrency int
	TopDefault  int
	TopMax      int
	// Window is the trailing lookback for deliveries and order volume.
	Window time.Duration
}

const (
	defaultConcurrency = 4
	defaultTopLimit    = 10
	defaultTopMax      = 50
	defaultWindow      = 30 * 24 * time.Hour
)

func DefaultConfig() Config {
	return Config{
		Concurrency: defaultConcurrency,
		TopDefault:  defaultTopLimit,
		TopMax:      defaultTopMax,
		Window:      defaultWindow,
	}
}

// ---- Service ----

type RankingService struct {
	repo  Repository
	cache TopVendorCache
	cfg   Config
	now   func() time.Time
}

// NewRankingService wires the engine. cache may be nil.
func NewRankingService(repo Repository, cache TopVendorCache, cfg Config) *RankingService {
	def := DefaultConfig()
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = def.Concurrency
	}
	if cfg.TopDefault <= 0 {
		cfg.TopDefault = def.TopDefault
	}
	if cfg.TopMax <= 0 {
		cfg.TopMax = def.TopMax
	}
	if cfg.Window <= 0 {
		cfg.Window = def.Window
	}

	return &RankingService{
		repo:  repo,
		cache: cache,
		cfg:   cfg,
		now:   time.Now,
	}
}

// CalculateVendorMetrics derives the score inputs for one vendor. Read-only.
func (s *RankingService) CalculateVendorMetrics(ctx context.Context, vendorID uuid.UUID) (domain.VendorScoreInput, error) {
	if err := ctx.Err(); err != nil {
		return domain.VendorScoreInput{}, fmt.Errorf("context error: %w", err)
	}

	_, in, err := s.extract(ctx, s.repo, vendorID)
	return in, err
}

func (s *RankingService) extract(ctx context.Context, repo Repository, vendorID uuid.UUID) (domain.Vendor, domain.VendorScoreInput, error) {
	vendor, err := repo.FindVendor(ctx, vendorID)
	if err != nil {
		return domain.Vendor{}, domain.VendorScoreInput{}, err
	}

	now := s.now()
	from := now.Add(-s.cfg.Window)

	reviews, err := repo.ReviewStats(ctx, vendorID)
	if err != nil {
		return domain.Vendor{}, domain.VendorScoreInput{}, err
	}

	deliveries, err := repo.DeliveryStats(ctx, vendorID, from, now)
	if err != nil {
		return domain.Vendor{}, domain.VendorScoreInput{}, err
	}

	delivered, err := repo.CountDeliveredOrders(ctx, vendorID, from, now)
	if err != nil {
		return domain.Vendor{}, domain.VendorScoreInput{}, err
	}

	if err := validateSignals(reviews, deliveries, delivered); err != nil {
		return domain.Vendor{}, domain.VendorScoreInput{}, err
	}

	stars := 0.0
	if reviews.Count > 0 {
		stars = round1(reviews.Average)
	}

	in := domain.VendorScoreInput{
		StarsAverage: stars,
		OnTimeRate:   OnTimeRate(deliveries.OnTime, deliveries.Total),
		VolumeScore:  VolumeScore(delivered),
		PlanBonus:    PlanBonus(vendor.Plan()),
	}

	logger.Debug("vendor_metrics",
		"vendor_id", vendorID,
		"review_count", reviews.Count,
		"deliveries", deliveries.Total,
		"on_time", deliveries.OnTime,
		"delivered_orders", delivered,
		"stars", in.StarsAverage,
		"on_time_rate", in.OnTimeRate,
		"volume_score", in.VolumeScore,
		"plan_bonus", in.PlanBonus,
	)

	return vendor, in, nil
}

func validateSignals(reviews ReviewStats, deliveries DeliveryStats, delivered int64) error {
	if reviews.Count < 0 || deliveries.Total < 0 || deliveries.OnTime < 0 || delivered < 0 {
		return fmt.Errorf("%w: negative count", domain.ErrInvalidMetrics)
	}
	if deliveries.OnTime > deliveries.Total {
		return fmt.Errorf("%w: %d on-time of %d deliveries", domain.ErrInvalidMetrics, deliveries.OnTime, deliveries.Total)
	}
	if reviews.Count > 0 && (reviews.Average < 1 || reviews.Average > maxStars) {
		return fmt.Errorf("%w: average rating %.2f", domain.ErrInvalidMetrics, reviews.Average)
	}
	return nil
}

// recompute extracts, scores and persists one vendor inside a single transaction.
func (s *RankingService) recompute(ctx context.Context, vendorID uuid.UUID) (domain.VendorRankingScore, error) {
	var result domain.VendorRankingScore

	err := s.repo.Transaction(ctx, func(repo Repository) error {
		_, in, err := s.extract(ctx, repo, vendorID)
		if err != nil {
			return err
		}
		if err := ValidateInput(in); err != nil {
			return err
		}

		result = domain.VendorRankingScore{
			VendorID:     vendorID,
			StarsAverage: in.StarsAverage,
			OnTimeRate:   in.OnTimeRate,
			VolumeScore:  in.VolumeScore,
			Score:        ComputeScore(in),
		}

		return repo.SaveScore(ctx, result)
	})
	if err != nil {
		return domain.VendorRankingScore{}, err
	}

	return result, nil
}

// RecomputeVendor recomputes and persists one vendor's score. Errors are returned
// to the caller as-is; nothing is written when the vendor does not exist.
func (s *RankingService) RecomputeVendor(ctx context.Context, vendorID uuid.UUID) (domain.VendorRankingScore, error) {
	if err := ctx.Err(); err != nil {
		return domain.VendorRankingScore{}, fmt.Errorf("context error: %w", err)
	}

	score, err := s.recompute(ctx, vendorID)
	if err != nil {
		metrics.RankingRecomputeTotal.WithLabelValues(metrics.ModeIncremental, metrics.StatusFailure).Inc()
		return domain.VendorRankingScore{}, err
	}

	metrics.RankingRecomputeTotal.WithLabelValues(metrics.ModeIncremental, metrics.StatusSuccess).Inc()
	s.invalidateTop(ctx)

	logger.Info("vendor ranking recomputed",
		"vendor_id", vendorID,
		"score", score.Score,
	)

	return score, nil
}

// RecomputeForOrder recomputes the vendor that owns the order.
func (s *RankingService) RecomputeForOrder(ctx context.Context, orderID uuid.UUID) (domain.VendorRankingScore, error) {
	vendorID, err := s.repo.FindOrderVendorID(ctx, orderID)
	if err != nil {
		return domain.VendorRankingScore{}, err
	}
	return s.RecomputeVendor(ctx, vendorID)
}

// RecomputeForReview recomputes the vendor of the reviewed order.
func (s *RankingService) RecomputeForReview(ctx context.Context, reviewID uuid.UUID) (domain.VendorRankingScore, error) {
	vendorID, err := s.repo.FindReviewVendorID(ctx, reviewID)
	if err != nil {
		return domain.VendorRankingScore{}, err
	}
	return s.RecomputeVendor(ctx, vendorID)
}

// NotifyVendorChanged is the best-effort hook for flows that changed a vendor's
// inputs. Failures are logged and never reach the triggering action.
func (s *RankingService) NotifyVendorChanged(ctx context.Context, vendorID uuid.UUID, trigger string) {
	if _, err := s.RecomputeVendor(ctx, vendorID); err != nil {
		logger.Error("vendor ranking recompute after event failed",
			"vendor_id", vendorID,
			"trigger", trigger,
			"error", err,
		)
	}
}

// RecomputeAll recomputes every active vendor. A vendor that fails is logged and
// skipped; only failing to list vendors fails the run.
func (s *RankingService) RecomputeAll(ctx context.Context) (domain.RecomputeResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.RecomputeResult{}, fmt.Errorf("context error: %w", err)
	}

	start := time.Now()

	ids, err := s.repo.ListActiveVendorIDs(ctx)
	if err != nil {
		return domain.RecomputeResult{}, fmt.Errorf("list active vendors: %w", err)
	}

	logger.Info("starting vendor ranking recompute",
		"vendors", len(ids),
		"concurrency", s.cfg.Concurrency,
	)

	var (
		mu       sync.Mutex
		updated  int
		failures []domain.RecomputeFailure
	)

	var g errgroup.Group
	g.SetLimit(s.cfg.Concurrency)

	for _, id := range ids {
		g.Go(func() error {
			_, err := s.recompute(ctx, id)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				logger.Error("failed to recompute vendor ranking",
					"vendor_id", id,
					"error", err,
				)
				metrics.RankingRecomputeTotal.WithLabelValues(metrics.ModeBatch, metrics.StatusFailure).Inc()
				failures = append(failures, domain.RecomputeFailure{VendorID: id, Error: err.Error()})
				return nil
			}

			metrics.RankingRecomputeTotal.WithLabelValues(metrics.ModeBatch, metrics.StatusSuccess).Inc()
			updated++
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(failures, func(i, j int) bool {
		return bytes.Compare(failures[i].VendorID[:], failures[j].VendorID[:]) < 0
	})

	result := domain.RecomputeResult{
		UpdatedCount: updated,
		FailedCount:  len(failures),
		Failures:     failures,
		Timestamp:    s.now(),
	}

	s.invalidateTop(ctx)

	elapsed := time.Since(start)
	metrics.RankingBatchDuration.Observe(elapsed.Seconds())
	metrics.RankingBatchLastUpdated.Set(float64(updated))
	metrics.RankingBatchLastTimestamp.Set(float64(result.Timestamp.Unix()))

	logger.Info("vendor ranking recompute completed",
		"updated", result.UpdatedCount,
		"failed", result.FailedCount,
		"duration", elapsed,
	)

	return result, nil
}

func (s *RankingService) invalidateTop(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		logger.Warn("failed to invalidate top vendor cache", "error", err)
	}
}
