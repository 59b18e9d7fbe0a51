package main

import (
	"context"
	"fmt"
	"foodRanking/business/ranking"
	psqlRepo "foodRanking/internal/repository/postgres"
	redisRepo "foodRanking/internal/repository/redis"
	"foodRanking/pkg/config"
	"foodRanking/pkg/database"
	redisdb "foodRanking/pkg/database/redis"
	"foodRanking/pkg/logger"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

const defaultTimeout = 30 * time.Minute

type rootFlags struct {
	format  string
	timeout time.Duration
}

// engine opens the stores the ranking service needs. close releases them.
func engine() (*ranking.RankingService, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger.Init(cfg.App.Environment)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		_ = database.ClosePostgres(db)
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}

	// Recomputes from here must still invalidate the API's top-N cache.
	var topCache ranking.TopVendorCache
	if redisClient != nil {
		topCache = redisRepo.NewTopVendorCache(redisClient, cfg.Ranking.TopCacheTTL)
	}

	svc := ranking.NewRankingService(psqlRepo.NewRankingRepository(db), topCache, ranking.Config{
		Concurrency: cfg.Ranking.RecomputeConcurrency,
		TopMax:      cfg.Ranking.TopMax,
	})

	closeFn := func() {
		if err := redisdb.CloseRedisClient(redisClient); err != nil {
			logger.Error("Redis close error", "error", err)
		}
		if err := database.ClosePostgres(db); err != nil {
			logger.Error("Database close error", "error", err)
		}
	}

	return svc, closeFn, nil
}

// run validates flags, opens the engine and calls fn under the command deadline.
func run(cmd *cobra.Command, opts *rootFlags, fn func(ctx context.Context, svc *ranking.RankingService) (any, error)) error {
	if err := validFormat(opts.format); err != nil {
		return err
	}

	svc, closeFn, err := engine()
	if err != nil {
		return err
	}
	defer closeFn()

	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()

	out, err := fn(ctx, svc)
	if err != nil {
		return err
	}

	return render(cmd.OutOrStdout(), opts.format, out)
}

func parseVendorID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid vendor id %q: %w", raw, err)
	}
	return id, nil
}

func newRecomputeCmd(opts *rootFlags) *cobra.Command {
	var (
		vendor string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "recompute",
		Short: "Recompute all active vendors, or one vendor with --vendor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var vendorID uuid.UUID
			if vendor != "" {
				id, err := parseVendorID(vendor)
				if err != nil {
					return err
				}
				vendorID = id
			}

			var failed int
			err := run(cmd, opts, func(ctx context.Context, svc *ranking.RankingService) (any, error) {
				if vendorID != uuid.Nil {
					return svc.RecomputeVendor(ctx, vendorID)
				}
				result, err := svc.RecomputeAll(ctx)
				failed = result.FailedCount
				return result, err
			})
			if err != nil {
				return err
			}

			if strict && failed > 0 {
				return &exitErr{code: 2, msg: fmt.Sprintf("%d vendor(s) failed to recompute", failed)}
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&vendor, "vendor", "", "Recompute only this vendor id")
	flags.BoolVar(&strict, "strict", false, "Exit with code 2 when any vendor failed")

	return cmd
}

func newStatsCmd(opts *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show score averages, ranges and distribution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(ctx context.Context, svc *ranking.RankingService) (any, error) {
				return svc.GetRankingStats(ctx)
			})
		},
	}
}

func newTopCmd(opts *rootFlags) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "top",
		Short: "List the top ranked active vendors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(ctx context.Context, svc *ranking.RankingService) (any, error) {
				return svc.GetTopVendors(ctx, limit)
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Number of vendors (default 10, max from RANKING_TOP_MAX)")

	return cmd
}

func newPositionCmd(opts *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "position <vendor-id>",
		Short: "Show a vendor's position and percentile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vendorID, err := parseVendorID(args[0])
			if err != nil {
				return err
			}
			return run(cmd, opts, func(ctx context.Context, svc *ranking.RankingService) (any, error) {
				return svc.GetVendorRankingPosition(ctx, vendorID)
			})
		},
	}
}

func newInsightsCmd(opts *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "insights <vendor-id>",
		Short: "Show a vendor's metrics, competitors and suggestions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vendorID, err := parseVendorID(args[0])
			if err != nil {
				return err
			}
			return run(cmd, opts, func(ctx context.Context, svc *ranking.RankingService) (any, error) {
				return svc.GetVendorRankingInsights(ctx, vendorID)
			})
		},
	}
}
