package metrics

import "github.com/prometheus/client_golang/prometheus"

const (
	ModeBatch       = "batch"
	ModeIncremental = "incremental"

	StatusSuccess = "success"
	StatusFailure = "failure"
)

var (
	// Per-vendor recompute outcomes, by mode (batch / incremental) and status
	RankingRecomputeTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "vendor_ranking_recompute_total",
		Help: "Vendor ranking recomputations by mode and status",
	}, []string{"mode", "status"})

	// Duration of a whole batch run
	RankingBatchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "vendor_ranking_batch_duration_seconds",
		Help:    "Duration of the bulk vendor ranking recompute",
		Buckets: []float64{0.5, 1, 5, 15, 30, 60, 180, 600},
	})

	RankingBatchLastUpdated = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "vendor_ranking_batch_last_updated_vendors",
		Help: "Vendors updated by the last bulk recompute",
	})

	RankingBatchLastTimestamp = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "vendor_ranking_batch_last_timestamp_seconds",
		Help: "Unix time of the last completed bulk recompute",
	})

	// Latency of read queries (top, position, insights, stats)
	RankingQueryLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "vendor_ranking_query_latency_seconds",
		Help:    "Latency of vendor ranking queries",
		Buckets: prometheus.DefBuckets,
	}, []string{"query"})

	RankingTopCacheHits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "vendor_ranking_top_cache_total",
		Help: "Top vendor cache lookups by result",
	}, []string{"result"})
)

func Init() {
	prometheus.MustRegister(
		RankingRecomputeTotal,
		RankingBatchDuration,
		RankingBatchLastUpdated,
		RankingBatchLastTimestamp,
		RankingQueryLatency,
		RankingTopCacheHits,
	)
}
