package ranking

import (
	"context"
	"foodRanking/domain"
	"foodRanking/pkg/logger"
	"sync"
	"time"
)

const (
	DefaultJobInterval = 24 * time.Hour
	DefaultJobTimeout  = 30 * time.Minute
)

// Recomputer is the batch entry point the daily job drives.
type Recomputer interface {
	RecomputeAll(ctx context.Context) (domain.RecomputeResult, error)
}

type JobConfig struct {
	Interval time.Duration
	// Timeout bounds a single batch run.
	Timeout time.Duration
	// RunOnStart triggers one batch as soon as the job starts.
	RunOnStart bool
}

// DailyJob periodically recomputes every active vendor's ranking.
type DailyJob struct {
	cfg        JobConfig
	recomputer Recomputer

	runMu sync.Mutex

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func NewDailyJob(recomputer Recomputer, cfg JobConfig) *DailyJob {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultJobInterval
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultJobTimeout
	}

	return &DailyJob{
		cfg:        cfg,
		recomputer: recomputer,
	}
}

// Start launches the job loop in the background. Calling it twice is a no-op.
func (j *DailyJob) Start(ctx context.Context) {
	j.mu.Lock()
	if j.running {
		j.mu.Unlock()
		return
	}
	j.running = true
	j.stopCh = make(chan struct{})
	j.doneCh = make(chan struct{})
	stopCh, doneCh := j.stopCh, j.doneCh
	j.mu.Unlock()

	logger.Info("ranking recompute job started", "interval", j.cfg.Interval)

	go j.loop(ctx, stopCh, doneCh)
}

// Stop signals the loop and waits for an in-flight run to finish.
func (j *DailyJob) Stop() {
	j.mu.Lock()
	if !j.running {
		j.mu.Unlock()
		return
	}
	j.running = false
	stopCh := j.stopCh
	doneCh := j.doneCh
	j.mu.Unlock()

	close(stopCh)
	<-doneCh
}

func (j *DailyJob) IsRunning() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.running
}

func (j *DailyJob) loop(ctx context.Context, stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	if j.cfg.RunOnStart {
		j.RunNow(ctx)
	}

	ticker := time.NewTicker(j.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("ranking recompute job stopping due to context cancellation")
			return
		case <-stopCh:
			logger.Info("ranking recompute job stopping due to stop signal")
			return
		case <-ticker.C:
			j.RunNow(ctx)
		}
	}
}

// RunNow runs one batch immediately. Runs never overlap.
func (j *DailyJob) RunNow(parent context.Context) (domain.RecomputeResult, error) {
	j.runMu.Lock()
	defer j.runMu.Unlock()

	ctx, cancel := context.WithTimeout(parent, j.cfg.Timeout)
	defer cancel()

	result, err := j.recomputer.RecomputeAll(ctx)
	if err != nil {
		logger.Error("scheduled ranking recompute failed", "error", err)
		return domain.RecomputeResult{}, err
	}

	logger.Info("scheduled ranking recompute finished",
		"updated", result.UpdatedCount,
		"failed", result.FailedCount,
	)

	return result, nil
}
