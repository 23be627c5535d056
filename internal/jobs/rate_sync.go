// Package jobs holds the background tasks of the service.
package jobs

import (
	"context"
	"log/slog"
	"time"

	portssvc "github.com/SscSPs/dkk_exchange_service/internal/core/ports/services"
	"github.com/SscSPs/dkk_exchange_service/internal/platform/logctx"
	"github.com/SscSPs/dkk_exchange_service/internal/platform/metrics"
	"golang.org/x/sync/singleflight"
)

const (
	triggerScheduled = "scheduled"
	triggerManual    = "manual"
	triggerStartup   = "startup"

	syncKey = "rate-sync"
)

// RateSyncJob reconciles rates on a fixed interval and on demand.
// Scheduled and manual runs share one singleflight group, so at most one
// reconciliation is in flight and concurrent callers receive its result.
type RateSyncJob struct {
	reconciler portssvc.RateReconcilerSvc
	interval   time.Duration
	runOnStart bool
	logger     *slog.Logger
	metrics    *metrics.ExchangeMetrics
	group      singleflight.Group
}

// NewRateSyncJob creates the job. It does nothing until Start is called.
func NewRateSyncJob(reconciler portssvc.RateReconcilerSvc, interval time.Duration, runOnStart bool, logger *slog.Logger, m *metrics.ExchangeMetrics) *RateSyncJob {
	if interval <= 0 {
		interval = time.Hour
	}
	return &RateSyncJob{
		reconciler: reconciler,
		interval:   interval,
		runOnStart: runOnStart,
		logger:     logger,
		metrics:    m,
	}
}

var _ portssvc.RateSyncTrigger = (*RateSyncJob)(nil)

// Start launches the ticker loop in a goroutine; it stops when ctx is done.
func (j *RateSyncJob) Start(ctx context.Context) {
	go j.loop(ctx)
}

func (j *RateSyncJob) loop(ctx context.Context) {
	j.logger.Info("Rate sync job started", slog.Duration("interval", j.interval))
	if j.runOnStart {
		j.runLogged(ctx, triggerStartup)
	}

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.logger.Info("Rate sync job stopped")
			return
		case <-ticker.C:
			j.runLogged(ctx, triggerScheduled)
		}
	}
}

// runLogged swallows the error; the next tick is the retry.
func (j *RateSyncJob) runLogged(ctx context.Context, trigger string) {
	ctx = logctx.WithLogger(ctx, j.logger.With(slog.String("trigger", trigger)))
	count, err := j.run(ctx, trigger)
	if err != nil {
		j.logger.Error("Rate sync failed", slog.String("trigger", trigger), slog.String("error", err.Error()))
		return
	}
	j.logger.Info("Rate sync completed", slog.String("trigger", trigger), slog.Int("updated", count))
}

// TriggerNow runs reconciliation immediately and returns its result and error.
// If a run is already in progress the caller waits for it and shares its outcome.
func (j *RateSyncJob) TriggerNow(ctx context.Context) (int, error) {
	return j.run(ctx, triggerManual)
}

func (j *RateSyncJob) run(ctx context.Context, trigger string) (int, error) {
	v, err, shared := j.group.Do(syncKey, func() (interface{}, error) {
		start := time.Now()
		count, err := j.reconciler.UpdateRatesFromSource(ctx)
		j.observe(trigger, start, err)
		return count, err
	})
	if shared {
		j.logger.Debug("Joined in-flight rate sync", slog.String("trigger", trigger))
	}
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

func (j *RateSyncJob) observe(trigger string, start time.Time, err error) {
	if j.metrics == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "failure"
	} else {
		j.metrics.RateSyncLastSuccess.SetToCurrentTime()
	}
	j.metrics.RateSyncRunsTotal.WithLabelValues(trigger, result).Inc()
	j.metrics.RateSyncDuration.Observe(time.Since(start).Seconds())
}
