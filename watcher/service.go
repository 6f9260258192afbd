package watcher

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/absmach/fedwatch/coordinator"
	pkgerrors "github.com/absmach/fedwatch/pkg/errors"
	"github.com/absmach/fedwatch/pkg/storage"
	"github.com/absmach/fedwatch/snapshot"
)

const (
	DefPollInterval = 5 * time.Second

	defOffset = 0
	defLimit  = 100
)

type service struct {
	coordinator coordinator.Coordinator
	history     storage.HistoryRepository
	interval    time.Duration
	logger      *slog.Logger

	mu       sync.RWMutex
	view     snapshot.View
	started  bool
	stopped  bool
	stopChan chan struct{}
}

func NewService(c coordinator.Coordinator, history storage.HistoryRepository, interval time.Duration, logger *slog.Logger) Service {
	if interval <= 0 {
		interval = DefPollInterval
	}

	return &service{
		coordinator: c,
		history:     history,
		interval:    interval,
		logger:      logger,
		view:        snapshot.View{Loading: true},
		stopChan:    make(chan struct{}),
	}
}

func (svc *service) View(_ context.Context) (snapshot.View, error) {
	svc.mu.RLock()
	defer svc.mu.RUnlock()

	return svc.view, nil
}

func (svc *service) Refresh(ctx context.Context) (snapshot.View, error) {
	svc.mu.RLock()
	stopped := svc.stopped
	svc.mu.RUnlock()
	if stopped {
		return snapshot.View{}, pkgerrors.ErrWatcherDone
	}

	return svc.runCycle(ctx), nil
}

func (svc *service) ListHistory(ctx context.Context, offset, limit uint64) (snapshot.HistoryPage, error) {
	if limit == 0 {
		limit = defLimit
	}

	return svc.history.List(ctx, offset, limit)
}

func (svc *service) Start(ctx context.Context) error {
	svc.mu.Lock()
	if svc.started {
		svc.mu.Unlock()

		return pkgerrors.ErrWatcherActive
	}
	svc.started = true
	svc.mu.Unlock()

	svc.runCycle(ctx)

	ticker := time.NewTicker(svc.interval)
	defer ticker.Stop()

	svc.logger.Info("watcher started", slog.Duration("poll_interval", svc.interval))

	for {
		select {
		case <-ctx.Done():
			svc.logger.Info("watcher stopping")
			svc.markStopped()

			return ctx.Err()
		case <-svc.stopChan:
			svc.logger.Info("watcher stopped")

			return nil
		case <-ticker.C:
			// Deliberately not serialized: the tick schedule is fixed
			// wall-clock, so a slow cycle may overlap the next one.
			go svc.runCycle(ctx)
		}
	}
}

func (svc *service) Stop() error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	if svc.stopped {
		return pkgerrors.ErrWatcherDone
	}
	svc.stopped = true
	close(svc.stopChan)

	return nil
}

func (svc *service) markStopped() {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	svc.stopped = true
}

// runCycle issues the two coordinator reads concurrently and commits their
// reconciled outcome. A metrics failure alone leaves the cycle successful
// with absent metrics; a status failure fails the cycle and leaves the
// previously held snapshots untouched.
func (svc *service) runCycle(ctx context.Context) snapshot.View {
	var (
		wg      sync.WaitGroup
		metrics snapshot.Metrics
		status  snapshot.Status

		metricsErr, statusErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		metrics, metricsErr = svc.coordinator.GetMetrics(ctx)
	}()
	go func() {
		defer wg.Done()
		status, statusErr = svc.coordinator.GetStatus(ctx)
	}()
	wg.Wait()

	now := time.Now()

	svc.mu.Lock()
	if svc.stopped {
		// The watcher was torn down while this cycle was in flight.
		view := svc.view
		svc.mu.Unlock()

		return view
	}

	svc.view.Loading = false
	svc.view.UpdatedAt = now
	switch {
	case statusErr != nil:
		svc.view.Error = statusErr.Error()
	default:
		svc.view.Error = ""
		svc.view.Status = &status
		svc.view.Metrics = nil
		if metricsErr == nil {
			svc.view.Metrics = &metrics
		}
	}
	view := svc.view
	svc.mu.Unlock()

	if metricsErr != nil && statusErr == nil {
		svc.logger.Debug("metrics fetch failed, continuing with status only", slog.Any("error", metricsErr))
	}

	record := snapshot.Record{
		ID:        uuid.NewString(),
		Metrics:   view.Metrics,
		Status:    view.Status,
		Error:     view.Error,
		CreatedAt: now,
	}
	if statusErr != nil {
		// A failed cycle carries only its error; the snapshots shown to
		// the user belong to an earlier cycle.
		record.Metrics = nil
		record.Status = nil
	}
	if err := svc.history.Append(ctx, record); err != nil {
		svc.logger.Warn("failed to append history record", slog.Any("error", err))
	}

	return view
}
