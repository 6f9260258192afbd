package middleware

import (
	"context"
	"time"

	"github.com/go-kit/kit/metrics"

	"github.com/absmach/fedwatch/snapshot"
	"github.com/absmach/fedwatch/watcher"
)

var _ watcher.Service = (*metricsMiddleware)(nil)

type metricsMiddleware struct {
	counter metrics.Counter
	latency metrics.Histogram
	svc     watcher.Service
}

func Metrics(counter metrics.Counter, latency metrics.Histogram, svc watcher.Service) watcher.Service {
	return &metricsMiddleware{
		counter: counter,
		latency: latency,
		svc:     svc,
	}
}

func (mm *metricsMiddleware) View(ctx context.Context) (snapshot.View, error) {
	defer func(begin time.Time) {
		mm.counter.With("method", "view").Add(1)
		mm.latency.With("method", "view").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mm.svc.View(ctx)
}

func (mm *metricsMiddleware) Refresh(ctx context.Context) (snapshot.View, error) {
	defer func(begin time.Time) {
		mm.counter.With("method", "refresh").Add(1)
		mm.latency.With("method", "refresh").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mm.svc.Refresh(ctx)
}

func (mm *metricsMiddleware) ListHistory(ctx context.Context, offset, limit uint64) (snapshot.HistoryPage, error) {
	defer func(begin time.Time) {
		mm.counter.With("method", "list-history").Add(1)
		mm.latency.With("method", "list-history").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mm.svc.ListHistory(ctx, offset, limit)
}

func (mm *metricsMiddleware) Start(ctx context.Context) error {
	defer func(begin time.Time) {
		mm.counter.With("method", "start").Add(1)
		mm.latency.With("method", "start").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mm.svc.Start(ctx)
}

func (mm *metricsMiddleware) Stop() error {
	defer func(begin time.Time) {
		mm.counter.With("method", "stop").Add(1)
		mm.latency.With("method", "stop").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mm.svc.Stop()
}
