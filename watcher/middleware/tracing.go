package middleware

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/absmach/fedwatch/snapshot"
	"github.com/absmach/fedwatch/watcher"
)

var _ watcher.Service = (*tracing)(nil)

type tracing struct {
	tracer trace.Tracer
	svc    watcher.Service
}

func Tracing(tracer trace.Tracer, svc watcher.Service) watcher.Service {
	return &tracing{tracer, svc}
}

func (tm *tracing) View(ctx context.Context) (snapshot.View, error) {
	ctx, span := tm.tracer.Start(ctx, "view")
	defer span.End()

	return tm.svc.View(ctx)
}

func (tm *tracing) Refresh(ctx context.Context) (snapshot.View, error) {
	ctx, span := tm.tracer.Start(ctx, "refresh")
	defer span.End()

	return tm.svc.Refresh(ctx)
}

func (tm *tracing) ListHistory(ctx context.Context, offset, limit uint64) (snapshot.HistoryPage, error) {
	ctx, span := tm.tracer.Start(ctx, "list-history", trace.WithAttributes(
		attribute.Int64("offset", int64(offset)),
		attribute.Int64("limit", int64(limit)),
	))
	defer span.End()

	return tm.svc.ListHistory(ctx, offset, limit)
}

func (tm *tracing) Start(ctx context.Context) error {
	ctx, span := tm.tracer.Start(ctx, "start")
	defer span.End()

	return tm.svc.Start(ctx)
}

func (tm *tracing) Stop() error {
	return tm.svc.Stop()
}
