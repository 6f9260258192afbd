package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/absmach/fedwatch/snapshot"
	"github.com/absmach/fedwatch/watcher"
)

var _ watcher.Service = (*loggingMiddleware)(nil)

type loggingMiddleware struct {
	logger *slog.Logger
	svc    watcher.Service
}

func Logging(logger *slog.Logger, svc watcher.Service) watcher.Service {
	return &loggingMiddleware{
		logger: logger,
		svc:    svc,
	}
}

func (lm *loggingMiddleware) View(ctx context.Context) (resp snapshot.View, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.Bool("loading", resp.Loading),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Get view failed", args...)

			return
		}
		lm.logger.Info("Get view completed successfully", args...)
	}(time.Now())

	return lm.svc.View(ctx)
}

func (lm *loggingMiddleware) Refresh(ctx context.Context) (resp snapshot.View, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
		}
		if resp.Error != "" {
			args = append(args, slog.String("cycle_error", resp.Error))
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Refresh failed", args...)

			return
		}
		lm.logger.Info("Refresh completed successfully", args...)
	}(time.Now())

	return lm.svc.Refresh(ctx)
}

func (lm *loggingMiddleware) ListHistory(ctx context.Context, offset, limit uint64) (resp snapshot.HistoryPage, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.Uint64("offset", offset),
			slog.Uint64("limit", limit),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("List history failed", args...)

			return
		}
		lm.logger.Info("List history completed successfully", args...)
	}(time.Now())

	return lm.svc.ListHistory(ctx, offset, limit)
}

func (lm *loggingMiddleware) Start(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Watcher loop exited with error", args...)

			return
		}
		lm.logger.Info("Watcher loop exited", args...)
	}(time.Now())

	return lm.svc.Start(ctx)
}

func (lm *loggingMiddleware) Stop() (err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Stop watcher failed", args...)

			return
		}
		lm.logger.Info("Stop watcher completed successfully", args...)
	}(time.Now())

	return lm.svc.Stop()
}
