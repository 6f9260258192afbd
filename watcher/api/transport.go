package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	kithttp "github.com/go-kit/kit/transport/http"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/absmach/fedwatch/pkg/api"
	"github.com/absmach/fedwatch/render"
	"github.com/absmach/fedwatch/watcher"
)

const svcName = "watcher"

func MakeHandler(svc watcher.Service, logger *slog.Logger, instanceID string) http.Handler {
	mux := chi.NewRouter()

	opts := []kithttp.ServerOption{
		kithttp.ServerErrorEncoder(api.LoggingErrorEncoder(logger, api.EncodeError)),
	}

	mux.Get("/view", otelhttp.NewHandler(kithttp.NewServer(
		viewEndpoint(svc),
		decodeViewReq,
		api.EncodeResponse,
		opts...,
	), "view").ServeHTTP)

	mux.Post("/refresh", otelhttp.NewHandler(kithttp.NewServer(
		refreshEndpoint(svc),
		decodeViewReq,
		api.EncodeResponse,
		opts...,
	), "refresh").ServeHTTP)

	mux.Get("/history", otelhttp.NewHandler(kithttp.NewServer(
		listHistoryEndpoint(svc),
		decodeListHistoryReq,
		api.EncodeResponse,
		opts...,
	), "list-history").ServeHTTP)

	mux.Get("/dashboard", dashboardHandler(svc, logger))

	mux.Get("/health", api.Health(svcName, instanceID))
	mux.Handle("/metrics", promhttp.Handler())

	return mux
}

func decodeViewReq(_ context.Context, _ *http.Request) (any, error) {
	return viewReq{}, nil
}

func decodeListHistoryReq(_ context.Context, r *http.Request) (any, error) {
	o, err := api.ReadNumQuery(r, api.OffsetKey, api.DefOffset)
	if err != nil {
		return nil, errors.Join(api.ErrValidation, err)
	}

	l, err := api.ReadNumQuery(r, api.LimitKey, api.DefLimit)
	if err != nil {
		return nil, errors.Join(api.ErrValidation, err)
	}

	return listHistoryReq{
		offset: o,
		limit:  l,
	}, nil
}

// dashboardHandler renders the go-echarts HTML dashboard. It stays a plain
// handler: the response is a whole HTML page, not an endpoint response.
func dashboardHandler(svc watcher.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := svc.View(r.Context())
		if err != nil {
			api.EncodeError(r.Context(), err, w)

			return
		}

		history, err := svc.ListHistory(r.Context(), api.DefOffset, api.DefLimit)
		if err != nil {
			api.EncodeError(r.Context(), err, w)

			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := render.Dashboard(w, view, history); err != nil {
			logger.Error("failed to render dashboard", slog.Any("error", err))
		}
	}
}
