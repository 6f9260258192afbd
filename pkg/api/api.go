package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	kithttp "github.com/go-kit/kit/transport/http"

	pkgerrors "github.com/absmach/fedwatch/pkg/errors"
)

const (
	OffsetKey = "offset"
	LimitKey  = "limit"
	DefOffset = 0
	DefLimit  = 100

	ContentType = "application/json"

	MaxLimitSize = 1000
)

var (
	ErrValidation   = errors.New("failed to perform validation")
	ErrInvalidQuery = errors.New("invalid query parameter")
	ErrLimitSize    = errors.New("limit exceeds maximum allowed size")
)

// Response augments an endpoint response with its HTTP rendering.
type Response interface {
	Code() int
	Headers() map[string]string
	Empty() bool
}

func EncodeResponse(_ context.Context, w http.ResponseWriter, response interface{}) error {
	if ar, ok := response.(Response); ok {
		for k, v := range ar.Headers() {
			w.Header().Set(k, v)
		}
		w.Header().Set("Content-Type", ContentType)
		w.WriteHeader(ar.Code())

		if ar.Empty() {
			return nil
		}
	}

	return json.NewEncoder(w).Encode(response)
}

func EncodeError(_ context.Context, err error, w http.ResponseWriter) {
	w.Header().Set("Content-Type", ContentType)
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidQuery),
		errors.Is(err, ErrLimitSize), errors.Is(err, pkgerrors.ErrEmptyKey),
		errors.Is(err, pkgerrors.ErrInvalidData):
		w.WriteHeader(http.StatusBadRequest)
	case errors.Is(err, pkgerrors.ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
	case errors.Is(err, pkgerrors.ErrWatcherDone):
		w.WriteHeader(http.StatusServiceUnavailable)
	default:
		w.WriteHeader(http.StatusInternalServerError)
	}

	if err := json.NewEncoder(w).Encode(map[string]string{"error": err.Error()}); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// LoggingErrorEncoder logs the decode/endpoint error before encoding it.
func LoggingErrorEncoder(logger *slog.Logger, enc kithttp.ErrorEncoder) kithttp.ErrorEncoder {
	return func(ctx context.Context, err error, w http.ResponseWriter) {
		logger.Error("request failed", slog.Any("error", err))
		enc(ctx, err, w)
	}
}

// ReadNumQuery reads a non-negative numeric query parameter, falling back
// to def when absent.
func ReadNumQuery(r *http.Request, key string, def uint64) (uint64, error) {
	vals := r.URL.Query()[key]
	if len(vals) == 0 {
		return def, nil
	}

	v, err := strconv.ParseUint(vals[0], 10, 64)
	if err != nil {
		return 0, errors.Join(ErrInvalidQuery, err)
	}

	return v, nil
}

type healthRes struct {
	Status     string `json:"status"`
	Service    string `json:"service"`
	InstanceID string `json:"instance_id"`
}

// Health returns a handler reporting service liveness.
func Health(service, instanceID string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", ContentType)
		if err := json.NewEncoder(w).Encode(healthRes{
			Status:     "pass",
			Service:    service,
			InstanceID: instanceID,
		}); err != nil {
			w.WriteHeader(http.StatusInternalServerError)
		}
	}
}
