package fedwatchd

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/errgroup"

	"github.com/absmach/fedwatch/coordinator"
	"github.com/absmach/fedwatch/pkg/mqtt"
	"github.com/absmach/fedwatch/pkg/prometheus"
	"github.com/absmach/fedwatch/pkg/server"
	httpserver "github.com/absmach/fedwatch/pkg/server/http"
	"github.com/absmach/fedwatch/pkg/storage"
	"github.com/absmach/fedwatch/pkg/storage/sqlite"
	"github.com/absmach/fedwatch/pkg/tracing"
	"github.com/absmach/fedwatch/watcher"
	"github.com/absmach/fedwatch/watcher/api"
	"github.com/absmach/fedwatch/watcher/middleware"
)

const svcName = "watcher"

// roundsTopic carries the coordinator's round-completion notifications.
const roundsTopic = "fl/rounds/next"

type Config struct {
	LogLevel        string
	InstanceID      string
	CoordinatorURL  string
	PollInterval    time.Duration
	RequestTimeout  time.Duration
	TLSVerification bool
	HistoryCap      int
	DBPath          string
	MQTTAddress     string
	MQTTQoS         uint8
	MQTTTimeout     time.Duration
	Server          server.Config
	OTELURL         url.URL
	TraceRatio      float64
}

func StartWatcher(ctx context.Context, cancel context.CancelFunc, cfg Config) error {
	g, ctx := errgroup.WithContext(ctx)

	if cfg.InstanceID == "" {
		cfg.InstanceID = uuid.NewString()
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return fmt.Errorf("failed to parse log level: %s", err.Error())
	}
	logHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	logger := slog.New(logHandler)
	slog.SetDefault(logger)

	var tp trace.TracerProvider
	switch {
	case cfg.OTELURL == (url.URL{}):
		tp = noop.NewTracerProvider()
	default:
		sdktp, err := tracing.NewProvider(ctx, svcName, cfg.OTELURL, cfg.InstanceID, cfg.TraceRatio)
		if err != nil {
			return fmt.Errorf("failed to initialize opentelemetry: %s", err.Error())
		}
		defer func() {
			if err := sdktp.Shutdown(ctx); err != nil {
				slog.Error("error shutting down tracer provider", slog.Any("error", err))
			}
		}()
		tp = sdktp
	}
	tracer := tp.Tracer(svcName)

	var history storage.HistoryRepository
	switch cfg.DBPath {
	case "":
		history = storage.NewInMemoryHistory(cfg.HistoryCap)
	default:
		var err error
		history, err = sqlite.NewHistory(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("failed to initialize history database: %s", err.Error())
		}
	}

	c := coordinator.NewCoordinator(coordinator.Config{
		URL:             cfg.CoordinatorURL,
		Timeout:         cfg.RequestTimeout,
		TLSVerification: cfg.TLSVerification,
	})

	svc := watcher.NewService(c, history, cfg.PollInterval, logger)
	svc = middleware.Logging(logger, svc)
	svc = middleware.Tracing(tracer, svc)
	counter, latency := prometheus.MakeMetrics(svcName, "api")
	svc = middleware.Metrics(counter, latency, svc)

	if cfg.MQTTAddress != "" {
		pubsub, err := mqtt.NewPubSub(cfg.MQTTAddress, cfg.MQTTQoS, cfg.InstanceID, "", "", cfg.MQTTTimeout, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize mqtt pubsub: %s", err.Error())
		}
		defer func() {
			if err := pubsub.Disconnect(context.Background()); err != nil {
				logger.Warn("failed to disconnect mqtt pubsub", slog.Any("error", err))
			}
		}()

		handler := func(topic string, _ map[string]any) error {
			logger.Info("round notification received, refreshing", slog.String("topic", topic))
			if _, err := svc.Refresh(ctx); err != nil {
				return err
			}

			return nil
		}
		if err := pubsub.Subscribe(ctx, roundsTopic, handler); err != nil {
			return fmt.Errorf("failed to subscribe to round notifications: %s", err.Error())
		}
	}

	hs := httpserver.NewServer(ctx, cancel, svcName, cfg.Server, api.MakeHandler(svc, logger, cfg.InstanceID), logger)

	g.Go(func() error {
		return svc.Start(ctx)
	})

	g.Go(func() error {
		return hs.Start()
	})

	g.Go(func() error {
		return server.StopSignalHandler(ctx, cancel, logger, svcName, hs)
	})

	if err := g.Wait(); err != nil {
		logger.Error(fmt.Sprintf("%s service exited with error: %s", svcName, err))
	}

	return nil
}
