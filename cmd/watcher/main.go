package main

import (
	"context"
	"log"
	"net/url"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/absmach/fedwatch/fedwatchd"
	"github.com/absmach/fedwatch/pkg/server"
	"github.com/absmach/fedwatch/pkg/storage"
)

const (
	svcName       = "watcher"
	defHTTPPort   = "7070"
	envPrefixHTTP = "WATCHER_HTTP_"
	pathEnv       = ".env"
)

type envConfig struct {
	LogLevel        string        `env:"WATCHER_LOG_LEVEL"        envDefault:"info"`
	InstanceID      string        `env:"WATCHER_INSTANCE_ID"`
	CoordinatorURL  string        `env:"WATCHER_COORDINATOR_URL"  envDefault:"http://localhost:8000"`
	PollInterval    time.Duration `env:"WATCHER_POLL_INTERVAL"    envDefault:"5s"`
	RequestTimeout  time.Duration `env:"WATCHER_REQUEST_TIMEOUT"  envDefault:"10s"`
	TLSVerification bool          `env:"WATCHER_TLS_VERIFICATION" envDefault:"false"`
	HistoryCap      int           `env:"WATCHER_HISTORY_CAP"      envDefault:"1000"`
	DBPath          string        `env:"WATCHER_DB_PATH"`
	MQTTAddress     string        `env:"WATCHER_MQTT_ADDRESS"`
	MQTTQoS         uint8         `env:"WATCHER_MQTT_QOS"         envDefault:"2"`
	MQTTTimeout     time.Duration `env:"WATCHER_MQTT_TIMEOUT"     envDefault:"30s"`
	OTELURL         url.URL       `env:"WATCHER_OTEL_URL"`
	TraceRatio      float64       `env:"WATCHER_TRACE_RATIO"      envDefault:"0"`
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if _, err := os.Stat(pathEnv); err == nil {
		_ = godotenv.Load(pathEnv)
	}

	cfg := envConfig{}
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("failed to load configuration : %s", err.Error())
	}

	if cfg.InstanceID == "" {
		cfg.InstanceID = uuid.NewString()
	}

	if cfg.HistoryCap <= 0 {
		cfg.HistoryCap = storage.DefHistoryCap
	}

	httpServerConfig := server.Config{Port: defHTTPPort}
	if err := env.ParseWithOptions(&httpServerConfig, env.Options{Prefix: envPrefixHTTP}); err != nil {
		log.Fatalf("failed to load %s HTTP server configuration : %s", svcName, err.Error())
	}

	if err := fedwatchd.StartWatcher(ctx, cancel, fedwatchd.Config{
		LogLevel:        cfg.LogLevel,
		InstanceID:      cfg.InstanceID,
		CoordinatorURL:  cfg.CoordinatorURL,
		PollInterval:    cfg.PollInterval,
		RequestTimeout:  cfg.RequestTimeout,
		TLSVerification: cfg.TLSVerification,
		HistoryCap:      cfg.HistoryCap,
		DBPath:          cfg.DBPath,
		MQTTAddress:     cfg.MQTTAddress,
		MQTTQoS:         cfg.MQTTQoS,
		MQTTTimeout:     cfg.MQTTTimeout,
		Server:          httpServerConfig,
		OTELURL:         cfg.OTELURL,
		TraceRatio:      cfg.TraceRatio,
	}); err != nil {
		log.Fatalf("failed to start %s service : %s", svcName, err.Error())
	}
}
