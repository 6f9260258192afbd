package coordinator

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/absmach/fedwatch/snapshot"
)

const (
	metricsEndpoint = "/metrics"
	statusEndpoint  = "/status"
)

// Coordinator is the read-only surface of the FL coordinator this service
// watches. Both calls are opaque network reads; the watcher decides how
// their failures combine.
type Coordinator interface {
	// GetMetrics fetches the latest model evaluation and privacy metrics.
	GetMetrics(ctx context.Context) (snapshot.Metrics, error)

	// GetStatus fetches the current training status.
	GetStatus(ctx context.Context) (snapshot.Status, error)
}

type Config struct {
	URL             string
	Timeout         time.Duration
	TLSVerification bool
}

type coordinator struct {
	url    string
	client *http.Client
}

func NewCoordinator(cfg Config) Coordinator {
	return &coordinator{
		url: cfg.URL,
		client: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: !cfg.TLSVerification,
				},
			},
		},
	}
}

func (c *coordinator) GetMetrics(ctx context.Context) (snapshot.Metrics, error) {
	var m snapshot.Metrics
	if err := c.get(ctx, c.url+metricsEndpoint, &m); err != nil {
		return snapshot.Metrics{}, fmt.Errorf("failed to fetch metrics: %w", err)
	}

	return m, nil
}

func (c *coordinator) GetStatus(ctx context.Context) (snapshot.Status, error) {
	var s snapshot.Status
	if err := c.get(ctx, c.url+statusEndpoint, &s); err != nil {
		return snapshot.Status{}, fmt.Errorf("failed to fetch status: %w", err)
	}

	return s, nil
}

func (c *coordinator) get(ctx context.Context, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("coordinator returned error: %d", resp.StatusCode)
	}

	return json.Unmarshal(body, out)
}
