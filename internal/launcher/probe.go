package launcher

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/31Joojo/portfolio/internal/logging"
)

const (
	probeInterval = 200 * time.Millisecond
	probeTimeout  = 10 * time.Second
)

// Probe is the headless backend: it polls the dashboard root until it
// answers, then logs readiness and gets out of the way.
type Probe struct {
	client *http.Client
	logger logging.Logger
}

// NewProbe creates a readiness probe.
func NewProbe(logger logging.Logger) *Probe {
	return &Probe{
		client: &http.Client{Timeout: probeInterval},
		logger: logger,
	}
}

// Launch implements Launcher.
func (p *Probe) Launch(ctx context.Context, url string) error {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	ticker := time.NewTicker(probeInterval)
	defer ticker.Stop()

	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("building probe request: %w", err)
		}

		resp, err := p.client.Do(req)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode < 500 {
				p.logger.Info("dashboard ready",
					logging.Field{Key: "url", Value: url},
					logging.Field{Key: "status", Value: resp.StatusCode})
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("dashboard not reachable at %s: %w", url, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (p *Probe) Close() error {
	p.client.CloseIdleConnections()
	return nil
}
