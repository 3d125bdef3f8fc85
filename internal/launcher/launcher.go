// Package launcher runs the post-startup action once the HTTP listener is
// up. In headless operation that is a readiness probe against the server; in
// windowed operation it opens a browser on the dashboard. Backends sit
// behind a small named factory so either can be swapped out.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/31Joojo/portfolio/internal/logging"
)

// Launcher is one post-startup backend.
type Launcher interface {
	// Launch points the backend at the dashboard URL. It returns once the
	// dashboard is confirmed reachable (probe) or loaded (window).
	Launch(ctx context.Context, url string) error

	Close() error
}

// Backend names.
const (
	BackendProbe  = "probe"
	BackendWindow = "window"
)

// Constructor builds a Launcher given a logger.
type Constructor func(logger logging.Logger) (Launcher, error)

var (
	mu       sync.RWMutex
	registry = map[string]Constructor{}
)

// Register registers a named backend constructor. Name is lower-cased
// internally; registering an existing name overwrites the previous
// constructor.
func Register(name string, ctor Constructor) {
	if name == "" || ctor == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	registry[strings.ToLower(name)] = ctor
}

// New constructs the named backend. It returns an error if the backend has
// not been registered.
func New(backend string, logger logging.Logger) (Launcher, error) {
	name := strings.ToLower(strings.TrimSpace(backend))
	if name == "" {
		name = BackendProbe
	}

	mu.RLock()
	ctor, ok := registry[name]
	mu.RUnlock()
	if !ok || ctor == nil {
		return nil, fmt.Errorf("launcher backend %q not registered: available backends=%v", backend, List())
	}

	l, err := ctor(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to construct launcher backend %q: %w", backend, err)
	}
	if l == nil {
		return nil, errors.New("launcher constructor returned nil")
	}
	return l, nil
}

// List returns the registered backend names.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	return out
}

// ForHeadless maps the server.headless toggle to a backend name.
func ForHeadless(headless bool) string {
	if headless {
		return BackendProbe
	}
	return BackendWindow
}

func init() {
	Register(BackendProbe, func(logger logging.Logger) (Launcher, error) {
		return NewProbe(logger), nil
	})
	Register(BackendWindow, func(logger logging.Logger) (Launcher, error) {
		return NewWindow(logger), nil
	})
}
