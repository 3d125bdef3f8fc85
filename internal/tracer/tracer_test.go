package tracer_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/31Joojo/portfolio/internal/config"
	"github.com/31Joojo/portfolio/internal/page"
	"github.com/31Joojo/portfolio/internal/testutil"
	"github.com/31Joojo/portfolio/internal/tracer"
)

func defaultConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Parse("")
	if err != nil {
		t.Fatalf("default config: %v", err)
	}
	return cfg
}

// countingSource renders a page whose content depends on the call count —
// deliberately impure, to exercise drift detection.
type countingSource struct {
	calls int
}

func (s *countingSource) Render(_ *config.Config, id string) (page.Page, error) {
	s.calls++
	return page.Page{page.Title{Text: fmt.Sprintf("render %d", s.calls)}}, nil
}

func TestTracer_DeterministicSourceNoDrift(t *testing.T) {
	t.Parallel()

	logger := &testutil.DummyLogger{}
	tr := tracer.New(page.Default(), logger)
	cfg := defaultConfig(t)

	for i := 0; i < 3; i++ {
		if _, err := tr.Render(cfg, "home"); err != nil {
			t.Fatalf("Render: %v", err)
		}
	}

	if tr.Drifted("home") {
		t.Error("deterministic page reported as drifted")
	}
	if logger.WarnCount() != 0 {
		t.Errorf("unexpected warnings: %v", logger.Warns)
	}
}

func TestTracer_DetectsDrift(t *testing.T) {
	t.Parallel()

	logger := &testutil.DummyLogger{}
	tr := tracer.New(&countingSource{}, logger)
	cfg := defaultConfig(t)

	if _, err := tr.Render(cfg, "home"); err != nil {
		t.Fatalf("first render: %v", err)
	}
	if tr.Drifted("home") {
		t.Error("single render cannot drift")
	}

	if _, err := tr.Render(cfg, "home"); err != nil {
		t.Fatalf("second render: %v", err)
	}
	if !tr.Drifted("home") {
		t.Error("expected drift to be detected")
	}
	if logger.WarnCount() != 1 {
		t.Errorf("expected 1 drift warning, got %d", logger.WarnCount())
	}
}

func TestTracer_PassesThroughErrors(t *testing.T) {
	t.Parallel()

	tr := tracer.New(page.Default(), &testutil.DummyLogger{})

	_, err := tr.Render(defaultConfig(t), "missing")
	if !errors.Is(err, page.ErrUnknownPage) {
		t.Errorf("expected ErrUnknownPage through the tracer, got %v", err)
	}
}

func TestTracer_TracksPagesIndependently(t *testing.T) {
	t.Parallel()

	logger := &testutil.DummyLogger{}
	impure := &countingSource{}
	tr := tracer.New(impure, logger)
	cfg := defaultConfig(t)

	// Drift one page; the other page ids stay clean.
	tr.Render(cfg, "a")
	tr.Render(cfg, "a")

	if !tr.Drifted("a") {
		t.Error("expected drift on a")
	}
	if tr.Drifted("b") {
		t.Error("page b never rendered, cannot drift")
	}
}
