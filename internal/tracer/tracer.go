// Package tracer wraps the page registry with a determinism watchdog.
// Renders are supposed to be pure functions of (configuration, page id);
// when runner.installTracer is on, every render is serialized and diffed
// against the previous render of the same page, and any drift is logged
// with the textual diff. In nominal operation the diff is always empty.
package tracer

import (
	"encoding/json"
	"sync"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/31Joojo/portfolio/internal/config"
	"github.com/31Joojo/portfolio/internal/logging"
	"github.com/31Joojo/portfolio/internal/page"
)

// Source produces pages by id. *page.Registry is the production source.
type Source interface {
	Render(cfg *config.Config, id string) (page.Page, error)
}

// Tracer delegates to a Source and records the serialized form of each
// page's most recent render.
type Tracer struct {
	source Source
	logger logging.Logger
	dmp    *diffmatchpatch.DiffMatchPatch

	mu      sync.Mutex
	last    map[string]string
	drifted map[string]bool
}

// New wraps source with a tracer.
func New(source Source, logger logging.Logger) *Tracer {
	return &Tracer{
		source:  source,
		logger:  logger,
		dmp:     diffmatchpatch.New(),
		last:    make(map[string]string),
		drifted: make(map[string]bool),
	}
}

// Render implements Source. Failed renders are passed through untraced.
func (t *Tracer) Render(cfg *config.Config, id string) (page.Page, error) {
	p, err := t.source.Render(cfg, id)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(p)
	if err != nil {
		// Tracing must never break a working render.
		t.logger.Warn("tracer: serializing page", logging.Field{Key: "page", Value: id}, logging.Field{Key: "error", Value: err.Error()})
		return p, nil
	}
	current := string(raw)

	t.mu.Lock()
	previous, seen := t.last[id]
	t.last[id] = current
	t.mu.Unlock()

	if seen && previous != current {
		t.mu.Lock()
		t.drifted[id] = true
		t.mu.Unlock()

		diffs := t.dmp.DiffMain(previous, current, false)
		t.logger.Warn("tracer: non-deterministic render",
			logging.Field{Key: "page", Value: id},
			logging.Field{Key: "diff", Value: t.dmp.DiffPrettyText(diffs)})
	}

	return p, nil
}

// Drifted reports whether the given page has ever rendered differently from
// its immediately preceding render.
func (t *Tracer) Drifted(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.drifted[id]
}
