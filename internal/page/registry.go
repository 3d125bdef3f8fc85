package page

import (
	"errors"
	"fmt"

	"github.com/31Joojo/portfolio/internal/config"
)

// Entry is one registered page: its stable id, the label shown in
// navigation, and its renderer.
type Entry struct {
	ID       string
	Title    string
	Renderer Renderer
}

// Registry maps page ids to renderers and preserves registration order for
// navigation.
type Registry struct {
	order   []string
	entries map[string]Entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Register adds a page. Registering an existing id overwrites its entry but
// keeps its navigation position.
func (r *Registry) Register(id, title string, renderer Renderer) {
	if _, ok := r.entries[id]; !ok {
		r.order = append(r.order, id)
	}
	r.entries[id] = Entry{ID: id, Title: title, Renderer: renderer}
}

// Entries returns the registered pages in navigation order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.entries[id])
	}
	return out
}

// Lookup returns the entry for id.
func (r *Registry) Lookup(id string) (Entry, bool) {
	e, ok := r.entries[id]
	return e, ok
}

// Render renders the page with the given id. Unknown ids and renderer
// failures (including panics) come back as *RenderError; unknown ids
// additionally match ErrUnknownPage via errors.Is.
func (r *Registry) Render(cfg *config.Config, id string) (p Page, err error) {
	e, ok := r.entries[id]
	if !ok {
		return nil, &RenderError{PageID: id, Err: ErrUnknownPage}
	}

	defer func() {
		if rec := recover(); rec != nil {
			p = nil
			err = &RenderError{PageID: id, Err: fmt.Errorf("renderer panic: %v", rec)}
		}
	}()

	p, err = e.Renderer.Render(cfg)
	if err != nil {
		var re *RenderError
		if !errors.As(err, &re) {
			err = &RenderError{PageID: id, Err: err}
		}
		return nil, err
	}
	return p, nil
}

// Default returns the portfolio registry: home, music and fuel in
// navigation order.
func Default() *Registry {
	r := NewRegistry()
	r.Register("home", "Home page", RendererFunc(renderHome))
	r.Register("music", "Music Data analysis", RendererFunc(renderMusic))
	r.Register("fuel", "Government Data Analysis", RendererFunc(renderFuel))
	return r
}
