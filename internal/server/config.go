package server

import (
	"github.com/31Joojo/portfolio/internal/config"
	"github.com/31Joojo/portfolio/internal/logging"
	"github.com/31Joojo/portfolio/internal/page"
	"github.com/31Joojo/portfolio/internal/stats"
)

// PageSource produces pages by id. In production this is *page.Registry,
// optionally wrapped by the render tracer.
type PageSource interface {
	Render(cfg *config.Config, id string) (page.Page, error)
}

// Config wires a Server.
type Config struct {
	// App is the process-wide configuration. Defaults to config.Default().
	App *config.Config

	// Pages produces the page content. Defaults to page.Default().
	Pages PageSource

	// Nav lists the pages shown in navigation, in order. Defaults to the
	// default registry's entries.
	Nav []page.Entry

	// Logger defaults to a stdout JSON logger.
	Logger logging.Logger

	// Stats records page views. Defaults to the no-op recorder; the caller
	// passes a real recorder when browser.gatherUsageStats is on.
	Stats stats.Recorder
}
