// Package surface paints pages onto a display. Two surfaces exist: HTML for
// the web server and Term for the CLI. Both consume the same instruction
// sequence; neither knows how it was produced.
package surface

import (
	"io"

	"github.com/31Joojo/portfolio/internal/page"
)

// Surface paints an instruction sequence to a writer.
type Surface interface {
	Paint(w io.Writer, p page.Page) error
}
