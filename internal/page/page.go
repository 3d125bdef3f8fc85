// Package page defines the declarative page-composition model: a page is an
// ordered sequence of typed render instructions, built fresh on every render
// from the configuration and nothing else. Display surfaces (internal/surface)
// consume the sequence; this package never touches I/O.
package page

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/31Joojo/portfolio/internal/config"
)

// Instruction is one atomic unit of display output. The set of variants is
// closed on purpose: the one instruction that bypasses escaping (UnsafeHTML)
// is its own type, so every injection-capable call site is findable by
// grepping for it.
type Instruction interface {
	// instructionType returns the JSON discriminator for the variant.
	instructionType() string
}

// Title is the page headline.
type Title struct {
	Text string
}

// Subheader is a section heading with an optional colored divider underneath.
// An empty Divider means no divider.
type Subheader struct {
	Text    string
	Divider string
}

// Markdown is a rich text block. Surfaces render it through a markdown
// engine with standard escaping; it is safe for untrusted text.
type Markdown struct {
	Body string
}

// UnsafeHTML is raw markup emitted verbatim, bypassing all escaping. Only
// trusted, static content may go through it — routing untrusted text here is
// an injection hole.
type UnsafeHTML struct {
	Markup string
}

func (Title) instructionType() string      { return "title" }
func (Subheader) instructionType() string  { return "subheader" }
func (Markdown) instructionType() string   { return "markdown" }
func (UnsafeHTML) instructionType() string { return "unsafe_html" }

// Page is an ordered sequence of instructions representing one screen.
type Page []Instruction

// envelope is the tagged JSON form of an instruction, used by the page API
// and the websocket stream.
type envelope struct {
	Type    string `json:"type"`
	Text    string `json:"text,omitempty"`
	Divider string `json:"divider,omitempty"`
	Body    string `json:"body,omitempty"`
	Markup  string `json:"markup,omitempty"`
}

// MarshalInstruction returns the tagged JSON form of a single instruction.
func MarshalInstruction(in Instruction) ([]byte, error) {
	env := envelope{Type: in.instructionType()}
	switch v := in.(type) {
	case Title:
		env.Text = v.Text
	case Subheader:
		env.Text = v.Text
		env.Divider = v.Divider
	case Markdown:
		env.Body = v.Body
	case UnsafeHTML:
		env.Markup = v.Markup
	default:
		return nil, fmt.Errorf("page: unknown instruction type %T", in)
	}
	return json.Marshal(env)
}

// MarshalJSON encodes the page as a tagged array.
func (p Page) MarshalJSON() ([]byte, error) {
	envs := make([]json.RawMessage, 0, len(p))
	for _, in := range p {
		raw, err := MarshalInstruction(in)
		if err != nil {
			return nil, err
		}
		envs = append(envs, raw)
	}
	return json.Marshal(envs)
}

// Renderer produces a Page from the configuration. Implementations must be
// pure: same config in, byte-identical page out, no I/O, no retained state.
type Renderer interface {
	Render(cfg *config.Config) (Page, error)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(cfg *config.Config) (Page, error)

func (f RendererFunc) Render(cfg *config.Config) (Page, error) { return f(cfg) }

// ErrUnknownPage reports a page id the registry does not know.
var ErrUnknownPage = errors.New("unknown page")

// RenderError reports a failure while constructing a Page. Page content is
// static, so outside of an unknown id this should not occur in nominal
// operation; when it does the hosting server shows a generic failure notice
// and other pages are unaffected.
type RenderError struct {
	PageID string
	Err    error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("rendering page %q: %v", e.PageID, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
