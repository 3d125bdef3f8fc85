package surface

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/31Joojo/portfolio/internal/config"
	"github.com/31Joojo/portfolio/internal/page"
)

const termWidth = 80

// Term renders pages to a terminal. Markdown goes through glamour, raw
// markup blocks are reduced to their visible text with goquery; the theme
// palette drives the lipgloss styles.
type Term struct {
	cfg      *config.Config
	markdown *glamour.TermRenderer

	titleStyle     lipgloss.Style
	subheaderStyle lipgloss.Style
	rawStyle       lipgloss.Style
}

// NewTerm creates a terminal surface for the given configuration.
func NewTerm(cfg *config.Config) (*Term, error) {
	md, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(termWidth),
	)
	if err != nil {
		return nil, fmt.Errorf("creating markdown renderer: %w", err)
	}

	return &Term{
		cfg:      cfg,
		markdown: md,
		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(cfg.Theme.PrimaryColor)),
		subheaderStyle: lipgloss.NewStyle().
			Bold(true),
		rawStyle: lipgloss.NewStyle().
			Faint(true),
	}, nil
}

// Paint writes the instruction stream to w. Implements Surface.
func (t *Term) Paint(w io.Writer, p page.Page) error {
	for _, in := range p {
		switch v := in.(type) {
		case page.Title:
			fmt.Fprintln(w, t.titleStyle.Render(v.Text))
			fmt.Fprintln(w)
		case page.Subheader:
			fmt.Fprintln(w, t.subheaderStyle.Render(v.Text))
			if v.Divider != "" {
				line := strings.Repeat("─", termWidth/2)
				fmt.Fprintln(w, lipgloss.NewStyle().
					Foreground(dividerColor(v.Divider)).
					Render(line))
			}
		case page.Markdown:
			out, err := t.markdown.Render(v.Body)
			if err != nil {
				return fmt.Errorf("rendering markdown block: %w", err)
			}
			fmt.Fprint(w, out)
		case page.UnsafeHTML:
			text, err := extractText(v.Markup)
			if err != nil {
				return fmt.Errorf("extracting text from markup block: %w", err)
			}
			if text != "" {
				fmt.Fprintln(w, t.rawStyle.Render(text))
			}
		default:
			return fmt.Errorf("surface: unknown instruction type %T", in)
		}
	}
	return nil
}

// extractText strips a raw markup block down to its visible text. Style and
// script content is display metadata, not text, so it goes first.
func extractText(markup string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return "", err
	}
	doc.Find("style, script").Remove()

	var parts []string
	for _, f := range strings.Fields(doc.Text()) {
		parts = append(parts, f)
	}
	return strings.Join(parts, " "), nil
}

// dividerColor maps the named divider colors used by pages onto ANSI colors;
// hex values pass through.
func dividerColor(name string) lipgloss.Color {
	switch name {
	case "green":
		return lipgloss.Color("2")
	case "gray", "grey":
		return lipgloss.Color("8")
	case "blue":
		return lipgloss.Color("4")
	case "red":
		return lipgloss.Color("1")
	default:
		return lipgloss.Color(name)
	}
}
