package surface_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/31Joojo/portfolio/internal/page"
	"github.com/31Joojo/portfolio/internal/surface"
)

func TestTerm_PaintHomePage(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig(t)
	reg := page.Default()
	p, err := reg.Render(cfg, "home")
	if err != nil {
		t.Fatalf("Render(home): %v", err)
	}

	term, err := surface.NewTerm(cfg)
	if err != nil {
		t.Fatalf("NewTerm: %v", err)
	}

	var buf bytes.Buffer
	if err := term.Paint(&buf, p); err != nil {
		t.Fatalf("Paint: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Welcome to my portfolio !") {
		t.Error("title missing from terminal output")
	}
	if !strings.Contains(out, "Joris LARMAILLARD-NOIREN") {
		t.Error("about text missing from terminal output")
	}
	// Raw markup is reduced to text: no tags, no CSS.
	if strings.Contains(out, "<p>") || strings.Contains(out, "<button") {
		t.Errorf("HTML tags leaked into terminal output:\n%s", out)
	}
	if strings.Contains(out, "background-color") {
		t.Errorf("style sheet text leaked into terminal output:\n%s", out)
	}
}

func TestTerm_PaintUnsafeTextOnly(t *testing.T) {
	t.Parallel()

	term, err := surface.NewTerm(defaultConfig(t))
	if err != nil {
		t.Fatalf("NewTerm: %v", err)
	}

	var buf bytes.Buffer
	err = term.Paint(&buf, page.Page{
		page.UnsafeHTML{Markup: `<style>.x{color:red}</style><p>visible   text</p>`},
	})
	if err != nil {
		t.Fatalf("Paint: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "visible text") {
		t.Errorf("expected collapsed visible text, got %q", out)
	}
	if strings.Contains(out, "color:red") {
		t.Errorf("style content leaked: %q", out)
	}
}

func TestTerm_SubheaderDivider(t *testing.T) {
	t.Parallel()

	term, err := surface.NewTerm(defaultConfig(t))
	if err != nil {
		t.Fatalf("NewTerm: %v", err)
	}

	var buf bytes.Buffer
	err = term.Paint(&buf, page.Page{page.Subheader{Text: "Introduction", Divider: "green"}})
	if err != nil {
		t.Fatalf("Paint: %v", err)
	}
	if !strings.Contains(buf.String(), "Introduction") {
		t.Error("subheader text missing")
	}
	if !strings.Contains(buf.String(), "─") {
		t.Error("divider line missing")
	}
}
