package surface

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/31Joojo/portfolio/internal/config"
	"github.com/31Joojo/portfolio/internal/logging"
	"github.com/31Joojo/portfolio/internal/page"
)

// HTML renders pages as full web documents: theme CSS derived from the
// configuration, navigation chrome, then the instruction stream. Titles and
// subheaders are escaped, Markdown goes through goldmark, UnsafeHTML is
// written verbatim after an audit pass.
type HTML struct {
	cfg    *config.Config
	logger logging.Logger
	md     goldmark.Markdown
	shell  *template.Template
}

// NewHTML creates an HTML surface for the given configuration.
func NewHTML(cfg *config.Config, logger logging.Logger) *HTML {
	return &HTML{
		cfg:    cfg,
		logger: logger,
		md:     goldmark.New(),
		shell:  template.Must(template.New("shell").Parse(shellTemplate)),
	}
}

const shellTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>{{.CSS}}</style>
</head>
<body>
<nav class="topnav">{{range .Nav}}<a href="/pages/{{.ID}}"{{if eq .ID $.Active}} class="active"{{end}}>{{.Title}}</a>{{end}}</nav>
{{if .Sidebar}}<aside class="sidebar"><ul>{{range .Nav}}<li><a href="/pages/{{.ID}}">{{.Title}}</a></li>{{end}}</ul></aside>
{{end}}<main class="{{.MainClass}}">
{{.Content}}</main>
</body>
</html>
`

type shellData struct {
	Title     string
	CSS       template.CSS
	Nav       []page.Entry
	Active    string
	Sidebar   bool
	MainClass string
	Content   template.HTML
}

// Document writes a complete HTML page: chrome from the configuration and
// registry entries, content from the instruction stream.
func (h *HTML) Document(w io.Writer, active string, nav []page.Entry, p page.Page) error {
	var content bytes.Buffer
	if err := h.Paint(&content, p); err != nil {
		return err
	}

	title := "My Portfolio"
	for _, e := range nav {
		if e.ID == active {
			title = e.Title + " — My Portfolio"
		}
	}

	mainClass := "narrow"
	if h.cfg.Layout.Wide {
		mainClass = "wide"
	}

	return h.shell.Execute(w, shellData{
		Title:     title,
		CSS:       template.CSS(h.themeCSS()),
		Nav:       nav,
		Active:    active,
		Sidebar:   !h.cfg.UI.HideSidebarNav,
		MainClass: mainClass,
		Content:   template.HTML(content.String()),
	})
}

// Paint writes the instruction stream as an HTML fragment, without the
// document chrome. Implements Surface.
func (h *HTML) Paint(w io.Writer, p page.Page) error {
	for _, in := range p {
		switch v := in.(type) {
		case page.Title:
			fmt.Fprintf(w, "<h1>%s</h1>\n", template.HTMLEscapeString(v.Text))
		case page.Subheader:
			fmt.Fprintf(w, "<h2>%s</h2>\n", template.HTMLEscapeString(v.Text))
			if v.Divider != "" {
				fmt.Fprintf(w, "<hr class=\"divider\" style=\"border-color: %s\">\n",
					template.HTMLEscapeString(v.Divider))
			}
		case page.Markdown:
			if err := h.md.Convert([]byte(v.Body), w); err != nil {
				return fmt.Errorf("converting markdown block: %w", err)
			}
		case page.UnsafeHTML:
			for _, finding := range AuditMarkup(v.Markup) {
				h.logger.Warn("raw markup block", logging.Field{Key: "finding", Value: finding})
			}
			if _, err := io.WriteString(w, v.Markup+"\n"); err != nil {
				return err
			}
		default:
			return fmt.Errorf("surface: unknown instruction type %T", in)
		}
	}
	return nil
}

// themeCSS turns the theme section into the document stylesheet.
func (h *HTML) themeCSS() string {
	t := h.cfg.Theme

	var b strings.Builder
	fmt.Fprintf(&b, "body { background-color: %s; color: %s; font-family: %s; margin: 0; }\n",
		t.BackgroundColor, t.TextColor, fontStack(t.Font))
	fmt.Fprintf(&b, ".topnav { background-color: %s; padding: 0.5rem 1rem; }\n", t.SecondaryBackgroundColor)
	fmt.Fprintf(&b, ".topnav a { color: %s; margin-right: 1rem; text-decoration: none; }\n", t.TextColor)
	fmt.Fprintf(&b, ".topnav a.active { color: %s; font-weight: bold; }\n", t.PrimaryColor)
	fmt.Fprintf(&b, ".sidebar { background-color: %s; float: left; padding: 1rem; }\n", t.SecondaryBackgroundColor)
	fmt.Fprintf(&b, "h1 { color: %s; }\n", t.PrimaryColor)
	b.WriteString("main.narrow { max-width: 46rem; margin: 0 auto; padding: 1rem; }\n")
	b.WriteString("main.wide { width: 100%; box-sizing: border-box; padding: 1rem 2rem; }\n")
	b.WriteString("hr.divider { border: 0; border-top: 2px solid; margin: 0.25rem 0 1rem; }\n")
	b.WriteString(".img-circle { border-radius: 50%; width: 200px; }\n")
	fmt.Fprintf(&b, ".chart-placeholder { background-color: %s; padding: 3rem 1rem; text-align: center; }\n",
		t.SecondaryBackgroundColor)
	return b.String()
}

func fontStack(font string) string {
	switch font {
	case "serif":
		return "Georgia, 'Times New Roman', serif"
	case "monospace":
		return "'Source Code Pro', monospace"
	default:
		return "'Source Sans Pro', sans-serif"
	}
}
