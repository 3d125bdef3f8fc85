package surface

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// AuditMarkup inspects a raw markup block and returns one finding per
// injection-capable construct: script elements, inline event handlers and
// javascript: URLs. UnsafeHTML content is trusted by contract, so findings
// are logged rather than blocked — the point is that the path stays visible.
func AuditMarkup(markup string) []string {
	ctx := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(markup), ctx)
	if err != nil {
		return []string{fmt.Sprintf("unparseable markup: %v", err)}
	}

	var findings []string
	for _, n := range nodes {
		walkMarkup(n, &findings)
	}
	return findings
}

func walkMarkup(n *html.Node, findings *[]string) {
	if n.Type == html.ElementNode {
		if n.DataAtom == atom.Script {
			*findings = append(*findings, "script element")
		}
		for _, a := range n.Attr {
			switch {
			case strings.HasPrefix(strings.ToLower(a.Key), "on"):
				*findings = append(*findings, fmt.Sprintf("inline event handler %s on <%s>", a.Key, n.Data))
			case a.Key == "href" || a.Key == "src":
				if strings.HasPrefix(strings.ToLower(strings.TrimSpace(a.Val)), "javascript:") {
					*findings = append(*findings, fmt.Sprintf("javascript: URL on <%s>", n.Data))
				}
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkMarkup(c, findings)
	}
}
