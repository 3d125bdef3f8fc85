package page

import "github.com/31Joojo/portfolio/internal/config"

// renderMusic builds the music-listening analysis page. The statistical and
// charting work lives outside this module; the page carries the narrative
// and marks each chart mount point with explicit placeholder markup.
func renderMusic(_ *config.Config) (Page, error) {
	return Page{
		Title{Text: "Analysis of my personal listening data"},
		Subheader{Text: "Analyzing my listening data :", Divider: "gray"},
		Markdown{Body: "In this section, I'll examine and analyze my musical listening habits. " +
			"Using data collected over time, I'll explore my favorite artists, genres and tracks, " +
			"as well as my listening trends. This will help me identify my preferences and better " +
			"understand how my music consumption is evolving."},
		Subheader{Text: "Analysis of the reasons for stopping reading :", Divider: "gray"},
		UnsafeHTML{Markup: chartPlaceholder("music-end-reasons", "Analysis of the reasons for stopping reading")},
		Markdown{Body: "We can see that the general trend is for me to let pieces finish naturally " +
			"before they change : this represents 91.1% of total pieces over the years 2023 and 2024."},
		Subheader{Text: "Musical activity according to the month :", Divider: "gray"},
		UnsafeHTML{Markup: chartPlaceholder("music-month-activity", "Musical activity according to the month")},
		Subheader{Text: "Musical activity according to the day :", Divider: "gray"},
		UnsafeHTML{Markup: chartPlaceholder("music-day-activity", "Musical activity according to the day")},
		Subheader{Text: "Musical activity :", Divider: "gray"},
		Markdown{Body: "First, we'll look at the number of listens, then at the number of hours."},
		Markdown{Body: "**Most-listened-to artists depending on the number of listenings**"},
		UnsafeHTML{Markup: chartPlaceholder("music-top-artists", "Most-listened-to artists from 2023 to 2024")},
		Markdown{Body: "Which is a fact, we can see that the artist I listen to most is BTS."},
	}, nil
}

// chartPlaceholder marks the mount point for an externally rendered chart.
func chartPlaceholder(id, caption string) string {
	return `<div class="chart-placeholder" data-chart="` + id + `">` + caption + `</div>`
}
