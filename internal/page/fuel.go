package page

import "github.com/31Joojo/portfolio/internal/config"

// renderFuel builds the fuel-price analysis page. Like the music page it
// carries the narrative only; charts are placeholders. The station map is the
// one piece of content gated on configuration: it renders only when a mapbox
// token is present, since the frame is useless without the credential.
func renderFuel(cfg *config.Config) (Page, error) {
	p := Page{
		Title{Text: "Price analysis"},
		Subheader{Text: "Introduction", Divider: "gray"},
		Markdown{Body: "In this section, I'll be analyzing government data on fuel prices in France, " +
			"updated in an instant feed. Thanks to this data, I'll be able to track price trends in " +
			"different regions and identify market trends or fluctuations. The aim is to provide a " +
			"clear and accessible view of the current situation of the fuel market in France."},
		Markdown{Body: "In order to analyse the data correctly, we'll divide the dataset into several " +
			"different sets. A subset of the dataset will be linked to a specific piece of information " +
			"we wish to analyse. To do this, we'll first perform a preliminary data cleansing (on the " +
			"dataset as a whole), then we'll go through the datasets."},
		Subheader{Text: "Data Visualisation", Divider: "gray"},
		UnsafeHTML{Markup: chartPlaceholder("fuel-price-trends", "Price trends by region and fuel type")},
		Subheader{Text: "Geographical exploration of fuel shortages", Divider: "gray"},
		UnsafeHTML{Markup: chartPlaceholder("fuel-shortage-map", "Fuel shortages by department")},
	}

	if cfg.Mapbox.Token != "" {
		p = append(p, UnsafeHTML{Markup: stationMapHTML(cfg.Mapbox.Token)})
	}
	return p, nil
}

// stationMapHTML embeds the service-station map frame. The token is a
// deployment credential, not user input, so placing it in the markup keeps
// the trusted-content contract of UnsafeHTML.
func stationMapHTML(token string) string {
	return `<div class="station-map" data-tiles="mapbox" data-token="` + token + `"></div>`
}
