// Package htmlpage renders a figure as a standalone HTML page that loads
// plotly.js from a CDN.
package htmlpage

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/couchcryptid/nom-chart/internal/chart"
)

// DefaultPlotlyURL is the CDN build referenced by generated pages.
const DefaultPlotlyURL = "https://cdn.plot.ly/plotly-2.35.2.min.js"

// divID is fixed so regenerated pages are byte-identical.
const divID = "nom-chart"

var pageTmpl = template.Must(template.New("page").Parse(`<html>
<head><meta charset="utf-8" /><title>{{.Title}}</title></head>
<body>
    <div>
        <script src="{{.PlotlyURL}}" charset="utf-8"></script>
        <div id="{{.DivID}}" class="plotly-graph-div" style="height:100%; width:100%;"></div>
        <script type="text/javascript">
            window.PLOTLYENV = window.PLOTLYENV || {};
            if (document.getElementById({{.DivID}})) {
                Plotly.newPlot({{.DivID}}, {{.Data}}, {{.Layout}}, {"responsive": true});
            }
        </script>
    </div>
</body>
</html>
`))

type pageData struct {
	Title     string
	PlotlyURL string
	DivID     string
	Data      template.JS
	Layout    template.JS
}

// Render returns the page for fig. The output depends only on fig and
// plotlyURL.
func Render(fig *chart.Figure, plotlyURL string) ([]byte, error) {
	data, layout, err := fig.JSON()
	if err != nil {
		return nil, err
	}
	if plotlyURL == "" {
		plotlyURL = DefaultPlotlyURL
	}

	var buf bytes.Buffer
	err = pageTmpl.Execute(&buf, pageData{
		Title:     fig.PlainTitle(),
		PlotlyURL: plotlyURL,
		DivID:     divID,
		// encoding/json escapes <, > and & so the payload cannot close the script element.
		Data:   template.JS(data),   //nolint:gosec // trusted JSON from json.Marshal
		Layout: template.JS(layout), //nolint:gosec // trusted JSON from json.Marshal
	})
	if err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return buf.Bytes(), nil
}
