package webapp

import (
	"log"
	"math"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/eivissacopter/battdash/app"
)

// degradationChart renders the fleet scatter as a self-contained HTML
// document, consumed by the dashboard iframe.
func (webapp *WebApp) degradationChart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table, err := webapp.Fleet.Table()
		if err != nil {
			log.Printf("Unable to load fleet sheet: %v\n", err)
			webapp.renderError(w, http.StatusBadGateway, "")
			return
		}

		filtered := app.FilterFleet(table, parseFleetFilters(r))
		xKey := axisKey(r, "x", "age")
		yKey := axisKey(r, "y", "degradation")

		scatter := charts.NewScatter()
		scatter.SetGlobalOptions(
			charts.WithTitleOpts(opts.Title{
				Title: "Fleet degradation",
			}),
			charts.WithTooltipOpts(opts.Tooltip{
				Show: opts.Bool(true),
			}),
			charts.WithLegendOpts(opts.Legend{
				Show: opts.Bool(true),
			}),
			charts.WithXAxisOpts(opts.XAxis{
				Name: app.FleetAxisLabel(xKey),
				Type: "value",
			}),
			charts.WithYAxisOpts(opts.YAxis{
				Name: app.FleetAxisLabel(yKey),
				Type: "value",
			}),
			charts.WithInitializationOpts(opts.Initialization{
				Width:  "100%",
				Height: "500px",
			}),
		)

		// One series per battery type so the legend doubles as a
		// chemistry breakdown.
		grouped := make(map[string][]opts.ScatterData)
		var order []string
		for _, row := range filtered.Rows {
			x := app.FleetAxisValue(row, xKey)
			y := app.FleetAxisValue(row, yKey)
			if math.IsNaN(x) || math.IsNaN(y) {
				continue
			}
			battery := row.Battery
			if battery == "" {
				battery = "Unknown"
			}
			if _, seen := grouped[battery]; !seen {
				order = append(order, battery)
			}
			grouped[battery] = append(grouped[battery], opts.ScatterData{
				Name:       row.Car + " " + row.Version,
				Value:      []interface{}{x, y},
				SymbolSize: 8,
			})
		}
		for _, battery := range order {
			scatter.AddSeries(battery, grouped[battery])
		}

		if err := scatter.Render(w); err != nil {
			log.Printf("Chart render error: %v\n", err)
		}
	}
}

// performanceChart renders the telemetry line chart for the selected
// files and columns.
func (webapp *WebApp) performanceChart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		files := q["file[]"]
		yCols := q["y[]"]
		if len(files) == 0 || len(yCols) == 0 {
			webapp.renderError(w, http.StatusBadRequest, "Select at least one file and one column to plot.")
			return
		}

		req := app.SeriesRequest{
			XColumn:          axisKey(r, "x", app.ColSpeed),
			YColumns:         yCols,
			FullThrottle:     q.Get("full_throttle") == "1",
			Smooth:           q.Get("smooth") == "1",
			CombineFrontRear: q.Get("combine") == "1",
		}

		line := charts.NewLine()
		line.SetGlobalOptions(
			charts.WithTitleOpts(opts.Title{
				Title: "Telemetry",
			}),
			charts.WithTooltipOpts(opts.Tooltip{
				Show:    opts.Bool(true),
				Trigger: "axis",
			}),
			charts.WithLegendOpts(opts.Legend{
				Show: opts.Bool(true),
			}),
			charts.WithXAxisOpts(opts.XAxis{
				Name: req.XColumn,
				Type: "value",
			}),
			charts.WithYAxisOpts(opts.YAxis{
				Type: "value",
			}),
			charts.WithDataZoomOpts(opts.DataZoom{
				Type:  "slider",
				Start: 0,
				End:   100,
			}),
			charts.WithInitializationOpts(opts.Initialization{
				Width:  "100%",
				Height: "500px",
			}),
		)

		for _, fileURL := range files {
			frame, err := webapp.Loader.Load(fileURL)
			if err != nil {
				log.Printf("Unable to load %s: %v\n", fileURL, err)
				webapp.renderError(w, http.StatusBadGateway, "")
				return
			}
			points, err := app.BuildSeries(frame, req)
			if err != nil {
				webapp.renderError(w, http.StatusBadRequest, err.Error())
				return
			}

			grouped := make(map[string][]opts.LineData)
			var order []string
			for _, p := range points {
				if _, seen := grouped[p.Label]; !seen {
					order = append(order, p.Label)
				}
				grouped[p.Label] = append(grouped[p.Label], opts.LineData{
					Value: []interface{}{p.X, p.Y},
				})
			}
			for _, label := range order {
				line.AddSeries(shortFileName(fileURL)+" "+label, grouped[label],
					charts.WithLineChartOpts(opts.LineChart{
						ShowSymbol: opts.Bool(false),
					}))
			}
		}

		if err := line.Render(w); err != nil {
			log.Printf("Chart render error: %v\n", err)
		}
	}
}

// shortFileName shortens a file URL to its decoded base name for series
// labels.
func shortFileName(fileURL string) string {
	base := path.Base(fileURL)
	if dec, err := url.PathUnescape(base); err == nil {
		base = dec
	}
	return strings.TrimSuffix(base, path.Ext(base))
}
