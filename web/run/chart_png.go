package webapp

import (
	"log"
	"math"
	"net/http"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/eivissacopter/battdash/app"
)

var scatterPalette = []drawing.Color{
	chart.ColorBlue,
	chart.ColorGreen,
	chart.ColorRed,
	chart.ColorOrange,
	chart.ColorCyan,
	chart.ColorAlternateGray,
}

// pointStyle renders points only, no connecting line.
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 0,
		DotWidth:    4,
		DotColor:    col,
	}
}

// degradationPNG is the static export of the fleet scatter, for embedding
// outside the dashboard.
func (webapp *WebApp) degradationPNG() http.HandlerFunc {
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

		type group struct {
			xs []float64
			ys []float64
		}
		grouped := make(map[string]*group)
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
			g, ok := grouped[battery]
			if !ok {
				g = &group{}
				grouped[battery] = g
				order = append(order, battery)
			}
			g.xs = append(g.xs, x)
			g.ys = append(g.ys, y)
		}

		var series []chart.Series
		for i, battery := range order {
			g := grouped[battery]
			// go-chart needs at least two points per series
			if len(g.xs) == 1 {
				g.xs = append(g.xs, g.xs[0])
				g.ys = append(g.ys, g.ys[0])
			}
			series = append(series, chart.ContinuousSeries{
				Name:    battery,
				XValues: g.xs,
				YValues: g.ys,
				Style:   pointStyle(scatterPalette[i%len(scatterPalette)]),
			})
		}

		if len(series) == 0 {
			webapp.renderError(w, http.StatusBadRequest, "No rows match the current filters.")
			return
		}

		ch := chart.Chart{
			Width:      900,
			Height:     500,
			Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 14}},
			XAxis:      chart.XAxis{Name: app.FleetAxisLabel(xKey)},
			YAxis:      chart.YAxis{Name: app.FleetAxisLabel(yKey)},
			Series:     series,
		}
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}

		w.Header().Set("Content-Type", "image/png")
		if err := ch.Render(chart.PNG, w); err != nil {
			log.Printf("Chart render error: %v\n", err)
		}
	}
}
