package webapp

import (
	"log"
	"net/http"
	"html/template"

	"github.com/eivissacopter/battdash/app"
)

// fleetAxisOptions lists the selectable axes for the degradation chart.
var fleetAxisOptions = []string{"age", "odometer", "cycles", "degradation", "capacity", "range"}

func (webapp *WebApp) dashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table, err := webapp.Fleet.Table()
		if err != nil {
			log.Printf("Unable to load fleet sheet: %v\n", err)
			webapp.renderError(w, http.StatusBadGateway, "")
			return
		}

		filters := parseFleetFilters(r)
		xKey := axisKey(r, "x", "age")
		yKey := axisKey(r, "y", "degradation")

		// Option lists narrow progressively: versions depend on the car
		// selection, batteries on both.
		carOptions := app.FleetOptions(table, app.FleetColCar)
		versionOptions := app.FleetOptions(app.FilterFleet(table, app.FleetFilters{
			Cars: filters.Cars,
		}), app.FleetColVersion)
		batteryOptions := app.FleetOptions(app.FilterFleet(table, app.FleetFilters{
			Cars:     filters.Cars,
			Versions: filters.Versions,
		}), app.FleetColBattery)

		filtered := app.FilterFleet(table, filters)

		// Table shows the first rows only; the scatter plots everything.
		const maxTableRows = 10
		rows := filtered.Rows
		if len(rows) > maxTableRows {
			rows = rows[:maxTableRows]
		}

		data := webapp.newTplData()
		data["Title"] = "Fleet"
		data["Rows"] = rows
		data["MatchCount"] = len(filtered.Rows)
		data["TotalRows"] = len(table.Rows)
		data["CarOptions"] = carOptions
		data["VersionOptions"] = versionOptions
		data["BatteryOptions"] = batteryOptions
		data["SelectedCars"] = filters.Cars
		data["SelectedVersions"] = filters.Versions
		data["SelectedBatteries"] = filters.Batteries
		data["MinAge"] = r.URL.Query().Get("min_age")
		data["MaxAge"] = r.URL.Query().Get("max_age")
		data["MinOdo"] = r.URL.Query().Get("min_odo")
		data["MaxOdo"] = r.URL.Query().Get("max_odo")
		data["AxisOptions"] = fleetAxisOptions
		data["XAxis"] = xKey
		data["YAxis"] = yKey
		data["ChartQuery"] = template.URL(r.URL.RawQuery)

		err = webapp.TemplateCache["dashboard.html"].Execute(w, data)
		if err != nil {
			log.Printf("Template error: %v\n", err)
			webapp.renderError(w, http.StatusInternalServerError, "")
		}
	}
}

func (webapp *WebApp) refresh() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		webapp.Crawl.Refresh()
		webapp.Fleet.Refresh()

		target := r.URL.Query().Get("back")
		if target == "" || target[0] != '/' {
			target = "/"
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
	}
}
