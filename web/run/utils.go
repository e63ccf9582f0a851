package webapp

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/eivissacopter/battdash/app"
	"github.com/eivissacopter/battdash/models"
	"github.com/eivissacopter/battdash/version"
)

func (webapp *WebApp) newTplData() map[string]any {
	data := make(map[string]any)
	data["Version"] = version.Version
	data["Commit"] = version.Commit
	data["BuildDate"] = version.BuildDate
	return data
}

// fmtFloat renders a value for the fleet table, hiding NaN cells.
func fmtFloat(v float64) string {
	if math.IsNaN(v) {
		return "–"
	}
	if v == math.Trunc(v) {
		return strconv.FormatInt(int64(v), 10)
	}
	return fmt.Sprintf("%.1f", v)
}

// fmtPtr renders an optional summary reading.
func fmtPtr(v *float64) string {
	if v == nil {
		return "–"
	}
	return fmtFloat(*v)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// parseRange builds an inclusive range from a min/max query pair. A
// missing side falls back to the given default so a single bound still
// filters.
func parseRange(r *http.Request, minKey, maxKey string, defMin, defMax float64) *models.Range {
	minStr := r.URL.Query().Get(minKey)
	maxStr := r.URL.Query().Get(maxKey)
	if minStr == "" && maxStr == "" {
		return nil
	}

	rng := &models.Range{Min: defMin, Max: defMax}
	if v, err := strconv.ParseFloat(minStr, 64); err == nil {
		rng.Min = v
	}
	if v, err := strconv.ParseFloat(maxStr, 64); err == nil {
		rng.Max = v
	}
	return rng
}

// parseFleetFilters reads the dashboard filter parameters shared by the
// dashboard page and its chart endpoints.
func parseFleetFilters(r *http.Request) app.FleetFilters {
	q := r.URL.Query()
	return app.FleetFilters{
		Cars:      q["car[]"],
		Versions:  q["version[]"],
		Batteries: q["battery[]"],
		Age:       parseRange(r, "min_age", "max_age", 0, math.MaxFloat64),
		Odometer:  parseRange(r, "min_odo", "max_odo", 0, math.MaxFloat64),
	}
}

// axisKey returns the axis parameter or its default.
func axisKey(r *http.Request, param, def string) string {
	if v := r.URL.Query().Get(param); v != "" {
		return v
	}
	return def
}
