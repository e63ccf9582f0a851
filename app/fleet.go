package app

import (
	"encoding/csv"
	"fmt"
	"math"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/eivissacopter/battdash/models"
)

// Fleet spreadsheet column names after header cleanup.
const (
	FleetColCar           = "Tesla"
	FleetColVersion       = "Version"
	FleetColBattery       = "Battery"
	FleetColAge           = "Age"
	FleetColOdometer      = "Odometer"
	FleetColCycles        = "Cycles"
	FleetColDegradation   = "Degradation"
	FleetColRatedRange    = "Rated Range"
	FleetColCapacityNet   = "Capacity Net Now"
	FleetColDailySOCLimit = "Daily SOC Limit"
	FleetColDCRatio       = "DC Ratio"
)

var leadingDigits = regexp.MustCompile(`\d+`)

// negated columns get their sign flipped on ingest; the flip happens
// before the zero-to-NaN substitution, so "0,0%" degradation reads as
// unknown rather than -0.
var negatedColumns = map[string]bool{
	"Degradation":         true,
	"DegradationPerMonth": true,
	"DegradationPerCycle": true,
}

// FleetLoader fetches the shared spreadsheet worksheet as CSV export and
// cleans it into a FleetTable.
type FleetLoader struct {
	SheetURL string
	Client   *http.Client
}

func NewFleetLoader(sheetURL string) *FleetLoader {
	return &FleetLoader{SheetURL: sheetURL, Client: http.DefaultClient}
}

func (l *FleetLoader) Fetch() (*models.FleetTable, error) {
	resp, err := l.Client.Get(l.SheetURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fleet sheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch fleet sheet: unexpected status %d", resp.StatusCode)
	}

	cr := csv.NewReader(resp.Body)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse fleet sheet: %w", err)
	}

	return CleanFleet(records)
}

// CleanFleet applies the upstream cleaning rules: drop empty and
// underscore-prefixed headers, disambiguate duplicates with numeric
// suffixes, normalize units and decimal commas, flip degradation signs.
func CleanFleet(records [][]string) (*models.FleetTable, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("fleet sheet is empty")
	}

	rawHeader := records[0]
	var keep []int
	for i, h := range rawHeader {
		h = strings.TrimSpace(h)
		if h == "" || strings.HasPrefix(h, "_") {
			continue
		}
		keep = append(keep, i)
	}

	var headers []string
	for _, i := range keep {
		headers = append(headers, strings.TrimSpace(rawHeader[i]))
	}
	headers = dedupeHeaders(headers)

	table := &models.FleetTable{Headers: headers}
	for _, raw := range records[1:] {
		cells := make(map[string]string, len(headers))
		for pos, i := range keep {
			if i < len(raw) {
				cells[headers[pos]] = strings.TrimSpace(raw[i])
			}
		}
		table.Rows = append(table.Rows, cleanFleetRow(cells))
	}

	return table, nil
}

// dedupeHeaders disambiguates duplicate header names with _1, _2, ...
// suffixes, keeping the first occurrence untouched.
func dedupeHeaders(headers []string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(headers))
	for _, h := range headers {
		if !seen[h] {
			seen[h] = true
			out = append(out, h)
			continue
		}
		suffix := 1
		unique := fmt.Sprintf("%s_%d", h, suffix)
		for seen[unique] {
			suffix++
			unique = fmt.Sprintf("%s_%d", h, suffix)
		}
		seen[unique] = true
		out = append(out, unique)
	}
	return out
}

func cleanFleetRow(cells map[string]string) models.FleetRow {
	return models.FleetRow{
		Car:           cells[FleetColCar],
		Version:       cells[FleetColVersion],
		Battery:       cells[FleetColBattery],
		Age:           parseAge(cells[FleetColAge]),
		Odometer:      parseOdometer(cells[FleetColOdometer]),
		Cycles:        parseFleetNumber(cells[FleetColCycles]),
		Degradation:   parseDegradation(cells[FleetColDegradation]),
		RatedRange:    parseFleetNumber(strings.TrimSuffix(cells[FleetColRatedRange], " km")),
		CapacityNet:   parseFleetNumber(strings.TrimSuffix(cells[FleetColCapacityNet], " kWh")),
		DailySOCLimit: parsePercent(cells[FleetColDailySOCLimit]),
		DCRatio:       parsePercent(cells[FleetColDCRatio]),
	}
}

func parseAge(s string) float64 {
	return parseFleetNumber(strings.TrimSuffix(s, " Months"))
}

func parseOdometer(s string) float64 {
	s = strings.ReplaceAll(s, ",", "")
	digits := leadingDigits.FindString(s)
	if digits == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func parseDegradation(s string) float64 {
	if s == "" {
		return math.NaN()
	}
	s = "-" + s
	s = strings.ReplaceAll(s, ",", ".")
	if s == "-0.0%" {
		return math.NaN()
	}
	return parsePercent(s)
}

func parsePercent(s string) float64 {
	return parseFleetNumber(strings.TrimSuffix(s, "%"))
}

func parseFleetNumber(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// FleetFilters narrows the fleet table with the same semantics as the
// telemetry filters: multi-select attributes, inclusive numeric ranges.
// NaN never passes a range filter.
type FleetFilters struct {
	Cars      []string
	Versions  []string
	Batteries []string
	Age       *models.Range
	Odometer  *models.Range
}

func FilterFleet(table *models.FleetTable, f FleetFilters) *models.FleetTable {
	out := &models.FleetTable{Headers: table.Headers}
	for _, row := range table.Rows {
		if !memberOf(row.Car, f.Cars) || !memberOf(row.Version, f.Versions) || !memberOf(row.Battery, f.Batteries) {
			continue
		}
		if f.Age != nil && !f.Age.Contains(row.Age) {
			continue
		}
		if f.Odometer != nil && !f.Odometer.Contains(row.Odometer) {
			continue
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

// memberOf treats an empty selection as "no constraint".
func memberOf(value string, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, s := range selected {
		if s == value {
			return true
		}
	}
	return false
}

// FleetOptions returns distinct values for one of the string attributes
// in first-seen order.
func FleetOptions(table *models.FleetTable, key string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, row := range table.Rows {
		var v string
		switch key {
		case FleetColCar:
			v = row.Car
		case FleetColVersion:
			v = row.Version
		case FleetColBattery:
			v = row.Battery
		}
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// FleetAxisValue resolves an axis key to the row's value.
func FleetAxisValue(row models.FleetRow, key string) float64 {
	switch key {
	case "age":
		return row.Age
	case "odometer":
		return row.Odometer
	case "cycles":
		return row.Cycles
	case "degradation":
		return row.Degradation
	case "capacity":
		return row.CapacityNet
	case "range":
		return row.RatedRange
	}
	return math.NaN()
}

// FleetAxisLabel resolves an axis key to its chart label.
func FleetAxisLabel(key string) string {
	switch key {
	case "age":
		return "Age [months]"
	case "odometer":
		return "Odometer [km]"
	case "cycles":
		return "Cycles [n]"
	case "degradation":
		return "Degradation [%]"
	case "capacity":
		return "Capacity [kWh]"
	case "range":
		return "Rated Range [km]"
	}
	return key
}

// FleetCache memoizes the fetched sheet for a coarse TTL, mirroring the
// crawl cache.
type FleetCache struct {
	loader *FleetLoader
	ttl    time.Duration

	mu        sync.Mutex
	table     *models.FleetTable
	fetchedAt time.Time
}

func NewFleetCache(loader *FleetLoader, ttl time.Duration) *FleetCache {
	return &FleetCache{loader: loader, ttl: ttl}
}

func (fc *FleetCache) Table() (*models.FleetTable, error) {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	if fc.table != nil && time.Since(fc.fetchedAt) < fc.ttl {
		return fc.table, nil
	}

	table, err := fc.loader.Fetch()
	if err != nil {
		return nil, err
	}
	fc.table = table
	fc.fetchedAt = time.Now()
	return table, nil
}

func (fc *FleetCache) Refresh() {
	fc.mu.Lock()
	fc.table = nil
	fc.mu.Unlock()
}
