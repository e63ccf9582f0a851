package models

// FleetRow is one cleaned spreadsheet entry. Numeric fields are NaN when
// the upstream cell was empty or unparseable.
type FleetRow struct {
	Car           string
	Version       string
	Battery       string
	Age           float64
	Odometer      float64
	Cycles        float64
	Degradation   float64
	RatedRange    float64
	CapacityNet   float64
	DailySOCLimit float64
	DCRatio       float64
}

// FleetTable is the cleaned upstream spreadsheet.
type FleetTable struct {
	Headers []string
	Rows    []FleetRow
}
