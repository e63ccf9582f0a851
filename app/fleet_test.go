package app

import (
	"math"
	"reflect"
	"testing"

	"github.com/eivissacopter/battdash/models"
)

func TestCleanFleet(t *testing.T) {
	records := [][]string{
		{"Tesla", "Version", "Battery", "Age", "Odometer", "Cycles", "Degradation", "Rated Range", "Capacity Net Now", "Daily SOC Limit", "DC Ratio", "_internal", ""},
		{"Model 3", "LR", "Panasonic 3", "24 Months", "45,000", "210", "4,5%", "470 km", "70,5 kWh", "80%", "12%", "x", "y"},
		{"Model Y", "P", "LG E5", "6 Months", "12,000", "55", "0,0%", "480 km", "75 kWh", "90%", "5%", "x", "y"},
	}

	table, err := CleanFleet(records)
	if err != nil {
		t.Fatalf("CleanFleet failed: %v", err)
	}

	t.Run("hidden headers dropped", func(t *testing.T) {
		for _, h := range table.Headers {
			if h == "_internal" || h == "" {
				t.Errorf("header %q should be dropped", h)
			}
		}
	})

	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}
	row := table.Rows[0]

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"age strips Months suffix", row.Age, 24},
		{"odometer strips thousands separator", row.Odometer, 45000},
		{"cycles numeric", row.Cycles, 210},
		{"degradation sign flipped", row.Degradation, -4.5},
		{"rated range strips km", row.RatedRange, 470},
		{"capacity strips kWh and decimal comma", row.CapacityNet, 70.5},
		{"daily soc limit strips percent", row.DailySOCLimit, 80},
		{"dc ratio strips percent", row.DCRatio, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, tt.got)
			}
		})
	}

	t.Run("zero degradation becomes NaN after sign flip", func(t *testing.T) {
		if !math.IsNaN(table.Rows[1].Degradation) {
			t.Errorf("expected NaN, got %v", table.Rows[1].Degradation)
		}
	})
}

func TestDedupeHeaders(t *testing.T) {
	got := dedupeHeaders([]string{"Battery", "Age", "Battery", "Battery"})
	want := []string{"Battery", "Age", "Battery_1", "Battery_2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestFilterFleet(t *testing.T) {
	table := &models.FleetTable{
		Rows: []models.FleetRow{
			{Car: "Model 3", Battery: "Panasonic 3", Age: 24, Odometer: 45000},
			{Car: "Model Y", Battery: "LG E5", Age: 6, Odometer: 12000},
			{Car: "Model 3", Battery: "LFP", Age: 12, Odometer: math.NaN()},
		},
	}

	t.Run("empty filters return everything", func(t *testing.T) {
		got := FilterFleet(table, FleetFilters{})
		if len(got.Rows) != 3 {
			t.Errorf("expected 3 rows, got %d", len(got.Rows))
		}
	})

	t.Run("attribute and range combined", func(t *testing.T) {
		got := FilterFleet(table, FleetFilters{
			Cars: []string{"Model 3"},
			Age:  &models.Range{Min: 12, Max: 24},
		})
		if len(got.Rows) != 2 {
			t.Errorf("expected 2 rows, got %d", len(got.Rows))
		}
	})

	t.Run("inclusive bounds", func(t *testing.T) {
		got := FilterFleet(table, FleetFilters{Age: &models.Range{Min: 6, Max: 6}})
		if len(got.Rows) != 1 || got.Rows[0].Car != "Model Y" {
			t.Errorf("expected exactly the boundary row, got %d rows", len(got.Rows))
		}
	})

	t.Run("nan fails range filters", func(t *testing.T) {
		got := FilterFleet(table, FleetFilters{Odometer: &models.Range{Min: 0, Max: 1e9}})
		if len(got.Rows) != 2 {
			t.Errorf("expected NaN odometer row excluded, got %d rows", len(got.Rows))
		}
	})
}

func TestFleetOptions(t *testing.T) {
	table := &models.FleetTable{
		Rows: []models.FleetRow{
			{Car: "Model 3", Battery: "Panasonic 3"},
			{Car: "Model Y", Battery: "LG E5"},
			{Car: "Model 3", Battery: "Panasonic 3"},
		},
	}

	got := FleetOptions(table, FleetColCar)
	want := []string{"Model 3", "Model Y"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestFleetAxis(t *testing.T) {
	row := models.FleetRow{Age: 24, Odometer: 45000, Cycles: 210, Degradation: -4.5, CapacityNet: 70.5, RatedRange: 470}

	tests := []struct {
		key   string
		want  float64
		label string
	}{
		{"age", 24, "Age [months]"},
		{"odometer", 45000, "Odometer [km]"},
		{"cycles", 210, "Cycles [n]"},
		{"degradation", -4.5, "Degradation [%]"},
		{"capacity", 70.5, "Capacity [kWh]"},
		{"range", 470, "Rated Range [km]"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := FleetAxisValue(row, tt.key); got != tt.want {
				t.Errorf("value: expected %v, got %v", tt.want, got)
			}
			if got := FleetAxisLabel(tt.key); got != tt.label {
				t.Errorf("label: expected %q, got %q", tt.label, got)
			}
		})
	}

	if !math.IsNaN(FleetAxisValue(row, "bogus")) {
		t.Error("unknown axis key must yield NaN")
	}
}
