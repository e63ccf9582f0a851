package app

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/eivissacopter/battdash/models"
)

// Column names expected in telemetry data files.
const (
	ColSOC        = "SOC"
	ColCellTemp   = "Cell temp mid"
	ColSpeed      = "Speed"
	ColTime       = "Time"
	ColAccelPedal = "Accelerator pedal"
)

// Validity bounds for the two required columns. Rows outside either bound
// are discarded before any summary or chart is built.
var (
	SOCBounds      = models.Range{Min: -5, Max: 101}
	CellTempBounds = models.Range{Min: -30, Max: 70}
)

// ParseTable reads delimited tabular content into a SeriesFrame. The
// first record is the header row; cells that do not parse as numbers
// become NaN. Duplicate headers keep the first occurrence.
func ParseTable(r io.Reader) (*models.SeriesFrame, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty file")
	}

	frame := &models.SeriesFrame{Columns: make(map[string][]float64)}
	for _, h := range records[0] {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if _, dup := frame.Columns[h]; dup {
			continue
		}
		frame.Headers = append(frame.Headers, h)
		frame.Columns[h] = nil
	}

	colIndex := make(map[string]int)
	for i, h := range records[0] {
		h = strings.TrimSpace(h)
		if _, ok := frame.Columns[h]; ok {
			if _, seen := colIndex[h]; !seen {
				colIndex[h] = i
			}
		}
	}

	for _, row := range records[1:] {
		for _, h := range frame.Headers {
			idx := colIndex[h]
			v := math.NaN()
			if idx < len(row) {
				if parsed, err := strconv.ParseFloat(strings.TrimSpace(row[idx]), 64); err == nil {
					v = parsed
				}
			}
			frame.Columns[h] = append(frame.Columns[h], v)
		}
		frame.Rows++
	}

	return frame, nil
}

// FillForwardBackward replaces NaN gaps in the named columns: forward
// fill first, then back fill, matching the upstream cleaning order. A
// column that is entirely NaN stays NaN.
func FillForwardBackward(frame *models.SeriesFrame, cols ...string) {
	for _, name := range cols {
		vals, ok := frame.Columns[name]
		if !ok {
			continue
		}
		last := math.NaN()
		for i, v := range vals {
			if math.IsNaN(v) {
				vals[i] = last
			} else {
				last = v
			}
		}
		next := math.NaN()
		for i := len(vals) - 1; i >= 0; i-- {
			if math.IsNaN(vals[i]) {
				vals[i] = next
			} else {
				next = vals[i]
			}
		}
	}
}

// DropOutOfBounds removes whole rows whose value in the named column
// falls outside the closed interval. NaN never passes. Columns absent
// from the frame impose no constraint.
func DropOutOfBounds(frame *models.SeriesFrame, col string, bounds models.Range) {
	vals, ok := frame.Columns[col]
	if !ok {
		return
	}

	keep := make([]bool, frame.Rows)
	kept := 0
	for i := 0; i < frame.Rows; i++ {
		if bounds.Contains(vals[i]) {
			keep[i] = true
			kept++
		}
	}
	if kept == frame.Rows {
		return
	}

	for name, col := range frame.Columns {
		out := col[:0]
		for i, v := range col {
			if keep[i] {
				out = append(out, v)
			}
		}
		frame.Columns[name] = out
	}
	frame.Rows = kept
}

// CleanFrame applies the shared cleaning pipeline: fill the two required
// columns, then discard rows outside the validity bounds.
func CleanFrame(frame *models.SeriesFrame) {
	FillForwardBackward(frame, ColSOC, ColCellTemp)
	DropOutOfBounds(frame, ColSOC, SOCBounds)
	DropOutOfBounds(frame, ColCellTemp, CellTempBounds)
}
