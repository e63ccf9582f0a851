package models

// SeriesPoint is one charted sample.
type SeriesPoint struct {
	X     float64
	Y     float64
	Label string
}

// SeriesFrame is the fully loaded content of one telemetry file: ordered
// rows of named columns. Built per plot request and discarded after
// rendering.
type SeriesFrame struct {
	Headers []string
	Columns map[string][]float64
	Rows    int
}

// Column returns the named column, or nil when absent.
func (f *SeriesFrame) Column(name string) []float64 {
	return f.Columns[name]
}

// HasColumn reports whether the named column was present in the file.
func (f *SeriesFrame) HasColumn(name string) bool {
	_, ok := f.Columns[name]
	return ok
}
