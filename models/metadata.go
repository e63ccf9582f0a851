package models

import "time"

// FileMetadata is the cached per-file summary: the column headers present
// and the first valid state-of-charge / cell-temperature readings. SOC and
// CellTemp are nil when the file lacks the required columns or holds no
// row inside the validity bounds; such entries stay cached but are
// excluded from range filtering.
type FileMetadata struct {
	URL       string
	Headers   []string
	SOC       *float64
	CellTemp  *float64
	FetchedAt time.Time
}

// HasSummary reports whether both summary readings were found.
func (m *FileMetadata) HasSummary() bool {
	return m != nil && m.SOC != nil && m.CellTemp != nil
}

// Range is a closed numeric interval.
type Range struct {
	Min float64
	Max float64
}

// Contains is inclusive at both bounds.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}
