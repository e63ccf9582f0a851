package app

import (
	"testing"

	"github.com/eivissacopter/battdash/models"
)

// Full pass over a mocked remote listing: crawl, classify, summarize,
// select and chart.
func TestPipeline_EndToEnd(t *testing.T) {
	fs := newFixtureServer(t, testIndexPages())
	store, cleanup := setupTestStore(t)
	defer cleanup()

	crawler := NewCrawler(fs.URL+"/smt", 3)
	tree, err := crawler.Crawl()
	if err != nil {
		t.Fatalf("Crawl failed: %v", err)
	}

	entries, _ := ClassifyTree(tree)
	if len(entries) != 1 {
		t.Fatalf("expected 1 classified folder, got %d", len(entries))
	}

	folder := entries[0].Folder
	wantAttrs := map[string]string{
		"model":             "Model3",
		"variant":           "LR",
		"model_year":        "2022",
		"battery":           "Panasonic3",
		"front_motor":       "Dual",
		"rear_motor":        "Dual",
		"tuning":            "Stock",
		"acceleration_mode": "Sport",
	}
	for key, want := range wantAttrs {
		got, ok := folder.Attribute(key)
		if !ok || got != want {
			t.Errorf("attribute %s: expected %q, got %q", key, want, got)
		}
	}

	extractor := NewExtractor(store)
	var cands []Candidate
	for _, leaf := range entries[0].Node.Leaves() {
		meta, err := extractor.GetOrCompute(leaf.URL)
		if err != nil {
			t.Fatalf("GetOrCompute failed: %v", err)
		}
		cands = append(cands, Candidate{Folder: folder, FileURL: leaf.URL, Meta: meta})
	}
	if len(cands) != 1 {
		t.Fatalf("expected 1 candidate file, got %d", len(cands))
	}
	if *cands[0].Meta.SOC != 20 || *cands[0].Meta.CellTemp != 25 {
		t.Errorf("expected metadata {SOC:20, Cell temp mid:25}, got {%v, %v}",
			*cands[0].Meta.SOC, *cands[0].Meta.CellTemp)
	}

	selected := Select(cands, Filters{
		Attributes: map[string][]string{"battery": {"Panasonic3"}},
		SOC:        &models.Range{Min: 20, Max: 100},
	})
	if len(selected) != 1 {
		t.Fatalf("expected candidate to survive filtering, got %d", len(selected))
	}

	loader := NewSeriesLoader()
	frame, err := loader.Load(selected[0].FileURL)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	points, err := BuildSeries(frame, SeriesRequest{
		XColumn:  "Speed",
		YColumns: []string{"Battery power"},
	})
	if err != nil {
		t.Fatalf("BuildSeries failed: %v", err)
	}

	want := []models.SeriesPoint{
		{X: 10, Y: 5, Label: "Battery power"},
		{X: 20, Y: 7, Label: "Battery power"},
	}
	if len(points) != 2 || points[0] != want[0] || points[1] != want[1] {
		t.Fatalf("expected points %v, got %v", want, points)
	}
}
