package app

import (
	"testing"

	"github.com/eivissacopter/battdash/models"
)

func TestClassifyFolder(t *testing.T) {
	tests := []struct {
		name   string
		folder string
		ok     bool
		want   models.ClassifiedFolder
	}{
		{
			name:   "full grammar with acceleration mode",
			folder: "Tesla_Model3_LR_2022_Panasonic3_Dual_Dual_Stock_Sport",
			ok:     true,
			want: models.ClassifiedFolder{
				Manufacturer:     "Tesla",
				Model:            "Model3",
				Variant:          "LR",
				ModelYear:        2022,
				Battery:          "Panasonic3",
				FrontMotor:       "Dual",
				RearMotor:        "Dual",
				Tuning:           "Stock",
				AccelerationMode: "Sport",
			},
		},
		{
			name:   "acceleration mode omitted",
			folder: "Tesla_ModelY_P_2023_LG_Single_Dual_Stock",
			ok:     true,
			want: models.ClassifiedFolder{
				Manufacturer: "Tesla",
				Model:        "ModelY",
				Variant:      "P",
				ModelYear:    2023,
				Battery:      "LG",
				FrontMotor:   "Single",
				RearMotor:    "Dual",
				Tuning:       "Stock",
			},
		},
		{
			name:   "percent encoded tuning and mode decoded after splitting",
			folder: "Tesla_Model3_LR_2022_LFP_Single_Single_Stock%2B20_Sport%20Plus",
			ok:     true,
			want: models.ClassifiedFolder{
				Manufacturer:     "Tesla",
				Model:            "Model3",
				Variant:          "LR",
				ModelYear:        2022,
				Battery:          "LFP",
				FrontMotor:       "Single",
				RearMotor:        "Single",
				Tuning:           "Stock+20",
				AccelerationMode: "Sport Plus",
			},
		},
		{name: "no underscores", folder: "BadName", ok: false},
		{name: "too few fields", folder: "Tesla_Model3_LR_2022", ok: false},
		{name: "too many fields", folder: "a_b_c_2020_d_e_f_g_h_i", ok: false},
		{name: "empty field", folder: "Tesla__LR_2022_LFP_Single_Single_Stock", ok: false},
		{name: "non numeric model year", folder: "Tesla_Model3_LR_twentytwo_LFP_Single_Single_Stock", ok: false},
		{name: "empty name", folder: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ClassifyFolder(tt.folder, "http://example/"+tt.folder+"/")
			if ok != tt.ok {
				t.Fatalf("ClassifyFolder(%q) ok = %v, expected %v", tt.folder, ok, tt.ok)
			}
			if !ok {
				return
			}

			tt.want.URL = "http://example/" + tt.folder + "/"
			if got != tt.want {
				t.Errorf("ClassifyFolder(%q) = %+v, expected %+v", tt.folder, got, tt.want)
			}
		})
	}
}

func TestClassifyFolder_AllKeysPopulated(t *testing.T) {
	folder, ok := ClassifyFolder(testFolderName, "http://example/")
	if !ok {
		t.Fatalf("expected %q to classify", testFolderName)
	}

	for _, key := range models.FolderAttributeKeys() {
		value, ok := folder.Attribute(key)
		if !ok {
			t.Errorf("attribute %q missing", key)
		}
		if value == "" {
			t.Errorf("attribute %q empty", key)
		}
	}

	if _, ok := folder.Attribute("bogus"); ok {
		t.Error("unknown attribute key must not resolve")
	}
}

func TestClassifyTree_ExcludesMalformed(t *testing.T) {
	fs := newFixtureServer(t, testIndexPages())

	crawler := NewCrawler(fs.URL+"/smt", 3)
	tree, err := crawler.Crawl()
	if err != nil {
		t.Fatalf("Crawl failed: %v", err)
	}

	entries, stats := ClassifyTree(tree)

	if len(entries) != 1 {
		t.Fatalf("expected 1 classified folder, got %d", len(entries))
	}
	if entries[0].Folder.Model != "Model3" {
		t.Errorf("expected Model3, got %q", entries[0].Folder.Model)
	}
	if stats.Excluded != 1 {
		t.Errorf("expected 1 excluded folder (BadName), got %d", stats.Excluded)
	}

	var folders []models.ClassifiedFolder
	for _, e := range entries {
		folders = append(folders, e.Folder)
	}
	for _, key := range models.FolderAttributeKeys() {
		for _, opt := range Options(folders, key) {
			if opt == "BadName" {
				t.Errorf("excluded folder leaked into %s options", key)
			}
		}
	}
}
