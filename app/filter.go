package app

import "github.com/eivissacopter/battdash/models"

// Candidate is one selectable folder/file pair with its cached metadata,
// when available.
type Candidate struct {
	Folder  models.ClassifiedFolder
	FileURL string
	Meta    *models.FileMetadata
}

// Filters narrows candidates. Attribute filtering is conjunctive across
// keys and disjunctive within a key's selected values; an attribute with
// no selection imposes no constraint. Range filters are inclusive at both
// bounds and require cached metadata with a valid reading.
type Filters struct {
	Attributes map[string][]string
	SOC        *models.Range
	CellTemp   *models.Range
}

// Select is a pure function over the candidate list.
func Select(cands []Candidate, f Filters) []Candidate {
	var out []Candidate
	for _, c := range cands {
		if !matchAttributes(c.Folder, f.Attributes) {
			continue
		}
		if f.SOC != nil {
			if c.Meta == nil || c.Meta.SOC == nil || !f.SOC.Contains(*c.Meta.SOC) {
				continue
			}
		}
		if f.CellTemp != nil {
			if c.Meta == nil || c.Meta.CellTemp == nil || !f.CellTemp.Contains(*c.Meta.CellTemp) {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

// SelectFolders applies only the attribute filters.
func SelectFolders(folders []models.ClassifiedFolder, attrs map[string][]string) []models.ClassifiedFolder {
	var out []models.ClassifiedFolder
	for _, folder := range folders {
		if matchAttributes(folder, attrs) {
			out = append(out, folder)
		}
	}
	return out
}

func matchAttributes(folder models.ClassifiedFolder, attrs map[string][]string) bool {
	for key, selected := range attrs {
		if len(selected) == 0 {
			continue
		}
		value, ok := folder.Attribute(key)
		if !ok {
			return false
		}
		found := false
		for _, s := range selected {
			if s == value {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Options returns the distinct values of one attribute across the
// classified folders, in first-seen order, for building pickers.
func Options(folders []models.ClassifiedFolder, key string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, folder := range folders {
		value, ok := folder.Attribute(key)
		if !ok || value == "" || seen[value] {
			continue
		}
		seen[value] = true
		out = append(out, value)
	}
	return out
}
