package app

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/eivissacopter/battdash/models"
)

// Folder naming grammar, underscore separated:
//
//	manufacturer_model_variant_modelYear_battery_frontMotor_rearMotor_tuning[_accelerationMode]
//
// The tuning and acceleration mode segments may arrive percent-encoded a
// second time and are decoded after splitting.
const (
	classifyMinFields = 8
	classifyMaxFields = 9
)

// ClassifyFolder matches a decoded folder name against the naming
// grammar. It is total: any malformed name reports ok=false and the
// folder is excluded entirely, never returned as a partial record.
func ClassifyFolder(name, folderURL string) (models.ClassifiedFolder, bool) {
	parts := strings.Split(name, "_")
	if len(parts) < classifyMinFields || len(parts) > classifyMaxFields {
		return models.ClassifiedFolder{}, false
	}
	for _, p := range parts {
		if p == "" {
			return models.ClassifiedFolder{}, false
		}
	}

	year, err := strconv.Atoi(parts[3])
	if err != nil {
		return models.ClassifiedFolder{}, false
	}

	folder := models.ClassifiedFolder{
		Manufacturer: parts[0],
		Model:        parts[1],
		Variant:      parts[2],
		ModelYear:    year,
		Battery:      parts[4],
		FrontMotor:   parts[5],
		RearMotor:    parts[6],
		Tuning:       decodeField(parts[7]),
		URL:          folderURL,
	}
	if len(parts) == classifyMaxFields {
		folder.AccelerationMode = decodeField(parts[8])
	}

	return folder, true
}

func decodeField(s string) string {
	if decoded, err := url.PathUnescape(s); err == nil {
		return decoded
	}
	return s
}

// FolderEntry pairs a classified folder with its tree node, keeping
// access to the folder's data files.
type FolderEntry struct {
	Folder models.ClassifiedFolder
	Node   *models.DirectoryNode
}

// ClassifyTree walks the crawled tree and classifies every internal node
// that holds at least one data file. Nodes whose names do not match the
// grammar are counted but excluded.
func ClassifyTree(root *models.DirectoryNode) ([]FolderEntry, models.CrawlStats) {
	var entries []FolderEntry
	var stats models.CrawlStats

	var walk func(n *models.DirectoryNode)
	walk = func(n *models.DirectoryNode) {
		for _, c := range n.Children {
			if c.IsLeaf {
				stats.Files++
				continue
			}
			stats.Folders++

			if hasLeafChild(c) {
				if folder, ok := ClassifyFolder(c.Name, c.URL); ok {
					entries = append(entries, FolderEntry{Folder: folder, Node: c})
					stats.Classified++
				} else {
					stats.Excluded++
				}
			}
			walk(c)
		}
	}
	walk(root)

	return entries, stats
}

func hasLeafChild(n *models.DirectoryNode) bool {
	for _, c := range n.Children {
		if c.IsLeaf {
			return true
		}
	}
	return false
}
