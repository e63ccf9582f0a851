package models

import "strconv"

// DirectoryNode is one entry of the crawled remote listing. Internal nodes
// hold children in the order the index page listed them; leaves resolve to
// a data file URL. The tree is owned by its root and rebuilt on refresh.
type DirectoryNode struct {
	Name     string
	URL      string
	IsLeaf   bool
	Children []*DirectoryNode
}

// Leaves returns all leaf nodes below n in stable listing order.
func (n *DirectoryNode) Leaves() []*DirectoryNode {
	var out []*DirectoryNode
	if n.IsLeaf {
		return []*DirectoryNode{n}
	}
	for _, c := range n.Children {
		out = append(out, c.Leaves()...)
	}
	return out
}

// ClassifiedFolder is a folder name matched against the fixed
// underscore-delimited naming grammar. AccelerationMode is empty when the
// optional trailing segment is absent; every other field is always set.
type ClassifiedFolder struct {
	Manufacturer     string
	Model            string
	Variant          string
	ModelYear        int
	Battery          string
	FrontMotor       string
	RearMotor        string
	Tuning           string
	AccelerationMode string
	URL              string
}

// FolderAttributeKeys lists the attribute keys in grammar order.
func FolderAttributeKeys() []string {
	return []string{
		"manufacturer",
		"model",
		"variant",
		"model_year",
		"battery",
		"front_motor",
		"rear_motor",
		"tuning",
		"acceleration_mode",
	}
}

// Attribute returns the value for one of the keys from
// FolderAttributeKeys. Unknown keys report ok=false.
func (f ClassifiedFolder) Attribute(key string) (string, bool) {
	switch key {
	case "manufacturer":
		return f.Manufacturer, true
	case "model":
		return f.Model, true
	case "variant":
		return f.Variant, true
	case "model_year":
		return strconv.Itoa(f.ModelYear), true
	case "battery":
		return f.Battery, true
	case "front_motor":
		return f.FrontMotor, true
	case "rear_motor":
		return f.RearMotor, true
	case "tuning":
		return f.Tuning, true
	case "acceleration_mode":
		return f.AccelerationMode, true
	}
	return "", false
}

type CrawlStats struct {
	Folders    int
	Classified int
	Excluded   int
	Files      int
}
