package webapp

import (
	"html/template"
	"log"
	"net/http"

	"github.com/eivissacopter/battdash/app"
	"github.com/eivissacopter/battdash/models"
)

// attributeSelection reads the multi-select parameter for every folder
// attribute key. Empty selections are dropped so they impose no
// constraint.
func attributeSelection(r *http.Request) map[string][]string {
	attrs := make(map[string][]string)
	for _, key := range models.FolderAttributeKeys() {
		if vals := r.URL.Query()[key+"[]"]; len(vals) > 0 {
			attrs[key] = vals
		}
	}
	return attrs
}

// candidates expands the classified folders into per-file candidates,
// summarizing each file through the metadata cache. Files that cannot
// be summarized are skipped, not fatal.
func (webapp *WebApp) candidates(entries []app.FolderEntry, attrs map[string][]string) []app.Candidate {
	selected := make(map[string]bool)
	var folders []models.ClassifiedFolder
	for _, e := range entries {
		folders = append(folders, e.Folder)
	}
	for _, f := range app.SelectFolders(folders, attrs) {
		selected[f.URL] = true
	}

	var cands []app.Candidate
	for _, e := range entries {
		if !selected[e.Folder.URL] {
			continue
		}
		for _, leaf := range e.Node.Leaves() {
			meta, err := webapp.Extractor.GetOrCompute(leaf.URL)
			if err != nil {
				log.Printf("Unable to summarize %s: %v\n", leaf.URL, err)
				continue
			}
			cands = append(cands, app.Candidate{Folder: e.Folder, FileURL: leaf.URL, Meta: meta})
		}
	}
	return cands
}

func (webapp *WebApp) performance() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tree, err := webapp.Crawl.Tree()
		if err != nil {
			log.Printf("Unable to crawl telemetry listing: %v\n", err)
			webapp.renderError(w, http.StatusBadGateway, "")
			return
		}
		entries, stats := app.ClassifyTree(tree)

		attrs := attributeSelection(r)
		cands := webapp.candidates(entries, attrs)

		filters := app.Filters{
			Attributes: attrs,
			SOC:        parseRange(r, "min_soc", "max_soc", app.SOCBounds.Min, app.SOCBounds.Max),
			CellTemp:   parseRange(r, "min_temp", "max_temp", app.CellTempBounds.Min, app.CellTempBounds.Max),
		}
		matching := app.Select(cands, filters)

		q := r.URL.Query()
		selectedFiles := q["file[]"]

		// Column options come from the cached headers of the first
		// selected file.
		var columns []string
		for _, c := range matching {
			if containsString(selectedFiles, c.FileURL) {
				columns = c.Meta.Headers
				break
			}
		}

		var folders []models.ClassifiedFolder
		for _, e := range entries {
			folders = append(folders, e.Folder)
		}

		options := make(map[string][]string)
		for _, key := range models.FolderAttributeKeys() {
			options[key] = app.Options(folders, key)
		}

		data := webapp.newTplData()
		data["Title"] = "Performance"
		data["Stats"] = stats
		data["AttributeKeys"] = models.FolderAttributeKeys()
		data["Options"] = options
		data["Selected"] = attrs
		data["MinSOC"] = q.Get("min_soc")
		data["MaxSOC"] = q.Get("max_soc")
		data["MinTemp"] = q.Get("min_temp")
		data["MaxTemp"] = q.Get("max_temp")
		data["Candidates"] = matching
		data["SelectedFiles"] = selectedFiles
		data["Columns"] = columns
		data["XColumn"] = axisKey(r, "x", app.ColSpeed)
		data["YColumns"] = q["y[]"]
		data["Smooth"] = q.Get("smooth") == "1"
		data["FullThrottle"] = q.Get("full_throttle") == "1"
		data["Combine"] = q.Get("combine") == "1"
		data["ChartQuery"] = template.URL(r.URL.RawQuery)

		err = webapp.TemplateCache["performance.html"].Execute(w, data)
		if err != nil {
			log.Printf("Template error: %v\n", err)
			webapp.renderError(w, http.StatusInternalServerError, "")
		}
	}
}
