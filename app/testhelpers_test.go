package app

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
)

func stringsReader(s string) io.Reader {
	return strings.NewReader(s)
}

// setupTestStore creates a MetaStore backed by a temp sqlite file.
func setupTestStore(t *testing.T) (*MetaStore, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "battdash_test_*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	store, err := OpenMetaStore(filepath.Join(tmpDir, "meta.db"))
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("failed to open meta store: %v", err)
	}

	cleanup := func() {
		store.Close()
		os.RemoveAll(tmpDir)
	}

	return store, cleanup
}

// fixtureServer serves a fixed path -> body map and counts requests per
// path, so tests can assert how many fetches happened.
type fixtureServer struct {
	*httptest.Server
	hits map[string]*int64
}

func newFixtureServer(t *testing.T, pages map[string]string) *fixtureServer {
	t.Helper()

	fs := &fixtureServer{hits: make(map[string]*int64)}
	for path := range pages {
		fs.hits[path] = new(int64)
	}

	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		atomic.AddInt64(fs.hits[r.URL.Path], 1)
		w.Write([]byte(body))
	}))
	t.Cleanup(fs.Close)

	return fs
}

func (fs *fixtureServer) hitCount(path string) int64 {
	c, ok := fs.hits[path]
	if !ok {
		return 0
	}
	return atomic.LoadInt64(c)
}

const testFolderName = "Tesla_Model3_LR_2022_Panasonic3_Dual_Dual_Stock_Sport"

// testIndexPages is a two-level directory index with one classifiable
// folder, one malformed folder and a csv in each.
func testIndexPages() map[string]string {
	return map[string]string{
		"/smt/": `<html><body><pre>
<a href="../">Parent</a>
<a href="?C=N;O=D">Name</a>
<a href="` + testFolderName + `/">` + testFolderName + `/</a>
<a href="BadName/">BadName/</a>
</pre></body></html>`,
		"/smt/" + testFolderName + "/": `<html><body><pre>
<a href="../">Parent</a>
<a href="run1.csv">run1.csv</a>
</pre></body></html>`,
		"/smt/" + testFolderName + "/run1.csv": "SOC,Cell temp mid,Speed,Battery power\n20,25,10,5\n21,26,20,7\n",
		"/smt/BadName/": `<html><body><pre>
<a href="notes.csv">notes.csv</a>
</pre></body></html>`,
		"/smt/BadName/notes.csv": "Speed\n10\n",
	}
}
