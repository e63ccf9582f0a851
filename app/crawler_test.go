package app

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestCrawl_BuildsTree(t *testing.T) {
	fs := newFixtureServer(t, testIndexPages())

	crawler := NewCrawler(fs.URL+"/smt", 3)
	tree, err := crawler.Crawl()
	if err != nil {
		t.Fatalf("Crawl failed: %v", err)
	}

	if len(tree.Children) != 2 {
		t.Fatalf("expected 2 children at root, got %d", len(tree.Children))
	}

	t.Run("listing order preserved", func(t *testing.T) {
		if tree.Children[0].Name != testFolderName {
			t.Errorf("expected first child %q, got %q", testFolderName, tree.Children[0].Name)
		}
		if tree.Children[1].Name != "BadName" {
			t.Errorf("expected second child BadName, got %q", tree.Children[1].Name)
		}
	})

	t.Run("navigation anchors skipped", func(t *testing.T) {
		for _, c := range tree.Children {
			if c.Name == ".." || c.Name == "?C=N;O=D" {
				t.Errorf("navigation anchor leaked into tree: %q", c.Name)
			}
		}
	})

	t.Run("leaves hold resolved urls", func(t *testing.T) {
		leaves := tree.Leaves()
		if len(leaves) != 2 {
			t.Fatalf("expected 2 leaves, got %d", len(leaves))
		}
		want := fs.URL + "/smt/" + testFolderName + "/run1.csv"
		if leaves[0].URL != want {
			t.Errorf("expected leaf url %q, got %q", want, leaves[0].URL)
		}
		if !leaves[0].IsLeaf {
			t.Error("expected IsLeaf on csv node")
		}
	})
}

func TestCrawl_PercentDecodedOnce(t *testing.T) {
	// Folder whose on-disk name contains a literal percent escape; the
	// index href encodes the % sign, so one decode must restore the raw
	// name without collapsing the inner escape.
	fs := newFixtureServer(t, map[string]string{
		"/smt/":                  `<a href="Tesla_Model3_LR_2022_LFP_Single_Single_Stock%252B_Chill/">x</a>`,
		"/smt/Tesla_Model3_LR_2022_LFP_Single_Single_Stock%2B_Chill/": `<a href="run.csv">run.csv</a>`,
	})

	crawler := NewCrawler(fs.URL+"/smt", 3)
	tree, err := crawler.Crawl()
	if err != nil {
		t.Fatalf("Crawl failed: %v", err)
	}
	if len(tree.Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(tree.Children))
	}

	got := tree.Children[0].Name
	want := "Tesla_Model3_LR_2022_LFP_Single_Single_Stock%2B_Chill"
	if got != want {
		t.Errorf("expected single-decoded name %q, got %q", want, got)
	}
}

func TestCrawl_FailedDirectoryIsEmptyNotFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/smt/":
			w.Write([]byte(`<a href="good/"></a><a href="broken/"></a>`))
		case "/smt/good/":
			w.Write([]byte(`<a href="run.csv"></a>`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	crawler := NewCrawler(srv.URL+"/smt", 3)
	tree, err := crawler.Crawl()
	if err != nil {
		t.Fatalf("crawl must not abort on a failed subdirectory: %v", err)
	}

	if len(tree.Children) != 2 {
		t.Fatalf("expected both subdirectories recorded, got %d", len(tree.Children))
	}
	var broken, good int
	for _, c := range tree.Children {
		switch c.Name {
		case "broken":
			broken = len(c.Children)
		case "good":
			good = len(c.Children)
		}
	}
	if broken != 0 {
		t.Errorf("broken directory should be empty, got %d children", broken)
	}
	if good != 1 {
		t.Errorf("good directory should hold 1 file, got %d", good)
	}
}

func TestCrawl_MaxDepth(t *testing.T) {
	var deepFetched int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// "/a/b/" and deeper lie beyond max depth 1
		if len(r.URL.Path) > len("/a/") {
			atomic.AddInt64(&deepFetched, 1)
		}
		w.Write([]byte(`<a href="a/"></a><a href="b/"></a>`))
	}))
	defer srv.Close()

	crawler := NewCrawler(srv.URL, 1)
	if _, err := crawler.Crawl(); err != nil {
		t.Fatalf("Crawl failed: %v", err)
	}

	if n := atomic.LoadInt64(&deepFetched); n != 0 {
		t.Errorf("expected no fetches beyond max depth, got %d", n)
	}
}

func TestCrawlCache_TTL(t *testing.T) {
	fs := newFixtureServer(t, testIndexPages())
	crawler := NewCrawler(fs.URL+"/smt", 3)

	cache := NewCrawlCache(crawler, time.Minute)

	first, err := cache.Tree()
	if err != nil {
		t.Fatalf("Tree failed: %v", err)
	}
	second, err := cache.Tree()
	if err != nil {
		t.Fatalf("Tree failed: %v", err)
	}

	if first != second {
		t.Error("expected memoized tree within TTL")
	}
	if n := fs.hitCount("/smt/"); n != 1 {
		t.Errorf("expected 1 root fetch within TTL, got %d", n)
	}

	cache.Refresh()
	if _, err := cache.Tree(); err != nil {
		t.Fatalf("Tree after Refresh failed: %v", err)
	}
	if n := fs.hitCount("/smt/"); n != 2 {
		t.Errorf("expected re-crawl after Refresh, got %d root fetches", n)
	}
}
