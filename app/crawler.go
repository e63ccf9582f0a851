package app

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/eivissacopter/battdash/models"

	"golang.org/x/net/html"
)

const dataFileExt = ".csv"

// Crawler walks a remote HTTP directory index and builds an owned
// DirectoryNode tree. Anchors ending in "/" are subdirectories, anchors
// ending in the data file extension are leaves. A failed fetch leaves the
// affected node empty and never aborts the whole crawl.
type Crawler struct {
	BaseURL  string
	MaxDepth int
	Client   *http.Client
}

func NewCrawler(baseURL string, maxDepth int) *Crawler {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Crawler{
		BaseURL:  baseURL,
		MaxDepth: maxDepth,
		Client:   http.DefaultClient,
	}
}

func (c *Crawler) Crawl() (*models.DirectoryNode, error) {
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %s: %w", c.BaseURL, err)
	}

	root := &models.DirectoryNode{Name: "/", URL: base.String()}

	type workItem struct {
		node  *models.DirectoryNode
		depth int
	}

	// Worklist instead of mutual recursion; each node is owned by its
	// parent, the listing order of anchors is preserved.
	stack := []workItem{{node: root, depth: 0}}
	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if item.depth > c.MaxDepth {
			continue
		}

		hrefs, err := c.listDirectory(item.node.URL)
		if err != nil {
			log.Printf("Warning: skipping %s: %v", item.node.URL, err)
			continue
		}
		if len(hrefs) == 0 {
			log.Printf("Warning: no directories or files found at %s", item.node.URL)
			continue
		}

		nodeURL, err := url.Parse(item.node.URL)
		if err != nil {
			log.Printf("Warning: unparseable node url %s: %v", item.node.URL, err)
			continue
		}

		for _, href := range hrefs {
			ref, err := nodeURL.Parse(href)
			if err != nil {
				continue
			}

			child := &models.DirectoryNode{
				Name: decodeSegment(href),
				URL:  ref.String(),
			}

			if strings.HasSuffix(href, "/") {
				item.node.Children = append(item.node.Children, child)
				stack = append(stack, workItem{node: child, depth: item.depth + 1})
			} else {
				child.IsLeaf = true
				item.node.Children = append(item.node.Children, child)
			}
		}
	}

	return root, nil
}

// listDirectory fetches one index page and returns the hrefs of interest
// in document order: subdirectories (trailing "/") and data files.
func (c *Crawler) listDirectory(pageURL string) ([]string, error) {
	resp, err := c.Client.Get(pageURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse index page: %w", err)
	}

	var hrefs []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, a := range n.Attr {
				if a.Key != "href" {
					continue
				}
				if isListingHref(a.Val) {
					hrefs = append(hrefs, a.Val)
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	return hrefs, nil
}

// isListingHref keeps relative subdirectory and data file anchors and
// drops navigation links (parent dir, sort links, absolute URLs).
func isListingHref(href string) bool {
	if href == "" || href == "/" || href == "./" || href == "../" {
		return false
	}
	if strings.HasPrefix(href, "?") || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "/") {
		return false
	}
	if strings.Contains(href, "://") {
		return false
	}
	return strings.HasSuffix(href, "/") || strings.HasSuffix(href, dataFileExt)
}

// decodeSegment turns an href into a display name, percent-decoding
// exactly once. The node URL keeps the server's encoding so that fetches
// and cache keys stay stable.
func decodeSegment(href string) string {
	name := strings.TrimSuffix(href, "/")
	if decoded, err := url.PathUnescape(name); err == nil {
		return decoded
	}
	return name
}

// CrawlCache memoizes a whole crawl for a coarse TTL. There is no finer
// invalidation; Refresh drops the tree and the next Tree call re-crawls.
type CrawlCache struct {
	crawler *Crawler
	ttl     time.Duration

	mu        sync.Mutex
	tree      *models.DirectoryNode
	fetchedAt time.Time
}

func NewCrawlCache(crawler *Crawler, ttl time.Duration) *CrawlCache {
	return &CrawlCache{crawler: crawler, ttl: ttl}
}

func (cc *CrawlCache) Tree() (*models.DirectoryNode, error) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	if cc.tree != nil && time.Since(cc.fetchedAt) < cc.ttl {
		return cc.tree, nil
	}

	tree, err := cc.crawler.Crawl()
	if err != nil {
		return nil, err
	}
	cc.tree = tree
	cc.fetchedAt = time.Now()
	return tree, nil
}

func (cc *CrawlCache) Refresh() {
	cc.mu.Lock()
	cc.tree = nil
	cc.mu.Unlock()
}
