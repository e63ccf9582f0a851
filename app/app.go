package app

import (
	"fmt"
	"log"
)

// Run performs a one-shot crawl and classification pass, optionally
// warming the metadata cache for every discovered data file.
func Run(configPath string, warm bool) error {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return err
	}

	logger, err := NewCrawlLogger(cfg.Telemetry.CacheDBPath)
	if err != nil {
		return err
	}
	defer logger.Close()

	logger.Log("Crawling %s (max depth %d)", cfg.Telemetry.BaseURL, cfg.Telemetry.MaxDepth)

	crawler := NewCrawler(cfg.Telemetry.BaseURL, cfg.Telemetry.MaxDepth)
	tree, err := crawler.Crawl()
	if err != nil {
		return fmt.Errorf("crawl failed: %w", err)
	}

	entries, stats := ClassifyTree(tree)
	logger.Log("Folders: %d, classified: %d, excluded: %d, files: %d",
		stats.Folders, stats.Classified, stats.Excluded, stats.Files)

	if !warm {
		return nil
	}

	store, err := OpenMetaStore(cfg.Telemetry.CacheDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	extractor := NewExtractor(store)
	warmed, failed := 0, 0
	for _, entry := range entries {
		for _, leaf := range entry.Node.Leaves() {
			if _, err := extractor.GetOrCompute(leaf.URL); err != nil {
				log.Printf("Warning: %v", err)
				failed++
				continue
			}
			warmed++
		}
	}
	logger.Log("Metadata cache warmed: %d files, %d failed", warmed, failed)

	return nil
}
