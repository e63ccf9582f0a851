package app

import (
	"compress/gzip"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// CrawlLogger writes crawl progress to stdout and a gzipped log file next
// to the cache database, so one-shot runs leave an inspectable trail.
type CrawlLogger struct {
	file      *os.File
	gzWriter  *gzip.Writer
	logger    *log.Logger
	startTime time.Time
	logPath   string
	mu        sync.Mutex
}

func NewCrawlLogger(cacheDBPath string) (*CrawlLogger, error) {
	logDir := filepath.Dir(cacheDBPath)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	logPath := filepath.Join(logDir, fmt.Sprintf("crawl_%s.log.gz", timestamp))

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	gzWriter := gzip.NewWriter(file)
	logger := log.New(io.MultiWriter(os.Stdout, gzWriter), "", log.Ldate|log.Ltime)

	cl := &CrawlLogger{
		file:      file,
		gzWriter:  gzWriter,
		logger:    logger,
		startTime: time.Now(),
		logPath:   logPath,
	}

	cl.Log("CRAWL LOG STARTED")
	cl.Log("Log file: %s", logPath)
	return cl, nil
}

func (cl *CrawlLogger) Log(format string, args ...interface{}) {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	cl.logger.Printf(format, args...)
}

func (cl *CrawlLogger) GetLogPath() string {
	return cl.logPath
}

func (cl *CrawlLogger) Close() error {
	cl.Log("Crawl completed in %v", time.Since(cl.startTime))

	if cl.gzWriter != nil {
		if err := cl.gzWriter.Close(); err != nil {
			return fmt.Errorf("failed to close gzip writer: %w", err)
		}
	}
	if cl.file != nil {
		return cl.file.Close()
	}
	return nil
}
