package app

import (
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/eivissacopter/battdash/models"
)

// Extractor computes per-file metadata summaries and caches them through
// the MetaStore. A cache hit is returned unconditionally; only the
// crawl layer has a time based expiry.
type Extractor struct {
	Store  *MetaStore
	Client *http.Client
}

func NewExtractor(store *MetaStore) *Extractor {
	return &Extractor{Store: store, Client: http.DefaultClient}
}

// GetOrCompute returns the cached summary for a file URL, fetching and
// computing it on first access. Files lacking the required columns are
// cached with null summary values so they are skipped, not refetched.
// Transport failures are returned without caching; the next interaction
// cycle retries naturally.
func (e *Extractor) GetOrCompute(fileURL string) (*models.FileMetadata, error) {
	meta, ok, err := e.Store.Get(fileURL)
	if err != nil {
		return nil, err
	}
	if ok {
		return meta, nil
	}

	resp, err := e.Client.Get(fileURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", fileURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch %s: unexpected status %d", fileURL, resp.StatusCode)
	}

	frame, err := ParseTable(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", fileURL, err)
	}

	meta = Summarize(fileURL, frame)
	if err := e.Store.Put(meta); err != nil {
		return nil, fmt.Errorf("failed to persist metadata for %s: %w", fileURL, err)
	}

	return meta, nil
}

// Summarize builds the cached record for one parsed file: the headers
// present plus the first row where both required readings are valid
// after fill and bounds cleaning. Missing columns or no valid row leave
// the summary values null.
func Summarize(fileURL string, frame *models.SeriesFrame) *models.FileMetadata {
	meta := &models.FileMetadata{
		URL:       fileURL,
		Headers:   frame.Headers,
		FetchedAt: time.Now(),
	}

	if !frame.HasColumn(ColSOC) || !frame.HasColumn(ColCellTemp) {
		return meta
	}

	CleanFrame(frame)

	socs := frame.Column(ColSOC)
	temps := frame.Column(ColCellTemp)
	for i := 0; i < frame.Rows; i++ {
		if math.IsNaN(socs[i]) || math.IsNaN(temps[i]) {
			continue
		}
		soc, temp := socs[i], temps[i]
		meta.SOC = &soc
		meta.CellTemp = &temp
		break
	}

	return meta
}
