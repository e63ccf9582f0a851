package app

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/eivissacopter/battdash/models"

	_ "modernc.org/sqlite"
)

// MetaStore is the keyed persistence layer for per-file metadata. It has
// a single owner; the mutex covers the web server case where several
// requests compute metadata at once. Entries never expire, Clear drops
// everything.
type MetaStore struct {
	db *sql.DB
	mu sync.Mutex
}

func OpenMetaStore(dbPath string) (*MetaStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache db %s: %w", dbPath, err)
	}
	db.Exec(`PRAGMA journal_mode = WAL`)
	db.Exec(`PRAGMA busy_timeout = 5000`)

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate cache db: %w", err)
	}

	return &MetaStore{db: db}, nil
}

func (s *MetaStore) Close() error {
	return s.db.Close()
}

func (s *MetaStore) Get(url string) (*models.FileMetadata, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		headersJSON string
		soc         sql.NullFloat64
		cellTemp    sql.NullFloat64
		fetchedAt   int64
	)
	err := s.db.QueryRow(`
		SELECT headers, soc, cell_temp, fetched_at
		FROM file_meta WHERE url = ?
	`, url).Scan(&headersJSON, &soc, &cellTemp, &fetchedAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	meta := &models.FileMetadata{
		URL:       url,
		FetchedAt: time.Unix(fetchedAt, 0),
	}
	if err := json.Unmarshal([]byte(headersJSON), &meta.Headers); err != nil {
		return nil, false, fmt.Errorf("corrupt headers for %s: %w", url, err)
	}
	if soc.Valid {
		v := soc.Float64
		meta.SOC = &v
	}
	if cellTemp.Valid {
		v := cellTemp.Float64
		meta.CellTemp = &v
	}

	return meta, true, nil
}

func (s *MetaStore) Put(meta *models.FileMetadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	headersJSON, err := json.Marshal(meta.Headers)
	if err != nil {
		return err
	}
	if meta.Headers == nil {
		headersJSON = []byte("[]")
	}

	var soc, cellTemp interface{}
	if meta.SOC != nil {
		soc = *meta.SOC
	}
	if meta.CellTemp != nil {
		cellTemp = *meta.CellTemp
	}

	_, err = s.db.Exec(`
		INSERT INTO file_meta(url, headers, soc, cell_temp, fetched_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			headers=excluded.headers,
			soc=excluded.soc,
			cell_temp=excluded.cell_temp,
			fetched_at=excluded.fetched_at
	`, meta.URL, string(headersJSON), soc, cellTemp, meta.FetchedAt.Unix())
	return err
}

func (s *MetaStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM file_meta`)
	return err
}
