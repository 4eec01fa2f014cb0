package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"content-optimizer/internal/models"
)

// ErrStoreUnavailable unifies "file missing" and "file unreadable" for read
// paths that require existing data. Load itself recreates an empty database
// when the file does not exist, but never overwrites a corrupt one.
var ErrStoreUnavailable = errors.New("video store unavailable")

// VideoStore is the niche-keyed JSON document database. The whole mapping
// is read and rewritten on every operation; last writer wins.
type VideoStore struct {
	dataDir string
	dbFile  string
}

// NewVideoStore creates the data directory if needed and returns a store
// backed by <dataDir>/competitor_database.json.
func NewVideoStore(dataDir string) (*VideoStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &VideoStore{
		dataDir: dataDir,
		dbFile:  filepath.Join(dataDir, "competitor_database.json"),
	}, nil
}

// Load returns the full niche-keyed mapping. A missing file yields a fresh
// structure with the fixed niche keys; a present-but-undecodable file is
// reported as ErrStoreUnavailable so it is never silently replaced.
func (s *VideoStore) Load() (map[models.Niche][]models.VideoRecord, error) {
	file, err := os.Open(s.dbFile)
	if err != nil {
		if os.IsNotExist(err) {
			return emptyDatabase(), nil
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer file.Close()

	var db map[models.Niche][]models.VideoRecord
	if err := json.NewDecoder(file).Decode(&db); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrStoreUnavailable, s.dbFile, err)
	}

	// Back-fill any niche key a hand-edited file may have dropped.
	for _, n := range models.Niches {
		if _, ok := db[n]; !ok {
			db[n] = []models.VideoRecord{}
		}
	}
	return db, nil
}

// Save rewrites the entire database file.
func (s *VideoStore) Save(db map[models.Niche][]models.VideoRecord) error {
	file, err := os.Create(s.dbFile)
	if err != nil {
		return fmt.Errorf("failed to create database file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(db); err != nil {
		return fmt.Errorf("failed to encode database: %w", err)
	}
	return nil
}

// Append stamps the record with the current time, pushes it onto the
// niche's list and saves immediately, so batch progress survives a kill.
func (s *VideoStore) Append(niche models.Niche, record models.VideoRecord) error {
	db, err := s.Load()
	if err != nil {
		return err
	}
	record.DateAdded = time.Now().Format("2006-01-02 15:04:05")
	db[niche] = append(db[niche], record)
	return s.Save(db)
}

// Videos returns the stored records for one niche, in insertion order.
func (s *VideoStore) Videos(niche models.Niche) ([]models.VideoRecord, error) {
	db, err := s.Load()
	if err != nil {
		return nil, err
	}
	return db[niche], nil
}

// VideoIDs returns the set of video IDs already stored for a niche. Used
// by the fetch layer for duplicate filtering; the store itself enforces no
// uniqueness.
func (s *VideoStore) VideoIDs(niche models.Niche) (map[string]bool, error) {
	videos, err := s.Videos(niche)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]bool, len(videos))
	for _, v := range videos {
		if v.VideoID != "" {
			ids[v.VideoID] = true
		}
	}
	return ids, nil
}

// SaveDNA caches a computed ContentDNA document for its niche, stamping the
// generation time if the caller left it empty.
func (s *VideoStore) SaveDNA(dna *models.ContentDNA) (string, error) {
	if dna.GeneratedAt == "" {
		dna.GeneratedAt = time.Now().Format("2006-01-02 15:04:05")
	}
	path := s.DNAPath(dna.Niche)
	if err := writeJSON(path, dna); err != nil {
		return "", err
	}
	return path, nil
}

// LoadDNA returns the cached analysis for a niche, or ErrStoreUnavailable
// when none has been computed yet.
func (s *VideoStore) LoadDNA(niche models.Niche) (*models.ContentDNA, error) {
	data, err := os.ReadFile(s.DNAPath(niche))
	if err != nil {
		return nil, fmt.Errorf("%w: no content DNA analysis for %s", ErrStoreUnavailable, niche)
	}
	var dna models.ContentDNA
	if err := json.Unmarshal(data, &dna); err != nil {
		return nil, fmt.Errorf("%w: decode DNA for %s: %v", ErrStoreUnavailable, niche, err)
	}
	return &dna, nil
}

// DNAPath is where the niche's cached analysis lives.
func (s *VideoStore) DNAPath(niche models.Niche) string {
	return filepath.Join(s.dataDir, fmt.Sprintf("enhanced_analysis_%s.json", niche))
}

// WriteAnalysisFile saves a per-video or batch analysis document under the
// data directory and returns its path.
func (s *VideoStore) WriteAnalysisFile(name string, v any) (string, error) {
	path := filepath.Join(s.dataDir, name)
	if err := writeJSON(path, v); err != nil {
		return "", err
	}
	return path, nil
}

func writeJSON(path string, v any) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}

func emptyDatabase() map[models.Niche][]models.VideoRecord {
	db := make(map[models.Niche][]models.VideoRecord, len(models.Niches))
	for _, n := range models.Niches {
		db[n] = []models.VideoRecord{}
	}
	return db
}
