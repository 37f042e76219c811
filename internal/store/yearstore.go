// Package store handles data persistence: year-partitioned paper files,
// the derived cross-year index, curation lists, and the ephemeral SQLite
// query cache.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/arxradar/arxradar/internal/paper"
)

// Partition is the durable storage unit for one publication year.
// Count is denormalized and always equals len(Papers).
type Partition struct {
	Year   int           `json:"year"`
	Count  int           `json:"count"`
	Papers []paper.Paper `json:"papers"`
}

// YearStore persists per-year paper collections as JSON files, one per
// year, under a single directory.
type YearStore struct {
	dir string
}

// NewYearStore creates a store rooted at the given directory, creating it
// if needed.
func NewYearStore(dir string) (*YearStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating partition directory: %w", err)
	}
	return &YearStore{dir: dir}, nil
}

// Path returns the partition file path for a year.
func (s *YearStore) Path(year int) string {
	return filepath.Join(s.dir, fmt.Sprintf("%d.json", year))
}

// Load reads the partition for a year. A missing partition returns an
// empty slice, not an error.
func (s *YearStore) Load(year int) ([]paper.Paper, error) {
	data, err := os.ReadFile(s.Path(year))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading partition %d: %w", year, err)
	}

	var part Partition
	if err := json.Unmarshal(data, &part); err != nil {
		return nil, fmt.Errorf("parsing partition %d: %w", year, err)
	}
	return part.Papers, nil
}

// Save persists the full partition for a year. The write goes to a temp
// file in the same directory followed by a rename, so a crash mid-write
// never corrupts the previous valid partition.
func (s *YearStore) Save(year int, papers []paper.Paper) error {
	part := Partition{Year: year, Count: len(papers), Papers: papers}
	if part.Papers == nil {
		part.Papers = []paper.Paper{}
	}

	data, err := json.MarshalIndent(part, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding partition %d: %w", year, err)
	}
	if err := writeFileAtomic(s.Path(year), data); err != nil {
		return fmt.Errorf("writing partition %d: %w", year, err)
	}
	return nil
}

// Years lists the years that have a partition file, ascending.
func (s *YearStore) Years() ([]int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing partitions: %w", err)
	}

	var years []int
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		year, err := strconv.Atoi(strings.TrimSuffix(name, ".json"))
		if err != nil {
			continue
		}
		years = append(years, year)
	}
	sort.Ints(years)
	return years, nil
}

// LoadAll reads every partition, ordered by year ascending.
func (s *YearStore) LoadAll() ([]Partition, error) {
	years, err := s.Years()
	if err != nil {
		return nil, err
	}

	parts := make([]Partition, 0, len(years))
	for _, year := range years {
		papers, err := s.Load(year)
		if err != nil {
			return nil, err
		}
		parts = append(parts, Partition{Year: year, Count: len(papers), Papers: papers})
	}
	return parts, nil
}

// writeFileAtomic writes data to path via a temp file and rename.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}

	success = true
	return nil
}
