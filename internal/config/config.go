// Package config handles harvester configuration and data directory layout.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/arxradar/arxradar/internal/arxiv"
	"github.com/arxradar/arxradar/internal/category"
	"github.com/arxradar/arxradar/internal/fetch"
)

// File and directory names inside the data directory.
const (
	ConfigFile     = "config.json"
	PapersDir      = "papers"
	IndexFile      = "index.json"
	CategoriesFile = "categories.yaml"
	QueriesFile    = "queries.yaml"
	BlockListFile  = "blocklist.json"
	SavedListFile  = "savedlist.json"
	CacheDir       = "cache"
	CacheFile      = "papers.db"
)

// Config holds tool configuration. Zero values take the documented defaults,
// so a partial config.json is fine.
type Config struct {
	// DataDir is the root of all persisted state. Not read from the config
	// file itself; set from the CLI flag or ARXRADAR_DATA.
	DataDir string `json:"-"`

	// RequestDelayMS is the minimum spacing between arXiv requests.
	RequestDelayMS int `json:"request_delay_ms,omitempty"`

	// PageSize is the number of results requested per API call.
	PageSize int `json:"page_size,omitempty"`

	// MaxResultsPerQuery caps each topic query's accumulated records.
	// Zero means unlimited.
	MaxResultsPerQuery int `json:"max_results_per_query,omitempty"`

	// KeywordThreshold is the minimum keyword matches for a category label.
	KeywordThreshold int `json:"keyword_threshold,omitempty"`

	// BaseURL overrides the arXiv API endpoint (for testing).
	BaseURL string `json:"base_url,omitempty"`
}

// Load reads config.json from the data directory, then applies environment
// overrides and defaults. A missing config file is not an error.
func Load(dataDir string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(filepath.Join(dataDir, ConfigFile))
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg.DataDir = dataDir

	applyEnv(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("ARXRADAR_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("ARXRADAR_REQUEST_DELAY_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			cfg.RequestDelayMS = ms
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.RequestDelayMS == 0 {
		cfg.RequestDelayMS = int(arxiv.DefaultRequestDelay / time.Millisecond)
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = fetch.DefaultPageSize
	}
	if cfg.KeywordThreshold < 1 {
		cfg.KeywordThreshold = category.DefaultThreshold
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = arxiv.BaseURL
	}
}

// RequestDelay returns the inter-request delay as a duration.
func (c *Config) RequestDelay() time.Duration {
	return time.Duration(c.RequestDelayMS) * time.Millisecond
}

// PapersPath returns the year-partition directory.
func (c *Config) PapersPath() string {
	return filepath.Join(c.DataDir, PapersDir)
}

// IndexPath returns the derived index file path.
func (c *Config) IndexPath() string {
	return filepath.Join(c.DataDir, IndexFile)
}

// CategoriesPath returns the user category definitions file path.
func (c *Config) CategoriesPath() string {
	return filepath.Join(c.DataDir, CategoriesFile)
}

// QueriesPath returns the user query list file path.
func (c *Config) QueriesPath() string {
	return filepath.Join(c.DataDir, QueriesFile)
}

// BlockListPath returns the block-list file path.
func (c *Config) BlockListPath() string {
	return filepath.Join(c.DataDir, BlockListFile)
}

// SavedListPath returns the saved-list file path.
func (c *Config) SavedListPath() string {
	return filepath.Join(c.DataDir, SavedListFile)
}

// CachePath returns the SQLite query cache path, creating its directory.
func (c *Config) CachePath() (string, error) {
	dir := filepath.Join(c.DataDir, CacheDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating cache directory: %w", err)
	}
	return filepath.Join(dir, CacheFile), nil
}
