package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/arxradar/arxradar/internal/paper"
	_ "modernc.org/sqlite"
)

// Cache is an ephemeral SQLite mirror of the year partitions, used by the
// list and stats commands. The JSON partitions stay the source of truth;
// the cache file can be deleted at any time and rebuilt.
type Cache struct {
	db *sql.DB
}

// OpenCache opens or creates the query cache at the given path.
func OpenCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createCacheSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close closes the cache connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

func createCacheSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS papers (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			abstract TEXT,
			year INTEGER NOT NULL,
			published TEXT NOT NULL,
			updated TEXT,
			primary_category TEXT,
			abs_url TEXT,
			pdf_url TEXT,
			authors_json TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS paper_categories (
			paper_id TEXT NOT NULL REFERENCES papers(id) ON DELETE CASCADE,
			category TEXT NOT NULL,
			PRIMARY KEY (paper_id, category)
		);

		CREATE INDEX IF NOT EXISTS idx_papers_year ON papers(year);
		CREATE INDEX IF NOT EXISTS idx_paper_categories_category ON paper_categories(category);
	`
	_, err := db.Exec(schema)
	return err
}

// Rebuild repopulates the cache from the given partitions inside a single
// transaction.
func (c *Cache) Rebuild(partitions []Partition) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning rebuild: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM paper_categories`); err != nil {
		return fmt.Errorf("clearing categories: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM papers`); err != nil {
		return fmt.Errorf("clearing papers: %w", err)
	}

	insertPaper, err := tx.Prepare(`
		INSERT INTO papers (id, title, abstract, year, published, updated,
			primary_category, abs_url, pdf_url, authors_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer insertPaper.Close()

	insertCategory, err := tx.Prepare(`
		INSERT INTO paper_categories (paper_id, category) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing category insert: %w", err)
	}
	defer insertCategory.Close()

	for _, part := range partitions {
		for i := range part.Papers {
			p := &part.Papers[i]
			authorsJSON, err := json.Marshal(p.Authors)
			if err != nil {
				return fmt.Errorf("encoding authors for %s: %w", p.ID, err)
			}
			if _, err := insertPaper.Exec(p.ID, p.Title, p.Abstract, p.Year,
				p.PublishedDate, p.UpdatedDate, p.PrimaryCategory,
				p.AbsURL, p.PDFURL, string(authorsJSON)); err != nil {
				return fmt.Errorf("inserting %s: %w", p.ID, err)
			}
			for _, cat := range p.Categories {
				if _, err := insertCategory.Exec(p.ID, cat); err != nil {
					return fmt.Errorf("inserting category for %s: %w", p.ID, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing rebuild: %w", err)
	}
	return nil
}

// Filter narrows List results.
type Filter struct {
	Year     int
	Category string
	Limit    int
}

// List returns cached papers matching the filter, newest first.
func (c *Cache) List(f Filter) ([]paper.Paper, error) {
	var (
		where []string
		args  []any
	)
	query := `SELECT p.id, p.title, p.abstract, p.year, p.published, p.updated,
		p.primary_category, p.abs_url, p.pdf_url, p.authors_json FROM papers p`

	if f.Category != "" {
		query += ` JOIN paper_categories pc ON pc.paper_id = p.id`
		where = append(where, `pc.category = ?`)
		args = append(args, f.Category)
	}
	if f.Year != 0 {
		where = append(where, `p.year = ?`)
		args = append(args, f.Year)
	}
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY p.published DESC`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying cache: %w", err)
	}
	defer rows.Close()

	var papers []paper.Paper
	for rows.Next() {
		var p paper.Paper
		var authorsJSON string
		if err := rows.Scan(&p.ID, &p.Title, &p.Abstract, &p.Year,
			&p.PublishedDate, &p.UpdatedDate, &p.PrimaryCategory,
			&p.AbsURL, &p.PDFURL, &authorsJSON); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if err := json.Unmarshal([]byte(authorsJSON), &p.Authors); err != nil {
			return nil, fmt.Errorf("decoding authors for %s: %w", p.ID, err)
		}
		papers = append(papers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return papers, nil
}

// YearCount is one row of per-year totals.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// CategoryCount is one row of per-category totals.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Stats summarizes the cache contents.
type Stats struct {
	TotalPapers int             `json:"total_papers"`
	ByYear      []YearCount     `json:"by_year"`
	ByCategory  []CategoryCount `json:"by_category"`
}

// GetStats computes totals per year and per category.
func (c *Cache) GetStats() (Stats, error) {
	var stats Stats

	if err := c.db.QueryRow(`SELECT COUNT(*) FROM papers`).Scan(&stats.TotalPapers); err != nil {
		return stats, fmt.Errorf("counting papers: %w", err)
	}

	rows, err := c.db.Query(`SELECT year, COUNT(*) FROM papers GROUP BY year ORDER BY year DESC`)
	if err != nil {
		return stats, fmt.Errorf("querying year totals: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var yc YearCount
		if err := rows.Scan(&yc.Year, &yc.Count); err != nil {
			return stats, fmt.Errorf("scanning year total: %w", err)
		}
		stats.ByYear = append(stats.ByYear, yc)
	}
	if err := rows.Err(); err != nil {
		return stats, fmt.Errorf("iterating year totals: %w", err)
	}

	catRows, err := c.db.Query(`SELECT category, COUNT(*) FROM paper_categories GROUP BY category ORDER BY COUNT(*) DESC, category`)
	if err != nil {
		return stats, fmt.Errorf("querying category totals: %w", err)
	}
	defer catRows.Close()
	for catRows.Next() {
		var cc CategoryCount
		if err := catRows.Scan(&cc.Category, &cc.Count); err != nil {
			return stats, fmt.Errorf("scanning category total: %w", err)
		}
		stats.ByCategory = append(stats.ByCategory, cc)
	}
	if err := catRows.Err(); err != nil {
		return stats, fmt.Errorf("iterating category totals: %w", err)
	}

	return stats, nil
}
