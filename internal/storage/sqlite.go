package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteCache stores extracted text in a single SQLite file.
type SQLiteCache struct {
	db   *sql.DB
	path string
}

// OpenSQLiteCache opens or creates a SQLite text cache at the given path.
func OpenSQLiteCache(path string) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteCache{db: db, path: path}, nil
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS texts (
			cache_key TEXT PRIMARY KEY,
			pdf_path TEXT NOT NULL,
			content TEXT NOT NULL,
			extracted_at TEXT NOT NULL
		);
	`
	_, err := db.Exec(schema)
	return err
}

// Get returns the cached text for key.
func (c *SQLiteCache) Get(key string) (string, bool, error) {
	var content string
	err := c.db.QueryRow(`SELECT content FROM texts WHERE cache_key = ?`, key).Scan(&content)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("querying cached text: %w", err)
	}
	return content, true, nil
}

// Put stores text under key, replacing any previous entry.
func (c *SQLiteCache) Put(key, pdfPath, text string) error {
	_, err := c.db.Exec(`
		INSERT OR REPLACE INTO texts (cache_key, pdf_path, content, extracted_at)
		VALUES (?, ?, ?, ?)
	`, key, pdfPath, text, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("storing cached text: %w", err)
	}
	return nil
}

// Stats counts cached entries and their total text length.
func (c *SQLiteCache) Stats() (CacheStats, error) {
	stats := CacheStats{Backend: BackendSQLite, Location: c.path}
	err := c.db.QueryRow(`SELECT COUNT(*), COALESCE(SUM(LENGTH(CAST(content AS BLOB))), 0) FROM texts`).
		Scan(&stats.Entries, &stats.Bytes)
	if err != nil {
		return stats, fmt.Errorf("counting cached texts: %w", err)
	}
	return stats, nil
}

// Clear deletes all cached texts.
func (c *SQLiteCache) Clear() (int, error) {
	res, err := c.db.Exec(`DELETE FROM texts`)
	if err != nil {
		return 0, fmt.Errorf("clearing texts table: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted texts: %w", err)
	}
	return int(n), nil
}

// Close closes the database connection.
func (c *SQLiteCache) Close() error {
	return c.db.Close()
}
