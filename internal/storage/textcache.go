// Package storage caches text extracted from PDFs.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Cache backends.
const (
	BackendDir    = "dir"
	BackendSQLite = "sqlite"
)

// DBFile is the SQLite cache file name inside the cache directory.
const DBFile = "texts.db"

// ValidBackends lists the supported cache_backend values.
var ValidBackends = []string{BackendDir, BackendSQLite}

// TextCache stores extracted document text keyed by the paper's text cache path.
type TextCache interface {
	// Get returns the cached text. ok is false on a miss.
	Get(key string) (text string, ok bool, err error)
	// Put stores text extracted from pdfPath under key.
	Put(key, pdfPath, text string) error
	// Stats summarizes the cache contents.
	Stats() (CacheStats, error)
	// Clear removes all cached text and returns how many entries were removed.
	Clear() (int, error)
	Close() error
}

// CacheStats describes a text cache.
type CacheStats struct {
	Backend  string `json:"backend"`
	Location string `json:"location"`
	Entries  int    `json:"entries"`
	Bytes    int64  `json:"bytes"`
}

// CachePath returns the cache key for a PDF: its base name with a .txt
// extension inside cacheDir. The key is the same for both backends.
func CachePath(cacheDir, pdfPath string) string {
	base := filepath.Base(pdfPath)
	return filepath.Join(cacheDir, strings.TrimSuffix(base, filepath.Ext(base))+".txt")
}

// Open opens the cache for backend rooted at cacheDir.
func Open(backend, cacheDir string) (TextCache, error) {
	switch backend {
	case "", BackendDir:
		return NewDirCache(cacheDir), nil
	case BackendSQLite:
		if err := os.MkdirAll(cacheDir, 0755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
		return OpenSQLiteCache(filepath.Join(cacheDir, DBFile))
	default:
		return nil, fmt.Errorf("invalid cache backend %q (valid: %v)", backend, ValidBackends)
	}
}

// DirCache keeps one .txt file per PDF. The key is the file path.
type DirCache struct {
	dir string
}

// NewDirCache returns a directory cache. The directory is created on first Put.
func NewDirCache(dir string) *DirCache {
	return &DirCache{dir: dir}
}

// Get reads the cached text file.
func (c *DirCache) Get(key string) (string, bool, error) {
	data, err := os.ReadFile(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("reading cached text: %w", err)
	}
	return string(data), true, nil
}

// Put writes the text file, creating its directory if needed.
func (c *DirCache) Put(key, pdfPath, text string) error {
	if err := os.MkdirAll(filepath.Dir(key), 0755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}
	if err := os.WriteFile(key, []byte(text), 0644); err != nil {
		return fmt.Errorf("writing cached text: %w", err)
	}
	return nil
}

// Stats counts .txt files in the cache directory.
func (c *DirCache) Stats() (CacheStats, error) {
	stats := CacheStats{Backend: BackendDir, Location: c.dir}
	files, err := c.textFiles()
	if err != nil {
		return stats, err
	}
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			return stats, fmt.Errorf("stat %s: %w", f, err)
		}
		stats.Entries++
		stats.Bytes += info.Size()
	}
	return stats, nil
}

// Clear deletes the .txt files in the cache directory. Other files are left alone.
func (c *DirCache) Clear() (int, error) {
	files, err := c.textFiles()
	if err != nil {
		return 0, err
	}
	for i, f := range files {
		if err := os.Remove(f); err != nil {
			return i, fmt.Errorf("removing %s: %w", f, err)
		}
	}
	return len(files), nil
}

// Close is a no-op.
func (c *DirCache) Close() error {
	return nil
}

func (c *DirCache) textFiles() ([]string, error) {
	files, err := filepath.Glob(filepath.Join(c.dir, "*.txt"))
	if err != nil {
		return nil, fmt.Errorf("listing cache directory: %w", err)
	}
	return files, nil
}
