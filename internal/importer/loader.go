package importer

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/matsen/citegraph/internal/annotation"
	"github.com/matsen/citegraph/internal/reference"
	"github.com/matsen/citegraph/internal/sanitize"
	"github.com/matsen/citegraph/internal/storage"
)

// MaxIDSuffix bounds the _2, _3, ... disambiguation of colliding cite ids.
const MaxIDSuffix = 10000

// AnonymousAuthor stands in for a first author with no ASCII letters, so the
// cite id is never a bare year.
const AnonymousAuthor = "anon"

// Loader errors.
var (
	ErrMissingAuthor = errors.New("missing author")
	ErrInvalidYear   = errors.New("invalid publication year")
	ErrIDExhausted   = errors.New("no unique cite id available")
)

// RowError identifies the bibliography row that failed to load.
type RowError struct {
	Row   int // 1-based, not counting the header
	Title string
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d (%q): %v", e.Row, e.Title, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// LoaderOptions configures a Loader.
type LoaderOptions struct {
	CacheDir     string // directory for extracted text; see storage.CachePath
	PDFRoot      string // prefix for relative attachment paths
	PragmaPrefix string // directive prefix in notes; empty means annotation.DefaultPrefix
	Logger       *zap.Logger
}

// Loader converts bibliography rows into a reference.Library.
type Loader struct {
	opts   LoaderOptions
	parser *annotation.Parser
	logger *zap.Logger
}

// NewLoader creates a loader.
func NewLoader(opts LoaderOptions) *Loader {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		opts:   opts,
		parser: annotation.NewParser(opts.PragmaPrefix),
		logger: logger,
	}
}

// Load builds the library from rows in order and links replacements.
//
// Rows without a publication year are skipped with a warning. A row with an
// empty author, an unparsable year, or a bad directive fails the whole load.
func (l *Loader) Load(rows []Row) (*reference.Library, error) {
	lib := reference.NewLibrary()

	for i, row := range rows {
		paper, err := l.loadRow(lib, row)
		if err != nil {
			return nil, &RowError{Row: i + 1, Title: row.Get(FieldTitle), Err: err}
		}
		if paper == nil {
			l.logger.Warn("skipping entry without publication year",
				zap.Int("row", i+1),
				zap.String("title", row.Get(FieldTitle)))
			continue
		}
		if err := lib.Add(paper); err != nil {
			return nil, &RowError{Row: i + 1, Title: paper.Title, Err: err}
		}
		if !paper.HasPDF() {
			l.logger.Warn("no PDF attachment, excluded from matching", zap.String("cite_id", paper.CiteID))
		}
	}

	for _, d := range lib.LinkReplacements() {
		l.logger.Warn("replaces directive names unknown paper",
			zap.String("cite_id", d.CiteID),
			zap.String("target", d.Target))
	}

	return lib, nil
}

// loadRow converts one row. It returns nil, nil for rows without a year.
func (l *Loader) loadRow(lib *reference.Library, row Row) (*reference.Paper, error) {
	authors := splitList(row.Get(FieldAuthor))
	if len(authors) == 0 {
		return nil, ErrMissingAuthor
	}

	yearField := strings.TrimSpace(row.Get(FieldYear))
	if yearField == "" {
		return nil, nil
	}
	year, err := strconv.Atoi(yearField)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidYear, yearField)
	}

	surname := sanitize.FirstToken(authors[0])
	if surname == "" {
		l.logger.Warn("first author has no letters, using placeholder in cite id",
			zap.String("author", authors[0]),
			zap.String("placeholder", AnonymousAuthor),
			zap.String("title", row.Get(FieldTitle)))
		surname = AnonymousAuthor
	}
	id, err := uniqueID(lib, surname+yearField)
	if err != nil {
		return nil, err
	}

	notes, err := l.parser.Parse(row.Get(FieldNotes))
	if err != nil {
		return nil, err
	}

	title := row.Get(FieldTitle)
	paper := &reference.Paper{
		CiteID:         id,
		Title:          title,
		SanitizedTitle: sanitize.Text(title),
		Year:           year,
		Authors:        authors,
		PDFPath:        l.pdfPath(row.Get(FieldAttachments)),
		NodeColor:      reference.ColorDefault,
		Tooltip:        notes.Tooltip,
	}
	if strings.TrimSpace(row.Get(FieldNotes)) == "" {
		paper.NodeColor = reference.ColorNoNotes
	}
	if paper.HasPDF() {
		paper.TextCachePath = storage.CachePath(l.opts.CacheDir, paper.PDFPath)
	} else {
		paper.NodeColor = reference.ColorNoPDF
	}

	annotation.ApplyAll(paper, notes.Directives)
	return paper, nil
}

// pdfPath returns the first .pdf entry of a semicolon-separated attachment list.
func (l *Loader) pdfPath(attachments string) string {
	for _, path := range splitList(attachments) {
		if !strings.HasSuffix(strings.ToLower(path), ".pdf") {
			continue
		}
		if l.opts.PDFRoot != "" && !filepath.IsAbs(path) {
			return filepath.Join(l.opts.PDFRoot, path)
		}
		return path
	}
	return ""
}

// uniqueID returns base, or base_2, base_3, ... whichever is first unused.
func uniqueID(lib *reference.Library, base string) (string, error) {
	if !lib.Has(base) {
		return base, nil
	}
	for n := 2; n <= MaxIDSuffix; n++ {
		id := base + "_" + strconv.Itoa(n)
		if !lib.Has(id) {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrIDExhausted, base)
}

func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ";") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
