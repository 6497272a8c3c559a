// Package textsource supplies the full text of a paper's PDF as lines,
// serving from the text cache and extracting on a miss.
package textsource

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/matsen/citegraph/internal/reference"
	"github.com/matsen/citegraph/internal/storage"
)

// ErrNoPDF is returned when asked for text of a paper without a PDF attachment.
var ErrNoPDF = errors.New("paper has no PDF attachment")

// ExtractFunc extracts the full text of a PDF file.
type ExtractFunc func(pdfPath string) (string, error)

// ExtractionError reports a PDF that could not be turned into text.
type ExtractionError struct {
	CiteID  string
	PDFPath string
	Err     error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.CiteID, e.PDFPath, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Provider reads text from a cache, extracting and caching on a miss.
type Provider struct {
	cache   storage.TextCache
	extract ExtractFunc
	logger  *zap.Logger
}

// New creates a provider. A nil logger discards diagnostics.
func New(cache storage.TextCache, extract ExtractFunc, logger *zap.Logger) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{cache: cache, extract: extract, logger: logger}
}

// Lines returns the text of p's PDF split into lines. A cached empty file
// yields no lines and no error. Extraction failures are *ExtractionError.
func (s *Provider) Lines(p *reference.Paper) ([]string, error) {
	text, err := s.Text(p)
	if err != nil {
		return nil, err
	}
	return SplitLines(text), nil
}

// Text returns the full text of p's PDF.
func (s *Provider) Text(p *reference.Paper) (string, error) {
	if !p.HasPDF() {
		return "", fmt.Errorf("%s: %w", p.CiteID, ErrNoPDF)
	}

	text, ok, err := s.cache.Get(p.TextCachePath)
	if err != nil {
		return "", fmt.Errorf("%s: %w", p.CiteID, err)
	}
	if ok {
		s.logger.Debug("text cache hit", zap.String("cite_id", p.CiteID), zap.String("path", p.TextCachePath))
		return text, nil
	}

	s.logger.Info("extracting PDF text", zap.String("cite_id", p.CiteID), zap.String("pdf", p.PDFPath))
	text, err = s.extract(p.PDFPath)
	if err != nil {
		return "", &ExtractionError{CiteID: p.CiteID, PDFPath: p.PDFPath, Err: err}
	}

	if err := s.cache.Put(p.TextCachePath, p.PDFPath, text); err != nil {
		return "", fmt.Errorf("%s: caching text: %w", p.CiteID, err)
	}
	return text, nil
}

// SplitLines splits text on \n, dropping \r and a single trailing empty line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
