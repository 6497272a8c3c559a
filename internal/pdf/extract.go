package pdf

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrNoText is returned when a PDF yields no extractable text at all,
// typically a scanned document without a text layer.
var ErrNoText = errors.New("no extractable text")

// ExtractText extracts the text of every page of a PDF, one page after another.
func ExtractText(filePath string) (string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}
	return ExtractTextReader(f, info.Size())
}

// ExtractTextReader extracts text from a PDF of the given size read from r.
func ExtractTextReader(r io.ReaderAt, size int64) (string, error) {
	pdfReader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("reading PDF: %w", err)
	}
	return extractPages(pdfReader)
}

// extractPages concatenates page text. Pages that fail to decode are
// skipped; the PDF only fails when no page produces any text.
func extractPages(r *pdf.Reader) (string, error) {
	var builder strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}

	if strings.TrimSpace(builder.String()) == "" {
		return "", ErrNoText
	}
	return builder.String(), nil
}
