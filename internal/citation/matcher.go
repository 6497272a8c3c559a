// Package citation infers which papers cite which by fuzzy-matching titles
// against the references section of each paper's text.
package citation

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/matsen/citegraph/internal/edge"
	"github.com/matsen/citegraph/internal/reference"
)

// DefaultThreshold is the minimum score, exclusive, for a match.
const DefaultThreshold = 90.0

// referencesHeading is searched for, lowercased, to find the references section.
const referencesHeading = "references"

// TextProvider supplies a paper's full text as lines.
type TextProvider interface {
	Lines(p *reference.Paper) ([]string, error)
}

// Matcher produces raw citation matches.
type Matcher struct {
	provider  TextProvider
	scorer    Scorer
	threshold float64
	logger    *zap.Logger
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithScorer replaces the default PartialRatio scorer.
func WithScorer(s Scorer) Option {
	return func(m *Matcher) { m.scorer = s }
}

// WithThreshold sets the exclusive score threshold.
func WithThreshold(t float64) Option {
	return func(m *Matcher) { m.threshold = t }
}

// WithLogger sets the logger for warnings and per-comparison debug lines.
func WithLogger(l *zap.Logger) Option {
	return func(m *Matcher) { m.logger = l }
}

// NewMatcher creates a matcher reading text from provider.
func NewMatcher(provider TextProvider, opts ...Option) *Matcher {
	m := &Matcher{
		provider:  provider,
		scorer:    PartialRatio{},
		threshold: DefaultThreshold,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Threshold returns the exclusive score threshold in use.
func (m *Matcher) Threshold() float64 {
	return m.threshold
}

// Match runs every eligible paper in lib, in library order. Papers without a
// PDF and papers that have been superseded do not cite anything. Any text
// provider error aborts the run.
func (m *Matcher) Match(lib *reference.Library) ([]edge.Match, error) {
	var matches []edge.Match
	for _, p := range lib.Papers() {
		if !p.HasPDF() || p.Superseded() {
			continue
		}
		found, err := m.MatchPaper(lib, p)
		if err != nil {
			return nil, err
		}
		matches = append(matches, found...)
	}
	return matches, nil
}

// MatchPaper matches the candidates of a single citing paper.
func (m *Matcher) MatchPaper(lib *reference.Library, citing *reference.Paper) ([]edge.Match, error) {
	lines, err := m.provider.Lines(citing)
	if err != nil {
		return nil, fmt.Errorf("reading text: %w", err)
	}
	if len(lines) == 0 {
		m.logger.Warn("document text is empty", zap.String("cite_id", citing.CiteID), zap.String("pdf", citing.PDFPath))
	}

	text, found := ReferenceText(lines)
	if !found {
		m.logger.Warn("no references section found, matching against whole document",
			zap.String("cite_id", citing.CiteID),
			zap.String("pdf", citing.PDFPath))
	}
	text = strings.ToLower(text)

	var matches []edge.Match
	for _, cand := range Candidates(lib, citing) {
		score := m.scorer.Score(text, strings.ToLower(cand.Title))
		m.logger.Debug("compared",
			zap.String("citing", citing.CiteID),
			zap.String("candidate", cand.CiteID),
			zap.Float64("score", score))
		if score > m.threshold {
			matches = append(matches, edge.Match{CitingID: citing.CiteID, CitedID: cand.CiteID, Score: score})
		}
	}
	return matches, nil
}

// ReferenceText joins the lines from the last one mentioning "references"
// (case-insensitive) to the end, with spaces for line breaks. When no line
// mentions it, the whole document is returned and found is false.
func ReferenceText(lines []string) (text string, found bool) {
	pivot := -1
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.Contains(strings.ToLower(lines[i]), referencesHeading) {
			pivot = i
			break
		}
	}
	if pivot < 0 {
		return strings.Join(lines, " "), false
	}
	return strings.Join(lines[pivot:], " "), true
}

// Candidates returns the papers citing may cite: every other paper not
// published after it and not on its false-positive list, in library order.
func Candidates(lib *reference.Library, citing *reference.Paper) []*reference.Paper {
	var candidates []*reference.Paper
	for _, p := range lib.Papers() {
		if p.CiteID == citing.CiteID {
			continue
		}
		if p.Year > citing.Year {
			continue
		}
		if citing.Skips(p.CiteID) {
			continue
		}
		candidates = append(candidates, p)
	}
	return candidates
}
