package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/matsen/citegraph/internal/citation"
	"github.com/matsen/citegraph/internal/edge"
	"github.com/matsen/citegraph/internal/importer"
	"github.com/matsen/citegraph/internal/pdf"
	"github.com/matsen/citegraph/internal/reference"
	"github.com/matsen/citegraph/internal/storage"
	"github.com/matsen/citegraph/internal/textsource"
)

// pipelineResult holds every stage's output of one run.
type pipelineResult struct {
	Library    *reference.Library
	Matches    []edge.Match
	Resolution citation.Resolution
	Threshold  float64
}

// loadLibrary reads the bibliography export and builds the library.
func loadLibrary(csvPath string) (*reference.Library, error) {
	rows, err := importer.ReadCSVFile(csvPath)
	if err != nil {
		return nil, err
	}
	loader := importer.NewLoader(importer.LoaderOptions{
		CacheDir:     cfg.CacheDir,
		PDFRoot:      cfg.PDFRoot,
		PragmaPrefix: cfg.PragmaPrefix,
		Logger:       logger,
	})
	return loader.Load(rows)
}

// openTextSource opens the configured text cache and wraps it in a
// provider that extracts on a miss. The caller closes the cache.
func openTextSource() (*textsource.Provider, storage.TextCache, error) {
	cache, err := storage.Open(cfg.CacheBackend, cfg.CacheDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening text cache: %w", err)
	}
	return textsource.New(cache, pdf.ExtractText, logger), cache, nil
}

// runPipeline loads, matches and resolves.
func runPipeline(csvPath string) (*pipelineResult, error) {
	lib, err := loadLibrary(csvPath)
	if err != nil {
		return nil, err
	}

	provider, cache, err := openTextSource()
	if err != nil {
		return nil, err
	}
	defer cache.Close()

	matcher := citation.NewMatcher(provider,
		citation.WithThreshold(cfg.Threshold),
		citation.WithLogger(logger))
	matches, err := matcher.Match(lib)
	if err != nil {
		return nil, err
	}

	res := citation.Resolve(lib, matches)
	for _, d := range edge.FindDuplicates(res.Citations) {
		logger.Debug("duplicate edge after redirection",
			zap.String("citing", d.CitingID),
			zap.String("cited", d.CitedID),
			zap.Int("count", d.Count))
	}

	logger.Info("pipeline complete",
		zap.Int("papers", lib.Len()),
		zap.Int("matches", len(matches)),
		zap.Int("edges", len(res.Citations)),
		zap.Int("redirects", len(res.Redirects)),
		zap.Float64("threshold", matcher.Threshold()))

	return &pipelineResult{Library: lib, Matches: matches, Resolution: res, Threshold: matcher.Threshold()}, nil
}
