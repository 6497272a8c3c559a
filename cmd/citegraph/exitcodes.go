package main

import (
	"encoding/csv"
	"errors"

	"github.com/matsen/citegraph/internal/annotation"
	"github.com/matsen/citegraph/internal/importer"
	"github.com/matsen/citegraph/internal/textsource"
)

// Exit codes
const (
	ExitSuccess         = 0 // Success
	ExitError           = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError     = 2 // Configuration error (bad config file, invalid paths)
	ExitDataError       = 3 // Data error (malformed bibliography or notes directive)
	ExitExtractionError = 4 // A PDF could not be read or held no text
)

// exitCodeFor classifies a pipeline error.
func exitCodeFor(err error) int {
	var rowErr *importer.RowError
	var parseErr *csv.ParseError
	var extractErr *textsource.ExtractionError

	switch {
	case errors.As(err, &extractErr):
		return ExitExtractionError
	case errors.As(err, &rowErr),
		errors.As(err, &parseErr),
		errors.Is(err, importer.ErrMissingColumn),
		errors.Is(err, annotation.ErrUnknownDirective),
		errors.Is(err, annotation.ErrUnknownSetKey),
		errors.Is(err, annotation.ErrMalformedDirective):
		return ExitDataError
	default:
		return ExitError
	}
}
