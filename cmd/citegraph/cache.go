package main

import (
	"errors"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/matsen/citegraph/internal/textsource"
)

func init() {
	cacheCmd.AddCommand(cacheInfoCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheWarmCmd)
	rootCmd.AddCommand(cacheCmd)
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the extracted PDF text cache",
}

var cacheInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show cache backend, location and size",
	Args:  cobra.NoArgs,
	RunE:  runCacheInfo,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached text",
	Long: `Remove all cached text. The next build extracts every PDF again.
Edit a cached text file instead of clearing it to fix a bad extraction.`,
	Args: cobra.NoArgs,
	RunE: runCacheClear,
}

var cacheWarmCmd = &cobra.Command{
	Use:   "warm <export.csv>",
	Short: "Extract text for every attached PDF",
	Long: `Extract text for every attached PDF that is not cached yet.
Unlike build, a PDF that fails to extract is reported and skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runCacheWarm,
}

// CacheClearResult is the JSON output of cache clear.
type CacheClearResult struct {
	Removed int `json:"removed"`
}

// CacheWarmResult is the JSON output of cache warm.
type CacheWarmResult struct {
	Papers int         `json:"papers"`
	Failed []WarmError `json:"failed,omitempty"`
}

// WarmError reports one PDF that could not be extracted.
type WarmError struct {
	CiteID string `json:"cite_id"`
	Error  string `json:"error"`
}

func runCacheInfo(cmd *cobra.Command, args []string) error {
	_, cache, err := openTextSource()
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	defer cache.Close()

	stats, err := cache.Stats()
	if err != nil {
		exitWithError(ExitError, "reading cache: %v", err)
	}

	if humanOutput {
		outputHuman("Backend:  %s\n", stats.Backend)
		outputHuman("Location: %s\n", stats.Location)
		outputHuman("Entries:  %d\n", stats.Entries)
		outputHuman("Size:     %s\n", humanize.Bytes(uint64(stats.Bytes)))
		return nil
	}
	return outputJSON(stats)
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	_, cache, err := openTextSource()
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	defer cache.Close()

	n, err := cache.Clear()
	if err != nil {
		exitWithError(ExitError, "clearing cache: %v", err)
	}

	if humanOutput {
		outputHuman("Removed %d cached texts\n", n)
		return nil
	}
	return outputJSON(CacheClearResult{Removed: n})
}

func runCacheWarm(cmd *cobra.Command, args []string) error {
	lib, err := loadLibrary(args[0])
	if err != nil {
		fail(err)
	}

	provider, cache, err := openTextSource()
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	defer cache.Close()

	result := CacheWarmResult{}
	for _, p := range lib.Papers() {
		if !p.HasPDF() {
			continue
		}
		result.Papers++
		if _, err := provider.Text(p); err != nil {
			var extractErr *textsource.ExtractionError
			if !errors.As(err, &extractErr) {
				exitWithError(ExitError, "%v", err)
			}
			result.Failed = append(result.Failed, WarmError{CiteID: p.CiteID, Error: extractErr.Err.Error()})
		}
	}

	if humanOutput {
		outputHuman("%d papers with PDFs, %d failed\n", result.Papers, len(result.Failed))
		for _, f := range result.Failed {
			outputHuman("  %s: %s\n", f.CiteID, f.Error)
		}
	} else if err := outputJSON(result); err != nil {
		return err
	}
	if len(result.Failed) > 0 {
		return exitErrorSilent(ExitExtractionError)
	}
	return nil
}
