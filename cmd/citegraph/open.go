package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/citegraph/internal/pdf"
)

func init() {
	rootCmd.AddCommand(openCmd)
}

var openCmd = &cobra.Command{
	Use:   "open <export.csv> <id>...",
	Short: "Open papers' PDFs in the configured viewer",
	Long: `Open papers' PDFs in the configured viewer, to check a match by hand.

Examples:
  citegraph open library.csv smith2020
  citegraph open library.csv smith2020 doe2018`,
	Args: cobra.MinimumNArgs(2),
	RunE: runOpen,
}

// OpenedPaper is a PDF handed to the viewer.
type OpenedPaper struct {
	ID   string `json:"id"`
	Path string `json:"path"`
}

// OpenError reports a paper whose PDF could not be opened.
type OpenError struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// OpenMultipleResult is the JSON output of open.
type OpenMultipleResult struct {
	Opened []OpenedPaper `json:"opened,omitempty"`
	Errors []OpenError   `json:"errors,omitempty"`
}

func runOpen(cmd *cobra.Command, args []string) error {
	lib, err := loadLibrary(args[0])
	if err != nil {
		fail(err)
	}

	opener := pdf.NewOpener(cfg.PDFReader)
	var result OpenMultipleResult

	for _, id := range args[1:] {
		p, ok := lib.Get(id)
		if !ok {
			result.Errors = append(result.Errors, OpenError{ID: id, Error: "no such paper"})
			continue
		}
		if !p.HasPDF() {
			result.Errors = append(result.Errors, OpenError{ID: id, Error: "no PDF attachment"})
			continue
		}
		if err := opener.Open(p.PDFPath); err != nil {
			result.Errors = append(result.Errors, OpenError{ID: id, Error: fmt.Sprintf("opening PDF: %v", err)})
			continue
		}
		result.Opened = append(result.Opened, OpenedPaper{ID: id, Path: p.PDFPath})
	}

	if humanOutput {
		for _, o := range result.Opened {
			fmt.Printf("  ✓ %s: %s\n", o.ID, o.Path)
		}
		for _, e := range result.Errors {
			fmt.Printf("  ✗ %s: %s\n", e.ID, e.Error)
		}
	} else if err := outputJSON(result); err != nil {
		return err
	}

	if len(result.Opened) == 0 {
		return exitErrorSilent(ExitError)
	}
	return nil
}
