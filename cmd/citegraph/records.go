package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(recordsCmd)
}

var recordsCmd = &cobra.Command{
	Use:   "records <export.csv>",
	Short: "Show the papers loaded from an export",
	Long: `Show the papers loaded from a bibliography export, after notes directives
and replacement links are applied. No PDFs are read.

Examples:
  citegraph records library.csv
  citegraph records library.csv --human`,
	Args: cobra.ExactArgs(1),
	RunE: runRecords,
}

func runRecords(cmd *cobra.Command, args []string) error {
	lib, err := loadLibrary(args[0])
	if err != nil {
		fail(err)
	}

	papers := lib.Papers()
	if !humanOutput {
		return outputJSON(papers)
	}

	for _, p := range papers {
		outputHuman("%-20s %d  %-6s %s\n", p.CiteID, p.Year, p.NodeColor, truncateString(p.Title, TitleMaxLen))
		if len(p.Replaces) > 0 {
			outputHuman("  replaces: %v\n", p.Replaces)
		}
		if succ, ok := p.Successor(); ok {
			outputHuman("  superseded by: %s\n", succ)
		}
		if len(p.SkipList) > 0 {
			outputHuman("  false positives: %v\n", p.SkipList)
		}
		if !p.HasPDF() {
			outputHuman("  no PDF\n")
		}
	}
	outputHuman("\n%d papers\n", len(papers))
	return nil
}
