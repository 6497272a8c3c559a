package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matsen/citegraph/internal/viz"
)

// Output formats for build.
const (
	FormatDOT  = "dot"
	FormatHTML = "html"
	FormatJSON = "json"
)

var (
	buildOutput     string
	buildFormat     string
	buildYearRanks  bool
	buildLabelWidth int
	buildLayout     string
)

func init() {
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "Output file path (default: stdout)")
	buildCmd.Flags().StringVarP(&buildFormat, "format", "f", FormatDOT, "Output format: dot, html, or json")
	buildCmd.Flags().BoolVar(&buildYearRanks, "year-ranks", false, "Rank papers by year along a year backbone (dot only)")
	buildCmd.Flags().IntVar(&buildLabelWidth, "label-width", 0, "Wrap node titles at this column")
	buildCmd.Flags().StringVar(&buildLayout, "layout", "tree", "Layout for html output: tree, force, circle, or grid")
	rootCmd.AddCommand(buildCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build <export.csv>",
	Short: "Build the citation graph",
	Long: `Build the citation graph for a bibliography export.

Edges run from the cited paper to the citing paper. A dashed edge joins a
superseded paper to its replacement.

Examples:
  citegraph build library.csv | dot -Tsvg > graph.svg
  citegraph build library.csv --year-ranks -o graph.dot
  citegraph build library.csv --format html -o graph.html`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	switch buildFormat {
	case FormatDOT, FormatHTML, FormatJSON:
	default:
		exitWithError(ExitError, "invalid format %q: must be dot, html, or json", buildFormat)
	}

	labelWidth := cfg.LabelWidth
	if cmd.Flags().Changed("label-width") {
		labelWidth = buildLabelWidth
	}
	yearRanks := cfg.YearRanks
	if cmd.Flags().Changed("year-ranks") {
		yearRanks = buildYearRanks
	}

	result, err := runPipeline(args[0])
	if err != nil {
		fail(err)
	}

	graph, err := viz.Build(result.Library, result.Resolution, viz.BuildOptions{LabelWidth: labelWidth})
	if err != nil {
		exitWithError(ExitDataError, "building graph: %v", err)
	}

	// Render fully before writing so a failure leaves no partial output.
	var buf bytes.Buffer
	switch buildFormat {
	case FormatDOT:
		err = viz.WriteDOT(&buf, graph, viz.DOTOptions{YearRanks: yearRanks})
	case FormatHTML:
		var html string
		html, err = viz.GenerateHTML(graph, viz.HTMLOptions{Layout: buildLayout})
		buf.WriteString(html)
	case FormatJSON:
		err = writeJSON(&buf, graph)
	}
	if err != nil {
		exitWithError(ExitError, "rendering %s: %v", buildFormat, err)
	}

	if buildOutput == "" {
		_, err := os.Stdout.Write(buf.Bytes())
		return err
	}

	if err := os.WriteFile(buildOutput, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	if humanOutput {
		fmt.Fprintf(os.Stderr, "Graph written to %s (%d papers, %d edges)\n", buildOutput, len(graph.Nodes), len(graph.Edges))
	} else {
		return outputJSON(StatusResponse{Status: "written", Path: buildOutput})
	}
	return nil
}
