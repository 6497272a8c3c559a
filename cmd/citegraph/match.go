package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/citegraph/internal/edge"
)

func init() {
	rootCmd.AddCommand(matchCmd)
}

var matchCmd = &cobra.Command{
	Use:   "match <export.csv>",
	Short: "List title matches for curation",
	Long: `List every title match and the edges they resolve to.

Use this to find false positives before adding
"#pragma falsepositive <id>" to the citing paper's notes.

Examples:
  citegraph match library.csv
  citegraph match library.csv --human --threshold 85`,
	Args: cobra.ExactArgs(1),
	RunE: runMatch,
}

// MatchResponse is the JSON output of match.
type MatchResponse struct {
	Threshold  float64          `json:"threshold"`
	Matches    []edge.Match     `json:"matches"`
	Citations  []edge.Citation  `json:"citations"`
	Redirects  []edge.Redirect  `json:"redirects"`
	Duplicates []edge.Duplicate `json:"duplicates,omitempty"`
}

func runMatch(cmd *cobra.Command, args []string) error {
	result, err := runPipeline(args[0])
	if err != nil {
		fail(err)
	}

	res := result.Resolution
	dups := edge.FindDuplicates(res.Citations)

	if !humanOutput {
		return outputJSON(MatchResponse{
			Threshold:  result.Threshold,
			Matches:    nonNil(result.Matches),
			Citations:  nonNil(res.Citations),
			Redirects:  nonNil(res.Redirects),
			Duplicates: dups,
		})
	}

	outputHuman("%d matches above %g\n", len(result.Matches), result.Threshold)
	for _, m := range result.Matches {
		title := ""
		if cited, ok := result.Library.Get(m.CitedID); ok {
			title = truncateString(cited.Title, TitleMaxLen)
		}
		outputHuman("  %6.2f  %s cites %s  %s\n", m.Score, m.CitingID, m.CitedID, title)
	}
	if len(res.Redirects) > 0 {
		fmt.Println()
		outputHuman("%d replacements\n", len(res.Redirects))
		for _, r := range res.Redirects {
			outputHuman("  %s -> %s\n", r.OldID, r.NewID)
		}
	}
	outputHuman("\n%d edges after redirection\n", len(res.Citations))
	for _, d := range dups {
		outputHuman("  duplicate: %s cites %s (%d times)\n", d.CitingID, d.CitedID, d.Count)
	}
	return nil
}

// nonNil keeps empty lists as [] rather than null in JSON output.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
