package viz

import (
	"fmt"
	"strings"

	"github.com/mitchellh/go-wordwrap"

	"github.com/matsen/citegraph/internal/citation"
	"github.com/matsen/citegraph/internal/edge"
	"github.com/matsen/citegraph/internal/reference"
)

// DefaultLabelWidth is the column at which node titles wrap.
const DefaultLabelWidth = 28

// BuildOptions configures graph assembly.
type BuildOptions struct {
	LabelWidth int // 0 means DefaultLabelWidth
}

// Build assembles the graph: one node per paper in library order, one
// edge per citation (cited -> citing) and one per redirect (old -> new).
// Citations naming papers outside lib, and malformed citations, are errors.
func Build(lib *reference.Library, res citation.Resolution, opts BuildOptions) (*GraphData, error) {
	width := opts.LabelWidth
	if width <= 0 {
		width = DefaultLabelWidth
	}

	papers := lib.Papers()
	validIDs := make(map[string]bool, len(papers))
	g := &GraphData{Nodes: make([]Node, 0, len(papers))}
	for _, p := range papers {
		validIDs[p.CiteID] = true
		g.Nodes = append(g.Nodes, newPaperNode(p, width))
	}

	orphaned, valid := edge.DetectOrphaned(res.Citations, validIDs)
	if len(orphaned) > 0 {
		o := orphaned[0]
		return nil, fmt.Errorf("data integrity error: citation %s -> %s (%s)", o.CitingID, o.CitedID, o.Reason)
	}

	g.Edges = make([]Edge, 0, len(valid)+len(res.Redirects))
	for _, c := range valid {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("data integrity error: citation %s -> %s: %w", c.CitingID, c.CitedID, err)
		}
		g.Edges = append(g.Edges, Edge{Source: c.CitedID, Target: c.CitingID, Kind: EdgeCites, Score: c.Score})
	}
	for _, r := range res.Redirects {
		g.Edges = append(g.Edges, Edge{Source: r.OldID, Target: r.NewID, Kind: EdgeReplaced})
	}

	years, groups := lib.YearGroups()
	for _, year := range years {
		g.Years = append(g.Years, YearGroup{Year: year, IDs: groups[year]})
	}

	return g, nil
}

// newPaperNode creates a node from a paper.
func newPaperNode(p *reference.Paper, width int) Node {
	n := Node{
		ID:         p.CiteID,
		Label:      WrapLabel(p.Title, width),
		Color:      p.NodeColor,
		FontSize:   FontSize,
		URL:        p.PDFPath,
		Tooltip:    p.Tooltip,
		Title:      p.Title,
		Authors:    strings.Join(p.Authors, "; "),
		Year:       p.Year,
		Superseded: p.Superseded(),
	}
	if n.Superseded {
		n.FontSize = SupersededFontSize
	}
	return n
}

// WrapLabel word-wraps a title to width columns. Whitespace runs, including
// line breaks inside the title, are collapsed first.
func WrapLabel(title string, width int) string {
	return wordwrap.WrapString(strings.Join(strings.Fields(title), " "), uint(width))
}
