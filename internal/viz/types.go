// Package viz turns a resolved citation graph into renderable descriptions:
// Graphviz DOT for static layouts and Cytoscape.js HTML for browsing.
package viz

// Edge kinds.
const (
	EdgeCites    = "cites"
	EdgeReplaced = "replaced"
)

// Font sizes for paper nodes.
const (
	FontSize           = 20
	SupersededFontSize = 14
	YearFontSize       = 24
)

// GraphData contains all data needed to render the graph.
type GraphData struct {
	Nodes []Node      `json:"nodes"`
	Edges []Edge      `json:"edges"`
	Years []YearGroup `json:"years"`
}

// Node represents a paper.
type Node struct {
	ID string `json:"id"`

	// Display
	Label    string `json:"label"` // wrapped title, lines separated by \n
	Color    string `json:"color"`
	FontSize int    `json:"fontSize"`
	URL      string `json:"url,omitempty"`
	Tooltip  string `json:"tooltip,omitempty"`

	// Paper fields
	Title      string `json:"title"`
	Authors    string `json:"authors,omitempty"`
	Year       int    `json:"year"`
	Superseded bool   `json:"superseded,omitempty"`
}

// Edge points from the older, cited or superseded paper to the newer one.
type Edge struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Kind   string  `json:"kind"`
	Score  float64 `json:"score,omitempty"`
}

// YearGroup lists the papers published in one year, in library order.
type YearGroup struct {
	Year int      `json:"year"`
	IDs  []string `json:"ids"`
}

// IsEmpty returns true if the graph has no nodes.
func (g *GraphData) IsEmpty() bool {
	return len(g.Nodes) == 0
}
