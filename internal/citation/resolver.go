package citation

import (
	"github.com/matsen/citegraph/internal/edge"
	"github.com/matsen/citegraph/internal/reference"
)

// Resolution is the final edge set handed to rendering.
type Resolution struct {
	Citations []edge.Citation `json:"citations"`
	Redirects []edge.Redirect `json:"redirects"`
}

// Resolve rewrites raw matches through replacement links.
//
// A match whose cited paper is superseded is redirected to the paper's
// first recorded replacer. One hop only: the successor's own successor is
// not followed. A redirected match that would point back at the citing
// paper is dropped. Nothing is deduplicated, so two matches redirected to
// the same successor both survive.
//
// Every superseded paper also yields a Redirect to its first replacer, in
// library order.
func Resolve(lib *reference.Library, matches []edge.Match) Resolution {
	res := Resolution{
		Citations: make([]edge.Citation, 0, len(matches)),
	}

	for _, p := range lib.Papers() {
		if succ, ok := p.Successor(); ok {
			res.Redirects = append(res.Redirects, edge.Redirect{OldID: p.CiteID, NewID: succ})
		}
	}

	for _, m := range matches {
		cited := m.CitedID
		if p, ok := lib.Get(cited); ok {
			if succ, ok := p.Successor(); ok {
				cited = succ
			}
		}
		if cited == m.CitingID {
			continue
		}
		res.Citations = append(res.Citations, edge.Citation{
			CitingID: m.CitingID,
			CitedID:  cited,
			Score:    m.Score,
		})
	}

	return res
}
