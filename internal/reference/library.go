package reference

import (
	"errors"
	"fmt"
	"sort"
)

// ErrDuplicateID is returned when a paper's CiteID is already in the library.
var ErrDuplicateID = errors.New("duplicate cite id")

// Library holds papers keyed by CiteID while preserving insertion order,
// which is the bibliography row order.
type Library struct {
	order  []string
	papers map[string]*Paper
}

// NewLibrary returns an empty library.
func NewLibrary() *Library {
	return &Library{papers: make(map[string]*Paper)}
}

// Add appends p to the library.
func (l *Library) Add(p *Paper) error {
	if _, exists := l.papers[p.CiteID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateID, p.CiteID)
	}
	l.order = append(l.order, p.CiteID)
	l.papers[p.CiteID] = p
	return nil
}

// Get returns the paper with the given CiteID.
func (l *Library) Get(id string) (*Paper, bool) {
	p, ok := l.papers[id]
	return p, ok
}

// Has reports whether id is in the library.
func (l *Library) Has(id string) bool {
	_, ok := l.papers[id]
	return ok
}

// Len returns the number of papers.
func (l *Library) Len() int {
	return len(l.order)
}

// IDs returns all CiteIDs in insertion order.
func (l *Library) IDs() []string {
	ids := make([]string, len(l.order))
	copy(ids, l.order)
	return ids
}

// Papers returns all papers in insertion order.
func (l *Library) Papers() []*Paper {
	papers := make([]*Paper, 0, len(l.order))
	for _, id := range l.order {
		papers = append(papers, l.papers[id])
	}
	return papers
}

// DanglingReplacement is a replaces directive naming an id that is not in the library.
type DanglingReplacement struct {
	CiteID string `json:"cite_id"`
	Target string `json:"target"`
}

// LinkReplacements fills in ReplacedBy by inverting every paper's Replaces
// list. It runs once after all papers are loaded; replacers are appended in
// library order, so ReplacedBy[0] is the first paper (in row order) that
// declared the replacement. Targets missing from the library are returned
// and otherwise ignored.
//
// Cycles are not detected. Only one hop of redirection is ever followed.
func (l *Library) LinkReplacements() []DanglingReplacement {
	var dangling []DanglingReplacement
	for _, id := range l.order {
		p := l.papers[id]
		for _, target := range p.Replaces {
			old, ok := l.papers[target]
			if !ok {
				dangling = append(dangling, DanglingReplacement{CiteID: id, Target: target})
				continue
			}
			old.ReplacedBy = append(old.ReplacedBy, id)
		}
	}
	return dangling
}

// YearGroups groups CiteIDs by publication year. Years are returned newest
// first; ids within a year keep library order.
func (l *Library) YearGroups() ([]int, map[int][]string) {
	groups := make(map[int][]string)
	for _, id := range l.order {
		year := l.papers[id].Year
		groups[year] = append(groups[year], id)
	}

	years := make([]int, 0, len(groups))
	for year := range groups {
		years = append(years, year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	return years, groups
}
