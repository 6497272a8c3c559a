// Package reference defines the paper records that make up a citation graph.
package reference

// Node colors used when rendering a paper.
const (
	ColorDefault = "black"
	ColorNoNotes = "red"  // no curation notes yet
	ColorNoPDF   = "cyan" // nothing to extract references from
)

// Paper is one bibliography entry.
type Paper struct {
	// Identity
	CiteID string `json:"cite_id"` // sanitized first-author surname + year, unique within a Library

	// Metadata
	Title          string   `json:"title"`
	SanitizedTitle string   `json:"sanitized_title"`
	Year           int      `json:"year"`
	Authors        []string `json:"authors"`

	// Source text
	PDFPath       string `json:"pdf_path,omitempty"` // empty when the entry has no PDF attachment
	TextCachePath string `json:"text_cache_path,omitempty"`

	// Display
	NodeColor string `json:"node_color"`
	Tooltip   string `json:"tooltip,omitempty"`

	// Curation, from annotation directives in the notes
	SkipList []string `json:"skip_list,omitempty"`
	Replaces []string `json:"replaces,omitempty"`

	// Derived by Library.LinkReplacements, never set from annotations
	ReplacedBy []string `json:"replaced_by,omitempty"`
}

// HasPDF reports whether the paper has an attached PDF to extract text from.
func (p *Paper) HasPDF() bool {
	return p.PDFPath != ""
}

// Superseded reports whether another paper replaces this one.
func (p *Paper) Superseded() bool {
	return len(p.ReplacedBy) > 0
}

// Successor returns the authoritative replacement for this paper: the first
// recorded replacer. ok is false when the paper is not superseded.
func (p *Paper) Successor() (id string, ok bool) {
	if len(p.ReplacedBy) == 0 {
		return "", false
	}
	return p.ReplacedBy[0], true
}

// Skips reports whether id is on this paper's false-positive list.
func (p *Paper) Skips(id string) bool {
	return contains(p.SkipList, id)
}

// AddSkip adds id to the false-positive list. Duplicates are ignored.
func (p *Paper) AddSkip(id string) {
	if !contains(p.SkipList, id) {
		p.SkipList = append(p.SkipList, id)
	}
}

// AddReplaces records that this paper supersedes id.
func (p *Paper) AddReplaces(id string) {
	if !contains(p.Replaces, id) {
		p.Replaces = append(p.Replaces, id)
	}
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
