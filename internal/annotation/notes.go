package annotation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Notes is the parsed form of a notes field.
type Notes struct {
	Tooltip    string      // readable text with markup and directive lines removed
	Directives []Directive // in order of appearance
}

// Parser extracts tooltips and directives from notes markup.
type Parser struct {
	prefix string
}

// NewParser returns a parser recognizing directive lines that start with
// prefix. An empty prefix selects DefaultPrefix.
func NewParser(prefix string) *Parser {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Parser{prefix: prefix}
}

var excessBlankLines = regexp.MustCompile(`\n{4,}`)

// Parse renders notes to plain text and pulls out directive lines.
// Empty notes parse to the zero Notes.
func (p *Parser) Parse(notes string) (Notes, error) {
	if strings.TrimSpace(notes) == "" {
		return Notes{}, nil
	}

	text, err := RenderText(notes)
	if err != nil {
		return Notes{}, err
	}

	var result Notes
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		rest, ok := p.directiveText(line)
		if !ok {
			kept = append(kept, line)
			continue
		}
		d, err := ParseDirective(rest)
		if err != nil {
			return Notes{}, err
		}
		result.Directives = append(result.Directives, d)
	}

	result.Tooltip = tidy(strings.Join(kept, "\n"))
	return result, nil
}

// directiveText returns the part of line after the prefix when line is a
// directive. "#pragmatic" is not a "#pragma" directive.
func (p *Parser) directiveText(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, p.prefix) {
		return "", false
	}
	rest := line[len(p.prefix):]
	if rest != "" {
		if r, _ := utf8.DecodeRuneInString(rest); !unicode.IsSpace(r) {
			return "", false
		}
	}
	return rest, true
}

// RenderText strips markup from notes, keeping list items as "* " lines
// and line breaks from <br> and block elements.
func RenderText(markup string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return "", fmt.Errorf("parsing notes markup: %w", err)
	}

	var w textWriter
	for _, body := range doc.Find("body").Nodes {
		for c := body.FirstChild; c != nil; c = c.NextSibling {
			w.walk(c)
		}
	}
	return tidy(w.String()), nil
}

// tidy trims trailing space on each line, collapses three or more blank
// lines to one, and trims the result.
func tidy(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRightFunc(line, unicode.IsSpace)
	}
	s = strings.Join(lines, "\n")
	s = excessBlankLines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

type textWriter struct {
	sb   strings.Builder
	last byte
}

func (w *textWriter) String() string {
	return w.sb.String()
}

func (w *textWriter) write(s string) {
	if s == "" {
		return
	}
	w.sb.WriteString(s)
	w.last = s[len(s)-1]
}

// newline starts a new line unless already at the start of one.
func (w *textWriter) newline() {
	if w.sb.Len() > 0 && w.last != '\n' {
		w.write("\n")
	}
}

func (w *textWriter) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		// Formatting whitespace between tags.
		if strings.TrimSpace(n.Data) == "" && strings.ContainsRune(n.Data, '\n') {
			return
		}
		w.write(n.Data)
		return
	case html.ElementNode:
	default:
		return
	}

	switch n.DataAtom {
	case atom.Br:
		w.write("\n")
		return
	case atom.Script, atom.Style, atom.Head:
		return
	case atom.Li:
		w.newline()
		w.write("* ")
	default:
		if isBlock(n.DataAtom) {
			w.newline()
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}

	switch {
	case isParagraph(n.DataAtom):
		w.newline()
		w.write("\n")
	case n.DataAtom == atom.Li || isBlock(n.DataAtom):
		w.newline()
	}
}

func isBlock(a atom.Atom) bool {
	switch a {
	case atom.Div, atom.Ul, atom.Ol, atom.Blockquote, atom.Pre, atom.Table, atom.Tr:
		return true
	}
	return isParagraph(a)
}

func isParagraph(a atom.Atom) bool {
	switch a {
	case atom.P, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	}
	return false
}
