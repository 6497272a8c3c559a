package viz

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DOTOptions configures Graphviz output.
type DOTOptions struct {
	Name      string // graph name; "Citations" if empty
	YearRanks bool   // place papers of a year on one rank along a year backbone
}

// WriteDOT writes g as a Graphviz digraph. Output is produced in full
// before anything is written to w.
func WriteDOT(w io.Writer, g *GraphData, opts DOTOptions) error {
	name := opts.Name
	if name == "" {
		name = "Citations"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "digraph %s {\n", quote(name))

	if opts.YearRanks && len(g.Years) > 0 {
		fmt.Fprintf(&sb, "  node [fontsize=%d, shape=plaintext]\n", YearFontSize)
		sb.WriteString("  edge [style=invis]\n")
		for i := 0; i+1 < len(g.Years); i++ {
			fmt.Fprintf(&sb, "  %d -> %d\n", g.Years[i].Year, g.Years[i+1].Year)
		}
		if len(g.Years) == 1 {
			fmt.Fprintf(&sb, "  %d\n", g.Years[0].Year)
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "  node [fontsize=%d, shape=box]\n", FontSize)
	sb.WriteString("  edge [style=\"\"]\n")
	for _, n := range g.Nodes {
		fmt.Fprintf(&sb, "  %s [%s]\n", quote(n.ID), nodeAttrs(n))
	}

	if opts.YearRanks && len(g.Years) > 0 {
		sb.WriteString("\n")
		for _, y := range g.Years {
			ids := make([]string, len(y.IDs))
			for i, id := range y.IDs {
				ids[i] = quote(id)
			}
			fmt.Fprintf(&sb, "  { rank=same; %d %s }\n", y.Year, strings.Join(ids, " "))
		}
	}

	sb.WriteString("\n")
	for _, e := range g.Edges {
		switch e.Kind {
		case EdgeReplaced:
			fmt.Fprintf(&sb, "  %s -> %s [style=dashed]\n", quote(e.Source), quote(e.Target))
		default:
			fmt.Fprintf(&sb, "  %s -> %s /* r = %s */\n", quote(e.Source), quote(e.Target), formatScore(e.Score))
		}
	}

	sb.WriteString("}\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func nodeAttrs(n Node) string {
	attrs := []string{
		"label=" + quote(n.Label),
		"color=" + quote(n.Color),
	}
	if n.URL != "" {
		attrs = append(attrs, "URL="+quote(n.URL))
	}
	if n.Tooltip != "" {
		attrs = append(attrs, "tooltip="+quote(n.Tooltip))
	}
	if n.FontSize != FontSize {
		attrs = append(attrs, "fontsize="+strconv.Itoa(n.FontSize))
	}
	return strings.Join(attrs, ", ")
}

// quote returns s as a DOT double-quoted string. Newlines become the \n
// escape, which Graphviz renders as a centered line break.
func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\r", "", "\n", `\n`)
	return `"` + r.Replace(s) + `"`
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 2, 64)
}
