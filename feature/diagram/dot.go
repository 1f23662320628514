package diagram

import (
	"fmt"
	"strings"
)

// dotGraph builds a Graphviz digraph incrementally.
type dotGraph struct {
	title    string
	rankdir  string
	body     strings.Builder
	indent   string
	clusters int
}

func newDotGraph(title, rankdir string) *dotGraph {
	return &dotGraph{title: title, rankdir: rankdir, indent: "  "}
}

// node declares a box-shaped node. The id must be unique within the graph.
func (g *dotGraph) node(id, label string) {
	fmt.Fprintf(&g.body, "%s%s [label=%s, shape=box];\n", g.indent, id, quote(label))
}

// edge connects two nodes. Extra attributes are emitted verbatim, e.g.
// `label="WAN"` or `style=dashed`.
func (g *dotGraph) edge(from, to string, attrs ...string) {
	fmt.Fprintf(&g.body, "%s%s -> %s", g.indent, from, to)
	if len(attrs) > 0 {
		fmt.Fprintf(&g.body, " [%s]", strings.Join(attrs, ", "))
	}
	g.body.WriteString(";\n")
}

// cluster opens a labeled subgraph, calls fill to populate it, and closes it.
func (g *dotGraph) cluster(label string, fill func()) {
	fmt.Fprintf(&g.body, "%ssubgraph cluster_%d {\n", g.indent, g.clusters)
	g.clusters++
	fmt.Fprintf(&g.body, "%s  label=%s;\n%s  style=rounded;\n", g.indent, quote(label), g.indent)

	prev := g.indent
	g.indent += "  "
	fill()
	g.indent = prev

	fmt.Fprintf(&g.body, "%s}\n", g.indent)
}

// String renders the complete DOT document.
func (g *dotGraph) String() string {
	var out strings.Builder
	out.WriteString("digraph G {\n")
	fmt.Fprintf(&out, "  label=%s;\n", quote(g.title))
	fmt.Fprintf(&out, "  rankdir=%s;\n", g.rankdir)
	out.WriteString("  fontsize=20;\n  bgcolor=white;\n  node [fontsize=11];\n\n")
	out.WriteString(g.body.String())
	out.WriteString("}\n")
	return out.String()
}

func quote(s string) string {
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return `"` + s + `"`
}
