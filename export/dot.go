package export

import (
	"fmt"
	"io"
	"slices"
	"strings"

	graphlib "github.com/dominikbraun/graph"
)

// WriteDOT renders a normalized document as a Graphviz DOT digraph.
//
// The document is first loaded into a graph value whose vertex and
// edge properties hold the display attributes; emission then walks the
// document's sorted node and edge lists and pulls each element's
// properties back out. draw.DOT would walk Go maps, and the diff
// contract needs byte-identical output for identical input.
func WriteDOT(w io.Writer, doc *Document) error {
	g := graphlib.New(graphlib.StringHash, graphlib.Directed())

	for _, node := range doc.Nodes {
		opts := make([]func(*graphlib.VertexProperties), 0, len(node.Attrs)+2)
		for _, attr := range sortedAttrs(node) {
			opts = append(opts, graphlib.VertexAttribute(attr.key, attr.value))
		}
		if err := g.AddVertex(node.Key, opts...); err != nil {
			return fmt.Errorf("export: add vertex %q: %w", node.Key, err)
		}
	}
	for _, edge := range doc.Edges {
		var opts []func(*graphlib.EdgeProperties)
		if color := EdgeColor(edge); color != "" {
			opts = append(opts, graphlib.EdgeAttribute("color", color))
		}
		if edge.Type != "" {
			opts = append(opts, graphlib.EdgeAttribute("edgetype", edge.Type))
		}
		if err := g.AddEdge(edge.From, edge.To, opts...); err != nil {
			return fmt.Errorf("export: add edge %q -> %q: %w", edge.From, edge.To, err)
		}
	}

	var b strings.Builder
	b.WriteString("digraph pipeline {\n")

	for _, node := range doc.Nodes {
		_, props, err := g.VertexWithProperties(node.Key)
		if err != nil {
			return fmt.Errorf("export: vertex %q: %w", node.Key, err)
		}
		b.WriteString("\t" + quote(node.Key))
		writeAttrList(&b, props.Attributes)
		b.WriteString(";\n")
	}

	for _, edge := range doc.Edges {
		e, err := g.Edge(edge.From, edge.To)
		if err != nil {
			return fmt.Errorf("export: edge %q -> %q: %w", edge.From, edge.To, err)
		}
		b.WriteString("\t" + quote(edge.From) + " -> " + quote(edge.To))
		writeAttrList(&b, e.Properties.Attributes)
		b.WriteString(";\n")
	}

	writeRankHints(&b, doc.Ranks)
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

type attr struct {
	key   string
	value string
}

func sortedAttrs(node Node) []attr {
	attrs := make([]attr, 0, len(node.Attrs)+2)
	if node.Type != "" {
		attrs = append(attrs, attr{"type", node.Type})
	}
	if node.Label != "" {
		attrs = append(attrs, attr{"label", node.Label})
	}
	for k, v := range node.Attrs {
		attrs = append(attrs, attr{k, v})
	}
	slices.SortFunc(attrs, func(a, b attr) int {
		return strings.Compare(a.key, b.key)
	})
	return attrs
}

func writeAttrList(b *strings.Builder, attributes map[string]string) {
	if len(attributes) == 0 {
		return
	}
	keys := make([]string, 0, len(attributes))
	for k := range attributes {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	b.WriteString(" [")
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k + "=" + quote(attributes[k]))
	}
	b.WriteString("]")
}

// writeRankHints emits rank constraint subgraphs for layout engines.
func writeRankHints(b *strings.Builder, ranks *Ranks) {
	if ranks == nil {
		return
	}
	writeRank(b, "source", ranks.Top)
	writeRank(b, "sink", ranks.Bottom)
}

func writeRank(b *strings.Builder, rank string, keys []string) {
	if len(keys) == 0 {
		return
	}
	b.WriteString("\t{ rank=" + rank + ";")
	for _, key := range keys {
		b.WriteString(" " + quote(key) + ";")
	}
	b.WriteString(" }\n")
}

func quote(s string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`).Replace(s) + `"`
}
