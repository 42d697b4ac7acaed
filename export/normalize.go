package export

import (
	"path"
	"slices"
	"strings"

	"github.com/pipedag/pipedag/dag"
)

// Options control the normalization pass.
type Options struct {
	// Minimal keeps only node types and bare edges.
	Minimal bool

	// OmitEdgeTypes drops the edge type annotation from full output,
	// keeping node detail while edges stay bare.
	OmitEdgeTypes bool

	// Rank computes top/bottom rank metadata for downstream layout
	// hints.
	Rank bool

	// RankIgnoreFiltered leaves filtered nodes out of the rank sets.
	RankIgnoreFiltered bool

	// SourceModules are the loader module names whose adjacent data
	// nodes rank at the top alongside zero-in-degree sources.
	SourceModules []string

	// SinkPatterns are globs matched against module names to build the
	// bottom rank set.
	SinkPatterns []string
}

// Document is the normalized, write-ready form of a graph: nodes
// sorted by key, edges sorted by (source, destination), labels
// resolved. It is read-only once produced.
type Document struct {
	Nodes []Node
	Edges []Edge
	Ranks *Ranks
}

// Node is one normalized node. In minimal mode only Key and Type are
// set. Attrs carries styling and is filled by ApplyStyling.
type Node struct {
	Key      string
	Type     string
	Label    string
	Name     string
	Module   bool
	Enabled  bool
	Filtered bool
	StableID string
	Ordinal  int

	Attrs map[string]string
}

// Edge is one normalized edge. In minimal mode only From and To are
// set.
type Edge struct {
	From     string
	To       string
	Type     string
	Filtered bool
	Style    dag.EdgeStyle
}

// Ranks is graph-level layout metadata: node keys to pin at the top
// (sources) and bottom (sinks) of a drawing.
type Ranks struct {
	Top    []string
	Bottom []string
}

// Normalize produces the deterministic write-ready copy of a graph.
func Normalize(g *dag.Graph, opts Options) *Document {
	doc := &Document{}

	for _, n := range g.Nodes() {
		doc.Nodes = append(doc.Nodes, normalizeNode(n, opts))
	}
	for _, e := range g.Edges() {
		doc.Edges = append(doc.Edges, normalizeEdge(e, opts))
	}
	// dag accessors already sort, but the document must hold its
	// ordering contract on its own.
	slices.SortFunc(doc.Nodes, func(a, b Node) int {
		return strings.Compare(a.Key, b.Key)
	})
	slices.SortFunc(doc.Edges, func(a, b Edge) int {
		if c := strings.Compare(a.From, b.From); c != 0 {
			return c
		}
		return strings.Compare(a.To, b.To)
	})

	if opts.Rank && !opts.Minimal {
		doc.Ranks = computeRanks(g, opts)
	}
	return doc
}

func normalizeNode(n *dag.Node, opts Options) Node {
	node := Node{
		Key:  string(n.Key),
		Type: nodeType(n),
	}
	if opts.Minimal {
		return node
	}

	node.Filtered = n.Filtered
	if n.Kind == dag.KindModule {
		node.Module = true
		node.Label = n.Label
		node.Enabled = n.Enabled
		node.StableID = n.StableID
		node.Ordinal = n.Ordinal
	} else {
		// Data nodes display their bare name, not the keyed form.
		node.Label = n.Name
		node.Name = n.Name
	}
	return node
}

func normalizeEdge(e *dag.Edge, opts Options) Edge {
	edge := Edge{From: string(e.From), To: string(e.To)}
	if opts.Minimal {
		return edge
	}
	if !opts.OmitEdgeTypes {
		edge.Type = e.Type
	}
	edge.Filtered = e.Filtered
	edge.Style = e.Style
	return edge
}

// nodeType renders the writer-facing type: "module" for module nodes,
// the category for data nodes.
func nodeType(n *dag.Node) string {
	if n.Kind == dag.KindModule {
		return "module"
	}
	return string(n.Category)
}

// computeRanks derives the top set (source data nodes: zero in-degree,
// or fed solely by designated source modules) and the bottom set
// (modules whose name glob-matches a sink pattern).
func computeRanks(g *dag.Graph, opts Options) *Ranks {
	ranks := &Ranks{}

	for _, n := range g.Nodes() {
		if opts.RankIgnoreFiltered && n.Filtered {
			continue
		}
		switch n.Kind {
		case dag.KindData:
			if isSourceData(g, n, opts.SourceModules) {
				ranks.Top = append(ranks.Top, string(n.Key))
			}
		case dag.KindModule:
			if matchesAny(n.ModuleName, opts.SinkPatterns) {
				ranks.Bottom = append(ranks.Bottom, string(n.Key))
			}
		}
	}
	slices.Sort(ranks.Top)
	slices.Sort(ranks.Bottom)
	return ranks
}

func isSourceData(g *dag.Graph, n *dag.Node, sourceModules []string) bool {
	preds := g.Predecessors(n.Key)
	if len(preds) == 0 {
		return true
	}
	if len(sourceModules) == 0 {
		return false
	}
	for _, pred := range preds {
		if pred.Kind != dag.KindModule || !slices.Contains(sourceModules, pred.ModuleName) {
			return false
		}
	}
	return true
}

func matchesAny(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, err := path.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}
