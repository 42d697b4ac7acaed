package filter

import (
	"github.com/pipedag/pipedag/dag"
)

// Mode selects the removal strategy shared by every pass.
type Mode int

const (
	// ModeRemove deletes affected nodes and edges outright.
	ModeRemove Mode = iota
	// ModeHighlight flags affected elements filtered and keeps the
	// graph topology intact.
	ModeHighlight
)

func (m Mode) String() string {
	switch m {
	case ModeRemove:
		return "remove"
	case ModeHighlight:
		return "highlight"
	default:
		return "unknown"
	}
}

// Pass is one graph-rewriting step. Apply mutates g according to the
// mode and returns the number of affected elements. Passes must treat
// already-filtered elements as absent.
type Pass interface {
	Name() string
	Apply(g *dag.Graph, mode Mode) (int, error)
}

// affectNodes removes or flags the given nodes. In highlight mode the
// incident edges are flagged too, so writers can gray out the whole
// filtered region. Returns the number of nodes affected.
func affectNodes(g *dag.Graph, mode Mode, keys []dag.NodeKey) int {
	affected := 0
	for _, key := range keys {
		node, ok := g.Node(key)
		if !ok {
			continue
		}
		switch mode {
		case ModeRemove:
			g.RemoveNode(key)
			affected++
		case ModeHighlight:
			if node.Filtered {
				continue
			}
			node.Filtered = true
			for _, e := range g.OutEdges(key) {
				e.Filtered = true
			}
			for _, e := range g.InEdges(key) {
				e.Filtered = true
			}
			affected++
		}
	}
	return affected
}

// affectEdge removes or flags a single edge. Returns 1 if it affected
// the edge, 0 if the edge was missing or already filtered.
func affectEdge(g *dag.Graph, mode Mode, from, to dag.NodeKey) int {
	e, ok := g.Edge(from, to)
	if !ok {
		return 0
	}
	switch mode {
	case ModeRemove:
		g.RemoveEdge(from, to)
		return 1
	case ModeHighlight:
		if e.Filtered {
			return 0
		}
		e.Filtered = true
		return 1
	}
	return 0
}

// active reports whether a node participates in neighbor counting:
// present and not filtered.
func active(n *dag.Node) bool {
	return n != nil && !n.Filtered
}
