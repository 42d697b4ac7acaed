package filter

import (
	"github.com/pipedag/pipedag/dag"
)

// MultiParent resolves data nodes with more than one producer. If any
// predecessor is a module node, only the edge from the module with the
// highest ordinal survives; edges from every other predecessor are
// removed or highlighted. Ordinals are unique within a pipeline, so no
// tie-break is needed.
//
// This encodes the policy that the last module (by pipeline position)
// to produce a data item is its authoritative source.
type MultiParent struct{}

func (m *MultiParent) Name() string { return "multi-parent" }

func (m *MultiParent) Apply(g *dag.Graph, mode Mode) (int, error) {
	affected := 0
	for _, n := range g.Nodes() {
		if n.Kind != dag.KindData || !active(n) {
			continue
		}

		var preds []*dag.Node
		for _, pred := range g.Predecessors(n.Key) {
			if edge, ok := g.Edge(pred.Key, n.Key); ok && active(pred) && !edge.Filtered {
				preds = append(preds, pred)
			}
		}
		if len(preds) <= 1 {
			continue
		}

		var winner *dag.Node
		for _, pred := range preds {
			if pred.Kind != dag.KindModule {
				continue
			}
			if winner == nil || pred.Ordinal > winner.Ordinal {
				winner = pred
			}
		}
		if winner == nil {
			continue
		}

		for _, pred := range preds {
			if pred.Key == winner.Key {
				continue
			}
			affected += affectEdge(g, mode, pred.Key, n.Key)
		}
	}
	return affected, nil
}
