package filter

import (
	"github.com/pipedag/pipedag/dag"
)

// VoidedCleanup removes or highlights modules that earlier passes left
// without any active neighbor: counting only non-filtered nodes over
// non-filtered edges, zero predecessors and zero successors.
//
// The scan iterates to a fixed point, since removing one module can
// orphan a data node that in turn voids another module. Termination is
// guaranteed because every iteration strictly shrinks the active node
// set or stops.
type VoidedCleanup struct{}

func (v *VoidedCleanup) Name() string { return "voided-modules" }

func (v *VoidedCleanup) Apply(g *dag.Graph, mode Mode) (int, error) {
	total := 0
	for {
		var voided []dag.NodeKey
		for _, n := range g.Nodes() {
			if n.Kind != dag.KindModule || !active(n) {
				continue
			}
			if v.activeDegree(g, n.Key) == 0 {
				voided = append(voided, n.Key)
			}
		}
		affected := affectNodes(g, mode, voided)
		total += affected
		if affected == 0 {
			return total, nil
		}
	}
}

func (v *VoidedCleanup) activeDegree(g *dag.Graph, key dag.NodeKey) int {
	degree := 0
	for _, e := range g.InEdges(key) {
		if pred, ok := g.Node(e.From); ok && active(pred) && !e.Filtered {
			degree++
		}
	}
	for _, e := range g.OutEdges(key) {
		if succ, ok := g.Node(e.To); ok && active(succ) && !e.Filtered {
			degree++
		}
	}
	return degree
}
