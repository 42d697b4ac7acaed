package filter

import (
	"github.com/pipedag/pipedag/dag"
)

// UnusedData removes or highlights data nodes of the toggled
// categories that no module consumes: zero successors, or only
// successors that are not module nodes.
type UnusedData struct {
	// Categories lists the (normalized) data categories to scan.
	Categories []dag.Category
}

func (u *UnusedData) Name() string { return "unused-data" }

func (u *UnusedData) Apply(g *dag.Graph, mode Mode) (int, error) {
	toggled := make(map[dag.Category]bool, len(u.Categories))
	for _, c := range u.Categories {
		toggled[c.Normalized()] = true
	}

	var unused []dag.NodeKey
	for _, n := range g.Nodes() {
		if n.Kind != dag.KindData || !active(n) {
			continue
		}
		if !toggled[n.Category] {
			continue
		}
		if u.isUnused(g, n.Key) {
			unused = append(unused, n.Key)
		}
	}
	return affectNodes(g, mode, unused), nil
}

func (u *UnusedData) isUnused(g *dag.Graph, key dag.NodeKey) bool {
	for _, succ := range g.Successors(key) {
		if succ.Kind == dag.KindModule && active(succ) {
			return false
		}
	}
	return true
}
