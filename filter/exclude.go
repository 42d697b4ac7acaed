package filter

import (
	"github.com/pipedag/pipedag/dag"
)

// ExcludeModules removes or highlights every module node whose module
// name is in the exclusion set, regardless of its I/O.
type ExcludeModules struct {
	Names []string
}

func (e *ExcludeModules) Name() string { return "exclude-modules" }

func (e *ExcludeModules) Apply(g *dag.Graph, mode Mode) (int, error) {
	excluded := make(map[string]bool, len(e.Names))
	for _, name := range e.Names {
		excluded[name] = true
	}

	var matched []dag.NodeKey
	for _, n := range g.Nodes() {
		if n.Kind != dag.KindModule || !active(n) {
			continue
		}
		if excluded[n.ModuleName] {
			matched = append(matched, n.Key)
		}
	}
	return affectNodes(g, mode, matched), nil
}
