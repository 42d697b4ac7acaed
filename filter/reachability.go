package filter

import (
	"errors"
	"slices"

	"github.com/pipedag/pipedag/dag"
)

// ErrNoMatchingRoots is returned when none of the requested root names
// matches a candidate root. Callers treat it as a non-fatal warning:
// the graph passes through unchanged.
var ErrNoMatchingRoots = errors.New("filter: no requested root matches a candidate root data item")

// Reachability keeps only the nodes forward-reachable from the
// requested root data items and removes or highlights everything else.
//
// Candidate roots are data nodes with zero in-degree. When
// SourceModules is set, the build is rooted on those designated loader
// modules instead: candidates are data nodes whose every predecessor
// is one of the named source modules, and each selected root keeps its
// direct source-module predecessors in the reachable set.
type Reachability struct {
	// Roots are the requested root data item display names. Empty
	// means the pass is a no-op.
	Roots []string

	// SourceModules switches candidate selection to the
	// source-module-rooted variant.
	SourceModules []string
}

func (r *Reachability) Name() string { return "reachability" }

func (r *Reachability) Apply(g *dag.Graph, mode Mode) (int, error) {
	if len(r.Roots) == 0 {
		return 0, nil
	}

	requested := make(map[string]bool, len(r.Roots))
	for _, name := range r.Roots {
		requested[name] = true
	}

	var selected []dag.NodeKey
	for _, n := range g.Nodes() {
		if n.Kind != dag.KindData || !active(n) {
			continue
		}
		if !requested[n.Name] {
			continue
		}
		if r.isCandidateRoot(g, n) {
			selected = append(selected, n.Key)
		}
	}
	if len(selected) == 0 {
		return 0, ErrNoMatchingRoots
	}

	reachable := make(map[dag.NodeKey]bool)
	for _, root := range selected {
		r.markReachable(g, root, reachable)
		// In the source-module variant the loader feeding the root
		// stays visible alongside it.
		for _, pred := range g.Predecessors(root) {
			if r.isSourceModule(pred) {
				reachable[pred.Key] = true
			}
		}
	}

	var outside []dag.NodeKey
	for _, n := range g.Nodes() {
		if !reachable[n.Key] && active(n) {
			outside = append(outside, n.Key)
		}
	}
	return affectNodes(g, mode, outside), nil
}

// isCandidateRoot applies the variant-specific root test.
func (r *Reachability) isCandidateRoot(g *dag.Graph, n *dag.Node) bool {
	preds := g.Predecessors(n.Key)
	if len(r.SourceModules) == 0 {
		return len(preds) == 0
	}
	if len(preds) == 0 {
		return false
	}
	for _, pred := range preds {
		if !r.isSourceModule(pred) {
			return false
		}
	}
	return true
}

func (r *Reachability) isSourceModule(n *dag.Node) bool {
	return n.Kind == dag.KindModule && slices.Contains(r.SourceModules, n.ModuleName)
}

// markReachable walks forward from root with a BFS, including the
// root itself.
func (r *Reachability) markReachable(g *dag.Graph, root dag.NodeKey, reachable map[dag.NodeKey]bool) {
	queue := []dag.NodeKey{root}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if reachable[current] {
			continue
		}
		reachable[current] = true
		for _, succ := range g.Successors(current) {
			if !reachable[succ.Key] {
				queue = append(queue, succ.Key)
			}
		}
	}
}
