package filter

import (
	"errors"

	"github.com/pipedag/pipedag/dag"
)

// ErrNoLivenessData is returned when liveness styling is requested but
// no module in the graph carries liveness annotations. This is fatal:
// styling cannot produce a sound result from nothing.
var ErrNoLivenessData = errors.New("filter: liveness tracking requested but the document carries no liveness data")

// LivenessStyling colors the edges between modules and their annotated
// data items: green for items newly live at the module, red for items
// the module disposes. Annotations only exist on dependency-document
// inputs. The pass styles both edge directions and never removes or
// filters anything; the mode is ignored.
type LivenessStyling struct{}

func (l *LivenessStyling) Name() string { return "liveness-styling" }

func (l *LivenessStyling) Apply(g *dag.Graph, _ Mode) (int, error) {
	annotated := false
	styled := 0

	for _, n := range g.Nodes() {
		if n.Kind != dag.KindModule {
			continue
		}
		if len(n.Live) == 0 && len(n.Disposed) == 0 {
			continue
		}
		annotated = true
		styled += l.styleIncident(g, n, n.Live, dag.StyleLive)
		styled += l.styleIncident(g, n, n.Disposed, dag.StyleDisposed)
	}

	if !annotated {
		return 0, ErrNoLivenessData
	}
	return styled, nil
}

// styleIncident styles every edge between the module and an incident
// data node whose display name is in names.
func (l *LivenessStyling) styleIncident(g *dag.Graph, module *dag.Node, names []string, style dag.EdgeStyle) int {
	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[name] = true
	}

	styled := 0
	for _, e := range g.OutEdges(module.Key) {
		if succ, ok := g.Node(e.To); ok && succ.Kind == dag.KindData && wanted[succ.Name] {
			e.Style = style
			styled++
		}
	}
	for _, e := range g.InEdges(module.Key) {
		if pred, ok := g.Node(e.From); ok && pred.Kind == dag.KindData && wanted[pred.Name] {
			e.Style = style
			styled++
		}
	}
	return styled
}
