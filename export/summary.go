package export

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/pipedag/pipedag/dag"
)

// WriteSummary prints the node-type counts of a graph, with the
// enabled/disabled split for modules.
func WriteSummary(w io.Writer, g *dag.Graph, source string) {
	fmt.Fprintf(w, "Pipeline: %s\n", source)

	counts := make(map[string]int)
	enabled, disabled := 0, 0
	for _, n := range g.Nodes() {
		counts[nodeType(n)]++
		if n.Kind == dag.KindModule {
			if n.Enabled {
				enabled++
			} else {
				disabled++
			}
		}
	}

	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	slices.Sort(types)

	fmt.Fprintln(w, "Graph contains:")
	for _, t := range types {
		if t == "module" {
			fmt.Fprintf(w, "  %d modules (%d enabled, %d disabled)\n", counts[t], enabled, disabled)
		} else {
			fmt.Fprintf(w, "  %d %s nodes\n", counts[t], t)
		}
	}
	fmt.Fprintf(w, "  %d total connections\n", g.EdgeCount())
}

// WriteConnections prints every module connection in human-readable
// form: data items flowing into modules, and modules producing data
// items.
func WriteConnections(w io.Writer, g *dag.Graph) {
	fmt.Fprintln(w, "\nConnections:")
	for _, e := range g.Edges() {
		src, _ := g.Node(e.From)
		dst, _ := g.Node(e.To)
		if src == nil || dst == nil {
			continue
		}
		switch {
		case dst.Kind == dag.KindModule && src.Kind == dag.KindData:
			fmt.Fprintf(w, "  %s (%s) -> [%s]\n", src.Name, displayCategory(src.Category), moduleTag(dst))
		case src.Kind == dag.KindModule && dst.Kind == dag.KindData:
			fmt.Fprintf(w, "  [%s] -> %s (%s)\n", moduleTag(src), dst.Name, displayCategory(dst.Category))
		}
	}
}

// WriteStableIDs prints the mapping from stable module IDs back to
// module names and ordinals.
func WriteStableIDs(w io.Writer, g *dag.Graph) {
	fmt.Fprintln(w, "\nStable module ID mapping:")
	for _, n := range g.Nodes() {
		if n.Kind != dag.KindModule {
			continue
		}
		status := ""
		if !n.Enabled {
			status = " (disabled)"
		}
		fmt.Fprintf(w, "  %s -> %s #%d%s\n", n.Key, n.ModuleName, n.Ordinal, status)
	}
}

func moduleTag(n *dag.Node) string {
	status := ""
	if !n.Enabled {
		status = " (disabled)"
	}
	return fmt.Sprintf("%s #%d%s", n.ModuleName, n.Ordinal, status)
}

func displayCategory(c dag.Category) string {
	return strings.ReplaceAll(strings.ReplaceAll(string(c), "_list", " list"), "_", " ")
}
