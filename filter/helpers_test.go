package filter

import (
	"testing"

	"github.com/pipedag/pipedag/dag"
)

func addModule(t *testing.T, g *dag.Graph, id, name string, ordinal int) dag.NodeKey {
	t.Helper()
	key := dag.NodeKey(id)
	g.PutNode(&dag.Node{
		Key:        key,
		Kind:       dag.KindModule,
		StableID:   id,
		Label:      name,
		ModuleName: name,
		Ordinal:    ordinal,
		Enabled:    true,
	})
	return key
}

func addData(t *testing.T, g *dag.Graph, category dag.Category, name string) dag.NodeKey {
	t.Helper()
	key := category.DataKey(name)
	g.AddNode(&dag.Node{Key: key, Kind: dag.KindData, Category: category, Name: name})
	return key
}

func connect(t *testing.T, g *dag.Graph, from, to dag.NodeKey, edgeType string) {
	t.Helper()
	if _, err := g.AddEdge(from, to, edgeType); err != nil {
		t.Fatalf("add edge %s -> %s: %v", from, to, err)
	}
}

// chainGraph builds Load -> DNA -> Blur -> BlurDNA -> Save plus a
// disconnected data item "Stray".
func chainGraph(t *testing.T) *dag.Graph {
	t.Helper()
	g := dag.NewGraph()
	load := addModule(t, g, "Load_1", "LoadImages", 1)
	blur := addModule(t, g, "Blur_2", "Blur", 2)
	save := addModule(t, g, "Save_3", "SaveImages", 3)
	dna := addData(t, g, dag.CategoryImage, "DNA")
	blurDNA := addData(t, g, dag.CategoryImage, "BlurDNA")
	addData(t, g, dag.CategoryImage, "Stray")

	connect(t, g, load, dna, "image_output")
	connect(t, g, dna, blur, "image_input")
	connect(t, g, blur, blurDNA, "image_output")
	connect(t, g, blurDNA, save, "image_input")
	return g
}

// filteredKeys returns the keys flagged filtered, sorted.
func filteredKeys(g *dag.Graph) []string {
	var keys []string
	for _, n := range g.Nodes() {
		if n.Filtered {
			keys = append(keys, string(n.Key))
		}
	}
	return keys
}

// remainingKeys returns the keys of non-filtered nodes, sorted.
func remainingKeys(g *dag.Graph) []string {
	var keys []string
	for _, n := range g.Nodes() {
		if !n.Filtered {
			keys = append(keys, string(n.Key))
		}
	}
	return keys
}
