package dag

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func dataNode(c Category, name string) *Node {
	return &Node{Key: c.DataKey(name), Kind: KindData, Category: c, Name: name}
}

func moduleNode(id string, ordinal int) *Node {
	return &Node{Key: NodeKey(id), Kind: KindModule, StableID: id, ModuleName: id, Ordinal: ordinal, Enabled: true}
}

func TestGraphUpserts(t *testing.T) {
	t.Run("AddNode keeps the first node", func(t *testing.T) {
		g := NewGraph()
		first := dataNode(CategoryImage, "DNA")
		second := dataNode(CategoryImage, "DNA")

		assert.Equal(t, first, g.AddNode(first))
		assert.Equal(t, first, g.AddNode(second))
		assert.Equal(t, 1, g.NodeCount())
	})

	t.Run("PutNode replaces attributes", func(t *testing.T) {
		g := NewGraph()
		g.PutNode(moduleNode("M_1", 1))
		g.PutNode(moduleNode("M_1", 7))

		n, ok := g.Node("M_1")
		assert.True(t, ok)
		assert.Equal(t, 7, n.Ordinal)
		assert.Equal(t, 1, g.NodeCount())
	})

	t.Run("AddEdge is idempotent", func(t *testing.T) {
		g := NewGraph()
		g.AddNode(dataNode(CategoryImage, "DNA"))
		g.PutNode(moduleNode("Blur_1", 2))

		e1, err := g.AddEdge("image__DNA", "Blur_1", "image_input")
		assert.NoError(t, err)
		e2, err := g.AddEdge("image__DNA", "Blur_1", "image_input")
		assert.NoError(t, err)
		assert.Equal(t, e1, e2)
		assert.Equal(t, 1, g.EdgeCount())
	})

	t.Run("AddEdge requires both endpoints", func(t *testing.T) {
		g := NewGraph()
		g.AddNode(dataNode(CategoryImage, "DNA"))
		_, err := g.AddEdge("image__DNA", "missing", "image_input")
		assert.Error(t, err)
		assert.True(t, errors.Is(err, ErrNodeNotFound))
	})
}

func TestGraphRemoval(t *testing.T) {
	g := NewGraph()
	g.PutNode(moduleNode("A", 1))
	g.PutNode(moduleNode("B", 2))
	g.AddNode(dataNode(CategoryImage, "DNA"))
	_, err := g.AddEdge("A", "image__DNA", "image_output")
	assert.NoError(t, err)
	_, err = g.AddEdge("image__DNA", "B", "image_input")
	assert.NoError(t, err)

	g.RemoveNode("image__DNA")

	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, 0, g.EdgeCount())
	assert.Equal(t, 0, g.OutDegree("A"))
	assert.Equal(t, 0, g.InDegree("B"))

	// Removing a missing node is a no-op.
	g.RemoveNode("image__DNA")
	assert.Equal(t, 2, g.NodeCount())
}

func TestGraphDeterministicAccessors(t *testing.T) {
	g := NewGraph()
	g.PutNode(moduleNode("Z", 3))
	g.PutNode(moduleNode("A", 1))
	g.PutNode(moduleNode("M", 2))
	g.AddNode(dataNode(CategoryImage, "DNA"))
	for _, id := range []string{"Z", "A", "M"} {
		_, err := g.AddEdge(NodeKey(id), "image__DNA", "image_output")
		assert.NoError(t, err)
	}

	keys := g.Keys()
	assert.Equal(t, []NodeKey{"A", "M", "Z", "image__DNA"}, keys)

	preds := g.Predecessors("image__DNA")
	assert.Equal(t, 3, len(preds))
	assert.Equal(t, NodeKey("A"), preds[0].Key)
	assert.Equal(t, NodeKey("Z"), preds[2].Key)

	edges := g.Edges()
	assert.Equal(t, NodeKey("A"), edges[0].From)
	assert.Equal(t, NodeKey("Z"), edges[2].From)
}

func TestGraphClone(t *testing.T) {
	g := NewGraph()
	g.PutNode(moduleNode("A", 1))
	g.AddNode(dataNode(CategoryImage, "DNA"))
	_, err := g.AddEdge("A", "image__DNA", "image_output")
	assert.NoError(t, err)

	c := g.Clone()
	n, _ := c.Node("A")
	n.Filtered = true
	c.RemoveNode("image__DNA")

	orig, _ := g.Node("A")
	assert.False(t, orig.Filtered)
	assert.True(t, g.HasNode("image__DNA"))
	assert.Equal(t, 1, g.EdgeCount())
}
