package dag

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
)

// threeStep builds LoadImages -> Blur -> SaveImages records.
func threeStep(blurEnabled bool) []ModuleRecord {
	load := record(1, "LoadImages", true)
	load = withOutput(load, CategoryImage, "OrigDNA")

	blur := record(2, "Blur", blurEnabled)
	blur = withInput(blur, CategoryImage, "OrigDNA")
	blur = withOutput(blur, CategoryImage, "BlurDNA")

	save := record(3, "SaveImages", true)
	save = withInput(save, CategoryImage, "BlurDNA")

	return []ModuleRecord{load, blur, save}
}

func TestBuild(t *testing.T) {
	t.Run("wires data flow through shared data nodes", func(t *testing.T) {
		g := Build(threeStep(true))

		assert.Equal(t, 5, g.NodeCount()) // 3 modules + 2 data items
		assert.Equal(t, 4, g.EdgeCount())

		blur, ok := g.Node("Blur_fa61329d")
		assert.True(t, ok)
		assert.Equal(t, "Blur #2", blur.Label)
		assert.Equal(t, KindModule, blur.Kind)

		e, ok := g.Edge("image__OrigDNA", "Blur_fa61329d")
		assert.True(t, ok)
		assert.Equal(t, "image_input", e.Type)
	})

	t.Run("disabled modules are skipped by default", func(t *testing.T) {
		g := Build(threeStep(false))

		modules := 0
		for _, n := range g.Nodes() {
			if n.Kind == KindModule {
				modules++
			}
		}
		assert.Equal(t, 2, modules)
		// B's data stays declared by its neighbors, but nothing is
		// implicitly rewired through the gap.
		assert.True(t, g.HasNode("image__OrigDNA"))
		assert.True(t, g.HasNode("image__BlurDNA"))
		assert.Equal(t, 0, g.OutDegree("image__OrigDNA"))
	})

	t.Run("disabled modules are included on request", func(t *testing.T) {
		g := Build(threeStep(false), WithDisabled())

		modules := 0
		var blur *Node
		for _, n := range g.Nodes() {
			if n.Kind == KindModule {
				modules++
				if n.ModuleName == "Blur" {
					blur = n
				}
			}
		}
		assert.Equal(t, 3, modules)
		assert.NotZero(t, blur)
		assert.Equal(t, "Blur #2 (disabled)", blur.Label)
		assert.False(t, blur.Enabled)
	})

	t.Run("modules without relevant IO never become nodes", func(t *testing.T) {
		empty := record(1, "ExportToSpreadsheet", true)
		g := Build([]ModuleRecord{empty})
		assert.Equal(t, 0, g.NodeCount())
	})

	t.Run("category policy drops IO at construction", func(t *testing.T) {
		identify := record(1, "IdentifyPrimaryObjects", true)
		identify = withInput(identify, CategoryImage, "DNA")
		identify = withOutput(identify, CategoryObject, "Nuclei")

		policy := DefaultPolicy()
		policy.Objects = false
		g := Build([]ModuleRecord{identify}, WithPolicy(policy))

		assert.True(t, g.HasNode("image__DNA"))
		assert.False(t, g.HasNode("object__Nuclei"))
	})

	t.Run("list inputs land on normalized data nodes", func(t *testing.T) {
		measure := record(1, "MeasureImageQuality", true)
		measure = withInput(measure, CategoryImageList, "DNA")
		g := Build([]ModuleRecord{measure})

		assert.True(t, g.HasNode("image__DNA"))
		assert.False(t, g.HasNode("image_list__DNA"))

		moduleKey := NodeKey(StableID(measure, DefaultPolicy()))
		e, ok := g.Edge("image__DNA", moduleKey)
		assert.True(t, ok)
		assert.Equal(t, "image_list_input", e.Type)
	})

	t.Run("identical modules merge onto one node", func(t *testing.T) {
		a := record(1, "Blur", true)
		a = withInput(a, CategoryImage, "OrigDNA")
		b := record(5, "Blur", true)
		b = withInput(b, CategoryImage, "OrigDNA")

		g := Build([]ModuleRecord{a, b})

		modules := 0
		for _, n := range g.Nodes() {
			if n.Kind == KindModule {
				modules++
				// Merge keeps the later module's attributes.
				assert.Equal(t, 5, n.Ordinal)
			}
		}
		assert.Equal(t, 1, modules)
	})
}

func TestAttachImplicitOutputs(t *testing.T) {
	t.Run("connects unproduced data to the loader", func(t *testing.T) {
		g := Build(threeStep(true))
		load := StableID(threeStep(true)[0], DefaultPolicy())

		// OrigDNA and BlurDNA both have producers already.
		added, err := AttachImplicitOutputs(g, NodeKey(load))
		assert.NoError(t, err)
		assert.Equal(t, 0, added)

		// Drop BlurDNA's producer edge and re-run.
		g.RemoveEdge("Blur_fa61329d", "image__BlurDNA")
		added, err = AttachImplicitOutputs(g, NodeKey(load))
		assert.NoError(t, err)
		assert.Equal(t, 1, added)

		e, ok := g.Edge(NodeKey(load), "image__BlurDNA")
		assert.True(t, ok)
		assert.Equal(t, "image_output", e.Type)
	})

	t.Run("rejects unknown or non-module loaders", func(t *testing.T) {
		g := Build(threeStep(true))

		_, err := AttachImplicitOutputs(g, "missing")
		assert.True(t, errors.Is(err, ErrNodeNotFound))

		_, err = AttachImplicitOutputs(g, "image__OrigDNA")
		assert.True(t, errors.Is(err, ErrNotModule))
	})
}
