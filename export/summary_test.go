package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pipedag/pipedag/dag"
)

func TestWriteSummary(t *testing.T) {
	g := sampleGraph(t)
	off, ok := g.Node("Save_3")
	assert.True(t, ok)
	off.Enabled = false

	var buf bytes.Buffer
	WriteSummary(&buf, g, "pipeline.json")
	out := buf.String()

	assert.Contains(t, out, "Pipeline: pipeline.json")
	assert.Contains(t, out, "3 modules (2 enabled, 1 disabled)")
	assert.Contains(t, out, "2 image nodes")
	assert.Contains(t, out, "4 total connections")
}

func TestWriteConnections(t *testing.T) {
	var buf bytes.Buffer
	WriteConnections(&buf, sampleGraph(t))
	out := buf.String()

	assert.Contains(t, out, "[LoadImages #1] -> DNA (image)")
	assert.Contains(t, out, "DNA (image) -> [Blur #2]")
}

func TestWriteStableIDs(t *testing.T) {
	var buf bytes.Buffer
	WriteStableIDs(&buf, sampleGraph(t))
	out := buf.String()

	assert.Contains(t, out, "Stable module ID mapping:")
	assert.Contains(t, out, "Blur_2 -> Blur #2")
}

func TestDisplayCategory(t *testing.T) {
	assert.Equal(t, "image", displayCategory(dag.CategoryImage))
	assert.Equal(t, "image list", displayCategory(dag.CategoryImageList))
}
