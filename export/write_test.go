package export

import (
	"bytes"
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteGraphML(t *testing.T) {
	doc := Normalize(sampleGraph(t), Options{})

	var buf bytes.Buffer
	require.NoError(t, WriteGraphML(&buf, doc))
	out := buf.String()

	// The output round-trips through the decoder.
	var decoded struct {
		XMLName xml.Name `xml:"graphml"`
		Graph   struct {
			Nodes []struct {
				ID string `xml:"id,attr"`
			} `xml:"node"`
			Edges []struct {
				Source string `xml:"source,attr"`
				Target string `xml:"target,attr"`
			} `xml:"edge"`
		} `xml:"graph"`
	}
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &decoded))
	assert.Len(t, decoded.Graph.Nodes, 5)
	assert.Len(t, decoded.Graph.Edges, 4)

	assert.Contains(t, out, `attr.name="stable_id"`)
	assert.Contains(t, out, `edgedefault="directed"`)
}

func TestWriteGEXF(t *testing.T) {
	doc := Normalize(sampleGraph(t), Options{})

	var buf bytes.Buffer
	require.NoError(t, WriteGEXF(&buf, doc))
	out := buf.String()

	assert.Contains(t, out, `xmlns="http://www.gexf.net/1.2draft"`)
	assert.Contains(t, out, `label="Blur #2"`)
	assert.Contains(t, out, `label="DNA"`)
	assert.Equal(t, 4, strings.Count(out, "<edge "))
}

func TestWriteTo(t *testing.T) {
	doc := Normalize(sampleGraph(t), Options{})

	cases := []struct {
		path   string
		marker string
	}{
		{"out.dot", "digraph pipeline"},
		{"out.gexf", "<gexf"},
		{"out.graphml", "<graphml"},
		{"out.xml", "<graphml"},
	}
	for _, tc := range cases {
		var buf bytes.Buffer
		require.NoError(t, WriteTo(&buf, doc, tc.path))
		assert.Contains(t, buf.String(), tc.marker, tc.path)
	}
}

func TestWriteFile(t *testing.T) {
	doc := Normalize(sampleGraph(t), Options{})
	dir := t.TempDir()

	t.Run("writes the rendered document", func(t *testing.T) {
		path := filepath.Join(dir, "pipeline.dot")
		require.NoError(t, WriteFile(path, doc))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "digraph pipeline")
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		path := filepath.Join(dir, "pipeline.gexf")
		require.NoError(t, WriteFile(path, doc))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		for _, entry := range entries {
			assert.False(t, strings.Contains(entry.Name(), ".tmp"), entry.Name())
		}
	})
}
