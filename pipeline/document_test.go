package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pipelineJSON = `{
  "modules": [
    {
      "attributes": {"module_num": 1, "module_name": "LoadImages"},
      "settings": [
        {"name": "` + SettingImageOutput + `", "value": "OrigDNA"}
      ]
    },
    {
      "attributes": {"module_num": 2, "module_name": "Blur", "enabled": false},
      "settings": []
    }
  ]
}`

const pipelineYAML = `modules:
  - attributes:
      module_num: 1
      module_name: LoadImages
    settings:
      - name: ` + SettingImageOutput + `
        value: OrigDNA
`

func TestParseDocument(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		doc, err := ParseDocument([]byte(pipelineJSON))
		require.NoError(t, err)
		require.Len(t, doc.Modules, 2)

		assert.Equal(t, "LoadImages", doc.Modules[0].Attributes.Name())
		assert.True(t, doc.Modules[0].Attributes.IsEnabled())
		assert.False(t, doc.Modules[1].Attributes.IsEnabled())
		assert.Equal(t, "OrigDNA", doc.Modules[0].Settings[0].Value)
	})

	t.Run("yaml", func(t *testing.T) {
		doc, err := ParseDocumentYAML([]byte(pipelineYAML))
		require.NoError(t, err)
		require.Len(t, doc.Modules, 1)
		assert.Equal(t, SettingImageOutput, doc.Modules[0].Settings[0].Name)
	})

	t.Run("malformed input is fatal", func(t *testing.T) {
		_, err := ParseDocument([]byte(`{"modules": [`))
		assert.ErrorIs(t, err, ErrMalformedDocument)

		_, err = ParseDocumentYAML([]byte("modules: [\n  broken"))
		assert.ErrorIs(t, err, ErrMalformedDocument)
	})
}

func TestLoadDocument(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "pipeline.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(pipelineJSON), 0o644))
	yamlPath := filepath.Join(dir, "pipeline.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(pipelineYAML), 0o644))

	t.Run("picks decoder by extension", func(t *testing.T) {
		doc, err := LoadDocument(jsonPath)
		require.NoError(t, err)
		assert.Len(t, doc.Modules, 2)

		doc, err = LoadDocument(yamlPath)
		require.NoError(t, err)
		assert.Len(t, doc.Modules, 1)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadDocument(filepath.Join(dir, "absent.json"))
		assert.Error(t, err)
	})
}

func TestAttributesDefaults(t *testing.T) {
	var a Attributes
	assert.Equal(t, "Unknown", a.Name())
	assert.True(t, a.IsEnabled())
}
