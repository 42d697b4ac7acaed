package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMalformedDocument wraps any parse failure of an input document.
// Input errors are fatal and abort before any graph work.
var ErrMalformedDocument = errors.New("pipeline: malformed document")

// Document is a parsed pipeline: an ordered list of module
// descriptors.
type Document struct {
	Modules []ModuleDescriptor `json:"modules" yaml:"modules"`
}

// ModuleDescriptor is one raw module: identification attributes plus
// its flat name/value settings.
type ModuleDescriptor struct {
	Attributes Attributes `json:"attributes" yaml:"attributes"`
	Settings   []Setting  `json:"settings" yaml:"settings"`
}

// Attributes identify a module. Enabled is a pointer so that an absent
// field defaults to true rather than false.
type Attributes struct {
	ModuleNum  int    `json:"module_num" yaml:"module_num"`
	ModuleName string `json:"module_name" yaml:"module_name"`
	Enabled    *bool  `json:"enabled" yaml:"enabled"`
}

// IsEnabled resolves the enabled flag with its default.
func (a Attributes) IsEnabled() bool {
	return a.Enabled == nil || *a.Enabled
}

// Name resolves the module name with its default.
func (a Attributes) Name() string {
	if a.ModuleName == "" {
		return "Unknown"
	}
	return a.ModuleName
}

// Setting is one raw name/value pair of a module.
type Setting struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// ParseDocument decodes a pipeline document from JSON.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	return &doc, nil
}

// ParseDocumentYAML decodes a pipeline document from YAML.
func ParseDocumentYAML(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	return &doc, nil
}

// LoadDocument reads a pipeline document from disk, choosing the
// decoder by file extension (.yaml/.yml → YAML, anything else → JSON).
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pipeline: read %s: %w", path, err)
	}
	if isYAML(path) {
		return ParseDocumentYAML(data)
	}
	return ParseDocument(data)
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
