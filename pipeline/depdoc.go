package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"go.uber.org/multierr"

	"github.com/pipedag/pipedag/dag"
)

// ErrInvalidDependency is the sentinel for dependency-document schema
// violations. Schema errors are fatal at validation time, never
// silently coerced.
var ErrInvalidDependency = errors.New("pipeline: invalid dependency record")

// DependencyDocument is the alternate, pre-resolved input: modules
// with explicit typed dependency records and optional liveness
// annotations. No setting-type matching is needed.
type DependencyDocument struct {
	Metadata *DependencyMetadata `json:"metadata,omitempty"`
	Modules  []DependencyModule  `json:"modules"`
}

// DependencyMetadata is the document-level summary block.
type DependencyMetadata struct {
	TotalModules int `json:"total_modules"`
	TotalEdges   int `json:"total_edges"`
}

// DependencyModule is one module with resolved dependencies.
type DependencyModule struct {
	ModuleNum  int                 `json:"module_num"`
	ModuleName string              `json:"module_name"`
	Enabled    *bool               `json:"enabled"`
	Inputs     []Dependency        `json:"inputs"`
	Outputs    []Dependency        `json:"outputs"`
	Liveness   *LivenessAnnotation `json:"liveness,omitempty"`
}

// Dependency is one typed data dependency. Image and object
// dependencies carry Name; measurement dependencies carry ObjectName
// and Feature instead.
type Dependency struct {
	Type       string `json:"type"`
	Name       string `json:"name,omitempty"`
	ObjectName string `json:"object_name,omitempty"`
	Feature    string `json:"feature,omitempty"`
}

// DisplayName resolves the data item name a dependency refers to.
// Measurements are qualified by their object.
func (d Dependency) DisplayName() string {
	if d.Type == string(dag.CategoryMeasurement) {
		return d.ObjectName + "_" + d.Feature
	}
	return d.Name
}

// LivenessAnnotation names the data items newly live and disposed at a
// module.
type LivenessAnnotation struct {
	Live     []string `json:"live,omitempty"`
	Disposed []string `json:"disposed,omitempty"`
}

// ParseDependencyDocument decodes and validates a dependency document.
// Every schema violation in the document is reported, not just the
// first.
func ParseDependencyDocument(data []byte) (*DependencyDocument, error) {
	var doc DependencyDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// LoadDependencyDocument reads and validates a dependency document
// from disk.
func LoadDependencyDocument(path string) (*DependencyDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pipeline: read %s: %w", path, err)
	}
	return ParseDependencyDocument(data)
}

// Validate checks every module's dependencies against the schema and
// aggregates all violations.
func (doc *DependencyDocument) Validate() error {
	var err error
	for i, mod := range doc.Modules {
		for j, dep := range mod.Inputs {
			err = multierr.Append(err, dep.validate(i, mod.ModuleName, "input", j))
		}
		for j, dep := range mod.Outputs {
			err = multierr.Append(err, dep.validate(i, mod.ModuleName, "output", j))
		}
	}
	return err
}

func (d Dependency) validate(moduleIndex int, moduleName, direction string, depIndex int) error {
	where := fmt.Sprintf("module %d (%s) %s %d", moduleIndex, moduleName, direction, depIndex)
	switch d.Type {
	case string(dag.CategoryImage), string(dag.CategoryObject):
		if d.Name == "" {
			return fmt.Errorf("%w: %s: %s dependency requires a name", ErrInvalidDependency, where, d.Type)
		}
	case string(dag.CategoryMeasurement):
		if d.ObjectName == "" || d.Feature == "" {
			return fmt.Errorf("%w: %s: measurement dependency requires object_name and feature", ErrInvalidDependency, where)
		}
	default:
		return fmt.Errorf("%w: %s: unknown dependency type %q", ErrInvalidDependency, where, d.Type)
	}
	return nil
}

// HasLiveness reports whether any module carries liveness annotations.
func (doc *DependencyDocument) HasLiveness() bool {
	for _, mod := range doc.Modules {
		if mod.Liveness != nil && (len(mod.Liveness.Live) > 0 || len(mod.Liveness.Disposed) > 0) {
			return true
		}
	}
	return false
}

// Records converts the document into ModuleRecords, preserving module
// order. The document must already be validated.
func (doc *DependencyDocument) Records() []dag.ModuleRecord {
	records := make([]dag.ModuleRecord, 0, len(doc.Modules))
	for _, mod := range doc.Modules {
		name := mod.ModuleName
		if name == "" {
			name = "Unknown"
		}
		enabled := mod.Enabled == nil || *mod.Enabled
		rec := dag.NewModuleRecord(mod.ModuleNum, name, enabled)

		for _, dep := range mod.Inputs {
			category := dag.Category(dep.Type)
			rec.Inputs[category] = append(rec.Inputs[category], dep.DisplayName())
		}
		for _, dep := range mod.Outputs {
			category := dag.Category(dep.Type)
			rec.Outputs[category] = append(rec.Outputs[category], dep.DisplayName())
		}
		if mod.Liveness != nil {
			rec.Liveness = &dag.Liveness{
				Live:     append([]string(nil), mod.Liveness.Live...),
				Disposed: append([]string(nil), mod.Liveness.Disposed...),
			}
		}
		records = append(records, rec)
	}
	return records
}
