package pipeline

import (
	"github.com/pipedag/pipedag/dag"
)

// Known setting-type identifiers emitted by the upstream pipeline
// editor. The table grows as upstream module types grow; Register adds
// new ones without touching extraction logic.
const (
	SettingImageInput     = "cellprofiler_core.setting.subscriber.image_subscriber._image_subscriber.ImageSubscriber"
	SettingLabelInput     = "cellprofiler_core.setting.subscriber._label_subscriber.LabelSubscriber"
	SettingImageListInput = "cellprofiler_core.setting.subscriber.list_subscriber._image_list_subscriber.ImageListSubscriber"
	SettingLabelListInput = "cellprofiler_core.setting.subscriber.list_subscriber._label_list_subscriber.LabelListSubscriber"
	SettingImageOutput    = "cellprofiler_core.setting.text.alphanumeric.name.image_name._image_name.ImageName"
	SettingLabelOutput    = "cellprofiler_core.setting.text.alphanumeric.name._label_name.LabelName"
)

// Direction tells whether a recognized setting declares an input or an
// output of its module.
type Direction int

const (
	DirInput Direction = iota
	DirOutput
)

// SettingType classifies one recognized setting-type identifier.
type SettingType struct {
	Category  dag.Category
	Direction Direction
}

// IsList reports whether values of this setting are comma-separated
// lists.
func (s SettingType) IsList() bool {
	return s.Category == dag.CategoryImageList || s.Category == dag.CategoryObjectList
}

// Registry maps setting-type identifiers to their classification. The
// zero value is unusable; construct with NewRegistry or
// DefaultRegistry.
type Registry struct {
	types map[string]SettingType
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[string]SettingType)}
}

// DefaultRegistry returns a registry preloaded with the known
// upstream setting-type identifiers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(SettingImageInput, SettingType{Category: dag.CategoryImage, Direction: DirInput})
	r.Register(SettingLabelInput, SettingType{Category: dag.CategoryObject, Direction: DirInput})
	r.Register(SettingImageListInput, SettingType{Category: dag.CategoryImageList, Direction: DirInput})
	r.Register(SettingLabelListInput, SettingType{Category: dag.CategoryObjectList, Direction: DirInput})
	r.Register(SettingImageOutput, SettingType{Category: dag.CategoryImage, Direction: DirOutput})
	r.Register(SettingLabelOutput, SettingType{Category: dag.CategoryObject, Direction: DirOutput})
	return r
}

// Register adds or replaces a setting-type identifier.
func (r *Registry) Register(name string, st SettingType) {
	r.types[name] = st
}

// Lookup returns the classification of a setting-type identifier.
func (r *Registry) Lookup(name string) (SettingType, bool) {
	st, ok := r.types[name]
	return st, ok
}

// Len returns the number of registered identifiers.
func (r *Registry) Len() int {
	return len(r.types)
}
