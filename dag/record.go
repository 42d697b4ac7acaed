package dag

// ModuleRecord is the typed I/O of one pipeline module, as produced by
// the input boundary (setting extraction or dependency documents).
// Records are immutable once extracted.
type ModuleRecord struct {
	Ordinal int
	Name    string
	Enabled bool

	// Ordered data item names per category. Inputs may carry list
	// categories; outputs never do.
	Inputs  map[Category][]string
	Outputs map[Category][]string

	// Liveness annotations, present only for dependency documents
	// that carry them.
	Liveness *Liveness
}

// Liveness names the data items that newly become live or are
// disposed at a module, for diagnostic edge coloring.
type Liveness struct {
	Live     []string
	Disposed []string
}

// NewModuleRecord returns a record with initialized I/O maps.
func NewModuleRecord(ordinal int, name string, enabled bool) ModuleRecord {
	return ModuleRecord{
		Ordinal: ordinal,
		Name:    name,
		Enabled: enabled,
		Inputs:  make(map[Category][]string),
		Outputs: make(map[Category][]string),
	}
}

// IncludePolicy selects which data categories participate in stable ID
// generation and graph construction. List categories are gated by
// Lists; measurements only occur in dependency documents.
type IncludePolicy struct {
	Images       bool
	Objects      bool
	Lists        bool
	Measurements bool
}

// DefaultPolicy includes every category.
func DefaultPolicy() IncludePolicy {
	return IncludePolicy{Images: true, Objects: true, Lists: true, Measurements: true}
}

// Includes reports whether the given category participates under this
// policy.
func (p IncludePolicy) Includes(c Category) bool {
	switch c {
	case CategoryImage:
		return p.Images
	case CategoryObject:
		return p.Objects
	case CategoryImageList, CategoryObjectList:
		return p.Lists
	case CategoryMeasurement:
		return p.Measurements
	default:
		return false
	}
}

// HasRelevantIO reports whether the record declares any input or
// output in an included category. Modules without relevant I/O never
// become graph nodes.
func (r ModuleRecord) HasRelevantIO(policy IncludePolicy) bool {
	for category, items := range r.Inputs {
		if len(items) > 0 && policy.Includes(category) {
			return true
		}
	}
	for category, items := range r.Outputs {
		if len(items) > 0 && policy.Includes(category) {
			return true
		}
	}
	return false
}
