package pipeline

import (
	"strings"

	"github.com/pipedag/pipedag/dag"
)

// The upstream editor writes the literal "None" for unset subscriber
// settings.
const noneMarker = "None"

// ExtractModuleIO converts one raw module descriptor into a typed
// ModuleRecord. Settings with an empty or "None" value are skipped,
// list-typed values are comma-split with empty tokens dropped, and
// unrecognized setting names are silently ignored. This never fails.
func ExtractModuleIO(mod ModuleDescriptor, reg *Registry) dag.ModuleRecord {
	rec := dag.NewModuleRecord(mod.Attributes.ModuleNum, mod.Attributes.Name(), mod.Attributes.IsEnabled())

	for _, setting := range mod.Settings {
		if setting.Value == "" || setting.Value == noneMarker {
			continue
		}
		st, ok := reg.Lookup(setting.Name)
		if !ok {
			continue
		}

		values := []string{setting.Value}
		if st.IsList() {
			values = splitList(setting.Value)
		}

		switch st.Direction {
		case DirInput:
			rec.Inputs[st.Category] = append(rec.Inputs[st.Category], values...)
		case DirOutput:
			rec.Outputs[st.Category] = append(rec.Outputs[st.Category], values...)
		}
	}
	return rec
}

// Extract converts every module of a document, preserving pipeline
// order.
func Extract(doc *Document, reg *Registry) []dag.ModuleRecord {
	records := make([]dag.ModuleRecord, 0, len(doc.Modules))
	for _, mod := range doc.Modules {
		records = append(records, ExtractModuleIO(mod, reg))
	}
	return records
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
