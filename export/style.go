package export

import (
	"github.com/pipedag/pipedag/dag"
)

// Process-wide immutable style tables. These are lookup constants, not
// mutable state; treat them as read-only.
var (
	fillColors = map[string]string{
		"image":       "lightgray",
		"object":      "lightgreen",
		"measurement": "lightyellow",
	}

	moduleFillColors = map[bool]string{
		true:  "lightblue", // enabled
		false: "lightpink", // disabled
	}

	shapes = map[string]string{
		"module":      "box",
		"image":       "ellipse",
		"object":      "ellipse",
		"measurement": "ellipse",
	}

	edgeColors = map[dag.EdgeStyle]string{
		dag.StyleLive:     "green",
		dag.StyleDisposed: "red",
	}
)

const (
	filteredFillColor = "gray90"
	filteredFontColor = "gray50"
)

// ApplyStyling fills node attribute maps with shape/color styling.
// Minimal documents are left untouched; callers that want unstyled
// full output simply skip this step.
func ApplyStyling(doc *Document) {
	for i := range doc.Nodes {
		node := &doc.Nodes[i]
		if node.Attrs == nil {
			node.Attrs = make(map[string]string)
		}
		if shape, ok := shapes[node.Type]; ok {
			node.Attrs["shape"] = shape
		}

		switch {
		case node.Filtered:
			node.Attrs["style"] = "filled,dashed"
			node.Attrs["fillcolor"] = filteredFillColor
			node.Attrs["fontcolor"] = filteredFontColor
		case node.Module:
			node.Attrs["style"] = "filled"
			node.Attrs["fontname"] = "Helvetica-Bold"
			node.Attrs["fillcolor"] = moduleFillColors[node.Enabled]
			if !node.Enabled {
				node.Attrs["style"] = "filled,dashed"
			}
		default:
			node.Attrs["style"] = "filled"
			if color, ok := fillColors[node.Type]; ok {
				node.Attrs["fillcolor"] = color
			}
		}
	}
}

// EdgeColor resolves the drawing color of an edge: liveness styling
// first, gray for filtered edges, default otherwise.
func EdgeColor(e Edge) string {
	if color, ok := edgeColors[e.Style]; ok {
		return color
	}
	if e.Filtered {
		return "gray80"
	}
	return ""
}
