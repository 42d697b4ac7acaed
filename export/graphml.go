package export

import (
	"encoding/xml"
	"fmt"
	"io"
)

// GraphML attribute keys, declared once per document in a fixed order.
var graphmlKeys = []graphmlKey{
	{ID: "d0", For: "node", Name: "type", Type: "string"},
	{ID: "d1", For: "node", Name: "label", Type: "string"},
	{ID: "d2", For: "node", Name: "enabled", Type: "boolean"},
	{ID: "d3", For: "node", Name: "filtered", Type: "boolean"},
	{ID: "d4", For: "node", Name: "stable_id", Type: "string"},
	{ID: "d5", For: "node", Name: "ordinal", Type: "int"},
	{ID: "d6", For: "edge", Name: "type", Type: "string"},
	{ID: "d7", For: "edge", Name: "filtered", Type: "boolean"},
	{ID: "d8", For: "edge", Name: "color", Type: "string"},
}

type graphmlKey struct {
	XMLName xml.Name `xml:"key"`
	ID      string   `xml:"id,attr"`
	For     string   `xml:"for,attr"`
	Name    string   `xml:"attr.name,attr"`
	Type    string   `xml:"attr.type,attr"`
}

type graphmlData struct {
	XMLName xml.Name `xml:"data"`
	Key     string   `xml:"key,attr"`
	Value   string   `xml:",chardata"`
}

type graphmlNode struct {
	XMLName xml.Name `xml:"node"`
	ID      string   `xml:"id,attr"`
	Data    []graphmlData
}

type graphmlEdge struct {
	XMLName xml.Name `xml:"edge"`
	Source  string   `xml:"source,attr"`
	Target  string   `xml:"target,attr"`
	Data    []graphmlData
}

type graphmlGraph struct {
	XMLName     xml.Name `xml:"graph"`
	EdgeDefault string   `xml:"edgedefault,attr"`
	Nodes       []graphmlNode
	Edges       []graphmlEdge
}

type graphmlDoc struct {
	XMLName xml.Name `xml:"graphml"`
	XMLNS   string   `xml:"xmlns,attr"`
	Keys    []graphmlKey
	Graph   graphmlGraph
}

// WriteGraphML renders a normalized document as GraphML.
func WriteGraphML(w io.Writer, doc *Document) error {
	out := graphmlDoc{
		XMLNS: "http://graphml.graphdrawing.org/xmlns",
		Keys:  graphmlKeys,
		Graph: graphmlGraph{EdgeDefault: "directed"},
	}

	for _, node := range doc.Nodes {
		n := graphmlNode{ID: node.Key}
		n.Data = append(n.Data, graphmlData{Key: "d0", Value: node.Type})
		if node.Label != "" {
			n.Data = append(n.Data, graphmlData{Key: "d1", Value: node.Label})
		}
		if node.Module {
			n.Data = append(n.Data,
				graphmlData{Key: "d2", Value: fmt.Sprintf("%t", node.Enabled)},
				graphmlData{Key: "d4", Value: node.StableID},
				graphmlData{Key: "d5", Value: fmt.Sprintf("%d", node.Ordinal)},
			)
		}
		if node.Filtered {
			n.Data = append(n.Data, graphmlData{Key: "d3", Value: "true"})
		}
		out.Graph.Nodes = append(out.Graph.Nodes, n)
	}

	for _, edge := range doc.Edges {
		e := graphmlEdge{Source: edge.From, Target: edge.To}
		if edge.Type != "" {
			e.Data = append(e.Data, graphmlData{Key: "d6", Value: edge.Type})
		}
		if edge.Filtered {
			e.Data = append(e.Data, graphmlData{Key: "d7", Value: "true"})
		}
		if color := EdgeColor(edge); color != "" {
			e.Data = append(e.Data, graphmlData{Key: "d8", Value: color})
		}
		out.Graph.Edges = append(out.Graph.Edges, e)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("export: encode graphml: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}
