package export

import (
	"encoding/xml"
	"fmt"
	"io"
)

type gexfAttValue struct {
	XMLName xml.Name `xml:"attvalue"`
	For     string   `xml:"for,attr"`
	Value   string   `xml:"value,attr"`
}

type gexfNode struct {
	XMLName   xml.Name       `xml:"node"`
	ID        string         `xml:"id,attr"`
	Label     string         `xml:"label,attr"`
	AttValues []gexfAttValue `xml:"attvalues>attvalue"`
}

type gexfEdge struct {
	XMLName xml.Name `xml:"edge"`
	ID      string   `xml:"id,attr"`
	Source  string   `xml:"source,attr"`
	Target  string   `xml:"target,attr"`
}

type gexfAttribute struct {
	XMLName xml.Name `xml:"attribute"`
	ID      string   `xml:"id,attr"`
	Title   string   `xml:"title,attr"`
	Type    string   `xml:"type,attr"`
}

type gexfGraph struct {
	XMLName    xml.Name        `xml:"graph"`
	EdgeType   string          `xml:"defaultedgetype,attr"`
	Attributes []gexfAttribute `xml:"attributes>attribute"`
	Nodes      []gexfNode      `xml:"nodes>node"`
	Edges      []gexfEdge      `xml:"edges>edge"`
}

type gexfDoc struct {
	XMLName xml.Name  `xml:"gexf"`
	XMLNS   string    `xml:"xmlns,attr"`
	Version string    `xml:"version,attr"`
	Graph   gexfGraph `xml:"graph"`
}

// WriteGEXF renders a normalized document as GEXF.
func WriteGEXF(w io.Writer, doc *Document) error {
	out := gexfDoc{
		XMLNS:   "http://www.gexf.net/1.2draft",
		Version: "1.2",
		Graph: gexfGraph{
			EdgeType: "directed",
			Attributes: []gexfAttribute{
				{ID: "0", Title: "type", Type: "string"},
				{ID: "1", Title: "filtered", Type: "boolean"},
			},
		},
	}

	for _, node := range doc.Nodes {
		label := node.Label
		if label == "" {
			label = node.Key
		}
		n := gexfNode{ID: node.Key, Label: label}
		n.AttValues = append(n.AttValues, gexfAttValue{For: "0", Value: node.Type})
		if node.Filtered {
			n.AttValues = append(n.AttValues, gexfAttValue{For: "1", Value: "true"})
		}
		out.Graph.Nodes = append(out.Graph.Nodes, n)
	}

	for i, edge := range doc.Edges {
		out.Graph.Edges = append(out.Graph.Edges, gexfEdge{
			ID:     fmt.Sprintf("%d", i),
			Source: edge.From,
			Target: edge.To,
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("export: encode gexf: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}
