package artistnet

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
)

const gexfNS = "http://www.gexf.net/1.2draft"

type gexfAttribute struct {
	ID    string `xml:"id,attr"`
	Title string `xml:"title,attr"`
	Type  string `xml:"type,attr"`
}

type gexfAttValue struct {
	For   string `xml:"for,attr"`
	Value string `xml:"value,attr"`
}

type gexfNode struct {
	ID        string         `xml:"id,attr"`
	Label     string         `xml:"label,attr"`
	AttValues []gexfAttValue `xml:"attvalues>attvalue"`
}

type gexfEdge struct {
	ID     string `xml:"id,attr"`
	Source string `xml:"source,attr"`
	Target string `xml:"target,attr"`
}

type gexfDoc struct {
	XMLName xml.Name `xml:"gexf"`
	XMLNS   string   `xml:"xmlns,attr"`
	Version string   `xml:"version,attr"`
	Graph   struct {
		DefaultEdgeType string `xml:"defaultedgetype,attr"`
		Mode            string `xml:"mode,attr"`
		Attributes      struct {
			Class string          `xml:"class,attr"`
			Mode  string          `xml:"mode,attr"`
			Attrs []gexfAttribute `xml:"attribute"`
		} `xml:"attributes"`
		Nodes []gexfNode `xml:"nodes>node"`
		Edges []gexfEdge `xml:"edges>edge"`
	} `xml:"graph"`
}

// WriteGEXF writes the network as GEXF 1.2, with artist names as node
// ids and the page word count as a node attribute.
func (n *Network) WriteGEXF(w io.Writer) error {
	doc := gexfDoc{XMLNS: gexfNS, Version: "1.2"}
	doc.Graph.DefaultEdgeType = "directed"
	doc.Graph.Mode = "static"
	doc.Graph.Attributes.Class = "node"
	doc.Graph.Attributes.Mode = "static"
	doc.Graph.Attributes.Attrs = []gexfAttribute{{ID: "0", Title: "word_count", Type: "long"}}

	for _, a := range n.Artists() {
		node := gexfNode{ID: a, Label: a}
		if wc, ok := n.WordCount(a); ok {
			node.AttValues = []gexfAttValue{{For: "0", Value: strconv.Itoa(wc)}}
		}
		doc.Graph.Nodes = append(doc.Graph.Nodes, node)
	}
	for i, e := range n.EdgeList() {
		doc.Graph.Edges = append(doc.Graph.Edges,
			gexfEdge{ID: strconv.Itoa(i), Source: e.From, Target: e.To})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// WriteEdgeList writes one "source -> target" line per link.
func (n *Network) WriteEdgeList(w io.Writer) error {
	for _, e := range n.EdgeList() {
		if _, err := fmt.Fprintf(w, "%s -> %s\n", e.From, e.To); err != nil {
			return err
		}
	}
	return nil
}
