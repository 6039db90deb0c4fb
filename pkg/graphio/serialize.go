// Package graphio serializes and deserializes storage.Graph to and from
// a plain JSON document, since the live graph's index maps aren't
// exported and can't be marshaled directly.
package graphio

import (
	"encoding/json"
	"fmt"

	"github.com/fnuworsu/pgquery/internal/graph"
	"github.com/fnuworsu/pgquery/pkg/storage"
)

type nodeRecord struct {
	ID         string           `json:"id"`
	Type       string           `json:"type"`
	Label      string           `json:"label"`
	Properties graph.Properties `json:"properties,omitempty"`
}

type edgeRecord struct {
	Src  string `json:"src"`
	Type string `json:"type"`
	Dst  string `json:"dst"`
}

type document struct {
	Nodes []nodeRecord `json:"nodes"`
	Edges []edgeRecord `json:"edges"`
}

// Encode serializes g's nodes and edges to the {"nodes":[...],"edges":[...]}
// JSON document shape.
func Encode(g *storage.Graph) ([]byte, error) {
	doc := document{}

	for _, id := range g.Nodes() {
		n, _ := g.GetNode(id)
		doc.Nodes = append(doc.Nodes, nodeRecord{
			ID:         n.ID,
			Type:       n.Type,
			Label:      n.Label,
			Properties: n.Properties,
		})
	}

	for _, e := range g.Edges() {
		doc.Edges = append(doc.Edges, edgeRecord{Src: e.Src, Type: e.Type, Dst: e.Dst})
	}

	return json.Marshal(doc)
}

// Decode parses data into a fresh storage.Graph. Duplicate edges
// collapse (AddEdge is idempotent). An edge naming a node id absent
// from the document fails the whole decode with ErrUnknownNode; no
// partial graph is returned on error.
func Decode(data []byte) (*storage.Graph, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("graphio: decode: %w", err)
	}

	g := storage.NewGraph()
	for _, nr := range doc.Nodes {
		g.AddNode(&graph.Node{
			ID:         nr.ID,
			Type:       nr.Type,
			Label:      nr.Label,
			Properties: nr.Properties,
		})
	}

	for _, er := range doc.Edges {
		if err := g.AddEdge(er.Src, er.Type, er.Dst); err != nil {
			return nil, fmt.Errorf("graphio: decode: %w", err)
		}
	}

	return g, nil
}
