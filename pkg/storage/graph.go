// Package storage implements the in-memory graph store: nodes keyed by
// id, plus eagerly-maintained forward and reverse adjacency indexes keyed
// by edge type. Pattern execution in the query package never scans the
// full edge set; every lookup goes through these indexes.
package storage

import (
	"fmt"

	"github.com/fnuworsu/pgquery/internal/graph"
)

// Graph is the in-memory labelled multigraph. The zero value is not
// usable; construct one with NewGraph.
type Graph struct {
	nodes   map[string]*graph.Node
	nodeIDs *orderedSet
	out     map[string]*adjacency // src -> type -> set of dst
	in      map[string]*adjacency // dst -> type -> set of src
}

// NewGraph creates an empty graph store.
func NewGraph() *Graph {
	return &Graph{
		nodes:   make(map[string]*graph.Node),
		nodeIDs: newOrderedSet(),
		out:     make(map[string]*adjacency),
		in:      make(map[string]*adjacency),
	}
}

// AddNode inserts n, or replaces the existing node with the same id.
// Replacing a node's data does not touch its incident edges.
func (g *Graph) AddNode(n *graph.Node) {
	g.nodes[n.ID] = n
	g.nodeIDs.add(n.ID)
}

// RemoveNode removes a node and every edge incident to it from both
// indexes. No-op if the node is absent.
func (g *Graph) RemoveNode(id string) {
	if _, ok := g.nodes[id]; !ok {
		return
	}

	// Drop outgoing edges: id -> type -> dst, and their mirror in dst's in-index.
	if adj, ok := g.out[id]; ok {
		for _, t := range adj.typeOrder {
			for _, dst := range adj.byType[t].items() {
				if dstIn, ok := g.in[dst]; ok {
					if b := dstIn.bucket(t, false); b != nil {
						b.remove(id)
					}
				}
			}
		}
		delete(g.out, id)
	}

	// Drop incoming edges: src -> type -> id, and their mirror in src's out-index.
	if adj, ok := g.in[id]; ok {
		for _, t := range adj.typeOrder {
			for _, src := range adj.byType[t].items() {
				if srcOut, ok := g.out[src]; ok {
					if b := srcOut.bucket(t, false); b != nil {
						b.remove(id)
					}
				}
			}
		}
		delete(g.in, id)
	}

	delete(g.nodes, id)
	g.nodeIDs.remove(id)
}

// GetNode retrieves a node by id.
func (g *Graph) GetNode(id string) (*graph.Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// HasNode reports whether id names a node in the graph.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Nodes returns every node id, in insertion order.
func (g *Graph) Nodes() []string {
	return g.nodeIDs.items()
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// AddEdge inserts the edge (src, edgeType, dst). Both endpoints must
// already exist; otherwise ErrUnknownNode is returned and the graph is
// left unchanged. Adding the same triple twice is a no-op (idempotent).
func (g *Graph) AddEdge(src, edgeType, dst string) error {
	if !g.HasNode(src) {
		return fmt.Errorf("storage: add edge %s-[%s]->%s: %w", src, edgeType, dst, ErrUnknownNode)
	}
	if !g.HasNode(dst) {
		return fmt.Errorf("storage: add edge %s-[%s]->%s: %w", src, edgeType, dst, ErrUnknownNode)
	}

	outAdj, ok := g.out[src]
	if !ok {
		outAdj = newAdjacency()
		g.out[src] = outAdj
	}
	outAdj.bucket(edgeType, true).add(dst)

	inAdj, ok := g.in[dst]
	if !ok {
		inAdj = newAdjacency()
		g.in[dst] = inAdj
	}
	inAdj.bucket(edgeType, true).add(src)

	return nil
}

// RemoveEdge deletes the edge (src, edgeType, dst). No-op if absent.
func (g *Graph) RemoveEdge(src, edgeType, dst string) {
	if adj, ok := g.out[src]; ok {
		if b := adj.bucket(edgeType, false); b != nil {
			b.remove(dst)
		}
	}
	if adj, ok := g.in[dst]; ok {
		if b := adj.bucket(edgeType, false); b != nil {
			b.remove(src)
		}
	}
}

// HasEdge reports whether the triple (src, edgeType, dst) exists.
func (g *Graph) HasEdge(src, edgeType, dst string) bool {
	adj, ok := g.out[src]
	if !ok {
		return false
	}
	b := adj.bucket(edgeType, false)
	return b != nil && b.has(dst)
}

// OutNeighbors returns the destinations reachable from src via edges of
// edgeType. An empty edgeType means "any type" (the deduplicated union
// over all outgoing edge types).
func (g *Graph) OutNeighbors(src, edgeType string) []string {
	adj, ok := g.out[src]
	if !ok {
		return nil
	}
	return adj.neighbors(edgeType)
}

// InNeighbors is the symmetric counterpart of OutNeighbors: sources with
// an edge of edgeType pointing at dst.
func (g *Graph) InNeighbors(dst, edgeType string) []string {
	adj, ok := g.in[dst]
	if !ok {
		return nil
	}
	return adj.neighbors(edgeType)
}

// OutEdgeTypes returns the edge types that appear on at least one
// outgoing edge from src, in first-seen order.
func (g *Graph) OutEdgeTypes(src string) []string {
	adj, ok := g.out[src]
	if !ok {
		return nil
	}
	var out []string
	for _, t := range adj.typeOrder {
		if adj.byType[t].len() > 0 {
			out = append(out, t)
		}
	}
	return out
}

// InEdgeTypes is the symmetric counterpart of OutEdgeTypes.
func (g *Graph) InEdgeTypes(dst string) []string {
	adj, ok := g.in[dst]
	if !ok {
		return nil
	}
	var out []string
	for _, t := range adj.typeOrder {
		if adj.byType[t].len() > 0 {
			out = append(out, t)
		}
	}
	return out
}

// EdgeCount returns the total number of distinct (src, type, dst) triples.
func (g *Graph) EdgeCount() int {
	count := 0
	for _, adj := range g.out {
		for _, t := range adj.typeOrder {
			count += adj.byType[t].len()
		}
	}
	return count
}

// Edges returns every edge triple in the graph, grouped by source node in
// insertion order, then by edge type, then by destination.
func (g *Graph) Edges() []graph.EdgeTriple {
	var out []graph.EdgeTriple
	for _, src := range g.nodeIDs.items() {
		adj, ok := g.out[src]
		if !ok {
			continue
		}
		for _, t := range adj.typeOrder {
			for _, dst := range adj.byType[t].items() {
				out = append(out, graph.EdgeTriple{Src: src, Type: t, Dst: dst})
			}
		}
	}
	return out
}
