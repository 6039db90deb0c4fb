// Package layout computes a longest-path layered arrangement over the
// union of edges from a set of matched query paths, for callers that
// want to render or reason about pattern results as a DAG.
package layout

import (
	"sort"

	"github.com/fnuworsu/pgquery/internal/graph"
	"github.com/fnuworsu/pgquery/pkg/query"
)

// Layout is the computed layering of a set of matched paths: which
// layer each node falls in, which nodes occupy each layer, and the
// typical layer each pattern variable was bound to.
type Layout struct {
	layerOf  map[string]int
	byLayer  map[int][]string
	varLayer map[string]int
	maxDepth int
	roots    []string
	edges    []graph.EdgeTriple
}

// Build computes a Layout from a set of matched paths. Nodes with no
// incoming edge within the union are roots at layer 0; every other node
// takes its longest-path distance from a root. varOfNode maps a node id
// to the pattern variable it was most recently bound to across paths,
// letting nodes that the longest-path pass leaves without a layer (those
// on or behind a cycle in the union) be placed at the median layer of
// their variable's layered siblings, or at 0 if there are none.
func Build(paths []query.PathResult) *Layout {
	edgeSet := map[graph.EdgeTriple]bool{}
	var edges []graph.EdgeTriple
	nodeOrder := []string{}
	seenNode := map[string]bool{}
	varOfNode := map[string]string{}

	addNode := func(id string) {
		if !seenNode[id] {
			seenNode[id] = true
			nodeOrder = append(nodeOrder, id)
		}
	}

	for _, p := range paths {
		for v, id := range p.Nodes {
			addNode(id)
			varOfNode[id] = v
		}
		for _, e := range p.Edges {
			addNode(e.Src)
			addNode(e.Dst)
			if !edgeSet[e] {
				edgeSet[e] = true
				edges = append(edges, e)
			}
		}
	}

	inDegree := map[string]int{}
	outAdj := map[string][]string{}
	for _, id := range nodeOrder {
		inDegree[id] = 0
	}
	for _, e := range edges {
		inDegree[e.Dst]++
		outAdj[e.Src] = append(outAdj[e.Src], e.Dst)
	}

	var roots []string
	layerOf := map[string]int{}
	for _, id := range nodeOrder {
		if inDegree[id] == 0 {
			roots = append(roots, id)
			layerOf[id] = 0
		}
	}

	// Longest path from any root: relax in topological (Kahn) order so
	// every predecessor is finalized before its successors are visited.
	remaining := map[string]int{}
	for id, d := range inDegree {
		remaining[id] = d
	}
	queue := append([]string(nil), roots...)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range outAdj[cur] {
			if layerOf[cur]+1 > layerOf[next] {
				layerOf[next] = layerOf[cur] + 1
			}
			remaining[next]--
			if remaining[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	// Orphans: nodes that never got a layer because they sit in a cycle
	// within the union, or downstream of one (caller guarantees a DAG in
	// practice, in which case every node is layered, but stay defensive).
	// Assign the median layer of their variable's siblings.
	siblingLayers := map[string][]int{}
	for _, id := range nodeOrder {
		if l, ok := layerOf[id]; ok {
			if v, ok := varOfNode[id]; ok {
				siblingLayers[v] = append(siblingLayers[v], l)
			}
		}
	}
	for v := range siblingLayers {
		sort.Ints(siblingLayers[v])
	}

	for _, id := range nodeOrder {
		if _, ok := layerOf[id]; ok {
			continue
		}
		v := varOfNode[id]
		if layers, ok := siblingLayers[v]; ok && len(layers) > 0 {
			layerOf[id] = median(layers)
		} else {
			layerOf[id] = 0
		}
	}

	byLayer := map[int][]string{}
	maxDepth := 0
	for _, id := range nodeOrder {
		l := layerOf[id]
		byLayer[l] = append(byLayer[l], id)
		if l > maxDepth {
			maxDepth = l
		}
	}

	varLayer := map[string]int{}
	allVarLayers := map[string][]int{}
	for _, id := range nodeOrder {
		if v, ok := varOfNode[id]; ok {
			allVarLayers[v] = append(allVarLayers[v], layerOf[id])
		}
	}
	for v, layers := range allVarLayers {
		sort.Ints(layers)
		varLayer[v] = median(layers)
	}

	return &Layout{
		layerOf:  layerOf,
		byLayer:  byLayer,
		varLayer: varLayer,
		maxDepth: maxDepth,
		roots:    roots,
		edges:    edges,
	}
}

func median(sorted []int) int {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// Layer returns the layer assigned to id, or -1 if id wasn't part of
// any matched path.
func (l *Layout) Layer(id string) int {
	if v, ok := l.layerOf[id]; ok {
		return v
	}
	return -1
}

// NodesInLayer returns every node id assigned to layer i, in the order
// they were first encountered across the matched paths.
func (l *Layout) NodesInLayer(i int) []string {
	return append([]string(nil), l.byLayer[i]...)
}

// VariableLayer returns the median layer of every node ever bound to
// varName, or -1 if the variable never appeared.
func (l *Layout) VariableLayer(varName string) int {
	if v, ok := l.varLayer[varName]; ok {
		return v
	}
	return -1
}

// MaxDepth returns the deepest layer present in the layout.
func (l *Layout) MaxDepth() int { return l.maxDepth }

// Roots returns the nodes with no incoming edge within the union of
// matched-path edges.
func (l *Layout) Roots() []string { return append([]string(nil), l.roots...) }

// AllEdges returns the deduplicated union of every edge across the
// matched paths that fed this layout.
func (l *Layout) AllEdges() []graph.EdgeTriple { return append([]graph.EdgeTriple(nil), l.edges...) }
