package algorithms

import (
	"fmt"

	"github.com/fnuworsu/pgquery/internal/graph"
	"github.com/fnuworsu/pgquery/pkg/storage"
)

// PathResult is a concrete walk through the graph: the node ids visited
// in order and the edges connecting them (len(Edges) == len(Nodes)-1).
type PathResult struct {
	Nodes []string
	Edges []graph.EdgeTriple
}

// ShortestPath finds an unweighted shortest path from src to dst using
// BFS. Ties among equal-length paths are broken by adjacency insertion
// order (edge types in first-seen order, then destinations in the order
// their edges were added). Returns (nil, nil) if no path exists.
func ShortestPath(g *storage.Graph, src, dst string) (*PathResult, error) {
	if !g.HasNode(src) {
		return nil, fmt.Errorf("algorithms: shortest path from %s: %w", src, ErrUnknownNode)
	}
	if !g.HasNode(dst) {
		return nil, fmt.Errorf("algorithms: shortest path to %s: %w", dst, ErrUnknownNode)
	}
	if src == dst {
		return &PathResult{Nodes: []string{src}}, nil
	}

	parent := map[string]string{src: ""}
	parentEdge := map[string]graph.EdgeTriple{}
	queue := []string{src}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, t := range g.OutEdgeTypes(cur) {
			for _, next := range g.OutNeighbors(cur, t) {
				if _, seen := parent[next]; seen {
					continue
				}
				parent[next] = cur
				parentEdge[next] = graph.EdgeTriple{Src: cur, Type: t, Dst: next}
				if next == dst {
					return reconstructPath(src, dst, parent, parentEdge), nil
				}
				queue = append(queue, next)
			}
		}
	}

	return nil, nil
}

func reconstructPath(src, dst string, parent map[string]string, parentEdge map[string]graph.EdgeTriple) *PathResult {
	var nodes []string
	var edges []graph.EdgeTriple

	cur := dst
	for cur != src {
		nodes = append(nodes, cur)
		edges = append(edges, parentEdge[cur])
		cur = parent[cur]
	}
	nodes = append(nodes, src)

	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
	for i, j := 0, len(edges)-1; i < j; i, j = i+1, j-1 {
		edges[i], edges[j] = edges[j], edges[i]
	}

	return &PathResult{Nodes: nodes, Edges: edges}
}

// ReachableFrom returns every node id reachable from src by following
// outgoing edges of any type, including src itself.
func ReachableFrom(g *storage.Graph, src string) (map[string]struct{}, error) {
	if !g.HasNode(src) {
		return nil, fmt.Errorf("algorithms: reachable from %s: %w", src, ErrUnknownNode)
	}

	visited := map[string]struct{}{}

	var dfs func(id string)
	dfs = func(id string) {
		if _, ok := visited[id]; ok {
			return
		}
		visited[id] = struct{}{}
		for _, t := range g.OutEdgeTypes(id) {
			for _, next := range g.OutNeighbors(id, t) {
				dfs(next)
			}
		}
	}
	dfs(src)

	return visited, nil
}
