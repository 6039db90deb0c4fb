package algorithms

import (
	"fmt"

	"github.com/fnuworsu/pgquery/internal/graph"
	"github.com/fnuworsu/pgquery/pkg/storage"
)

// EnumerationResult holds every simple path found within the hop bound,
// the shortest of them, how many distinct nodes the search touched, and
// a count of branches abandoned because they hit maxHops before
// reaching dst.
type EnumerationResult struct {
	Paths          []PathResult
	ShortestPath   *PathResult
	NodesExplored  int
	TruncatedPaths int
}

// EnumeratePaths enumerates every simple path (no repeated node) from
// src to dst along outgoing edges, up to maxHops long. An empty types
// list means any edge type is eligible.
func EnumeratePaths(g *storage.Graph, src, dst string, maxHops int, types []string) (*EnumerationResult, error) {
	if !g.HasNode(src) {
		return nil, fmt.Errorf("algorithms: enumerate paths from %s: %w", src, ErrUnknownNode)
	}
	if !g.HasNode(dst) {
		return nil, fmt.Errorf("algorithms: enumerate paths to %s: %w", dst, ErrUnknownNode)
	}

	result := &EnumerationResult{}
	visited := map[string]bool{src: true}
	explored := map[string]bool{src: true}
	nodes := []string{src}
	edges := make([]graph.EdgeTriple, 0, maxHops)

	var dfs func(cur string, depth int)
	dfs = func(cur string, depth int) {
		if cur == dst && depth > 0 {
			found := PathResult{
				Nodes: append([]string(nil), nodes...),
				Edges: append([]graph.EdgeTriple(nil), edges...),
			}
			result.Paths = append(result.Paths, found)
			if result.ShortestPath == nil || len(found.Edges) < len(result.ShortestPath.Edges) {
				result.ShortestPath = &found
			}
			return
		}
		if depth == maxHops {
			if cur != dst {
				result.TruncatedPaths++
			}
			return
		}

		candidateTypes := types
		if len(candidateTypes) == 0 {
			candidateTypes = g.OutEdgeTypes(cur)
		}
		for _, t := range candidateTypes {
			for _, next := range g.OutNeighbors(cur, t) {
				if visited[next] {
					continue
				}
				visited[next] = true
				explored[next] = true
				nodes = append(nodes, next)
				edges = append(edges, graph.EdgeTriple{Src: cur, Type: t, Dst: next})

				dfs(next, depth+1)

				edges = edges[:len(edges)-1]
				nodes = nodes[:len(nodes)-1]
				visited[next] = false
			}
		}
	}

	dfs(src, 0)
	result.NodesExplored = len(explored)
	return result, nil
}
