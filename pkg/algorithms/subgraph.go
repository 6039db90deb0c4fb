package algorithms

import (
	"fmt"

	"github.com/fnuworsu/pgquery/internal/graph"
	"github.com/fnuworsu/pgquery/pkg/storage"
)

// SubgraphResult is the induced neighborhood of a seed set, expanded
// independently forward and backward.
type SubgraphResult struct {
	Nodes []string

	// ForwardDistance/BackwardDistance record hop counts from the
	// nearest seed, only for nodes reached by that expansion. A seed
	// always has distance 0 in both.
	ForwardDistance  map[string]int
	BackwardDistance map[string]int

	Edges []graph.EdgeTriple
}

// ExpandSubgraph runs two independent bounded BFSes from seeds: forward
// over rightward edge types up to forwardHops, and backward over
// leftward edge types up to backwardHops. An empty type list means "any
// type" for that direction. The result is the union of nodes touched by
// either expansion, plus every edge either expansion followed from a node
// inside its hop bound, including edges into nodes already reached. Edges
// are not deduplicated: an edge followed by both expansions is listed
// once for each.
func ExpandSubgraph(g *storage.Graph, seeds []string, rightward, leftward []string, forwardHops, backwardHops int) (*SubgraphResult, error) {
	for _, s := range seeds {
		if !g.HasNode(s) {
			return nil, fmt.Errorf("algorithms: expand subgraph from %s: %w", s, ErrUnknownNode)
		}
	}

	result := &SubgraphResult{
		ForwardDistance:  map[string]int{},
		BackwardDistance: map[string]int{},
	}

	nodeSet := map[string]bool{}
	var order []string
	include := func(id string) {
		if !nodeSet[id] {
			nodeSet[id] = true
			order = append(order, id)
		}
	}
	for _, s := range seeds {
		include(s)
		result.ForwardDistance[s] = 0
		result.BackwardDistance[s] = 0
	}

	var edges []graph.EdgeTriple

	bfs := func(types []string, hops int, neighborTypes func(string) []string, neighbors func(string, string) []string, mkEdge func(cur, next, edgeType string) graph.EdgeTriple, dist map[string]int) {
		if hops <= 0 {
			return
		}
		queue := append([]string(nil), seeds...)
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			curDist := dist[cur]
			if curDist >= hops {
				continue
			}

			candidateTypes := types
			if len(candidateTypes) == 0 {
				candidateTypes = neighborTypes(cur)
			}
			for _, t := range candidateTypes {
				for _, next := range neighbors(cur, t) {
					edges = append(edges, mkEdge(cur, next, t))
					if _, seen := dist[next]; seen {
						continue
					}
					dist[next] = curDist + 1
					include(next)
					queue = append(queue, next)
				}
			}
		}
	}

	bfs(rightward, forwardHops, g.OutEdgeTypes, g.OutNeighbors,
		func(cur, next, t string) graph.EdgeTriple { return graph.EdgeTriple{Src: cur, Type: t, Dst: next} },
		result.ForwardDistance)
	bfs(leftward, backwardHops, g.InEdgeTypes, g.InNeighbors,
		func(cur, next, t string) graph.EdgeTriple { return graph.EdgeTriple{Src: next, Type: t, Dst: cur} },
		result.BackwardDistance)

	result.Nodes = order
	result.Edges = edges
	return result, nil
}
