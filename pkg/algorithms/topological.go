package algorithms

import "github.com/fnuworsu/pgquery/pkg/storage"

// TopologicalSort orders every node in g so that every edge points from
// an earlier node to a later one, using Kahn's algorithm. Nodes with no
// incoming edges are seeded in the graph's insertion order, which makes
// the result deterministic for a given graph even when several valid
// orderings exist. Returns ErrCycle if g is not a DAG.
func TopologicalSort(g *storage.Graph) ([]string, error) {
	nodes := g.Nodes()
	inDegree := make(map[string]int, len(nodes))
	for _, id := range nodes {
		inDegree[id] = 0
	}
	for _, e := range g.Edges() {
		inDegree[e.Dst]++
	}

	queue := make([]string, 0, len(nodes))
	for _, id := range nodes {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	order := make([]string, 0, len(nodes))
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		order = append(order, cur)

		for _, t := range g.OutEdgeTypes(cur) {
			for _, next := range g.OutNeighbors(cur, t) {
				inDegree[next]--
				if inDegree[next] == 0 {
					queue = append(queue, next)
				}
			}
		}
	}

	if len(order) != len(nodes) {
		return nil, ErrCycle
	}
	return order, nil
}
