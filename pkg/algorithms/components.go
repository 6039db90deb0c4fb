package algorithms

import "github.com/fnuworsu/pgquery/pkg/storage"

// ConnectedComponents partitions every node in g into weakly-connected
// components (an undirected flood-fill over the union of in- and
// out-neighbors), returning each component as the node ids in the
// order they were discovered. Components themselves are ordered by the
// insertion order of their first-discovered node.
func ConnectedComponents(g *storage.Graph) [][]string {
	visited := map[string]bool{}
	var components [][]string

	for _, start := range g.Nodes() {
		if visited[start] {
			continue
		}

		var component []string
		queue := []string{start}
		visited[start] = true

		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			component = append(component, cur)

			for _, t := range g.OutEdgeTypes(cur) {
				for _, next := range g.OutNeighbors(cur, t) {
					if !visited[next] {
						visited[next] = true
						queue = append(queue, next)
					}
				}
			}
			for _, t := range g.InEdgeTypes(cur) {
				for _, prev := range g.InNeighbors(cur, t) {
					if !visited[prev] {
						visited[prev] = true
						queue = append(queue, prev)
					}
				}
			}
		}

		components = append(components, component)
	}

	return components
}
