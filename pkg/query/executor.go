package query

import (
	"sort"
	"strings"

	"github.com/fnuworsu/pgquery/internal/graph"
	"github.com/fnuworsu/pgquery/pkg/storage"
)

// Query is a parsed, reusable pattern ready to run against any Graph.
type Query struct {
	pattern *Pattern
}

// NewQuery parses source and returns a Query that can be run repeatedly.
func NewQuery(source string) (*Query, error) {
	pat, err := Parse(source)
	if err != nil {
		return nil, err
	}
	return &Query{pattern: pat}, nil
}

// Row binds every named variable in the pattern (nodes to ids, edges to
// types) for a single match.
type Row map[string]string

// PathResult is one matched chain, including the full edge sequence
// traversed (not just the variables bound along the way).
type PathResult struct {
	Nodes map[string]string
	Edges []graph.EdgeTriple
}

// GroupedResult maps each named variable to the distinct values it took
// across every match, in first-seen order.
type GroupedResult map[string][]string

// partial is one in-progress binding during pattern execution.
type partial struct {
	ids      []string
	nodeVars map[string]string
	edgeVars map[string]string
	edges    []graph.EdgeTriple
}

func newPartial() *partial {
	return &partial{nodeVars: map[string]string{}, edgeVars: map[string]string{}}
}

func (p *partial) clone() *partial {
	np := &partial{
		ids:      append([]string(nil), p.ids...),
		nodeVars: make(map[string]string, len(p.nodeVars)),
		edgeVars: make(map[string]string, len(p.edgeVars)),
		edges:    append([]graph.EdgeTriple(nil), p.edges...),
	}
	for k, v := range p.nodeVars {
		np.nodeVars[k] = v
	}
	for k, v := range p.edgeVars {
		np.edgeVars[k] = v
	}
	return np
}

// key returns a deterministic string identifying this partial's full set
// of variable bindings, used to dedup MatchRows results.
func (p *partial) key() string {
	keys := make([]string, 0, len(p.nodeVars)+len(p.edgeVars))
	for k := range p.nodeVars {
		keys = append(keys, "n:"+k)
	}
	for k := range p.edgeVars {
		keys = append(keys, "e:"+k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		if strings.HasPrefix(k, "n:") {
			b.WriteString(p.nodeVars[k[2:]])
		} else {
			b.WriteString(p.edgeVars[k[2:]])
		}
		b.WriteByte(';')
	}
	return b.String()
}

// Match runs the pattern and returns, for each variable, the distinct
// values it was bound to across all matches. If startID is non-empty,
// the first node spec is seeded only from that id; otherwise every node
// satisfying the first spec is tried as a start.
func (q *Query) Match(g *storage.Graph, startID string) (GroupedResult, error) {
	partials, err := q.run(g, startID)
	if err != nil {
		return nil, err
	}

	result := GroupedResult{}
	seen := map[string]map[string]bool{}
	for _, p := range partials {
		for v, id := range p.nodeVars {
			if seen[v] == nil {
				seen[v] = map[string]bool{}
			}
			if !seen[v][id] {
				seen[v][id] = true
				result[v] = append(result[v], id)
			}
		}
		for v, t := range p.edgeVars {
			if seen[v] == nil {
				seen[v] = map[string]bool{}
			}
			if !seen[v][t] {
				seen[v][t] = true
				result[v] = append(result[v], t)
			}
		}
	}
	return result, nil
}

// MatchRows runs the pattern and returns one Row per distinct full
// binding (every named variable's value together), deduplicated.
func (q *Query) MatchRows(g *storage.Graph, startID string) ([]Row, error) {
	partials, err := q.run(g, startID)
	if err != nil {
		return nil, err
	}

	var rows []Row
	seen := map[string]bool{}
	for _, p := range partials {
		k := p.key()
		if seen[k] {
			continue
		}
		seen[k] = true

		row := Row{}
		for v, id := range p.nodeVars {
			row[v] = id
		}
		for v, t := range p.edgeVars {
			row[v] = t
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// MatchPaths runs the pattern and returns every distinct chain matched,
// including ones with identical variable bindings but different edges
// (e.g. a parallel edge or a different variable-length route). No
// deduplication is performed.
func (q *Query) MatchPaths(g *storage.Graph, startID string) ([]PathResult, error) {
	partials, err := q.run(g, startID)
	if err != nil {
		return nil, err
	}

	out := make([]PathResult, 0, len(partials))
	for _, p := range partials {
		nodes := make(map[string]string, len(p.nodeVars))
		for v, id := range p.nodeVars {
			nodes[v] = id
		}
		out = append(out, PathResult{
			Nodes: nodes,
			Edges: append([]graph.EdgeTriple(nil), p.edges...),
		})
	}
	return out, nil
}

// run seeds the first node spec, steps every edge segment in order, and
// applies the WHERE predicate, returning every surviving binding.
func (q *Query) run(g *storage.Graph, startID string) ([]*partial, error) {
	pat := q.pattern
	first := pat.Nodes[0]

	var current []*partial
	if startID != "" {
		node, ok := g.GetNode(startID)
		if !ok || !matchesNodeSpec(node, first) {
			return nil, nil
		}
		p := newPartial()
		p.ids = append(p.ids, startID)
		if first.Variable != "" {
			p.nodeVars[first.Variable] = startID
		}
		current = []*partial{p}
	} else {
		for _, id := range g.Nodes() {
			node, ok := g.GetNode(id)
			if !ok || !matchesNodeSpec(node, first) {
				continue
			}
			p := newPartial()
			p.ids = append(p.ids, id)
			if first.Variable != "" {
				p.nodeVars[first.Variable] = id
			}
			current = append(current, p)
		}
	}

	for i := range pat.Edges {
		if len(current) == 0 {
			break
		}
		edge := pat.Edges[i]
		target := pat.Nodes[i+1]

		var next []*partial
		for _, p := range current {
			extended, err := q.stepSegment(g, p, edge, target)
			if err != nil {
				return nil, err
			}
			next = append(next, extended...)
		}
		current = next
	}

	if pat.Where == nil {
		return current, nil
	}

	filtered := make([]*partial, 0, len(current))
	for _, p := range current {
		ok, err := evaluatePredicate(pat.Where, p.nodeVars, p.edgeVars, g)
		if err != nil {
			return nil, err
		}
		if ok {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func (q *Query) stepSegment(g *storage.Graph, p *partial, edge EdgeSpec, target NodeSpec) ([]*partial, error) {
	src := p.ids[len(p.ids)-1]
	if edge.VariableLength {
		return stepVariableLength(g, p, src, edge, target), nil
	}
	return stepFixed(g, p, src, edge, target), nil
}

// edgeTypesFrom resolves the candidate edge types to explore from node
// when the edge spec didn't pin one down explicitly.
func edgeTypesFrom(g *storage.Graph, node string, dir Direction) []string {
	switch dir {
	case DirectionForward:
		return g.OutEdgeTypes(node)
	case DirectionBackward:
		return g.InEdgeTypes(node)
	default:
		seen := map[string]bool{}
		var types []string
		for _, t := range g.OutEdgeTypes(node) {
			if !seen[t] {
				seen[t] = true
				types = append(types, t)
			}
		}
		for _, t := range g.InEdgeTypes(node) {
			if !seen[t] {
				seen[t] = true
				types = append(types, t)
			}
		}
		return types
	}
}

func stepFixed(g *storage.Graph, p *partial, src string, edge EdgeSpec, target NodeSpec) []*partial {
	candidateTypes := edge.Types
	if len(candidateTypes) == 0 {
		candidateTypes = edgeTypesFrom(g, src, edge.Direction)
	}

	var results []*partial
	extend := func(edgeType, neighbor string, triple graph.EdgeTriple) {
		node, ok := g.GetNode(neighbor)
		if !ok || !matchesNodeSpec(node, target) {
			return
		}
		if edge.Variable != "" {
			if existing, bound := p.edgeVars[edge.Variable]; bound && existing != edgeType {
				return
			}
		}
		np := p.clone()
		np.ids = append(np.ids, neighbor)
		if target.Variable != "" {
			np.nodeVars[target.Variable] = neighbor
		}
		if edge.Variable != "" {
			np.edgeVars[edge.Variable] = edgeType
		}
		np.edges = append(np.edges, triple)
		results = append(results, np)
	}

	for _, t := range candidateTypes {
		if edge.Direction == DirectionForward || edge.Direction == DirectionAny {
			for _, dst := range g.OutNeighbors(src, t) {
				extend(t, dst, graph.EdgeTriple{Src: src, Type: t, Dst: dst})
			}
		}
		if edge.Direction == DirectionBackward || edge.Direction == DirectionAny {
			for _, other := range g.InNeighbors(src, t) {
				extend(t, other, graph.EdgeTriple{Src: other, Type: t, Dst: src})
			}
		}
	}
	return results
}

// stepVariableLength enumerates every distinct simple-path chain (no
// node revisited within the segment) satisfying the quantifier's bounds,
// via bounded DFS. Every qualifying length in [MinHops, MaxHops] yields
// its own result, not just the shortest.
func stepVariableLength(g *storage.Graph, p *partial, src string, edge EdgeSpec, target NodeSpec) []*partial {
	var results []*partial
	visited := map[string]bool{src: true}
	chain := make([]graph.EdgeTriple, 0, edge.MaxHops)

	// An edge variable over a variable-length segment is only meaningful
	// when the segment is forced to exactly one hop; otherwise it has no
	// single type to report and stays unbound.
	bindEdgeVar := edge.Variable != "" && edge.MinHops == 1 && edge.MaxHops == 1

	var dfs func(current string, depth int)
	dfs = func(current string, depth int) {
		if depth >= edge.MinHops {
			unifies := true
			if bindEdgeVar && len(chain) == 1 {
				if existing, bound := p.edgeVars[edge.Variable]; bound && existing != chain[0].Type {
					unifies = false
				}
			}
			if node, ok := g.GetNode(current); ok && unifies && matchesNodeSpec(node, target) {
				np := p.clone()
				np.ids = append(np.ids, current)
				if target.Variable != "" {
					np.nodeVars[target.Variable] = current
				}
				np.edges = append(np.edges, chain...)
				if bindEdgeVar && len(chain) == 1 {
					np.edgeVars[edge.Variable] = chain[0].Type
				}
				results = append(results, np)
			}
		}
		if depth == edge.MaxHops {
			return
		}

		candidateTypes := edge.Types
		if len(candidateTypes) == 0 {
			candidateTypes = edgeTypesFrom(g, current, edge.Direction)
		}

		step := func(edgeType, next string, triple graph.EdgeTriple) {
			if visited[next] {
				return
			}
			visited[next] = true
			chain = append(chain, triple)
			dfs(next, depth+1)
			chain = chain[:len(chain)-1]
			delete(visited, next)
		}

		for _, t := range candidateTypes {
			if edge.Direction == DirectionForward || edge.Direction == DirectionAny {
				for _, dst := range g.OutNeighbors(current, t) {
					step(t, dst, graph.EdgeTriple{Src: current, Type: t, Dst: dst})
				}
			}
			if edge.Direction == DirectionBackward || edge.Direction == DirectionAny {
				for _, other := range g.InNeighbors(current, t) {
					step(t, other, graph.EdgeTriple{Src: other, Type: t, Dst: current})
				}
			}
		}
	}

	dfs(src, 0)
	return results
}
