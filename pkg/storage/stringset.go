package storage

// orderedSet is an insertion-ordered set of strings. Iteration order is
// the order elements were first added, which §5 of the design asks for so
// that query results are reproducible across runs.
type orderedSet struct {
	order []string
	index map[string]int
}

func newOrderedSet() *orderedSet {
	return &orderedSet{index: make(map[string]int)}
}

// add inserts v if not already present. Returns true if v was newly added.
func (s *orderedSet) add(v string) bool {
	if _, ok := s.index[v]; ok {
		return false
	}
	s.index[v] = len(s.order)
	s.order = append(s.order, v)
	return true
}

func (s *orderedSet) has(v string) bool {
	_, ok := s.index[v]
	return ok
}

// remove deletes v, if present, rebuilding the order slice.
func (s *orderedSet) remove(v string) {
	i, ok := s.index[v]
	if !ok {
		return
	}
	s.order = append(s.order[:i], s.order[i+1:]...)
	delete(s.index, v)
	for j := i; j < len(s.order); j++ {
		s.index[s.order[j]] = j
	}
}

func (s *orderedSet) items() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

func (s *orderedSet) len() int {
	return len(s.order)
}

// adjacency holds a node's per-edge-type neighbor sets, plus the
// insertion order of the edge types themselves so that "any type" lookups
// iterate deterministically.
type adjacency struct {
	typeOrder []string
	byType    map[string]*orderedSet
}

func newAdjacency() *adjacency {
	return &adjacency{byType: make(map[string]*orderedSet)}
}

func (a *adjacency) bucket(edgeType string, create bool) *orderedSet {
	b, ok := a.byType[edgeType]
	if !ok {
		if !create {
			return nil
		}
		b = newOrderedSet()
		a.byType[edgeType] = b
		a.typeOrder = append(a.typeOrder, edgeType)
	}
	return b
}

// neighbors returns destinations for edgeType, or the deduplicated union
// across all types when edgeType is "".
func (a *adjacency) neighbors(edgeType string) []string {
	if edgeType != "" {
		b := a.bucket(edgeType, false)
		if b == nil {
			return nil
		}
		return b.items()
	}

	seen := make(map[string]struct{})
	var out []string
	for _, t := range a.typeOrder {
		for _, dst := range a.byType[t].items() {
			if _, ok := seen[dst]; ok {
				continue
			}
			seen[dst] = struct{}{}
			out = append(out, dst)
		}
	}
	return out
}
