// Package algorithms implements graph algorithms layered on top of
// storage.Graph: shortest path, reachability, connected components,
// topological sort, subgraph expansion, and bounded path enumeration.
package algorithms

import "errors"

// ErrCycle is returned by TopologicalSort when the graph (edges of every
// type taken together) is not a DAG.
var ErrCycle = errors.New("algorithms: graph has a cycle")

// ErrUnknownNode is returned when an algorithm is asked to start from a
// node id the graph doesn't contain.
var ErrUnknownNode = errors.New("algorithms: unknown node")
