package storage

import "errors"

// ErrUnknownNode indicates an edge (or edge-bearing operation) referenced
// a node id that does not exist in the graph.
var ErrUnknownNode = errors.New("storage: unknown node")
