// SPDX-License-Identifier: MIT
//
// File: methods_edges.go
// Role: Edge lifecycle & queries.
//
// Determinism:
//   - Edge IDs are "e1", "e2", … in creation order.
//   - Edges() returns edges in creation order.

package core

import (
	"strconv"
	"sync/atomic"
)

const edgeIDPrefix = "e"

// AddEdge connects two existing vertices with a new undirected edge and returns its ID.
//
// Behavior highlights:
//   - Parallel edges are always allowed; each call appends a new edge.
//   - Unlike vertex insertion, missing endpoints are an error: a wire must
//     land on a known terminal.
//   - The edge is appended to both endpoints' adjacency lists.
//
// Errors:
//   - ErrEmptyVertexID: if from or to is empty.
//   - ErrVertexNotFound: if either endpoint is missing.
//   - ErrLoopNotAllowed: if from == to.
//
// Complexity:
//   - Time O(1) amortized.
func (g *Graph) AddEdge(from, to string, opts ...EdgeOption) (string, error) {
	// 1) Input validation
	if from == "" || to == "" {
		return "", ErrEmptyVertexID
	}
	if from == to {
		return "", ErrLoopNotAllowed
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	// 2) Endpoints must exist
	if _, ok := g.vertices[from]; !ok {
		return "", ErrVertexNotFound
	}
	if _, ok := g.vertices[to]; !ok {
		return "", ErrVertexNotFound
	}

	// 3) Create and register
	e := &Edge{ID: nextEdgeID(g), From: from, To: to}
	for _, opt := range opts {
		opt(e)
	}
	g.edges[e.ID] = e
	g.adjacency[from] = append(g.adjacency[from], e)
	g.adjacency[to] = append(g.adjacency[to], e)

	return e.ID, nil
}

// Edges returns copies of all edges in creation order.
// Complexity: O(E).
func (g *Graph) Edges() []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Edge, 0, len(g.edges))
	for i := uint64(1); i <= g.nextEdgeID; i++ {
		if e, ok := g.edges[edgeIDPrefix+strconv.FormatUint(i, 10)]; ok {
			out = append(out, *e)
		}
	}

	return out
}

// EdgeCount returns the number of edges.
// Complexity: O(1).
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.edges)
}

// nextEdgeID generates the next edge ID. Callers hold g.mu.
func nextEdgeID(g *Graph) string {
	id := atomic.AddUint64(&g.nextEdgeID, 1)

	return edgeIDPrefix + strconv.FormatUint(id, 10)
}
