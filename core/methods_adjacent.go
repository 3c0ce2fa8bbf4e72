// SPDX-License-Identifier: MIT
//
// File: methods_adjacent.go
// Role: Neighborhood APIs (Neighbors, NeighborIDs, AdjacencyList).
//
// Determinism:
//   - Neighbors() and NeighborIDs() follow edge insertion order.
//   - Duplicates are kept: two wires between the same terminals yield the
//     neighbor twice.

package core

// Neighbors returns copies of the edges incident to id, in insertion order.
//
// Errors:
//   - ErrEmptyVertexID: if id == "".
//   - ErrVertexNotFound: if the vertex does not exist.
//
// Complexity:
//   - Time O(d), Space O(d).
func (g *Graph) Neighbors(id string) ([]Edge, error) {
	if id == "" {
		return nil, ErrEmptyVertexID
	}
	g.mu.RLock()
	defer g.mu.RUnlock()

	if _, ok := g.vertices[id]; !ok {
		return nil, ErrVertexNotFound
	}

	adj := g.adjacency[id]
	out := make([]Edge, len(adj))
	for i, e := range adj {
		out[i] = *e
	}

	return out, nil
}

// NeighborIDs returns the vertex across each incident edge, in insertion order.
// A vertex reached by k parallel edges appears k times.
//
// Errors:
//   - ErrEmptyVertexID, ErrVertexNotFound.
//
// Complexity:
//   - Time O(d), Space O(d).
func (g *Graph) NeighborIDs(id string) ([]string, error) {
	if id == "" {
		return nil, ErrEmptyVertexID
	}
	g.mu.RLock()
	defer g.mu.RUnlock()

	if _, ok := g.vertices[id]; !ok {
		return nil, ErrVertexNotFound
	}

	return neighborIDs(g, id), nil
}

// AdjacencyList returns a snapshot mapping every vertex to its neighbor IDs.
// Isolated vertices map to an empty, non-nil slice.
// Complexity: O(V+E).
func (g *Graph) AdjacencyList() map[string][]string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make(map[string][]string, len(g.vertices))
	for _, id := range g.order {
		out[id] = neighborIDs(g, id)
	}

	return out
}

// neighborIDs expands adjacency[id]; callers hold g.mu.
func neighborIDs(g *Graph, id string) []string {
	adj := g.adjacency[id]
	out := make([]string, len(adj))
	for i, e := range adj {
		out[i] = e.Other(id)
	}

	return out
}
