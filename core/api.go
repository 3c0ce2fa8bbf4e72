// SPDX-License-Identifier: MIT
//
// File: api.go
// Role: Read-only summaries over a Graph.

package core

// GraphStats is a read-only snapshot of graph sizes.
type GraphStats struct {
	VertexCount   int
	EdgeCount     int
	IsolatedCount int // vertices with no incident edge
	MaxDegree     int
}

// Stats produces a snapshot of vertex/edge counts and degree extremes.
//
// Complexity:
//   - Time O(V+E), Space O(1).
func (g *Graph) Stats() GraphStats {
	g.mu.RLock()
	defer g.mu.RUnlock()

	s := GraphStats{
		VertexCount: len(g.vertices),
		EdgeCount:   len(g.edges),
	}
	for _, id := range g.order {
		deg := len(g.adjacency[id])
		if deg == 0 {
			s.IsolatedCount++
		}
		if deg > s.MaxDegree {
			s.MaxDegree = deg
		}
	}

	return s
}
