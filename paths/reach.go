package paths

import (
	"fmt"

	"github.com/katalvlaran/circuitq/core"
)

// Reachable reports whether to can be reached from from by breadth-first search.
// It is a cheap pre-check before AllPaths: when it returns false, AllPaths
// would explore the whole component of from and find nothing.
//
// Errors: ErrGraphNil, ErrStartVertexNotFound, ErrEndVertexNotFound.
// Complexity: O(V+E).
func Reachable(g *core.Graph, from, to string) (bool, error) {
	if g == nil {
		return false, ErrGraphNil
	}
	if !g.HasVertex(from) {
		return false, ErrStartVertexNotFound
	}
	if !g.HasVertex(to) {
		return false, ErrEndVertexNotFound
	}
	if from == to {
		return true, nil
	}

	visited := map[string]bool{from: true}
	queue := []string{from}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		nbs, err := g.NeighborIDs(id)
		if err != nil {
			return false, fmt.Errorf("paths: NeighborIDs(%q): %w", id, err)
		}
		for _, nid := range nbs {
			if nid == to {
				return true, nil
			}
			if !visited[nid] {
				visited[nid] = true
				queue = append(queue, nid)
			}
		}
	}

	return false, nil
}
