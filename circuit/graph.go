package circuit

import (
	"github.com/katalvlaran/circuitq/catalog"
	"github.com/katalvlaran/circuitq/core"
)

// BuildGraph converts a component/wire list into the terminal graph.
//
// Every component contributes one vertex per terminal its catalog type
// defines, tagged with the component as owner; components of an unknown
// type contribute none. Every wire whose two ends name existing terminals
// becomes one undirected edge labeled with the wire ID. Any other wire is
// dangling (its component was removed, or the terminal name is wrong) and is
// skipped without error, as is a wire from a terminal to itself.
//
// Parallel wires yield parallel edges; neighbors are not deduplicated.
//
// Complexity: O(C + W).
func BuildGraph(cat *catalog.Catalog, components []Component, wires []Wire) *core.Graph {
	g := core.NewGraph(core.WithCapacity(2 * len(components)))

	// 1. Terminal vertices, in component order
	for _, c := range components {
		for _, term := range cat.Terminals(c.Type) {
			// duplicate component IDs: the first component keeps the node
			_ = g.AddVertex(NodeID(c.ID, term), core.WithOwner(c.ID, term))
		}
	}

	// 2. Wire edges, in wire order
	for _, w := range wires {
		from, to := w.From.NodeID(), w.To.NodeID()
		if !g.HasVertex(from) || !g.HasVertex(to) {
			continue // dangling
		}
		// only ErrLoopNotAllowed can surface here
		_, _ = g.AddEdge(from, to, core.WithLabel(w.ID))
	}

	return g
}
