package analysis

import (
	"math"

	"github.com/katalvlaran/circuitq/catalog"
	"github.com/katalvlaran/circuitq/circuit"
	"github.com/katalvlaran/circuitq/core"
	"github.com/katalvlaran/circuitq/paths"
)

// Properties are the circuit quantities derived from the discovered paths.
type Properties struct {
	// TotalResistance is the series sum over ComponentsInCircuit plus every
	// wire on the board, floored at the catalog's MinResistance.
	TotalResistance float64

	// HasParallel is true when more than one path exists.
	HasParallel bool

	// HasSeries is true when more than two components lie on paths.
	HasSeries bool

	// ComponentsInCircuit lists the owners of path nodes in first-seen order.
	ComponentsInCircuit []string
}

// ComponentsInCircuit returns the distinct owning components of every node
// on every path, in first-seen order.
func ComponentsInCircuit(g *core.Graph, ps []paths.Path) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range ps {
		for _, node := range p {
			owner, ok := g.Owner(node)
			if !ok || seen[owner] {
				continue
			}
			seen[owner] = true
			out = append(out, owner)
		}
	}

	return out
}

// CalculateProperties derives resistance and topology flags.
//
// The resistance model is a plain sum: every component in the circuit is
// treated as if it were in series, whatever the actual topology, and every
// wire counts whether or not it lies on a path. An open switch contributes
// +Inf. The series/parallel flags are a heuristic:
//
//	HasParallel = len(ps) > 1
//	HasSeries   = len(ComponentsInCircuit) > 2
//
// With no paths the zero Properties is returned.
func CalculateProperties(cat *catalog.Catalog, g *core.Graph, components []circuit.Component, wires []circuit.Wire, ps []paths.Path) Properties {
	if len(ps) == 0 {
		return Properties{}
	}

	in := ComponentsInCircuit(g, ps)
	byID := indexComponents(components)

	total := 0.0
	for _, id := range in {
		c, ok := byID[id]
		if !ok {
			continue
		}
		total += cat.Resistance(c.Type, c.IsOpen())
	}
	total += float64(len(wires)) * cat.WireResistance()

	return Properties{
		TotalResistance:     math.Max(total, cat.Thresholds().MinResistance),
		HasParallel:         len(ps) > 1,
		HasSeries:           len(in) > 2,
		ComponentsInCircuit: in,
	}
}

// indexComponents maps ID to component; the first of duplicate IDs wins.
func indexComponents(components []circuit.Component) map[string]circuit.Component {
	m := make(map[string]circuit.Component, len(components))
	for _, c := range components {
		if _, dup := m[c.ID]; !dup {
			m[c.ID] = c
		}
	}

	return m
}
