package analysis

import (
	"github.com/katalvlaran/circuitq/circuit"
	"github.com/katalvlaran/circuitq/core"
	"github.com/katalvlaran/circuitq/paths"
)

// CountLitBulbs returns how many bulbs are lit.
//
// A bulb is in the circuit when any path passes through one of its terminals.
// Lighting is all-or-nothing: if current reaches threshold, every bulb in the
// circuit counts as lit; otherwise none does. There is no per-bulb voltage
// division. Zero current or an empty path set lights nothing.
func CountLitBulbs(g *core.Graph, bulbs []circuit.Component, current, threshold float64, ps []paths.Path) int {
	if current <= 0 || len(ps) == 0 {
		return 0
	}

	isBulb := make(map[string]bool, len(bulbs))
	for _, b := range bulbs {
		isBulb[b.ID] = true
	}

	inPath := make(map[string]bool)
	for _, p := range ps {
		for _, node := range p {
			if owner, ok := g.Owner(node); ok && isBulb[owner] {
				inPath[owner] = true
			}
		}
	}

	if current < threshold {
		return 0
	}

	return len(inPath)
}

// describeBrightness maps current to a qualitative word.
func describeBrightness(current, bright, dim float64) string {
	switch {
	case current > bright:
		return Bright
	case current > dim:
		return Dim
	default:
		return BarelyGlowing
	}
}
