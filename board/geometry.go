package board

import (
	"math"

	"github.com/katalvlaran/circuitq/catalog"
	"github.com/katalvlaran/circuitq/circuit"
)

// Tolerances in cell units.
const (
	overlapFactor = 0.9 // two centers closer than this on both axes overlap
	hitFactor     = 0.7 // a point this close to a center selects the component
)

// terminalOffsets are unrotated terminal positions relative to the component
// center, in half cells.
var terminalOffsets = map[catalog.Type]map[string]circuit.Position{
	catalog.Battery: {
		catalog.TerminalPositive: {X: 1, Y: 0},
		catalog.TerminalNegative: {X: -1, Y: 0},
	},
	catalog.Bulb: {
		catalog.Terminal1: {X: 0, Y: -1},
		catalog.Terminal2: {X: 0, Y: 1},
	},
	catalog.Resistor: {
		catalog.Terminal1: {X: -1, Y: 0},
		catalog.Terminal2: {X: 1, Y: 0},
	},
	catalog.Switch: {
		catalog.Terminal1: {X: -1, Y: 0},
		catalog.Terminal2: {X: 1, Y: 0},
	},
}

// SnapToGrid moves p to the center of the cell containing it, clamped inside
// the grid. Snapping a cell center returns it unchanged.
func SnapToGrid(p circuit.Position, g catalog.Grid) circuit.Position {
	half := g.CellSize / 2
	snap := func(v float64, cells int) float64 {
		s := math.Floor(v/g.CellSize)*g.CellSize + half
		return math.Max(half, math.Min(s, float64(cells)*g.CellSize-half))
	}

	return circuit.Position{X: snap(p.X, g.Width), Y: snap(p.Y, g.Height)}
}

// TerminalPosition returns where terminal sits on the board for c, taking
// its rotation (degrees, clockwise in screen coordinates) into account.
// An unknown type or terminal yields the component center.
func TerminalPosition(c circuit.Component, terminal string, cellSize float64) circuit.Position {
	off, ok := terminalOffsets[c.Type][terminal]
	if !ok {
		return c.Position
	}
	half := cellSize / 2
	dx, dy := rotate(off.X*half, off.Y*half, c.Rotation)

	return circuit.Position{X: c.Position.X + dx, Y: c.Position.Y + dy}
}

// rotate turns (x, y) by deg degrees. Quarter turns are exact.
func rotate(x, y float64, deg int) (float64, float64) {
	switch ((deg % 360) + 360) % 360 {
	case 0:
		return x, y
	case 90:
		return -y, x
	case 180:
		return -x, -y
	case 270:
		return y, -x
	}
	rad := float64(deg) * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)

	return x*cos - y*sin, x*sin + y*cos
}

// IsValidPosition reports whether a component centered at p stays inside the
// grid and keeps clear of every component in existing.
func IsValidPosition(p circuit.Position, existing []circuit.Component, g catalog.Grid) bool {
	half := g.CellSize / 2
	if p.X < half || p.Y < half {
		return false
	}
	if p.X > float64(g.Width)*g.CellSize-half || p.Y > float64(g.Height)*g.CellSize-half {
		return false
	}

	tol := g.CellSize * overlapFactor
	for _, c := range existing {
		if math.Abs(c.Position.X-p.X) < tol && math.Abs(c.Position.Y-p.Y) < tol {
			return false
		}
	}

	return true
}

// ComponentAt returns the first component whose body covers p.
func ComponentAt(components []circuit.Component, p circuit.Position, cellSize float64) (circuit.Component, bool) {
	tol := cellSize * hitFactor
	for _, c := range components {
		if math.Abs(c.Position.X-p.X) < tol && math.Abs(c.Position.Y-p.Y) < tol {
			return c, true
		}
	}

	return circuit.Component{}, false
}

// TerminalAt returns the first terminal within the grid's snap tolerance of p.
func TerminalAt(cat *catalog.Catalog, components []circuit.Component, p circuit.Position) (circuit.Endpoint, bool) {
	g := cat.Grid()
	for _, c := range components {
		for _, term := range cat.Terminals(c.Type) {
			tp := TerminalPosition(c, term, g.CellSize)
			if math.Abs(tp.X-p.X) < g.SnapTolerance && math.Abs(tp.Y-p.Y) < g.SnapTolerance {
				return circuit.Endpoint{ComponentID: c.ID, Terminal: term}, true
			}
		}
	}

	return circuit.Endpoint{}, false
}
