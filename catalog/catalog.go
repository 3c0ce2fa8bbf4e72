package catalog

import "math"

// Catalog is an immutable lookup table from component type to Spec.
// All getters return copies; callers cannot mutate a Catalog.
type Catalog struct {
	specs      map[Type]Spec
	wire       WireSpec
	grid       Grid
	thresholds Thresholds
}

// Default returns the built-in catalog: a 9V battery with 0.1Ω internal
// resistance, 10Ω bulbs, 20Ω resistors, 0.01Ω closed switches and 0.01Ω wires.
func Default() *Catalog {
	return &Catalog{
		specs: map[Type]Spec{
			Battery: {
				Name:        "Battery",
				Symbol:      "⚡",
				Description: "Provides electrical power (voltage)",
				Resistance:  0.1,
				Voltage:     9,
				Terminals:   []string{TerminalPositive, TerminalNegative},
			},
			Bulb: {
				Name:        "Light Bulb",
				Symbol:      "💡",
				Description: "Converts electrical energy to light",
				Resistance:  10,
				Terminals:   []string{Terminal1, Terminal2},
			},
			Resistor: {
				Name:        "Resistor",
				Symbol:      "◊",
				Description: "Resists the flow of current",
				Resistance:  20,
				Terminals:   []string{Terminal1, Terminal2},
			},
			Switch: {
				Name:        "Switch",
				Symbol:      "⏸",
				Description: "Opens or closes the circuit",
				Resistance:  0.01,
				Terminals:   []string{Terminal1, Terminal2},
				States:      []string{StateOpen, StateClosed},
			},
		},
		wire: WireSpec{
			Name:        "Wire",
			Symbol:      "—",
			Description: "Connects components together",
			Resistance:  0.01,
		},
		grid: Grid{CellSize: 60, Width: 12, Height: 8, SnapTolerance: 30},
		thresholds: Thresholds{
			Lighting:       0.1,
			Bright:         0.8,
			Dim:            0.4,
			MinResistance:  0.1,
			DefaultVoltage: 9,
		},
	}
}

// Spec returns a copy of the spec for t.
func (c *Catalog) Spec(t Type) (Spec, bool) {
	s, ok := c.specs[t]
	if !ok {
		return Spec{}, false
	}
	s.Terminals = append([]string(nil), s.Terminals...)
	s.States = append([]string(nil), s.States...)

	return s, true
}

// Terminals returns the terminal names for t, or nil for an unknown type.
func (c *Catalog) Terminals(t Type) []string {
	s, ok := c.specs[t]
	if !ok {
		return nil
	}

	return append([]string(nil), s.Terminals...)
}

// HasTerminal reports whether t exposes a terminal named name.
func (c *Catalog) HasTerminal(t Type, name string) bool {
	for _, term := range c.specs[t].Terminals {
		if term == name {
			return true
		}
	}

	return false
}

// Resistance returns the resistance a component of type t contributes.
// An open switch breaks the loop and reports +Inf.
// Unknown types contribute nothing.
func (c *Catalog) Resistance(t Type, open bool) float64 {
	if t == Switch && open {
		return math.Inf(1)
	}

	return c.specs[t].Resistance
}

// Voltage returns the battery voltage, falling back to Thresholds.DefaultVoltage.
func (c *Catalog) Voltage() float64 {
	if v := c.specs[Battery].Voltage; v > 0 {
		return v
	}

	return c.thresholds.DefaultVoltage
}

// Wire returns the wire spec.
func (c *Catalog) Wire() WireSpec { return c.wire }

// WireResistance returns the per-wire resistance in Ohms.
func (c *Catalog) WireResistance() float64 { return c.wire.Resistance }

// Grid returns the board grid settings.
func (c *Catalog) Grid() Grid { return c.grid }

// Thresholds returns the analysis thresholds.
func (c *Catalog) Thresholds() Thresholds { return c.thresholds }
