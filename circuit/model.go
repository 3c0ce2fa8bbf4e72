// Package circuit holds the builder's data model (components, wires and their
// terminals) and turns it into the terminal graph consumed by analysis.
//
// Terminals are not entities of their own: a terminal is the pair
// (component ID, terminal name), and its graph node ID is "{componentId}-{terminal}".
package circuit

import (
	"errors"

	"github.com/katalvlaran/circuitq/catalog"
)

// Sentinel errors for model validation.
var (
	ErrInvalid          = errors.New("circuit: invalid")
	ErrDuplicateID      = errors.New("circuit: duplicate id")
	ErrUnknownComponent = errors.New("circuit: unknown component")
	ErrUnknownTerminal  = errors.New("circuit: unknown terminal")
	ErrSameComponent    = errors.New("circuit: wire connects a component to itself")
)

// SwitchState is the toggle state of a switch. Other components carry an empty state.
type SwitchState string

// Switch states.
const (
	Open   SwitchState = catalog.StateOpen
	Closed SwitchState = catalog.StateClosed
)

// Position is a board coordinate in pixels.
type Position struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// Component is one placed part.
type Component struct {
	ID       string       `yaml:"id" json:"id" validate:"required"`
	Type     catalog.Type `yaml:"type" json:"type" validate:"required,component_type"`
	Position Position     `yaml:"position" json:"position"`
	Rotation int          `yaml:"rotation,omitempty" json:"rotation,omitempty"`
	State    SwitchState  `yaml:"state,omitempty" json:"state,omitempty" validate:"omitempty,oneof=open closed normal"`
}

// IsOpen reports whether c is a switch in the open state.
// A switch with any other state conducts.
func (c Component) IsOpen() bool {
	return c.Type == catalog.Switch && c.State == Open
}

// Endpoint names one terminal of one component.
type Endpoint struct {
	ComponentID string `yaml:"componentId" json:"componentId" validate:"required"`
	Terminal    string `yaml:"terminal" json:"terminal" validate:"required"`
}

// NodeID returns the graph node ID of the terminal.
func (e Endpoint) NodeID() string { return NodeID(e.ComponentID, e.Terminal) }

// Wire joins two terminals on two distinct components.
type Wire struct {
	ID   string   `yaml:"id" json:"id" validate:"required"`
	From Endpoint `yaml:"from" json:"from"`
	To   Endpoint `yaml:"to" json:"to"`
}

// Touches reports whether either end of w lands on componentID.
func (w Wire) Touches(componentID string) bool {
	return w.From.ComponentID == componentID || w.To.ComponentID == componentID
}

// NodeID builds a terminal node ID.
func NodeID(componentID, terminal string) string {
	return componentID + "-" + terminal
}

// Find returns the first component with the given ID.
func Find(components []Component, id string) (Component, bool) {
	for _, c := range components {
		if c.ID == id {
			return c, true
		}
	}

	return Component{}, false
}

// OfType returns the components of type t, in list order.
func OfType(components []Component, t catalog.Type) []Component {
	var out []Component
	for _, c := range components {
		if c.Type == t {
			out = append(out, c)
		}
	}

	return out
}

// CountOpenSwitches counts open switches across all components.
func CountOpenSwitches(components []Component) int {
	n := 0
	for _, c := range components {
		if c.IsOpen() {
			n++
		}
	}

	return n
}
