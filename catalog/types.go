// Package catalog defines the component catalog consulted by circuit analysis:
// per-type resistance, battery voltage, terminal names and switch states,
// plus wire resistance, lighting thresholds and board grid settings.
//
// A Catalog is immutable once built. Analysis receives it explicitly
// (see analysis.WithCatalog) instead of reading a process-wide table.
//
// Errors:
//
//	ErrUnknownType          - a type name outside battery/bulb/resistor/switch.
//	ErrMissingType          - a catalog file left one of the four types undefined.
//	ErrBatteryTerminals     - the battery spec lacks a positive or negative terminal.
//	ErrInvalidCatalog       - a field failed struct validation.
package catalog

import (
	"errors"
	"slices"
)

// Type identifies a placeable component kind.
type Type string

// Component types supported by the builder. Wires are not components.
const (
	Battery  Type = "battery"
	Bulb     Type = "bulb"
	Resistor Type = "resistor"
	Switch   Type = "switch"
)

// Terminal names. Batteries expose positive/negative, everything else terminal1/terminal2.
const (
	TerminalPositive = "positive"
	TerminalNegative = "negative"
	Terminal1        = "terminal1"
	Terminal2        = "terminal2"
)

// Switch states as stored on circuit components.
const (
	StateOpen   = "open"
	StateClosed = "closed"
)

// Sentinel errors for catalog construction and loading.
var (
	ErrUnknownType      = errors.New("catalog: unknown component type")
	ErrMissingType      = errors.New("catalog: component type not defined")
	ErrBatteryTerminals = errors.New("catalog: battery must expose positive and negative terminals")
	ErrInvalidCatalog   = errors.New("catalog: invalid catalog")
)

// Types lists the component types in toolbox order.
func Types() []Type {
	return []Type{Battery, Bulb, Resistor, Switch}
}

// Valid reports whether t is one of the four component types.
func (t Type) Valid() bool {
	return slices.Contains(Types(), t)
}

// Spec describes one component type.
type Spec struct {
	// Name is the human readable toolbox label.
	Name string `yaml:"name" json:"name" validate:"required"`

	// Symbol is the toolbox glyph.
	Symbol string `yaml:"symbol,omitempty" json:"symbol,omitempty"`

	// Description is the toolbox tooltip.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Resistance in Ohms. For a battery this is its internal resistance,
	// for a switch the resistance while closed.
	Resistance float64 `yaml:"resistance" json:"resistance" validate:"gte=0"`

	// Voltage in Volts; only meaningful for batteries.
	Voltage float64 `yaml:"voltage,omitempty" json:"voltage,omitempty" validate:"gte=0"`

	// Terminals lists the connection points, in order.
	Terminals []string `yaml:"terminals" json:"terminals" validate:"required,len=2,unique,dive,required"`

	// States lists the toggle states; only switches have any.
	States []string `yaml:"states,omitempty" json:"states,omitempty" validate:"omitempty,dive,oneof=open closed"`
}

// WireSpec describes the wire tool.
type WireSpec struct {
	Name        string  `yaml:"name" json:"name"`
	Symbol      string  `yaml:"symbol,omitempty" json:"symbol,omitempty"`
	Description string  `yaml:"description,omitempty" json:"description,omitempty"`
	Resistance  float64 `yaml:"resistance" json:"resistance" validate:"gte=0"`
}

// Grid holds the board layout the UI snaps components to.
type Grid struct {
	CellSize      float64 `yaml:"cellSize" json:"cellSize" validate:"gt=0"`
	Width         int     `yaml:"width" json:"width" validate:"gt=0"`
	Height        int     `yaml:"height" json:"height" validate:"gt=0"`
	SnapTolerance float64 `yaml:"snapTolerance" json:"snapTolerance" validate:"gte=0"`
}

// Thresholds holds the current levels used to judge bulbs and the resistance floor.
type Thresholds struct {
	// Lighting is the minimum current (A) for a bulb to light.
	Lighting float64 `yaml:"lighting" json:"lighting" validate:"gt=0"`

	// Bright is the current (A) above which lit bulbs are described as bright.
	Bright float64 `yaml:"bright" json:"bright" validate:"gtefield=Dim"`

	// Dim is the current (A) above which lit bulbs are described as dim.
	Dim float64 `yaml:"dim" json:"dim" validate:"gte=0"`

	// MinResistance floors the total resistance to avoid division by zero.
	MinResistance float64 `yaml:"minResistance" json:"minResistance" validate:"gt=0"`

	// DefaultVoltage is used when the battery spec declares no voltage.
	DefaultVoltage float64 `yaml:"defaultVoltage" json:"defaultVoltage" validate:"gt=0"`
}
