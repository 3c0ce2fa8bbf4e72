package analysis

// User-facing explanation and warning texts.
const (
	MsgNoBattery     = "Add a battery to power your circuit."
	MsgNoCircuit     = "No complete circuit found. Make sure there's a path from the battery's positive terminal to its negative terminal."
	MsgSwitchOpen    = "Circuit is open - switch(es) are open. Close them to allow current to flow."
	MsgNothingLit    = "Circuit is complete but no bulbs are lighting up. Check your connections."
	msgWorkingFormat = "Circuit is working! %d bulb(s) are %s. Current: %.2fA"

	WarnMultipleBatteries = "Multiple batteries detected. This may cause unexpected behavior."
	WarnTruncated         = "Circuit is too complex to analyze completely; results may be approximate."
	WarnInterrupted       = "Analysis was interrupted before every path was explored."
)

// Qualitative brightness of lit bulbs.
const (
	Bright        = "bright"
	Dim           = "dim"
	BarelyGlowing = "barely glowing"
)

// Topology labels.
const (
	TopologyMixed    = "Mixed (Series + Parallel)"
	TopologyParallel = "Parallel"
	TopologySeries   = "Series"
	TopologySimple   = "Simple"
)

// Result is the outcome of one analysis. It is derived wholly from the
// inputs; two analyses of equal inputs produce deep-equal Results.
type Result struct {
	HasClosedLoop bool `json:"hasClosedLoop" yaml:"hasClosedLoop"`

	// ShortCircuit is reserved; no analysis step sets it.
	ShortCircuit bool `json:"shortCircuit" yaml:"shortCircuit"`

	BulbsOn         int     `json:"bulbsOn" yaml:"bulbsOn"`
	TotalResistance float64 `json:"totalResistance" yaml:"totalResistance"`
	Current         float64 `json:"current" yaml:"current"`
	HasParallel     bool    `json:"hasParallel" yaml:"hasParallel"`
	HasSeries       bool    `json:"hasSeries" yaml:"hasSeries"`
	HasSwitch       bool    `json:"hasSwitch" yaml:"hasSwitch"`
	HasResistor     bool    `json:"hasResistor" yaml:"hasResistor"`
	SwitchesOpen    int     `json:"switchesOpen" yaml:"switchesOpen"`

	Explanation string   `json:"explanation" yaml:"explanation"`
	Warnings    []string `json:"warnings" yaml:"warnings"`
}

// Status classifies a Result for display.
type Status int

// Display states, in precedence order from Short down.
const (
	StatusIdle  Status = iota // nothing conducts
	StatusLoop                // closed loop, no bulb lit
	StatusLit                 // at least one bulb lit
	StatusShort               // short circuit
)

func (s Status) String() string {
	switch s {
	case StatusLoop:
		return "loop"
	case StatusLit:
		return "lit"
	case StatusShort:
		return "short"
	default:
		return "idle"
	}
}

// Status reports the display state of r.
func (r Result) Status() Status {
	switch {
	case r.ShortCircuit:
		return StatusShort
	case r.BulbsOn > 0:
		return StatusLit
	case r.HasClosedLoop:
		return StatusLoop
	default:
		return StatusIdle
	}
}

// Topology labels the circuit from the series/parallel flags.
func (r Result) Topology() string {
	switch {
	case r.HasParallel && r.HasSeries:
		return TopologyMixed
	case r.HasParallel:
		return TopologyParallel
	case r.HasSeries:
		return TopologySeries
	default:
		return TopologySimple
	}
}
