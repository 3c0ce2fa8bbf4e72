// Package board is the mutable editing model behind the circuit builder:
// placing, moving, rotating, toggling and removing components, drawing wires
// between terminals, and handing immutable snapshots to analysis.
//
// Every mutation is validated against the catalog and the grid. Removing a
// component removes every wire attached to it, so snapshots never carry
// dangling wires.
package board

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/katalvlaran/circuitq/analysis"
	"github.com/katalvlaran/circuitq/catalog"
	"github.com/katalvlaran/circuitq/circuit"
)

// Sentinel errors returned by Board methods.
var (
	ErrComponentNotFound = errors.New("board: component not found")
	ErrWireNotFound      = errors.New("board: wire not found")
	ErrInvalidPosition   = errors.New("board: position is off the grid or overlaps a component")
	ErrNotSwitch         = errors.New("board: component is not a switch")
	ErrImmutableField    = errors.New("board: component id and type cannot change")
	ErrInvalidRotation   = errors.New("board: rotation must be a multiple of 90 degrees")
)

// Board holds one circuit under construction. It is safe for concurrent use.
type Board struct {
	mu         sync.RWMutex
	cat        *catalog.Catalog
	newID      func() string
	components []circuit.Component
	wires      []circuit.Wire
}

// Option configures a Board.
type Option func(*Board)

// WithCatalog sets the catalog used for terminals and grid bounds.
func WithCatalog(cat *catalog.Catalog) Option {
	return func(b *Board) {
		if cat != nil {
			b.cat = cat
		}
	}
}

// WithIDGenerator replaces the random suffix of new component and wire IDs.
func WithIDGenerator(fn func() string) Option {
	return func(b *Board) {
		if fn != nil {
			b.newID = fn
		}
	}
}

// New returns an empty board on the default catalog.
func New(opts ...Option) *Board {
	b := &Board{
		cat:   catalog.Default(),
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(b)
	}

	return b
}

// FromDocument loads d into a new board. Wires that do not land on two
// existing components are dropped, matching what analysis would ignore.
func FromDocument(d circuit.Document, opts ...Option) (*Board, error) {
	if err := circuit.Validate(d); err != nil {
		return nil, err
	}

	b := New(opts...)
	b.components = slices.Clone(d.Components)
	for _, w := range d.Wires {
		if circuit.CheckWire(b.cat, b.components, w) == nil {
			b.wires = append(b.wires, w)
		}
	}

	return b, nil
}

// Catalog returns the board's catalog.
func (b *Board) Catalog() *catalog.Catalog { return b.cat }

// AddComponent places a new component of type t at the grid cell nearest pos.
// Switches start closed.
func (b *Board) AddComponent(t catalog.Type, pos circuit.Position) (circuit.Component, error) {
	if _, ok := b.cat.Spec(t); !ok {
		return circuit.Component{}, fmt.Errorf("%w: %q", catalog.ErrUnknownType, t)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	snapped := SnapToGrid(pos, b.cat.Grid())
	if !IsValidPosition(snapped, b.components, b.cat.Grid()) {
		return circuit.Component{}, fmt.Errorf("%w: (%g, %g)", ErrInvalidPosition, snapped.X, snapped.Y)
	}

	c := circuit.Component{
		ID:       string(t) + "-" + b.newID(),
		Type:     t,
		Position: snapped,
	}
	if t == catalog.Switch {
		c.State = circuit.Closed
	}
	b.components = append(b.components, c)

	return c, nil
}

// Component returns the component with the given ID.
func (b *Board) Component(id string) (circuit.Component, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	i := b.indexOf(id)
	if i < 0 {
		return circuit.Component{}, fmt.Errorf("%w: %q", ErrComponentNotFound, id)
	}

	return b.components[i], nil
}

// UpdateComponent applies fn to a copy of the component and stores the
// result if it still validates. The ID and type may not change. A changed
// position is snapped and checked like Move; rotation must be a multiple of
// 90 and is stored in [0, 360).
//
// fn runs with the board locked and must not call methods on b.
func (b *Board) UpdateComponent(id string, fn func(c *circuit.Component)) (circuit.Component, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.indexOf(id)
	if i < 0 {
		return circuit.Component{}, fmt.Errorf("%w: %q", ErrComponentNotFound, id)
	}

	// 1. Edit a copy
	c := b.components[i]
	fn(&c)

	// 2. Identity
	if c.ID != id || c.Type != b.components[i].Type {
		return circuit.Component{}, fmt.Errorf("%w: %q", ErrImmutableField, id)
	}
	if err := circuit.ValidateComponent(c); err != nil {
		return circuit.Component{}, err
	}

	// 3. Placement
	if c.Rotation%90 != 0 {
		return circuit.Component{}, fmt.Errorf("%w: %d", ErrInvalidRotation, c.Rotation)
	}
	c.Rotation = ((c.Rotation % 360) + 360) % 360
	c.Position = SnapToGrid(c.Position, b.cat.Grid())
	others := slices.Delete(slices.Clone(b.components), i, i+1)
	if !IsValidPosition(c.Position, others, b.cat.Grid()) {
		return circuit.Component{}, fmt.Errorf("%w: (%g, %g)", ErrInvalidPosition, c.Position.X, c.Position.Y)
	}
	b.components[i] = c

	return c, nil
}

// Move snaps pos to the grid and moves the component there.
func (b *Board) Move(id string, pos circuit.Position) (circuit.Component, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.indexOf(id)
	if i < 0 {
		return circuit.Component{}, fmt.Errorf("%w: %q", ErrComponentNotFound, id)
	}

	snapped := SnapToGrid(pos, b.cat.Grid())
	others := slices.Delete(slices.Clone(b.components), i, i+1)
	if !IsValidPosition(snapped, others, b.cat.Grid()) {
		return circuit.Component{}, fmt.Errorf("%w: (%g, %g)", ErrInvalidPosition, snapped.X, snapped.Y)
	}
	b.components[i].Position = snapped

	return b.components[i], nil
}

// Rotate turns the component a quarter turn clockwise.
func (b *Board) Rotate(id string) (circuit.Component, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.indexOf(id)
	if i < 0 {
		return circuit.Component{}, fmt.Errorf("%w: %q", ErrComponentNotFound, id)
	}
	b.components[i].Rotation = (b.components[i].Rotation + 90) % 360

	return b.components[i], nil
}

// ToggleSwitch flips a switch between open and closed and returns the new state.
func (b *Board) ToggleSwitch(id string) (circuit.SwitchState, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.indexOf(id)
	if i < 0 {
		return "", fmt.Errorf("%w: %q", ErrComponentNotFound, id)
	}
	c := &b.components[i]
	if c.Type != catalog.Switch {
		return "", fmt.Errorf("%w: %q is a %s", ErrNotSwitch, id, c.Type)
	}

	if c.State == circuit.Open {
		c.State = circuit.Closed
	} else {
		c.State = circuit.Open
	}

	return c.State, nil
}

// RemoveComponent deletes the component and every wire touching it.
// It returns the number of wires removed.
func (b *Board) RemoveComponent(id string) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.indexOf(id)
	if i < 0 {
		return 0, fmt.Errorf("%w: %q", ErrComponentNotFound, id)
	}
	b.components = slices.Delete(b.components, i, i+1)

	before := len(b.wires)
	b.wires = slices.DeleteFunc(b.wires, func(w circuit.Wire) bool { return w.Touches(id) })

	return before - len(b.wires), nil
}

// AddWire joins two terminals on distinct existing components.
func (b *Board) AddWire(from, to circuit.Endpoint) (circuit.Wire, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	w := circuit.Wire{ID: "wire-" + b.newID(), From: from, To: to}
	if err := circuit.CheckWire(b.cat, b.components, w); err != nil {
		return circuit.Wire{}, err
	}
	b.wires = append(b.wires, w)

	return w, nil
}

// RemoveWire deletes the wire with the given ID.
func (b *Board) RemoveWire(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := slices.IndexFunc(b.wires, func(w circuit.Wire) bool { return w.ID == id })
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrWireNotFound, id)
	}
	b.wires = slices.Delete(b.wires, i, i+1)

	return nil
}

// Reset clears the board.
func (b *Board) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.components = nil
	b.wires = nil
}

// Snapshot returns an independent copy of the board contents.
func (b *Board) Snapshot() circuit.Document {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return circuit.Document{
		Components: slices.Clone(b.components),
		Wires:      slices.Clone(b.wires),
	}
}

// ComponentAt returns the component under p, if any.
func (b *Board) ComponentAt(p circuit.Position) (circuit.Component, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return ComponentAt(b.components, p, b.cat.Grid().CellSize)
}

// TerminalAt returns the terminal under p, if any.
func (b *Board) TerminalAt(p circuit.Position) (circuit.Endpoint, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return TerminalAt(b.cat, b.components, p)
}

// Analyze runs a over a snapshot of the board. The lock is not held while
// analysis runs.
func (b *Board) Analyze(ctx context.Context, a *analysis.Analyzer) analysis.Result {
	d := b.Snapshot()

	return a.Analyze(ctx, d.Components, d.Wires)
}

func (b *Board) indexOf(id string) int {
	return slices.IndexFunc(b.components, func(c circuit.Component) bool { return c.ID == id })
}
