package board_test

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/circuitq/analysis"
	"github.com/katalvlaran/circuitq/board"
	"github.com/katalvlaran/circuitq/catalog"
	"github.com/katalvlaran/circuitq/circuit"
)

// cell returns the center of grid cell (col, row) on the default 60px grid.
func cell(col, row int) circuit.Position {
	return circuit.Position{X: float64(col)*60 + 30, Y: float64(row)*60 + 30}
}

func seqIDs() func() string {
	var n atomic.Int64
	return func() string { return strconv.FormatInt(n.Add(1), 10) }
}

func end(id, term string) circuit.Endpoint {
	return circuit.Endpoint{ComponentID: id, Terminal: term}
}

// litLoop places battery → bulb → switch and wires them into one loop.
func litLoop(t *testing.T, b *board.Board) (bat, lamp, sw circuit.Component) {
	t.Helper()
	var err error
	bat, err = b.AddComponent(catalog.Battery, cell(1, 1))
	require.NoError(t, err)
	lamp, err = b.AddComponent(catalog.Bulb, cell(3, 1))
	require.NoError(t, err)
	sw, err = b.AddComponent(catalog.Switch, cell(5, 1))
	require.NoError(t, err)

	for _, pair := range [][2]circuit.Endpoint{
		{end(bat.ID, catalog.TerminalPositive), end(lamp.ID, catalog.Terminal1)},
		{end(lamp.ID, catalog.Terminal1), end(sw.ID, catalog.Terminal1)},
		{end(sw.ID, catalog.Terminal1), end(bat.ID, catalog.TerminalNegative)},
	} {
		_, err = b.AddWire(pair[0], pair[1])
		require.NoError(t, err)
	}

	return bat, lamp, sw
}

func TestAddComponent(t *testing.T) {
	b := board.New(board.WithIDGenerator(seqIDs()))

	bat, err := b.AddComponent(catalog.Battery, circuit.Position{X: 100, Y: 70})
	require.NoError(t, err)
	assert.Equal(t, "battery-1", bat.ID)
	assert.Equal(t, cell(1, 1), bat.Position)
	assert.Zero(t, bat.Rotation)
	assert.Empty(t, bat.State)

	sw, err := b.AddComponent(catalog.Switch, cell(4, 4))
	require.NoError(t, err)
	assert.Equal(t, "switch-2", sw.ID)
	assert.Equal(t, circuit.Closed, sw.State)

	got, err := b.Component(sw.ID)
	require.NoError(t, err)
	assert.Equal(t, sw, got)
}

func TestAddComponent_DefaultIDsAreUnique(t *testing.T) {
	b := board.New()
	a, err := b.AddComponent(catalog.Bulb, cell(0, 0))
	require.NoError(t, err)
	c, err := b.AddComponent(catalog.Bulb, cell(2, 0))
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, c.ID)
	assert.Regexp(t, `^bulb-[0-9a-f-]{36}$`, a.ID)
}

func TestAddComponent_Errors(t *testing.T) {
	b := board.New()
	_, err := b.AddComponent("capacitor", cell(0, 0))
	assert.ErrorIs(t, err, catalog.ErrUnknownType)

	_, err = b.AddComponent(catalog.Bulb, cell(2, 2))
	require.NoError(t, err)
	_, err = b.AddComponent(catalog.Resistor, circuit.Position{X: 160, Y: 170})
	assert.ErrorIs(t, err, board.ErrInvalidPosition)
	assert.Len(t, b.Snapshot().Components, 1)
}

func TestMove(t *testing.T) {
	b := board.New()
	a, err := b.AddComponent(catalog.Bulb, cell(0, 0))
	require.NoError(t, err)
	c, err := b.AddComponent(catalog.Bulb, cell(2, 0))
	require.NoError(t, err)

	moved, err := b.Move(a.ID, circuit.Position{X: 250, Y: 250})
	require.NoError(t, err)
	assert.Equal(t, cell(4, 4), moved.Position)

	// staying put is not an overlap with itself
	_, err = b.Move(a.ID, cell(4, 4))
	assert.NoError(t, err)

	_, err = b.Move(a.ID, c.Position)
	assert.ErrorIs(t, err, board.ErrInvalidPosition)

	_, err = b.Move("ghost", cell(0, 0))
	assert.ErrorIs(t, err, board.ErrComponentNotFound)
}

func TestRotate(t *testing.T) {
	b := board.New()
	r, err := b.AddComponent(catalog.Resistor, cell(0, 0))
	require.NoError(t, err)

	for _, want := range []int{90, 180, 270, 0} {
		got, err := b.Rotate(r.ID)
		require.NoError(t, err)
		assert.Equal(t, want, got.Rotation)
	}

	_, err = b.Rotate("ghost")
	assert.ErrorIs(t, err, board.ErrComponentNotFound)
}

func TestToggleSwitch(t *testing.T) {
	b := board.New()
	sw, err := b.AddComponent(catalog.Switch, cell(0, 0))
	require.NoError(t, err)
	lamp, err := b.AddComponent(catalog.Bulb, cell(2, 0))
	require.NoError(t, err)

	state, err := b.ToggleSwitch(sw.ID)
	require.NoError(t, err)
	assert.Equal(t, circuit.Open, state)
	state, err = b.ToggleSwitch(sw.ID)
	require.NoError(t, err)
	assert.Equal(t, circuit.Closed, state)

	_, err = b.ToggleSwitch(lamp.ID)
	assert.ErrorIs(t, err, board.ErrNotSwitch)
	_, err = b.ToggleSwitch("ghost")
	assert.ErrorIs(t, err, board.ErrComponentNotFound)
}

func TestUpdateComponent(t *testing.T) {
	b := board.New()
	sw, err := b.AddComponent(catalog.Switch, cell(0, 0))
	require.NoError(t, err)

	got, err := b.UpdateComponent(sw.ID, func(c *circuit.Component) { c.State = circuit.Open })
	require.NoError(t, err)
	assert.True(t, got.IsOpen())

	_, err = b.UpdateComponent(sw.ID, func(c *circuit.Component) { c.State = "broken" })
	assert.ErrorIs(t, err, circuit.ErrInvalid)

	_, err = b.UpdateComponent(sw.ID, func(c *circuit.Component) { c.ID = "other" })
	assert.ErrorIs(t, err, board.ErrImmutableField)

	_, err = b.UpdateComponent(sw.ID, func(c *circuit.Component) { c.Type = catalog.Bulb })
	assert.ErrorIs(t, err, board.ErrImmutableField)

	// rejected updates leave the stored component alone
	stored, err := b.Component(sw.ID)
	require.NoError(t, err)
	assert.Equal(t, got, stored)
}

func TestUpdateComponent_Placement(t *testing.T) {
	b := board.New()
	lamp, err := b.AddComponent(catalog.Bulb, cell(0, 0))
	require.NoError(t, err)
	r, err := b.AddComponent(catalog.Resistor, cell(3, 0))
	require.NoError(t, err)

	// positions are snapped like Move
	got, err := b.UpdateComponent(lamp.ID, func(c *circuit.Component) { c.Position = circuit.Position{X: 70, Y: 100} })
	require.NoError(t, err)
	assert.Equal(t, cell(1, 1), got.Position)

	// negative quarter turns are normalized
	got, err = b.UpdateComponent(lamp.ID, func(c *circuit.Component) { c.Rotation = -90 })
	require.NoError(t, err)
	assert.Equal(t, 270, got.Rotation)

	tests := []struct {
		name string
		fn   func(c *circuit.Component)
		want error
	}{
		{"onto another component", func(c *circuit.Component) { c.Position = r.Position }, board.ErrInvalidPosition},
		{"into another component's cell", func(c *circuit.Component) {
			c.Position = circuit.Position{X: r.Position.X + 20, Y: r.Position.Y - 10}
		}, board.ErrInvalidPosition},
		{"odd angle", func(c *circuit.Component) { c.Rotation = 45 }, board.ErrInvalidRotation},
		{"negative odd angle", func(c *circuit.Component) { c.Rotation = -30 }, board.ErrInvalidRotation},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := b.UpdateComponent(lamp.ID, tc.fn)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	stored, err := b.Component(lamp.ID)
	require.NoError(t, err)
	assert.Equal(t, got, stored)

	// staying put is not an overlap with itself
	_, err = b.UpdateComponent(lamp.ID, func(c *circuit.Component) { c.State = "" })
	assert.NoError(t, err)

	// off-grid positions clamp to the nearest edge cell
	got, err = b.UpdateComponent(lamp.ID, func(c *circuit.Component) { c.Position = circuit.Position{X: -500, Y: 30} })
	require.NoError(t, err)
	assert.Equal(t, cell(0, 0), got.Position)
}

func TestAddWire(t *testing.T) {
	b := board.New(board.WithIDGenerator(seqIDs()))
	bat, err := b.AddComponent(catalog.Battery, cell(0, 0))
	require.NoError(t, err)
	lamp, err := b.AddComponent(catalog.Bulb, cell(2, 0))
	require.NoError(t, err)

	w, err := b.AddWire(end(bat.ID, catalog.TerminalPositive), end(lamp.ID, catalog.Terminal1))
	require.NoError(t, err)
	assert.Equal(t, "wire-3", w.ID)

	tests := []struct {
		name     string
		from, to circuit.Endpoint
		want     error
	}{
		{"same component", end(bat.ID, catalog.TerminalPositive), end(bat.ID, catalog.TerminalNegative), circuit.ErrSameComponent},
		{"missing component", end(bat.ID, catalog.TerminalPositive), end("ghost", catalog.Terminal1), circuit.ErrUnknownComponent},
		{"battery has no terminal1", end(bat.ID, catalog.Terminal1), end(lamp.ID, catalog.Terminal2), circuit.ErrUnknownTerminal},
		{"bulb has no positive", end(bat.ID, catalog.TerminalNegative), end(lamp.ID, catalog.TerminalPositive), circuit.ErrUnknownTerminal},
		{"empty terminal", end(bat.ID, ""), end(lamp.ID, catalog.Terminal2), circuit.ErrInvalid},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := b.AddWire(tc.from, tc.to)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Len(t, b.Snapshot().Wires, 1)
}

func TestRemoveComponent_CascadesWires(t *testing.T) {
	b := board.New()
	a := analysis.New()
	_, lamp, sw := litLoop(t, b)

	res := b.Analyze(context.Background(), a)
	require.Equal(t, 1, res.BulbsOn)

	n, err := b.RemoveComponent(lamp.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	snap := b.Snapshot()
	assert.Len(t, snap.Components, 2)
	require.Len(t, snap.Wires, 1)
	assert.False(t, snap.Wires[0].Touches(lamp.ID))
	assert.True(t, snap.Wires[0].Touches(sw.ID))

	res = b.Analyze(context.Background(), a)
	assert.False(t, res.HasClosedLoop)
	assert.Equal(t, analysis.MsgNoCircuit, res.Explanation)

	_, err = b.RemoveComponent(lamp.ID)
	assert.ErrorIs(t, err, board.ErrComponentNotFound)
}

func TestToggleSwitch_GatesAnalysis(t *testing.T) {
	b := board.New()
	a := analysis.New()
	_, _, sw := litLoop(t, b)

	_, err := b.ToggleSwitch(sw.ID)
	require.NoError(t, err)
	res := b.Analyze(context.Background(), a)
	assert.Equal(t, 1, res.SwitchesOpen)
	assert.Zero(t, res.BulbsOn)

	_, err = b.ToggleSwitch(sw.ID)
	require.NoError(t, err)
	res = b.Analyze(context.Background(), a)
	assert.Equal(t, 1, res.BulbsOn)
}

func TestRemoveWire(t *testing.T) {
	b := board.New()
	litLoop(t, b)
	w := b.Snapshot().Wires[1]

	require.NoError(t, b.RemoveWire(w.ID))
	assert.Len(t, b.Snapshot().Wires, 2)
	assert.ErrorIs(t, b.RemoveWire(w.ID), board.ErrWireNotFound)
}

func TestResetAndSnapshot(t *testing.T) {
	b := board.New()
	litLoop(t, b)

	snap := b.Snapshot()
	snap.Components[0].ID = "mutated"
	snap.Wires = nil
	fresh := b.Snapshot()
	assert.NotEqual(t, "mutated", fresh.Components[0].ID)
	assert.Len(t, fresh.Wires, 3)

	b.Reset()
	assert.Empty(t, b.Snapshot().Components)
	assert.Empty(t, b.Snapshot().Wires)
	assert.Equal(t, analysis.MsgNoBattery, b.Analyze(context.Background(), analysis.New()).Explanation)
}

func TestFromDocument(t *testing.T) {
	d := circuit.Document{
		Components: []circuit.Component{
			{ID: "bat", Type: catalog.Battery, Position: cell(0, 0)},
			{ID: "lamp", Type: catalog.Bulb, Position: cell(2, 0)},
		},
		Wires: []circuit.Wire{
			{ID: "w1", From: end("bat", catalog.TerminalPositive), To: end("lamp", catalog.Terminal1)},
			{ID: "w2", From: end("lamp", catalog.Terminal1), To: end("bat", catalog.TerminalNegative)},
			{ID: "w3", From: end("lamp", catalog.Terminal2), To: end("gone", catalog.Terminal1)},
		},
	}

	b, err := board.FromDocument(d)
	require.NoError(t, err)
	assert.Len(t, b.Snapshot().Wires, 2)
	assert.Equal(t, 1, b.Analyze(context.Background(), analysis.New()).BulbsOn)

	d.Components = append(d.Components, d.Components[0])
	_, err = board.FromDocument(d)
	assert.ErrorIs(t, err, circuit.ErrDuplicateID)
}

func TestHitTesting(t *testing.T) {
	b := board.New()
	bat, lamp, _ := litLoop(t, b)

	got, ok := b.ComponentAt(circuit.Position{X: 100, Y: 100})
	require.True(t, ok)
	assert.Equal(t, bat.ID, got.ID)
	_, ok = b.ComponentAt(cell(8, 6))
	assert.False(t, ok)

	term, ok := b.TerminalAt(circuit.Position{X: 125, Y: 85})
	require.True(t, ok)
	assert.Equal(t, end(bat.ID, catalog.TerminalPositive), term)

	term, ok = b.TerminalAt(circuit.Position{X: 210, Y: 65})
	require.True(t, ok)
	assert.Equal(t, end(lamp.ID, catalog.Terminal1), term)

	_, ok = b.TerminalAt(cell(8, 6))
	assert.False(t, ok)
}

func TestConcurrentEditsAndAnalysis(t *testing.T) {
	b := board.New()
	a := analysis.New()
	litLoop(t, b)

	var wg sync.WaitGroup
	for i := 0; i < 6; i++ {
		wg.Add(2)
		go func(col int) {
			defer wg.Done()
			_, err := b.AddComponent(catalog.Resistor, cell(col*2, 5))
			assert.NoError(t, err, fmt.Sprintf("col %d", col))
		}(i)
		go func() {
			defer wg.Done()
			res := b.Analyze(context.Background(), a)
			assert.True(t, res.HasClosedLoop)
		}()
	}
	wg.Wait()

	assert.Len(t, b.Snapshot().Components, 9)
}
