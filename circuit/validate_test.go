package circuit_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/circuitq/catalog"
	"github.com/katalvlaran/circuitq/circuit"
)

func TestValidateComponent(t *testing.T) {
	cases := []struct {
		name    string
		c       circuit.Component
		wantErr bool
	}{
		{"battery", circuit.Component{ID: "b", Type: catalog.Battery}, false},
		{"open switch", circuit.Component{ID: "s", Type: catalog.Switch, State: circuit.Open}, false},
		{"normal bulb", circuit.Component{ID: "l", Type: catalog.Bulb, State: "normal"}, false},
		{"missing id", circuit.Component{Type: catalog.Bulb}, true},
		{"unknown type", circuit.Component{ID: "c", Type: "capacitor"}, true},
		{"bad state", circuit.Component{ID: "s", Type: catalog.Switch, State: "ajar"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := circuit.ValidateComponent(tc.c)
			if tc.wantErr {
				assert.ErrorIs(t, err, circuit.ErrInvalid)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateComponent_TypesFollowCatalog(t *testing.T) {
	for _, typ := range catalog.Types() {
		assert.NoError(t, circuit.ValidateComponent(circuit.Component{ID: "c", Type: typ}), typ)
	}

	err := circuit.ValidateComponent(circuit.Component{ID: "c", Type: "capacitor"})
	require.ErrorIs(t, err, circuit.ErrInvalid)
	assert.ErrorContains(t, err, "must be one of [battery bulb resistor switch], got capacitor")
}

func TestCheckWire(t *testing.T) {
	cat := catalog.Default()
	comps := []circuit.Component{
		{ID: "bat", Type: catalog.Battery},
		{ID: "b1", Type: catalog.Bulb},
	}

	assert.NoError(t, circuit.CheckWire(cat, comps, wire("w", "bat", "positive", "b1", "terminal1")))
	assert.ErrorIs(t, circuit.CheckWire(cat, comps, wire("", "bat", "positive", "b1", "terminal1")), circuit.ErrInvalid)
	assert.ErrorIs(t, circuit.CheckWire(cat, comps, wire("w", "b1", "terminal1", "b1", "terminal2")), circuit.ErrSameComponent)
	assert.ErrorIs(t, circuit.CheckWire(cat, comps, wire("w", "bat", "positive", "zz", "terminal1")), circuit.ErrUnknownComponent)
	assert.ErrorIs(t, circuit.CheckWire(cat, comps, wire("w", "bat", "terminal1", "b1", "terminal1")), circuit.ErrUnknownTerminal)
}

func TestValidateDocument(t *testing.T) {
	good := circuit.Document{
		Components: []circuit.Component{{ID: "bat", Type: catalog.Battery}, {ID: "b1", Type: catalog.Bulb}},
		Wires:      []circuit.Wire{wire("w1", "bat", "positive", "b1", "terminal1")},
	}
	assert.NoError(t, circuit.Validate(good))

	dupComp := good
	dupComp.Components = append([]circuit.Component{}, good.Components...)
	dupComp.Components = append(dupComp.Components, circuit.Component{ID: "b1", Type: catalog.Resistor})
	assert.ErrorIs(t, circuit.Validate(dupComp), circuit.ErrDuplicateID)

	dupWire := good
	dupWire.Wires = append([]circuit.Wire{}, good.Wires...)
	dupWire.Wires = append(dupWire.Wires, wire("w1", "b1", "terminal2", "bat", "negative"))
	assert.ErrorIs(t, circuit.Validate(dupWire), circuit.ErrDuplicateID)

	selfWire := circuit.Document{
		Components: good.Components,
		Wires:      []circuit.Wire{wire("w1", "b1", "terminal1", "b1", "terminal2")},
	}
	assert.ErrorIs(t, circuit.Validate(selfWire), circuit.ErrSameComponent)

	// dangling references are tolerated
	dangling := circuit.Document{
		Components: good.Components,
		Wires:      []circuit.Wire{wire("w1", "bat", "positive", "gone", "terminal1")},
	}
	assert.NoError(t, circuit.Validate(dangling))
}

func TestDocument_DecodeEncode(t *testing.T) {
	src := `
components:
  - id: bat
    type: battery
    position: {x: 90, y: 90}
  - id: sw
    type: switch
    state: open
    rotation: 90
wires:
  - id: w1
    from: {componentId: bat, terminal: positive}
    to: {componentId: sw, terminal: terminal1}
`
	d, err := circuit.Decode(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, d.Components, 2)
	assert.Equal(t, circuit.Position{X: 90, Y: 90}, d.Components[0].Position)
	assert.True(t, d.Components[1].IsOpen())
	assert.Equal(t, 90, d.Components[1].Rotation)
	require.Len(t, d.Wires, 1)
	assert.Equal(t, "bat-positive", d.Wires[0].From.NodeID())

	var buf bytes.Buffer
	require.NoError(t, d.Encode(&buf))
	back, err := circuit.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, d, back)
}

func TestDecode_UnknownField(t *testing.T) {
	_, err := circuit.Decode(strings.NewReader("components: []\nbatteries: 2\n"))
	assert.Error(t, err)
}

func TestHelpers(t *testing.T) {
	comps := []circuit.Component{
		{ID: "bat", Type: catalog.Battery},
		{ID: "s1", Type: catalog.Switch, State: circuit.Open},
		{ID: "s2", Type: catalog.Switch, State: circuit.Closed},
		{ID: "s3", Type: catalog.Switch, State: circuit.Open},
		{ID: "b1", Type: catalog.Bulb, State: circuit.Open}, // only switches open
	}
	assert.Equal(t, 2, circuit.CountOpenSwitches(comps))
	assert.Len(t, circuit.OfType(comps, catalog.Switch), 3)

	c, ok := circuit.Find(comps, "s2")
	assert.True(t, ok)
	assert.False(t, c.IsOpen())
	_, ok = circuit.Find(comps, "nope")
	assert.False(t, ok)

	w := wire("w", "bat", "positive", "s1", "terminal1")
	assert.True(t, w.Touches("s1"))
	assert.False(t, w.Touches("s2"))
}
