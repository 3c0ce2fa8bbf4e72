package analysis_test

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/katalvlaran/circuitq/analysis"
	"github.com/katalvlaran/circuitq/catalog"
	"github.com/katalvlaran/circuitq/circuit"
)

// randomBoard builds a battery, nBulbs bulbs and an optional switch, then
// joins consecutive pairs of ends into wires. Ends index into the terminal
// list modulo its length.
func randomBoard(nBulbs int, switchOpen bool, ends []int) ([]circuit.Component, []circuit.Wire) {
	cs := []circuit.Component{comp("bat", catalog.Battery)}
	for i := 0; i < nBulbs; i++ {
		cs = append(cs, comp(fmt.Sprintf("bulb-%d", i), catalog.Bulb))
	}
	sw := comp("sw", catalog.Switch)
	if switchOpen {
		sw = openSwitch("sw")
	}
	cs = append(cs, sw)

	var terms []circuit.Endpoint
	for _, c := range cs {
		for _, term := range catalog.Default().Terminals(c.Type) {
			terms = append(terms, circuit.Endpoint{ComponentID: c.ID, Terminal: term})
		}
	}

	var ws []circuit.Wire
	for i := 0; i+1 < len(ends); i += 2 {
		from, to := terms[ends[i]%len(terms)], terms[ends[i+1]%len(terms)]
		if from.ComponentID == to.ComponentID {
			continue
		}
		ws = append(ws, circuit.Wire{ID: fmt.Sprintf("w%d", i/2), From: from, To: to})
	}

	return cs, ws
}

func TestAnalyzeInvariants(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)
	a := analysis.New()
	boardGens := []gopter.Gen{
		gen.IntRange(0, 4),
		gen.Bool(),
		gen.SliceOfN(16, gen.IntRange(0, 1000)),
	}

	properties.Property("analysis is deterministic", prop.ForAll(
		func(n int, open bool, ends []int) bool {
			cs, ws := randomBoard(n, open, ends)
			return reflect.DeepEqual(
				a.Analyze(context.Background(), cs, ws),
				a.Analyze(context.Background(), cs, ws),
			)
		},
		boardGens...,
	))

	properties.Property("lit bulbs never exceed placed bulbs", prop.ForAll(
		func(n int, open bool, ends []int) bool {
			cs, ws := randomBoard(n, open, ends)
			return a.Analyze(context.Background(), cs, ws).BulbsOn <= n
		},
		boardGens...,
	))

	properties.Property("no loop means no current", prop.ForAll(
		func(n int, open bool, ends []int) bool {
			cs, ws := randomBoard(n, open, ends)
			res := a.Analyze(context.Background(), cs, ws)
			if res.HasClosedLoop {
				return true
			}
			return res.Current == 0 && res.BulbsOn == 0 && !res.HasParallel
		},
		boardGens...,
	))

	properties.Property("current obeys Ohm's law over the floored resistance", prop.ForAll(
		func(n int, open bool, ends []int) bool {
			cs, ws := randomBoard(n, open, ends)
			res := a.Analyze(context.Background(), cs, ws)
			if res.Current == 0 {
				return true
			}
			return res.TotalResistance >= 0.1 && math.Abs(res.Current*res.TotalResistance-9) < 1e-9
		},
		boardGens...,
	))

	properties.Property("open switch on a loop blocks current", prop.ForAll(
		func(n int, ends []int) bool {
			cs, ws := randomBoard(n, true, ends)
			res := a.Analyze(context.Background(), cs, ws)
			if res.SwitchesOpen == 0 {
				return true
			}
			return res.HasClosedLoop && res.Current == 0 && res.BulbsOn == 0 && res.Explanation == analysis.MsgSwitchOpen
		},
		gen.IntRange(0, 4),
		gen.SliceOfN(16, gen.IntRange(0, 1000)),
	))

	properties.Property("warnings are never nil", prop.ForAll(
		func(n int, open bool, ends []int) bool {
			cs, ws := randomBoard(n, open, ends)
			return a.Analyze(context.Background(), cs, ws).Warnings != nil
		},
		boardGens...,
	))

	properties.TestingRun(t)
}
