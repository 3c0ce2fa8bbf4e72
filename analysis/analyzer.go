// Package analysis turns a board (components and wires) into a Result:
// whether a closed loop exists from the battery's positive terminal to its
// negative terminal, the total resistance and current, topology flags, and
// how many bulbs light.
//
// The model is deliberately simple. Resistances are summed as if every
// component on any path were in series, and bulbs light all-or-nothing
// against a single current threshold. It is a teaching approximation, not
// a circuit solver.
package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/circuitq/catalog"
	"github.com/katalvlaran/circuitq/circuit"
	"github.com/katalvlaran/circuitq/core"
	"github.com/katalvlaran/circuitq/metrics"
	"github.com/katalvlaran/circuitq/paths"
)

const tracerName = "github.com/katalvlaran/circuitq/analysis"

// Analyzer runs analyses against a fixed catalog. It holds no per-run
// state and is safe for concurrent use.
type Analyzer struct {
	cat         *catalog.Catalog
	maxPaths    int
	maxExpanded int
	logger      *slog.Logger
	metrics     *metrics.Registry
	tracer      trace.Tracer
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithCatalog sets the component catalog. A nil catalog has no effect.
func WithCatalog(cat *catalog.Catalog) Option {
	return func(a *Analyzer) {
		if cat != nil {
			a.cat = cat
		}
	}
}

// WithMaxPaths bounds path enumeration; n <= 0 removes the bound.
func WithMaxPaths(n int) Option {
	return func(a *Analyzer) {
		a.maxPaths = n
	}
}

// WithMaxExpanded bounds the vertices one enumeration may enter; n <= 0
// removes the bound. It stops dense clusters that never reach the negative
// terminal, which the path limit cannot see.
func WithMaxExpanded(n int) Option {
	return func(a *Analyzer) {
		a.maxExpanded = n
	}
}

// WithLogger sets the logger. Analysis logs at debug level only.
func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithMetrics records every analysis in reg.
func WithMetrics(reg *metrics.Registry) Option {
	return func(a *Analyzer) {
		a.metrics = reg
	}
}

// WithTracer overrides the tracer taken from the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(a *Analyzer) {
		if t != nil {
			a.tracer = t
		}
	}
}

// New returns an Analyzer using the default catalog, paths.DefaultMaxPaths,
// paths.DefaultMaxExpanded, a discarding logger and the global tracer provider.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		cat:         catalog.Default(),
		maxPaths:    paths.DefaultMaxPaths,
		maxExpanded: paths.DefaultMaxExpanded,
		logger:      slog.New(slog.DiscardHandler),
		tracer:      otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Catalog returns the catalog a analyzes against.
func (a *Analyzer) Catalog() *catalog.Catalog { return a.cat }

var defaultAnalyzer = New()

// AnalyzeCircuit analyzes with the default Analyzer.
func AnalyzeCircuit(components []circuit.Component, wires []circuit.Wire) Result {
	return defaultAnalyzer.Analyze(context.Background(), components, wires)
}

// run carries what one analysis learned, for logging and metrics.
type run struct {
	outcome   string
	pathCount int
	truncated bool
}

// Analyze evaluates the circuit. It never fails: every problem is reported
// through Result.Explanation and Result.Warnings.
//
// Cancelling ctx stops path enumeration early; the paths found so far are
// used and WarnInterrupted is added.
//
// Complexity: dominated by path enumeration, exponential in the worst case
// and bounded by the Analyzer's path and expansion limits.
func (a *Analyzer) Analyze(ctx context.Context, components []circuit.Component, wires []circuit.Wire) Result {
	began := time.Now()
	ctx, span := a.tracer.Start(ctx, "circuit.analyze", trace.WithAttributes(
		attribute.Int("circuit.components", len(components)),
		attribute.Int("circuit.wires", len(wires)),
	))
	defer span.End()

	res, r := a.analyze(ctx, components, wires)

	span.SetAttributes(
		attribute.String("circuit.outcome", r.outcome),
		attribute.Int("circuit.paths", r.pathCount),
		attribute.Bool("circuit.truncated", r.truncated),
		attribute.Int("circuit.bulbs_on", res.BulbsOn),
		attribute.Float64("circuit.current", res.Current),
	)
	for _, w := range res.Warnings {
		span.AddEvent("warning", trace.WithAttributes(attribute.String("message", w)))
	}

	a.logger.DebugContext(ctx, "circuit analysis result",
		slog.String("outcome", r.outcome),
		slog.Bool("closed_loop", res.HasClosedLoop),
		slog.Int("bulbs_on", res.BulbsOn),
		slog.Float64("resistance", res.TotalResistance),
		slog.Float64("current", res.Current),
		slog.Float64("voltage", a.cat.Voltage()),
	)

	if a.metrics != nil {
		a.metrics.RecordAnalysis(r.outcome, time.Since(began), r.pathCount, res.BulbsOn, r.truncated)
	}

	return res
}

func (a *Analyzer) analyze(ctx context.Context, components []circuit.Component, wires []circuit.Wire) (Result, run) {
	res := Result{Warnings: []string{}}

	// 1. Locate the battery
	batteries := circuit.OfType(components, catalog.Battery)
	if len(batteries) == 0 {
		res.Explanation = MsgNoBattery
		return res, run{outcome: metrics.OutcomeNoBattery}
	}
	if len(batteries) > 1 {
		res.Warnings = append(res.Warnings, WarnMultipleBatteries)
	}
	battery := batteries[0]

	// 2. Presence flags, independent of connectivity
	res.HasSwitch = len(circuit.OfType(components, catalog.Switch)) > 0
	res.HasResistor = len(circuit.OfType(components, catalog.Resistor)) > 0

	// 3. Build the terminal graph
	g := a.buildGraph(ctx, components, wires)

	// 4. Enumerate paths from positive to negative
	start := circuit.NodeID(battery.ID, catalog.TerminalPositive)
	end := circuit.NodeID(battery.ID, catalog.TerminalNegative)
	a.logger.DebugContext(ctx, "circuit analysis",
		slog.Int("components", len(components)),
		slog.Int("wires", len(wires)),
		slog.String("battery", battery.ID),
		slog.String("start", start),
		slog.String("end", end),
	)
	found, truncated, interrupted := a.findPaths(ctx, g, start, end)
	r := run{pathCount: len(found), truncated: truncated}
	if truncated {
		res.Warnings = append(res.Warnings, WarnTruncated)
	}
	if interrupted {
		res.Warnings = append(res.Warnings, WarnInterrupted)
	}
	if len(found) == 0 {
		res.Explanation = MsgNoCircuit
		r.outcome = metrics.OutcomeOpen
		return res, r
	}
	res.HasClosedLoop = true

	// 5. An open switch on any path stops current entirely
	byID := indexComponents(components)
	if openSwitchOnPath(g, byID, found) {
		res.SwitchesOpen = circuit.CountOpenSwitches(components)
		res.Explanation = MsgSwitchOpen
		r.outcome = metrics.OutcomeSwitchOpen
		return res, r
	}

	// 6. Resistance, current and topology
	_, span := a.tracer.Start(ctx, "circuit.properties")
	props := CalculateProperties(a.cat, g, components, wires, found)
	span.SetAttributes(
		attribute.Float64("circuit.resistance", props.TotalResistance),
		attribute.StringSlice("circuit.members", props.ComponentsInCircuit),
	)
	span.End()
	res.TotalResistance = props.TotalResistance
	res.HasParallel = props.HasParallel
	res.HasSeries = props.HasSeries
	res.Current = a.cat.Voltage() / res.TotalResistance

	// 7. Bulbs
	th := a.cat.Thresholds()
	_, span = a.tracer.Start(ctx, "circuit.brightness")
	res.BulbsOn = CountLitBulbs(g, circuit.OfType(components, catalog.Bulb), res.Current, th.Lighting, found)
	span.SetAttributes(attribute.Int("circuit.bulbs_on", res.BulbsOn))
	span.End()

	// 8. Explain
	if res.BulbsOn > 0 {
		res.Explanation = fmt.Sprintf(msgWorkingFormat, res.BulbsOn, describeBrightness(res.Current, th.Bright, th.Dim), res.Current)
		r.outcome = metrics.OutcomeLit
	} else {
		res.Explanation = MsgNothingLit
		r.outcome = metrics.OutcomeUnlit
	}

	return res, r
}

func (a *Analyzer) buildGraph(ctx context.Context, components []circuit.Component, wires []circuit.Wire) *core.Graph {
	_, span := a.tracer.Start(ctx, "circuit.build_graph")
	defer span.End()

	g := circuit.BuildGraph(a.cat, components, wires)
	st := g.Stats()
	span.SetAttributes(
		attribute.Int("graph.vertices", st.VertexCount),
		attribute.Int("graph.edges", st.EdgeCount),
		attribute.Int("graph.isolated", st.IsolatedCount),
		attribute.Int("graph.max_degree", st.MaxDegree),
		attribute.Int("graph.skipped_wires", len(wires)-st.EdgeCount),
	)

	if a.logger.Enabled(ctx, slog.LevelDebug) {
		a.logger.DebugContext(ctx, "circuit graph",
			slog.Any("nodes", snapshotGraph(g)),
			slog.Any("wires", wiredLabels(g)),
		)
	}

	return g
}

// graphNode is one terminal of the debug snapshot.
type graphNode struct {
	Node      string   `json:"node"`
	Component string   `json:"component"`
	Terminal  string   `json:"terminal"`
	Neighbors []string `json:"neighbors"`
}

// snapshotGraph lists every terminal with its neighbors, in insertion order.
func snapshotGraph(g *core.Graph) []graphNode {
	adj := g.AdjacencyList()
	ids := g.Vertices()
	out := make([]graphNode, 0, len(ids))
	for _, id := range ids {
		v, err := g.Vertex(id)
		if err != nil {
			continue
		}
		out = append(out, graphNode{Node: id, Component: v.Owner, Terminal: v.Terminal, Neighbors: adj[id]})
	}

	return out
}

// wiredLabels returns the IDs of the wires that made it into g.
func wiredLabels(g *core.Graph) []string {
	edges := g.Edges()
	out := make([]string, len(edges))
	for i, e := range edges {
		out[i] = e.Label
	}

	return out
}

// findPaths returns the simple paths from start to end. A missing or
// unreachable endpoint yields no paths; a walk error keeps the partial set.
func (a *Analyzer) findPaths(ctx context.Context, g *core.Graph, start, end string) (found []paths.Path, truncated, interrupted bool) {
	ctx, span := a.tracer.Start(ctx, "circuit.find_paths")
	defer span.End()

	ok, err := paths.Reachable(g, start, end)
	if err != nil || !ok {
		span.SetAttributes(attribute.Bool("circuit.reachable", false))
		return nil, false, false
	}

	pr, err := paths.AllPaths(g, start, end,
		paths.WithContext(ctx),
		paths.WithMaxPaths(a.maxPaths),
		paths.WithMaxExpanded(a.maxExpanded),
	)
	if pr == nil {
		// Endpoints were just verified; only a nil graph gets here.
		return nil, false, false
	}
	if err != nil {
		span.RecordError(err)
		a.logger.DebugContext(ctx, "path enumeration stopped", slog.String("error", err.Error()))
		interrupted = true
	}
	span.SetAttributes(
		attribute.Int("circuit.paths", len(pr.Paths)),
		attribute.Int("circuit.expanded", pr.Expanded),
	)
	a.logger.DebugContext(ctx, "paths found",
		slog.Int("count", len(pr.Paths)),
		slog.Bool("truncated", pr.Truncated),
		slog.Any("paths", pr.Paths),
	)

	return pr.Paths, pr.Truncated, interrupted
}

func openSwitchOnPath(g *core.Graph, byID map[string]circuit.Component, ps []paths.Path) bool {
	for _, p := range ps {
		for _, node := range p {
			owner, ok := g.Owner(node)
			if !ok {
				continue
			}
			if c, ok := byID[owner]; ok && c.Type == catalog.Switch && c.IsOpen() {
				return true
			}
		}
	}

	return false
}
