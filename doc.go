// Package circuitq analyzes the circuits built in a grid-based circuit
// builder: a battery, bulbs, resistors and switches joined by wires.
//
// Given the placed components and wires it answers whether a closed loop
// runs from the battery's positive terminal to its negative terminal, what
// current flows, how many bulbs light and how brightly, and whether the
// layout looks series, parallel or both.
//
// Under the hood, everything is organized under these subpackages:
//
//	catalog/   per-type resistance, voltage, terminals, grid and thresholds (YAML)
//	circuit/   components, wires, documents, and the terminal graph builder
//	core/      thread-safe undirected multigraph of terminal vertices
//	paths/     simple-path enumeration and reachability over core.Graph
//	analysis/  resistance, current, brightness and the analysis orchestrator
//	board/     mutable editing model: place, move, rotate, toggle, wire, remove
//	levels/    guided levels, completion rules, badges and progress
//	metrics/   Prometheus collectors for analysis runs
//
// Quick ASCII example:
//
//	bat+ ─── lamp.t1 ─── sw.t1 ─── bat-
//
//	is a closed loop through a 10 Ω bulb and a closed switch: about 0.89 A,
//	one bright bulb.
//
// The model is a teaching approximation. Every component on any path counts
// as if in series, and bulbs light all-or-nothing against one threshold.
//
//	go install github.com/katalvlaran/circuitq/cmd/circuitq@latest
package circuitq
