// SPDX-License-Identifier: MIT
//
// Package core defines the terminal graph used by circuit analysis:
// vertices are component terminals, edges are wires.
//
// The graph is undirected and permits parallel edges, because two wires
// between the same pair of terminals are legal in the builder. Adjacency is
// kept in wire insertion order so that every traversal is reproducible for
// identical input.
//
// Errors:
//
//	ErrEmptyVertexID   - vertex ID is the empty string.
//	ErrVertexNotFound  - requested vertex does not exist.
//	ErrLoopNotAllowed  - edge from a vertex to itself.
package core

import (
	"errors"
	"sync"
)

// Sentinel errors for core graph operations.
var (
	// ErrEmptyVertexID indicates that the provided vertex ID is empty.
	ErrEmptyVertexID = errors.New("core: vertex ID is empty")

	// ErrVertexNotFound indicates an operation referenced a non-existent vertex.
	ErrVertexNotFound = errors.New("core: vertex not found")

	// ErrLoopNotAllowed indicates a self-loop was attempted. A wire joining a
	// terminal to itself carries nothing, so the graph never holds one.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")
)

// Vertex is one terminal node.
//
// Owner and Terminal record which component terminal the vertex stands for,
// so callers never need to parse the ID to recover the component.
type Vertex struct {
	// ID uniquely identifies this vertex within its Graph.
	ID string

	// Owner is the ID of the component the terminal belongs to.
	Owner string

	// Terminal is the terminal name on the owning component.
	Terminal string
}

// Edge is an undirected connection between two vertices.
type Edge struct {
	// ID uniquely identifies this edge in the Graph ("e1", "e2", …).
	ID string

	// Label carries the caller's identifier, e.g. the wire ID.
	Label string

	// From and To are the endpoint vertex IDs, in the order they were added.
	From string
	To   string
}

// Other returns the endpoint of e opposite to id.
func (e *Edge) Other(id string) string {
	if e.From == id {
		return e.To
	}

	return e.From
}

// GraphOption configures behavior of a Graph before creation.
type GraphOption func(g *Graph)

// WithCapacity pre-sizes internal maps for n vertices.
func WithCapacity(n int) GraphOption {
	return func(g *Graph) {
		if n > 0 {
			g.capHint = n
		}
	}
}

// VertexOption configures a vertex when it is added.
type VertexOption func(v *Vertex)

// WithOwner records the component and terminal a vertex stands for.
func WithOwner(componentID, terminal string) VertexOption {
	return func(v *Vertex) {
		v.Owner = componentID
		v.Terminal = terminal
	}
}

// EdgeOption configures properties of individual edges when added.
type EdgeOption func(*Edge)

// WithLabel attaches a caller identifier to the edge.
func WithLabel(label string) EdgeOption {
	return func(e *Edge) { e.Label = label }
}

// Graph is an undirected multigraph over terminal vertices.
//
// A single RWMutex guards all state: a circuit graph is small and rebuilt
// per analysis, so finer-grained locking buys nothing.
type Graph struct {
	mu sync.RWMutex

	capHint int

	nextEdgeID uint64
	vertices   map[string]*Vertex
	order      []string // vertex IDs in insertion order
	edges      map[string]*Edge

	// adjacency[v] lists every edge incident to v in insertion order.
	// A parallel edge appears once per wire.
	adjacency map[string][]*Edge
}

// NewGraph creates an empty Graph.
// Complexity: O(1).
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{}
	for _, opt := range opts {
		opt(g)
	}
	g.vertices = make(map[string]*Vertex, g.capHint)
	g.order = make([]string, 0, g.capHint)
	g.edges = make(map[string]*Edge)
	g.adjacency = make(map[string][]*Edge, g.capHint)

	return g
}
