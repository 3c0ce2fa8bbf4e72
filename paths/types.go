// Package paths defines types and options for simple-path enumeration,
// including cancellation, a per-path hook, and the exploration bounds that
// keep enumeration interactive on dense circuits.
package paths

import (
	"context"
	"errors"
)

// DefaultMaxPaths caps enumeration unless overridden with WithMaxPaths.
// Builder circuits live on a 12×8 grid; real ones have a handful of paths.
const DefaultMaxPaths = 4096

// DefaultMaxExpanded caps the vertices entered by one enumeration unless
// overridden with WithMaxExpanded. Dead-end clusters emit no paths, so
// MaxPaths alone cannot bound them; at this budget a walk ends well under
// a second.
const DefaultMaxExpanded = 1 << 18

var (
	// ErrGraphNil is returned when a nil *core.Graph is passed.
	ErrGraphNil = errors.New("paths: graph is nil")

	// ErrStartVertexNotFound indicates the start vertex does not exist.
	ErrStartVertexNotFound = errors.New("paths: start vertex not found")

	// ErrEndVertexNotFound indicates the end vertex does not exist.
	ErrEndVertexNotFound = errors.New("paths: end vertex not found")
)

// Path is an ordered sequence of distinct vertex IDs from start to end.
type Path []string

// Option configures optional behavior of AllPaths.
type Option func(*Options)

// Options holds configurable parameters for path enumeration.
type Options struct {
	// Ctx allows cancellation or timeouts; defaults to context.Background().
	Ctx context.Context

	// MaxPaths, if positive, stops enumeration once that many paths are found.
	// Zero or negative means unlimited. Default is DefaultMaxPaths.
	MaxPaths int

	// MaxExpanded, if positive, stops enumeration once that many vertices
	// have been entered. Zero or negative means unlimited.
	// Default is DefaultMaxExpanded.
	MaxExpanded int

	// MaxDepth, if non-negative, prunes paths longer than that many edges.
	// Default is -1 (no limit).
	MaxDepth int

	// OnPath, if non-nil, is invoked for every path found, in discovery order.
	// The slice is the caller's to keep. Returning an error aborts enumeration.
	OnPath func(p Path) error
}

// DefaultOptions returns Options with a background context, DefaultMaxPaths,
// DefaultMaxExpanded, no depth limit and no hook.
func DefaultOptions() Options {
	return Options{
		Ctx:         context.Background(),
		MaxPaths:    DefaultMaxPaths,
		MaxExpanded: DefaultMaxExpanded,
		MaxDepth:    -1,
		OnPath:      nil,
	}
}

// WithContext sets the Context. A nil context has no effect.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithMaxPaths bounds the number of paths collected; n <= 0 removes the bound.
func WithMaxPaths(n int) Option {
	return func(o *Options) {
		o.MaxPaths = n
	}
}

// WithMaxExpanded bounds the vertices entered; n <= 0 removes the bound.
func WithMaxExpanded(n int) Option {
	return func(o *Options) {
		o.MaxExpanded = n
	}
}

// WithMaxDepth limits path length to limit edges; a negative limit removes it.
func WithMaxDepth(limit int) Option {
	return func(o *Options) {
		o.MaxDepth = limit
	}
}

// WithOnPath installs fn as the per-path hook.
func WithOnPath(fn func(p Path) error) Option {
	return func(o *Options) {
		o.OnPath = fn
	}
}

// Result captures the outcome of an enumeration.
type Result struct {
	// Paths lists every simple path found, in depth-first discovery order.
	Paths []Path

	// Truncated is true when MaxPaths, MaxExpanded or MaxDepth cut the search short,
	// so Paths may be incomplete.
	Truncated bool

	// Expanded counts vertices entered by the search. It never exceeds a
	// positive MaxExpanded.
	Expanded int
}
