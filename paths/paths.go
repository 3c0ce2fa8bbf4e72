// Package paths enumerates every simple path between two vertices of a
// core.Graph by exhaustive depth-first search.
//
// Key features:
//   - AllPaths(g, start, end, opts...): all simple paths, no vertex repeated
//   - Reachable(g, from, to): breadth-first connectivity pre-check
//   - Bounds: MaxPaths, MaxExpanded, MaxDepth, with Result.Truncated reporting a cut
//   - Hook: OnPath, invoked per path with error abort
//   - Cancellation via context.Context
//
// Complexity:
//
//   - Time: exponential in the worst case (the number of simple paths in a
//     dense graph is exponential); bounded by MaxExpanded in practice.
//   - Memory: O(V) for the recursion stack plus the collected paths.
//
// Errors:
//
//   - ErrGraphNil               if g is nil.
//   - ErrStartVertexNotFound    if start is missing.
//   - ErrEndVertexNotFound      if end is missing.
//   - context.Canceled          if ctx is done.
//   - any error returned by OnPath.
package paths

import (
	"fmt"

	"github.com/katalvlaran/circuitq/core"
)

// pathWalker encapsulates state during enumeration.
type pathWalker struct {
	graph   *core.Graph
	opts    Options
	end     string
	visited map[string]bool // vertices on the current branch only
	prefix  []string
	res     *Result
	stop    bool
}

// AllPaths returns every simple path from start to end.
//
// A vertex is marked visited only while it is on the current branch and is
// released on backtrack, so sibling branches never see each other's visits.
// Neighbors are expanded in graph adjacency order; parallel edges are
// expanded once per edge and therefore yield repeated paths.
// When start == end the single path [start] is returned.
// An unreachable end yields an empty, non-nil Paths slice.
func AllPaths(g *core.Graph, start, end string, opts ...Option) (*Result, error) {
	// 1. Validate input graph
	if g == nil {
		return nil, ErrGraphNil
	}

	// 2. Apply options
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	// 3. Verify endpoints
	if !g.HasVertex(start) {
		return nil, ErrStartVertexNotFound
	}
	if !g.HasVertex(end) {
		return nil, ErrEndVertexNotFound
	}

	n := g.VertexCount()
	w := &pathWalker{
		graph:   g,
		opts:    o,
		end:     end,
		visited: make(map[string]bool, n),
		prefix:  make([]string, 0, n),
		res:     &Result{Paths: make([]Path, 0)},
	}

	// 4. Walk
	if err := w.walk(start); err != nil {
		return w.res, err
	}

	return w.res, nil
}

// walk extends the current prefix with id.
func (w *pathWalker) walk(id string) error {
	// 1. Cancellation check
	select {
	case <-w.opts.Ctx.Done():
		return w.opts.Ctx.Err()
	default:
	}

	// 2. Expansion budget, which also covers branches that never reach end
	if w.opts.MaxExpanded > 0 && w.res.Expanded >= w.opts.MaxExpanded {
		w.res.Truncated = true
		w.stop = true
		return nil
	}
	w.res.Expanded++

	// 3. Arrived: emit a copy of prefix+id
	if id == w.end {
		return w.emit(id)
	}

	// 4. Depth limit counts edges already on the prefix
	if w.opts.MaxDepth >= 0 && len(w.prefix) >= w.opts.MaxDepth {
		w.res.Truncated = true
		return nil
	}

	// 5. Enter id
	w.visited[id] = true
	w.prefix = append(w.prefix, id)
	defer func() {
		w.prefix = w.prefix[:len(w.prefix)-1]
		delete(w.visited, id)
	}()

	nbs, err := w.graph.NeighborIDs(id)
	if err != nil {
		return fmt.Errorf("paths: NeighborIDs(%q): %w", id, err)
	}

	// 6. Expand every neighbor not already on this branch
	for _, nid := range nbs {
		if w.visited[nid] {
			continue
		}
		if err = w.walk(nid); err != nil {
			return err
		}
		if w.stop {
			return nil
		}
	}

	return nil
}

// emit records a finished path and applies the MaxPaths bound.
func (w *pathWalker) emit(end string) error {
	p := make(Path, len(w.prefix)+1)
	copy(p, w.prefix)
	p[len(w.prefix)] = end
	w.res.Paths = append(w.res.Paths, p)

	if w.opts.OnPath != nil {
		if err := w.opts.OnPath(append(Path(nil), p...)); err != nil {
			return fmt.Errorf("paths: OnPath hook: %w", err)
		}
	}

	if w.opts.MaxPaths > 0 && len(w.res.Paths) >= w.opts.MaxPaths {
		w.res.Truncated = true
		w.stop = true
	}

	return nil
}
