package connections

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"
	"sync"

	"edgeroute/core"
)

// ErrUnknownNode is reported for edges that reference a node not in the diagram.
var ErrUnknownNode = errors.New("edge references unknown node")

// EdgeResult pairs an edge with its route.
type EdgeResult struct {
	Edge core.Edge
	Result
}

// RouteEdges routes every edge independently on a pool of workers. Anchors are
// the handle sides of the connected nodes, or their centers without a handle.
// Results are returned in the order of edges.
func (r *Router) RouteEdges(ctx context.Context, nodes []core.Node, edges []core.Edge, mode core.RouteMode, smooth bool) []EdgeResult {
	snapshot := slices.Clone(nodes)
	byID := make(map[string]core.Node, len(snapshot))
	for _, n := range snapshot {
		byID[n.ID] = n
	}

	results := make([]EdgeResult, len(edges))
	jobs := make(chan int)

	workers := runtime.GOMAXPROCS(0)
	if workers > len(edges) {
		workers = len(edges)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = r.routeEdge(ctx, byID, snapshot, edges[i], mode, smooth)
			}
		}()
	}

	for i := range edges {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

func (r *Router) routeEdge(ctx context.Context, byID map[string]core.Node, nodes []core.Node, edge core.Edge, mode core.RouteMode, smooth bool) EdgeResult {
	source, ok := byID[edge.Source]
	if !ok {
		return EdgeResult{Edge: edge, Result: Result{Err: fmt.Errorf("%w: %q", ErrUnknownNode, edge.Source)}}
	}
	target, ok := byID[edge.Target]
	if !ok {
		return EdgeResult{Edge: edge, Result: Result{Err: fmt.Errorf("%w: %q", ErrUnknownNode, edge.Target)}}
	}

	req := EdgeRequest{
		Start:        source.Anchor(edge.SourceHandle),
		End:          target.Anchor(edge.TargetHandle),
		Source:       source,
		Target:       target,
		SourceHandle: edge.SourceHandle,
		TargetHandle: edge.TargetHandle,
		Nodes:        nodes,
		Mode:         mode,
		Smooth:       smooth,
	}
	return EdgeResult{Edge: edge, Result: r.Route(ctx, req)}
}
