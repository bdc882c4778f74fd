// Package topology derives a read-only classification of a loaded graph:
// start/end/branch/merge nodes and one canonical primary path.
package topology

import (
	"context"
	"sort"

	"github.com/sonomirco/defgraph/internal/ctxlog"
	"github.com/sonomirco/defgraph/internal/graph"
)

// Report is the derived topology view over one graph. All id lists are
// sorted lexicographically so identical inputs always produce identical
// reports.
type Report struct {
	// Starts are nodes with no incoming connections.
	Starts []string
	// Ends are nodes with no outgoing connections.
	Ends []string
	// Branches have out-degree >= 2, Merges in-degree >= 2.
	Branches []string
	Merges   []string
	// PrimaryPath is the longest simple forward path from a start node.
	// Ties prefer the lexicographically smallest start id, then the
	// smallest node id at each branch choice.
	PrimaryPath []string
	// Cyclic is set when the connection set contains any cycle. The
	// classifier still terminates: path search never revisits a node
	// already on the current path.
	Cyclic bool
}

// Classify computes the topology report in one pass over the connections
// plus a guarded longest-path search. The graph is read-only throughout.
func Classify(ctx context.Context, g *graph.Graph) *Report {
	logger := ctxlog.FromContext(ctx)

	ids := g.NodeIDs()
	outDegree := make(map[string]int, len(ids))
	inDegree := make(map[string]int, len(ids))
	successors := make(map[string][]string, len(ids))

	for _, c := range g.Connections() {
		outDegree[c.FromID]++
		inDegree[c.ToID]++
		successors[c.FromID] = append(successors[c.FromID], c.ToID)
	}

	report := &Report{}
	for _, id := range ids {
		if inDegree[id] == 0 {
			report.Starts = append(report.Starts, id)
		}
		if outDegree[id] == 0 {
			report.Ends = append(report.Ends, id)
		}
		if outDegree[id] >= 2 {
			report.Branches = append(report.Branches, id)
		}
		if inDegree[id] >= 2 {
			report.Merges = append(report.Merges, id)
		}
	}
	sort.Strings(report.Starts)
	sort.Strings(report.Ends)
	sort.Strings(report.Branches)
	sort.Strings(report.Merges)

	// Sorted, deduplicated successor lists make the path search visit
	// branch choices in lexicographic order, which is what implements the
	// tie-break rule.
	for id, next := range successors {
		successors[id] = sortedUnique(next)
	}

	report.Cyclic = hasCycle(ids, successors)
	report.PrimaryPath = primaryPath(report.Starts, successors)

	logger.Debug("Topology classified.",
		"starts", len(report.Starts),
		"ends", len(report.Ends),
		"branches", len(report.Branches),
		"merges", len(report.Merges),
		"path_len", len(report.PrimaryPath),
		"cyclic", report.Cyclic,
	)
	return report
}

// primaryPath finds the longest simple path over the forward connections,
// starting from each start node in lexicographic order. The first maximal
// path of the winning length is kept, which realizes the tie-break rule.
// A graph with no start node yields an empty path.
func primaryPath(starts []string, successors map[string][]string) []string {
	var best []string
	onPath := make(map[string]bool)

	var walk func(id string, path []string)
	walk = func(id string, path []string) {
		path = append(path, id)
		onPath[id] = true
		defer func() { onPath[id] = false }()

		extended := false
		for _, next := range successors[id] {
			if onPath[next] {
				// Back-edge within the current path: skip to stay simple.
				continue
			}
			extended = true
			walk(next, path)
		}
		if !extended && len(path) > len(best) {
			best = append([]string(nil), path...)
		}
	}

	for _, start := range starts {
		walk(start, nil)
	}
	return best
}

// hasCycle runs a three-color depth-first search over the whole node set,
// so cycles are found whether or not a start node can reach them.
func hasCycle(ids []string, successors map[string][]string) bool {
	const (
		white = 0
		grey  = 1
		black = 2
	)
	color := make(map[string]int, len(ids))

	var visit func(id string) bool
	visit = func(id string) bool {
		color[id] = grey
		for _, next := range successors[id] {
			switch color[next] {
			case white:
				if visit(next) {
					return true
				}
			case grey:
				return true
			}
		}
		color[id] = black
		return false
	}

	for _, id := range ids {
		if color[id] == white && visit(id) {
			return true
		}
	}
	return false
}

func sortedUnique(in []string) []string {
	if len(in) == 0 {
		return in
	}
	sort.Strings(in)
	out := in[:1]
	for _, s := range in[1:] {
		if s != out[len(out)-1] {
			out = append(out, s)
		}
	}
	return out
}
