// Package script locates script-bearing nodes and captures their embedded
// source verbatim, together with declared parameter metadata and detected
// library references.
package script

import (
	"context"
	"sort"
	"strings"

	"github.com/sonomirco/defgraph/internal/ctxlog"
	"github.com/sonomirco/defgraph/internal/graph"
)

// Record is one extracted script. Code is byte-for-byte identical to the
// text embedded in the definition file; surfacing it unchanged to a human
// porting the logic is the main point of the analyzer.
type Record struct {
	NodeID      string
	DisplayName string
	Language    graph.Language
	Code        string
	Inputs      []graph.Slot
	Outputs     []graph.Slot
	// References are the configured tokens found in the code text, sorted.
	// Detection is best-effort substring matching, not static analysis.
	References []string
}

// Extract walks the graph in declared node order and returns one Record
// per script-bearing node. A script node with empty code still yields a
// record: absent logic is itself worth reporting.
func Extract(ctx context.Context, g *graph.Graph, tokens []string) []Record {
	logger := ctxlog.FromContext(ctx)

	var records []Record
	for _, id := range g.NodeIDs() {
		node, ok := g.Node(id)
		if !ok || node.Script == nil {
			continue
		}
		records = append(records, Record{
			NodeID:      node.ID,
			DisplayName: node.DisplayName,
			Language:    node.Script.Language,
			Code:        node.Script.Code,
			Inputs:      node.Inputs,
			Outputs:     node.Outputs,
			References:  DetectReferences(node.Script.Code, tokens),
		})
	}

	logger.Debug("Scripts extracted.", "count", len(records))
	return records
}

// DetectReferences scans code for the configured reference tokens and
// returns the sorted set of matches. False negatives are acceptable.
func DetectReferences(code string, tokens []string) []string {
	if code == "" {
		return nil
	}
	var found []string
	for _, token := range tokens {
		if token == "" {
			continue
		}
		if strings.Contains(code, token) {
			found = append(found, token)
		}
	}
	sort.Strings(found)
	return found
}
