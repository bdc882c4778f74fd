// Package report joins the classifier and extractor outputs into one
// structured, deterministic report value. Building is pure aggregation:
// no graph traversal happens here.
package report

import (
	"sort"

	"github.com/sonomirco/defgraph/internal/graph"
	"github.com/sonomirco/defgraph/internal/script"
	"github.com/sonomirco/defgraph/internal/topology"
)

// Summary holds the headline counts for one analyzed definition.
type Summary struct {
	Nodes        int
	Connections  int
	Scripts      int
	UnknownTypes int
}

// Report is the complete analysis result for one definition file. It is
// constructed once per run, never mutated afterwards, and held only in
// memory; rendering it to a document is a collaborator's job.
type Report struct {
	// Source is the name of the analyzed definition file.
	Source   string
	Summary  Summary
	Topology *topology.Report
	// Scripts preserves the extractor's declared-node-order sequence.
	Scripts []script.Record
	// Names maps node ids to display names so a renderer can label the
	// primary path without touching the graph again.
	Names map[string]string
	// Libraries is the sorted union of references detected in script code
	// and libraries declared by the definition file itself.
	Libraries []string
	// Warnings merges the structural warnings accumulated during loading
	// with a cyclic-topology warning when the classifier set its flag.
	Warnings []graph.Warning
}

// Build aggregates the pipeline outputs. Given identical inputs it
// produces an identical value, which keeps rendered reports diff-friendly
// under version control.
func Build(source string, g *graph.Graph, topo *topology.Report, scripts []script.Record) *Report {
	unknown := 0
	names := make(map[string]string, g.Len())
	for _, id := range g.NodeIDs() {
		n, ok := g.Node(id)
		if !ok {
			continue
		}
		names[id] = n.DisplayName
		if n.Unknown {
			unknown++
		}
	}

	libSet := make(map[string]struct{})
	for _, lib := range g.Libraries() {
		if lib.Name != "" {
			libSet[lib.Name] = struct{}{}
		}
	}
	for _, s := range scripts {
		for _, ref := range s.References {
			libSet[ref] = struct{}{}
		}
	}
	libs := make([]string, 0, len(libSet))
	for name := range libSet {
		libs = append(libs, name)
	}
	sort.Strings(libs)

	warnings := g.Warnings()
	if topo.Cyclic {
		warnings = append(warnings, graph.Warning{Kind: graph.WarnCyclic, Detail: "connection set contains a cycle"})
	}

	return &Report{
		Source: source,
		Summary: Summary{
			Nodes:        g.Len(),
			Connections:  len(g.Connections()),
			Scripts:      len(scripts),
			UnknownTypes: unknown,
		},
		Topology:  topo,
		Scripts:   scripts,
		Names:     names,
		Libraries: libs,
		Warnings:  warnings,
	}
}
