// Package render serializes a report value into the Markdown document
// written beside the input file. The core pipeline never writes files
// itself; this package is the external collaborator that owns the layout.
package render

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sonomirco/defgraph/internal/graph"
	"github.com/sonomirco/defgraph/internal/report"
	"github.com/sonomirco/defgraph/internal/script"
)

// ArtifactPath returns where the rendered report for the given input file
// is written: next to the input, with a stable suffix.
func ArtifactPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + "-defgraph-report.md"
}

// Markdown renders the full report document. The output is deterministic:
// identical reports produce byte-identical documents, so rendered reports
// diff cleanly under version control.
func Markdown(r *report.Report, pathElide int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Definition Analysis\n\n")
	fmt.Fprintf(&b, "**File:** %s\n\n", r.Source)

	fmt.Fprintf(&b, "## Summary\n\n")
	fmt.Fprintf(&b, "- Nodes: %d\n", r.Summary.Nodes)
	fmt.Fprintf(&b, "- Connections: %d\n", r.Summary.Connections)
	fmt.Fprintf(&b, "- Script Components: %d\n", r.Summary.Scripts)
	fmt.Fprintf(&b, "- Unknown Component Types: %d\n\n", r.Summary.UnknownTypes)

	fmt.Fprintf(&b, "## Workflow\n\n")
	fmt.Fprintf(&b, "- Start Nodes: %d\n", len(r.Topology.Starts))
	fmt.Fprintf(&b, "- End Nodes: %d\n", len(r.Topology.Ends))
	fmt.Fprintf(&b, "- Branching Points: %d\n", len(r.Topology.Branches))
	fmt.Fprintf(&b, "- Merge Points: %d\n", len(r.Topology.Merges))
	if r.Topology.Cyclic {
		fmt.Fprintf(&b, "- Cyclic: yes\n")
	}
	if len(r.Topology.PrimaryPath) > 0 {
		fmt.Fprintf(&b, "- Primary Flow: %s\n", primaryFlowLine(r, pathElide))
	}
	b.WriteString("\n")

	if len(r.Libraries) > 0 {
		fmt.Fprintf(&b, "## Libraries and Dependencies\n\n")
		for _, lib := range r.Libraries {
			fmt.Fprintf(&b, "- %s\n", lib)
		}
		b.WriteString("\n")
	}

	if len(r.Scripts) > 0 {
		fmt.Fprintf(&b, "## Custom Script Analysis\n\n")
		renderScriptGroups(&b, r.Scripts)
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintf(&b, "## Warnings\n\n")
		for _, w := range r.Warnings {
			fmt.Fprintf(&b, "- %s\n", w.String())
		}
		b.WriteString("\n")
	}

	return b.String()
}

// primaryFlowLine labels the primary path with display names, eliding the
// middle of long paths so the line stays a one-glance summary.
func primaryFlowLine(r *report.Report, elide int) string {
	names := make([]string, 0, len(r.Topology.PrimaryPath))
	for _, id := range r.Topology.PrimaryPath {
		if name, ok := r.Names[id]; ok && name != "" {
			names = append(names, name)
		} else {
			names = append(names, id)
		}
	}
	if elide >= 3 && len(names) > elide {
		head := elide / 2
		tail := elide - head - 1
		elided := append([]string(nil), names[:head]...)
		elided = append(elided, "...")
		elided = append(elided, names[len(names)-tail:]...)
		names = elided
	}
	return strings.Join(names, " -> ")
}

// renderScriptGroups keeps scripts grouped by language, preserving the
// extractor's order within each group.
func renderScriptGroups(b *strings.Builder, scripts []script.Record) {
	languages := []graph.Language{graph.LangCSharp, graph.LangPython, graph.LangVBNet, graph.LangDesignScript, graph.LangUnknown}
	for _, lang := range languages {
		var group []script.Record
		for _, s := range scripts {
			if s.Language == lang {
				group = append(group, s)
			}
		}
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(b, "### %s Scripts (%d)\n\n", lang, len(group))
		for _, s := range group {
			renderScript(b, s)
		}
	}
}

func renderScript(b *strings.Builder, s script.Record) {
	title := s.DisplayName
	if title == "" {
		title = s.NodeID
	}
	fmt.Fprintf(b, "#### %s\n\n", title)
	fmt.Fprintf(b, "**ID:** `%s`\n", s.NodeID)
	fmt.Fprintf(b, "**Language:** %s\n", s.Language)
	renderSlots(b, "Inputs", s.Inputs)
	renderSlots(b, "Outputs", s.Outputs)
	if len(s.References) > 0 {
		fmt.Fprintf(b, "**References:** %s\n", strings.Join(s.References, ", "))
	}
	if s.Code == "" {
		fmt.Fprintf(b, "**Code:** [empty]\n\n")
		return
	}
	fmt.Fprintf(b, "**Code:**\n\n```%s\n%s\n```\n\n", fenceTag(s.Language), s.Code)
}

func renderSlots(b *strings.Builder, label string, slots []graph.Slot) {
	if len(slots) == 0 {
		fmt.Fprintf(b, "**%s:** None\n", label)
		return
	}
	fmt.Fprintf(b, "**%s:**\n", label)
	for _, slot := range slots {
		if slot.Type != "" {
			fmt.Fprintf(b, "- `%s`: %s\n", slot.Name, slot.Type)
		} else {
			fmt.Fprintf(b, "- `%s`\n", slot.Name)
		}
	}
}

func fenceTag(lang graph.Language) string {
	switch lang {
	case graph.LangCSharp:
		return "csharp"
	case graph.LangPython:
		return "python"
	case graph.LangVBNet:
		return "vbnet"
	case graph.LangDesignScript:
		return "designscript"
	}
	return "text"
}
