package graph

// WarningKind classifies a structural problem found while loading or
// analyzing a definition. Warnings never abort an analysis run.
type WarningKind string

const (
	// WarnDanglingEndpoint marks a connection referencing a node id that
	// is not present in the node set.
	WarnDanglingEndpoint WarningKind = "dangling-endpoint"
	// WarnSelfLoop marks a node wired to itself.
	WarnSelfLoop WarningKind = "self-loop"
	// WarnFanIn marks an input slot with more than one incoming wire.
	WarnFanIn WarningKind = "fan-in"
	// WarnDuplicateNode marks a node id declared more than once.
	WarnDuplicateNode WarningKind = "duplicate-node"
	// WarnCyclic marks a cycle reachable from a start node.
	WarnCyclic WarningKind = "cyclic"
	// WarnUnknownComponent marks a component type the codec did not
	// recognize; the node is retained generically.
	WarnUnknownComponent WarningKind = "unknown-component"
)

// Warning is one non-fatal structural finding.
type Warning struct {
	Kind   WarningKind
	NodeID string
	Detail string
}

// String renders the warning for logs and the report document.
func (w Warning) String() string {
	s := string(w.Kind)
	if w.NodeID != "" {
		s += " " + w.NodeID
	}
	if w.Detail != "" {
		s += ": " + w.Detail
	}
	return s
}
