// Package graph holds the in-memory model of a loaded definition file:
// flat, immutable node and connection records indexed by id. All traversal
// works over id lookups into this arena, never over live object references.
package graph

// Slot is one declared input or output parameter on a node.
type Slot struct {
	// Name is the declared parameter name (or nickname when the source
	// format only carries a nickname).
	Name string
	// Type is the declared type tag, verbatim from the source file.
	Type string
}

// Language identifies the authoring language of an embedded script.
type Language string

const (
	LangCSharp       Language = "C#"
	LangPython       Language = "Python"
	LangVBNet        Language = "VB.NET"
	LangDesignScript Language = "DesignScript"
	LangUnknown      Language = "Unknown"
)

// Script is the embedded source payload of a script-bearing node. Code is
// preserved byte-for-byte from the definition file.
type Script struct {
	Language Language
	Code     string
}

// Node is one component instance in the definition. Nodes are immutable
// once loaded; the loader is the only writer.
type Node struct {
	// ID is the unique identifier from the source format, usually a GUID.
	ID string
	// Type is the component type label. Unrecognized types are retained
	// here unchanged rather than rejected.
	Type string
	// DisplayName is the human-facing name (nickname, view name, or the
	// type label when nothing better exists).
	DisplayName string
	// Inputs and Outputs preserve the declared slot order.
	Inputs  []Slot
	Outputs []Slot
	// Script is non-nil only for script-bearing nodes. A script node with
	// empty code still carries a non-nil Script.
	Script *Script
	// Unknown marks a component type the codec did not recognize. The
	// node is kept generically with the common fields above.
	Unknown bool
}

// Connection is a directed wire from one node's output slot to another
// node's input slot.
type Connection struct {
	FromID   string
	FromSlot string
	ToID     string
	ToSlot   string
}

// Library is one library/package record declared in the definition file
// itself (Grasshopper GHALibraries, Dynamo NodeLibraryDependencies).
type Library struct {
	Name    string
	Version string
}

// Graph is the loaded definition: nodes in declared order, the connection
// set, and any structural warnings accumulated during loading. It is not
// mutated after the loader seals it.
type Graph struct {
	nodes map[string]Node
	order []string

	connections []Connection
	warnings    []Warning
	libraries   []Library
}

// New returns an empty graph ready to be populated by a loader.
func New() *Graph {
	return &Graph{nodes: make(map[string]Node)}
}

// AddNode records a node, preserving first-declaration order. A duplicate
// id keeps the first declaration and records a warning.
func (g *Graph) AddNode(n Node) {
	if _, ok := g.nodes[n.ID]; ok {
		g.Warn(Warning{Kind: WarnDuplicateNode, NodeID: n.ID})
		return
	}
	g.nodes[n.ID] = n
	g.order = append(g.order, n.ID)
}

// AddConnection records a wire between two nodes. Connections whose
// endpoints are not present in the node set are dropped with a warning so
// that partially corrupt definitions remain analyzable. Self-loops are
// kept but flagged.
func (g *Graph) AddConnection(c Connection) {
	if _, ok := g.nodes[c.FromID]; !ok {
		g.Warn(Warning{Kind: WarnDanglingEndpoint, NodeID: c.FromID, Detail: "connection source not in node set"})
		return
	}
	if _, ok := g.nodes[c.ToID]; !ok {
		g.Warn(Warning{Kind: WarnDanglingEndpoint, NodeID: c.ToID, Detail: "connection target not in node set"})
		return
	}
	if c.FromID == c.ToID {
		g.Warn(Warning{Kind: WarnSelfLoop, NodeID: c.FromID})
	}
	for _, prev := range g.connections {
		if prev.ToID == c.ToID && prev.ToSlot == c.ToSlot {
			// An input slot takes at most one incoming wire. Real-world
			// files violate this; keep both wires and record it.
			g.Warn(Warning{Kind: WarnFanIn, NodeID: c.ToID, Detail: "input slot " + c.ToSlot + " has multiple sources"})
			break
		}
	}
	g.connections = append(g.connections, c)
}

// AddLibrary records a library declared by the definition file.
func (g *Graph) AddLibrary(l Library) {
	g.libraries = append(g.libraries, l)
}

// Warn appends a structural warning to the graph.
func (g *Graph) Warn(w Warning) {
	g.warnings = append(g.warnings, w)
}

// Node returns the node with the given id.
func (g *Graph) Node(id string) (Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// NodeIDs returns all node ids in declared order. The returned slice is a
// copy and safe for the caller to keep.
func (g *Graph) NodeIDs() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Len reports the number of nodes.
func (g *Graph) Len() int {
	return len(g.order)
}

// Connections returns the connection set in declared order.
func (g *Graph) Connections() []Connection {
	out := make([]Connection, len(g.connections))
	copy(out, g.connections)
	return out
}

// Warnings returns the structural warnings accumulated during loading.
func (g *Graph) Warnings() []Warning {
	out := make([]Warning, len(g.warnings))
	copy(out, g.warnings)
	return out
}

// Libraries returns the library records declared by the definition file.
func (g *Graph) Libraries() []Library {
	out := make([]Library, len(g.libraries))
	copy(out, g.libraries)
	return out
}
