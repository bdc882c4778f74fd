package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddNode(t *testing.T) {
	t.Parallel()

	g := New()
	g.AddNode(Node{ID: "a", Type: "Panel"})
	g.AddNode(Node{ID: "b", Type: "Panel"})
	require.Equal(t, 2, g.Len())
	assert.Equal(t, []string{"a", "b"}, g.NodeIDs())

	n, ok := g.Node("a")
	require.True(t, ok)
	assert.Equal(t, "Panel", n.Type)
}

func TestAddNode_DuplicateKeepsFirst(t *testing.T) {
	t.Parallel()

	g := New()
	g.AddNode(Node{ID: "a", Type: "Panel"})
	g.AddNode(Node{ID: "a", Type: "Slider"})

	require.Equal(t, 1, g.Len())
	n, _ := g.Node("a")
	assert.Equal(t, "Panel", n.Type, "first declaration wins")

	warnings := g.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, WarnDuplicateNode, warnings[0].Kind)
	assert.Equal(t, "a", warnings[0].NodeID)
}

func TestAddConnection_DanglingEndpointIsWarningNotError(t *testing.T) {
	t.Parallel()

	g := New()
	g.AddNode(Node{ID: "a"})

	g.AddConnection(Connection{FromID: "a", FromSlot: "out", ToID: "ghost", ToSlot: "in"})
	g.AddConnection(Connection{FromID: "ghost", FromSlot: "out", ToID: "a", ToSlot: "in"})

	assert.Empty(t, g.Connections(), "dangling connections are dropped")
	warnings := g.Warnings()
	require.Len(t, warnings, 2)
	for _, w := range warnings {
		assert.Equal(t, WarnDanglingEndpoint, w.Kind)
		assert.Equal(t, "ghost", w.NodeID)
	}
}

func TestAddConnection_SelfLoopKeptButFlagged(t *testing.T) {
	t.Parallel()

	g := New()
	g.AddNode(Node{ID: "a"})
	g.AddConnection(Connection{FromID: "a", FromSlot: "out", ToID: "a", ToSlot: "in"})

	require.Len(t, g.Connections(), 1, "self-loops are structurally permitted")
	warnings := g.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, WarnSelfLoop, warnings[0].Kind)
}

func TestAddConnection_FanInOnOneSlotIsFlagged(t *testing.T) {
	t.Parallel()

	g := New()
	g.AddNode(Node{ID: "a"})
	g.AddNode(Node{ID: "b"})
	g.AddNode(Node{ID: "c"})
	g.AddConnection(Connection{FromID: "a", FromSlot: "out", ToID: "c", ToSlot: "in"})
	g.AddConnection(Connection{FromID: "b", FromSlot: "out", ToID: "c", ToSlot: "in"})

	require.Len(t, g.Connections(), 2, "both wires are kept")
	warnings := g.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, WarnFanIn, warnings[0].Kind)
	assert.Equal(t, "c", warnings[0].NodeID)
}

func TestAccessorsReturnCopies(t *testing.T) {
	t.Parallel()

	g := New()
	g.AddNode(Node{ID: "a"})
	g.AddNode(Node{ID: "b"})
	g.AddConnection(Connection{FromID: "a", ToID: "b"})

	ids := g.NodeIDs()
	ids[0] = "mutated"
	assert.Equal(t, []string{"a", "b"}, g.NodeIDs())

	conns := g.Connections()
	conns[0].FromID = "mutated"
	assert.Equal(t, "a", g.Connections()[0].FromID)
}

func TestWarningString(t *testing.T) {
	t.Parallel()

	w := Warning{Kind: WarnFanIn, NodeID: "c", Detail: "input slot in has multiple sources"}
	assert.Equal(t, "fan-in c: input slot in has multiple sources", w.String())

	assert.Equal(t, "cyclic", Warning{Kind: WarnCyclic}.String())
}
