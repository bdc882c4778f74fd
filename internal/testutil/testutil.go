// Package testutil holds shared fixtures for the analyzer's tests.
package testutil

import (
	"bytes"
	"sync"

	"github.com/sonomirco/defgraph/internal/graph"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// GraphOf builds a sealed graph from plain node and connection values.
func GraphOf(nodes []graph.Node, connections []graph.Connection) *graph.Graph {
	g := graph.New()
	for _, n := range nodes {
		g.AddNode(n)
	}
	for _, c := range connections {
		g.AddConnection(c)
	}
	return g
}

// Chain builds a graph where the given ids are wired in sequence, each
// node exposing one "in" and one "out" slot.
func Chain(ids ...string) *graph.Graph {
	g := graph.New()
	for _, id := range ids {
		g.AddNode(graph.Node{
			ID:          id,
			Type:        "Generic",
			DisplayName: id,
			Inputs:      []graph.Slot{{Name: "in"}},
			Outputs:     []graph.Slot{{Name: "out"}},
		})
	}
	for i := 1; i < len(ids); i++ {
		g.AddConnection(graph.Connection{FromID: ids[i-1], FromSlot: "out", ToID: ids[i], ToSlot: "in"})
	}
	return g
}
