package topology

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sonomirco/defgraph/internal/graph"
	"github.com/sonomirco/defgraph/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_SimpleChain(t *testing.T) {
	t.Parallel()

	g := testutil.Chain("a", "b", "c")

	topo := Classify(context.Background(), g)

	assert.Equal(t, []string{"a"}, topo.Starts)
	assert.Equal(t, []string{"c"}, topo.Ends)
	assert.Empty(t, topo.Branches)
	assert.Empty(t, topo.Merges)
	assert.Equal(t, []string{"a", "b", "c"}, topo.PrimaryPath)
	assert.False(t, topo.Cyclic)
}

func TestClassify_NoConnections(t *testing.T) {
	t.Parallel()

	// Every node is simultaneously a start and an end; the primary path
	// is the single lexicographically smallest node.
	g := testutil.GraphOf([]graph.Node{{ID: "c"}, {ID: "a"}, {ID: "b"}}, nil)

	topo := Classify(context.Background(), g)

	assert.Equal(t, []string{"a", "b", "c"}, topo.Starts)
	assert.Equal(t, []string{"a", "b", "c"}, topo.Ends)
	assert.Empty(t, topo.Branches)
	assert.Empty(t, topo.Merges)
	assert.Equal(t, []string{"a"}, topo.PrimaryPath)
}

func TestClassify_BranchTieBreak(t *testing.T) {
	t.Parallel()

	// a fans out to b and c; both arms have equal length, so the path
	// through the lexicographically smaller successor wins.
	g := testutil.GraphOf(
		[]graph.Node{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		[]graph.Connection{
			{FromID: "a", FromSlot: "out", ToID: "c", ToSlot: "in"},
			{FromID: "a", FromSlot: "out", ToID: "b", ToSlot: "in"},
		},
	)

	topo := Classify(context.Background(), g)

	assert.Equal(t, []string{"a"}, topo.Branches)
	assert.Empty(t, topo.Merges)
	assert.Equal(t, []string{"a", "b"}, topo.PrimaryPath)
}

func TestClassify_LongerArmBeatsLexicographic(t *testing.T) {
	t.Parallel()

	// a->c->d is longer than a->b, so length wins over the smaller id.
	g := testutil.GraphOf(
		[]graph.Node{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}},
		[]graph.Connection{
			{FromID: "a", ToID: "b", ToSlot: "in"},
			{FromID: "a", ToID: "c", ToSlot: "in"},
			{FromID: "c", ToID: "d", ToSlot: "in"},
		},
	)

	topo := Classify(context.Background(), g)

	assert.Equal(t, []string{"a", "c", "d"}, topo.PrimaryPath)
}

func TestClassify_MergePoint(t *testing.T) {
	t.Parallel()

	g := testutil.GraphOf(
		[]graph.Node{{ID: "a"}, {ID: "b"}, {ID: "m"}},
		[]graph.Connection{
			{FromID: "a", ToID: "m", ToSlot: "x"},
			{FromID: "b", ToID: "m", ToSlot: "y"},
		},
	)

	topo := Classify(context.Background(), g)

	assert.Equal(t, []string{"a", "b"}, topo.Starts)
	assert.Equal(t, []string{"m"}, topo.Ends)
	assert.Equal(t, []string{"m"}, topo.Merges)
	assert.Empty(t, topo.Branches)
	assert.Equal(t, []string{"a", "m"}, topo.PrimaryPath)
}

func TestClassify_AllCycleGraph(t *testing.T) {
	t.Parallel()

	// a->b->a: no start, no end, cyclic flag set, empty primary path.
	// The classifier must terminate rather than loop.
	g := testutil.GraphOf(
		[]graph.Node{{ID: "a"}, {ID: "b"}},
		[]graph.Connection{
			{FromID: "a", ToID: "b", ToSlot: "in"},
			{FromID: "b", ToID: "a", ToSlot: "in"},
		},
	)

	topo := Classify(context.Background(), g)

	assert.Empty(t, topo.Starts)
	assert.Empty(t, topo.Ends)
	assert.Empty(t, topo.PrimaryPath)
	assert.True(t, topo.Cyclic)
}

func TestClassify_CycleReachableFromStart(t *testing.T) {
	t.Parallel()

	// s->a->b->a: the walk stops at the back-edge instead of looping.
	g := testutil.GraphOf(
		[]graph.Node{{ID: "s"}, {ID: "a"}, {ID: "b"}},
		[]graph.Connection{
			{FromID: "s", ToID: "a", ToSlot: "in"},
			{FromID: "a", ToID: "b", ToSlot: "in"},
			{FromID: "b", ToID: "a", ToSlot: "in"},
		},
	)

	topo := Classify(context.Background(), g)

	assert.Equal(t, []string{"s"}, topo.Starts)
	assert.True(t, topo.Cyclic)
	assert.Equal(t, []string{"s", "a", "b"}, topo.PrimaryPath)
}

func TestClassify_SelfLoopDoesNotHang(t *testing.T) {
	t.Parallel()

	g := testutil.GraphOf(
		[]graph.Node{{ID: "s"}, {ID: "x"}},
		[]graph.Connection{
			{FromID: "s", ToID: "x", ToSlot: "in"},
			{FromID: "x", ToID: "x", ToSlot: "loop"},
		},
	)

	topo := Classify(context.Background(), g)

	assert.True(t, topo.Cyclic)
	assert.Equal(t, []string{"s", "x"}, topo.PrimaryPath)
}

func TestClassify_Deterministic(t *testing.T) {
	t.Parallel()

	g := testutil.GraphOf(
		[]graph.Node{{ID: "d"}, {ID: "a"}, {ID: "c"}, {ID: "b"}},
		[]graph.Connection{
			{FromID: "a", ToID: "b", ToSlot: "in"},
			{FromID: "a", ToID: "c", ToSlot: "in"},
			{FromID: "b", ToID: "d", ToSlot: "in"},
			{FromID: "c", ToID: "d", ToSlot: "in"},
		},
	)

	first := Classify(context.Background(), g)
	second := Classify(context.Background(), g)

	require.Empty(t, cmp.Diff(first, second), "identical inputs must yield identical reports")
	assert.Equal(t, []string{"a", "b", "d"}, first.PrimaryPath)
}
