package dfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgolsearch/search/pkg/graph"
	"github.com/lgolsearch/search/pkg/lifecycle"
)

// node is a toy working/key/hash node: a counter mod a ring size, so
// successors eventually revisit an earlier node and close a cycle.
type node int

func (n node) KeyNode() (node, bool)  { return n, true }
func (n node) HashNode() (node, bool) { return n, true }

// ringGraph advances by one, wrapping at size, so every path eventually
// closes a cycle back to 0 — the DFS analogue of pkg/bfs's chainGraph.
type ringGraph struct {
	size   int
	target node
	hasEnd bool
}

func (g ringGraph) Expand(n node) []node {
	return []node{node((int(n) + 1) % g.size)}
}

func (g ringGraph) End(kn node) (string, bool) {
	if g.hasEnd && kn == g.target {
		return "reached-target", true
	}
	return "", false
}

var _ graph.Graph[node, node, node] = ringGraph{}

type testLifecycle struct {
	threads     int
	recollectMS int64
	firstest    [][]node
	results     []*graph.Res[node]
}

func (l *testLifecycle) Threads() int       { return l.threads }
func (l *testLifecycle) RecollectMS() int64 { return l.recollectMS }
func (l *testLifecycle) MaxMem() uint64     { return 1 << 30 }

func (l *testLifecycle) OnRecollectFirstest(path []node, n node) {
	l.firstest = append(l.firstest, path)
}

func (l *testLifecycle) OnRecollectResults(res *graph.Res[node]) bool {
	l.results = append(l.results, res)
	return true
}

func (l *testLifecycle) Log(level lifecycle.LogLevel, msg string)    {}
func (l *testLifecycle) DebugBFS2Checkpoint(getState func() []byte)  {}
func (l *testLifecycle) DebugEnd(path []node, label string)          {}
func (l *testLifecycle) DebugCycle(stem, cycle []node, closing node) {}

var _ lifecycle.Lifecycle[node, node, node] = &testLifecycle{}

func TestSdfs_ClosesRingAsACycle(t *testing.T) {
	g := ringGraph{size: 4}
	lc := &testLifecycle{threads: 1}
	root := NewTree[node](node(0))

	Sdfs(root, g, lc)

	assert.True(t, Collapse(root), "a ring with no end has nothing left unopened")
	require.Len(t, lc.results, 1)
	res := lc.results[0]
	require.Len(t, res.Cycles, 1)
	// findUnopened puts the root's own key node on the path before the
	// walk starts, so the loop closes back on the root, node 0.
	assert.Equal(t, node(0), res.Cycles[0].Closing)
	assert.Empty(t, res.Cycles[0].Stem)
	assert.Equal(t, []node{0, 1, 2, 3}, res.Cycles[0].Cycle)
}

func TestSdfs_ReportsEndBeforeClosingCycle(t *testing.T) {
	g := ringGraph{size: 5, target: 2, hasEnd: true}
	lc := &testLifecycle{threads: 1}
	root := NewTree[node](node(0))

	Sdfs(root, g, lc)

	require.Len(t, lc.results, 1)
	res := lc.results[0]
	require.Len(t, res.Ends, 1)
	assert.Equal(t, "reached-target", res.Ends[0].Label)
	assert.Equal(t, node(2), res.Ends[0].Path[len(res.Ends[0].Path)-1])
	assert.Empty(t, res.Cycles, "the walk stops at the end, never reaching back to 0")
}

func TestDfs_TimeSlicesAndEventuallyCollapses(t *testing.T) {
	g := ringGraph{size: 3}
	lc := &testLifecycle{threads: 2, recollectMS: 50}
	root := NewTree[node](node(0))

	Dfs(root, g, lc)

	assert.True(t, Collapse(root))
	var totalCycles int
	for _, r := range lc.results {
		totalCycles += len(r.Cycles)
	}
	assert.Equal(t, 1, totalCycles)
}

func TestPath_FindOrPushDetectsRepeat(t *testing.T) {
	p := NewPath[node, node]()
	p.Push(node(1))
	p.Push(node(2))

	idx, found := p.FindOrPush(node(1))
	assert.True(t, found)
	assert.Equal(t, 0, idx)
	assert.Equal(t, []node{1, 2}, p.Vec(), "a found repeat is not appended")
}

func TestPath_PopRemovesLastEntry(t *testing.T) {
	p := NewPath[node, node]()
	p.Push(node(1))
	p.Push(node(2))
	p.Pop(node(2))
	assert.Equal(t, []node{1}, p.Vec())

	_, found := p.FindOrPush(node(2))
	assert.False(t, found, "popped entries no longer count as repeats")
}

func TestCollapse_LeavesUnopenedSubtreeOpen(t *testing.T) {
	root := &Tree[node]{
		Node:   node(0),
		status: opened,
		Children: []*Tree[node]{
			{Node: node(1), status: closed},
			{Node: node(2), status: unopened},
		},
	}
	assert.False(t, Collapse(root))
	assert.Equal(t, opened, root.status)
}
