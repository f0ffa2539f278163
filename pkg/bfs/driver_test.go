package bfs

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgolsearch/search/pkg/chunkstore"
	"github.com/lgolsearch/search/pkg/dedupe"
	"github.com/lgolsearch/search/pkg/forest"
	"github.com/lgolsearch/search/pkg/graph"
	"github.com/lgolsearch/search/pkg/lifecycle"
	"github.com/lgolsearch/search/pkg/queue"
)

// node is a toy working node: a step counter that is also its own key
// node and hash node (no translation to strip).
type node int64

func (n node) KeyNode() (node, bool)  { return n, true }
func (n node) HashNode() (node, bool) { return n, true }

// chainGraph advances by exactly one per expansion, up to max, declaring
// target an accepting end.
type chainGraph struct {
	target, max node
}

func (g chainGraph) Expand(n node) []node {
	if n >= g.max {
		return nil
	}
	return []node{n + 1}
}

func (g chainGraph) End(kn node) (string, bool) {
	if kn == g.target {
		return "reached-target", true
	}
	return "", false
}

var _ graph.Graph[node, node, node] = chainGraph{}

type nodeCodec struct{}

func (nodeCodec) Encode(w io.Writer, v node) error { return binary.Write(w, binary.BigEndian, int64(v)) }
func (nodeCodec) Decode(r io.Reader) (node, error) {
	var v int64
	err := binary.Read(r, binary.BigEndian, &v)
	return node(v), err
}

type testLifecycle struct {
	threads       int
	maxMem        uint64
	firstestPaths [][]node
	results       []*graph.Res[node]
	ends          []string
	checkpoints   int
}

func (l *testLifecycle) Threads() int     { return l.threads }
func (l *testLifecycle) RecollectMS() int64 { return 0 }
func (l *testLifecycle) MaxMem() uint64   { return l.maxMem }

func (l *testLifecycle) OnRecollectFirstest(path []node, n node) {
	l.firstestPaths = append(l.firstestPaths, path)
}

func (l *testLifecycle) OnRecollectResults(res *graph.Res[node]) bool {
	l.results = append(l.results, res)
	return true
}

func (l *testLifecycle) Log(level lifecycle.LogLevel, msg string) {}

func (l *testLifecycle) DebugBFS2Checkpoint(getState func() []byte) {
	l.checkpoints++
	_ = getState()
}

func (l *testLifecycle) DebugEnd(path []node, label string) {
	l.ends = append(l.ends, label)
}

func (l *testLifecycle) DebugCycle(stem, cycle []node, closing node) {}

var _ lifecycle.Lifecycle[node, node, node] = &testLifecycle{}

func newChainState(t *testing.T) *State[node, node, node] {
	t.Helper()
	kns := forest.New[node](chunkstore.HeapFactory[forest.Entry[node]]{})
	q := queue.New[Item[node]](chunkstore.HeapFactory[Item[node]]{})
	dd := dedupe.NewHashSet[node]()
	return NewSimple[node, node, node](node(0), kns, q, dd)
}

func TestRun_FindsEndAndDrainsFrontier(t *testing.T) {
	state := newChainState(t)
	g := chainGraph{target: 5, max: 10}
	lc := &testLifecycle{threads: 2, maxMem: 1 << 30}
	codecs := Codecs[node, node, node]{N: nodeCodec{}, KN: nodeCodec{}, HN: nodeCodec{}}

	err := Run(state, g, lc, codecs)
	require.NoError(t, err)

	assert.Equal(t, 0, state.Q.Len())
	assert.Contains(t, lc.ends, "reached-target")
	assert.Greater(t, lc.checkpoints, 0)

	var sawEnd bool
	for _, r := range lc.results {
		if len(r.Ends) > 0 {
			sawEnd = true
			assert.Equal(t, node(5), r.Ends[0].Path[len(r.Ends[0].Path)-1])
		}
	}
	assert.True(t, sawEnd)
}

func TestRun_MemoryPressureForcesDeepening(t *testing.T) {
	state := newChainState(t)
	g := chainGraph{target: 999, max: 8} // bounded chain, target unreachable
	lc := &testLifecycle{threads: 1, maxMem: 64}
	codecs := Codecs[node, node, node]{N: nodeCodec{}, KN: nodeCodec{}, HN: nodeCodec{}}

	err := Run(state, g, lc, codecs)
	require.NoError(t, err)
	assert.Equal(t, 0, state.Q.Len(), "unreachable target eventually prunes the whole frontier")
	assert.Empty(t, lc.ends)
}

func TestEncodeDecodeState_RoundTrips(t *testing.T) {
	state := newChainState(t)
	state.Kns.Push(0, node(1))
	state.Foresight = 2
	state.Depth = 3

	codecs := Codecs[node, node, node]{N: nodeCodec{}, KN: nodeCodec{}, HN: nodeCodec{}}
	b, err := EncodeStateBytes(state, codecs)
	require.NoError(t, err)

	kns2 := forest.New[node](chunkstore.HeapFactory[forest.Entry[node]]{})
	q2 := queue.New[Item[node]](chunkstore.HeapFactory[Item[node]]{})
	dd2 := dedupe.NewHashSet[node]()

	got, err := DecodeState[node, node, node](bytes.NewReader(b), codecs, kns2, q2, dd2)
	require.NoError(t, err)

	assert.Equal(t, state.Foresight, got.Foresight)
	assert.Equal(t, state.Depth, got.Depth)
	assert.Equal(t, state.Kns.Len(), got.Kns.Len())
	assert.Equal(t, state.Q.Len(), got.Q.Len())
}
