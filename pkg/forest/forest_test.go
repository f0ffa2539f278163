package forest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lgolsearch/search/pkg/chunkstore"
)

func TestForest_PushAndMaterialize(t *testing.T) {
	f := New[string](chunkstore.HeapFactory[Entry[string]]{})

	i1 := f.Push(0, "a")
	i2 := f.Push(i1, "b")
	i3 := f.Push(i2, "c")

	assert.Equal(t, []string{"a", "b", "c"}, MaterializeCloned(f, i3))
	assert.Equal(t, []string{"a", "b"}, MaterializeCloned(f, i2))
	assert.Equal(t, []string(nil), MaterializeCloned(f, 0))
}

func TestForest_Find(t *testing.T) {
	f := New[string](chunkstore.HeapFactory[Entry[string]]{})
	i1 := f.Push(0, "a")
	i2 := f.Push(i1, "b")
	_ = f.Push(i2, "c")

	idx, ok := Find(f, i2, func(idx, prevIdx int, kn string) (int, bool) {
		if kn == "a" {
			return idx, true
		}
		return 0, false
	})
	assert.True(t, ok)
	assert.Equal(t, i1, idx)

	_, ok = Find(f, i2, func(idx, prevIdx int, kn string) (int, bool) {
		return 0, kn == "nonexistent"
	})
	assert.False(t, ok)
}

// chainedPins pins a fixed slice of indices for rebuild, rewriting them in
// place as Rebuild demands.
type chainedPins struct {
	idxs []int
}

func (p *chainedPins) Walk(f func(idx *int)) {
	for i := range p.idxs {
		f(&p.idxs[i])
	}
}

func TestForest_RebuildDropsUnreachableNodes(t *testing.T) {
	f := New[string](chunkstore.HeapFactory[Entry[string]]{})

	// Two branches from the root; only one is pinned.
	a1 := f.Push(0, "a1")
	a2 := f.Push(a1, "a2")
	b1 := f.Push(0, "b1")
	_ = f.Push(b1, "b2") // unreachable after rebuild

	pins := &chainedPins{idxs: []int{a2}}
	f.Rebuild(pins, nil)

	assert.Equal(t, []string{"a1", "a2"}, MaterializeCloned(f, pins.idxs[0]))
	assert.Equal(t, 3, f.Len()) // sentinel + a1 + a2
}

func TestForest_RebuildIsIdempotent(t *testing.T) {
	f := New[string](chunkstore.HeapFactory[Entry[string]]{})
	a1 := f.Push(0, "a1")
	a2 := f.Push(a1, "a2")

	pins := &chainedPins{idxs: []int{a2}}
	f.Rebuild(pins, nil)
	lenAfterFirst := f.Len()
	pathAfterFirst := MaterializeCloned(f, pins.idxs[0])

	f.Rebuild(pins, nil)
	assert.Equal(t, lenAfterFirst, f.Len())
	assert.Equal(t, pathAfterFirst, MaterializeCloned(f, pins.idxs[0]))
}

func TestForest_RebuildKeepsAncestorsOfPinned(t *testing.T) {
	f := New[string](chunkstore.HeapFactory[Entry[string]]{})
	a1 := f.Push(0, "a1")
	a2 := f.Push(a1, "a2")
	a3 := f.Push(a2, "a3")

	// Pin only the deepest node; its whole ancestor chain must survive.
	pins := &chainedPins{idxs: []int{a3}}
	f.Rebuild(pins, nil)

	assert.Equal(t, []string{"a1", "a2", "a3"}, MaterializeCloned(f, pins.idxs[0]))
}

func TestForest_ElemSize(t *testing.T) {
	f := New[int64](chunkstore.HeapFactory[Entry[int64]]{})
	assert.Greater(t, f.ElemSize(), 0)
}
