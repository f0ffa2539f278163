// Package forest implements the key-node forest: a prefix-sharing trie of
// discovered key nodes with live-reachability compaction ("rebuild").
package forest

import "github.com/lgolsearch/search/pkg/chunkstore"

// Entry is a forest element: (parent index, key node, transient rebuild
// mark). It is exported so callers can name it when choosing a chunk
// factory (heap- or mmap-backed) for New. N is embedded rather than named
// so that, when N itself implements chunkstore.MmapSafe, Entry[N] picks
// up the promoted mmapSafe() method and so does too — an mmap-backed
// factory is only reachable for instantiations whose key node is
// actually flat, never by blanket assertion on Entry itself.
type Entry[N any] struct {
	PrevIdx int
	N
	Mark int
}

// Forest is a segmented vector of (prevIdx, kn, mark) triples with index 0
// reserved as the sentinel root. Index i's parent is PrevIdx (0 for a
// root); prevIdx < idx always holds, so the structure is a forest of trees
// rooted at 0.
type Forest[N any] struct {
	inner *chunkstore.ChunksVec[Entry[N]]
}

// New creates a forest with only the sentinel root at index 0.
func New[N any](factory chunkstore.Factory[Entry[N]]) *Forest[N] {
	inner := chunkstore.NewChunksVec[Entry[N]](factory)
	var zero N
	inner.Push(Entry[N]{N: zero})
	return &Forest[N]{inner: inner}
}

// Len returns the number of entries, including the sentinel root.
func (f *Forest[N]) Len() int { return f.inner.Len() }

// ElemSize returns sizeof(prevIdx, N, mark), used for memory accounting.
func (f *Forest[N]) ElemSize() int { return f.inner.ElemSize() }

// Push appends kn as a child of prevIdx (0 for a root), returning its new
// index.
func (f *Forest[N]) Push(prevIdx int, kn N) int {
	return f.inner.Push(Entry[N]{PrevIdx: prevIdx, N: kn})
}

// Materialize walks parent pointers from idx to the root and returns the
// root-to-node path, projecting each key node through proj.
func Materialize[N any, T any](f *Forest[N], idx int, proj func(N) T) []T {
	var acc []T
	for idx != 0 {
		e := f.inner.Get(idx)
		acc = append(acc, proj(e.N))
		idx = e.PrevIdx
	}
	for l, r := 0, len(acc)-1; l < r; l, r = l+1, r-1 {
		acc[l], acc[r] = acc[r], acc[l]
	}
	return acc
}

// MaterializeCloned is Materialize with the identity projection.
func MaterializeCloned[N any](f *Forest[N], idx int) []N {
	return Materialize(f, idx, func(n N) N { return n })
}

// Find walks the parent chain from idx upward, calling f(curIdx, prevIdx,
// kn) for each node, returning the first T for which f reports a hit.
func Find[N any, T any](f *Forest[N], idx int, visit func(idx, prevIdx int, kn N) (T, bool)) (T, bool) {
	for idx != 0 {
		e := f.inner.Get(idx)
		if t, ok := visit(idx, e.PrevIdx, e.N); ok {
			return t, true
		}
		idx = e.PrevIdx
	}
	var zero T
	return zero, false
}

// PrevIdxOf returns the parent index of idx (0 for a root).
func (f *Forest[N]) PrevIdxOf(idx int) int { return f.inner.Get(idx).PrevIdx }

// Iterate calls f(idx, kn) for every live entry, including the sentinel.
func (f *Forest[N]) Iterate(fn func(idx int, kn N) bool) {
	f.inner.Iterate(func(idx int, e Entry[N]) bool {
		return fn(idx, e.N)
	})
}

// Pins is the "walk all external indices mutably" hook the rebuild
// protocol uses to mark live nodes and rewrite pinned indices in place.
// Multiple pin sources (a queue plus per-worker queues) compose by calling
// Rebuild with a Pins value that chains their Walk calls.
type Pins interface {
	Walk(f func(idx *int))
}

// PinsFunc adapts a plain function to Pins.
type PinsFunc func(f func(idx *int))

func (p PinsFunc) Walk(f func(idx *int)) { p(f) }

// ChainPins composes several Pins into one.
func ChainPins(pins ...Pins) Pins {
	return PinsFunc(func(f func(idx *int)) {
		for _, p := range pins {
			p.Walk(f)
		}
	})
}

// Rebuild is the six-step compaction protocol: mark reachable-from-pins
// nodes, propagate liveness to ancestors, assign new sequential indices to
// survivors, re-parent survivors onto their (also renumbered) parents,
// rewrite every pinned index through the same renumbering, then compact
// the segmented vector in place.
func (f *Forest[N]) Rebuild(pins Pins, log func(string)) {
	size := f.Len()

	// 1. mark pass: pins are live by definition.
	pins.Walk(func(idx *int) {
		e := f.inner.Get(*idx)
		e.Mark = 1
		f.inner.Set(*idx, e)
	})

	length := f.Len()

	// 2. ancestor propagation, walking indices in descending order.
	for idx := length - 1; idx >= 1; idx-- {
		e := f.inner.Get(idx)
		if e.Mark == 0 {
			continue
		}
		if e.PrevIdx == 0 {
			continue
		}
		parent := f.inner.Get(e.PrevIdx)
		parent.Mark = 1
		f.inner.Set(e.PrevIdx, parent)
	}

	// 3. numbering pass, walking ascending; dead nodes keep Mark == 0.
	newIdx := 1
	for idx := 1; idx < length; idx++ {
		e := f.inner.Get(idx)
		if e.Mark == 0 {
			continue
		}
		e.Mark = newIdx
		f.inner.Set(idx, e)
		newIdx++
	}

	// 4. re-parent survivors onto their renumbered parent.
	for idx := 1; idx < length; idx++ {
		e := f.inner.Get(idx)
		if e.Mark == 0 {
			continue
		}
		if e.PrevIdx == 0 {
			continue
		}
		parent := f.inner.Get(e.PrevIdx)
		e.PrevIdx = parent.Mark
		f.inner.Set(idx, e)
	}

	// 5. rewrite every pinned index through the same renumbering.
	pins.Walk(func(idx *int) {
		if *idx == 0 {
			return
		}
		e := f.inner.Get(*idx)
		*idx = e.Mark
	})

	// 6. compact: sweep read-index j, write-index i, copying survivors and
	// clearing the transient mark.
	i, rootCt := 1, 0
	for j := 1; j < length; j++ {
		e := f.inner.Get(j)
		if e.Mark == 0 {
			continue
		}
		if e.PrevIdx == 0 {
			rootCt++
		}
		e.Mark = 0
		f.inner.Set(i, e)
		i++
	}
	f.inner.Truncate(i)

	if log != nil {
		log(formatRebuildLog(size, i, rootCt))
	}
}
