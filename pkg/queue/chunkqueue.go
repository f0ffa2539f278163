// Package queue implements the chunked queue: an ordered sequence of
// elements stored as a deque of fixed-size ring-buffer chunks, supporting
// amortised O(1) push_back/pop_front, bulk partition into shards,
// defragmentation, and retain-by-predicate.
package queue

import (
	"unsafe"

	"github.com/lgolsearch/search/pkg/chunkstore"
)

// ChunkQueue is the chunked queue described in the storage layer design.
type ChunkQueue[T any] struct {
	factory chunkstore.Factory[T]
	chunks  []*chunkstore.ChunkVecDeque[T]
	head    int // index of the first chunk that might still hold live data
	len     int
	elemSize int
}

// New creates an empty queue backed by factory.
func New[T any](factory chunkstore.Factory[T]) *ChunkQueue[T] {
	var zero T
	return &ChunkQueue[T]{factory: factory, elemSize: int(unsafe.Sizeof(zero))}
}

// Factory returns the chunk factory this queue was built with, so callers
// can create sibling queues (work units, shards) with the same backing.
func (q *ChunkQueue[T]) Factory() chunkstore.Factory[T] { return q.factory }

func (q *ChunkQueue[T]) chunkSize() int {
	n := chunkstore.ChunkBytes / q.elemSize
	if n < 1 {
		n = 1
	}
	return n
}

// Len returns the number of live elements.
func (q *ChunkQueue[T]) Len() int { return q.len }

// MemBytes estimates resident bytes, used by the driver's memory accounting.
func (q *ChunkQueue[T]) MemBytes() int { return q.len * q.elemSize }

// PushBack appends t.
func (q *ChunkQueue[T]) PushBack(t T) {
	q.len++
	if n := len(q.chunks); n > 0 {
		if q.chunks[n-1].Offer(t) {
			return
		}
	}
	c := q.factory.NewChunk(q.chunkSize())
	d := chunkstore.NewChunkVecDeque[T](c)
	if !d.Offer(t) {
		panic("queue: fresh chunk offer failed unexpectedly")
	}
	q.chunks = append(q.chunks, d)
}

// PopFront removes and returns the front element.
func (q *ChunkQueue[T]) PopFront() (T, bool) {
	var zero T
	for q.head < len(q.chunks) {
		d := q.chunks[q.head]
		if v, ok := d.PopFront(); ok {
			q.len--
			return v, true
		}
		q.head++
	}
	if q.head > 0 {
		q.chunks = q.chunks[q.head:]
		q.head = 0
	}
	return zero, false
}

// Front returns the front element without removing it.
func (q *ChunkQueue[T]) Front() (T, bool) {
	var zero T
	for i := q.head; i < len(q.chunks); i++ {
		if v, ok := q.chunks[i].Front(); ok {
			return v, true
		}
	}
	return zero, false
}

// Iterate calls f for every live element front-to-back.
func (q *ChunkQueue[T]) Iterate(f func(T) bool) {
	for i := q.head; i < len(q.chunks); i++ {
		cont := true
		q.chunks[i].Iterate(func(v T) bool {
			if !f(v) {
				cont = false
				return false
			}
			return true
		})
		if !cont {
			return
		}
	}
}

// IterateMut calls f with a pointer to every live element front-to-back,
// letting the caller mutate elements in place.
func (q *ChunkQueue[T]) IterateMut(f func(*T)) {
	for i := q.head; i < len(q.chunks); i++ {
		q.chunks[i].IterateMut(f)
	}
}

// Retain keeps only elements matching pred, preserving order and chunk
// count (defragment reclaims emptied chunks afterward).
func (q *ChunkQueue[T]) Retain(pred func(T) bool) {
	total := 0
	for i := q.head; i < len(q.chunks); i++ {
		q.chunks[i].Retain(pred)
		total += q.chunks[i].Len()
	}
	q.len = total
}

// DrainPartition removes the first ceil(k*len/shards) - ceil((k-1)*len/shards)
// chunks into the k-th output shard, for k = 1..shards; concatenated in
// shard order the output equals the input's element order. Afterward this
// queue is empty.
func (q *ChunkQueue[T]) DrainPartition(shards int) []*ChunkQueue[T] {
	live := q.chunks[q.head:]
	n := len(live)
	out := make([]*ChunkQueue[T], shards)
	taken := 0
	for k := 0; k < shards; k++ {
		ct := ((k+1)*n+shards-1)/shards - (k*n+shards-1)/shards
		shardChunks := live[taken : taken+ct]
		taken += ct

		shardLen := 0
		for _, c := range shardChunks {
			shardLen += c.Len()
		}
		out[k] = &ChunkQueue[T]{
			factory:  q.factory,
			chunks:   append([]*chunkstore.ChunkVecDeque[T]{}, shardChunks...),
			elemSize: q.elemSize,
			len:      shardLen,
		}
	}
	q.chunks = nil
	q.head = 0
	q.len = 0
	return out
}

// Append moves other's contents onto our tail; other is left empty.
func (q *ChunkQueue[T]) Append(other *ChunkQueue[T]) {
	q.chunks = append(q.chunks, other.chunks[other.head:]...)
	q.len += other.len
	other.chunks = nil
	other.head = 0
	other.len = 0
}

// Defragment reshapes the queue so at most one non-full chunk remains, as
// the tail, by in-place block copies between chunks; element order is
// preserved.
func (q *ChunkQueue[T]) Defragment() {
	live := q.chunks[q.head:]
	i, j := 0, 0
	for {
		if i == j {
			j++
		}
		if j >= len(live) {
			break
		}
		live[i].ShiftLeft(live[j])
		if live[j].Len() == 0 {
			j++
		} else {
			i++
		}
	}
	if i < len(live) && live[i].Len() > 0 {
		i++
	}
	q.chunks = live[:i]
	q.head = 0
}
