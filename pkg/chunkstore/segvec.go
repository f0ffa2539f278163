package chunkstore

import "unsafe"

// ChunksVec is an append-only segmented vector: stable indices across
// pushes, each segment a fixed-capacity chunk of about ChunkBytes.
type ChunksVec[T any] struct {
	factory   Factory[T]
	segments  []*segment[T]
	shardSize int
}

type segment[T any] struct {
	c   Chunk[T]
	len int
}

func (s *segment[T]) offer(t T) bool {
	if s.len >= s.c.Cap() {
		return false
	}
	s.c.Slice()[s.len] = t
	s.len++
	return true
}

// NewChunksVec creates an empty segmented vector backed by factory.
func NewChunksVec[T any](factory Factory[T]) *ChunksVec[T] {
	var zero T
	shardSize := ChunkBytes / int(unsafe.Sizeof(zero))
	if shardSize < 1 {
		shardSize = 1
	}
	return &ChunksVec[T]{factory: factory, shardSize: shardSize}
}

// ElemSize returns sizeof(T).
func (v *ChunksVec[T]) ElemSize() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

func (v *ChunksVec[T]) splitIndex(idx int) (outer, inner int) {
	return idx / v.shardSize, idx % v.shardSize
}

func (v *ChunksVec[T]) joinIndex(outer, inner int) int {
	return outer*v.shardSize + inner
}

// Push appends t, returning its stable index.
func (v *ChunksVec[T]) Push(t T) int {
	if n := len(v.segments); n > 0 {
		last := v.segments[n-1]
		if last.len < v.shardSize {
			inner := last.len
			if !last.offer(t) {
				panic("chunkstore: segment offer failed unexpectedly")
			}
			return v.joinIndex(n-1, inner)
		}
	}
	seg := &segment[T]{c: v.factory.NewChunk(v.shardSize)}
	if !seg.offer(t) {
		panic("chunkstore: fresh segment offer failed unexpectedly")
	}
	v.segments = append(v.segments, seg)
	return v.joinIndex(len(v.segments)-1, 0)
}

// Len returns the number of pushed elements.
func (v *ChunksVec[T]) Len() int {
	if len(v.segments) == 0 {
		return 0
	}
	last := v.segments[len(v.segments)-1]
	return (len(v.segments)-1)*v.shardSize + last.len
}

// Get returns the element at idx.
func (v *ChunksVec[T]) Get(idx int) T {
	outer, inner := v.splitIndex(idx)
	return v.segments[outer].c.Slice()[inner]
}

// Set overwrites the element at idx.
func (v *ChunksVec[T]) Set(idx int, t T) {
	outer, inner := v.splitIndex(idx)
	v.segments[outer].c.Slice()[inner] = t
}

// Iterate calls f for every live element in index order.
func (v *ChunksVec[T]) Iterate(f func(int, T) bool) {
	idx := 0
	for _, seg := range v.segments {
		s := seg.c.Slice()
		for i := 0; i < seg.len; i++ {
			if !f(idx, s[i]) {
				return
			}
			idx++
		}
	}
}

// Truncate drops every element with index >= length.
func (v *ChunksVec[T]) Truncate(length int) {
	if length <= 0 {
		v.segments = v.segments[:0]
		return
	}
	outer, inner := v.splitIndex(length - 1)
	v.segments = v.segments[:outer+1]
	v.segments[outer].len = inner + 1
}
