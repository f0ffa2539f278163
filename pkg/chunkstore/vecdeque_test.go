package chunkstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDeque(cap int) *ChunkVecDeque[int] {
	f := HeapFactory[int]{}
	return NewChunkVecDeque[int](f.NewChunk(cap))
}

func TestChunkVecDeque_OfferAndPopFront(t *testing.T) {
	d := newDeque(4)

	for i := 1; i <= 4; i++ {
		assert.True(t, d.Offer(i))
	}
	assert.False(t, d.Offer(5), "full deque rejects further offers")

	for i := 1; i <= 4; i++ {
		v, ok := d.PopFront()
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
	_, ok := d.PopFront()
	assert.False(t, ok)
}

func TestChunkVecDeque_WrapsAroundRingBuffer(t *testing.T) {
	d := newDeque(3)
	d.Offer(1)
	d.Offer(2)
	d.PopFront()
	d.Offer(3)
	d.Offer(4) // wraps the backing slice around past its end

	var got []int
	d.Iterate(func(v int) bool {
		got = append(got, v)
		return true
	})
	assert.Equal(t, []int{2, 3, 4}, got)
}

func TestChunkVecDeque_Retain(t *testing.T) {
	d := newDeque(5)
	for i := 1; i <= 5; i++ {
		d.Offer(i)
	}
	d.Retain(func(v int) bool { return v%2 == 0 })

	var got []int
	d.Iterate(func(v int) bool {
		got = append(got, v)
		return true
	})
	assert.Equal(t, []int{2, 4}, got)
	assert.Equal(t, 2, d.Len())
}

func TestChunkVecDeque_IterateMut(t *testing.T) {
	d := newDeque(4)
	for i := 1; i <= 4; i++ {
		d.Offer(i)
	}
	d.IterateMut(func(v *int) { *v *= 10 })

	var got []int
	d.Iterate(func(v int) bool {
		got = append(got, v)
		return true
	})
	assert.Equal(t, []int{10, 20, 30, 40}, got)
}

func TestChunkVecDeque_ShiftLeft(t *testing.T) {
	dst := newDeque(5)
	dst.Offer(1)
	dst.Offer(2)

	src := newDeque(5)
	src.Offer(3)
	src.Offer(4)
	src.Offer(5)

	dst.ShiftLeft(src)

	var got []int
	dst.Iterate(func(v int) bool {
		got = append(got, v)
		return true
	})
	assert.Equal(t, []int{1, 2, 3, 4, 5}, got)
	assert.Equal(t, 0, src.Len())
}
