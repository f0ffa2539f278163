package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgolsearch/search/pkg/chunkstore"
)

func TestChunkQueue_PushPopFIFO(t *testing.T) {
	q := New[int](chunkstore.HeapFactory[int]{})
	for i := 0; i < 100; i++ {
		q.PushBack(i)
	}
	assert.Equal(t, 100, q.Len())

	for i := 0; i < 100; i++ {
		v, ok := q.PopFront()
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
	_, ok := q.PopFront()
	assert.False(t, ok)
}

func TestChunkQueue_DrainPartitionPreservesOrder(t *testing.T) {
	q := New[int](chunkstore.HeapFactory[int]{})
	for i := 0; i < 500; i++ {
		q.PushBack(i)
	}

	shards := q.DrainPartition(7)
	assert.Equal(t, 0, q.Len())

	var got []int
	for _, s := range shards {
		s.Iterate(func(v int) bool {
			got = append(got, v)
			return true
		})
	}

	want := make([]int, 500)
	for i := range want {
		want[i] = i
	}
	assert.Equal(t, want, got)
}

func TestChunkQueue_RetainAndDefragment(t *testing.T) {
	q := New[int](chunkstore.HeapFactory[int]{})
	for i := 0; i < 200; i++ {
		q.PushBack(i)
	}

	q.Retain(func(v int) bool { return v%3 == 0 })
	q.Defragment()

	var got []int
	q.Iterate(func(v int) bool {
		got = append(got, v)
		return true
	})

	var want []int
	for i := 0; i < 200; i++ {
		if i%3 == 0 {
			want = append(want, i)
		}
	}
	assert.Equal(t, want, got)
	assert.Equal(t, len(want), q.Len())
}

func TestChunkQueue_AppendAndIterateMut(t *testing.T) {
	a := New[int](chunkstore.HeapFactory[int]{})
	b := New[int](chunkstore.HeapFactory[int]{})
	for i := 0; i < 10; i++ {
		a.PushBack(i)
	}
	for i := 10; i < 20; i++ {
		b.PushBack(i)
	}

	a.Append(b)
	assert.Equal(t, 20, a.Len())
	assert.Equal(t, 0, b.Len())

	a.IterateMut(func(v *int) { *v += 1000 })

	var got []int
	a.Iterate(func(v int) bool {
		got = append(got, v)
		return true
	})
	for i, v := range got {
		assert.Equal(t, i+1000, v)
	}
}

func TestChunkQueue_MemBytes(t *testing.T) {
	q := New[int64](chunkstore.HeapFactory[int64]{})
	for i := 0; i < 10; i++ {
		q.PushBack(int64(i))
	}
	assert.Equal(t, 10*8, q.MemBytes())
}
