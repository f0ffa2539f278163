package chunkstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunksVec_PushGetSet(t *testing.T) {
	v := NewChunksVec[int](HeapFactory[int]{})

	var idxs []int
	for i := 0; i < 10; i++ {
		idxs = append(idxs, v.Push(i*i))
	}
	assert.Equal(t, 10, v.Len())

	for i, idx := range idxs {
		assert.Equal(t, i*i, v.Get(idx))
	}

	v.Set(idxs[3], 999)
	assert.Equal(t, 999, v.Get(idxs[3]))
}

func TestChunksVec_SpansMultipleSegments(t *testing.T) {
	v := NewChunksVec[int](HeapFactory[int]{})
	shard := v.shardSize

	for i := 0; i < shard+5; i++ {
		v.Push(i)
	}
	assert.Equal(t, shard+5, v.Len())
	assert.Equal(t, shard, v.Get(shard))
	assert.Equal(t, shard+4, v.Get(shard+4))
}

func TestChunksVec_Iterate(t *testing.T) {
	v := NewChunksVec[int](HeapFactory[int]{})
	for i := 0; i < 5; i++ {
		v.Push(i * 2)
	}

	var got []int
	v.Iterate(func(idx int, val int) bool {
		got = append(got, val)
		return true
	})
	assert.Equal(t, []int{0, 2, 4, 6, 8}, got)
}

func TestChunksVec_Truncate(t *testing.T) {
	v := NewChunksVec[int](HeapFactory[int]{})
	for i := 0; i < 5; i++ {
		v.Push(i)
	}
	v.Truncate(3)
	assert.Equal(t, 3, v.Len())
	assert.Equal(t, 2, v.Get(2))
}
