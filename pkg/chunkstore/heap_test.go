package chunkstore

import "testing"

import "github.com/stretchr/testify/assert"

func TestHeapFactory_NewChunk(t *testing.T) {
	f := HeapFactory[int]{}
	c := f.NewChunk(4)
	assert.GreaterOrEqual(t, c.Cap(), 4)

	s := c.Slice()
	s[0] = 42
	assert.Equal(t, 42, c.Slice()[0])
}
