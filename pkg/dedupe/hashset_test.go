package dedupe

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashSet_InsertAndLen(t *testing.T) {
	s := NewHashSet[string]()

	assert.True(t, s.Insert("a"))
	assert.True(t, s.Insert("b"))
	assert.False(t, s.Insert("a"))
	assert.Equal(t, 2, s.Len())
}

func TestHashSet_ClonedIter(t *testing.T) {
	s := NewHashSet[int]()
	for i := 0; i < 5; i++ {
		s.Insert(i)
	}

	got := s.ClonedIter()
	sort.Ints(got)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
}
