package chunkstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mmapSafeInt64 int64

func (mmapSafeInt64) mmapSafe() {}

func TestAnonMmapFactory_NewChunk(t *testing.T) {
	f := AnonMmapFactory[mmapSafeInt64]{Dir: t.TempDir()}
	c := f.NewChunk(8)
	require.GreaterOrEqual(t, c.Cap(), 8)

	s := c.Slice()
	for i := range s {
		s[i] = mmapSafeInt64(i)
	}

	s2 := c.Slice()
	for i := range s2 {
		assert.Equal(t, mmapSafeInt64(i), s2[i])
	}

	if closer, ok := c.(interface{ Close() error }); ok {
		assert.NoError(t, closer.Close())
	}
}
