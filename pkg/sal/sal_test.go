package sal

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadLen(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLen(&buf, 123456))

	n, err := ReadLen(&buf)
	require.NoError(t, err)
	assert.Equal(t, 123456, n)
}

func TestWriteReadVarint(t *testing.T) {
	cases := []int{0, 1, 127, 128, 300, 1 << 20, 1 << 40}

	var buf bytes.Buffer
	for _, c := range cases {
		require.NoError(t, WriteVarint(&buf, c))
	}

	for _, want := range cases {
		got, err := ReadVarint(&buf)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestReadLen_TruncatedStream(t *testing.T) {
	buf := bytes.NewBuffer([]byte{0, 0, 0})
	_, err := ReadLen(buf)
	assert.Error(t, err)
}
