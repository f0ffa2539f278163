// Package chunkstore provides the chunked storage layer the queue, forest,
// and dedupe structures are built from: each chunk presents a mutable
// contiguous region of N elements of T, backed either by the Go heap or by
// an anonymous memory-mapped region.
package chunkstore

import (
	"unsafe"

	apperrors "github.com/lgolsearch/search/pkg/errors"
)

// Chunk is a fixed-capacity contiguous region of T.
type Chunk[T any] interface {
	Slice() []T
	Cap() int
}

// Factory creates chunks of at least minSize elements. A factory value must
// be cheap to copy (it carries no per-chunk state), mirroring the teacher's
// chunk factories which are plain configuration structs.
type Factory[T any] interface {
	NewChunk(minSize int) Chunk[T]
}

// ChunkBytes is the nominal chunk size: chunks hold floor(2^20 / sizeof(T))
// elements, i.e. about one mebibyte of payload each.
const ChunkBytes = 1 << 20

// ElemsPerChunk returns floor(ChunkBytes / sizeof(T)), with a floor of 1 so
// even oversized T still gets a usable chunk.
func ElemsPerChunk[T any]() int {
	var zero T
	sz := int(unsafe.Sizeof(zero))
	if sz == 0 {
		sz = 1
	}
	n := ChunkBytes / sz
	if n < 1 {
		n = 1
	}
	return n
}

// fatalAllocation panics with an AppError the top-level driver run converts
// into a returned error; allocation failures are always fatal to a search.
func fatalAllocation(msg string, err error) {
	panic(apperrors.Wrap(apperrors.CodeAllocation, msg, err))
}
