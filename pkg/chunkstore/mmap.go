package chunkstore

import (
	"os"
	"runtime"
	"syscall"
	"unsafe"
)

// MmapSafe marks a type as valid to back with raw memory-mapped pages: its
// bit pattern must be valid at any alignment-correct address of the
// appropriate size, it must hold no interior ownership (no pointers, no
// slices, no maps), and its zero value must be the all-zero byte pattern.
// Implement this only on plain value structs of fixed-width integers and
// arrays thereof — getting it wrong corrupts memory silently.
type MmapSafe interface {
	mmapSafe()
}

// mmapChunk is a chunk whose storage is a raw, unlinked, memory-mapped
// temp file: an anonymous mapping with a filesystem-visible name only
// during setup, for portability across platforms that vary in their
// MAP_ANONYMOUS flag constants.
type mmapChunk[T any] struct {
	data []byte
	cap  int
}

func (c *mmapChunk[T]) Slice() []T {
	if c.cap == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&c.data[0])), c.cap)
}

func (c *mmapChunk[T]) Cap() int { return c.cap }

// Close unmaps the chunk's pages. Callers that know a chunk's storage is
// being dropped for good should call this to release the mapping promptly
// rather than waiting on the garbage collector plus finalizers.
func (c *mmapChunk[T]) Close() error {
	if c.data == nil {
		return nil
	}
	err := syscall.Munmap(c.data)
	c.data = nil
	return err
}

// AnonMmapFactory allocates chunks as anonymous memory-mapped regions, for
// queues and forests expected to scale past comfortable heap residency.
// T must satisfy MmapSafe.
type AnonMmapFactory[T MmapSafe] struct {
	// Dir is the directory backing files are created in before being
	// unlinked; empty uses os.TempDir.
	Dir string
}

// NewChunk maps a region of at least minSize elements of T.
func (f AnonMmapFactory[T]) NewChunk(minSize int) Chunk[T] {
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	if elemSize == 0 {
		elemSize = 1
	}

	reqBytes := minSize * elemSize
	pageSize := os.Getpagesize()
	reqBytes = ((reqBytes + pageSize - 1) / pageSize) * pageSize
	if reqBytes < pageSize {
		reqBytes = pageSize
	}

	file, err := os.CreateTemp(f.Dir, "lgolsearch-chunk-*.mmap")
	if err != nil {
		fatalAllocation("create mmap backing file", err)
	}
	defer file.Close()
	defer os.Remove(file.Name())

	if err := file.Truncate(int64(reqBytes)); err != nil {
		fatalAllocation("truncate mmap backing file", err)
	}

	data, err := syscall.Mmap(int(file.Fd()), 0, reqBytes,
		syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED)
	if err != nil {
		fatalAllocation("mmap chunk", err)
	}

	c := &mmapChunk[T]{
		data: data,
		cap:  reqBytes / elemSize,
	}
	runtime.SetFinalizer(c, (*mmapChunk[T]).Close)
	return c
}
