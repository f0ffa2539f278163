package chunkstore

// ChunkVecDeque is a ring buffer over a single chunk: elements occupy
// [off, off+len) modulo the chunk's capacity. It never grows past the
// chunk's capacity; the ChunkQueue built on top of it is the structure
// that chains several of these to grow without bound.
type ChunkVecDeque[T any] struct {
	c   Chunk[T]
	off int
	len int
}

// NewChunkVecDeque wraps a chunk as an empty ring buffer.
func NewChunkVecDeque[T any](c Chunk[T]) *ChunkVecDeque[T] {
	return &ChunkVecDeque[T]{c: c}
}

// Len returns the number of live elements.
func (d *ChunkVecDeque[T]) Len() int { return d.len }

// Cap returns the chunk's total capacity.
func (d *ChunkVecDeque[T]) Cap() int { return d.c.Cap() }

// Offer appends t if there is room, reporting whether it succeeded.
func (d *ChunkVecDeque[T]) Offer(t T) bool {
	if d.len >= d.c.Cap() {
		return false
	}
	i := (d.off + d.len) % d.c.Cap()
	d.c.Slice()[i] = t
	d.len++
	return true
}

func (d *ChunkVecDeque[T]) asSlicesLens() (int, int) {
	cap := d.c.Cap()
	if d.off+d.len <= cap {
		return d.len, 0
	}
	return cap - d.off, d.len - (cap - d.off)
}

// AsSlices returns the (up to two) contiguous live segments, in order.
func (d *ChunkVecDeque[T]) AsSlices() ([]T, []T) {
	l1, l2 := d.asSlicesLens()
	s := d.c.Slice()
	return s[d.off : d.off+l1], s[0:l2]
}

// Index returns the i-th live element (0-based from the front).
func (d *ChunkVecDeque[T]) Index(i int) T {
	return d.c.Slice()[(d.off+i)%d.c.Cap()]
}

// SetIndex overwrites the i-th live element.
func (d *ChunkVecDeque[T]) SetIndex(i int, t T) {
	d.c.Slice()[(d.off+i)%d.c.Cap()] = t
}

// PopFront removes and returns the front element.
func (d *ChunkVecDeque[T]) PopFront() (T, bool) {
	var zero T
	if d.len == 0 {
		return zero, false
	}
	v := d.c.Slice()[d.off]
	d.off = (d.off + 1) % d.c.Cap()
	d.len--
	return v, true
}

// Front returns the front element without removing it.
func (d *ChunkVecDeque[T]) Front() (T, bool) {
	var zero T
	if d.len == 0 {
		return zero, false
	}
	return d.c.Slice()[d.off], true
}

// Iterate calls f for each live element front-to-back, stopping early if f
// returns false.
func (d *ChunkVecDeque[T]) Iterate(f func(T) bool) {
	s1, s2 := d.AsSlices()
	for _, v := range s1 {
		if !f(v) {
			return
		}
	}
	for _, v := range s2 {
		if !f(v) {
			return
		}
	}
}

// IterateMut calls f with a pointer to each live element front-to-back,
// letting the caller mutate elements in place (used by the forest rebuild
// protocol to rewrite pinned indices).
func (d *ChunkVecDeque[T]) IterateMut(f func(*T)) {
	s1, s2 := d.AsSlices()
	for i := range s1 {
		f(&s1[i])
	}
	for i := range s2 {
		f(&s2[i])
	}
}

// Retain keeps only elements matching pred, preserving order.
func (d *ChunkVecDeque[T]) Retain(pred func(T) bool) {
	i, j := 0, 0
	for j < d.len {
		v := d.Index(j)
		if pred(v) {
			if i != j {
				d.SetIndex(i, v)
			}
			i++
		}
		j++
	}
	d.len = i
}

// ShiftLeft moves as many elements as possible from other's front into our
// back, in place and without shifting our own contents, stopping when
// other is empty or we are full.
func (d *ChunkVecDeque[T]) ShiftLeft(other *ChunkVecDeque[T]) {
	for {
		if other.len == 0 {
			return
		}
		if d.len == d.c.Cap() {
			return
		}

		end := other.off + other.len
		if end > other.c.Cap() {
			end = other.c.Cap()
		}
		from := other.c.Slice()[other.off:end]

		start := d.off + d.len
		var to []T
		if start < d.c.Cap() {
			to = d.c.Slice()[start:d.c.Cap()]
		} else {
			start -= d.c.Cap()
			to = d.c.Slice()[start:d.off]
		}

		ct := len(from)
		if len(to) < ct {
			ct = len(to)
		}
		copy(to[:ct], from[:ct])

		d.len += ct
		other.len -= ct
		other.off = (other.off + ct) % other.c.Cap()
	}
}
