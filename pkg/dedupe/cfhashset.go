package dedupe

import "github.com/lgolsearch/search/pkg/chunkstore"

type cfNode[E any] struct {
	E    E
	Next int
}

// CfHashSet is the chunk-backed dedupe set: a segmented-vector bucket
// table plus a segmented node pool of (element, nextIdx), chained on
// collision. Node index 0 is a reserved sentinel, mirroring the forest's
// sentinel root convention.
type CfHashSet[E comparable] struct {
	hash  func(E) uint64
	table *chunkstore.ChunksVec[int]
	nodes *chunkstore.ChunksVec[cfNode[E]]
}

const cfHashSetInitialTableSize = 10

// NewCfHashSet creates an empty chunk-backed dedupe set. hash must be a
// deterministic hash function over E.
func NewCfHashSet[E comparable](tableFactory chunkstore.Factory[int], nodeFactory chunkstore.Factory[cfNode[E]], hash func(E) uint64) *CfHashSet[E] {
	table := chunkstore.NewChunksVec[int](tableFactory)
	for i := 0; i < cfHashSetInitialTableSize; i++ {
		table.Push(0)
	}

	nodes := chunkstore.NewChunksVec[cfNode[E]](nodeFactory)
	var zero E
	nodes.Push(cfNode[E]{E: zero})

	return &CfHashSet[E]{hash: hash, table: table, nodes: nodes}
}

func (s *CfHashSet[E]) Len() int { return s.nodes.Len() - 1 }

func (s *CfHashSet[E]) ClonedIter() []E {
	out := make([]E, 0, s.Len())
	for i := 0; i < s.table.Len(); i++ {
		for p := s.table.Get(i); p != 0; {
			n := s.nodes.Get(p)
			out = append(out, n.E)
			p = n.Next
		}
	}
	return out
}

func (s *CfHashSet[E]) bucketOf(e E) int {
	return int(s.hash(e) % uint64(s.table.Len()))
}

// Insert adds e, returning true iff it was not already present.
func (s *CfHashSet[E]) Insert(e E) bool {
	bucket := s.bucketOf(e)
	p0 := s.table.Get(bucket)
	for p := p0; p != 0; {
		n := s.nodes.Get(p)
		if n.E == e {
			return false
		}
		p = n.Next
	}

	p := s.nodes.Push(cfNode[E]{E: e, Next: p0})
	s.table.Set(bucket, p)

	s.maybeRehash()
	return true
}

// maybeRehash grows the table by a factor of 11/10 once occupancy exceeds
// bucket count, relinking every chain in place. A node may be visited
// twice in the same grow pass (it lands back in the same bucket both
// times); the final state is still correct.
func (s *CfHashSet[E]) maybeRehash() {
	if s.nodes.Len() <= s.table.Len() {
		return
	}

	newSize := s.table.Len() * 11 / 10
	if newSize <= s.table.Len() {
		newSize = s.table.Len() + 1
	}
	for i := s.table.Len(); i < newSize; i++ {
		s.table.Push(0)
	}

	for i := 0; i < newSize; i++ {
		p := s.table.Get(i)
		s.table.Set(i, 0)

		for p != 0 {
			n := s.nodes.Get(p)
			next := n.Next

			bucket := int(s.hash(n.E) % uint64(s.table.Len()))
			n.Next = s.table.Get(bucket)
			s.nodes.Set(p, n)
			s.table.Set(bucket, p)

			p = next
		}
	}
}
