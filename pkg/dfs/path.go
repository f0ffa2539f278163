package dfs

import "github.com/lgolsearch/search/pkg/graph"

// Path is the key-node path from the search root to the node currently
// being visited, with a hash-node index for O(1) cycle detection.
type Path[KN graph.KeyNode[HN], HN comparable] struct {
	vec []KN
	idx map[HN]int
}

// NewPath returns an empty path.
func NewPath[KN graph.KeyNode[HN], HN comparable]() *Path[KN, HN] {
	return &Path[KN, HN]{idx: make(map[HN]int)}
}

// FindOrPush returns the index of an earlier occurrence of kn's hash
// node on the path, if any; otherwise it appends kn and returns false.
func (p *Path[KN, HN]) FindOrPush(kn KN) (int, bool) {
	hn, ok := kn.HashNode()
	if ok {
		if idx, found := p.idx[hn]; found {
			return idx, true
		}
		p.idx[hn] = len(p.vec)
	}
	p.vec = append(p.vec, kn)
	return 0, false
}

// Push is FindOrPush with the result discarded: kn is appended only when
// its hash node is not already on the path (used when the caller already
// knows there's no prior occurrence to find, e.g. walking down from the root).
func (p *Path[KN, HN]) Push(kn KN) { _, _ = p.FindOrPush(kn) }

// Pop removes the path's last entry, which must be kn (checked only by
// the caller's own bookkeeping discipline, matching the original's debug
// assertion rather than a runtime-checked invariant).
func (p *Path[KN, HN]) Pop(kn KN) {
	last := p.vec[len(p.vec)-1]
	p.vec = p.vec[:len(p.vec)-1]
	if hn, ok := last.HashNode(); ok {
		delete(p.idx, hn)
	}
}

// Vec returns the path's key nodes root-to-tip.
func (p *Path[KN, HN]) Vec() []KN { return p.vec }

// Clone deep-copies the path so a caller can retain it past further
// mutation of the original (e.g. stashing an unopened leaf's path while
// the walker backtracks past it).
func (p *Path[KN, HN]) Clone() *Path[KN, HN] {
	vec := make([]KN, len(p.vec))
	copy(vec, p.vec)
	idx := make(map[HN]int, len(p.idx))
	for k, v := range p.idx {
		idx[k] = v
	}
	return &Path[KN, HN]{vec: vec, idx: idx}
}
