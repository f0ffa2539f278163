// Package dedupe implements the hash-node dedupe set: an in-memory hash
// set and a chunk-backed hash set, both satisfying the Dedupe contract the
// BFS driver consults before folding a successor's hash-node into the
// forest.
package dedupe

// Dedupe is polymorphic over element type E only; the chunk factories of
// the chunk-backed implementation are arguments of NewCfHashSet, not part
// of this interface, so callers hold either implementation uniformly.
type Dedupe[E any] interface {
	Len() int
	ClonedIter() []E
	Insert(e E) bool
}
