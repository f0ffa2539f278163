// Package bfs implements the frontier-stepping BFS driver: parallel
// expansion of a chunked work queue against a domain graph, adaptive
// foresight deepening under memory pressure, and key-node forest folding.
package bfs

import (
	"github.com/lgolsearch/search/pkg/dedupe"
	"github.com/lgolsearch/search/pkg/forest"
	"github.com/lgolsearch/search/pkg/graph"
	"github.com/lgolsearch/search/pkg/queue"
)

// Item is a queued working node paired with its parent's forest index.
type Item[N any] struct {
	PrevIdx int
	Node    N
}

// State is the BFS driver's persistent state: the key-node forest, the
// current frontier, the dedupe set, and the adaptive foresight/depth
// counters. It is what a checkpoint captures and a resume restores.
type State[N graph.Node[KN], KN graph.KeyNode[HN], HN comparable] struct {
	Kns       *forest.Forest[KN]
	Q         *queue.ChunkQueue[Item[N]]
	Dedupe    dedupe.Dedupe[HN]
	Foresight int
	Depth     int
}

// Seed is one initial frontier entry: the root-to-node key-node path
// (pushed into the forest ahead of time) plus the working node itself.
type Seed[N any, KN any] struct {
	Path []KN
	Node N
}

// New builds initial state from a set of seed paths, pushing each path
// into kns and each node onto q. kns and q must be freshly created (kns at
// its sentinel-only state, q empty); dd is the (possibly no-op) dedupe set.
func New[N graph.Node[KN], KN graph.KeyNode[HN], HN comparable](
	seeds []Seed[N, KN],
	kns *forest.Forest[KN],
	q *queue.ChunkQueue[Item[N]],
	dd dedupe.Dedupe[HN],
) *State[N, KN, HN] {
	for _, s := range seeds {
		idx := 0
		for _, kn0 := range s.Path {
			idx = kns.Push(idx, kn0)
		}
		q.PushBack(Item[N]{PrevIdx: idx, Node: s.Node})
	}
	return &State[N, KN, HN]{Kns: kns, Q: q, Dedupe: dd}
}

// NewSimple is New for the common case of a single seed node whose own
// key node is its entire path.
func NewSimple[N graph.Node[KN], KN graph.KeyNode[HN], HN comparable](
	n0 N,
	kns *forest.Forest[KN],
	q *queue.ChunkQueue[Item[N]],
	dd dedupe.Dedupe[HN],
) *State[N, KN, HN] {
	var seeds []Seed[N, KN]
	if kn0, ok := n0.KeyNode(); ok {
		seeds = []Seed[N, KN]{{Path: []KN{kn0}, Node: n0}}
	} else {
		seeds = []Seed[N, KN]{{Node: n0}}
	}
	return New(seeds, kns, q, dd)
}
