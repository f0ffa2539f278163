package bfs

import (
	"github.com/lgolsearch/search/pkg/forest"
	"github.com/lgolsearch/search/pkg/graph"
	"github.com/lgolsearch/search/pkg/queue"
)

// queuePins adapts a single item queue to forest.Pins, walking each
// item's PrevIdx field mutably.
type queuePins[N any] struct {
	q *queue.ChunkQueue[Item[N]]
}

func (p queuePins[N]) Walk(f func(idx *int)) {
	p.q.IterateMut(func(it *Item[N]) { f(&it.PrevIdx) })
}

// workUnitsPins adapts a slice of work units, walking both their inbound
// and outbound queues. Mirrors the teacher's composite pins over
// (&mut Vec<WorkUnit<N, CF>>).
type workUnitsPins[N graph.Node[KN], KN graph.KeyNode[HN], HN comparable] struct {
	ws []*workUnit[N, KN, HN]
}

func (p workUnitsPins[N, KN, HN]) Walk(f func(idx *int)) {
	for _, w := range p.ws {
		w.q.IterateMut(func(it *Item[N]) { f(&it.PrevIdx) })
		w.q2.IterateMut(func(it *Item[N]) { f(&it.PrevIdx) })
	}
}

var _ forest.Pins = queuePins[int]{}
