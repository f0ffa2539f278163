package bfs

import (
	"fmt"
	"sync/atomic"

	apperrors "github.com/lgolsearch/search/pkg/errors"
	"github.com/lgolsearch/search/pkg/forest"
	"github.com/lgolsearch/search/pkg/graph"
	"github.com/lgolsearch/search/pkg/lifecycle"
	"github.com/lgolsearch/search/pkg/queue"
)

// workUnit is one shard of the frontier: an inbound queue a worker
// monopolises until drained, the outbound successors it produces, and the
// ends/cycles it records along the way.
type workUnit[N graph.Node[KN], KN graph.KeyNode[HN], HN comparable] struct {
	q, q2 *queue.ChunkQueue[Item[N]]
	r     *graph.Res[KN]
}

func newWorkUnit[N graph.Node[KN], KN graph.KeyNode[HN], HN comparable](q *queue.ChunkQueue[Item[N]]) *workUnit[N, KN, HN] {
	return &workUnit[N, KN, HN]{q: q, q2: queue.New[Item[N]](q.Factory()), r: graph.NewRes[KN]()}
}

// Run steps the frontier to quiescence with no deduplication, reporting
// results and checkpoint opportunities through lc until it requests a stop
// or the frontier empties. codecs serializes checkpoint snapshots; pass
// the zero value if lc never calls its getState thunk.
func Run[N graph.Node[KN], KN graph.KeyNode[HN], HN comparable](
	state *State[N, KN, HN],
	g graph.Graph[N, KN, HN],
	lc lifecycle.Lifecycle[N, KN, HN],
	codecs Codecs[N, KN, HN],
) error {
	return RunDedupe(state, g, lc, codecs, func(HN) bool { return false })
}

// RunDedupe is Run with a predicate selecting which hash nodes are subject
// to the dedupe set (e.g. "always" or "only once per depth").
func RunDedupe[N graph.Node[KN], KN graph.KeyNode[HN], HN comparable](
	state *State[N, KN, HN],
	g graph.Graph[N, KN, HN],
	lc lifecycle.Lifecycle[N, KN, HN],
	codecs Codecs[N, KN, HN],
	shouldDedupe func(HN) bool,
) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if ae, ok := r.(*apperrors.AppError); ok {
				err = ae
				return
			}
			panic(r)
		}
	}()

	cf := state.Q.Factory()

	for {
		threads := lc.Threads()
		if threads < 1 {
			threads = 1
		}
		shards := threads * 100

		lc.DebugBFS2Checkpoint(func() []byte {
			state.Kns.Rebuild(queuePins[N]{state.Q}, func(msg string) { lc.Log(lifecycle.LevelInfo, msg) })
			b, err := EncodeStateBytes(state, codecs)
			if err != nil {
				lc.Log(lifecycle.LevelInfo, "checkpoint encode failed: "+err.Error())
				return nil
			}
			return b
		})

		if state.Q.Len() == 0 {
			break
		}

		lc.Log(lifecycle.LevelInfo, frontierLogLine(state.Q, state.Kns))

		// step1: split q into work units.
		shardQs := state.Q.DrainPartition(shards)
		ws := make([]*workUnit[N, KN, HN], len(shardQs))
		for i, sq := range shardQs {
			ws[i] = newWorkUnit[N, KN, HN](sq)
		}

		// step2: expand until every work unit drains, deepening as needed.
		for {
			stop := atomic.Bool{}
			mem := atomic.Int64{}

			initial := 0
			for _, w := range ws {
				initial += qMem(w.q) + qMem(w.q2)
			}
			initial += knsMem(state.Kns)
			mem.Store(int64(initial))
			memMax := int64(lc.MaxMem())

			parallelOver(threads, ws, func(w *workUnit[N, KN, HN]) {
				expandWorkUnit(w, g, state.Kns, lc, &stop, &mem, memMax)
			})

			if !stop.Load() {
				break
			}

			// step2b: deepen both queues of every work unit.
			state.Foresight++
			parallelOver(threads, ws, func(w *workUnit[N, KN, HN]) {
				w.q.Retain(func(it Item[N]) bool { return deepenSearch(g, it.Node, state.Foresight) })
				w.q.Defragment()
			})
			parallelOver(threads, ws, func(w *workUnit[N, KN, HN]) {
				w.q2.Retain(func(it Item[N]) bool { return deepenSearch(g, it.Node, state.Foresight-1) })
				w.q2.Defragment()
			})
			state.Kns.Rebuild(workUnitsPins[N, KN, HN]{ws: ws}, func(msg string) { lc.Log(lifecycle.LevelInfo, msg) })
		}

		// step3a: fold work unit results together.
		q3 := queue.New[Item[N]](cf)
		r := graph.NewRes[KN]()
		for _, w := range ws {
			q3.Append(w.q2)
			r.Append(w.r)
		}

		// step3b: fold successors into the forest, deepening under pressure.
		q4 := queue.New[Item[N]](cf)
		memMax := int64(lc.MaxMem())
		for {
			it, ok := q3.PopFront()
			if !ok {
				break
			}

			prevIdx := it.PrevIdx
			if kn, ok := it.Node.KeyNode(); ok {
				if hn, ok := kn.HashNode(); ok && shouldDedupe(hn) {
					if !state.Dedupe.Insert(hn) {
						continue
					}
				}
				prevIdx = state.Kns.Push(prevIdx, kn)
			}
			q4.PushBack(Item[N]{PrevIdx: prevIdx, Node: it.Node})

			for {
				m := qMem(q3) + qMem(q4) + knsMem(state.Kns)
				if int64(m) <= memMax {
					break
				}
				memMax = int64(lc.MaxMem())
				if int64(m) <= memMax {
					break
				}

				lc.Log(lifecycle.LevelInfo, "q3/q4 over memory cap, deepening")
				state.Foresight++

				cqPar(threads, shards, q3, func(sq *queue.ChunkQueue[Item[N]]) {
					sq.Retain(func(it Item[N]) bool { return deepenSearch(g, it.Node, state.Foresight-1) })
					sq.Defragment()
				})
				cqPar(threads, shards, q4, func(sq *queue.ChunkQueue[Item[N]]) {
					sq.Retain(func(it Item[N]) bool { return deepenSearch(g, it.Node, state.Foresight-1) })
					sq.Defragment()
				})
				state.Kns.Rebuild(forest.ChainPins(queuePins[N]{q3}, queuePins[N]{q4}), func(msg string) { lc.Log(lifecycle.LevelInfo, msg) })
			}
		}

		// step4: start over.
		state.Q = q4
		if state.Foresight > 0 {
			state.Foresight--
		}
		state.Depth++

		lc.Log(lifecycle.LevelInfo, "completed BFS step")

		if it, ok := state.Q.Front(); ok {
			lc.OnRecollectFirstest(forest.MaterializeCloned(state.Kns, it.PrevIdx), it.Node)
		}
		if !lc.OnRecollectResults(r) {
			break
		}
	}

	return nil
}

// expandWorkUnit drains w.q front-to-back, expanding each node and
// classifying successors as ends, cycles, or new frontier entries, subject
// to a shared memory budget and cooperative stop flag.
func expandWorkUnit[N graph.Node[KN], KN graph.KeyNode[HN], HN comparable](
	w *workUnit[N, KN, HN],
	g graph.Graph[N, KN, HN],
	kns *forest.Forest[KN],
	lc lifecycle.Lifecycle[N, KN, HN],
	stop *atomic.Bool,
	mem *atomic.Int64,
	memMax int64,
) {
	for {
		if stop.Load() {
			return
		}

		wm0 := qMem(w.q) + qMem(w.q2)
		it, ok := w.q.PopFront()
		if !ok {
			return
		}

		for _, n2 := range g.Expand(it.Node) {
			kn2, hasKn := n2.KeyNode()
			if hasKn {
				if label, isEnd := g.End(kn2); isEnd {
					path := forest.MaterializeCloned(kns, it.PrevIdx)
					path = append(path, kn2)
					lc.DebugEnd(path, label)
					w.r.AddEnd(path, label)
					continue
				}

				if hn2, ok := kn2.HashNode(); ok {
					repIdx, found := forest.Find(kns, it.PrevIdx, func(idx, prevIdx int, kn KN) (int, bool) {
						if hn, ok := kn.HashNode(); ok && hn == hn2 {
							return idx, true
						}
						return 0, false
					})
					if found {
						path := forest.MaterializeCloned(kns, repIdx)
						path = path[:len(path)-1]
						cycle := forest.MaterializeCloned(kns, it.PrevIdx)
						cycle = cycle[len(path):]
						lc.DebugCycle(path, cycle, kn2)
						w.r.AddCycle(path, cycle, kn2)
						continue
					}
				}
			}

			w.q2.PushBack(Item[N]{PrevIdx: it.PrevIdx, Node: n2})
		}

		wm1 := qMem(w.q) + qMem(w.q2)
		if wm1 >= wm0 {
			inc := int64(wm1 - wm0)
			if mem.Add(inc) > memMax {
				stop.Store(true)
				return
			}
		} else {
			mem.Add(-int64(wm0 - wm1))
		}
	}
}

func frontierLogLine[N any, KN any](q *queue.ChunkQueue[Item[N]], kns *forest.Forest[KN]) string {
	ql, qm := q.Len(), qMem(q)
	kl, km := kns.Len(), knsMem(kns)
	return fmt.Sprintf("q %d (%s), kns %d (%s), total %s", ql, fmtMem(qm), kl, fmtMem(km), fmtMem(qm+km))
}
