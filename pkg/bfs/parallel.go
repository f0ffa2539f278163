package bfs

import (
	"sync"

	"github.com/lgolsearch/search/pkg/queue"
)

// parallelOver feeds items to threads workers via a shared index channel;
// each worker pulls and processes one item to completion before asking for
// the next ("monopolises it for the whole loop"), mirroring the teacher's
// lock-free work-unit queue without pulling in a new dependency for it.
func parallelOver[T any](threads int, items []T, f func(T)) {
	if len(items) == 0 {
		return
	}
	n := threads
	if n > len(items) {
		n = len(items)
	}
	if n < 1 {
		n = 1
	}

	ch := make(chan int, len(items))
	for i := range items {
		ch <- i
	}
	close(ch)

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			for idx := range ch {
				f(items[idx])
			}
		}()
	}
	wg.Wait()
}

// cqPar partitions q into shards, runs f on each shard concurrently, then
// reassembles q from the (now-processed) shards in order.
func cqPar[N any](threads, shards int, q *queue.ChunkQueue[Item[N]], f func(*queue.ChunkQueue[Item[N]])) {
	shardQs := q.DrainPartition(shards)
	parallelOver(threads, shardQs, f)
	for _, sq := range shardQs {
		q.Append(sq)
	}
}
