package bfs

import (
	"fmt"

	"github.com/lgolsearch/search/pkg/forest"
	"github.com/lgolsearch/search/pkg/graph"
	"github.com/lgolsearch/search/pkg/queue"
)

func knsMem[KN any](f *forest.Forest[KN]) int { return f.Len() * f.ElemSize() }

func qMem[N any](q *queue.ChunkQueue[Item[N]]) int { return q.MemBytes() }

// fmtMem renders a byte count at the largest whole unit it fits, for log
// lines only; it is never parsed back.
func fmtMem(mem int) string {
	const (
		kb = 1 << 10
		mb = 1 << 20
		gb = 1 << 30
	)
	switch {
	case mem >= gb:
		return fmt.Sprintf("%.2f GB", float64(mem)/float64(gb))
	case mem >= mb:
		return fmt.Sprintf("%.2f MB", float64(mem)/float64(mb))
	case mem >= kb:
		return fmt.Sprintf("%.2f KB", float64(mem)/float64(kb))
	default:
		return fmt.Sprintf("%d B", mem)
	}
}

// deepenSearch reports whether, within foresight single-expansion steps
// starting from n, some path reaches a key node the graph declares an end.
// foresight == 0 is treated as "still possible" (retain), not "impossible".
func deepenSearch[N graph.Node[KN], KN graph.KeyNode[HN], HN comparable](g graph.Graph[N, KN, HN], n N, foresight int) bool {
	if foresight == 0 {
		return true
	}

	for _, n2 := range g.Expand(n) {
		if kn2, ok := n2.KeyNode(); ok {
			if _, ok := g.End(kn2); ok {
				return true
			}
		}
		if deepenSearch[N, KN, HN](g, n2, foresight-1) {
			return true
		}
	}
	return false
}
