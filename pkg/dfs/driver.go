package dfs

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lgolsearch/search/pkg/graph"
	"github.com/lgolsearch/search/pkg/lifecycle"
)

// frame is one level of the iterative walker's explicit stack: a node
// already entered, the key node pushed for it (if any), its successors,
// and how far through them the walk has progressed.
type frame[N graph.Node[KN], KN graph.KeyNode[HN], HN comparable] struct {
	node     N
	kn       KN
	hasKn    bool
	succs    []N
	pos      int
	children []*Tree[N]
}

// walkOne expands t (which must be Unopened) depth-first, recording ends
// and cycles into r, calling onEnter before descending into each node.
// onEnter returning false pauses the walk: t is rewritten to Opened with
// the unexplored remainder intact, and walkOne returns false. Returning
// true means the whole subtree closed.
func walkOne[N graph.Node[KN], KN graph.KeyNode[HN], HN comparable](
	g graph.Graph[N, KN, HN],
	lc lifecycle.Lifecycle[N, KN, HN],
	t *Tree[N],
	path *Path[KN, HN],
	r *graph.Res[KN],
	onEnter func([]KN) bool,
) bool {
	stack := []frame[N, KN, HN]{{node: t.Node, succs: g.Expand(t.Node)}}

	for {
		top := &stack[len(stack)-1]

		if top.pos >= len(top.succs) {
			children := top.children
			if top.hasKn {
				path.Pop(top.kn)
			}
			closedNode := top.node
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				t.status = closed
				t.Children = children
				return true
			}
			parent := &stack[len(stack)-1]
			parent.children = append(parent.children, &Tree[N]{Node: closedNode, status: closed, Children: children})
			continue
		}

		n2 := top.succs[top.pos]
		top.pos++

		kn2, hasKn2 := n2.KeyNode()
		if hasKn2 {
			if label, isEnd := g.End(kn2); isEnd {
				p := append(append([]KN{}, path.Vec()...), kn2)
				lc.DebugEnd(p, label)
				r.AddEnd(p, label)
				continue
			}
			if idx, found := path.FindOrPush(kn2); found {
				stem := append([]KN{}, path.Vec()[:idx]...)
				cyc := append([]KN{}, path.Vec()[idx:]...)
				lc.DebugCycle(stem, cyc, kn2)
				r.AddCycle(stem, cyc, kn2)
				continue
			}
		}

		if !onEnter(path.Vec()) {
			tr := &Tree[N]{Node: n2, status: unopened}
			for i := len(stack) - 1; i >= 0; i-- {
				f := stack[i]
				children := append(f.children, tr)
				for _, n3 := range f.succs[f.pos:] {
					children = append(children, &Tree[N]{Node: n3, status: unopened})
				}
				tr = &Tree[N]{Node: f.node, status: opened, Children: children}
			}
			*t = *tr
			return false
		}

		stack = append(stack, frame[N, KN, HN]{node: n2, kn: kn2, hasKn: hasKn2, succs: g.Expand(n2)})
	}
}

// Sdfs ("serial DFS") runs every unopened subtree of root to full
// completion, one at a time, never pausing — the direct port of the
// original's single-threaded sdfs, used when the graph is small enough
// that bounded time slicing buys nothing.
func Sdfs[N graph.Node[KN], KN graph.KeyNode[HN], HN comparable](
	root *Tree[N], g graph.Graph[N, KN, HN], lc lifecycle.Lifecycle[N, KN, HN],
) {
	for {
		var leaves []unopenedLeaf[N, KN, HN]
		findUnopened(root, NewPath[KN, HN](), &leaves)
		if len(leaves) == 0 {
			return
		}

		for _, leaf := range leaves {
			res := graph.NewRes[KN]()
			walkOne(g, lc, leaf.tree, leaf.path, res, func([]KN) bool { return true })
			if !lc.OnRecollectResults(res) {
				return
			}
		}
	}
}

// Dfs time-slices the whole resident tree: each round it finds every
// still-unopened leaf, fans them out across lc.Threads() workers, and
// lets each worker walk until either its subtree closes or the round's
// RecollectMS budget elapses, whichever comes first. At the end of each
// round it reports the current frontier's firstest path and the round's
// results; OnRecollectResults returning false ends the search. Once the
// whole tree has collapsed it returns without a further report.
func Dfs[N graph.Node[KN], KN graph.KeyNode[HN], HN comparable](
	root *Tree[N], g graph.Graph[N, KN, HN], lc lifecycle.Lifecycle[N, KN, HN],
) {
	for {
		if Collapse(root) {
			return
		}

		var leaves []unopenedLeaf[N, KN, HN]
		findUnopened(root, NewPath[KN, HN](), &leaves)

		results := make([]*graph.Res[KN], len(leaves))
		for i := range results {
			results[i] = graph.NewRes[KN]()
		}

		stop := atomic.Bool{}
		timer := time.AfterFunc(time.Duration(lc.RecollectMS())*time.Millisecond, func() { stop.Store(true) })

		var next atomic.Int64
		var wg sync.WaitGroup
		threads := lc.Threads()
		if threads < 1 {
			threads = 1
		}
		for w := 0; w < threads; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for {
					if stop.Load() {
						return
					}
					i := int(next.Add(1)) - 1
					if i >= len(leaves) {
						return
					}
					walkOne(g, lc, leaves[i].tree, leaves[i].path, results[i], func([]KN) bool {
						return !stop.Load()
					})
				}
			}()
		}
		wg.Wait()
		timer.Stop()

		res := graph.NewRes[KN]()
		for _, r1 := range results {
			res.Append(r1)
		}

		front := firstest(root)
		if len(front) > 0 {
			last := front[len(front)-1]
			kns := make([]KN, 0, len(front))
			for _, n := range front {
				if kn, ok := n.KeyNode(); ok {
					kns = append(kns, kn)
				}
			}
			lc.OnRecollectFirstest(kns, last)
		}

		if !lc.OnRecollectResults(res) {
			return
		}
	}
}
