// Package dfs implements the legacy single-threaded/bounded-parallel DFS
// driver: a resident search tree, repeatedly reopened and walked to a
// RecollectMS time budget, that the BFS driver in pkg/bfs has mostly
// superseded but which remains useful for small or highly-pruned graphs
// where the key-node forest's bookkeeping is pure overhead.
package dfs

import "github.com/lgolsearch/search/pkg/graph"

// status tags a tree node's exploration state.
type status int

const (
	unopened status = iota
	opened
	closed
)

// Tree is a resident DFS search tree: one node plus its exploration
// status and (once opened) its children. Unlike pkg/bfs's frontier queue,
// the whole tree stays in memory for the life of a search — this driver
// is for graphs small enough, or pruned tightly enough, that this is
// cheaper than forest bookkeeping.
type Tree[N any] struct {
	Node     N
	status   status
	Children []*Tree[N]
}

// NewTree seeds a fresh, unopened tree from a root node.
func NewTree[N any](n N) *Tree[N] { return &Tree[N]{Node: n, status: unopened} }

// Collapse marks every node whose entire subtree is closed as closed
// itself, and reports whether the whole tree is now closed (search
// exhausted).
func Collapse[N any](t *Tree[N]) bool {
	switch t.status {
	case unopened:
		return false
	case closed:
		return true
	default:
		finished := true
		for _, c := range t.Children {
			if !Collapse(c) {
				finished = false
			}
		}
		if finished {
			t.status = closed
		}
		return finished
	}
}

// unopenedLeaf pairs a still-unopened tree node with the key-node path
// leading to it, found during a findUnopened sweep.
type unopenedLeaf[N graph.Node[KN], KN graph.KeyNode[HN], HN comparable] struct {
	tree *Tree[N]
	path *Path[KN, HN]
}

// findUnopened collects every unopened leaf in the tree along with the
// key-node path leading to it, so each can be handed to a worker.
func findUnopened[N graph.Node[KN], KN graph.KeyNode[HN], HN comparable](
	t *Tree[N], path *Path[KN, HN], out *[]unopenedLeaf[N, KN, HN],
) {
	kn, hasKn := t.Node.KeyNode()
	if hasKn {
		path.Push(kn)
	}

	switch t.status {
	case unopened:
		*out = append(*out, unopenedLeaf[N, KN, HN]{tree: t, path: path.Clone()})
	case opened:
		for _, c := range t.Children {
			findUnopened[N, KN, HN](c, path, out)
		}
	case closed:
	}

	if hasKn {
		path.Pop(kn)
	}
}

// firstest walks the leftmost still-open path, returning the nodes along
// it (deepest first entry order), for reporting the current "front".
func firstest[N any](t *Tree[N]) []N {
	var acc []N
	firstestAux(t, &acc)
	return acc
}

func firstestAux[N any](t *Tree[N], acc *[]N) bool {
	*acc = append(*acc, t.Node)
	switch t.status {
	case unopened:
		return true
	case opened:
		for _, c := range t.Children {
			if firstestAux(c, acc) {
				return true
			}
		}
	case closed:
	}
	*acc = (*acc)[:len(*acc)-1]
	return false
}
