package graph

// EndResult records that a path reached an accepting key-node.
type EndResult[KN any] struct {
	Path  []KN
	Label string
}

// CycleResult records a path whose newest successor shares a hash-node
// with an earlier key-node on the same path. Stem is the ancestor path up
// to (but not including) the repeated node; Cycle is the remainder, from
// the repeated node's first occurrence up to (but not including) the
// closing node; Closing is the successor key-node that closed the loop.
type CycleResult[KN any] struct {
	Stem    []KN
	Cycle   []KN
	Closing KN
}

// Res accumulates the ends and cycles discovered during a search pass.
type Res[KN any] struct {
	Ends   []EndResult[KN]
	Cycles []CycleResult[KN]
}

// NewRes creates an empty result bag.
func NewRes[KN any]() *Res[KN] { return &Res[KN]{} }

func (r *Res[KN]) AddEnd(path []KN, label string) {
	r.Ends = append(r.Ends, EndResult[KN]{Path: path, Label: label})
}

func (r *Res[KN]) AddCycle(stem, cycle []KN, closing KN) {
	r.Cycles = append(r.Cycles, CycleResult[KN]{Stem: stem, Cycle: cycle, Closing: closing})
}

// Append moves other's contents onto r; other is left empty.
func (r *Res[KN]) Append(other *Res[KN]) {
	r.Ends = append(r.Ends, other.Ends...)
	r.Cycles = append(r.Cycles, other.Cycles...)
	other.Ends = nil
	other.Cycles = nil
}

// Empty reports whether no ends or cycles were recorded.
func (r *Res[KN]) Empty() bool { return len(r.Ends) == 0 && len(r.Cycles) == 0 }
