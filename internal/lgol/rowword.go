package lgol

// Row is a packed row of up to 64 cells; bit i is column i.
type Row = uint64

// MaxWidth is the widest strip a single Row word can represent.
const MaxWidth = 64

// History is the number of prior rows carried alongside the row under
// construction. A cell's neighbor count is read from the generation
// directly behind the one being filled, so finishing row r of a new
// generation needs that prior generation's rows r-1, r, r+1 still in the
// window — up to Height+1 rows back for an open vertical edge, and
// further still (up to 2*Height-1) when the vertical axis wraps and the
// last row of a generation needs the first row of the one behind it.
// Fixed at compile time since Go generics can't parameterize struct
// layout by a runtime height the way the original's const-generic
// RowTuple macro does; GraphParams.Derive measures the actual distance
// its check table needs and returns an error rather than silently
// truncating history if a caller's Height doesn't fit.
const History = 192

// RowHistory is the fixed-size backing array for a node's completed-row
// window, ordered most-recent-first (R0s[0] is the row directly above
// the one under construction).
type RowHistory [History]Row

func getBit(r Row, idx int) bool { return r&(1<<uint(idx)) != 0 }

func setBit(r Row, idx int) Row { return r | (1 << uint(idx)) }

func popCount(r Row) int {
	n := 0
	for r != 0 {
		r &= r - 1
		n++
	}
	return n
}
