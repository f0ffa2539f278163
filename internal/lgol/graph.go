package lgol

import (
	"fmt"
	"strings"

	apperrors "github.com/lgolsearch/search/pkg/errors"
)

// Node is a working node: one row of the current generation under
// construction (Row identifies which of the Height rows it is), plus the
// window of already-completed rows needed to evaluate its neighbor
// counts and any constraint accumulator state for the cells placed so
// far. R1L counts cells committed into R1 left to right; the row is
// complete once R1L == Width, at which point Expand slides the history
// window by one row (spec.md §3's working node fill_index, §4.4's
// "complete row" successor) rather than by one cell and resets R1L to 0.
// KeyNode reports an identity only for nodes with R1L == 0.
//
// This realizes spec.md's general (x, y, t) affine-lattice row
// construction narrowed to the common bounded-grid case: Height rows of
// Width cells make up one generation, advanced one row at a time, rather
// than an arbitrary diagonal slice of a fully general affine lattice
// (ars_aa::lattice, not in the example pack, and explicitly out of scope
// per the general-graph-library non-goal).
type Node struct {
	Bg     BgPhase
	DU, DV int16
	Row    int
	R0s    RowHistory
	R1     Row
	R1L    int
	CSS    ConstraintState
}

func (Node) mmapSafe() {}

// KeyNode is a completed row's identity: its bit pattern plus the
// accumulated translation (DU, DV) recentring has applied since the
// search root.
type KeyNode struct {
	Bg     BgPhase
	DU, DV int16
	Rs     RowHistory
}

func (KeyNode) mmapSafe() {}

// HashNode strips translation, leaving the identity cycle detection and
// dedup compare against.
type HashNode struct {
	Bg BgPhase
	Rs RowHistory
}

func (HashNode) mmapSafe() {}

func (n Node) KeyNode() (KeyNode, bool) {
	if n.R1L != 0 {
		return KeyNode{}, false
	}
	return KeyNode{Bg: n.Bg, DU: n.DU, DV: n.DV, Rs: n.R0s}, true
}

func (kn KeyNode) HashNode() (HashNode, bool) {
	return HashNode{Bg: kn.Bg, Rs: kn.Rs}, true
}

// neighborKind tags how a precomputed neighbor offset resolves.
type neighborKind int

const (
	neighborKnown neighborKind = iota
	neighborRead
	neighborUnknown
)

// neighborRef is a precomputed neighbor lookup: either a fixed boundary
// value, an as-yet-undecided cell to skip, or a read `distance` rows
// back in the history window (1-based: distance 1 is R0s[0]) at column
// `col`.
type neighborRef struct {
	kind     neighborKind
	known    bool
	distance int
	col      int
}

// GraphParams is the rule-agnostic construction input: lattice extent,
// background coordinate group, per-axis edge policy, and any constraint
// accumulator. Derive builds the checks table and Ends collaborator into
// a ready-to-use Graph.
type GraphParams struct {
	Width, Height int
	Bg            BgGroup
	UAxis, VAxis  Axis
	Constraint    Constraint
}

// Graph is the domain graph: it satisfies graph.Graph[Node, KeyNode,
// HashNode] via Expand/End below (Node/KeyNode already provide the
// KeyNode()/HashNode() projections).
type Graph struct {
	params GraphParams
	checks [][]neighborRefs8
	// window is the number of history rows actually load-bearing for
	// this graph's neighbor checks (always <= History). advanceRow
	// zeroes everything beyond it on every slide, which both bounds the
	// per-row recentre work and keeps KeyNode/HashNode equality (dedupe,
	// cycle detection) from being perturbed by stale rows the check
	// table never reads.
	window int
	ends   Ends
}

type neighborRefs8 [8]neighborRef

var neighborOffsets = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0} /*    */, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Derive precomputes the per-(background-phase, row, column) neighbor
// table and returns a ready Graph. ends decides acceptance; pass
// NoEnds{} for a pure enumeration/cycle-detection search.
//
// It validates Width against the single-row bit-packed Row word
// (spec.md §7's invariant-violation abort, rather than silently
// truncating cells the way an unchecked Width > MaxWidth would) and
// measures the actual number of history rows its neighbor table needs,
// erroring if that exceeds the fixed-size RowHistory window instead of
// corrupting whichever rows fall off the end.
func (p GraphParams) Derive(ends Ends) (*Graph, error) {
	if p.Width <= 0 || p.Width > MaxWidth {
		return nil, apperrors.New(apperrors.CodeInvalidInput,
			fmt.Sprintf("width %d must be in [1, %d] to pack one row into a Row word", p.Width, MaxWidth))
	}
	if p.Height <= 0 {
		return nil, apperrors.New(apperrors.CodeInvalidInput,
			fmt.Sprintf("height must be positive, got %d", p.Height))
	}

	checks := make([][]neighborRefs8, p.Bg.MaxIdx())
	window := p.Height
	for bgIdx := 0; bgIdx < p.Bg.MaxIdx(); bgIdx++ {
		bg := p.Bg.FromIdx(bgIdx)
		table := make([]neighborRefs8, p.Height*p.Width)
		for row := 0; row < p.Height; row++ {
			for x := 0; x < p.Width; x++ {
				var refs neighborRefs8
				for i, d := range neighborOffsets {
					ref := p.resolveNeighbor(bg, row, x, d[0], d[1])
					if ref.kind == neighborRead && ref.distance > window {
						window = ref.distance
					}
					refs[i] = ref
				}
				table[row*p.Width+x] = refs
			}
		}
		checks[bgIdx] = table
	}

	if window > History {
		return nil, apperrors.New(apperrors.CodeInvalidInput, fmt.Sprintf(
			"height %d needs a %d-row history window, which exceeds the fixed History=%d bound",
			p.Height, window, History))
	}

	return &Graph{params: p, checks: checks, window: window, ends: ends}, nil
}

// resolveNeighbor resolves the (dx, dy) neighbor of column x in row r of
// the generation under construction. Both axes are resolved
// independently against the generation the row under construction is
// one ahead of: the vertical offset lands on a row index within that
// prior, already-complete generation, which resolveNeighbor converts to
// a history distance (Height rows back reaches the same row index one
// generation behind; further or nearer depending on dy and whether the
// vertical axis wraps).
func (p GraphParams) resolveNeighbor(bg BgCoord, r, x, dx, dy int) neighborRef {
	row, term := axisResolve(p.VAxis, bg, r+dy, p.Height)
	if term != nil {
		return *term
	}
	col, term := axisResolve(p.UAxis, bg, x+dx, p.Width)
	if term != nil {
		return *term
	}
	return neighborRef{kind: neighborRead, distance: p.Height + r - row, col: col}
}

// axisResolve resolves c2 against axis's edge policy when c2 falls
// outside [0, bound): returns the in-bounds coordinate to read when the
// axis supplies one (Update or Wrap), or a terminal ref when the axis
// already decided the answer (Known) or can't yet (Unknown).
func axisResolve(axis Axis, bg BgCoord, c2, bound int) (int, *neighborRef) {
	if c2 >= 0 && c2 < bound {
		return c2, nil
	}
	var e EdgeRead
	if c2 < 0 {
		e = axis.LeftEdge(bg, c2)
	} else {
		e = axis.RightEdge(bg, c2)
	}
	switch e.Kind {
	case EdgeKnown:
		return 0, &neighborRef{kind: neighborKnown, known: e.Known}
	case EdgeUpdate:
		return e.Update, nil
	case EdgeWrap:
		return wrapMod(c2, bound), nil
	default:
		return 0, &neighborRef{kind: neighborUnknown}
	}
}

func wrapMod(c, n int) int {
	m := c % n
	if m < 0 {
		m += n
	}
	return m
}

// checkCompat2 is the B3/S23 compatibility rule (spec.md §4.4): given the
// live/known neighbor counts and a (current, future) cell-value pair,
// reports whether the transition is admissible.
func checkCompat2(living, known int, cur, fut bool) bool {
	dead := known - living
	switch {
	case cur && fut:
		return living <= 3 && dead <= 6
	case cur && !fut:
		return living <= 1 || dead <= 4
	case !cur && fut:
		return living <= 3 && dead <= 5
	default:
		return living <= 2 || dead <= 4
	}
}

// ZeroNode is the empty root: an all-dead row 0 of generation 0, ready
// for Expand to fill in the first row's cells.
func (g *Graph) ZeroNode() Node {
	return Node{CSS: g.params.Constraint.ZeroStat()}
}

// RegularNode builds a seed node from an already-complete row-history
// window (R1L and Row implicitly 0, meaning Expand will immediately
// start filling the next row) — used to seed a search from a known
// starting pattern rather than the all-dead root.
func (g *Graph) RegularNode(rs RowHistory) Node {
	return Node{R0s: rs, CSS: g.params.Constraint.ZeroStat()}
}

// Expand enumerates n's successors: either the two candidate values for
// the next cell in the row under construction, or (once the row is
// complete) the single "advance to next row" successor after sliding the
// history window and recentring.
func (g *Graph) Expand(n Node) []Node {
	if n.R1L == g.params.Width {
		return g.advanceRow(n)
	}

	idx := n.R1L
	refs := g.checks[n.Bg.ToIdx()][n.Row*g.params.Width+idx]
	cur := getBit(n.R0s[g.params.Height-1], idx)

	out := make([]Node, 0, 2)
	for _, v := range [2]bool{false, true} {
		css, ok := g.params.Constraint.AddStat(n.CSS, g.params.Width, idx, v)
		if !ok {
			continue
		}
		if !g.checkNeighbors(refs, n.R0s, cur, v) {
			continue
		}
		r1 := n.R1
		if v {
			r1 = setBit(r1, idx)
		}
		out = append(out, Node{
			Bg:  n.Bg,
			DU:  n.DU,
			DV:  n.DV,
			Row: n.Row,
			R0s: n.R0s,
			R1:  r1,
			R1L: n.R1L + 1,
			CSS: css,
		})
	}
	return out
}

func (g *Graph) checkNeighbors(refs neighborRefs8, r0s RowHistory, cur, fut bool) bool {
	living, known := 0, 0
	for _, ref := range refs {
		switch ref.kind {
		case neighborKnown:
			known++
			if ref.known {
				living++
			}
		case neighborRead:
			known++
			if getBit(r0s[ref.distance-1], ref.col) {
				living++
			}
		case neighborUnknown:
		}
	}
	return checkCompat2(living, known, cur, fut)
}

// advanceRow slides the history window by the just-completed row,
// recentres the horizontal (U) axis against it (every row, mirroring the
// original's recenter_common called on every expand_srch step), and,
// once a full generation's Height rows have gone by, also recentres the
// vertical (V) axis and wraps the row counter back to 0.
func (g *Graph) advanceRow(n Node) []Node {
	var newHist RowHistory
	newHist[0] = n.R1
	copy(newHist[1:g.window], n.R0s[:g.window-1])

	bg := g.params.Bg.FromIdx(n.Bg.ToIdx())

	du, shifted := g.params.UAxis.Recenter(g.params.Width, bg, newHist[:g.window])
	copy(newHist[:g.window], shifted)

	nextRow := n.Row + 1
	dv := 0
	if nextRow == g.params.Height {
		dv, newHist = g.recentreVertical(bg, newHist)
		nextRow = 0
	}

	if n.R0s == (RowHistory{}) && (du != 0 || dv != 0) {
		// Reject the stupid shift of the very first row: there is
		// nothing yet to recentre relative to.
		return nil
	}

	return []Node{{
		Bg:  n.Bg,
		DU:  n.DU + int16(du),
		DV:  n.DV + int16(dv),
		Row: nextRow,
		R0s: newHist,
		R1:  0,
		R1L: 0,
		CSS: g.params.Constraint.ZeroStat(),
	}}
}

// recentreVertical collapses vertical translation across a just-finished
// generation's Height rows (hist[0:Height], the only rows that
// generation contributed) by transposing them into Height-many
// column-as-row words — bit r of column x's word is cell (x, r) — so the
// existing VAxis.Recenter can be reused unmodified, then transposing
// back. Older rows left over from the generation before (hist[Height:])
// belong to an already-finalized snapshot and are carried through
// untouched.
func (g *Graph) recentreVertical(bg BgCoord, hist RowHistory) (int, RowHistory) {
	height, width := g.params.Height, g.params.Width
	cols := make([]uint64, width)
	for row := 0; row < height; row++ {
		word := hist[height-1-row]
		for x := 0; x < width; x++ {
			if getBit(word, x) {
				cols[x] = setBit(cols[x], row)
			}
		}
	}

	delta, shiftedCols := g.params.VAxis.Recenter(height, bg, cols)

	var out RowHistory
	for row := 0; row < height; row++ {
		var word Row
		for x := 0; x < width; x++ {
			if getBit(shiftedCols[x], row) {
				word = setBit(word, x)
			}
		}
		out[height-1-row] = word
	}
	copy(out[height:g.window], hist[height:g.window])
	return delta, out
}

// End delegates to the Ends collaborator, justifying the row window to a
// canonical left-aligned offset first if the collaborator asks for that
// form (WantJustify) rather than the recentred one KeyNode carries.
func (g *Graph) End(kn KeyNode) (string, bool) {
	hn, _ := kn.HashNode()
	if g.ends.WantJustify() {
		bg := g.params.Bg.FromIdx(hn.Bg.ToIdx())
		_, shifted := g.params.UAxis.Justify(g.params.Width, bg, hn.Rs[:g.window])
		copy(hn.Rs[:g.window], shifted)
	}
	return g.ends.End(hn)
}

// FormatRows renders a key node's trailing row-history window as a
// human-readable block of '.'/'*' characters, oldest row first — roughly
// one generation's worth of context, the same window the neighbor checks
// themselves read from.
func (g *Graph) FormatRows(rs RowHistory) []string {
	return g.formatWindow(rs, '.', '*')
}

// FormatCycleRows renders path and cycle key nodes in sequence, marking
// the cycle portion with alternate characters so a reader can see where
// the loop closes.
func (g *Graph) FormatCycleRows(path, cycle []KeyNode) []string {
	var lines []string
	for _, kn := range path {
		lines = append(lines, g.formatWindow(kn.Rs, '.', '*')...)
		lines = append(lines, "")
	}
	for _, kn := range cycle {
		lines = append(lines, g.formatWindow(kn.Rs, 'x', 'o')...)
		lines = append(lines, "")
	}
	return lines
}

// FormatCycleShape renders just the repeating portion of a cycle.
func (g *Graph) FormatCycleShape(cycle []KeyNode) []string {
	var lines []string
	for _, kn := range cycle {
		lines = append(lines, g.formatWindow(kn.Rs, '.', '*')...)
	}
	return lines
}

func (g *Graph) formatWindow(rs RowHistory, dead, live rune) []string {
	lines := make([]string, g.window)
	for i := 0; i < g.window; i++ {
		word := rs[g.window-1-i]
		var b strings.Builder
		for x := 0; x < g.params.Width; x++ {
			if getBit(word, x) {
				b.WriteRune(live)
			} else {
				b.WriteRune(dead)
			}
		}
		lines[i] = b.String()
	}
	return lines
}

// ParseRows builds a row-history window from a slice of strings using
// '*' for live and anything else for dead, one string per row (top to
// bottom, oldest to newest) — used by tests and seed/target
// construction. Rows beyond Height are ignored; fewer than Height leaves
// the remaining rows dead.
func (g *Graph) ParseRows(rows []string) RowHistory {
	var rh RowHistory
	height := g.params.Height
	for row, line := range rows {
		if row >= height {
			break
		}
		var word Row
		for x, c := range line {
			if x >= g.params.Width {
				break
			}
			if c == '*' {
				word = setBit(word, x)
			}
		}
		rh[height-1-row] = word
	}
	return rh
}
