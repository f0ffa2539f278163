package lgol

// EdgeReadKind tags how a read past a row's width boundary resolves.
type EdgeReadKind int

const (
	EdgeKnown EdgeReadKind = iota
	EdgeUpdate
	EdgeWrap
	EdgeUnknown
)

// EdgeRead is the result of asking an axis how to resolve a
// neighborhood read that falls outside [0, width): a known fixed value,
// a corrected in-bounds coordinate, a wraparound, or an as-yet-undecided
// cell the check must skip.
type EdgeRead struct {
	Kind   EdgeReadKind
	Known  bool
	Update int
}

func Known(b bool) EdgeRead  { return EdgeRead{Kind: EdgeKnown, Known: b} }
func Update(c int) EdgeRead  { return EdgeRead{Kind: EdgeUpdate, Update: c} }
func WrapRead() EdgeRead     { return EdgeRead{Kind: EdgeWrap} }
func UnknownRead() EdgeRead  { return EdgeRead{Kind: EdgeUnknown} }

// Axis is one of the two spatial axes (u or v) of the lattice. It
// resolves out-of-range reads and optionally recentres a completed row
// history to collapse translations along itself.
type Axis interface {
	LeftEdge(bg BgCoord, c int) EdgeRead
	RightEdge(bg BgCoord, c int) EdgeRead
	// Recenter and Justify return a shift delta (in lattice period
	// units) and the row history shifted to reflect it; most axis
	// kinds never shift (delta 0, rows unchanged).
	Recenter(width int, bg BgCoord, rs []uint64) (int, []uint64)
	Justify(width int, bg BgCoord, rs []uint64) (int, []uint64)
	WrapInPrint() bool
}

// SimpleAxis answers every out-of-range read with the same fixed pair of
// edge reads and never recentres — the direct port of the original's
// blanket impl over a (left, right) EdgeRead pair.
type SimpleAxis struct {
	Left, Right EdgeRead
}

func (a SimpleAxis) LeftEdge(BgCoord, int) EdgeRead  { return a.Left }
func (a SimpleAxis) RightEdge(BgCoord, int) EdgeRead { return a.Right }
func (a SimpleAxis) Recenter(_ int, _ BgCoord, rs []uint64) (int, []uint64) { return 0, rs }
func (a SimpleAxis) Justify(_ int, _ BgCoord, rs []uint64) (int, []uint64) { return 0, rs }
func (a SimpleAxis) WrapInPrint() bool {
	return a.Left.Kind == EdgeWrap && a.Right.Kind == EdgeWrap
}

// OpenAxis is the common case: cells beyond the strip's edge are dead.
func OpenAxis() SimpleAxis { return SimpleAxis{Known(false), Known(false)} }

// WrapAxis is a torus edge: out-of-range reads fold back modulo width.
func WrapAxis() SimpleAxis { return SimpleAxis{WrapRead(), WrapRead()} }

// BackgroundAxis resolves out-of-range reads to a fixed background
// pattern's cell value rather than always-dead.
type BackgroundAxis struct{ Left, Right Background }

func (a BackgroundAxis) LeftEdge(bg BgCoord, _ int) EdgeRead  { return Known(a.Left.Cell(bg)) }
func (a BackgroundAxis) RightEdge(bg BgCoord, _ int) EdgeRead { return Known(a.Right.Cell(bg)) }
func (a BackgroundAxis) Recenter(_ int, _ BgCoord, rs []uint64) (int, []uint64) { return 0, rs }
func (a BackgroundAxis) Justify(_ int, _ BgCoord, rs []uint64) (int, []uint64)  { return 0, rs }
func (a BackgroundAxis) WrapInPrint() bool                                     { return false }

// ReflectAxis mirrors reads about a half-unit axis set `shift` half-cells
// past the strip edge, falling to a dead cell (gutter) once the
// reflection itself runs out of room. Width is the strip width so the
// right edge knows where max_coord sits.
type ReflectAxis struct {
	Shift int // in half-cell units: 0 odd, 1 even, 2+ gutter
	Width int
}

func (a ReflectAxis) LeftEdge(_ BgCoord, c int) EdgeRead {
	doubleCrit := 0 - a.Shift
	if 2*c < doubleCrit {
		c = doubleCrit - c
	}
	if c < 0 {
		return Known(false)
	}
	return Update(c)
}

func (a ReflectAxis) RightEdge(_ BgCoord, c int) EdgeRead {
	maxCoord := a.Width - 1
	doubleCrit := 2*maxCoord + a.Shift
	if 2*c > doubleCrit {
		c = doubleCrit - c
	}
	if c > maxCoord {
		return Known(false)
	}
	return Update(c)
}

func (a ReflectAxis) Recenter(_ int, _ BgCoord, rs []uint64) (int, []uint64) { return 0, rs }
func (a ReflectAxis) Justify(_ int, _ BgCoord, rs []uint64) (int, []uint64)  { return 0, rs }
func (a ReflectAxis) WrapInPrint() bool                                     { return false }

// RecenteringAxis shifts the row history so the live cells sit at a
// canonical offset, collapsing arbitrary translations along this axis
// into one representative per equivalence class. The shift search is
// grounded on the original's find_min/find_max scan but, since the
// general affine shift table (lat2's LGolShiftData) isn't ported here,
// it is only exact against an empty background — patterned backgrounds
// recentre relative to column 0 rather than their own period.
type RecenteringAxis struct {
	Left, Right Background
}

func (a RecenteringAxis) LeftEdge(bg BgCoord, _ int) EdgeRead  { return Known(a.Left.Cell(bg)) }
func (a RecenteringAxis) RightEdge(bg BgCoord, _ int) EdgeRead { return Known(a.Right.Cell(bg)) }
func (a RecenteringAxis) WrapInPrint() bool                    { return false }

func (a RecenteringAxis) Recenter(width int, bg BgCoord, rs []uint64) (int, []uint64) {
	min := leftmostLive(width, rs, a.Left.Cell(bg))
	max := rightmostLive(width, rs, a.Right.Cell(bg))
	defSum := 0 + (width - 1)
	delta := divEuclid((min+max)-defSum+1, 2)
	return delta, shiftRows(width, rs, delta, a.Left, a.Right, bg)
}

func (a RecenteringAxis) Justify(width int, bg BgCoord, rs []uint64) (int, []uint64) {
	min := leftmostLive(width, rs, a.Left.Cell(bg))
	delta := min
	return delta, shiftRows(width, rs, delta, a.Left, a.Right, bg)
}

func leftmostLive(width int, rs []uint64, leftBg bool) int {
	for c := 0; c < width; c++ {
		for _, r := range rs {
			if getBit(r, c) != leftBg {
				return c
			}
		}
	}
	return width
}

func rightmostLive(width int, rs []uint64, rightBg bool) int {
	for c := width - 1; c >= 0; c-- {
		for _, r := range rs {
			if getBit(r, c) != rightBg {
				return c
			}
		}
	}
	return -1
}

// shiftRows slides every row left by delta columns, filling vacated
// columns from the appropriate background.
func shiftRows(width int, rs []uint64, delta int, left, right Background, bg BgCoord) []uint64 {
	if delta == 0 {
		return rs
	}
	out := make([]uint64, len(rs))
	for j, r := range rs {
		var nr uint64
		for c := 0; c < width; c++ {
			c2 := c + delta
			var b bool
			switch {
			case c2 < 0:
				b = left.Cell(bg)
			case c2 >= width:
				b = right.Cell(bg)
			default:
				b = getBit(r, c2)
			}
			if b {
				nr = setBit(nr, c)
			}
		}
		out[j] = nr
	}
	return out
}

func divEuclid(a, b int) int {
	q := a / b
	if a%b != 0 && (a%b < 0) != (b < 0) {
		q--
	}
	return q
}
