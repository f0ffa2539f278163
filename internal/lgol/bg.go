package lgol

// BgCoord is a background coordinate: a phase label carried alongside a
// node that distinguishes positions under a non-trivial background
// (e.g. a chequerboard) that would otherwise look identical. Groups form
// under Add; ToIdx/FromIdx/MaxIdx let callers keep one table slot per
// phase (the checks table, the dedupe set).
// BgCoord implementations must be comparable (usable as map keys and
// struct fields of comparable node types) even though that can't be
// expressed in the interface itself.
type BgCoord interface {
	Add(other BgCoord) BgCoord
	ToIdx() int
}

// BgGroup is the factory half of a background coordinate group: the
// static operations Go interfaces can't express as trait associated
// functions.
type BgGroup interface {
	FromXYT(xyt Vec3) BgCoord
	FromIdx(idx int) BgCoord
	MaxIdx() int
	Zero() BgCoord
}

// BgPhase is the mmap-safe concrete form a node carries its background
// coordinate as: the same phase index ToIdx()/FromIdx() already
// round-trip, stored as a plain int8 instead of the BgCoord interface.
// Node/KeyNode/HashNode need the interface's Add/axis-policy operations
// only at graph-construction time (through GraphParams.Bg, not through
// the stored node), so the node-carried copy never needs to be more than
// this index — and keeping it a concrete value type, rather than an
// interface, is what lets those three types satisfy chunkstore.MmapSafe.
type BgPhase int8

func (p BgPhase) ToIdx() int { return int(p) }

// bgPhaseOf narrows a BgGroup-produced BgCoord down to its node-storable
// phase index.
func bgPhaseOf(bg BgCoord) BgPhase { return BgPhase(bg.ToIdx()) }

// Trivial is the one-element background group: every position has the
// same (only) phase. Used by toy scenarios and anything without a
// patterned background.
type Trivial struct{}

func (Trivial) Add(BgCoord) BgCoord { return Trivial{} }
func (Trivial) ToIdx() int          { return 0 }

type TrivialGroup struct{}

func (TrivialGroup) FromXYT(Vec3) BgCoord { return Trivial{} }
func (TrivialGroup) FromIdx(int) BgCoord  { return Trivial{} }
func (TrivialGroup) MaxIdx() int          { return 1 }
func (TrivialGroup) Zero() BgCoord        { return Trivial{} }

// X2 is the mod-2 phase in x: used for searches over a chequerboard
// background with a period-2 pattern along the horizontal axis.
type X2 struct{ V int8 }

func (c X2) Add(other BgCoord) BgCoord { return X2{(c.V + other.(X2).V) % 2} }
func (c X2) ToIdx() int                { return int(c.V) }

type X2Group struct{}

func (X2Group) FromXYT(xyt Vec3) BgCoord { return X2{int8(mod2(xyt[0]))} }
func (X2Group) FromIdx(idx int) BgCoord  { return X2{int8(idx)} }
func (X2Group) MaxIdx() int              { return 2 }
func (X2Group) Zero() BgCoord            { return X2{0} }

// Y2 is the mod-2 phase in y, the vertical analogue of X2.
type Y2 struct{ V int8 }

func (c Y2) Add(other BgCoord) BgCoord { return Y2{(c.V + other.(Y2).V) % 2} }
func (c Y2) ToIdx() int                { return int(c.V) }

type Y2Group struct{}

func (Y2Group) FromXYT(xyt Vec3) BgCoord { return Y2{int8(mod2(xyt[1]))} }
func (Y2Group) FromIdx(idx int) BgCoord  { return Y2{int8(idx)} }
func (Y2Group) MaxIdx() int              { return 2 }
func (Y2Group) Zero() BgCoord            { return Y2{0} }

// X2Y2 pairs the X2 and Y2 phases, used by genuine two-dimensional
// chequerboard backgrounds.
type X2Y2 struct{ V int8 }

func (c X2Y2) split() (int8, int8) { return c.V % 2, c.V / 2 }

func pairX2Y2(x, y int8) X2Y2 {
	return X2Y2{2*int8(mod2i(int(y))) + int8(mod2i(int(x)))}
}

func (c X2Y2) Add(other BgCoord) BgCoord {
	x1, y1 := c.split()
	x2, y2 := other.(X2Y2).split()
	return pairX2Y2(x1+x2, y1+y2)
}
func (c X2Y2) ToIdx() int { return int(c.V) }

type X2Y2Group struct{}

func (X2Y2Group) FromXYT(xyt Vec3) BgCoord { return pairX2Y2(int8(xyt[0]), int8(xyt[1])) }
func (X2Y2Group) FromIdx(idx int) BgCoord  { return X2Y2{int8(idx)} }
func (X2Y2Group) MaxIdx() int              { return 4 }
func (X2Y2Group) Zero() BgCoord            { return X2Y2{0} }

func mod2(n int) int {
	m := n % 2
	if m < 0 {
		m += 2
	}
	return m
}

func mod2i(n int) int { return mod2(n) }

// Background projects a background coordinate to whether that cell is
// alive in the fixed background pattern the search is relative to (used
// by the background and recentring axes' edge reads and by the
// find-min/find-max shift search).
type Background interface {
	Cell(bg BgCoord) bool
}

// EmptyBackground is the all-dead background: the common case.
type EmptyBackground struct{}

func (EmptyBackground) Cell(BgCoord) bool { return false }

// VertStripes alternates dead/live by X2 phase.
type VertStripes struct{}

func (VertStripes) Cell(bg BgCoord) bool { return bg.(X2).V != 0 }
