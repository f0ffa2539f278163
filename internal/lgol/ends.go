package lgol

// Ends decides whether a completed row's hash node is an accepting end,
// and whether End should be asked about the justified (translation-
// collapsed-to-one-side) form rather than the recentred one.
type Ends interface {
	End(hn HashNode) (string, bool)
	WantJustify() bool
}

// NoEnds never accepts; a pure enumeration/cycle-detection search.
type NoEnds struct{}

func (NoEnds) End(HashNode) (string, bool) { return "", false }
func (NoEnds) WantJustify() bool           { return false }

// TargetRowEnds accepts the single all-dead row (a still life or a
// spaceship that has flown off to nothing useful) or, if HasTarget is set,
// any row equal to a caller-supplied target shape.
type TargetRowEnds struct {
	Target       RowHistory
	HasTarget    bool
	Justify      bool
}

func (e TargetRowEnds) End(hn HashNode) (string, bool) {
	if hn.Rs == (RowHistory{}) {
		return "vacuum", true
	}
	if e.HasTarget && hn.Rs == e.Target {
		return "target", true
	}
	return "", false
}

func (e TargetRowEnds) WantJustify() bool { return e.Justify }
