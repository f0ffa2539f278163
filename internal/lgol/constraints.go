package lgol

// ConstraintState is the flat union of every Constraint's accumulator
// shape. A concrete search only ever uses one of its fields — which one
// is determined by the Constraint the graph was built with — but folding
// them into a single plain struct rather than returning `any` from
// ZeroStat/AddStat keeps Node free of interior pointers, so Node stays
// eligible for chunkstore's MmapSafe constraint alongside KeyNode and
// HashNode.
type ConstraintState struct {
	UWindow uWindowStat
	VPeriod vPeriodStat
}

// Constraint accumulates state across the cell-by-cell choices within
// one row and can reject a candidate before the neighborhood checks
// even run (spec.md §4.4 step 1). ZeroStat seeds the accumulator for a
// fresh row; AddStat folds in one more committed cell, returning the
// updated accumulator or false to reject the candidate outright.
type Constraint interface {
	ZeroStat() ConstraintState
	AddStat(s ConstraintState, width, idx int, v bool) (ConstraintState, bool)
}

// NoConstraint never rejects; used when the search has no shape budget
// to enforce.
type NoConstraint struct{}

func (NoConstraint) ZeroStat() ConstraintState { return ConstraintState{} }
func (NoConstraint) AddStat(s ConstraintState, _, _ int, _ bool) (ConstraintState, bool) {
	return s, true
}

// uWindowStat tracks the live-cell column span seen so far this row.
type uWindowStat struct {
	min, max int
}

// UWindow bounds the horizontal span of live cells to at most a
// fraction w.Num/w.Den of the strip width, rejecting candidates whose
// live cells would spread wider than that budget allows. Used to keep
// searches from wasting time on patterns wider than the feature being
// searched for could plausibly need.
type UWindow struct {
	Num, Den int
}

func (c UWindow) ZeroStat() ConstraintState {
	return ConstraintState{UWindow: uWindowStat{min: 1 << 30, max: -(1 << 30)}}
}

func (c UWindow) AddStat(s ConstraintState, width, idx int, v bool) (ConstraintState, bool) {
	st := s.UWindow
	if v {
		if idx < st.min {
			st.min = idx
		}
		if idx > st.max {
			st.max = idx
		}
	}
	s.UWindow = st
	if st.max < st.min {
		return s, true
	}
	if c.Den*(st.max-st.min) >= c.Num*width {
		return s, false
	}
	return s, true
}

// VPeriodDividing charges a counter whenever a cell disagrees with the
// first cell seen in its residue class modulo Division, rejecting once
// more than MaxFlips disagreements have accumulated. Used to search only
// for periods that evenly divide a candidate vertical period, pruning
// shapes that can't possibly repeat on schedule.
type VPeriodDividing struct {
	Division int
	MaxFlips int
}

// vPeriodStat is a fixed-size, by-value accumulator (no pointers or
// maps) so candidate branches in expand_srch can fork it by plain copy
// without aliasing each other's state.
type vPeriodStat struct {
	seenValid [MaxWidth]bool
	seenValue [MaxWidth]bool
	flips     int
}

func (c VPeriodDividing) ZeroStat() ConstraintState { return ConstraintState{} }

func (c VPeriodDividing) AddStat(s ConstraintState, _, idx int, v bool) (ConstraintState, bool) {
	st := s.VPeriod
	cls := idx % c.Division
	if st.seenValid[cls] {
		if st.seenValue[cls] != v {
			st.flips++
			if st.flips > c.MaxFlips {
				return s, false
			}
		}
	} else {
		st.seenValid[cls] = true
		st.seenValue[cls] = v
	}
	s.VPeriod = st
	return s, true
}
