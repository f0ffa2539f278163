package lgol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCompat2_StillLifeBlock(t *testing.T) {
	// A 2x2 block: every live cell has exactly 3 live neighbors and stays
	// alive; every dead neighbor of the block has <=2 or >=4 known dead
	// and does not come alive outside the block.
	assert.True(t, checkCompat2(3, 8, true, true))
	assert.False(t, checkCompat2(3, 8, true, false))
	assert.True(t, checkCompat2(2, 8, false, false))
	assert.False(t, checkCompat2(2, 8, false, true))
}

func TestCheckCompat2_BirthAndDeath(t *testing.T) {
	assert.True(t, checkCompat2(3, 8, false, true), "exactly 3 live neighbors births a cell")
	assert.False(t, checkCompat2(4, 8, false, true), "4 live neighbors never births")
	assert.True(t, checkCompat2(1, 8, true, false), "underpopulation kills")
	assert.True(t, checkCompat2(4, 8, true, false), "overpopulation kills")
	assert.False(t, checkCompat2(2, 8, true, false), "2 live neighbors is stable, not death")
	assert.False(t, checkCompat2(3, 8, true, false), "3 live neighbors is stable, not death")
}

func newBlinkerParams(width, height int) GraphParams {
	return GraphParams{
		Width:      width,
		Height:     height,
		Bg:         TrivialGroup{},
		UAxis:      OpenAxis(),
		VAxis:      OpenAxis(),
		Constraint: NoConstraint{},
	}
}

// newTorusParams wraps both axes: WrapAxis never recentres, and a wrap
// edge never clips a pattern against a dead boundary, so a free-floating
// oscillator's physics stay exact wherever it sits on the grid.
func newTorusParams(width, height int) GraphParams {
	return GraphParams{
		Width:      width,
		Height:     height,
		Bg:         TrivialGroup{},
		UAxis:      WrapAxis(),
		VAxis:      WrapAxis(),
		Constraint: NoConstraint{},
	}
}

func TestGraph_BlinkerOscillates(t *testing.T) {
	// A torus exercises the oscillator's physics without any shift: a
	// wrap axis never recentres and never clips the shape against a dead
	// edge, so the test only counts live cells per generation.
	g, err := newTorusParams(5, 5).Derive(NoEnds{})
	require.NoError(t, err)

	vertical := g.ParseRows([]string{
		".....",
		"..*..",
		"..*..",
		"..*..",
		".....",
	})
	seed := g.RegularNode(vertical)

	gen1 := mustCompleteGeneration(t, g, seed)
	assert.Equal(t, 3, rowLiveCount(g, gen1.R0s), "a blinker always has exactly 3 live cells")

	gen2 := mustCompleteGeneration(t, g, gen1)
	assert.Equal(t, 3, rowLiveCount(g, gen2.R0s), "and still 3 after flipping back")

	gen3 := mustCompleteGeneration(t, g, gen2)
	assert.Equal(t, 3, rowLiveCount(g, gen3.R0s), "oscillation repeats indefinitely")
}

// rowLiveCount sums live cells across a completed generation's Height
// rows of the history window.
func rowLiveCount(g *Graph, rs RowHistory) int {
	n := 0
	for i := 0; i < g.params.Height; i++ {
		n += popCount(rs[i])
	}
	return n
}

// mustCompleteRow drives Expand deterministically (the rule is exact for
// a blinker: exactly one successor survives at each cell) across one
// row's Width cells, then advances once more to slide the history window
// by that row.
func mustCompleteRow(t *testing.T, g *Graph, n Node) Node {
	t.Helper()
	cur := n
	for cur.R1L < g.params.Width {
		succ := g.Expand(cur)
		if len(succ) != 1 {
			t.Fatalf("expected exactly one admissible successor at cell %d, got %d", cur.R1L, len(succ))
		}
		cur = succ[0]
	}
	succ := g.Expand(cur)
	if len(succ) != 1 {
		t.Fatalf("expected exactly one successor advancing the row, got %d", len(succ))
	}
	return succ[0]
}

// mustCompleteGeneration drives mustCompleteRow across all Height rows of
// the generation under construction.
func mustCompleteGeneration(t *testing.T, g *Graph, n Node) Node {
	t.Helper()
	cur := n
	for i := 0; i < g.params.Height; i++ {
		cur = mustCompleteRow(t, g, cur)
	}
	return cur
}

func TestGraph_EmptyGridStaysEmpty(t *testing.T) {
	g, err := newBlinkerParams(4, 4).Derive(NoEnds{})
	require.NoError(t, err)
	seed := g.ZeroNode()
	next := mustCompleteGeneration(t, g, seed)
	assert.Equal(t, Row(0), next.R0s[0])
}

func TestGraphParams_Derive_RejectsOversizeWidth(t *testing.T) {
	_, err := newBlinkerParams(MaxWidth+1, 4).Derive(NoEnds{})
	assert.Error(t, err)
}

func TestGraphParams_Derive_RejectsNonPositiveHeight(t *testing.T) {
	_, err := newBlinkerParams(4, 0).Derive(NoEnds{})
	assert.Error(t, err)
}

func TestTargetRowEnds_AcceptsVacuum(t *testing.T) {
	ends := TargetRowEnds{}
	label, ok := ends.End(HashNode{Rs: RowHistory{}})
	assert.True(t, ok)
	assert.Equal(t, "vacuum", label)

	_, ok = ends.End(HashNode{Rs: RowHistory{1: 1}})
	assert.False(t, ok)
}
