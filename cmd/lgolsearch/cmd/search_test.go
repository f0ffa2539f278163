package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgolsearch/search/internal/lgol"
)

func TestSearchFlags_BuildGraph_Defaults(t *testing.T) {
	f := searchFlags{width: 4, height: 4, endKind: "none", constraint: "none", background: "trivial"}

	g, err := f.buildGraph()
	require.NoError(t, err)

	seed := f.seedNode(g)
	assert.Equal(t, lgol.Row(0), seed.R0s[0], "default seed is the all-dead root")
}

func TestSearchFlags_BuildGraph_SeedRowsParse(t *testing.T) {
	f := searchFlags{
		width: 3, height: 3, endKind: "none", constraint: "none", background: "trivial",
		seedRows: []string{"...", ".*.", "..."},
	}

	g, err := f.buildGraph()
	require.NoError(t, err)

	seed := f.seedNode(g)
	assert.NotEqual(t, lgol.Row(0), seed.R0s[1], "the live middle row lands one slot behind the newest row")
}

func TestSearchFlags_BuildGraph_TargetRowEnd(t *testing.T) {
	f := searchFlags{
		width: 3, height: 3, endKind: "rows", constraint: "none", background: "trivial",
		targetRows: []string{"*..", "...", "..."},
	}

	g, err := f.buildGraph()
	require.NoError(t, err)

	kn := lgol.KeyNode{Rs: g.ParseRows(f.targetRows)}
	label, ok := g.End(kn)
	assert.True(t, ok)
	assert.Equal(t, "target", label)
}

func TestSearchFlags_BuildGraph_RejectsUnknownBackground(t *testing.T) {
	f := searchFlags{width: 2, height: 2, background: "nonsense"}
	_, err := f.buildGraph()
	assert.Error(t, err)
}

func TestSearchFlags_BuildGraph_RejectsUnknownConstraint(t *testing.T) {
	f := searchFlags{width: 2, height: 2, background: "trivial", constraint: "nonsense"}
	_, err := f.buildGraph()
	assert.Error(t, err)
}

func TestSearchFlags_BuildGraph_RejectsUnknownEnd(t *testing.T) {
	f := searchFlags{width: 2, height: 2, background: "trivial", constraint: "none", endKind: "nonsense"}
	_, err := f.buildGraph()
	assert.Error(t, err)
}

func TestSearchFlags_BuildGraph_WrapAxesProduceTorus(t *testing.T) {
	f := searchFlags{width: 4, height: 4, background: "trivial", constraint: "none", endKind: "none", wrapU: true, wrapV: true}
	_, err := f.buildGraph()
	require.NoError(t, err)
}
