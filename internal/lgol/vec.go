// Package lgol realizes the domain graph contract (pkg/graph) for the
// Life-like cellular automaton: row-by-row construction of a partial
// tiling, background coordinate groups, edge policies, recentring axes,
// constraint accumulators, and the B3/S23 compatibility rule.
package lgol

// Vec3 is an (x, y, t) or (u, v, w) lattice coordinate triple, matching
// the original's bare tuple convention.
type Vec3 [3]int
