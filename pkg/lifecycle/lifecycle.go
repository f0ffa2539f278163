// Package lifecycle defines the collaborator contract the search core
// consumes for live parameter reads, result reporting, logging, and
// checkpoint scheduling. Concrete implementations sit outside the core
// (config-file-backed, remote-control-backed, or, in tests, fixed).
package lifecycle

import "github.com/lgolsearch/search/pkg/graph"

// LogLevel mirrors the two severities the contract distinguishes.
type LogLevel int

const (
	LevelInfo LogLevel = iota
	LevelDebug
)

// Lifecycle is the parameter-oracle contract: threads/memory cap/foresight
// seed reads, result and "firstest witness" reporting, logging, and
// checkpoint scheduling.
type Lifecycle[N graph.Node[KN], KN graph.KeyNode[HN], HN comparable] interface {
	// Threads returns the worker count to use for parallel expansion (>= 1).
	Threads() int
	// RecollectMS is advisory; only the legacy DFS path consults it.
	RecollectMS() int64
	// MaxMem is the byte cap for combined queue + forest residency.
	MaxMem() uint64

	// OnRecollectFirstest reports the front of the queue after a step.
	OnRecollectFirstest(path []KN, n N)
	// OnRecollectResults surfaces accumulated results; false stops the search.
	OnRecollectResults(res *graph.Res[KN]) bool

	Log(level LogLevel, msg string)

	// DebugBFS2Checkpoint is invoked once per frontier step with a
	// one-shot thunk; calling getState triggers the driver's next
	// full-forest-rebuild to produce a consistent snapshot and returns
	// it serialized in the wire format of pkg/sal. The collaborator
	// decides whether and how often to actually call it (e.g. every N
	// steps) and what to do with the bytes (e.g. write them to disk).
	DebugBFS2Checkpoint(getState func() []byte)

	// DebugEnd/DebugCycle are optional hooks for verbose tracing.
	DebugEnd(path []KN, label string)
	DebugCycle(stem, cycle []KN, closing KN)
}
