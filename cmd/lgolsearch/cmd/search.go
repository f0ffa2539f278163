package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lgolsearch/search/internal/lgol"
	"github.com/lgolsearch/search/pkg/bfs"
	"github.com/lgolsearch/search/pkg/checkpoint"
	"github.com/lgolsearch/search/pkg/chunkstore"
	"github.com/lgolsearch/search/pkg/compression"
	"github.com/lgolsearch/search/pkg/config"
	"github.com/lgolsearch/search/pkg/dedupe"
	apperrors "github.com/lgolsearch/search/pkg/errors"
	"github.com/lgolsearch/search/pkg/forest"
	"github.com/lgolsearch/search/pkg/graph"
	"github.com/lgolsearch/search/pkg/lifecycle"
	"github.com/lgolsearch/search/pkg/logging"
	"github.com/lgolsearch/search/pkg/queue"
)

// searchFlags collects the domain-graph construction flags shared by the
// run and resume subcommands.
type searchFlags struct {
	width, height int
	wrapU, wrapV  bool
	background    string

	endKind    string
	targetRows []string
	justify    bool

	constraint string
	uwNum, uwDen int
	vpDivision, vpMaxFlips int

	seedRows []string

	dedupeAlways bool
}

func addSearchFlags(cmd *cobra.Command, f *searchFlags) {
	cmd.Flags().IntVar(&f.width, "width", 8, "Lattice width in cells (at most lgol.MaxWidth, one Row word per row)")
	cmd.Flags().IntVar(&f.height, "height", 8, "Lattice height in cells")
	cmd.Flags().BoolVar(&f.wrapU, "wrap-u", false, "Wrap the horizontal axis into a torus instead of leaving it open")
	cmd.Flags().BoolVar(&f.wrapV, "wrap-v", false, "Wrap the vertical axis into a torus instead of leaving it open")
	cmd.Flags().StringVar(&f.background, "background", "trivial", "Background coordinate group: trivial, x2, y2, x2y2")

	cmd.Flags().StringVar(&f.endKind, "end", "none", "Accepting condition: none (pure enumeration) or rows (vacuum/target row)")
	cmd.Flags().StringSliceVar(&f.targetRows, "target-row", nil, "Target generation row, one string per y, '*' live; repeat for each row")
	cmd.Flags().BoolVar(&f.justify, "justify", false, "Ask End about the justify-collapsed form rather than the recentred one")

	cmd.Flags().StringVar(&f.constraint, "constraint", "none", "Row constraint: none, uwindow, vperiod")
	cmd.Flags().IntVar(&f.uwNum, "uwindow-num", 1, "UWindow live-cell span budget numerator")
	cmd.Flags().IntVar(&f.uwDen, "uwindow-den", 2, "UWindow live-cell span budget denominator")
	cmd.Flags().IntVar(&f.vpDivision, "vperiod-division", 2, "VPeriodDividing candidate period divisor")
	cmd.Flags().IntVar(&f.vpMaxFlips, "vperiod-max-flips", 0, "VPeriodDividing disagreement budget")

	cmd.Flags().StringSliceVar(&f.seedRows, "seed-row", nil, "Seed generation row, one string per y, '*' live; defaults to the all-dead root")

	cmd.Flags().BoolVar(&f.dedupeAlways, "dedupe", false, "Reject hash-node repeats across the whole search, not just within a path")
}

func (f *searchFlags) buildParams() (lgol.GraphParams, error) {
	bg, err := f.buildBg()
	if err != nil {
		return lgol.GraphParams{}, err
	}
	constraint, err := f.buildConstraint()
	if err != nil {
		return lgol.GraphParams{}, err
	}
	return lgol.GraphParams{
		Width:      f.width,
		Height:     f.height,
		Bg:         bg,
		UAxis:      f.buildAxis(f.wrapU),
		VAxis:      f.buildAxis(f.wrapV),
		Constraint: constraint,
	}, nil
}

func (f *searchFlags) buildAxis(wrap bool) lgol.Axis {
	if wrap {
		return lgol.WrapAxis()
	}
	return lgol.OpenAxis()
}

func (f *searchFlags) buildBg() (lgol.BgGroup, error) {
	switch strings.ToLower(f.background) {
	case "trivial", "":
		return lgol.TrivialGroup{}, nil
	case "x2":
		return lgol.X2Group{}, nil
	case "y2":
		return lgol.Y2Group{}, nil
	case "x2y2":
		return lgol.X2Y2Group{}, nil
	default:
		return nil, apperrors.New(apperrors.CodeInvalidInput, fmt.Sprintf("unknown background group: %q", f.background))
	}
}

func (f *searchFlags) buildConstraint() (lgol.Constraint, error) {
	switch strings.ToLower(f.constraint) {
	case "none", "":
		return lgol.NoConstraint{}, nil
	case "uwindow":
		return lgol.UWindow{Num: f.uwNum, Den: f.uwDen}, nil
	case "vperiod":
		return lgol.VPeriodDividing{Division: f.vpDivision, MaxFlips: f.vpMaxFlips}, nil
	default:
		return nil, apperrors.New(apperrors.CodeInvalidInput, fmt.Sprintf("unknown constraint: %q", f.constraint))
	}
}

func (f *searchFlags) buildEnds() (lgol.Ends, error) {
	switch strings.ToLower(f.endKind) {
	case "none", "":
		return lgol.NoEnds{}, nil
	case "rows":
		return lgol.TargetRowEnds{}, nil
	default:
		return nil, apperrors.New(apperrors.CodeInvalidInput, fmt.Sprintf("unknown end condition: %q", f.endKind))
	}
}

// buildGraph derives the ready-to-search Graph, resolving target-row ends
// against the graph's own ParseRows once Width/Height are known.
func (f *searchFlags) buildGraph() (*lgol.Graph, error) {
	params, err := f.buildParams()
	if err != nil {
		return nil, err
	}
	ends, err := f.buildEnds()
	if err != nil {
		return nil, err
	}
	if tre, ok := ends.(lgol.TargetRowEnds); ok && len(f.targetRows) > 0 {
		g0, err := params.Derive(lgol.NoEnds{})
		if err != nil {
			return nil, err
		}
		tre.Target = g0.ParseRows(f.targetRows)
		tre.HasTarget = true
		tre.Justify = f.justify
		ends = tre
	}
	return params.Derive(ends)
}

func (f *searchFlags) seedNode(g *lgol.Graph) lgol.Node {
	if len(f.seedRows) == 0 {
		return g.ZeroNode()
	}
	return g.RegularNode(g.ParseRows(f.seedRows))
}

// newCollections builds the forest/queue/dedupe collections the domain
// graph's search state lives in. lgol.KeyNode is a plain value type (its
// former BgCoord interface field replaced by the concrete lgol.BgPhase,
// its former `any` constraint field by the concrete lgol.ConstraintState),
// so forest.Entry[lgol.KeyNode] satisfies chunkstore.MmapSafe by promotion
// and the forest backing can honor storage.use_mmap for searches expected
// to outgrow heap residency.
//
// The BFS frontier queue stays heap-only regardless: bfs.Item[N] names
// its payload field Node rather than embedding N, so MmapSafe never
// promotes through it no matter how flat N is. Renaming that field would
// ripple across every package that reads item.Node, so the queue is left
// on HeapFactory here rather than taken on as part of this change.
func newCollections(cfg *config.Config) (*forest.Forest[lgol.KeyNode], *queue.ChunkQueue[bfs.Item[lgol.Node]], dedupe.Dedupe[lgol.HashNode]) {
	var knFactory chunkstore.Factory[forest.Entry[lgol.KeyNode]]
	if cfg.Storage.UseMmap {
		knFactory = chunkstore.AnonMmapFactory[forest.Entry[lgol.KeyNode]]{Dir: cfg.Storage.ChunkDir}
	} else {
		knFactory = chunkstore.HeapFactory[forest.Entry[lgol.KeyNode]]{}
	}
	kns := forest.New[lgol.KeyNode](knFactory)
	q := queue.New[bfs.Item[lgol.Node]](chunkstore.HeapFactory[bfs.Item[lgol.Node]]{})
	dd := dedupe.NewHashSet[lgol.HashNode]()
	return kns, q, dd
}

// checkpointOptsFromConfig translates the loaded checkpoint config into
// pkg/checkpoint's own Options, skipping compression entirely when the
// config asks for none rather than paying a no-op compressor's framing.
func checkpointOptsFromConfig(c *config.Config) checkpoint.Options {
	if !c.Checkpoint.Compress {
		return checkpoint.Options{Compression: compression.TypeNone}
	}
	return checkpoint.DefaultOptions()
}

func codecsFor(g *lgol.Graph) bfs.Codecs[lgol.Node, lgol.KeyNode, lgol.HashNode] {
	return bfs.Codecs[lgol.Node, lgol.KeyNode, lgol.HashNode]{
		N:  g.NodeCodec(),
		KN: g.KeyNodeCodec(),
		HN: g.HashNodeCodec(),
	}
}

// cliLifecycle is the Lifecycle collaborator the CLI drives a search
// with: fixed thread/memory parameters, results and row shapes logged
// through the configured logger, and a periodic checkpoint write every
// checkpointEvery steps.
type cliLifecycle struct {
	g       *lgol.Graph
	log     logging.Logger
	threads int
	maxMem  uint64

	checkpointPath  string
	checkpointEvery int
	checkpointOpts  checkpoint.Options
	codecs          bfs.Codecs[lgol.Node, lgol.KeyNode, lgol.HashNode]

	step int
}

var _ lifecycle.Lifecycle[lgol.Node, lgol.KeyNode, lgol.HashNode] = (*cliLifecycle)(nil)

func (l *cliLifecycle) Threads() int       { return l.threads }
func (l *cliLifecycle) RecollectMS() int64 { return 1000 }
func (l *cliLifecycle) MaxMem() uint64     { return l.maxMem }

func (l *cliLifecycle) OnRecollectFirstest(path []lgol.KeyNode, n lgol.Node) {
	l.log.Debug("frontier head at depth %d", len(path))
}

func (l *cliLifecycle) OnRecollectResults(res *graph.Res[lgol.KeyNode]) bool {
	for _, e := range res.Ends {
		l.log.Info("end %q reached:\n%s", e.Label, strings.Join(l.g.FormatRows(e.Path[len(e.Path)-1].Rs), "\n"))
	}
	for _, c := range res.Cycles {
		l.log.Info("cycle closing on generation below (stem %d, period %d):\n%s",
			len(c.Stem), len(c.Cycle), strings.Join(l.g.FormatCycleShape(c.Cycle), "\n"))
	}
	l.step++
	return true
}

func (l *cliLifecycle) Log(level lifecycle.LogLevel, msg string) {
	if level == lifecycle.LevelDebug {
		l.log.Debug("%s", msg)
		return
	}
	l.log.Info("%s", msg)
}

func (l *cliLifecycle) DebugBFS2Checkpoint(getState func() []byte) {
	if l.checkpointPath == "" || l.checkpointEvery <= 0 || l.step%l.checkpointEvery != 0 {
		return
	}
	body := getState()
	if body == nil {
		return
	}
	start := time.Now()
	if err := checkpoint.WriteFile(l.checkpointPath, body, l.checkpointOpts); err != nil {
		l.log.Warn("checkpoint write to %s failed: %v", l.checkpointPath, err)
		return
	}
	l.log.Info("checkpoint written to %s in %s", l.checkpointPath, time.Since(start))
}

func (l *cliLifecycle) DebugEnd(path []lgol.KeyNode, label string) {
	l.log.Debug("candidate end %q at depth %d", label, len(path))
}

func (l *cliLifecycle) DebugCycle(stem, cycle []lgol.KeyNode, closing lgol.KeyNode) {
	l.log.Debug("candidate cycle: stem %d, period %d", len(stem), len(cycle))
}
