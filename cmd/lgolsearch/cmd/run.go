package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lgolsearch/search/internal/lgol"
	"github.com/lgolsearch/search/pkg/bfs"
	apperrors "github.com/lgolsearch/search/pkg/errors"
)

var runFlags searchFlags

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start a fresh search from an all-dead or seeded generation",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := GetConfig()
		log := GetLogger()

		g, err := runFlags.buildGraph()
		if err != nil {
			return err
		}

		kns, q, dd := newCollections(c)
		seed := runFlags.seedNode(g)
		state := bfs.NewSimple[lgol.Node, lgol.KeyNode, lgol.HashNode](seed, kns, q, dd)
		if c.Search.InitialForesight > 0 {
			state.Foresight = c.Search.InitialForesight
		}

		lc := &cliLifecycle{
			g:               g,
			log:             log,
			threads:         c.Search.Threads,
			maxMem:          uint64(c.Search.MaxMemoryBytes),
			checkpointPath:  c.Checkpoint.Path,
			checkpointEvery: c.Checkpoint.IntervalSteps,
			checkpointOpts:  checkpointOptsFromConfig(c),
		}
		lc.codecs = codecsFor(g)

		if err := c.EnsureDataDir(); err != nil {
			return apperrors.Wrap(apperrors.CodeIO, "ensure data dir", err)
		}

		shouldDedupe := func(lgol.HashNode) bool { return runFlags.dedupeAlways }
		return bfs.RunDedupe(state, g, lc, lc.codecs, shouldDedupe)
	},
}

func init() {
	addSearchFlags(runCmd, &runFlags)
	rootCmd.AddCommand(runCmd)
}
