package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lgolsearch/search/internal/lgol"
	"github.com/lgolsearch/search/pkg/bfs"
	"github.com/lgolsearch/search/pkg/checkpoint"
	apperrors "github.com/lgolsearch/search/pkg/errors"
)

var (
	resumeFlags    searchFlags
	resumeCkptPath string
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Resume a search from a previously written checkpoint",
	Long: `resume rebuilds the domain graph from the same flags the original
run used (width, height, axes, background, constraint, end condition) and
restores the frontier, key-node forest, and dedupe set from a checkpoint
file written by "run" or by an earlier "resume".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := GetConfig()
		log := GetLogger()

		if resumeCkptPath == "" {
			resumeCkptPath = c.Checkpoint.Path
		}

		g, err := resumeFlags.buildGraph()
		if err != nil {
			return err
		}
		codecs := codecsFor(g)

		kns, q, dd := newCollections(c)
		state, err := checkpoint.LoadState(resumeCkptPath, codecs, kns, q, dd)
		if err != nil {
			return apperrors.Wrap(apperrors.CodeDeserialization, "load checkpoint", err)
		}

		lc := &cliLifecycle{
			g:               g,
			log:             log,
			threads:         c.Search.Threads,
			maxMem:          uint64(c.Search.MaxMemoryBytes),
			checkpointPath:  c.Checkpoint.Path,
			checkpointEvery: c.Checkpoint.IntervalSteps,
			checkpointOpts:  checkpointOptsFromConfig(c),
			codecs:          codecs,
		}

		log.Info("resumed from %s: depth %d, foresight %d, frontier %d, kns %d",
			resumeCkptPath, state.Depth, state.Foresight, state.Q.Len(), state.Kns.Len())

		shouldDedupe := func(lgol.HashNode) bool { return resumeFlags.dedupeAlways }
		return bfs.RunDedupe(state, g, lc, codecs, shouldDedupe)
	},
}

func init() {
	addSearchFlags(resumeCmd, &resumeFlags)
	resumeCmd.Flags().StringVar(&resumeCkptPath, "checkpoint", "", "Checkpoint file to resume from (defaults to checkpoint.path in config)")
	rootCmd.AddCommand(resumeCmd)
}
