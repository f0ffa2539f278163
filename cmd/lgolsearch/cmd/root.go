package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lgolsearch/search/pkg/config"
	"github.com/lgolsearch/search/pkg/logging"
)

var (
	// Global flags
	cfgPath string
	verbose bool

	logger logging.Logger
	cfg    *config.Config
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "lgolsearch",
	Short: "Search a Life-like cellular automaton's row-construction graph",
	Long: `lgolsearch enumerates the generation-by-generation row-construction
graph of a Life-like two-dimensional cellular automaton, finding still
lifes, oscillators, spaceships, or cycles via a chunked, checkpointable
breadth-first frontier search.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		if verbose {
			c.Log.Level = "debug"
		}
		cfg = c

		level := logging.ParseLevel(c.Log.Level)
		if c.Log.OutputPath != "" {
			l, err := logging.NewFileLogger(level, c.Log.OutputPath)
			if err != nil {
				return err
			}
			logger = l
		} else {
			logger = logging.NewDefaultLogger(level, os.Stdout)
		}
		logging.SetGlobal(logger)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "Path to a config file (yaml/json/toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug-level logging")

	binName := BinName()
	rootCmd.Example = `  # Run a fresh search over a 5x5 torus to quiescence
  ` + binName + ` run --width 5 --height 5 --wrap-u --wrap-v

  # Resume a search from its last checkpoint
  ` + binName + ` resume --checkpoint ./data/checkpoint.bin

  # Print version information
  ` + binName + ` version`
}

// GetLogger returns the configured logger, valid once PersistentPreRunE has run.
func GetLogger() logging.Logger {
	return logger
}

// GetConfig returns the loaded configuration, valid once PersistentPreRunE has run.
func GetConfig() *config.Config {
	return cfg
}

// BinName returns the base name of the current executable.
func BinName() string {
	return filepath.Base(os.Args[0])
}
