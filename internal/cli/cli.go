// Package cli implements the markercube command-line interface.
//
// The root command and its generate subcommand write a cube-net sheet of
// fiducial markers into an existing directory:
//
//	markercube ./out --tile_size 200
//	markercube generate ./out --dictionary GEN_5X5_100
//
// Supporting commands list and export dictionaries and manage the
// dictionary cache. All commands support --verbose (-v) for debug-level
// logging; the logger travels through context.Context.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/markercube/pkg/buildinfo"
	"github.com/matzehuels/markercube/pkg/cache"
	"github.com/matzehuels/markercube/pkg/config"
	"github.com/matzehuels/markercube/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "markercube"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	errOut io.Writer // progress animations
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level), errOut: w}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// Given a directory argument, the root command behaves like generate.
func (c *CLI) RootCommand() *cobra.Command {
	opts := &generateOptions{}

	root := &cobra.Command{
		Use:   "markercube [DIR]",
		Short: "Markercube prints fiducial markers laid out as a foldable cube",
		Long: `Markercube renders six fiducial markers on a cube-net sheet. Cut out the net,
fold it into a cube and every face carries a distinct marker id.

It writes marker_tile.png, marker_tiles_square.png and marker_info.yml
into an existing directory.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		Args:         cobra.MaximumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			observability.SetSheetHooks(logHooks{})
			observability.SetCacheHooks(logHooks{})
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return c.runGenerate(cmd, args[0], opts)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	opts.addFlags(root)
	root.SetGlobalNormalizationFunc(normalizeFlagName)

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.dictCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// normalizeFlagName accepts dashed spellings of underscored flags.
func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	if name == "tile-size" {
		name = flagTileSize
	}
	return pflag.NormalizedName(name)
}

// =============================================================================
// Cache
// =============================================================================

func newCache(enabled bool) (cache.Cache, error) {
	if !enabled {
		return cache.NewNullCache(), nil
	}
	dir, err := config.CacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}
