package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/markercube/pkg/cache"
	"github.com/matzehuels/markercube/pkg/config"
	"github.com/matzehuels/markercube/pkg/cubenet"
	"github.com/matzehuels/markercube/pkg/errors"
	"github.com/matzehuels/markercube/pkg/fiducial"
	"github.com/matzehuels/markercube/pkg/io"
	"github.com/matzehuels/markercube/pkg/marker"
)

// Flag names.
const (
	flagTileSize       = "tile_size"
	flagDictionary     = "dictionary"
	flagDictionaryFile = "dictionary-file"
	flagConfig         = "config"
	flagNoCache        = "no-cache"
)

// generateOptions holds the generate flags as given on the command line.
type generateOptions struct {
	tileSize       int
	dictionary     string
	dictionaryFile string
	configPath     string
	noCache        bool
}

func (o *generateOptions) addFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVar(&o.tileSize, flagTileSize, cubenet.DefaultTileSize, "side length of one marker tile in pixels")
	f.StringVar(&o.dictionary, flagDictionary, fiducial.DefaultDictionary, "built-in dictionary name (see 'dict list')")
	f.StringVar(&o.dictionaryFile, flagDictionaryFile, "", "load the dictionary from a YAML codeword table")
	f.StringVar(&o.configPath, flagConfig, "", "configuration file (default: $XDG_CONFIG_HOME/markercube/config.toml)")
	f.BoolVar(&o.noCache, flagNoCache, false, "do not read or write the dictionary cache")
}

// resolve merges the configuration file with the flags that were set
// explicitly. Flags win over the file; the file wins over defaults.
func (o *generateOptions) resolve(cmd *cobra.Command) (config.Config, string, error) {
	cfg, path, err := config.Load(o.configPath)
	if err != nil {
		return config.Config{}, "", err
	}

	flags := cmd.Flags()
	if flags.Changed(flagTileSize) {
		cfg.TileSize = o.tileSize
	}
	if flags.Changed(flagDictionary) {
		cfg.Dictionary = o.dictionary
		// A dictionary named on the command line replaces a table from the file.
		cfg.DictionaryFile = ""
	}
	if flags.Changed(flagDictionaryFile) {
		cfg.DictionaryFile = o.dictionaryFile
	}
	if flags.Changed(flagNoCache) {
		enabled := !o.noCache
		cfg.Cache = &enabled
	}
	return cfg, path, cfg.Validate()
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate DIR",
		Short: "Write a cube-net marker sheet into DIR",
		Long: `Generate renders six fiducial markers and lays them out as an unfolded cube.

Outputs (DIR must already exist):
  marker_tile.png          the net, 4 tiles tall and 3 tiles wide
  marker_tiles_square.png  the net centred on a square canvas
  marker_info.yml          dictionary name and the marker id of every face`,
		Example: `  markercube generate ./out
  markercube generate ./out --tile_size 300 --dictionary GEN_5X5_50
  markercube generate ./out --dictionary-file DICT_4X4_250.yml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd, args[0], opts)
		},
	}

	opts.addFlags(cmd)
	return cmd
}

func (c *CLI) runGenerate(cmd *cobra.Command, dir string, opts *generateOptions) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	if err := io.CheckDir(dir); err != nil {
		return err
	}
	cfg, cfgPath, err := opts.resolve(cmd)
	if err != nil {
		return err
	}
	if cfgPath != "" {
		logger.Debug("loaded config", "path", cfgPath)
	}

	store, err := newCache(cfg.CacheEnabled())
	if err != nil {
		return err
	}
	defer store.Close()

	catalogue, dict, err := c.openDictionary(ctx, store, cfg)
	if err != nil {
		return err
	}
	logger.Info("Generating sheet", "dictionary", dict.Name, "tile_size", cfg.TileSize, "margin", marker.Margin(cfg.TileSize))

	sheet, err := cubenet.Build(ctx, marker.NewRenderer(catalogue, dict.Name), cfg.TileSize)
	if err != nil {
		return err
	}
	paths, err := io.WriteArtifacts(dir, sheet)
	if err != nil {
		return err
	}
	prog.done("Sheet written")

	printSuccess("Generated %s", StyleNumber.Render(fmt.Sprintf("%d markers", len(sheet.Metadata.Markers))))
	printKeyValue("Dictionary", dict.Name)
	printKeyValue("Tile size", fmt.Sprintf("%d px", cfg.TileSize))
	printFaceTable(sheet.Metadata.Markers)
	if cfg.TileSize%2 != 0 {
		printWarning("Odd tile size: the square sheet is offset by half a pixel")
	}
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

// openDictionary builds the catalogue for cfg and looks up the dictionary
// to render with, so an unknown name fails before any tile is drawn.
func (c *CLI) openDictionary(ctx context.Context, store cache.Cache, cfg config.Config) (*fiducial.Catalogue, *fiducial.Dictionary, error) {
	catalogue := fiducial.NewCatalogue(store)

	name := cfg.Dictionary
	if cfg.DictionaryFile != "" {
		d, err := fiducial.Load(cfg.DictionaryFile)
		if err != nil {
			return nil, nil, err
		}
		if err := catalogue.Register(d); err != nil {
			return nil, nil, err
		}
		name = d.Name
	}

	sp := newSpinner(ctx, c.errOut, "Preparing dictionary "+name)
	sp.start()
	d, err := catalogue.Lookup(ctx, name)
	sp.stop()
	if err != nil {
		return nil, nil, err
	}
	if d.Len() < len(cubenet.Faces) {
		return nil, nil, errors.New(errors.ErrCodeInvalidDictionary,
			"dictionary %s has %d markers, a cube needs %d", d.Name, d.Len(), len(cubenet.Faces))
	}
	return catalogue, d, nil
}
