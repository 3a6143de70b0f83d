// Package config loads markercube's optional TOML configuration file.
//
// A configuration file supplies defaults for the generate command:
//
//	tile_size = 200
//	dictionary = "GEN_5X5_100"
//	dictionary_file = "/path/to/DICT_4X4_250.yml"
//	cache = true
//
// Flags set on the command line take precedence over the file, and the
// file takes precedence over [Default].
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/markercube/pkg/cubenet"
	"github.com/matzehuels/markercube/pkg/errors"
	"github.com/matzehuels/markercube/pkg/fiducial"
)

const (
	appName  = "markercube"
	fileName = "config.toml"
)

// Config holds the resolved generation settings.
type Config struct {
	TileSize       int    `toml:"tile_size"`
	Dictionary     string `toml:"dictionary"`
	DictionaryFile string `toml:"dictionary_file"`
	Cache          *bool  `toml:"cache"`
}

// Default returns the built-in settings.
func Default() Config {
	cache := true
	return Config{
		TileSize:   cubenet.DefaultTileSize,
		Dictionary: fiducial.DefaultDictionary,
		Cache:      &cache,
	}
}

// CacheEnabled reports whether the dictionary cache is on. Unset means on.
func (c Config) CacheEnabled() bool {
	return c.Cache == nil || *c.Cache
}

// Merge returns c with every field that is set in o replaced by o's value.
func (c Config) Merge(o Config) Config {
	if o.TileSize != 0 {
		c.TileSize = o.TileSize
	}
	if o.Dictionary != "" {
		c.Dictionary = o.Dictionary
	}
	if o.DictionaryFile != "" {
		c.DictionaryFile = o.DictionaryFile
	}
	if o.Cache != nil {
		c.Cache = o.Cache
	}
	return c
}

// Validate checks the settings before any work starts.
func (c Config) Validate() error {
	if err := cubenet.ValidateTileSize(c.TileSize); err != nil {
		return err
	}
	if c.Dictionary == "" && c.DictionaryFile == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "no dictionary configured")
	}
	return nil
}

// Read parses a configuration file. Unknown keys are rejected.
// A relative dictionary_file is resolved against the file's directory.
func Read(path string) (Config, error) {
	var c Config
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "config %s: unknown key %q", path, undecoded[0].String())
	}
	if c.DictionaryFile != "" && !filepath.IsAbs(c.DictionaryFile) {
		c.DictionaryFile = filepath.Join(filepath.Dir(path), c.DictionaryFile)
	}
	return c, nil
}

// Load resolves the configuration: the explicit path when given, otherwise
// the first file found on [SearchPaths], otherwise only the defaults.
// It returns the path it read, or "" when no file was used.
func Load(explicit string) (Config, string, error) {
	if explicit != "" {
		c, err := Read(explicit)
		if err != nil {
			return Config{}, "", err
		}
		return Default().Merge(c), explicit, nil
	}
	for _, p := range SearchPaths() {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		c, err := Read(p)
		if err != nil {
			return Config{}, "", err
		}
		return Default().Merge(c), p, nil
	}
	return Default(), "", nil
}

// SearchPaths lists where Load looks for a configuration file, in order.
func SearchPaths() []string {
	var paths []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, appName, fileName))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appName, fileName))
	}
	return paths
}

// CacheDir returns the dictionary cache directory.
func CacheDir() (string, error) {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "locate home directory")
	}
	return filepath.Join(home, ".cache", appName), nil
}
