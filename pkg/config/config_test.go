package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/markercube/pkg/errors"
	"github.com/matzehuels/markercube/pkg/fiducial"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func boolPtr(b bool) *bool { return &b }

func TestDefault(t *testing.T) {
	c := Default()
	if c.TileSize != 100 {
		t.Errorf("TileSize = %d, want 100", c.TileSize)
	}
	if c.Dictionary != fiducial.DefaultDictionary {
		t.Errorf("Dictionary = %q, want %q", c.Dictionary, fiducial.DefaultDictionary)
	}
	if !c.CacheEnabled() {
		t.Error("CacheEnabled() = false, want true")
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestMerge(t *testing.T) {
	base := Default()
	got := base.Merge(Config{TileSize: 40, Cache: boolPtr(false)})

	want := Config{TileSize: 40, Dictionary: fiducial.DefaultDictionary, Cache: boolPtr(false)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Merge mismatch (-want +got):\n%s", diff)
	}
	if base.TileSize != 100 {
		t.Errorf("Merge modified receiver: TileSize = %d", base.TileSize)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		code errors.Code
	}{
		{"zero tile", Config{TileSize: 0, Dictionary: "x"}, errors.ErrCodeInvalidConfig},
		{"negative tile", Config{TileSize: -5, Dictionary: "x"}, errors.ErrCodeInvalidConfig},
		{"no dictionary", Config{TileSize: 10}, errors.ErrCodeInvalidConfig},
		{"file only", Config{TileSize: 10, DictionaryFile: "d.yml"}, ""},
		{"smallest tile", Config{TileSize: 1, Dictionary: "x"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.code == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Validate() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestRead(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
tile_size = 200
dictionary = "GEN_5X5_100"
dictionary_file = "tables/aruco.yml"
cache = false
`)
	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	want := Config{
		TileSize:       200,
		Dictionary:     "GEN_5X5_100",
		DictionaryFile: filepath.Join(dir, "tables", "aruco.yml"),
		Cache:          boolPtr(false),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Read mismatch (-want +got):\n%s", diff)
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown key", "tile_szie = 10\n"},
		{"wrong type", "tile_size = \"big\"\n"},
		{"syntax", "tile_size = \n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.body)
			if _, err := Read(path); !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Read error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestLoadExplicit(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "tile_size = 60\n")

	got, used, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if used != path {
		t.Errorf("used = %q, want %q", used, path)
	}
	if got.TileSize != 60 {
		t.Errorf("TileSize = %d, want 60", got.TileSize)
	}
	if got.Dictionary != fiducial.DefaultDictionary {
		t.Errorf("Dictionary = %q, want default", got.Dictionary)
	}
}

func TestLoadMissingExplicit(t *testing.T) {
	if _, _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Load error = %v, want INVALID_CONFIG", err)
	}
}

func TestLoadSearchPath(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Setenv("HOME", t.TempDir())

	got, used, err := Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if used != "" {
		t.Errorf("used = %q, want none", used)
	}
	if diff := cmp.Diff(Default(), got); diff != "" {
		t.Errorf("Load without file mismatch (-want +got):\n%s", diff)
	}

	if err := os.MkdirAll(filepath.Join(xdg, "markercube"), 0755); err != nil {
		t.Fatal(err)
	}
	path := writeConfig(t, filepath.Join(xdg, "markercube"), "dictionary = \"GEN_6X6_50\"\n")

	got, used, err = Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if used != path {
		t.Errorf("used = %q, want %q", used, path)
	}
	if got.Dictionary != "GEN_6X6_50" {
		t.Errorf("Dictionary = %q, want GEN_6X6_50", got.Dictionary)
	}
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")
	got, err := CacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/xdg-cache", "markercube"); got != want {
		t.Errorf("CacheDir() = %q, want %q", got, want)
	}
}
