package fiducial

import (
	"bytes"
	"context"
	"image"
	"sync"

	"github.com/matzehuels/markercube/pkg/cache"
	"github.com/matzehuels/markercube/pkg/errors"
	"github.com/matzehuels/markercube/pkg/observability"
)

const cacheKeyType = "dictionary"

// Catalogue implements [Generator] over registered and built-in dictionaries.
// Built-ins are synthesized on first lookup and stored in the cache as YAML
// codeword tables.
type Catalogue struct {
	cache cache.Cache

	mu    sync.Mutex
	dicts map[string]*Dictionary
}

// NewCatalogue creates a catalogue backed by c.
// If c is nil, a NullCache is used (caching disabled).
func NewCatalogue(c cache.Cache) *Catalogue {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Catalogue{cache: c, dicts: make(map[string]*Dictionary)}
}

// Register adds d to the catalogue. A registered dictionary shadows a
// built-in of the same name.
func (c *Catalogue) Register(d *Dictionary) error {
	if err := d.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dicts[d.Name] = d
	return nil
}

// Lookup returns the named dictionary, synthesizing a built-in if needed.
func (c *Catalogue) Lookup(ctx context.Context, name string) (*Dictionary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if d, ok := c.dicts[name]; ok {
		return d, nil
	}
	info, ok := Builtin(name)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidDictionary, "unknown dictionary %q", name)
	}

	d, err := c.loadBuiltin(ctx, info)
	if err != nil {
		return nil, err
	}
	c.dicts[name] = d
	return d, nil
}

// Marker implements [Generator].
func (c *Catalogue) Marker(dictionary string, id, side int) (*image.Gray, error) {
	d, err := c.Lookup(context.Background(), dictionary)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeGenerator, err, "marker %d", id)
	}
	return d.Draw(id, side)
}

func (c *Catalogue) loadBuiltin(ctx context.Context, info BuiltinInfo) (*Dictionary, error) {
	key := cache.Key(cacheKeyType, info.Name, info.MarkerSize, info.Count, DefaultSeed, SynthesisVersion)

	if data, hit, err := c.cache.Get(ctx, key); err == nil && hit {
		if d, err := Read(bytes.NewReader(data)); err == nil && d.Name == info.Name && d.Len() == info.Count {
			observability.Cache().OnCacheHit(ctx, cacheKeyType)
			return d, nil
		}
		// Unreadable entry: fall through and rebuild it.
		_ = c.cache.Delete(ctx, key)
	}
	observability.Cache().OnCacheMiss(ctx, cacheKeyType)

	d, err := Synthesize(info.Name, info.MarkerSize, info.Count, DefaultSeed)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := Write(&buf, d); err == nil {
		if err := c.cache.Set(ctx, key, buf.Bytes(), 0); err == nil {
			observability.Cache().OnCacheSet(ctx, cacheKeyType, buf.Len())
		}
	}
	return d, nil
}

var (
	_ Generator = (*Catalogue)(nil)
	_ Generator = (*Dictionary)(nil)
)
