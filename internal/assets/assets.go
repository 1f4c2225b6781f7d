// Package assets handles model source loading and material caching.
package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	xencoding "golang.org/x/text/encoding"

	"github.com/Faultbox/objvarray/internal/logger"
	"github.com/Faultbox/objvarray/pkg/encoding"
	"github.com/Faultbox/objvarray/pkg/formats"
)

// Model is a parsed OBJ together with its resolved material library.
type Model struct {
	Path      string
	Dir       string
	Geometry  *formats.OBJ
	Materials *formats.MaterialTable

	// MaterialPath is the resolved mtllib path, "" if the OBJ names none.
	MaterialPath string
	// MaterialsMissing is set when the OBJ names a library that could not be opened.
	MaterialsMissing bool
}

// Textures returns the texture paths referenced by the model's materials.
func (m *Model) Textures() []string {
	return m.Materials.Textures()
}

// Loader reads OBJ and MTL sources from disk.
// Material tables are cached by absolute path, so a loader shared across a
// batch of models parses each library once.
type Loader struct {
	enc   xencoding.Encoding
	cache *Cache
	log   *zap.Logger
}

// NewLoader creates a loader decoding sources with the named text encoding.
func NewLoader(encodingName string) (*Loader, error) {
	enc, err := encoding.Lookup(encodingName)
	if err != nil {
		return nil, err
	}
	return &Loader{
		enc:   enc,
		cache: NewCache(),
		log:   logger.Named("assets"),
	}, nil
}

// Cache returns the loader's material cache.
func (l *Loader) Cache() *Cache {
	return l.cache
}

// Load parses the OBJ at path and the material library it references.
// A missing or unreadable OBJ is an error; a missing MTL yields an empty
// material table and a warning.
func (l *Loader) Load(path string) (*Model, error) {
	obj, err := l.loadOBJ(path)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	model := &Model{
		Path:     path,
		Dir:      dir,
		Geometry: obj,
	}

	if obj.MaterialLib == "" {
		l.log.Debug("no material library referenced", zap.String("obj", path))
		model.Materials = formats.NewMaterialTable()
		return model, nil
	}

	model.MaterialPath = obj.MaterialLib
	if !filepath.IsAbs(model.MaterialPath) {
		model.MaterialPath = filepath.Join(dir, model.MaterialPath)
	}
	mats, err := l.LoadMaterials(model.MaterialPath)
	if err != nil {
		l.log.Warn("material library unavailable, using defaults",
			zap.String("mtl", model.MaterialPath),
			zap.Error(err))
		model.Materials = formats.NewMaterialTable()
		model.MaterialsMissing = true
		return model, nil
	}
	model.Materials = mats
	return model, nil
}

// LoadMaterials parses the MTL at path, returning a cached table when the
// same file was loaded before.
func (l *Loader) LoadMaterials(path string) (*formats.MaterialTable, error) {
	key, err := filepath.Abs(path)
	if err != nil {
		key = path
	}
	if mats, ok := l.cache.Get(key); ok {
		return mats, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening material library %s: %w", path, err)
	}
	defer f.Close()

	mats, err := formats.ParseMTL(encoding.NewReader(f, l.enc))
	if err != nil {
		return nil, fmt.Errorf("parsing material library %s: %w", path, err)
	}
	l.logSkipped(path, mats.Skipped)
	l.log.Debug("loaded material library",
		zap.String("mtl", path),
		zap.Int("materials", mats.Len()))

	l.cache.Set(key, mats)
	return mats, nil
}

func (l *Loader) loadOBJ(path string) (*formats.OBJ, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening model %s: %w", path, err)
	}
	defer f.Close()

	obj, err := formats.ParseOBJ(encoding.NewReader(f, l.enc))
	if err != nil {
		return nil, fmt.Errorf("parsing model %s: %w", path, err)
	}
	l.logSkipped(path, obj.Skipped)
	l.log.Debug("loaded model",
		zap.String("obj", path),
		zap.Int("vertices", len(obj.Vertices)),
		zap.Int("faces", obj.Groups.FaceCount()),
		zap.Int("groups", obj.Groups.Len()))
	return obj, nil
}

func (l *Loader) logSkipped(path string, skipped []formats.SkippedLine) {
	for _, s := range skipped {
		l.log.Debug("skipped line",
			zap.String("file", path),
			zap.Int("line", s.Line),
			zap.String("directive", s.Directive),
			zap.String("reason", s.Reason))
	}
}

// Cache is a simple in-memory cache for parsed material tables.
type Cache struct {
	data map[string]*formats.MaterialTable
	mu   sync.RWMutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]*formats.MaterialTable),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) (*formats.MaterialTable, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	mats, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return mats, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, mats *formats.MaterialTable) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = mats
}

// Len returns the number of cached tables.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]*formats.MaterialTable)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
