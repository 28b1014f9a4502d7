// Package assets resolves resource paths against the resource root on disk
// with an optional embedded fallback, and caches what it reads.
package assets

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sync"

	"github.com/Faultbox/motorino/internal/engine/texture"
)

// ErrNotFound is returned when no root or fallback has the requested path.
var ErrNotFound = errors.New("asset not found")

// Manager loads resources by slash-separated relative path such as
// "textures/grass.jpg".
type Manager struct {
	roots    []string
	fallback fs.FS
	cache    *Cache
	mu       sync.RWMutex
}

// NewManager creates a manager searching the given root directories.
func NewManager(roots ...string) *Manager {
	m := &Manager{cache: NewCache()}
	for _, r := range roots {
		m.AddRoot(r)
	}
	return m
}

// ExecutableRoot returns dir joined onto the directory holding the running
// executable. It falls back to dir relative to the working directory.
func ExecutableRoot(dir string) string {
	exe, err := os.Executable()
	if err != nil {
		return dir
	}
	return filepath.Join(filepath.Dir(exe), dir)
}

// AddRoot adds a directory to search.
// Roots are searched in reverse order (last added = highest priority).
func (m *Manager) AddRoot(dir string) {
	m.mu.Lock()
	m.roots = append(m.roots, dir)
	m.mu.Unlock()
}

// SetFallback sets a filesystem consulted after every root, typically
// the embedded default shaders.
func (m *Manager) SetFallback(fsys fs.FS) {
	m.mu.Lock()
	m.fallback = fsys
	m.mu.Unlock()
}

// RealPath returns the on-disk location of a resource.
// Resources only present in the fallback have no real path.
func (m *Manager) RealPath(name string) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.roots) - 1; i >= 0; i-- {
		p := filepath.Join(m.roots[i], filepath.FromSlash(name))
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("%s: %w", name, ErrNotFound)
}

// Load returns the contents of a resource, from cache when possible.
func (m *Manager) Load(name string) ([]byte, error) {
	if data, ok := m.cache.Get(name); ok {
		return data, nil
	}
	if err := checkName(name); err != nil {
		return nil, err
	}

	data, err := m.read(name)
	if err != nil {
		return nil, err
	}
	m.cache.Set(name, data)
	return data, nil
}

func (m *Manager) read(name string) ([]byte, error) {
	if p, err := m.RealPath(name); err == nil {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		return data, nil
	}

	m.mu.RLock()
	fallback := m.fallback
	m.mu.RUnlock()

	if fallback != nil {
		data, err := fs.ReadFile(fallback, name)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading embedded %s: %w", name, err)
		}
	}
	return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
}

// Open returns a reader over a resource.
func (m *Manager) Open(name string) (io.ReadCloser, error) {
	data, err := m.Load(name)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// LoadText returns a resource as a string, for shader sources.
func (m *Manager) LoadText(name string) (string, error) {
	data, err := m.Load(name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// LoadImage decodes an image resource. Decoded images are not cached,
// only their bytes are.
func (m *Manager) LoadImage(name string) (image.Image, error) {
	data, err := m.Load(name)
	if err != nil {
		return nil, err
	}
	return texture.Decode(bytes.NewReader(data), name)
}

// Close drops cached data.
func (m *Manager) Close() {
	m.cache.Clear()
}

// CacheStats exposes the cache hit/miss counters.
func (m *Manager) CacheStats() (hits, misses int) {
	return m.cache.Stats()
}

func checkName(name string) error {
	if name == "" || path.IsAbs(name) || !fs.ValidPath(name) {
		return fmt.Errorf("invalid resource path %q", name)
	}
	return nil
}

// Cache is an in-memory cache of resource bytes keyed by path.
type Cache struct {
	data map[string][]byte
	mu   sync.RWMutex

	hits   int
	misses int
	bytes  int
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item and counts the hit or miss.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item, replacing any previous value.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bytes += len(data) - len(c.data[key])
	c.data[key] = data
}

// Clear empties the cache and resets statistics.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
	c.bytes = 0
}

// Stats returns hit and miss counts.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}

// Size returns the number of cached bytes.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.bytes
}
