package avatar

import (
	"os"
	"path/filepath"
)

// Cache persists rendered avatars on disk, one file per distinct letter.
// All users whose username starts with the same letter share one image.
// Writes overwrite unconditionally; the key space is bounded by the
// alphabet, so there is no eviction.
type Cache struct {
	gen *Generator
	dir string
}

func NewCache(gen *Generator, dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{gen: gen, dir: dir}, nil
}

// Path returns the on-disk location for a letter's avatar.
func (c *Cache) Path(letter rune) string {
	return filepath.Join(c.dir, string(letter)+".png")
}

// Materialize renders the letter and writes it to the cache, returning
// the PNG bytes.
func (c *Cache) Materialize(letter rune) ([]byte, error) {
	b, err := c.gen.Render(letter)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(c.Path(letter), b, 0o644); err != nil {
		return nil, err
	}
	return b, nil
}

// Load reads the cached bytes for a letter, rendering and caching them
// on a miss.
func (c *Cache) Load(letter rune) ([]byte, error) {
	b, err := os.ReadFile(c.Path(letter))
	if err == nil {
		return b, nil
	}
	if !os.IsNotExist(err) {
		return nil, err
	}
	return c.Materialize(letter)
}
