// Package cache stores lint results keyed by content and config hashes
// so unchanged files are not re-linted. The on-disk format is private to
// this package; a corrupt or missing cache file is treated as empty,
// never as an error.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mdlint/mdlint/internal/lint"
)

// DefaultLocation is the conventional cache file name, relative to the
// working directory.
const DefaultLocation = ".mdlintcache"

type entry struct {
	Hash   string      `json:"hash"`
	Result lint.Result `json:"result"`
}

// Cache is a flat-file lint result cache. Not safe for concurrent use.
type Cache struct {
	path    string
	entries map[string]entry
	dirty   bool
}

// Open loads the cache at path, returning an empty cache when the file
// is missing or unreadable.
func Open(path string) *Cache {
	c := &Cache{path: path, entries: map[string]entry{}}
	data, err := os.ReadFile(path)
	if err != nil {
		return c
	}
	if err := json.Unmarshal(data, &c.entries); err != nil {
		c.entries = map[string]entry{}
	}
	return c
}

// Key hashes file content together with the config fingerprint; any
// change to either invalidates the entry.
func Key(content []byte, configFingerprint string) string {
	h := sha256.New()
	h.Write(content)
	h.Write([]byte{0})
	h.Write([]byte(configFingerprint))
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached result for file when its stored hash matches.
func (c *Cache) Get(file, hash string) (lint.Result, bool) {
	abs, err := filepath.Abs(file)
	if err != nil {
		abs = file
	}
	e, ok := c.entries[abs]
	if !ok || e.Hash != hash {
		return lint.Result{}, false
	}
	return e.Result, true
}

// Put stores the result for file under the given hash.
func (c *Cache) Put(file, hash string, res lint.Result) {
	abs, err := filepath.Abs(file)
	if err != nil {
		abs = file
	}
	c.entries[abs] = entry{Hash: hash, Result: res}
	c.dirty = true
}

// Save writes the cache back to disk when it changed.
func (c *Cache) Save() error {
	if !c.dirty {
		return nil
	}
	data, err := json.Marshal(c.entries)
	if err != nil {
		return fmt.Errorf("encoding cache: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("writing cache %q: %w", c.path, err)
	}
	c.dirty = false
	return nil
}
