package prefabs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Catalog is the palette of definitions available to the editor. Entries on
// disk shadow the embedded ones and can be reloaded while the editor runs.
type Catalog struct {
	dir string

	mu     sync.RWMutex
	defs   map[string]Definition
	byFile map[string]string
}

// LoadCatalog loads every definition from the embedded set and dir.
func LoadCatalog(dir string) (*Catalog, error) {
	files, err := definitionFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("prefabs: list %s: %w", dir, err)
	}
	c := &Catalog{dir: dir, defs: map[string]Definition{}, byFile: map[string]string{}}
	for _, file := range files {
		data, err := loadFrom(dir, file)
		if err != nil {
			return nil, fmt.Errorf("prefabs: load %s: %w", file, err)
		}
		def, err := parseDefinition(file, data)
		if err != nil {
			return nil, err
		}
		c.put(file, def)
	}
	return c, nil
}

func (c *Catalog) Dir() string {
	return c.dir
}

func (c *Catalog) put(file string, def Definition) {
	if old, ok := c.byFile[file]; ok {
		delete(c.defs, old)
	}
	c.defs[def.Name] = def
	c.byFile[file] = def.Name
}

func (c *Catalog) Get(name string) (Definition, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	def, ok := c.defs[name]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q", ErrUnknownDefinition, name)
	}
	return def, nil
}

// Names returns the definition names in sorted order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.defs))
	for name := range c.defs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Patterns lists the pattern scripts available to Pattern.
func (c *Catalog) Patterns() []string {
	return scriptNames(c.dir)
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.defs)
}

// Reload re-reads the definition file at path. A removed file falls back to
// the embedded copy, or drops the entry when there is none. A file that fails
// to parse leaves the catalog unchanged.
func (c *Catalog) Reload(path string) (Definition, error) {
	file := filepath.Base(path)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		data, err = DefinitionsFS.ReadFile(file)
		if errors.Is(err, fs.ErrNotExist) {
			c.mu.Lock()
			if name, ok := c.byFile[file]; ok {
				delete(c.defs, name)
				delete(c.byFile, file)
			}
			c.mu.Unlock()
			return Definition{}, fmt.Errorf("%w: %s removed", ErrUnknownDefinition, file)
		}
	}
	if err != nil {
		return Definition{}, fmt.Errorf("prefabs: reload %s: %w", path, err)
	}
	def, err := parseDefinition(file, data)
	if err != nil {
		return Definition{}, err
	}
	c.mu.Lock()
	c.put(file, def)
	c.mu.Unlock()
	return def, nil
}
