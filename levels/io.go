package levels

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/milk9111/gridedit/geom"
)

// ErrMalformed wraps every failure to decode or validate a map document.
var ErrMalformed = errors.New("levels: malformed map document")

const documentVersion = 1

type mapDocument struct {
	Version int              `json:"version"`
	Name    string           `json:"name,omitempty"`
	Layers  *[]layerDocument `json:"layers"`
}

type layerDocument struct {
	Name        string           `json:"name"`
	Visible     bool             `json:"visible"`
	ShowShadows bool             `json:"show_shadows"`
	Modules     []moduleDocument `json:"modules"`
}

// moduleDocument persists Selected and ToBeDeleted verbatim. InHand is not
// stored: hand modules never belong to a layer.
type moduleDocument struct {
	ID          string       `json:"id,omitempty"`
	Definition  string       `json:"definition"`
	X           int          `json:"x"`
	Y           int          `json:"y"`
	Width       int          `json:"width"`
	Height      int          `json:"height"`
	Facing      *Orientation `json:"facing,omitempty"`
	Selected    bool         `json:"selected,omitempty"`
	ToBeDeleted bool         `json:"to_be_deleted,omitempty"`
}

// MarshalDocument encodes the map as an indented JSON document.
func (m *Map) MarshalDocument() ([]byte, error) {
	layers := make([]layerDocument, len(m.layers))
	for i, l := range m.layers {
		ld := layerDocument{
			Name:        l.Name,
			Visible:     l.Visible,
			ShowShadows: l.ShowShadows,
			Modules:     make([]moduleDocument, len(l.modules)),
		}
		for j, mod := range l.modules {
			facing := mod.Facing
			ld.Modules[j] = moduleDocument{
				ID:          mod.ID,
				Definition:  mod.Definition,
				X:           mod.Position.X,
				Y:           mod.Position.Y,
				Width:       mod.Width,
				Height:      mod.Height,
				Facing:      &facing,
				Selected:    mod.Selected,
				ToBeDeleted: mod.ToBeDeleted,
			}
		}
		layers[i] = ld
	}
	doc := mapDocument{Version: documentVersion, Name: m.MapName, Layers: &layers}
	return json.MarshalIndent(doc, "", "  ")
}

// UnmarshalDocument decodes and validates a document into a new map. The
// file metadata of the result is left empty.
func UnmarshalDocument(data []byte) (*Map, error) {
	var doc mapDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if doc.Layers == nil {
		return nil, fmt.Errorf("%w: missing layers", ErrMalformed)
	}
	if doc.Version > documentVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrMalformed, doc.Version)
	}

	out := NewMap()
	if doc.Name != "" {
		out.MapName = doc.Name
	}
	for li, ld := range *doc.Layers {
		l := &Layer{Name: ld.Name, Visible: ld.Visible, ShowShadows: ld.ShowShadows}
		if l.Name == "" {
			l.Name = defaultLayerName(li)
		}
		for mi, md := range ld.Modules {
			mod, err := NewModule(md.Definition, geom.TileCoord{X: md.X, Y: md.Y}, md.Width, md.Height)
			if err != nil {
				return nil, fmt.Errorf("%w: layer %d module %d: %v", ErrMalformed, li, mi, err)
			}
			if md.Facing != nil {
				if !md.Facing.Valid() {
					return nil, fmt.Errorf("%w: layer %d module %d: facing %v is not a permutation", ErrMalformed, li, mi, *md.Facing)
				}
				mod.Facing = *md.Facing
			}
			if md.ID != "" {
				mod.ID = md.ID
			}
			mod.Selected = md.Selected
			mod.ToBeDeleted = md.ToBeDeleted
			l.modules = append(l.modules, mod)
		}
		out.layers = append(out.layers, l)
	}
	return out, nil
}

// Save writes the map to path. Paths ending in ".gz" are gzip-compressed.
// The file is replaced atomically; on failure the map is left untouched.
func (m *Map) Save(path string) error {
	if path == "" {
		return fmt.Errorf("levels: empty save path")
	}
	data, err := m.MarshalDocument()
	if err != nil {
		return fmt.Errorf("levels: encode %s: %w", path, err)
	}
	if isCompressed(path) {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		if _, err := zw.Write(data); err != nil {
			return fmt.Errorf("levels: compress %s: %w", path, err)
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("levels: compress %s: %w", path, err)
		}
		data = buf.Bytes()
	}
	if err := writeFileAtomic(path, data); err != nil {
		return fmt.Errorf("levels: write %s: %w", path, err)
	}
	m.FileName = path
	m.MapName = MapNameFromPath(path)
	m.dirty = false
	return nil
}

// Load replaces the map with the document at path. Nothing changes unless the
// whole document reads and validates.
func (m *Map) Load(path string) error {
	loaded, err := LoadFile(path)
	if err != nil {
		return err
	}
	*m = *loaded
	return nil
}

// LoadFile reads a map document from disk.
func LoadFile(path string) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("levels: open %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if isCompressed(path) {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
		}
		defer zr.Close()
		r = zr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", path, err)
	}
	loaded, err := UnmarshalDocument(data)
	if err != nil {
		return nil, fmt.Errorf("levels: load %s: %w", path, err)
	}
	loaded.FileName = path
	loaded.MapName = MapNameFromPath(path)
	return loaded, nil
}

// MapNameFromPath derives a map name from a file path: the base name without
// directory or extension ("maps/keep.json.gz" -> "keep").
func MapNameFromPath(path string) string {
	base := filepath.Base(path)
	if isCompressed(base) {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func isCompressed(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".gz")
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".gridedit-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
