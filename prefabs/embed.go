package prefabs

import (
	"embed"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

//go:embed *.yaml
var DefinitionsFS embed.FS

// DefaultDir is the on-disk directory consulted before the embedded copies.
const DefaultDir = "prefabs"

// Load reads a definition file, preferring DefaultDir over the embedded copy.
func Load(name string) ([]byte, error) {
	return loadFrom(DefaultDir, name)
}

func loadFrom(dir, name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if dir != "" {
		if data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(clean))); err == nil {
			return data, nil
		}
	}
	return DefinitionsFS.ReadFile(clean)
}

// LoadScript reads a pattern script, preferring DefaultDir/scripts over the
// embedded copy.
func LoadScript(name string) ([]byte, error) {
	return loadScriptFrom(DefaultDir, name)
}

func loadScriptFrom(dir, name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if dir != "" {
		if data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(clean))); err == nil {
			return data, nil
		}
	}
	return ScriptsFS.ReadFile(clean)
}

// definitionFiles lists definition file names from the embedded set and dir,
// without duplicates.
func definitionFiles(dir string) ([]string, error) {
	seen := map[string]bool{}
	embedded, err := fs.Glob(DefinitionsFS, "*.yaml")
	if err != nil {
		return nil, err
	}
	for _, name := range embedded {
		seen[name] = true
	}
	if dir != "" {
		entries, err := os.ReadDir(dir)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		for _, e := range entries {
			if !e.IsDir() && isDefinitionFile(e.Name()) {
				seen[e.Name()] = true
			}
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		s = after
	}
	if filepath.Ext(s) == "" {
		s += ".yaml"
	}
	return s
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		s = after
	}
	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}
	if filepath.Ext(s) == "" {
		s += ".tengo"
	}
	return "scripts/" + s
}

// scriptNames lists pattern script names, without extension, from the
// embedded set and dir/scripts.
func scriptNames(dir string) []string {
	seen := map[string]bool{}
	if embedded, err := fs.Glob(ScriptsFS, "scripts/*.tengo"); err == nil {
		for _, p := range embedded {
			seen[strings.TrimSuffix(filepath.Base(p), ".tengo")] = true
		}
	}
	if dir != "" {
		entries, _ := os.ReadDir(filepath.Join(dir, "scripts"))
		for _, e := range entries {
			if !e.IsDir() && isScriptFile(e.Name()) {
				seen[strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))] = true
			}
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
