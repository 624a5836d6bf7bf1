package levels

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed *.json
var LevelsFS embed.FS

// LoadMapFromFS loads one of the sample maps bundled with the editor.
func LoadMapFromFS(name string) (*Map, error) {
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read map: %w", err)
	}
	m, err := UnmarshalDocument(data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal map: %w", err)
	}
	m.MapName = MapNameFromPath(name)
	return m, nil
}
