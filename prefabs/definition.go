package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/milk9111/gridedit/geom"
	"github.com/milk9111/gridedit/levels"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

var ErrUnknownDefinition = errors.New("prefabs: unknown definition")

// Definition describes a reusable module: its footprint before any rotation
// and the edges that open onto neighbours.
type Definition struct {
	Name     string        `yaml:"name"`
	Category string        `yaml:"category"`
	Width    int           `yaml:"width"`
	Height   int           `yaml:"height"`
	Openings []levels.Edge `yaml:"openings"`
	Color    *YAMLColor    `yaml:"color"`
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadDefinition loads and validates a single definition by name.
func LoadDefinition(name string) (Definition, error) {
	def, err := LoadSpec[Definition](name)
	if err != nil {
		return Definition{}, err
	}
	return def.normalize(name)
}

func parseDefinition(file string, data []byte) (Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return Definition{}, fmt.Errorf("prefabs: unmarshal %s: %w", file, err)
	}
	return def.normalize(file)
}

// normalize fills the name from the file stem and rejects empty footprints.
func (d Definition) normalize(file string) (Definition, error) {
	if d.Name == "" {
		base := filepath.Base(file)
		d.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if d.Width < 1 || d.Height < 1 {
		return Definition{}, fmt.Errorf("prefabs: %s: %w: %dx%d", file, levels.ErrInvalidSize, d.Width, d.Height)
	}
	return d, nil
}

// NewModule places an upright instance of the definition at pos.
func (d Definition) NewModule(pos geom.TileCoord) (*levels.Module, error) {
	return levels.NewModule(d.Name, pos, d.Width, d.Height)
}

// OpensTo reports whether mod, an instance of d, has an opening facing dir.
func (d Definition) OpensTo(mod *levels.Module, dir levels.Edge) bool {
	return mod.HasOpening(dir, d.Openings)
}

// RGBA returns the definition's fill colour, or grey when none is set.
func (d Definition) RGBA() color.Color {
	if d.Color == nil || d.Color.Color == nil {
		return colornames.Gray
	}
	return d.Color.Color
}

// YAMLColor accepts "#rrggbb", "#rrggbbaa" or an SVG colour name.
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	if named, ok := colornames.Map[strings.ToLower(value.Value)]; ok {
		c.Color = named
		return nil
	}

	s := strings.TrimPrefix(value.Value, "#")
	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	var rgba [4]uint8
	rgba[3] = 255
	for i := 0; i < len(s)/2; i++ {
		v, err := parse(i * 2)
		if err != nil {
			return fmt.Errorf("invalid color format: %s", value.Value)
		}
		rgba[i] = v
	}

	c.Color = color.NRGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}
	return nil
}
