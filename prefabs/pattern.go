package prefabs

import (
	"context"
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/gridedit/geom"
	"github.com/milk9111/gridedit/levels"
)

// Placement is one module produced by a pattern script, relative to the
// pattern origin. Turns counts clockwise quarter turns.
type Placement struct {
	Definition string
	X, Y       int
	Turns      int
}

// RunPattern runs the named script from the embedded scripts (or DefaultDir
// overrides). The script receives params as the global `params` and must
// leave its result in a global array `placements` of maps with keys
// definition, x, y and optionally turns.
func RunPattern(ctx context.Context, name string, params map[string]any) ([]Placement, error) {
	return runPatternFrom(ctx, DefaultDir, name, params)
}

func runPatternFrom(ctx context.Context, dir, name string, params map[string]any) ([]Placement, error) {
	src, err := loadScriptFrom(dir, name)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load script %s: %w", name, err)
	}
	if params == nil {
		params = map[string]any{}
	}

	script := tengo.NewScript(src)
	if err := script.Add("params", params); err != nil {
		return nil, fmt.Errorf("prefabs: script %s params: %w", name, err)
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("prefabs: compile %s: %w", name, err)
	}
	if err := compiled.RunContext(ctx); err != nil {
		return nil, fmt.Errorf("prefabs: run %s: %w", name, err)
	}
	if !compiled.IsDefined("placements") {
		return nil, fmt.Errorf("prefabs: script %s did not define placements", name)
	}

	raw, ok := compiled.Get("placements").Value().([]any)
	if !ok {
		return nil, fmt.Errorf("prefabs: script %s: placements must be an array", name)
	}
	out := make([]Placement, 0, len(raw))
	for i, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("prefabs: script %s: placement %d is not a map", name, i)
		}
		p := Placement{
			Definition: strings.TrimSpace(fmt.Sprint(m["definition"])),
			X:          toInt(m["x"]),
			Y:          toInt(m["y"]),
			Turns:      toInt(m["turns"]),
		}
		if m["definition"] == nil || p.Definition == "" {
			return nil, fmt.Errorf("prefabs: script %s: placement %d has no definition", name, i)
		}
		out = append(out, p)
	}
	return out, nil
}

func toInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case float64:
		return int(n)
	default:
		return 0
	}
}

// Pattern runs a script and resolves its placements against the catalog,
// producing modules ready to be staged in the editor hand.
func (c *Catalog) Pattern(ctx context.Context, name string, params map[string]any) ([]*levels.Module, error) {
	placements, err := runPatternFrom(ctx, c.dir, name, params)
	if err != nil {
		return nil, err
	}
	mods := make([]*levels.Module, 0, len(placements))
	for _, p := range placements {
		def, err := c.Get(p.Definition)
		if err != nil {
			return nil, fmt.Errorf("prefabs: pattern %s: %w", name, err)
		}
		mod, err := def.NewModule(geom.TileCoord{X: p.X, Y: p.Y})
		if err != nil {
			return nil, err
		}
		for i := 0; i < ((p.Turns%4)+4)%4; i++ {
			mod.RotateCW()
		}
		mods = append(mods, mod)
	}
	return mods, nil
}
