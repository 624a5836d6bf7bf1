package main

import (
	"errors"
	"fmt"

	"github.com/milk9111/gridedit/levels"
)

var errEmptyClipboard = errors.New("clipboard holds no modules")

// encodeModules wraps mods in a single-layer map document.
func encodeModules(mods []*levels.Module) ([]byte, error) {
	if len(mods) == 0 {
		return nil, errEmptyClipboard
	}
	m := levels.NewMap()
	m.MapName = "clipboard"
	m.AddModules(mods)
	return m.MarshalDocument()
}

// decodeModules reads modules back out of a clipboard document. Modules from
// every layer are returned in order.
func decodeModules(data []byte) ([]*levels.Module, error) {
	if len(data) == 0 {
		return nil, errEmptyClipboard
	}
	m, err := levels.UnmarshalDocument(data)
	if err != nil {
		return nil, fmt.Errorf("paste: %w", err)
	}
	var out []*levels.Module
	for _, l := range m.Layers() {
		out = append(out, l.Modules()...)
	}
	if len(out) == 0 {
		return nil, errEmptyClipboard
	}
	return out, nil
}
