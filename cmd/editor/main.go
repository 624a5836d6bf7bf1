package main

import (
	"errors"
	"flag"
	"io/fs"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/gridedit/autosave"
	"github.com/milk9111/gridedit/config"
	"github.com/milk9111/gridedit/editor"
	"github.com/milk9111/gridedit/levels"
	"github.com/milk9111/gridedit/prefabs"
	"golang.design/x/clipboard"
)

// loadInitialMap resolves -map against the disk first and then the bundled
// sample maps. A missing file starts an empty map that will save there.
func loadInitialMap(path string) (*levels.Map, error) {
	if path == "" {
		return levels.NewMap(), nil
	}
	m, err := levels.LoadFile(path)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	if m, embErr := levels.LoadMapFromFS(filepath.Base(path)); embErr == nil {
		return m, nil
	}
	m = levels.NewMap()
	m.FileName = path
	m.MapName = levels.MapNameFromPath(path)
	return m, nil
}

func main() {
	configPath := flag.String("config", "", "YAML config file (defaults to $"+config.EnvConfig+")")
	mapPath := flag.String("map", "", "Map file to open; bundled sample names such as sample.json also work")
	recoverLatest := flag.Bool("recover", false, "Restore the most recent autosave snapshot")
	flag.Parse()

	log.Println("Editor starting...")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	m, err := loadInitialMap(*mapPath)
	if err != nil {
		log.Fatalf("Failed to load map %s: %v", *mapPath, err)
	}
	session := editor.NewSession(m)
	session.SetZoom(cfg.Editor.GetZoom())

	prefabDir := cfg.Paths.GetPrefabDir()
	catalog, err := prefabs.LoadCatalog(prefabDir)
	if err != nil {
		log.Fatalf("Failed to load module definitions: %v", err)
	}
	log.Printf("Loaded %d module definitions", catalog.Len())

	game := NewEditorGame(session, catalog, cfg.Paths.GetMapsDir())

	if err := clipboard.Init(); err != nil {
		log.Printf("Clipboard unavailable: %v", err)
	} else {
		game.clipboardOK = true
	}

	if !cfg.Autosave.Disabled {
		store, err := autosave.Open(cfg.Autosave.GetDir())
		if err != nil {
			log.Printf("Autosave disabled: %v", err)
		} else {
			defer store.Close()
			game.journal = autosave.NewJournal(store, cfg.Autosave.GetInterval(), cfg.Autosave.GetRetention())
			if *recoverLatest {
				recoverSnapshot(store, session)
			}
		}
	}

	watcher, err := prefabs.NewWatcher(prefabDir, filepath.Join(prefabDir, "scripts"))
	if err != nil {
		log.Printf("Definition hot reload disabled: %v", err)
	} else {
		defer watcher.Close()
		game.watcher = watcher
	}

	w, h := cfg.Editor.GetWindowSize()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Grid Editor")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(game); err != nil {
		log.Printf("Editor exited: %v", err)
	}
}

func recoverSnapshot(store *autosave.Store, session *editor.Session) {
	snap, err := store.Latest()
	if err != nil {
		log.Printf("Nothing to recover: %v", err)
		return
	}
	m, err := snap.Map()
	if err != nil {
		log.Printf("Autosave %s unreadable: %v", snap.Name, err)
		return
	}
	session.Replace(m)
	log.Printf("Recovered %s from %s", snap.Name, snap.SavedAt.Format("2006-01-02 15:04:05"))
}
