package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// DefaultPath is the preferences file path, relative to the process working
// directory.
const DefaultPath = "config/sandbox.json"

// Prefs holds sandbox preferences (overlays, grid, window mode, scene file).
// Persisted across runs; scene *state* is never saved, only these knobs.
type Prefs struct {
	ShowDebug   bool   `json:"show_debug"`
	GridVisible bool   `json:"grid_visible"`
	Fullscreen  bool   `json:"fullscreen"`
	TargetFPS   int    `json:"target_fps"`
	ScenePath   string `json:"scene_path,omitempty"`
}

// Default returns default preferences (overlay off, grid on, windowed,
// 60 FPS).
func Default() Prefs {
	return Prefs{
		ShowDebug:   false,
		GridVisible: true,
		Fullscreen:  false,
		TargetFPS:   60,
	}
}

// Load reads preferences from path (DefaultPath when empty). If the file is
// missing or invalid, returns Default() and does not create a file.
func Load(path string) Prefs {
	if path == "" {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Default()
	}
	var p Prefs
	if err := json.Unmarshal(data, &p); err != nil {
		return Default()
	}
	if p.TargetFPS <= 0 {
		p.TargetFPS = 60
	}
	return p
}

// Save writes preferences to path (DefaultPath when empty), creating the
// config directory if needed.
func Save(path string, p Prefs) error {
	if path == "" {
		path = DefaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
