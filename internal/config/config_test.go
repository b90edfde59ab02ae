package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	p := Load(filepath.Join(t.TempDir(), "nope.json"))
	if p != Default() {
		t.Errorf("got %+v, want defaults %+v", p, Default())
	}
}

func TestLoadInvalidFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if p := Load(path); p != Default() {
		t.Errorf("got %+v, want defaults", p)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sandbox.json")
	want := Prefs{
		ShowDebug:   true,
		GridVisible: false,
		Fullscreen:  true,
		TargetFPS:   120,
		ScenePath:   "assets/scene.yaml",
	}
	if err := Save(path, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := Load(path); got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestLoadRepairsZeroFPS(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sandbox.json")
	if err := os.WriteFile(path, []byte(`{"target_fps": 0}`), 0644); err != nil {
		t.Fatal(err)
	}
	if p := Load(path); p.TargetFPS != 60 {
		t.Errorf("target fps = %d, want 60", p.TargetFPS)
	}
}
