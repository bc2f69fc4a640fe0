package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("got %+v, want defaults", cfg)
	}
}

func TestLoadPartialFileLayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "texelpad.json")
	if err := os.WriteFile(path, []byte(`{"font_size_px": 48, "warm_cache": false}`), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.FontSizePx != 48 {
		t.Fatalf("font size = %d, want 48", cfg.FontSizePx)
	}
	if cfg.WarmCache {
		t.Fatal("explicit false was overwritten")
	}
	if cfg.CacheCapacity != 1000 || cfg.BridgeTimeoutMS != 250 {
		t.Fatalf("unset fields not defaulted: %+v", cfg)
	}
	if cfg.Theme.Background != "#000000" {
		t.Fatalf("theme not defaulted: %+v", cfg.Theme)
	}
}

func TestLoadMalformedFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "texelpad.json")
	if err := os.WriteFile(path, []byte(`{"font_size_px": `), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("malformed config must not load silently")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "dir", "texelpad.json")
	want := DefaultConfig()
	want.FontSizePx = 24
	want.Theme.Foreground = "#aabbcc"

	if err := Save(path, want); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestBridgeTimeout(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.BridgeTimeout() != 250*time.Millisecond {
		t.Fatalf("timeout = %v", cfg.BridgeTimeout())
	}
}
