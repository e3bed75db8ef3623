package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestLoad_MissingFileIsAnError(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sunmap.toml")
	body := `
threshold = 180
workers = 4
bed_width_feet = 6.0
export_style = "gray"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Threshold != 180 {
		t.Errorf("Threshold: got %d, want 180", cfg.Threshold)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers: got %d, want 4", cfg.Workers)
	}
	if cfg.BedWidthFeet != 6 {
		t.Errorf("BedWidthFeet: got %v, want 6", cfg.BedWidthFeet)
	}
	if cfg.ExportStyle != "gray" {
		t.Errorf("ExportStyle: got %q, want gray", cfg.ExportStyle)
	}

	// Untouched fields keep their defaults.
	if cfg.BedHeightFeet != 4 {
		t.Errorf("BedHeightFeet: got %v, want default 4", cfg.BedHeightFeet)
	}
	if cfg.ChunkRows != Default().ChunkRows {
		t.Errorf("ChunkRows: got %d, want default %d", cfg.ChunkRows, Default().ChunkRows)
	}
}

func TestLoad_NormalizesOutOfRangeValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sunmap.toml")
	body := `
threshold = 900
chunk_rows = -5
workers = 0
bed_width_feet = -2.0
export_scale = 0.0
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Threshold != 255 {
		t.Errorf("Threshold: got %d, want clamped 255", cfg.Threshold)
	}
	if cfg.ChunkRows <= 0 || cfg.Workers <= 0 {
		t.Errorf("chunking: got rows=%d workers=%d, want positive", cfg.ChunkRows, cfg.Workers)
	}
	if cfg.BedWidthFeet != 8 {
		t.Errorf("BedWidthFeet: got %v, want default 8", cfg.BedWidthFeet)
	}
	if cfg.ExportScale != 1 {
		t.Errorf("ExportScale: got %v, want 1", cfg.ExportScale)
	}
}
