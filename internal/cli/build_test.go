package cli

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	charmlog "github.com/charmbracelet/log"

	"github.com/greenshed/sunmap/internal/exposure"
)

// writePhoto writes a small photograph with the right half bright.
func writePhoto(t *testing.T, dir, name string) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			v := uint8(30)
			if x >= 4 {
				v = 240
			}
			img.Set(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}

	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("failed to create photo: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode photo: %v", err)
	}
}

// quietContext returns a context carrying a logger that discards output.
func quietContext(t *testing.T) context.Context {
	t.Helper()
	return withLogger(context.Background(), newLogger(io.Discard, charmlog.ErrorLevel))
}

func TestAggregateDir(t *testing.T) {
	dir := t.TempDir()
	writePhoto(t, dir, "a.png")
	writePhoto(t, dir, "b.png")

	grid, err := aggregateDir(quietContext(t), dir, exposure.DefaultThreshold, exposure.Options{})
	if err != nil {
		t.Fatalf("aggregateDir failed: %v", err)
	}

	if grid.Width() != 8 || grid.Height() != 6 {
		t.Errorf("grid: got %dx%d, want 8x6", grid.Width(), grid.Height())
	}
	if got := grid.At(0, 0); got != 0 {
		t.Errorf("dark cell: got %d, want 0", got)
	}
	if got := grid.At(7, 5); got != 255 {
		t.Errorf("bright cell: got %d, want 255", got)
	}
}

func TestAggregateDir_EmptyDir(t *testing.T) {
	if _, err := aggregateDir(quietContext(t), t.TempDir(), exposure.DefaultThreshold, exposure.Options{}); err == nil {
		t.Error("expected error for directory without photographs")
	}
}

func TestRunBuild_WritesPNG(t *testing.T) {
	dir := t.TempDir()
	writePhoto(t, dir, "a.png")

	out := filepath.Join(t.TempDir(), "map.png")
	opts := &buildOpts{
		output:    out,
		threshold: exposure.DefaultThreshold,
		style:     "heat",
		scale:     1,
		legend:    true,
		workers:   1,
		chunkRows: exposure.DefaultChunkRows,
	}

	if err := runBuild(quietContext(t), dir, opts); err != nil {
		t.Fatalf("runBuild failed: %v", err)
	}

	stat, err := os.Stat(out)
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	if stat.Size() == 0 {
		t.Error("output file is empty")
	}
}
