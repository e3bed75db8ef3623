package exposure

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"sync"
	"testing"
	"time"
)

// darkAndBright returns a stack with dark of the buffers well below the
// default threshold and bright well above it.
func darkAndBright(width, height, dark, bright int) []*Buffer {
	buffers := make([]*Buffer, 0, dark+bright)
	for i := 0; i < dark; i++ {
		buffers = append(buffers, newUniformBuffer(width, height, color.RGBA{30, 30, 30, 255}))
	}
	for i := 0; i < bright; i++ {
		buffers = append(buffers, newUniformBuffer(width, height, color.RGBA{240, 240, 240, 255}))
	}
	return buffers
}

func TestBuild_AllBelowThreshold(t *testing.T) {
	buffers := darkAndBright(8, 6, 5, 0)

	grid, err := Build(context.Background(), buffers, DefaultThreshold, Options{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	for _, v := range grid.Pixels() {
		if v != 0 {
			t.Fatalf("cell value: got %d, want 0", v)
		}
	}
}

func TestBuild_AllAboveThreshold(t *testing.T) {
	buffers := darkAndBright(8, 6, 0, 5)

	grid, err := Build(context.Background(), buffers, DefaultThreshold, Options{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	for _, v := range grid.Pixels() {
		if v != 255 {
			t.Fatalf("cell value: got %d, want 255", v)
		}
	}
}

func TestBuild_CountRescale(t *testing.T) {
	// 45 of 90 buffers sunny: round(45/90*255) = round(127.5) = 128.
	buffers := darkAndBright(3, 3, 45, 45)

	grid, err := Build(context.Background(), buffers, DefaultThreshold, Options{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if got := grid.At(1, 1); got != 128 {
		t.Errorf("cell value for 45/90 sunny: got %d, want 128", got)
	}
	if grid.Images() != 90 {
		t.Errorf("Images: got %d, want 90", grid.Images())
	}
}

func TestBuild_ThresholdStrict(t *testing.T) {
	// A pixel whose luma equals the threshold exactly is not sunny.
	buffers := []*Buffer{newUniformBuffer(2, 2, color.RGBA{200, 200, 200, 255})}

	tests := []struct {
		threshold int
		want      uint8
	}{
		{199, 255}, // luma 200 > 199: sunny
		{200, 0},   // luma 200 is not > 200
		{201, 0},
	}

	for _, tt := range tests {
		grid, err := Build(context.Background(), buffers, tt.threshold, Options{})
		if err != nil {
			t.Fatalf("Build(threshold=%d) failed: %v", tt.threshold, err)
		}
		if got := grid.At(0, 0); got != tt.want {
			t.Errorf("threshold %d: got %d, want %d", tt.threshold, got, tt.want)
		}
	}
}

func TestBuild_ThresholdMonotonic(t *testing.T) {
	// Raising the threshold never increases any cell value.
	buffers := []*Buffer{
		newUniformBuffer(4, 4, color.RGBA{60, 60, 60, 255}),
		newUniformBuffer(4, 4, color.RGBA{120, 120, 120, 255}),
		newUniformBuffer(4, 4, color.RGBA{180, 180, 180, 255}),
		newUniformBuffer(4, 4, color.RGBA{240, 240, 240, 255}),
	}

	prev := []uint8(nil)
	for threshold := 0; threshold <= 255; threshold += 15 {
		grid, err := Build(context.Background(), buffers, threshold, Options{})
		if err != nil {
			t.Fatalf("Build(threshold=%d) failed: %v", threshold, err)
		}
		cells := grid.Pixels()
		if prev != nil {
			for i := range cells {
				if cells[i] > prev[i] {
					t.Fatalf("threshold %d: cell %d rose from %d to %d", threshold, i, prev[i], cells[i])
				}
			}
		}
		prev = cells
	}
}

func TestBuild_Deterministic(t *testing.T) {
	buffers := darkAndBright(16, 16, 3, 4)

	first, err := Build(context.Background(), buffers, DefaultThreshold, Options{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	// The same inputs must produce identical grids for any chunking or
	// worker configuration.
	configs := []Options{
		{},
		{ChunkRows: 1},
		{ChunkRows: 7},
		{ChunkRows: 64},
		{Workers: 2, ChunkRows: 3},
		{Workers: 8, ChunkRows: 5},
	}

	for _, opts := range configs {
		grid, err := Build(context.Background(), buffers, DefaultThreshold, opts)
		if err != nil {
			t.Fatalf("Build(%+v) failed: %v", opts, err)
		}
		if !bytes.Equal(grid.Pixels(), first.Pixels()) {
			t.Errorf("Build(%+v) produced a different grid", opts)
		}
	}
}

func TestBuild_EmptyInput(t *testing.T) {
	_, err := Build(context.Background(), nil, DefaultThreshold, Options{})
	if !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("error: got %v, want ErrEmptyInput", err)
	}
}

func TestBuild_DimensionMismatch(t *testing.T) {
	buffers := []*Buffer{
		newUniformBuffer(8, 8, color.RGBA{30, 30, 30, 255}),
		newUniformBuffer(8, 8, color.RGBA{30, 30, 30, 255}),
		newUniformBuffer(8, 9, color.RGBA{30, 30, 30, 255}),
	}

	_, err := Build(context.Background(), buffers, DefaultThreshold, Options{})

	var mismatch *DimensionMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("error: got %v, want *DimensionMismatchError", err)
	}
	if mismatch.Index != 2 {
		t.Errorf("Index: got %d, want 2", mismatch.Index)
	}
	if mismatch.Want.X != 8 || mismatch.Want.Y != 8 || mismatch.Got.Y != 9 {
		t.Errorf("dimensions: got want=%v got=%v", mismatch.Want, mismatch.Got)
	}
}

func TestBuild_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	buffers := darkAndBright(32, 32, 2, 2)

	grid, err := Build(ctx, buffers, DefaultThreshold, Options{ChunkRows: 4})
	if err == nil {
		t.Fatal("expected error from cancelled build")
	}
	if grid != nil {
		t.Error("cancelled build must not return a grid")
	}
}

func TestBuild_CancelledParallel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	buffers := darkAndBright(32, 32, 2, 2)

	grid, err := Build(ctx, buffers, DefaultThreshold, Options{ChunkRows: 4, Workers: 4})
	if err == nil {
		t.Fatal("expected error from cancelled build")
	}
	if grid != nil {
		t.Error("cancelled build must not return a grid")
	}
}

// recordingHooks counts chunk callbacks; safe for concurrent use.
type recordingHooks struct {
	mu        sync.Mutex
	chunks    int
	lastTotal int
	finalDone int
	completed bool
}

func (h *recordingHooks) OnChunk(rowsDone, totalRows int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.chunks++
	h.lastTotal = totalRows
	if rowsDone > h.finalDone {
		h.finalDone = rowsDone
	}
}

func (h *recordingHooks) OnComplete(time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.completed = true
}

func TestBuild_ChunkHooks(t *testing.T) {
	buffers := darkAndBright(10, 25, 1, 1)
	hooks := &recordingHooks{}

	_, err := Build(context.Background(), buffers, DefaultThreshold, Options{ChunkRows: 10, Hooks: hooks})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	// 25 rows in chunks of 10: three chunks (10, 10, 5).
	if hooks.chunks != 3 {
		t.Errorf("chunks: got %d, want 3", hooks.chunks)
	}
	if hooks.finalDone != 25 || hooks.lastTotal != 25 {
		t.Errorf("progress: got %d/%d, want 25/25", hooks.finalDone, hooks.lastTotal)
	}
	if !hooks.completed {
		t.Error("OnComplete was not called")
	}
}

func TestClampThreshold(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{-10, 0},
		{0, 0},
		{128, 128},
		{255, 255},
		{300, 255},
	}

	for _, tt := range tests {
		if got := ClampThreshold(tt.in); got != tt.want {
			t.Errorf("ClampThreshold(%d): got %d, want %d", tt.in, got, tt.want)
		}
	}
}
