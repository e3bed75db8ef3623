package exposure

import (
	"context"
	"math"
	"sync"
	"sync/atomic"
	"time"
)

// Aggregation defaults. The threshold default matches the brightness above
// which a garden scene pixel reads as direct sunlight in typical midday
// photographs.
const (
	DefaultThreshold = 200
	DefaultChunkRows = 32

	MinThreshold = 0
	MaxThreshold = 255
)

// Options tunes how Build partitions its work. The zero value is valid and
// selects sequential, single-pass aggregation with the default chunk size.
type Options struct {
	// ChunkRows is the number of rows aggregated between progress/cancel
	// checks. Values <= 0 select DefaultChunkRows. Chunk size never affects
	// the resulting grid values.
	ChunkRows int

	// Workers is the number of goroutines aggregating row chunks. Values
	// <= 1 run sequentially. Rows are independent, so results are identical
	// for any worker count.
	Workers int

	// Hooks receives progress events. Nil selects NoopBuildHooks.
	Hooks BuildHooks
}

// ClampThreshold normalizes a brightness threshold into [MinThreshold,
// MaxThreshold]. Out-of-range thresholds are clamped rather than rejected.
func ClampThreshold(threshold int) int {
	if threshold < MinThreshold {
		return MinThreshold
	}
	if threshold > MaxThreshold {
		return MaxThreshold
	}
	return threshold
}

// Build aggregates N aligned pixel buffers into one exposure grid.
//
// For each coordinate it counts, in a single pass over all buffers, how many
// buffers have a luma strictly above threshold at that coordinate, then
// rescales the count from [0, N] to [0, 255]:
//
//	value = round(count / N * 255)
//
// Build fails with ErrEmptyInput when buffers is empty and with
// *DimensionMismatchError when the buffers do not all share the dimensions
// of the first one. The threshold is clamped to [0, 255].
//
// Work is partitioned into row chunks. Between chunks Build honors context
// cancellation; a cancelled build returns ctx.Err() and no grid, so callers
// never observe a partially-committed result. Input buffers are never
// mutated, and rebuilding with the same inputs yields an identical grid.
func Build(ctx context.Context, buffers []*Buffer, threshold int, opts Options) (*Grid, error) {
	if len(buffers) == 0 {
		return nil, ErrEmptyInput
	}

	want := buffers[0].Size()
	for i, b := range buffers[1:] {
		if got := b.Size(); got != want {
			return nil, &DimensionMismatchError{Index: i + 1, Want: want, Got: got}
		}
	}

	threshold = ClampThreshold(threshold)

	chunkRows := opts.ChunkRows
	if chunkRows <= 0 {
		chunkRows = DefaultChunkRows
	}
	hooks := opts.Hooks
	if hooks == nil {
		hooks = NoopBuildHooks{}
	}

	width, height := want.X, want.Y
	cells := make([]uint8, width*height)
	thresh := float64(threshold)
	scale := 255.0 / float64(len(buffers))

	// aggregateRows fills cells for rows [y0, y1). Each row is independent
	// of every other row, so chunks may run in any order or concurrently.
	aggregateRows := func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := y * width
			for x := 0; x < width; x++ {
				count := 0
				for _, b := range buffers {
					if b.Luma(x, y) > thresh {
						count++
					}
				}
				cells[row+x] = uint8(math.Round(float64(count) * scale))
			}
		}
	}

	start := time.Now()

	var err error
	if opts.Workers > 1 {
		err = buildParallel(ctx, aggregateRows, height, chunkRows, opts.Workers, hooks)
	} else {
		err = buildSequential(ctx, aggregateRows, height, chunkRows, hooks)
	}
	if err != nil {
		return nil, err
	}

	hooks.OnComplete(time.Since(start))

	return &Grid{
		width:  width,
		height: height,
		cells:  cells,
		images: len(buffers),
	}, nil
}

func buildSequential(ctx context.Context, aggregate func(y0, y1 int), height, chunkRows int, hooks BuildHooks) error {
	for y0 := 0; y0 < height; y0 += chunkRows {
		if err := ctx.Err(); err != nil {
			return err
		}
		y1 := y0 + chunkRows
		if y1 > height {
			y1 = height
		}
		aggregate(y0, y1)
		hooks.OnChunk(y1, height)
	}
	return nil
}

func buildParallel(ctx context.Context, aggregate func(y0, y1 int), height, chunkRows, workers int, hooks BuildHooks) error {
	type span struct{ y0, y1 int }

	jobs := make(chan span)
	var rowsDone atomic.Int64
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for s := range jobs {
				if ctx.Err() != nil {
					continue // drain remaining jobs after cancellation
				}
				aggregate(s.y0, s.y1)
				done := rowsDone.Add(int64(s.y1 - s.y0))
				hooks.OnChunk(int(done), height)
			}
		}()
	}

	for y0 := 0; y0 < height; y0 += chunkRows {
		y1 := y0 + chunkRows
		if y1 > height {
			y1 = height
		}
		jobs <- span{y0, y1}
	}
	close(jobs)
	wg.Wait()

	return ctx.Err()
}
