// Package exposure turns a stack of aligned time-lapse photographs into a
// per-pixel sun-exposure grid.
//
// The aggregation model is simple: given N equally-sized pixel buffers and a
// brightness threshold, a pixel is "sunny" in one buffer if its perceptual
// luma (ITU-R BT.601 weights: 0.299*R + 0.587*G + 0.114*B) is strictly above
// the threshold. Each cell of the resulting Grid holds the sunny count for
// that coordinate, rescaled from [0, N] to grayscale [0, 255].
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left corner:
// X increases rightward, Y increases downward. The Grid shares the exact
// coordinate system and dimensions of the input buffers.
//
// # Determinism
//
// Build is pure: it never mutates its inputs, and the same buffers and
// threshold always produce the same grid, regardless of chunk size or worker
// count. Chunking and parallelism are performance knobs only.
//
// # Thread Safety
//
// Buffer and Grid are immutable after construction and safe to share across
// goroutines without synchronization.
package exposure
