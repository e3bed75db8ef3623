// Package session holds the mutable state of one garden-planning session:
// the loaded photo stack, the brightness threshold, the current bed
// footprint, the exposure grid, and the placements saved so far.
//
// All state changes go through the documented commands (AdjustThreshold,
// FlipFootprint, ResizeFootprint, StartSearch, ...). The session serializes
// its commands with a mutex, so a single session can be driven from an input
// loop on one goroutine while searches finish on others.
//
// Changing the threshold or the photo stack invalidates the exposure grid;
// the next Rebuild recomputes it in full. There is no incremental update
// path, which is an accepted cost of the aggregation model.
package session
