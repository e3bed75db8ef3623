// Package stack loads time-lapse photographs from disk and turns them into
// exposure.Buffer values ready for aggregation.
//
// The loader is the collaborator that decides what a usable photo stack is:
// files that fail to decode are skipped and reported rather than aborting
// the whole load, and it is up to the caller to decide whether a partial
// stack is acceptable before building an exposure grid. Dimension checks
// are not performed here; the aggregator rejects mismatched buffers itself.
//
// A Cache keeps decoded buffers in memory keyed by path, so re-running a
// build after a threshold change does not touch the disk again. It is safe
// for concurrent use.
package stack
