package exposure

import "time"

// BuildHooks receives progress events from Build. A host UI can use OnChunk
// to report progress or to yield between chunks of work; hooks never affect
// the grid values.
//
// When Build runs with multiple workers, OnChunk may be called from several
// goroutines and implementations must be safe for concurrent use.
type BuildHooks interface {
	// OnChunk is called after each completed row chunk with the total number
	// of rows aggregated so far.
	OnChunk(rowsDone, totalRows int)

	// OnComplete is called once, after the full grid has been assembled.
	OnComplete(elapsed time.Duration)
}

// NoopBuildHooks is the default no-op implementation of BuildHooks.
type NoopBuildHooks struct{}

func (NoopBuildHooks) OnChunk(int, int)         {}
func (NoopBuildHooks) OnComplete(time.Duration) {}
