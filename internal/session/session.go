package session

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/greenshed/sunmap/internal/exposure"
	"github.com/greenshed/sunmap/internal/placement"
)

// ThresholdStep is the increment applied by AdjustThreshold per step.
const ThresholdStep = 10

// ErrNoGrid is returned by commands that need an exposure grid before any
// build has completed.
var ErrNoGrid = errors.New("no exposure grid: load a photo stack and rebuild first")

// Session is the explicit state object for one planning session. Create it
// with New, drive it through its command methods, and discard it when the
// session ends.
type Session struct {
	id string

	mu         sync.Mutex
	buffers    []*exposure.Buffer
	threshold  int
	footWidth  int
	footHeight int
	grid       *exposure.Grid
	gridGen    uint64 // bumped on every grid invalidation
	buildOpts  exposure.Options

	placements placement.Set
}

// Option configures a new Session.
type Option func(*Session)

// WithThreshold sets the initial brightness threshold, clamped to [0, 255].
func WithThreshold(threshold int) Option {
	return func(s *Session) { s.threshold = exposure.ClampThreshold(threshold) }
}

// WithFootprint sets the initial bed footprint in pixels, clamped to the
// minimum dimension.
func WithFootprint(width, height int) Option {
	return func(s *Session) {
		s.footWidth = clampDimension(width)
		s.footHeight = clampDimension(height)
	}
}

// WithBuildOptions sets the chunking/worker options used by Rebuild.
func WithBuildOptions(opts exposure.Options) Option {
	return func(s *Session) { s.buildOpts = opts }
}

// New creates a session with the default threshold (200) and the default
// 8ft x 4ft footprint at the fixed scene scale.
func New(opts ...Option) *Session {
	w, h := DefaultFootprint()
	s := &Session{
		id:         uuid.NewString(),
		threshold:  exposure.DefaultThreshold,
		footWidth:  w,
		footHeight: h,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// SetStack replaces the session's photo stack and invalidates the grid.
// The buffers are not copied; callers must not mutate them afterwards
// (exposure.Buffer is immutable by construction).
func (s *Session) SetStack(buffers []*exposure.Buffer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buffers = buffers
	s.invalidateLocked()
}

// StackSize returns the number of buffers currently loaded.
func (s *Session) StackSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buffers)
}

// Threshold returns the current brightness threshold.
func (s *Session) Threshold() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.threshold
}

// SetThreshold sets the threshold, clamped to [0, 255], and invalidates the
// grid if the value changed.
func (s *Session) SetThreshold(threshold int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setThresholdLocked(exposure.ClampThreshold(threshold))
	return s.threshold
}

// AdjustThreshold moves the threshold by steps increments of ThresholdStep
// (negative steps lower it), clamped to [0, 255]. A changed threshold
// invalidates the grid; the caller decides when to Rebuild.
func (s *Session) AdjustThreshold(steps int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setThresholdLocked(exposure.ClampThreshold(s.threshold + steps*ThresholdStep))
	return s.threshold
}

func (s *Session) setThresholdLocked(threshold int) {
	if threshold != s.threshold {
		s.threshold = threshold
		s.invalidateLocked()
	}
}

// invalidateLocked discards the grid and advances the generation counter,
// marking any build still in flight as stale.
func (s *Session) invalidateLocked() {
	s.grid = nil
	s.gridGen++
}

// Footprint returns the current bed footprint in pixels.
func (s *Session) Footprint() (width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.footWidth, s.footHeight
}

// FlipFootprint swaps the footprint's width and height, switching the bed
// between landscape and portrait orientation.
func (s *Session) FlipFootprint() (width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.footWidth, s.footHeight = s.footHeight, s.footWidth
	return s.footWidth, s.footHeight
}

// ResizeFootprint grows or shrinks the footprint by the given pixel deltas,
// clamping each dimension to the minimum of 1px. The footprint is a session
// parameter: changing it never touches placements already saved.
func (s *Session) ResizeFootprint(dw, dh int) (width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.footWidth = clampDimension(s.footWidth + dw)
	s.footHeight = clampDimension(s.footHeight + dh)
	return s.footWidth, s.footHeight
}

// Rebuild runs the full aggregation over the current stack at the current
// threshold and installs the resulting grid. The previous grid stays in
// place until the new one is complete; a cancelled rebuild leaves the
// session unchanged.
func (s *Session) Rebuild(ctx context.Context) error {
	s.mu.Lock()
	buffers := s.buffers
	threshold := s.threshold
	gen := s.gridGen
	opts := s.buildOpts
	s.mu.Unlock()

	// Aggregation runs outside the session lock so status queries stay
	// responsive during long builds.
	grid, err := exposure.Build(ctx, buffers, threshold, opts)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// A threshold or stack change while building makes this grid stale:
	// each invalidation advances the generation, so install only if no one
	// invalidated since the inputs were captured.
	if s.gridGen == gen {
		s.grid = grid
	}
	return nil
}

// Grid returns the current exposure grid, or ErrNoGrid when the session has
// no up-to-date grid.
func (s *Session) Grid() (*exposure.Grid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.grid == nil {
		return nil, ErrNoGrid
	}
	return s.grid, nil
}

// ScoreAt scores the current footprint anchored at (x, y) against the grid
// and reports the score plus the percentage of the footprint's maximum
// possible exposure.
func (s *Session) ScoreAt(x, y int) (score int, pct float64, err error) {
	grid, err := s.Grid()
	if err != nil {
		return 0, 0, err
	}
	w, h := s.Footprint()

	rect := placement.Rect{CenterX: x, CenterY: y, Width: w, Height: h}
	if rect.Outside(grid.Width(), grid.Height()) {
		return 0, 0, &placement.OutOfBoundsError{Rect: rect, GridWidth: grid.Width(), GridHeight: grid.Height()}
	}

	score = placement.Score(grid, rect)
	return score, placement.Percentage(score, w, h), nil
}

// SearchResult describes one finished hill-climb search.
type SearchResult struct {
	Placement  placement.ScoredPlacement `json:"placement"`
	Percentage float64                   `json:"percentage"`
	Steps      int                       `json:"steps"`
}

// StartSearch runs a hill climb for the current footprint from the given
// anchor point. The frozen placement is appended to the session's placement
// set and returned.
func (s *Session) StartSearch(x, y int) (SearchResult, error) {
	grid, err := s.Grid()
	if err != nil {
		return SearchResult{}, err
	}
	w, h := s.Footprint()

	search, err := placement.NewSearch(grid, placement.Rect{CenterX: x, CenterY: y, Width: w, Height: h})
	if err != nil {
		return SearchResult{}, err
	}

	final := search.Run()
	s.placements.Append(final)

	return SearchResult{
		Placement:  final,
		Percentage: placement.Percentage(final.Score, final.Rect.Width, final.Rect.Height),
		Steps:      search.Steps(),
	}, nil
}

// Placements returns the placements saved so far, in insertion order.
func (s *Session) Placements() []placement.ScoredPlacement {
	return s.placements.All()
}

// GridPixels exposes the raw grid cell values for an exporting collaborator,
// along with the grid dimensions. The core performs no drawing itself.
func (s *Session) GridPixels() (pixels []uint8, width, height int, err error) {
	grid, err := s.Grid()
	if err != nil {
		return nil, 0, 0, err
	}
	return grid.Pixels(), grid.Width(), grid.Height(), nil
}
