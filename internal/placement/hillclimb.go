package placement

import "github.com/greenshed/sunmap/internal/exposure"

// State is the lifecycle of a hill-climb search.
type State int

const (
	// Searching means the rectangle may still move to a better neighbor.
	Searching State = iota

	// Frozen is terminal: no one-pixel move improves the score.
	Frozen
)

func (s State) String() string {
	if s == Frozen {
		return "frozen"
	}
	return "searching"
}

// neighborOffsets lists the eight unit moves in the fixed evaluation order
// N, NE, E, SE, S, SW, W, NW. Ties between equally-scored candidates are
// broken by this order, so search results are stable across runs.
var neighborOffsets = [8][2]int{
	{0, -1},  // N
	{1, -1},  // NE
	{1, 0},   // E
	{1, 1},   // SE
	{0, 1},   // S
	{-1, 1},  // SW
	{-1, 0},  // W
	{-1, -1}, // NW
}

// ScoredPlacement is a rectangle together with its exposure score.
type ScoredPlacement struct {
	Rect  Rect `json:"rect"`
	Score int  `json:"score"`
}

// Search is a steepest-ascent hill climb over the exposure grid. Each step
// depends on the previous position, so a Search is driven by one goroutine;
// the grid it reads is immutable and may be shared.
type Search struct {
	grid  *exposure.Grid
	rect  Rect
	score int
	state State
	steps int
}

// NewSearch starts a hill climb at the given rectangle. The initial score is
// computed immediately. A rectangle entirely outside the grid is rejected
// with *OutOfBoundsError; a partially overlapping one is accepted and scored
// with clipping.
func NewSearch(grid *exposure.Grid, initial Rect) (*Search, error) {
	if initial.Outside(grid.Width(), grid.Height()) {
		return nil, &OutOfBoundsError{Rect: initial, GridWidth: grid.Width(), GridHeight: grid.Height()}
	}

	return &Search{
		grid:  grid,
		rect:  initial,
		score: Score(grid, initial),
		state: Searching,
	}, nil
}

// Step evaluates the eight one-pixel moves and advances to the best one.
//
// Candidates that would leave the rectangle partially off-grid are excluded,
// not clamped. Only a strictly greater score causes a move; on a tie among
// candidates the earliest direction in the fixed order wins. When no
// in-bounds candidate improves the score the search freezes.
//
// Step returns true if the rectangle moved and false once the search is
// frozen. Calling Step on a frozen search is a no-op.
func (s *Search) Step() bool {
	if s.state == Frozen {
		return false
	}

	best := s.score
	var bestRect Rect
	moved := false

	for _, d := range neighborOffsets {
		cand := s.rect.Shifted(d[0], d[1])
		if !cand.Inside(s.grid.Width(), s.grid.Height()) {
			continue
		}
		// Strict > keeps the first direction on equal candidate scores and
		// rejects moves that merely match the current score.
		if sc := Score(s.grid, cand); sc > best {
			best = sc
			bestRect = cand
			moved = true
		}
	}

	if !moved {
		s.state = Frozen
		return false
	}

	s.rect = bestRect
	s.score = best
	s.steps++
	return true
}

// Run drives the search until it freezes and returns the final placement.
// Every step strictly increases the score, so the walk visits each grid
// position at most once and terminates within grid-area steps.
func (s *Search) Run() ScoredPlacement {
	for s.Step() {
	}
	return s.Placement()
}

// Placement returns the current rectangle and score.
func (s *Search) Placement() ScoredPlacement {
	return ScoredPlacement{Rect: s.rect, Score: s.score}
}

// State returns Searching or Frozen.
func (s *Search) State() State { return s.state }

// Steps returns how many moves the search has made so far.
func (s *Search) Steps() int { return s.steps }
