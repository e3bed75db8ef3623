// Package placement evaluates candidate garden-bed rectangles against a sun
// exposure grid and runs a greedy local search for well-lit positions.
//
// A rectangle is scored by summing the exposure grid cells under its
// footprint; cells outside the grid contribute zero. The search is a
// discrete steepest-ascent hill climb: from the current position it tries
// the eight one-pixel moves, takes the strictly best one, and freezes when
// no move improves the score. It makes no attempt to escape local maxima;
// callers wanting a better placement start a new search from a different
// seed point.
//
// The coordinate system matches package exposure exactly: 0-based, origin at
// the top-left, X rightward, Y downward.
package placement
