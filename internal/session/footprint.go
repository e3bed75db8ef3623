package session

import "math"

// Real-world scale of the reference scene: a 19 ft garden span covers 192
// pixels in the photographs. The default bed is a standard 8ft x 4ft raised
// bed.
const (
	ScalePixels = 192
	ScaleFeet   = 19

	DefaultBedWidthFeet  = 8
	DefaultBedHeightFeet = 4

	// MinFootprint is the smallest bed dimension in pixels.
	MinFootprint = 1
)

// FeetToPixels converts a real-world length to scene pixels at the fixed
// scale, rounding to the nearest pixel.
func FeetToPixels(feet float64) int {
	return int(math.Round(feet * ScalePixels / ScaleFeet))
}

// DefaultFootprint returns the pixel dimensions of the default 8ft x 4ft
// bed.
func DefaultFootprint() (width, height int) {
	return FeetToPixels(DefaultBedWidthFeet), FeetToPixels(DefaultBedHeightFeet)
}

// clampDimension normalizes a footprint dimension to at least MinFootprint.
func clampDimension(v int) int {
	if v < MinFootprint {
		return MinFootprint
	}
	return v
}
