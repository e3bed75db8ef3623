// Package render draws exposure grids and saved placements as images.
//
// Rendering is strictly a collaborator concern: the aggregation and search
// core only ever exposes raw cell values, and this package turns them into
// grayscale or false-color heat maps, optionally smoothed, scaled, annotated
// with placement outlines and a legend, and saved as PNG.
//
// The false-color palette blends from a deep shade blue to a full-sun yellow
// in the HCL color space, which keeps perceived lightness rising with
// exposure.
package render
