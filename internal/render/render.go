package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"

	"github.com/greenshed/sunmap/internal/exposure"
	"github.com/greenshed/sunmap/internal/placement"
)

// Style selects how grid cells are colored.
type Style string

const (
	// StyleGray renders cell values directly as grayscale intensity.
	StyleGray Style = "gray"

	// StyleHeat renders cell values through the false-color palette.
	StyleHeat Style = "heat"
)

// Options controls exposure map rendering. The zero value renders an
// unscaled grayscale map with no annotations.
type Options struct {
	// Style is StyleGray or StyleHeat; empty selects StyleGray.
	Style Style

	// Scale resizes the output by this factor (e.g. 2.0 doubles it).
	// Values <= 0 or exactly 1 leave the image at grid resolution.
	Scale float64

	// SmoothSigma applies a Gaussian blur of this radius to the cell values
	// before coloring. Purely cosmetic: the search always reads the raw
	// grid. 0 disables smoothing.
	SmoothSigma float64

	// Legend appends a gradient legend strip on the right edge.
	Legend bool

	// Placements are drawn as rectangle outlines over the map.
	Placements []placement.ScoredPlacement
}

// outlineColor marks placement rectangles. Magenta sits outside the
// shade-to-sun palette, so outlines stay visible on both ends of it.
var outlineColor = color.RGBA{R: 230, G: 60, B: 200, A: 255}

// Image renders the exposure grid according to opts.
func Image(grid *exposure.Grid, opts Options) (image.Image, error) {
	style := opts.Style
	if style == "" {
		style = StyleGray
	}
	if style != StyleGray && style != StyleHeat {
		return nil, fmt.Errorf("unknown render style: %q", style)
	}

	width, height := grid.Width(), grid.Height()
	values := grid.Pixels()

	if opts.SmoothSigma > 0 {
		blurred := blur.Gaussian(grid.Gray(), opts.SmoothSigma)
		for i := range values {
			values[i] = blurred.Pix[i*4] // R channel of the blurred gray
		}
	}

	outWidth := width
	if opts.Legend {
		outWidth += legendWidth
	}
	img := image.NewRGBA(image.Rect(0, 0, outWidth, height))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := values[y*width+x]
			if style == StyleHeat {
				img.SetRGBA(x, y, heatPalette[v])
			} else {
				img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
			}
		}
	}

	for _, p := range opts.Placements {
		drawOutline(img, p.Rect, width, height)
	}

	if opts.Legend {
		drawLegend(img, width, height)
	}

	if opts.Scale > 0 && opts.Scale != 1 {
		scaledW := int(math.Round(float64(outWidth) * opts.Scale))
		scaledH := int(math.Round(float64(height) * opts.Scale))
		return imaging.Resize(img, scaledW, scaledH, imaging.Lanczos), nil
	}
	return img, nil
}

// Save writes img to path as PNG.
func Save(img image.Image, path string) error {
	if err := imgio.Save(path, img, imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}

// drawOutline traces the one-pixel border of a placement footprint, clipped
// to the grid area so partially off-grid rectangles still show their
// on-grid edge.
func drawOutline(img *image.RGBA, r placement.Rect, gridWidth, gridHeight int) {
	x0, y0, x1, y1 := r.Footprint()

	for x := x0; x < x1; x++ {
		setClipped(img, x, y0, gridWidth, gridHeight)
		setClipped(img, x, y1-1, gridWidth, gridHeight)
	}
	for y := y0; y < y1; y++ {
		setClipped(img, x0, y, gridWidth, gridHeight)
		setClipped(img, x1-1, y, gridWidth, gridHeight)
	}
}

func setClipped(img *image.RGBA, x, y, gridWidth, gridHeight int) {
	if x >= 0 && x < gridWidth && y >= 0 && y < gridHeight {
		img.SetRGBA(x, y, outlineColor)
	}
}
