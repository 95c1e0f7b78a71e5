// Package extraction flattens image channels into an observation matrix.
//
// Rows are pixels in row-major scan order (y outer, x inner), so the pixel at
// (x, y) lands in row y*width + x. Columns are either R, G, B (All) or the one
// selected channel, holding 8-bit intensities as float64 in [0, 255].
package extraction

import (
	"fmt"
	"image"
	"image/color"

	"gonum.org/v1/gonum/mat"

	"imagepca/internal/models"
	"imagepca/internal/workers"
)

// Extract builds the observation matrix of img for the given channel selector.
// numCores bounds how many goroutines scan rows; the result does not depend on it.
func Extract(img image.Image, sel models.ChannelSelector, numCores int) (*mat.Dense, error) {
	if img == nil {
		return nil, fmt.Errorf("nil image: %w", models.ErrInvalidInput)
	}
	if !sel.Valid() {
		return nil, fmt.Errorf("channel selector %v: %w", sel, models.ErrInvalidInput)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("image is %dx%d: %w", width, height, models.ErrInvalidInput)
	}

	cols := sel.Width()
	data := make([]float64, width*height*cols)
	channel := sel.Index()

	err := workers.ForRows(height, numCores, func(startY, endY int) error {
		for y := startY; y < endY; y++ {
			for x := 0; x < width; x++ {
				r, g, b := RGB8(img.At(bounds.Min.X+x, bounds.Min.Y+y))
				row := (y*width + x) * cols
				if sel == models.All {
					data[row] = float64(r)
					data[row+1] = float64(g)
					data[row+2] = float64(b)
					continue
				}
				data[row] = float64([3]uint8{r, g, b}[channel])
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return mat.NewDense(width*height, cols, data), nil
}

// RGB8 returns the non-premultiplied 8-bit red, green and blue of c
func RGB8(c color.Color) (r, g, b uint8) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return n.R, n.G, n.B
}
