// Package reconstruction maps PCA-transformed data back to a displayable
// 8-bit RGB image using per-column min-max normalization.
package reconstruction

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"imagepca/internal/models"
	"imagepca/internal/workers"
	"imagepca/pkg/extraction"
)

// Params holds the reconstruction settings.
type Params struct {
	// Fill decides what the two unselected channels hold in single-channel mode.
	Fill models.FillPolicy

	// Source is the image the data was extracted from. Required with
	// models.FillOriginal in single-channel mode, ignored otherwise.
	Source image.Image

	// NumCores bounds the goroutines used to write output rows.
	NumCores int
}

// Reconstructor turns transformed matrices into RGB images.
type Reconstructor struct {
	params *Params
}

// NewReconstructor creates a reconstructor with the provided parameters.
// A nil params uses FillOriginal on a single core.
func NewReconstructor(params *Params) *Reconstructor {
	if params == nil {
		params = &Params{}
	}
	return &Reconstructor{params: params}
}

// Reconstruct rescales transformed (width*height rows) into an RGBA image.
//
// With models.All the three columns are rescaled independently into R, G and B.
// With a single channel the rescaled values go into that channel only; the
// matrix may hold one column, or three columns of which the selected one is used.
func (r *Reconstructor) Reconstruct(transformed *mat.Dense, width, height int, sel models.ChannelSelector) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("output size %dx%d: %w", width, height, models.ErrInvalidInput)
	}
	if !sel.Valid() {
		return nil, fmt.Errorf("channel selector %v: %w", sel, models.ErrInvalidInput)
	}
	if transformed == nil || transformed.IsEmpty() {
		return nil, fmt.Errorf("empty transformed matrix: %w", models.ErrInvalidInput)
	}

	rows, cols := transformed.Dims()
	if rows != width*height {
		return nil, fmt.Errorf("transformed matrix has %d rows, image %dx%d needs %d: %w",
			rows, width, height, width*height, models.ErrDimensionMismatch)
	}

	// outChannel[k] is the RGB index fed by scaled column k
	var sourceCols, outChannel []int
	switch {
	case sel == models.All && cols == 3:
		sourceCols, outChannel = []int{0, 1, 2}, []int{0, 1, 2}
	case sel != models.All && cols == 1:
		sourceCols, outChannel = []int{0}, []int{sel.Index()}
	case sel != models.All && cols == 3:
		sourceCols, outChannel = []int{sel.Index()}, []int{sel.Index()}
	default:
		return nil, fmt.Errorf("%d columns cannot be rendered for channel %v: %w",
			cols, sel, models.ErrDimensionMismatch)
	}

	useSource := sel != models.All && r.params.Fill == models.FillOriginal
	var srcBounds image.Rectangle
	if useSource {
		if r.params.Source == nil {
			return nil, fmt.Errorf("fill policy %v needs the source image: %w", r.params.Fill, models.ErrInvalidInput)
		}
		srcBounds = r.params.Source.Bounds()
		if srcBounds.Dx() != width || srcBounds.Dy() != height {
			return nil, fmt.Errorf("source image is %dx%d, output is %dx%d: %w",
				srcBounds.Dx(), srcBounds.Dy(), width, height, models.ErrDimensionMismatch)
		}
	}

	scaled := make([][]uint8, len(sourceCols))
	for k, c := range sourceCols {
		var err error
		scaled[k], err = MinMaxScale(mat.Col(nil, c, transformed))
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", c, err)
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	err := workers.ForRows(height, r.params.NumCores, func(startY, endY int) error {
		for y := startY; y < endY; y++ {
			for x := 0; x < width; x++ {
				idx := y*width + x
				var rgb [3]uint8
				if useSource {
					rgb[0], rgb[1], rgb[2] = extraction.RGB8(r.params.Source.At(srcBounds.Min.X+x, srcBounds.Min.Y+y))
				}
				for k, ch := range outChannel {
					rgb[ch] = scaled[k][idx]
				}
				img.SetRGBA(x, y, color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return img, nil
}

// MinMaxScale linearly maps values onto [0, 255]: the minimum becomes 0 and
// the maximum 255, truncating toward zero. A constant column maps to all zeros.
func MinMaxScale(values []float64) ([]uint8, error) {
	out := make([]uint8, len(values))
	if len(values) == 0 {
		return out, nil
	}

	minVal := floats.Min(values)
	maxVal := floats.Max(values)
	if floats.HasNaN(values) || math.IsInf(minVal, 0) || math.IsInf(maxVal, 0) {
		return nil, fmt.Errorf("non-finite value in column: %w", models.ErrNumericalFailure)
	}

	// flat channel maps to black
	if maxVal == minVal {
		return out, nil
	}

	// halve everything when the range overflows float64
	half := 1.0
	span := maxVal - minVal
	if math.IsInf(span, 0) {
		half = 0.5
		span = maxVal*half - minVal*half
	}
	for i, v := range values {
		ratio := (v*half - minVal*half) / span
		if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
			return nil, fmt.Errorf("rescaling %v produced %v: %w", v, ratio, models.ErrNumericalFailure)
		}
		scaled := int(ratio * 255.0)
		if scaled < 0 {
			scaled = 0
		} else if scaled > 255 {
			scaled = 255
		}
		out[i] = uint8(scaled)
	}
	return out, nil
}
