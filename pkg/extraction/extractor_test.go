package extraction

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"imagepca/internal/models"
)

// createTestImage creates an RGBA image whose pixel (x, y) is given by pattern
func createTestImage(width, height int, pattern func(x, y int) color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, pattern(x, y))
		}
	}
	return img
}

func gradient(x, y int) color.RGBA {
	return color.RGBA{R: uint8(10 * x), G: uint8(20 * y), B: uint8(x + y), A: 255}
}

// TestExtractAllChannels verifies row-major RGB extraction
func TestExtractAllChannels(t *testing.T) {
	img := createTestImage(3, 2, gradient)

	m, err := Extract(img, models.All, 1)
	require.NoError(t, err)

	rows, cols := m.Dims()
	assert.Equal(t, 6, rows)
	assert.Equal(t, 3, cols)

	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			want := gradient(x, y)
			row := y*3 + x
			assert.Equal(t, float64(want.R), m.At(row, 0))
			assert.Equal(t, float64(want.G), m.At(row, 1))
			assert.Equal(t, float64(want.B), m.At(row, 2))
		}
	}
}

// TestExtractSingleChannel verifies one-column extraction for each channel
func TestExtractSingleChannel(t *testing.T) {
	img := createTestImage(4, 3, gradient)

	for _, sel := range []models.ChannelSelector{models.Red, models.Green, models.Blue} {
		m, err := Extract(img, sel, 1)
		require.NoError(t, err)

		rows, cols := m.Dims()
		require.Equal(t, 12, rows)
		require.Equal(t, 1, cols)

		for y := 0; y < 3; y++ {
			for x := 0; x < 4; x++ {
				p := gradient(x, y)
				want := [3]uint8{p.R, p.G, p.B}[sel.Index()]
				assert.Equalf(t, float64(want), m.At(y*4+x, 0), "%v at (%d,%d)", sel, x, y)
			}
		}
	}
}

// TestExtractOffsetBounds verifies extraction from a sub-image with a non-zero origin
func TestExtractOffsetBounds(t *testing.T) {
	base := createTestImage(6, 6, gradient)
	sub := base.SubImage(image.Rect(2, 3, 5, 5))

	m, err := Extract(sub, models.Red, 1)
	require.NoError(t, err)

	rows, _ := m.Dims()
	require.Equal(t, 6, rows)
	assert.Equal(t, float64(gradient(2, 3).R), m.At(0, 0))
	assert.Equal(t, float64(gradient(4, 4).R), m.At(5, 0))
}

// TestExtractParallelMatchesSequential verifies that core count does not change the matrix
func TestExtractParallelMatchesSequential(t *testing.T) {
	img := createTestImage(17, 13, gradient)

	seq, err := Extract(img, models.All, 1)
	require.NoError(t, err)
	par, err := Extract(img, models.All, 4)
	require.NoError(t, err)

	assert.True(t, mat.Equal(seq, par))
}

// TestExtractRejectsEmptyImage verifies rejection of empty, nil and invalid inputs
func TestExtractRejectsEmptyImage(t *testing.T) {
	_, err := Extract(image.NewRGBA(image.Rect(0, 0, 0, 5)), models.All, 1)
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = Extract(nil, models.Red, 1)
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = Extract(createTestImage(2, 2, gradient), models.ChannelSelector(9), 1)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

// TestRGB8Unpremultiplies verifies conversion of translucent colors to straight alpha
func TestRGB8Unpremultiplies(t *testing.T) {
	r, g, b := RGB8(color.RGBA{R: 50, G: 25, B: 0, A: 128})
	assert.InDelta(t, 99, int(r), 1)
	assert.InDelta(t, 49, int(g), 1)
	assert.Equal(t, uint8(0), b)
}
