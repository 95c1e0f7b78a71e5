package imageio

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(60 * x), G: uint8(80 * y), B: 33, A: 255})
		}
	}
	return img
}

// TestLosslessRoundTrip verifies PNG and BMP save and reload without loss
func TestLosslessRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := testImage()

	for _, name := range []string{"out.png", "out.bmp", filepath.Join("nested", "out.PNG")} {
		path := filepath.Join(dir, name)
		require.NoError(t, SaveImage(src, path, 0))

		got, err := LoadImage(path)
		require.NoError(t, err)
		require.Equal(t, src.Bounds(), got.Bounds())
		for y := 0; y < 3; y++ {
			for x := 0; x < 4; x++ {
				r1, g1, b1, _ := src.At(x, y).RGBA()
				r2, g2, b2, _ := got.At(x, y).RGBA()
				assert.Equal(t, []uint32{r1, g1, b1}, []uint32{r2, g2, b2}, "%s at (%d,%d)", name, x, y)
			}
		}
	}
}

// TestJPEGSave verifies JPEG encoding with an explicit quality
func TestJPEGSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jpg")
	require.NoError(t, SaveImage(testImage(), path, 75))

	got, err := LoadImage(path)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Bounds().Dx())
	assert.Equal(t, 3, got.Bounds().Dy())
}

// TestSaveRejectsUnknownExtension verifies that unsupported extensions fail
func TestSaveRejectsUnknownExtension(t *testing.T) {
	err := SaveImage(testImage(), filepath.Join(t.TempDir(), "out.gif"), 0)
	assert.Error(t, err)
}

// TestSaveRemovesFileOnEncodeFailure verifies that no partial file is left behind
func TestSaveRemovesFileOnEncodeFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.png")
	err := SaveImage(image.NewRGBA(image.Rect(0, 0, 0, 0)), path, 0)
	require.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

// TestLoadErrors verifies missing and corrupt files fail to load
func TestLoadErrors(t *testing.T) {
	_, err := LoadImage(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)

	garbage := filepath.Join(t.TempDir(), "garbage.png")
	require.NoError(t, os.WriteFile(garbage, []byte("not an image"), 0644))
	_, err = LoadImage(garbage)
	assert.Error(t, err)
}

// TestFormatFromPath verifies extension to format mapping
func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, "jpeg", FormatFromPath("a/b.JPEG"))
	assert.Equal(t, "bmp", FormatFromPath("x.bmp"))
	assert.Equal(t, "", FormatFromPath("x.tiff"))
}
