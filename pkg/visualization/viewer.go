package visualization

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"

	"imagepca/pkg/imageio"
	"imagepca/pkg/reconstruction"
)

// Viewer renders the columns of a transformed matrix as separate grayscale
// images, one per principal component
type Viewer struct {
	// transformed holds one row per pixel and one column per component
	transformed *mat.Dense

	// dimensions of the source image
	width  int
	height int
}

// NewViewer creates a component viewer over transformed data of a width x height image
func NewViewer(transformed *mat.Dense, width, height int) *Viewer {
	return &Viewer{
		transformed: transformed,
		width:       width,
		height:      height,
	}
}

// Components returns the number of component planes available
func (v *Viewer) Components() int {
	if v.transformed == nil || v.transformed.IsEmpty() {
		return 0
	}
	_, cols := v.transformed.Dims()
	return cols
}

// ExtractComponent renders component index as a min-max scaled grayscale image
func (v *Viewer) ExtractComponent(index int) (*image.Gray, error) {
	if index < 0 || index >= v.Components() {
		return nil, fmt.Errorf("component %d out of range [0,%d)", index, v.Components())
	}
	rows, _ := v.transformed.Dims()
	if rows != v.width*v.height {
		return nil, fmt.Errorf("transformed matrix has %d rows, expected %d", rows, v.width*v.height)
	}

	scaled, err := reconstruction.MinMaxScale(mat.Col(nil, index, v.transformed))
	if err != nil {
		return nil, err
	}

	img := image.NewGray(image.Rect(0, 0, v.width, v.height))
	copy(img.Pix, scaled)
	return img, nil
}

// SaveComponents writes every component plane to outputDir as PNG and
// returns the written paths
func (v *Viewer) SaveComponents(outputDir string) ([]string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, err
	}

	paths := make([]string, 0, v.Components())
	for i := 0; i < v.Components(); i++ {
		img, err := v.ExtractComponent(i)
		if err != nil {
			return paths, err
		}

		filename := filepath.Join(outputDir, fmt.Sprintf("component_%d.png", i))
		if err := imageio.SaveImage(img, filename, 0); err != nil {
			return paths, err
		}
		paths = append(paths, filename)
	}

	return paths, nil
}
