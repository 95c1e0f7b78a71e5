// Package imageio decodes and encodes the raster formats the CLI accepts:
// JPEG, PNG and BMP.
package imageio

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

// DefaultJPEGQuality is used when SaveImage gets a quality outside 1..100
const DefaultJPEGQuality = 90

// LoadImage decodes a JPEG, PNG or BMP file
func LoadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if !Supported(format) {
		return nil, fmt.Errorf("unsupported image format %q in %s", format, path)
	}
	return img, nil
}

// SaveImage encodes img using the format implied by the file extension.
// jpegQuality only applies to .jpg/.jpeg outputs.
func SaveImage(img image.Image, path string, jpegQuality int) error {
	format := FormatFromPath(path)
	if format == "" {
		return fmt.Errorf("cannot infer image format from %q (use .png, .jpg or .bmp)", path)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}

	switch format {
	case "png":
		err = png.Encode(file, img)
	case "jpeg":
		if jpegQuality < 1 || jpegQuality > 100 {
			jpegQuality = DefaultJPEGQuality
		}
		err = jpeg.Encode(file, img, &jpeg.Options{Quality: jpegQuality})
	case "bmp":
		err = bmp.Encode(file, img)
	}
	if err != nil {
		file.Close()
		os.Remove(path)
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return file.Close()
}

// FormatFromPath maps a file extension to "png", "jpeg" or "bmp".
// It returns "" for anything else.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".bmp":
		return "bmp"
	}
	return ""
}

// Supported reports whether a decoder format name is one we read
func Supported(format string) bool {
	switch format {
	case "png", "jpeg", "bmp":
		return true
	}
	return false
}
