// Package imagemeta reads pixel dimensions from image headers.
package imagemeta

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
)

// Dimensions in pixels.
type Dimensions struct {
	Width  int
	Height int
}

// ReadFile decodes only the header of the image at filename.
func ReadFile(filename string) (Dimensions, error) {
	f, err := os.Open(filename)
	if err != nil {
		return Dimensions{}, err
	}
	defer f.Close()
	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return Dimensions{}, fmt.Errorf("%s: %w", filename, err)
	}
	if format == "" || cfg.Width == 0 || cfg.Height == 0 {
		return Dimensions{}, fmt.Errorf("%s: no dimensions", filename)
	}
	return Dimensions{Width: cfg.Width, Height: cfg.Height}, nil
}
