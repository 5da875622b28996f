package transform

import "github.com/ironsheep/rgb-tools-mcp/internal/rgb"

// Rotate180 returns img rotated by 180 degrees: the row order is reversed and
// the pixels within each row are reversed.
func Rotate180(img *rgb.Image) (*rgb.Image, error) {
	if err := checkImage("source", img); err != nil {
		return nil, err
	}
	rows, cols := img.Size()
	return rgb.Generate(rows, cols, func(row, col int) rgb.Pixel {
		return img.At(rows-1-row, cols-1-col)
	})
}
