package transform

import (
	"testing"

	"github.com/ironsheep/rgb-tools-mcp/internal/rgb"
)

// createGradient builds a rows x cols image whose channels vary along both
// axes, so every geometric or neighborhood mistake shows up in some pixel.
func createGradient(t *testing.T, rows, cols int) *rgb.Image {
	t.Helper()
	img, err := rgb.Generate(rows, cols, func(row, col int) rgb.Pixel {
		return rgb.Pixel{
			uint8(row * 255 / max(1, rows-1)),
			uint8(col * 255 / max(1, cols-1)),
			uint8((row*cols + col) % 256),
		}
	})
	if err != nil {
		t.Fatalf("failed to create gradient: %v", err)
	}
	return img
}

// createSolid builds a rows x cols image filled with a single color.
func createSolid(t *testing.T, rows, cols int, p rgb.Pixel) *rgb.Image {
	t.Helper()
	img, err := rgb.Generate(rows, cols, func(int, int) rgb.Pixel { return p })
	if err != nil {
		t.Fatalf("failed to create solid image: %v", err)
	}
	return img
}

// createFromGrid builds an image from a literal grid.
func createFromGrid(t *testing.T, grid [][][]int) *rgb.Image {
	t.Helper()
	img, err := rgb.New(grid)
	if err != nil {
		t.Fatalf("failed to create image: %v", err)
	}
	return img
}

// forEachPixel calls fn for every coordinate of img.
func forEachPixel(img *rgb.Image, fn func(row, col int)) {
	rows, cols := img.Size()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			fn(r, c)
		}
	}
}
