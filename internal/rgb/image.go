package rgb

import (
	"bytes"
	"fmt"

	"github.com/anthonynsimon/bild/parallel"
)

// Channels is the number of channels per pixel.
const Channels = 3

// Keep is the SetPixel channel value that leaves the current channel unchanged.
const Keep = -1

// Pixel is an (R, G, B) triple.
type Pixel [Channels]uint8

// Image is a rows x cols grid of RGB pixels stored row-major in an owned buffer.
type Image struct {
	rows int
	cols int
	pix  []uint8 // len = rows * cols * Channels
}

// New builds an Image from a grid of [R, G, B] values.
//
// The whole grid is checked for shape first: an empty grid, an empty first
// row, a row whose length differs from the first row, or a pixel without
// exactly three channels fails with ErrShape. Only then are channel values
// checked; a value outside [0,255] fails with ErrRange.
//
// The grid is copied, so later changes to it do not affect the Image.
func New(grid [][][]int) (*Image, error) {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return nil, fmt.Errorf("%w: grid is empty", ErrShape)
	}
	cols := len(grid[0])
	for r, row := range grid {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d pixels, want %d", ErrShape, r, len(row), cols)
		}
		for c, px := range row {
			if len(px) != Channels {
				return nil, fmt.Errorf("%w: pixel (%d,%d) has %d channels, want %d", ErrShape, r, c, len(px), Channels)
			}
		}
	}

	for r, row := range grid {
		for c, px := range row {
			for ch, v := range px {
				if v < 0 || v > 255 {
					return nil, fmt.Errorf("%w: channel %d of pixel (%d,%d) is %d, want 0-255", ErrRange, ch, r, c, v)
				}
			}
		}
	}

	img := alloc(len(grid), cols)
	i := 0
	for _, row := range grid {
		for _, px := range row {
			img.pix[i], img.pix[i+1], img.pix[i+2] = uint8(px[0]), uint8(px[1]), uint8(px[2])
			i += Channels
		}
	}
	return img, nil
}

// Generate builds a rows x cols Image whose pixel at (row, col) is fn(row, col).
//
// Rows are filled in parallel, so fn must be safe to call concurrently; it
// should only read shared state. The result does not depend on scheduling.
func Generate(rows, cols int, fn func(row, col int) Pixel) (*Image, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d must be positive", ErrShape, rows, cols)
	}
	img := alloc(rows, cols)
	parallel.Line(rows, func(start, end int) {
		for r := start; r < end; r++ {
			i := r * cols * Channels
			for c := 0; c < cols; c++ {
				p := fn(r, c)
				img.pix[i], img.pix[i+1], img.pix[i+2] = p[0], p[1], p[2]
				i += Channels
			}
		}
	})
	return img, nil
}

func alloc(rows, cols int) *Image {
	return &Image{rows: rows, cols: cols, pix: make([]uint8, rows*cols*Channels)}
}

// Size returns the image dimensions as (rows, cols).
func (img *Image) Size() (rows, cols int) {
	return img.rows, img.cols
}

// Pixels returns a deep copy of the pixel grid as [row][col][channel].
func (img *Image) Pixels() [][][]int {
	grid := make([][][]int, img.rows)
	i := 0
	for r := range grid {
		row := make([][]int, img.cols)
		for c := range row {
			row[c] = []int{int(img.pix[i]), int(img.pix[i+1]), int(img.pix[i+2])}
			i += Channels
		}
		grid[r] = row
	}
	return grid
}

// GetPixel returns the pixel at (row, col).
// Coordinates outside the image fail with ErrRange.
func (img *Image) GetPixel(row, col int) (Pixel, error) {
	if !img.inBounds(row, col) {
		return Pixel{}, img.boundsError(row, col)
	}
	return img.At(row, col), nil
}

// At returns the pixel at (row, col) without a bounds check. Callers must
// stay inside the image; use GetPixel for untrusted coordinates.
func (img *Image) At(row, col int) Pixel {
	i := img.offset(row, col)
	return Pixel{img.pix[i], img.pix[i+1], img.pix[i+2]}
}

// SetPixel replaces the pixel at (row, col).
//
// A negative channel value (conventionally Keep) leaves that channel as it
// is. Validation runs in this order and finishes before the pixel changes:
//  1. (row, col) outside the image fails with ErrRange
//  2. any channel above 255 fails with ErrRange
func (img *Image) SetPixel(row, col int, color [Channels]int) error {
	if !img.inBounds(row, col) {
		return img.boundsError(row, col)
	}
	for ch, v := range color {
		if v > 255 {
			return fmt.Errorf("%w: channel %d is %d, want at most 255", ErrRange, ch, v)
		}
	}

	i := img.offset(row, col)
	for ch, v := range color {
		if v >= 0 {
			img.pix[i+ch] = uint8(v)
		}
	}
	return nil
}

// Copy returns an independent copy of the image.
func (img *Image) Copy() *Image {
	dup := alloc(img.rows, img.cols)
	copy(dup.pix, img.pix)
	return dup
}

// Equal reports whether both images have the same size and pixels.
func (img *Image) Equal(other *Image) bool {
	if img == nil || other == nil {
		return img == other
	}
	return img.rows == other.rows && img.cols == other.cols && bytes.Equal(img.pix, other.pix)
}

func (img *Image) inBounds(row, col int) bool {
	return row >= 0 && row < img.rows && col >= 0 && col < img.cols
}

func (img *Image) boundsError(row, col int) error {
	return fmt.Errorf("%w: pixel (%d,%d) outside %dx%d image", ErrRange, row, col, img.rows, img.cols)
}

func (img *Image) offset(row, col int) int {
	return (row*img.cols + col) * Channels
}
