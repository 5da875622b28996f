package transform

import (
	"fmt"

	"github.com/ironsheep/rgb-tools-mcp/internal/rgb"
)

// ChromaKey returns a copy of chroma where every pixel equal to key is
// replaced by the background pixel at the same coordinate.
//
// Both images must be non-nil (rgb.ErrType) and the same size (rgb.ErrRange).
func ChromaKey(chroma, background *rgb.Image, key rgb.Pixel) (*rgb.Image, error) {
	if err := checkImage("chroma", chroma); err != nil {
		return nil, err
	}
	if err := checkImage("background", background); err != nil {
		return nil, err
	}

	rows, cols := chroma.Size()
	bgRows, bgCols := background.Size()
	if rows != bgRows || cols != bgCols {
		return nil, fmt.Errorf("%w: chroma image is %dx%d but background is %dx%d",
			rgb.ErrRange, rows, cols, bgRows, bgCols)
	}

	return rgb.Generate(rows, cols, func(row, col int) rgb.Pixel {
		if p := chroma.At(row, col); p != key {
			return p
		}
		return background.At(row, col)
	})
}

// Sticker returns a copy of background with sticker pasted so that its
// top-left pixel lands on row y, column x.
//
// Validation order:
//  1. a nil image fails with rgb.ErrType
//  2. a sticker taller or wider than the background fails with rgb.ErrRange
//  3. a negative offset fails with rgb.ErrRange
//  4. a sticker that does not fit at (x, y) fails with rgb.ErrRange
//
// A sticker that exactly reaches the bottom-right corner fits.
func Sticker(sticker, background *rgb.Image, x, y int) (*rgb.Image, error) {
	if err := checkImage("sticker", sticker); err != nil {
		return nil, err
	}
	if err := checkImage("background", background); err != nil {
		return nil, err
	}

	rows, cols := sticker.Size()
	bgRows, bgCols := background.Size()
	if rows > bgRows || cols > bgCols {
		return nil, fmt.Errorf("%w: sticker %dx%d is larger than background %dx%d",
			rgb.ErrRange, rows, cols, bgRows, bgCols)
	}
	if x < 0 || y < 0 {
		return nil, fmt.Errorf("%w: sticker offset (x=%d, y=%d) is negative", rgb.ErrRange, x, y)
	}
	if rows+y > bgRows || cols+x > bgCols {
		return nil, fmt.Errorf("%w: sticker %dx%d at (x=%d, y=%d) does not fit in background %dx%d",
			rgb.ErrRange, rows, cols, x, y, bgRows, bgCols)
	}

	return rgb.Generate(bgRows, bgCols, func(row, col int) rgb.Pixel {
		sr, sc := row-y, col-x
		if sr >= 0 && sr < rows && sc >= 0 && sc < cols {
			return sticker.At(sr, sc)
		}
		return background.At(row, col)
	})
}
