package transform

import (
	"fmt"

	"github.com/ironsheep/rgb-tools-mcp/internal/rgb"
)

// MaxBrightnessDelta bounds the delta accepted by AdjustBrightness.
const MaxBrightnessDelta = 255

func checkImage(name string, img *rgb.Image) error {
	if img == nil {
		return fmt.Errorf("%w: %s image is nil", rgb.ErrType, name)
	}
	return nil
}

// mapPixels returns a new image with fn applied to every pixel of img.
func mapPixels(img *rgb.Image, fn func(p rgb.Pixel) rgb.Pixel) (*rgb.Image, error) {
	rows, cols := img.Size()
	return rgb.Generate(rows, cols, func(row, col int) rgb.Pixel {
		return fn(img.At(row, col))
	})
}

// Negate returns a copy of img with every channel inverted (255 - c).
func Negate(img *rgb.Image) (*rgb.Image, error) {
	if err := checkImage("source", img); err != nil {
		return nil, err
	}
	return mapPixels(img, func(p rgb.Pixel) rgb.Pixel {
		return rgb.Pixel{255 - p[0], 255 - p[1], 255 - p[2]}
	})
}

// Grayscale returns a copy of img where each pixel is replaced by the floor
// of its channel mean, repeated in all three channels.
func Grayscale(img *rgb.Image) (*rgb.Image, error) {
	if err := checkImage("source", img); err != nil {
		return nil, err
	}
	return mapPixels(img, func(p rgb.Pixel) rgb.Pixel {
		avg := luminance(p)
		return rgb.Pixel{avg, avg, avg}
	})
}

// luminance is the floor mean of the three channels.
func luminance(p rgb.Pixel) uint8 {
	return uint8((int(p[0]) + int(p[1]) + int(p[2])) / 3)
}

// AverageBrightness returns floor(sum of all channels / (3 * rows * cols)).
func AverageBrightness(img *rgb.Image) (int, error) {
	if err := checkImage("source", img); err != nil {
		return 0, err
	}
	rows, cols := img.Size()
	total := 0
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			p := img.At(r, c)
			total += int(p[0]) + int(p[1]) + int(p[2])
		}
	}
	return total / (rgb.Channels * rows * cols), nil
}

// AdjustBrightness returns a copy of img with delta added to every channel,
// clamped to [0,255]. delta must lie in [-255,255], otherwise rgb.ErrRange.
func AdjustBrightness(img *rgb.Image, delta int) (*rgb.Image, error) {
	if err := checkImage("source", img); err != nil {
		return nil, err
	}
	if delta < -MaxBrightnessDelta || delta > MaxBrightnessDelta {
		return nil, fmt.Errorf("%w: brightness delta %d outside [-%d,%d]",
			rgb.ErrRange, delta, MaxBrightnessDelta, MaxBrightnessDelta)
	}
	return mapPixels(img, func(p rgb.Pixel) rgb.Pixel {
		return rgb.Pixel{
			clampChannel(int(p[0]) + delta),
			clampChannel(int(p[1]) + delta),
			clampChannel(int(p[2]) + delta),
		}
	})
}

// clampChannel constrains v to [0, 255].
func clampChannel(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
