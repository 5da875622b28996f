package transform

import "github.com/ironsheep/rgb-tools-mcp/internal/rgb"

// edgeKernel is applied by EdgeHighlight. Its weights sum to zero, so flat
// regions map to black.
var edgeKernel = [3][3]int{
	{-1, -1, -1},
	{-1, 8, -1},
	{-1, -1, -1},
}

// Blur returns a copy of img where every channel of every pixel is the floor
// mean of that channel over the pixel and its existing 8 neighbors.
//
// The 3x3 window is clipped to the image, so the divisor is the number of
// pixels actually inside it:
//   - 4 at the corners
//   - 6 along the edges
//   - 9 in the interior
//
// Images with a single row or column have smaller windows still (2 or 3).
func Blur(img *rgb.Image) (*rgb.Image, error) {
	if err := checkImage("source", img); err != nil {
		return nil, err
	}
	rows, cols := img.Size()
	return rgb.Generate(rows, cols, func(row, col int) rgb.Pixel {
		var sum [rgb.Channels]int
		count := 0
		for r := max(0, row-1); r < min(rows, row+2); r++ {
			for c := max(0, col-1); c < min(cols, col+2); c++ {
				p := img.At(r, c)
				sum[0] += int(p[0])
				sum[1] += int(p[1])
				sum[2] += int(p[2])
				count++
			}
		}
		return rgb.Pixel{uint8(sum[0] / count), uint8(sum[1] / count), uint8(sum[2] / count)}
	})
}

// EdgeHighlight returns a grayscale edge map of img.
//
// Each pixel is first reduced to its luminance, floor((r+g+b)/3). The
// luminance plane is convolved with edgeKernel; neighbors outside the image
// contribute 0. The response v of each pixel is then mapped as:
//   - v < 0: (0, 0, 0)
//   - v > 255: (255, 255, 255)
//   - otherwise: (v, v, v)
func EdgeHighlight(img *rgb.Image) (*rgb.Image, error) {
	if err := checkImage("source", img); err != nil {
		return nil, err
	}
	rows, cols := img.Size()

	lum := make([][]int, rows)
	for r := 0; r < rows; r++ {
		lum[r] = make([]int, cols)
		for c := 0; c < cols; c++ {
			lum[r][c] = int(luminance(img.At(r, c)))
		}
	}

	return rgb.Generate(rows, cols, func(row, col int) rgb.Pixel {
		v := 0
		for kr := -1; kr <= 1; kr++ {
			for kc := -1; kc <= 1; kc++ {
				r, c := row+kr, col+kc
				if r < 0 || r >= rows || c < 0 || c >= cols {
					continue
				}
				v += lum[r][c] * edgeKernel[kr+1][kc+1]
			}
		}
		level := clampChannel(v)
		return rgb.Pixel{level, level, level}
	})
}
