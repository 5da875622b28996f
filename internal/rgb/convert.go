package rgb

import (
	"fmt"
	"image"
	"image/color"
)

// FromImage converts a standard library image to an Image.
//
// Pixel (x, y) of src becomes (row y, col x) relative to src.Bounds().Min.
// Colors are read un-premultiplied and the alpha channel is dropped, so a
// half-transparent red stays (255, 0, 0). An empty src fails with ErrShape.
func FromImage(src image.Image) (*Image, error) {
	bounds := src.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("%w: source image is empty", ErrShape)
	}

	if nrgba, ok := src.(*image.NRGBA); ok {
		return Generate(bounds.Dy(), bounds.Dx(), func(row, col int) Pixel {
			i := nrgba.PixOffset(bounds.Min.X+col, bounds.Min.Y+row)
			return Pixel{nrgba.Pix[i], nrgba.Pix[i+1], nrgba.Pix[i+2]}
		})
	}

	return Generate(bounds.Dy(), bounds.Dx(), func(row, col int) Pixel {
		c := color.NRGBAModel.Convert(src.At(bounds.Min.X+col, bounds.Min.Y+row)).(color.NRGBA)
		return Pixel{c.R, c.G, c.B}
	})
}

// NRGBA returns the image as a fully opaque *image.NRGBA with bounds
// (0, 0)-(cols, rows).
func (img *Image) NRGBA() *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, img.cols, img.rows))
	src := 0
	for i := 0; i < len(dst.Pix); i += 4 {
		dst.Pix[i+0] = img.pix[src+0]
		dst.Pix[i+1] = img.pix[src+1]
		dst.Pix[i+2] = img.pix[src+2]
		dst.Pix[i+3] = 255
		src += Channels
	}
	return dst
}
