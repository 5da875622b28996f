// Package transform implements the pixel operations of the image processor.
//
// Every function takes one or more *rgb.Image values and returns a new
// *rgb.Image; inputs are never modified. A nil image fails with rgb.ErrType
// and out-of-domain arguments fail with rgb.ErrRange. All validation happens
// before the result is allocated.
//
// # Operations
//
// Point operations (one pixel in, one pixel out):
//   - Negate: each channel becomes 255 - c
//   - Grayscale: each pixel becomes (avg, avg, avg), avg = floor((r+g+b)/3)
//   - AdjustBrightness: each channel becomes clamp(c + delta, 0, 255)
//
// Geometry:
//   - Rotate180: rows reversed and each row reversed
//
// Neighborhood operations:
//   - Blur: per-channel floor mean over the 3x3 window clipped to the image
//   - EdgeHighlight: 3x3 Laplacian-style kernel over the luminance, with
//     zero padding outside the image
//
// Compositing:
//   - ChromaKey: replace pixels of a key color with a background
//   - Sticker: paste one image onto another at a (row, col) offset
//
// Statistics:
//   - AverageBrightness: floor mean of every channel of every pixel
package transform
