// Package rgb provides the in-memory RGB image model shared by the transform
// engine, the tiered processor and the k-NN classifier.
//
// An Image has a fixed shape (rows x cols, both positive) and mutable content.
// Each pixel holds three 8-bit channels in R, G, B order. Alpha channels and
// other bit depths are not represented.
//
// # Coordinate System
//
// Pixels are addressed as (row, col), 0-based, with (0,0) at the top-left:
//   - row: vertical position (0 = topmost row)
//   - col: horizontal position (0 = leftmost column)
//
// This differs from the (x, y) order of the standard image package. FromImage
// and NRGBA convert between the two.
//
// # Ownership
//
// Every Image owns its pixel buffer. Constructors copy their input, Pixels
// returns a deep copy, and Copy returns an independent Image, so a caller can
// never observe aliasing between two images or between an image and a grid.
// SetPixel is the only in-place mutator.
//
// # Error Handling
//
// Failures wrap one of three sentinel kinds, matched with errors.Is:
//   - ErrType: an argument of the wrong type (nil image, non-integer index,
//     color that is not a 3-element sequence)
//   - ErrShape: a malformed grid (empty, non-rectangular, pixel without
//     exactly 3 channels). ErrShape wraps ErrType.
//   - ErrRange: a value outside its domain (channel above 255, index out of
//     bounds, mismatched sizes)
//
// Shape validation always covers the whole grid before any range violation
// is reported.
//
// # Thread Safety
//
// An Image is not safe for concurrent mutation. Concurrent reads are safe.
package rgb
