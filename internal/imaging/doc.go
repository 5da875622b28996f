// Package imaging connects rgb images to files, colors and training data.
//
// It is the codec boundary of the server: Decode and Encode move images
// between disk and *rgb.Image using github.com/disintegration/imaging,
// EncodeBase64PNG produces inline tool results, and LoadTrainingSet turns a
// directory tree of labeled samples into k-NN examples.
//
// # Coordinate System
//
// Coordinates follow the rgb package: (row, col), 0-based, with (0,0) at the
// top-left corner. Rows grow downward and columns grow rightward.
//
// # Supported Formats
//
// Decoding accepts PNG, JPEG, GIF, BMP, TIFF and WebP. Encoding accepts the
// same formats except WebP; the format is chosen from the file extension.
// Alpha is discarded on decode since rgb images are opaque.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. It hands out copies, so
// callers may modify loaded images freely. All other functions are stateless.
//
// # Color Representation
//
// Colors are reported as:
//   - Hex: 6-character format "#RRGGBB"
//   - RGB: 8-bit components (0-255)
//   - HSL: Hue (0-360), Saturation (0-100), Lightness (0-100)
package imaging
