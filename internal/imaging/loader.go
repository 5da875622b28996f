package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP format decoder

	"github.com/ironsheep/rgb-tools-mcp/internal/rgb"
)

// Decode reads an image file and converts it to an opaque RGB image.
// JPEG EXIF orientation is applied.
func Decode(path string) (*rgb.Image, error) {
	src, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	img, err := rgb.FromImage(imaging.Clone(src))
	if err != nil {
		return nil, fmt.Errorf("failed to convert %s: %w", path, err)
	}
	return img, nil
}

// Encode writes img to path in the format implied by the extension.
func Encode(path string, img *rgb.Image) error {
	if img == nil {
		return fmt.Errorf("%w: no image to encode", rgb.ErrType)
	}
	if err := imaging.Save(img.NRGBA(), path); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}

// EncodeBase64PNG returns img as a base64-encoded PNG.
func EncodeBase64PNG(img *rgb.Image) (string, error) {
	if img == nil {
		return "", fmt.Errorf("%w: no image to encode", rgb.ErrType)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img.NRGBA(), imaging.PNG); err != nil {
		return "", fmt.Errorf("failed to encode PNG: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// ImageCache provides thread-safe caching of decoded images to avoid
// redundant disk reads.
//
// Images are keyed by the exact path string given to Load, so relative and
// absolute paths to the same file are separate entries. Cached images stay
// in memory until Evict or Clear.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]*rgb.Image
}

// NewImageCache creates an empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]*rgb.Image),
	}
}

// Load returns a copy of the image at path, decoding it on first use.
// The copy is the caller's to modify; the cached image never changes.
func (c *ImageCache) Load(path string) (*rgb.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img.Copy(), nil
	}
	c.mu.RUnlock()

	img, err := Decode(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img.Copy(), nil
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]*rgb.Image)
	c.mu.Unlock()
}

// Evict removes the image cached under path. Unknown paths are ignored.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// ImageInfo contains metadata about an image file.
type ImageInfo struct {
	// Rows is the image height in pixels.
	Rows int `json:"rows"`

	// Cols is the image width in pixels.
	Cols int `json:"cols"`

	// Format is detected from the file extension: "png", "jpeg", "gif",
	// "bmp", "tiff", "webp", or "unknown".
	Format string `json:"format"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image through cache and reports its metadata.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	rows, cols := img.Size()
	return &ImageInfo{
		Rows:          rows,
		Cols:          cols,
		Format:        formatName(path),
		FileSizeBytes: stat.Size(),
	}, nil
}

func formatName(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".webp") {
		return "webp"
	}
	f, err := imaging.FormatFromFilename(path)
	if err != nil {
		return "unknown"
	}
	return strings.ToLower(f.String())
}
