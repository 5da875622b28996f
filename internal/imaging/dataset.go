package imaging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/rgb-tools-mcp/internal/knn"
	"github.com/ironsheep/rgb-tools-mcp/internal/rgb"
)

// TrainingOptions controls LoadTrainingSet.
type TrainingOptions struct {
	// Rows and Cols, when both positive, resize every sample to Rows x Cols
	// so samples of different sizes can be compared.
	Rows int
	Cols int
}

func (o TrainingOptions) resize() bool {
	return o.Rows > 0 && o.Cols > 0
}

// LoadTrainingSet builds k-NN examples from a directory tree:
//
//	root/
//	  cat/  a.png b.png
//	  dog/  c.jpg
//
// Every immediate subdirectory of root is a label and every file inside it
// is one sample. Labels and files are visited in name order. Hidden entries
// and files directly under root are skipped; nested directories are ignored.
func LoadTrainingSet(root string, opts TrainingOptions) ([]knn.Example, error) {
	labels, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read training directory: %w", err)
	}

	var examples []knn.Example
	for _, label := range labels {
		if !label.IsDir() || hidden(label.Name()) {
			continue
		}

		dir := filepath.Join(root, label.Name())
		files, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to read label %s: %w", label.Name(), err)
		}

		for _, f := range files {
			if f.IsDir() || hidden(f.Name()) {
				continue
			}
			img, err := loadSample(filepath.Join(dir, f.Name()), opts)
			if err != nil {
				return nil, err
			}
			examples = append(examples, knn.Example{Image: img, Label: label.Name()})
		}
	}

	if len(examples) == 0 {
		return nil, fmt.Errorf("no training images found in %s", root)
	}
	return examples, nil
}

func loadSample(path string, opts TrainingOptions) (*rgb.Image, error) {
	img, err := Decode(path)
	if err != nil || !opts.resize() {
		return img, err
	}
	return Resize(img, opts.Rows, opts.Cols)
}

// Resize scales img to rows x cols with Lanczos resampling.
func Resize(img *rgb.Image, rows, cols int) (*rgb.Image, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: no image to resize", rgb.ErrType)
	}
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: target size %dx%d", rgb.ErrRange, rows, cols)
	}
	if r, c := img.Size(); r == rows && c == cols {
		return img.Copy(), nil
	}
	return rgb.FromImage(imaging.Resize(img.NRGBA(), cols, rows, imaging.Lanczos))
}

func hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
