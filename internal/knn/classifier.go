// Package knn is a k-nearest-neighbor classifier over RGB images.
//
// Images are compared by Euclidean distance over their raw channel values,
// so every example and query must share one size. Ties in the vote go to the
// label seen first among the k nearest neighbors.
package knn

import (
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/ironsheep/rgb-tools-mcp/internal/rgb"
)

// Example is one labeled training image.
type Example struct {
	Image *rgb.Image
	Label string
}

// Neighbor is a training example ranked by its distance to a query.
type Neighbor struct {
	Index    int     `json:"index"`
	Label    string  `json:"label"`
	Distance float64 `json:"distance"`
}

// Classifier predicts labels from the k nearest training examples.
// Fit replaces the training set; a Classifier is not safe for concurrent
// Fit and Predict calls.
type Classifier struct {
	k        int
	examples []Example
	logger   *zap.Logger
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithLogger sets the logger used for fit and prediction events.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Classifier) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New returns an unfitted classifier. k must be positive.
func New(k int, opts ...Option) (*Classifier, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", rgb.ErrRange, k)
	}
	c := &Classifier{k: k, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.Named("knn")
	return c, nil
}

// K returns the number of neighbors consulted per prediction.
func (c *Classifier) K() int { return c.k }

// Len returns the number of training examples.
func (c *Classifier) Len() int { return len(c.examples) }

// Fit stores the training examples, replacing any previous set. At least k
// examples are required and none may have a nil image.
func (c *Classifier) Fit(examples []Example) error {
	if len(examples) < c.k {
		return fmt.Errorf("%w: need at least %d examples, got %d", rgb.ErrRange, c.k, len(examples))
	}
	for i, ex := range examples {
		if ex.Image == nil {
			return fmt.Errorf("%w: example %d has no image", rgb.ErrType, i)
		}
	}

	c.examples = append([]Example(nil), examples...)
	c.logger.Debug("classifier fitted", zap.Int("examples", len(c.examples)), zap.Int("k", c.k))
	return nil
}

// Distance is the Euclidean distance between two equally sized images,
// treating every channel of every pixel as one coordinate.
func Distance(a, b *rgb.Image) (float64, error) {
	if a == nil || b == nil {
		return 0, fmt.Errorf("%w: distance requires two images", rgb.ErrType)
	}
	rows, cols := a.Size()
	if r, c := b.Size(); r != rows || c != cols {
		return 0, fmt.Errorf("%w: cannot compare %dx%d with %dx%d", rgb.ErrRange, rows, cols, r, c)
	}

	var sum int64
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			pa, pb := a.At(row, col), b.At(row, col)
			for ch := 0; ch < rgb.Channels; ch++ {
				d := int64(pa[ch]) - int64(pb[ch])
				sum += d * d
			}
		}
	}
	return math.Sqrt(float64(sum)), nil
}

// Vote returns the most frequent label. On a tie, the tied label that first
// appeared in labels wins. ok is false for an empty input.
func Vote(labels []string) (label string, ok bool) {
	if len(labels) == 0 {
		return "", false
	}

	counts := make(map[string]int, len(labels))
	order := make([]string, 0, len(labels))
	for _, l := range labels {
		if counts[l] == 0 {
			order = append(order, l)
		}
		counts[l]++
	}

	best := order[0]
	for _, l := range order[1:] {
		if counts[l] > counts[best] {
			best = l
		}
	}
	return best, true
}

// Neighbors returns the k training examples nearest to img, closest first.
// Examples at equal distance keep their training order.
func (c *Classifier) Neighbors(img *rgb.Image) ([]Neighbor, error) {
	if len(c.examples) == 0 {
		return nil, fmt.Errorf("%w: classifier has not been fitted", rgb.ErrRange)
	}
	if img == nil {
		return nil, fmt.Errorf("%w: query image is nil", rgb.ErrType)
	}

	ranked := make([]Neighbor, len(c.examples))
	for i, ex := range c.examples {
		d, err := Distance(img, ex.Image)
		if err != nil {
			return nil, fmt.Errorf("example %d (%s): %w", i, ex.Label, err)
		}
		ranked[i] = Neighbor{Index: i, Label: ex.Label, Distance: d}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Distance < ranked[j].Distance
	})
	return ranked[:c.k], nil
}

// Predict returns the majority label among the k nearest examples.
func (c *Classifier) Predict(img *rgb.Image) (string, error) {
	nearest, err := c.Neighbors(img)
	if err != nil {
		return "", err
	}

	labels := make([]string, len(nearest))
	for i, n := range nearest {
		labels[i] = n.Label
	}
	label, _ := Vote(labels)

	c.logger.Debug("prediction", zap.String("label", label),
		zap.Float64("nearest_distance", nearest[0].Distance))
	return label, nil
}
