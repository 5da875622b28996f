package knn

import (
	"errors"
	"math"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ironsheep/rgb-tools-mcp/internal/rgb"
)

func createSolid(t *testing.T, rows, cols int, v uint8) *rgb.Image {
	t.Helper()
	img, err := rgb.Generate(rows, cols, func(int, int) rgb.Pixel { return rgb.Pixel{v, v, v} })
	if err != nil {
		t.Fatalf("failed to create image: %v", err)
	}
	return img
}

func TestVote(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		want   string
		ok     bool
	}{
		{"majority", []string{"a", "b", "b", "b", "a"}, "b", true},
		{"single", []string{"x"}, "x", true},
		{"tie goes to first seen", []string{"a", "b", "b", "a"}, "a", true},
		{"tie goes to first seen reversed", []string{"b", "a", "a", "b"}, "b", true},
		{"later majority wins", []string{"a", "b", "c", "c"}, "c", true},
		{"three way tie", []string{"z", "y", "x"}, "z", true},
		{"empty", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Vote(tt.labels)
			if got != tt.want || ok != tt.ok {
				t.Errorf("Vote(%v) = %q, %v; want %q, %v", tt.labels, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestDistance(t *testing.T) {
	a := createSolid(t, 2, 3, 10)
	b := createSolid(t, 2, 3, 13)

	self, err := Distance(a, a)
	if err != nil || self != 0 {
		t.Errorf("Distance(a, a) = %v, %v; want 0", self, err)
	}

	ab, _ := Distance(a, b)
	ba, _ := Distance(b, a)
	if ab != ba {
		t.Errorf("distance is not symmetric: %v vs %v", ab, ba)
	}

	// 18 channels, each differing by 3.
	want := math.Sqrt(18 * 9)
	if math.Abs(ab-want) > 1e-9 {
		t.Errorf("got %v, want %v", ab, want)
	}
}

func TestDistance_Extremes(t *testing.T) {
	black := createSolid(t, 64, 64, 0)
	white := createSolid(t, 64, 64, 255)

	got, err := Distance(black, white)
	if err != nil {
		t.Fatal(err)
	}
	want := 255 * math.Sqrt(64*64*3)
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDistance_Errors(t *testing.T) {
	a := createSolid(t, 2, 2, 0)
	if _, err := Distance(a, nil); !errors.Is(err, rgb.ErrType) {
		t.Errorf("nil image: expected ErrType, got %v", err)
	}
	if _, err := Distance(a, createSolid(t, 2, 3, 0)); !errors.Is(err, rgb.ErrRange) {
		t.Errorf("size mismatch: expected ErrRange, got %v", err)
	}
}

func TestNew_InvalidK(t *testing.T) {
	for _, k := range []int{0, -1} {
		if _, err := New(k); !errors.Is(err, rgb.ErrRange) {
			t.Errorf("New(%d): expected ErrRange, got %v", k, err)
		}
	}
}

func TestFit_Errors(t *testing.T) {
	c, _ := New(3)
	err := c.Fit([]Example{{createSolid(t, 1, 1, 0), "a"}, {createSolid(t, 1, 1, 0), "b"}})
	if !errors.Is(err, rgb.ErrRange) {
		t.Errorf("too few examples: expected ErrRange, got %v", err)
	}
	err = c.Fit([]Example{{createSolid(t, 1, 1, 0), "a"}, {nil, "b"}, {createSolid(t, 1, 1, 0), "c"}})
	if !errors.Is(err, rgb.ErrType) {
		t.Errorf("nil example: expected ErrType, got %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("failed fit should leave the classifier empty, got %d examples", c.Len())
	}
}

func TestFit_CopiesExamples(t *testing.T) {
	c, _ := New(1)
	examples := []Example{{createSolid(t, 1, 1, 0), "dark"}}
	if err := c.Fit(examples); err != nil {
		t.Fatal(err)
	}
	examples[0].Label = "changed"

	got, err := c.Predict(createSolid(t, 1, 1, 0))
	if err != nil || got != "dark" {
		t.Errorf("got %q, %v; want dark", got, err)
	}
}

func TestPredict(t *testing.T) {
	c, _ := New(3)
	examples := []Example{
		{createSolid(t, 2, 2, 0), "dark"},
		{createSolid(t, 2, 2, 20), "dark"},
		{createSolid(t, 2, 2, 40), "dark"},
		{createSolid(t, 2, 2, 220), "light"},
		{createSolid(t, 2, 2, 240), "light"},
		{createSolid(t, 2, 2, 255), "light"},
	}
	if err := c.Fit(examples); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		value uint8
		want  string
	}{
		{5, "dark"},
		{60, "dark"},
		{200, "light"},
		{250, "light"},
	}
	for _, tt := range tests {
		got, err := c.Predict(createSolid(t, 2, 2, tt.value))
		if err != nil {
			t.Fatalf("Predict failed: %v", err)
		}
		if got != tt.want {
			t.Errorf("value %d: got %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestPredict_EqualDistancesKeepTrainingOrder(t *testing.T) {
	c, _ := New(2)
	// Both "b" examples sit at the same distance as the "a" examples; the
	// first two in training order are kept, and the tie goes to "b".
	err := c.Fit([]Example{
		{createSolid(t, 1, 1, 90), "b"},
		{createSolid(t, 1, 1, 110), "a"},
		{createSolid(t, 1, 1, 110), "a"},
		{createSolid(t, 1, 1, 90), "b"},
	})
	if err != nil {
		t.Fatal(err)
	}

	nearest, err := c.Neighbors(createSolid(t, 1, 1, 100))
	if err != nil {
		t.Fatal(err)
	}
	if len(nearest) != 2 || nearest[0].Index != 0 || nearest[1].Index != 1 {
		t.Fatalf("unexpected neighbors: %+v", nearest)
	}

	got, _ := c.Predict(createSolid(t, 1, 1, 100))
	if got != "b" {
		t.Errorf("got %q, want b", got)
	}
}

func TestNeighbors(t *testing.T) {
	c, _ := New(2)
	_ = c.Fit([]Example{
		{createSolid(t, 1, 1, 100), "far"},
		{createSolid(t, 1, 1, 10), "near"},
		{createSolid(t, 1, 1, 0), "exact"},
	})

	nearest, err := c.Neighbors(createSolid(t, 1, 1, 0))
	if err != nil {
		t.Fatal(err)
	}
	if len(nearest) != 2 {
		t.Fatalf("got %d neighbors, want 2", len(nearest))
	}
	if nearest[0].Label != "exact" || nearest[0].Distance != 0 || nearest[0].Index != 2 {
		t.Errorf("first neighbor: %+v", nearest[0])
	}
	if nearest[1].Label != "near" || math.Abs(nearest[1].Distance-10*math.Sqrt(3)) > 1e-9 {
		t.Errorf("second neighbor: %+v", nearest[1])
	}
}

func TestPredict_Errors(t *testing.T) {
	c, _ := New(1)
	if _, err := c.Predict(createSolid(t, 1, 1, 0)); !errors.Is(err, rgb.ErrRange) {
		t.Errorf("unfitted: expected ErrRange, got %v", err)
	}

	_ = c.Fit([]Example{{createSolid(t, 2, 2, 0), "a"}})
	if _, err := c.Predict(nil); !errors.Is(err, rgb.ErrType) {
		t.Errorf("nil query: expected ErrType, got %v", err)
	}
	if _, err := c.Predict(createSolid(t, 3, 3, 0)); !errors.Is(err, rgb.ErrRange) {
		t.Errorf("size mismatch: expected ErrRange, got %v", err)
	}
}

func TestPredict_Logs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	c, _ := New(1, WithLogger(zap.New(core)))
	_ = c.Fit([]Example{{createSolid(t, 1, 1, 0), "a"}})
	_, _ = c.Predict(createSolid(t, 1, 1, 0))

	if logs.FilterMessage("classifier fitted").Len() != 1 {
		t.Error("missing fit log entry")
	}
	entries := logs.FilterMessage("prediction").All()
	if len(entries) != 1 || entries[0].ContextMap()["label"] != "a" {
		t.Errorf("unexpected prediction entries: %v", entries)
	}
}
