package rgb

import (
	"errors"
	"reflect"
	"testing"
)

func TestNew(t *testing.T) {
	img, err := New([][][]int{{{255, 255, 255}, {0, 0, 0}}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	rows, cols := img.Size()
	if rows != 1 || cols != 2 {
		t.Errorf("Size: got (%d,%d), want (1,2)", rows, cols)
	}

	want := [][][]int{{{255, 255, 255}, {0, 0, 0}}}
	if got := img.Pixels(); !reflect.DeepEqual(got, want) {
		t.Errorf("Pixels: got %v, want %v", got, want)
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		grid    [][][]int
		wantErr error
	}{
		{"nil grid", nil, ErrShape},
		{"empty grid", [][][]int{}, ErrShape},
		{"empty row", [][][]int{{}}, ErrShape},
		{"non-rectangular", [][][]int{{{1, 2, 3}, {1, 2, 3}}, {{1, 2, 3}}}, ErrShape},
		{"two channels", [][][]int{{{1, 2}}}, ErrShape},
		{"four channels", [][][]int{{{1, 2, 3, 4}}}, ErrShape},
		{"channel too large", [][][]int{{{1, 256, 3}}}, ErrRange},
		{"negative channel", [][][]int{{{-1, 2, 3}}}, ErrRange},
		// Shape problems anywhere win over range problems earlier in the grid.
		{"range before shape", [][][]int{{{999, 0, 0}}, {{0, 0}}}, ErrShape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.grid)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestErrShapeIsTypeError(t *testing.T) {
	_, err := New(nil)
	if !errors.Is(err, ErrType) {
		t.Errorf("shape error %v should match ErrType", err)
	}
	if errors.Is(err, ErrRange) {
		t.Errorf("shape error %v should not match ErrRange", err)
	}
}

func TestNew_CopiesInput(t *testing.T) {
	grid := [][][]int{{{10, 20, 30}}}
	img, err := New(grid)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	grid[0][0][0] = 99
	p, _ := img.GetPixel(0, 0)
	if p != (Pixel{10, 20, 30}) {
		t.Errorf("mutating the input grid changed the image: got %v", p)
	}
}

func TestPixels_DeepCopy(t *testing.T) {
	img, _ := New([][][]int{{{255, 255, 255}, {0, 0, 0}}})

	got := img.Pixels()
	got[0][0][0] = 1
	got[0][1] = []int{7, 7, 7}

	again := img.Pixels()
	if again[0][0][0] != 255 || again[0][1][0] != 0 {
		t.Errorf("mutating a returned grid changed the image: %v", again)
	}
}

func TestGetPixel(t *testing.T) {
	img, _ := New([][][]int{{{255, 255, 255}, {0, 0, 0}}})

	p, err := img.GetPixel(0, 0)
	if err != nil {
		t.Fatalf("GetPixel failed: %v", err)
	}
	if p != (Pixel{255, 255, 255}) {
		t.Errorf("GetPixel(0,0): got %v, want (255,255,255)", p)
	}

	for _, tc := range [][2]int{{1, 0}, {0, 2}, {-1, 0}, {0, -1}} {
		if _, err := img.GetPixel(tc[0], tc[1]); !errors.Is(err, ErrRange) {
			t.Errorf("GetPixel(%d,%d): got %v, want ErrRange", tc[0], tc[1], err)
		}
	}
}

func TestSetPixel(t *testing.T) {
	img, _ := New([][][]int{{{255, 255, 255}, {0, 0, 0}}})

	if err := img.SetPixel(0, 0, [3]int{Keep, 0, 0}); err != nil {
		t.Fatalf("SetPixel failed: %v", err)
	}

	want := [][][]int{{{255, 0, 0}, {0, 0, 0}}}
	if got := img.Pixels(); !reflect.DeepEqual(got, want) {
		t.Errorf("after SetPixel: got %v, want %v", got, want)
	}
}

func TestSetPixel_Invalid(t *testing.T) {
	img, _ := New([][][]int{{{1, 2, 3}}})

	tests := []struct {
		name     string
		row, col int
		color    [3]int
	}{
		{"row out of bounds", 1, 0, [3]int{0, 0, 0}},
		{"col out of bounds", 0, -1, [3]int{0, 0, 0}},
		{"channel too large", 0, 0, [3]int{256, 0, 0}},
		{"last channel too large", 0, 0, [3]int{0, 0, 300}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := img.SetPixel(tt.row, tt.col, tt.color); !errors.Is(err, ErrRange) {
				t.Errorf("got %v, want ErrRange", err)
			}
		})
	}

	if p := img.At(0, 0); p != (Pixel{1, 2, 3}) {
		t.Errorf("failed SetPixel calls modified the pixel: %v", p)
	}
}

func TestSetPixel_ValidatesBeforeWriting(t *testing.T) {
	img, _ := New([][][]int{{{1, 2, 3}}})

	// The first channel is valid but the third is not; nothing may change.
	if err := img.SetPixel(0, 0, [3]int{100, 100, 256}); !errors.Is(err, ErrRange) {
		t.Fatalf("got %v, want ErrRange", err)
	}
	if p := img.At(0, 0); p != (Pixel{1, 2, 3}) {
		t.Errorf("partial write: got %v", p)
	}
}

func TestCopy(t *testing.T) {
	img, _ := New([][][]int{{{255, 255, 255}, {0, 0, 0}}})
	dup := img.Copy()

	if dup == img {
		t.Fatal("Copy returned the same instance")
	}
	if !dup.Equal(img) {
		t.Fatal("Copy is not equal to the original")
	}

	_ = dup.SetPixel(0, 1, [3]int{9, 9, 9})
	if dup.Equal(img) {
		t.Error("modifying the copy changed the original")
	}
}

func TestGenerate(t *testing.T) {
	img, err := Generate(3, 4, func(row, col int) Pixel {
		return Pixel{uint8(row), uint8(col), uint8(row * col)}
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	for r := 0; r < 3; r++ {
		for c := 0; c < 4; c++ {
			want := Pixel{uint8(r), uint8(c), uint8(r * c)}
			if got := img.At(r, c); got != want {
				t.Errorf("At(%d,%d): got %v, want %v", r, c, got, want)
			}
		}
	}

	if _, err := Generate(0, 4, nil); !errors.Is(err, ErrShape) {
		t.Errorf("Generate(0,4): got %v, want ErrShape", err)
	}
}

func TestGenerate_LargeImage(t *testing.T) {
	// Tall enough for the row fill to be split across goroutines.
	const rows, cols = 512, 7
	img, err := Generate(rows, cols, func(row, col int) Pixel {
		return Pixel{uint8(row % 256), uint8(col), uint8((row + col) % 256)}
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			want := Pixel{uint8(r % 256), uint8(c), uint8((r + c) % 256)}
			if got := img.At(r, c); got != want {
				t.Fatalf("At(%d,%d): got %v, want %v", r, c, got, want)
			}
		}
	}
}

func TestEqual(t *testing.T) {
	a, _ := New([][][]int{{{1, 2, 3}, {4, 5, 6}}})
	b, _ := New([][][]int{{{1, 2, 3}, {4, 5, 6}}})
	c, _ := New([][][]int{{{1, 2, 3}}, {{4, 5, 6}}})

	if !a.Equal(b) {
		t.Error("identical images should be equal")
	}
	if a.Equal(c) {
		t.Error("images with different shapes should not be equal")
	}
	if a.Equal(nil) {
		t.Error("an image should not equal nil")
	}
}
