package rgb

import (
	"encoding/json"
	"fmt"
	"math"
)

// The functions in this file validate loosely typed values, such as those
// produced by encoding/json when decoding into interface{}. Numbers arrive as
// float64 (or json.Number), sequences as []interface{}.

// number extracts a finite numeric value from v.
func number(v interface{}) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func integral(f float64) bool {
	return f == math.Trunc(f)
}

// IntFromValue converts v to an int. A non-number or a number with a
// fractional part fails with ErrType.
func IntFromValue(v interface{}) (int, error) {
	f, ok := number(v)
	if !ok || !integral(f) {
		return 0, fmt.Errorf("%w: %v is not an integer", ErrType, v)
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, fmt.Errorf("%w: %v is too large", ErrRange, v)
	}
	return int(f), nil
}

// ColorFromValues converts v to a SetPixel color.
//
// v must be a sequence of exactly three elements, otherwise ErrType. The
// elements are then checked one at a time, in order:
//  1. a number above 255 fails with ErrRange
//  2. a non-number or a number with a fractional part fails with ErrType
//
// The range check deliberately runs before the type check, so [256.5, 0, 0]
// is a range error while [1.5, 0, 0] is a type error.
func ColorFromValues(v interface{}) ([Channels]int, error) {
	var color [Channels]int

	vals, ok := v.([]interface{})
	if !ok || len(vals) != Channels {
		return color, fmt.Errorf("%w: color must be a sequence of %d channels", ErrType, Channels)
	}
	for ch, raw := range vals {
		f, isNum := number(raw)
		if isNum && f > 255 {
			return color, fmt.Errorf("%w: channel %d is %v, want at most 255", ErrRange, ch, raw)
		}
		if !isNum || !integral(f) {
			return color, fmt.Errorf("%w: channel %d is %v, want an integer", ErrType, ch, raw)
		}
		color[ch] = int(f)
	}
	return color, nil
}

// NewFromValues builds an Image from a loosely typed grid.
//
// The whole grid is checked for shape first: the grid, every row and every
// pixel must be non-empty sequences, rows must all have the same length and
// pixels must have exactly three elements, otherwise ErrShape. Then every
// channel must be an integer in [0,255], otherwise ErrRange.
func NewFromValues(v interface{}) (*Image, error) {
	grid, ok := v.([]interface{})
	if !ok || len(grid) == 0 {
		return nil, fmt.Errorf("%w: grid must be a non-empty sequence of rows", ErrShape)
	}

	rows := make([][]interface{}, len(grid))
	cols := -1
	for r, rawRow := range grid {
		row, ok := rawRow.([]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: row %d is not a sequence", ErrShape, r)
		}
		if cols < 0 {
			cols = len(row)
			if cols == 0 {
				return nil, fmt.Errorf("%w: grid is empty", ErrShape)
			}
		}
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d pixels, want %d", ErrShape, r, len(row), cols)
		}
		for c, rawPx := range row {
			px, ok := rawPx.([]interface{})
			if !ok || len(px) != Channels {
				return nil, fmt.Errorf("%w: pixel (%d,%d) is not a sequence of %d channels", ErrShape, r, c, Channels)
			}
		}
		rows[r] = row
	}

	img := alloc(len(rows), cols)
	i := 0
	for r, row := range rows {
		for c, rawPx := range row {
			for ch, raw := range rawPx.([]interface{}) {
				f, ok := number(raw)
				if !ok || !integral(f) || f < 0 || f > 255 {
					return nil, fmt.Errorf("%w: channel %d of pixel (%d,%d) is %v, want an integer 0-255", ErrRange, ch, r, c, raw)
				}
				img.pix[i] = uint8(f)
				i++
			}
		}
	}
	return img, nil
}
