package rgb

import (
	"errors"
	"fmt"
)

var (
	// ErrType reports an argument of the wrong type or structure.
	ErrType = errors.New("type error")

	// ErrRange reports a value or size outside its valid domain.
	ErrRange = errors.New("range error")

	// ErrShape reports a malformed pixel grid. It wraps ErrType.
	ErrShape = fmt.Errorf("%w: malformed pixel grid", ErrType)
)
