// Package tier meters calls to the transform engine.
//
// A tier is a Policy value: a one-time base fee, a price per operation, and
// flags for the extra capabilities (compositing operations, coupons). A
// Processor applies one Policy to every call it makes; the pixel work itself
// is always delegated to the transform package.
//
// # Billing
//
// A billable call runs its transform first. If the transform fails, nothing
// is charged. Otherwise, if the processor holds free credits, one credit is
// consumed and the cost is unchanged; without credits the operation's price
// is added to the running cost.
//
// # Thread Safety
//
// A Processor is not safe for concurrent use. Give each caller its own, or
// synchronize externally.
package tier

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Operation names a processor operation. The names double as MCP tool
// suffixes and as keys in a Statement.
type Operation string

// Operations exposed by a Processor.
const (
	OpNegate            Operation = "negate"
	OpGrayscale         Operation = "grayscale"
	OpRotate180         Operation = "rotate_180"
	OpAdjustBrightness  Operation = "adjust_brightness"
	OpBlur              Operation = "blur"
	OpAverageBrightness Operation = "average_brightness"
	OpChromaKey         Operation = "chroma_key"
	OpSticker           Operation = "sticker"
	OpEdgeHighlight     Operation = "edge_highlight"
)

var (
	// ErrUnavailable reports an operation the processor's tier does not offer.
	ErrUnavailable = errors.New("operation not available in this tier")

	// ErrUnknownTier reports a tier name Lookup does not recognize.
	ErrUnknownTier = errors.New("unknown tier")
)

// Policy describes the pricing and capabilities of a tier.
type Policy struct {
	// Name identifies the tier, e.g. "standard".
	Name string

	// BaseFee is charged once, when the processor is created.
	BaseFee int

	// Prices maps billable operations to their per-call price. Operations
	// missing from the map cost nothing.
	Prices map[Operation]int

	// Compositing enables ChromaKey, Sticker and EdgeHighlight.
	Compositing bool

	// Coupons enables RedeemCoupon.
	Coupons bool
}

// Price returns the per-call price of op.
func (p Policy) Price(op Operation) int {
	return p.Prices[op]
}

// Standard is the metered tier: no base fee, a price per call, and coupons
// that make calls free.
func Standard() Policy {
	return Policy{
		Name:    "standard",
		BaseFee: 0,
		Prices: map[Operation]int{
			OpNegate:           5,
			OpGrayscale:        6,
			OpRotate180:        10,
			OpAdjustBrightness: 1,
			OpBlur:             5,
		},
		Coupons: true,
	}
}

// Premium is the flat-fee tier: a one-time fee of 50, no per-call prices,
// and the compositing operations.
func Premium() Policy {
	return Policy{
		Name:        "premium",
		BaseFee:     50,
		Prices:      map[Operation]int{},
		Compositing: true,
	}
}

var policies = map[string]func() Policy{
	"standard": Standard,
	"premium":  Premium,
}

// Lookup returns the built-in policy with the given name (case-insensitive).
func Lookup(name string) (Policy, error) {
	if fn, ok := policies[strings.ToLower(strings.TrimSpace(name))]; ok {
		return fn(), nil
	}
	return Policy{}, fmt.Errorf("%w: %q (available: %s)", ErrUnknownTier, name, strings.Join(Names(), ", "))
}

// Names lists the built-in tier names in sorted order.
func Names() []string {
	names := make([]string, 0, len(policies))
	for name := range policies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
