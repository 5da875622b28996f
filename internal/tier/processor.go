package tier

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ironsheep/rgb-tools-mcp/internal/logging"
	"github.com/ironsheep/rgb-tools-mcp/internal/rgb"
	"github.com/ironsheep/rgb-tools-mcp/internal/transform"
)

// Processor runs transform operations and keeps the bill for one tier.
type Processor struct {
	policy  Policy
	session string
	logger  *zap.Logger

	cost    int
	credits int
	calls   map[Operation]int
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets the logger used for billing events.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Processor) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithSession tags errors and log entries with a session identifier.
func WithSession(id string) Option {
	return func(p *Processor) {
		p.session = id
	}
}

// Statement summarizes a processor's bill.
type Statement struct {
	Tier    string            `json:"tier"`
	Session string            `json:"session,omitempty"`
	Cost    int               `json:"cost"`
	Credits int               `json:"credits"`
	Calls   map[Operation]int `json:"calls"`
}

// New creates a processor for policy. The policy's base fee is the initial cost.
func New(policy Policy, opts ...Option) *Processor {
	p := &Processor{
		policy: policy,
		logger: zap.NewNop(),
		cost:   policy.BaseFee,
		calls:  make(map[Operation]int),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.Named("tier").With(zap.String("tier", policy.Name))
	return p
}

// Policy returns the processor's pricing policy.
func (p *Processor) Policy() Policy { return p.policy }

// Session returns the session identifier, if any.
func (p *Processor) Session() string { return p.session }

// Cost returns the accumulated cost, including the base fee.
func (p *Processor) Cost() int { return p.cost }

// Credits returns the number of remaining free calls.
func (p *Processor) Credits() int { return p.credits }

// Statement returns a snapshot of the bill.
func (p *Processor) Statement() Statement {
	calls := make(map[Operation]int, len(p.calls))
	for op, n := range p.calls {
		calls[op] = n
	}
	return Statement{
		Tier:    p.policy.Name,
		Session: p.session,
		Cost:    p.cost,
		Credits: p.credits,
		Calls:   calls,
	}
}

// RedeemCoupon adds amount free calls. The tier must support coupons
// (ErrUnavailable) and amount must be positive (rgb.ErrRange).
func (p *Processor) RedeemCoupon(amount int) error {
	const op = "redeem_coupon"
	if !p.policy.Coupons {
		return p.fail(op, fmt.Errorf("%w: %s tier has no coupons", ErrUnavailable, p.policy.Name))
	}
	if amount <= 0 {
		return p.fail(op, fmt.Errorf("%w: coupon amount %d must be positive", rgb.ErrRange, amount))
	}
	p.credits += amount
	logging.WithOperation(p.logger, op, p.session).Debug("coupon redeemed",
		zap.Int("amount", amount), zap.Int("credits", p.credits))
	return nil
}

// Negate is transform.Negate, billed.
func (p *Processor) Negate(img *rgb.Image) (*rgb.Image, error) {
	return p.billed(OpNegate, func() (*rgb.Image, error) { return transform.Negate(img) })
}

// Grayscale is transform.Grayscale, billed.
func (p *Processor) Grayscale(img *rgb.Image) (*rgb.Image, error) {
	return p.billed(OpGrayscale, func() (*rgb.Image, error) { return transform.Grayscale(img) })
}

// Rotate180 is transform.Rotate180, billed.
func (p *Processor) Rotate180(img *rgb.Image) (*rgb.Image, error) {
	return p.billed(OpRotate180, func() (*rgb.Image, error) { return transform.Rotate180(img) })
}

// AdjustBrightness is transform.AdjustBrightness, billed.
func (p *Processor) AdjustBrightness(img *rgb.Image, delta int) (*rgb.Image, error) {
	return p.billed(OpAdjustBrightness, func() (*rgb.Image, error) { return transform.AdjustBrightness(img, delta) })
}

// Blur is transform.Blur, billed.
func (p *Processor) Blur(img *rgb.Image) (*rgb.Image, error) {
	return p.billed(OpBlur, func() (*rgb.Image, error) { return transform.Blur(img) })
}

// AverageBrightness is transform.AverageBrightness. It is never billed and
// does not consume credits.
func (p *Processor) AverageBrightness(img *rgb.Image) (int, error) {
	v, err := transform.AverageBrightness(img)
	if err != nil {
		return 0, p.fail(string(OpAverageBrightness), err)
	}
	p.calls[OpAverageBrightness]++
	return v, nil
}

// ChromaKey is transform.ChromaKey. It requires a compositing tier.
func (p *Processor) ChromaKey(chroma, background *rgb.Image, key rgb.Pixel) (*rgb.Image, error) {
	return p.composite(OpChromaKey, func() (*rgb.Image, error) { return transform.ChromaKey(chroma, background, key) })
}

// Sticker is transform.Sticker. It requires a compositing tier.
func (p *Processor) Sticker(sticker, background *rgb.Image, x, y int) (*rgb.Image, error) {
	return p.composite(OpSticker, func() (*rgb.Image, error) { return transform.Sticker(sticker, background, x, y) })
}

// EdgeHighlight is transform.EdgeHighlight. It requires a compositing tier.
func (p *Processor) EdgeHighlight(img *rgb.Image) (*rgb.Image, error) {
	return p.composite(OpEdgeHighlight, func() (*rgb.Image, error) { return transform.EdgeHighlight(img) })
}

func (p *Processor) composite(op Operation, fn func() (*rgb.Image, error)) (*rgb.Image, error) {
	if !p.policy.Compositing {
		return nil, p.fail(string(op), fmt.Errorf("%w: %s is not offered by the %s tier", ErrUnavailable, op, p.policy.Name))
	}
	return p.billed(op, fn)
}

func (p *Processor) billed(op Operation, fn func() (*rgb.Image, error)) (*rgb.Image, error) {
	out, err := fn()
	if err != nil {
		return nil, p.fail(string(op), err)
	}
	p.charge(op)
	return out, nil
}

// charge bills one successful call of op.
func (p *Processor) charge(op Operation) {
	p.calls[op]++
	log := logging.WithOperation(p.logger, string(op), p.session)

	if p.credits > 0 {
		p.credits--
		log.Debug("credit consumed", zap.Int("credits", p.credits), zap.Int("cost", p.cost))
		return
	}

	price := p.policy.Price(op)
	p.cost += price
	log.Debug("operation charged", zap.Int("price", price), zap.Int("cost", p.cost))
}

func (p *Processor) fail(op string, err error) error {
	logging.WithOperation(p.logger, op, p.session).Debug("operation rejected", zap.Error(err))
	return logging.NewOperationError("tier."+op, p.session, err)
}
