// Package finance derives the monetary breakdown of a booking. The same
// formulas serve booking list rows, the booking detail view and invoices, so
// all three always agree on every amount.
package finance

import (
	"time"

	"carrental-backend/internal/domain"

	"github.com/shopspring/decimal"
)

// Rounding selects how derived amounts are rounded to the currency precision.
type Rounding string

const (
	RoundHalfUp   Rounding = "half_up"
	RoundHalfEven Rounding = "half_even"
	RoundNone     Rounding = "none"
)

// Config carries the currency rules into the engine explicitly.
type Config struct {
	CurrencyPlaces int32
	Rounding       Rounding
}

func DefaultConfig() Config {
	return Config{CurrencyPlaces: 2, Rounding: RoundHalfUp}
}

var hundred = decimal.NewFromInt(100)

// LineCost is the cost of one line item: the booked days or an extension.
type LineCost struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	CouponDiscount decimal.Decimal `json:"couponDiscount"`
	VATAmount      decimal.Decimal `json:"vatAmount"`
	Total          decimal.Decimal `json:"total"`
}

// BookingFinancials are the raw money fields of a booking record.
type BookingFinancials struct {
	DailyRate          decimal.Decimal
	Days               int
	VATRate            decimal.Decimal
	CouponPercentage   *decimal.Decimal
	ExtensionDays      *int
	DepositAmount      decimal.Decimal
	CancellationCharge *decimal.Decimal
	CancelledAt        *time.Time
}

type FinancialBreakdown struct {
	Subtotal                decimal.Decimal `json:"subtotal"`
	CouponDiscount          decimal.Decimal `json:"couponDiscount"`
	VATAmount               decimal.Decimal `json:"vatAmount"`
	ExtensionSubtotal       decimal.Decimal `json:"extensionSubtotal"`
	ExtensionCouponDiscount decimal.Decimal `json:"extensionCouponDiscount"`
	ExtensionVATAmount      decimal.Decimal `json:"extensionVatAmount"`
	GrandTotal              decimal.Decimal `json:"grandTotal"`
	RefundableAmount        decimal.Decimal `json:"refundableAmount"`
	DepositAmount           decimal.Decimal `json:"depositAmount"`
}

// Engine is stateless apart from its configuration and safe for concurrent use.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

func (e *Engine) Config() Config {
	return e.cfg
}

// BaseCost computes the booked-days line. VAT is charged on the discounted
// amount when a coupon applies and on the raw subtotal otherwise. The total is
// subtotal plus VAT; the coupon discount only reduces the taxable base.
func (e *Engine) BaseCost(dailyRate decimal.Decimal, days int, vatRate decimal.Decimal, couponPercentage *decimal.Decimal) (LineCost, error) {
	if err := validateRates(dailyRate, vatRate, couponPercentage); err != nil {
		return LineCost{}, err
	}
	if days <= 0 {
		return LineCost{}, domain.InvalidInput("days", "must be greater than zero")
	}
	return e.lineCost(dailyRate, days, vatRate, couponPercentage), nil
}

// ExtensionCost computes the extension line with the same formula as BaseCost.
// It returns nil when the booking has no extension.
func (e *Engine) ExtensionCost(dailyRate decimal.Decimal, extensionDays *int, vatRate decimal.Decimal, couponPercentage *decimal.Decimal) (*LineCost, error) {
	if err := validateRates(dailyRate, vatRate, couponPercentage); err != nil {
		return nil, err
	}
	if extensionDays == nil {
		return nil, nil
	}
	if *extensionDays < 0 {
		return nil, domain.InvalidInput("extensionDays", "must not be negative")
	}
	line := e.lineCost(dailyRate, *extensionDays, vatRate, couponPercentage)
	return &line, nil
}

func (e *Engine) GrandTotal(base LineCost, extension *LineCost) decimal.Decimal {
	if extension == nil {
		return base.Total
	}
	return base.Total.Add(extension.Total)
}

// Refundable is zero until the booking is cancelled. A charge larger than the
// base total is reported as an error instead of being clamped to zero.
func (e *Engine) Refundable(base LineCost, cancellationCharge *decimal.Decimal, cancelledAt *time.Time) (decimal.Decimal, error) {
	if cancelledAt == nil {
		return decimal.Zero, nil
	}
	charge := decimal.Zero
	if cancellationCharge != nil {
		if cancellationCharge.IsNegative() {
			return decimal.Zero, domain.InvalidInput("cancellationCharge", "must not be negative")
		}
		charge = *cancellationCharge
	}
	refundable := base.Total.Sub(charge)
	if refundable.IsNegative() {
		return decimal.Zero, domain.InvalidInput("cancellationCharge", "exceeds the booking total")
	}
	return refundable, nil
}

// Breakdown composes all derived fields of a booking.
func (e *Engine) Breakdown(in BookingFinancials) (FinancialBreakdown, error) {
	if in.DepositAmount.IsNegative() {
		return FinancialBreakdown{}, domain.InvalidInput("depositAmount", "must not be negative")
	}
	base, err := e.BaseCost(in.DailyRate, in.Days, in.VATRate, in.CouponPercentage)
	if err != nil {
		return FinancialBreakdown{}, err
	}
	ext, err := e.ExtensionCost(in.DailyRate, in.ExtensionDays, in.VATRate, in.CouponPercentage)
	if err != nil {
		return FinancialBreakdown{}, err
	}
	refundable, err := e.Refundable(base, in.CancellationCharge, in.CancelledAt)
	if err != nil {
		return FinancialBreakdown{}, err
	}

	out := FinancialBreakdown{
		Subtotal:         base.Subtotal,
		CouponDiscount:   base.CouponDiscount,
		VATAmount:        base.VATAmount,
		GrandTotal:       e.GrandTotal(base, ext),
		RefundableAmount: refundable,
		DepositAmount:    in.DepositAmount,
	}
	if ext != nil {
		out.ExtensionSubtotal = ext.Subtotal
		out.ExtensionCouponDiscount = ext.CouponDiscount
		out.ExtensionVATAmount = ext.VATAmount
	}
	return out, nil
}

func (e *Engine) lineCost(dailyRate decimal.Decimal, days int, vatRate decimal.Decimal, couponPercentage *decimal.Decimal) LineCost {
	subtotal := e.round(dailyRate.Mul(decimal.NewFromInt(int64(days))))

	discount := decimal.Zero
	taxable := subtotal
	if couponPercentage != nil {
		discount = e.round(subtotal.Mul(*couponPercentage).Div(hundred))
		taxable = subtotal.Sub(discount)
	}
	vat := e.round(vatRate.Mul(taxable).Div(hundred))

	return LineCost{
		Subtotal:       subtotal,
		CouponDiscount: discount,
		VATAmount:      vat,
		Total:          subtotal.Add(vat),
	}
}

func (e *Engine) round(d decimal.Decimal) decimal.Decimal {
	switch e.cfg.Rounding {
	case RoundNone:
		return d
	case RoundHalfEven:
		return d.RoundBank(e.cfg.CurrencyPlaces)
	default:
		return d.Round(e.cfg.CurrencyPlaces)
	}
}

func validateRates(dailyRate, vatRate decimal.Decimal, couponPercentage *decimal.Decimal) error {
	if dailyRate.IsNegative() {
		return domain.InvalidInput("dailyRate", "must not be negative")
	}
	if !isPercentage(vatRate) {
		return domain.InvalidInput("vatRate", "must be between 0 and 100")
	}
	if couponPercentage != nil && !isPercentage(*couponPercentage) {
		return domain.InvalidInput("couponPercentage", "must be between 0 and 100")
	}
	return nil
}

func isPercentage(d decimal.Decimal) bool {
	return !d.IsNegative() && d.LessThanOrEqual(hundred)
}
