package finance

import (
	"carrental-backend/internal/domain"

	"github.com/shopspring/decimal"
)

// FromBooking lifts the stored float fields of a booking into decimals.
// NewFromFloat keeps the shortest representation, so 99.99 stays 99.99.
func FromBooking(b domain.Booking) BookingFinancials {
	in := BookingFinancials{
		DailyRate:     decimal.NewFromFloat(b.DailyRate),
		Days:          b.Days,
		VATRate:       decimal.NewFromFloat(b.VATRate),
		ExtensionDays: b.ExtensionDays,
		DepositAmount: decimal.NewFromFloat(b.DepositAmount),
		CancelledAt:   b.CancelledAt,
	}
	if b.CouponPercentage != nil {
		coupon := decimal.NewFromFloat(*b.CouponPercentage)
		in.CouponPercentage = &coupon
	}
	if b.CancellationCharge != nil {
		charge := decimal.NewFromFloat(*b.CancellationCharge)
		in.CancellationCharge = &charge
	}
	return in
}
