package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/finance"
	"carrental-backend/internal/listing"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"
)

// RevenueSummary sums the breakdowns of bookings picked up in [From, To).
// Bookings whose stored amounts cannot be priced are counted in Skipped and
// left out of every sum.
type RevenueSummary struct {
	From             time.Time           `json:"from"`
	To               time.Time           `json:"to"`
	CompanyID        *primitive.ObjectID `json:"companyId,omitempty"`
	Bookings         int                 `json:"bookings"`
	Cancelled        int                 `json:"cancelled"`
	Skipped          int                 `json:"skipped"`
	Subtotal         decimal.Decimal     `json:"subtotal"`
	CouponDiscount   decimal.Decimal     `json:"couponDiscount"`
	VATAmount        decimal.Decimal     `json:"vatAmount"`
	GrandTotal       decimal.Decimal     `json:"grandTotal"`
	RefundableAmount decimal.Decimal     `json:"refundableAmount"`
}

type reportService struct {
	bookings repository.BookingRepository
	engine   *finance.Engine
}

func NewReportService(bookings repository.BookingRepository, engine *finance.Engine) ReportService {
	return &reportService{bookings: bookings, engine: engine}
}

func (s *reportService) RevenueSummary(ctx context.Context, scope listing.Scope, from, to time.Time) (*RevenueSummary, error) {
	switch scope.Role {
	case domain.RoleSuperAdmin:
		return s.CompanyRevenue(ctx, nil, from, to)
	case domain.RoleCompany:
		companyID := scope.CompanyID
		return s.CompanyRevenue(ctx, &companyID, from, to)
	}
	return nil, domain.Forbidden("revenue reports are limited to administrators and companies")
}

func (s *reportService) CompanyRevenue(ctx context.Context, companyID *primitive.ObjectID, from, to time.Time) (*RevenueSummary, error) {
	if !to.After(from) {
		return nil, domain.InvalidRequest("to", "must be after from")
	}
	logger.EnterMethod("reportService.CompanyRevenue", "companyID", companyID, "from", from, "to", to)

	bookings, err := s.bookings.ListPickedUpBetween(ctx, companyID, from, to)
	if err != nil {
		logger.ExitMethodWithError("reportService.CompanyRevenue", err)
		return nil, err
	}

	sum := &RevenueSummary{
		From:             from,
		To:               to,
		CompanyID:        companyID,
		Subtotal:         decimal.Zero,
		CouponDiscount:   decimal.Zero,
		VATAmount:        decimal.Zero,
		GrandTotal:       decimal.Zero,
		RefundableAmount: decimal.Zero,
	}
	for _, b := range bookings {
		fb, err := s.engine.Breakdown(finance.FromBooking(b))
		if err != nil {
			logger.Warn("Booking left out of revenue summary", "bookingID", b.ID.Hex(), "error", err)
			sum.Skipped++
			continue
		}
		sum.Bookings++
		if b.CancelledAt != nil {
			sum.Cancelled++
		}
		sum.Subtotal = sum.Subtotal.Add(fb.Subtotal).Add(fb.ExtensionSubtotal)
		sum.CouponDiscount = sum.CouponDiscount.Add(fb.CouponDiscount).Add(fb.ExtensionCouponDiscount)
		sum.VATAmount = sum.VATAmount.Add(fb.VATAmount).Add(fb.ExtensionVATAmount)
		sum.GrandTotal = sum.GrandTotal.Add(fb.GrandTotal)
		sum.RefundableAmount = sum.RefundableAmount.Add(fb.RefundableAmount)
	}

	logger.ExitMethod("reportService.CompanyRevenue", "bookings", sum.Bookings, "skipped", sum.Skipped, "grandTotal", sum.GrandTotal.String())
	return sum, nil
}
