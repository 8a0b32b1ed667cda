package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/finance"
)

// QuoteRequest prices a prospective booking. Either Days or both dates must
// be given; Days wins when all three are present. ExtendedDropDate derives
// ExtensionDays from DropDate when no explicit count is sent.
type QuoteRequest struct {
	DailyRate        decimal.Decimal  `json:"dailyRate"`
	Days             *int             `json:"days,omitempty"`
	PickupDate       *time.Time       `json:"pickupDate,omitempty"`
	DropDate         *time.Time       `json:"dropDate,omitempty"`
	VATRate          decimal.Decimal  `json:"vatRate"`
	CouponPercentage *decimal.Decimal `json:"couponPercentage,omitempty"`
	ExtensionDays    *int             `json:"extensionDays,omitempty"`
	ExtendedDropDate *time.Time       `json:"extendedDropDate,omitempty"`
	DepositAmount    decimal.Decimal  `json:"depositAmount"`
}

type quoteService struct {
	engine *finance.Engine
}

func NewQuoteService(engine *finance.Engine) QuoteService {
	return &quoteService{engine: engine}
}

func (s *quoteService) Quote(ctx context.Context, req QuoteRequest) (*finance.FinancialBreakdown, error) {
	days, err := quoteDays(req)
	if err != nil {
		return nil, err
	}
	fb, err := s.engine.Breakdown(finance.BookingFinancials{
		DailyRate:        req.DailyRate,
		Days:             days,
		VATRate:          req.VATRate,
		CouponPercentage: req.CouponPercentage,
		ExtensionDays:    quoteExtensionDays(req),
		DepositAmount:    req.DepositAmount,
	})
	if err != nil {
		return nil, err
	}
	return &fb, nil
}

func quoteDays(req QuoteRequest) (int, error) {
	if req.Days != nil {
		return *req.Days, nil
	}
	if req.PickupDate == nil || req.DropDate == nil {
		return 0, domain.InvalidInput("days", "required unless pickupDate and dropDate are given")
	}
	return finance.RentalDays(*req.PickupDate, *req.DropDate)
}

func quoteExtensionDays(req QuoteRequest) *int {
	if req.ExtensionDays != nil || req.ExtendedDropDate == nil || req.DropDate == nil {
		return req.ExtensionDays
	}
	n := finance.ExtensionDays(*req.DropDate, *req.ExtendedDropDate)
	return &n
}
