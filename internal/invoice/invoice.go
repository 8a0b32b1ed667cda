package invoice

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/finance"
)

type Party struct {
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	VATNumber string `json:"vatNumber,omitempty"`
}

type Payment struct {
	Reference string                   `json:"reference"`
	Method    string                   `json:"method"`
	Status    domain.TransactionStatus `json:"status"`
	Amount    decimal.Decimal          `json:"amount"`
	PaidAt    time.Time                `json:"paidAt"`
}

// Invoice is the printable view of a booking. Every amount in it comes from
// the same breakdown the list and detail endpoints return.
type Invoice struct {
	Number        string                     `json:"number"`
	IssuedAt      time.Time                  `json:"issuedAt"`
	BookingID     primitive.ObjectID         `json:"bookingId"`
	BookingNumber int64                      `json:"bookingNumber"`
	Status        domain.BookingStatus       `json:"status"`
	Company       Party                      `json:"company"`
	Customer      Party                      `json:"customer"`
	Vehicle       string                     `json:"vehicle"`
	PickupDate    time.Time                  `json:"pickupDate"`
	DropDate      time.Time                  `json:"dropDate"`
	Days          int                        `json:"days"`
	ExtensionDays int                        `json:"extensionDays,omitempty"`
	DailyRate     decimal.Decimal            `json:"dailyRate"`
	VATRate       decimal.Decimal            `json:"vatRate"`
	CouponCode    string                     `json:"couponCode,omitempty"`
	CancelledAt   *time.Time                 `json:"cancelledAt,omitempty"`
	Financials    finance.FinancialBreakdown `json:"financials"`
	Payments      []Payment                  `json:"payments"`
	AmountPaid    decimal.Decimal            `json:"amountPaid"`
	// Places is the number of decimals amounts are printed with.
	Places int32 `json:"-"`
}

// Sources are the documents an invoice is assembled from. Company, Customer,
// Car and Model may be nil when the referenced document no longer exists.
type Sources struct {
	Booking      domain.Booking
	Company      *domain.Company
	Customer     *domain.User
	Car          *domain.Car
	Model        *domain.CarModel
	Transactions []domain.Transaction
}

func Number(bookingNumber int64) string {
	return fmt.Sprintf("INV-%06d", bookingNumber)
}

func New(src Sources, fb finance.FinancialBreakdown, places int32, issuedAt time.Time) Invoice {
	b := src.Booking
	inv := Invoice{
		Number:        Number(b.BookingNumber),
		IssuedAt:      issuedAt,
		BookingID:     b.ID,
		BookingNumber: b.BookingNumber,
		Status:        b.Status,
		Vehicle:       vehicle(src.Car, src.Model),
		PickupDate:    b.PickupDate,
		DropDate:      b.DropDate,
		Days:          b.Days,
		DailyRate:     decimal.NewFromFloat(b.DailyRate),
		VATRate:       decimal.NewFromFloat(b.VATRate),
		CouponCode:    b.CouponCode,
		CancelledAt:   b.CancelledAt,
		Financials:    fb,
		Payments:      []Payment{},
		AmountPaid:    decimal.Zero,
		Places:        places,
	}
	if b.ExtensionDays != nil {
		inv.ExtensionDays = *b.ExtensionDays
	}
	if c := src.Company; c != nil {
		inv.Company = Party{Name: c.Name, Email: c.Email, Phone: c.Phone,
			Address: joinNonEmpty(", ", c.Address, c.City), VATNumber: c.VATNumber}
	}
	if u := src.Customer; u != nil {
		inv.Customer = Party{Name: u.FullName(), Email: u.Email, Phone: u.Phone}
	}

	for _, tx := range src.Transactions {
		amount := decimal.NewFromFloat(tx.Amount)
		inv.Payments = append(inv.Payments, Payment{
			Reference: tx.Reference,
			Method:    tx.Method,
			Status:    tx.Status,
			Amount:    amount,
			PaidAt:    tx.CreatedAt,
		})
		if tx.Status == domain.TransactionStatusPaid {
			inv.AmountPaid = inv.AmountPaid.Add(amount)
		}
	}
	return inv
}

func (inv Invoice) Filename() string {
	return inv.Number + ".pdf"
}

func (inv Invoice) money(d decimal.Decimal) string {
	return d.StringFixed(inv.Places)
}

func vehicle(car *domain.Car, model *domain.CarModel) string {
	var name, plate string
	if model != nil {
		name = joinNonEmpty(" ", model.Brand, model.Name)
	}
	if car != nil {
		plate = car.PlateNumber
	}
	switch {
	case name != "" && plate != "":
		return fmt.Sprintf("%s (%s)", name, plate)
	case name != "":
		return name
	}
	return plate
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
