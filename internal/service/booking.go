package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/finance"
	"carrental-backend/internal/invoice"
	"carrental-backend/internal/listing"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"
)

// BookingDetail is a booking with its derived amounts.
type BookingDetail struct {
	Booking    domain.Booking             `json:"booking"`
	Financials finance.FinancialBreakdown `json:"financials"`
}

type bookingService struct {
	bookings     repository.BookingRepository
	companies    repository.CompanyRepository
	users        repository.UserRepository
	cars         repository.CarRepository
	transactions repository.TransactionRepository
	engine       *finance.Engine
	now          func() time.Time
}

func NewBookingService(store *repository.Store, engine *finance.Engine) BookingService {
	return &bookingService{
		bookings:     store.BookingRepository,
		companies:    store.CompanyRepository,
		users:        store.UserRepository,
		cars:         store.CarRepository,
		transactions: store.TransactionRepository,
		engine:       engine,
		now:          time.Now,
	}
}

func (s *bookingService) GetBooking(ctx context.Context, scope listing.Scope, id primitive.ObjectID) (*BookingDetail, error) {
	logger.EnterMethod("bookingService.GetBooking", "bookingID", id.Hex(), "role", scope.Role)

	b, err := s.load(ctx, scope, id)
	if err != nil {
		logger.ExitMethodWithError("bookingService.GetBooking", err, "bookingID", id.Hex())
		return nil, err
	}
	fb, err := s.engine.Breakdown(finance.FromBooking(*b))
	if err != nil {
		logger.ExitMethodWithError("bookingService.GetBooking", err, "bookingID", id.Hex(), "reason", "inconsistent amounts")
		return nil, err
	}

	logger.ExitMethod("bookingService.GetBooking", "bookingID", id.Hex(), "grandTotal", fb.GrandTotal.String())
	return &BookingDetail{Booking: *b, Financials: fb}, nil
}

func (s *bookingService) GetInvoice(ctx context.Context, scope listing.Scope, id primitive.ObjectID) (*invoice.Invoice, error) {
	logger.EnterMethod("bookingService.GetInvoice", "bookingID", id.Hex(), "role", scope.Role)

	detail, err := s.GetBooking(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	b := detail.Booking
	src := invoice.Sources{Booking: b}

	if src.Company, err = optional(s.companies.GetByID(ctx, b.CompanyID)); err != nil {
		return nil, err
	}
	if src.Customer, err = optional(s.users.GetByID(ctx, b.UserID)); err != nil {
		return nil, err
	}
	if src.Car, err = optional(s.cars.GetByID(ctx, b.CarID)); err != nil {
		return nil, err
	}
	if src.Car != nil {
		if src.Model, err = optional(s.cars.GetModel(ctx, src.Car.ModelID)); err != nil {
			return nil, err
		}
	}
	if src.Transactions, err = s.transactions.ListByBooking(ctx, b.ID); err != nil {
		logger.ExitMethodWithError("bookingService.GetInvoice", err, "bookingID", id.Hex())
		return nil, err
	}

	inv := invoice.New(src, detail.Financials, s.engine.Config().CurrencyPlaces, s.now().UTC())
	logger.ExitMethod("bookingService.GetInvoice", "invoice", inv.Number)
	return &inv, nil
}

func (s *bookingService) load(ctx context.Context, scope listing.Scope, id primitive.ObjectID) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canView(scope, b) {
		return nil, domain.Forbidden("booking belongs to another account")
	}
	return b, nil
}

func canView(scope listing.Scope, b *domain.Booking) bool {
	switch scope.Role {
	case domain.RoleSuperAdmin:
		return true
	case domain.RoleCompany:
		return b.CompanyID == scope.CompanyID
	case domain.RoleAgent:
		return b.AgentID != nil && *b.AgentID == scope.SubjectID
	case domain.RoleUser:
		return b.UserID == scope.SubjectID
	}
	return false
}

// optional turns a NotFound into a nil document.
func optional[T any](v *T, err error) (*T, error) {
	if domain.IsNotFound(err) {
		return nil, nil
	}
	return v, err
}
