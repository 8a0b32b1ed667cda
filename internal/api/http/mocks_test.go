package http_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/finance"
	"carrental-backend/internal/invoice"
	"carrental-backend/internal/listing"
	"carrental-backend/internal/query"
	"carrental-backend/internal/service"
)

// MockListService
type MockListService struct {
	mock.Mock
}

func (m *MockListService) List(ctx context.Context, entity string, scope listing.Scope, req query.ListRequest) (*query.ListResult, error) {
	args := m.Called(ctx, entity, scope, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*query.ListResult), args.Error(1)
}

// MockBookingService
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) GetBooking(ctx context.Context, scope listing.Scope, id primitive.ObjectID) (*service.BookingDetail, error) {
	args := m.Called(ctx, scope, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BookingDetail), args.Error(1)
}
func (m *MockBookingService) GetInvoice(ctx context.Context, scope listing.Scope, id primitive.ObjectID) (*invoice.Invoice, error) {
	args := m.Called(ctx, scope, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoice.Invoice), args.Error(1)
}

// MockQuoteService
type MockQuoteService struct {
	mock.Mock
}

func (m *MockQuoteService) Quote(ctx context.Context, req service.QuoteRequest) (*finance.FinancialBreakdown, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.FinancialBreakdown), args.Error(1)
}

// MockReportService
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) RevenueSummary(ctx context.Context, scope listing.Scope, from, to time.Time) (*service.RevenueSummary, error) {
	args := m.Called(ctx, scope, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RevenueSummary), args.Error(1)
}
func (m *MockReportService) CompanyRevenue(ctx context.Context, companyID *primitive.ObjectID, from, to time.Time) (*service.RevenueSummary, error) {
	args := m.Called(ctx, companyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RevenueSummary), args.Error(1)
}

// MockNotificationService
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) Notify(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationService) MarkAsRead(ctx context.Context, scope listing.Scope, notificationID primitive.ObjectID) error {
	args := m.Called(ctx, scope, notificationID)
	return args.Error(0)
}
