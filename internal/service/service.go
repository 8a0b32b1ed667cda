package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/finance"
	"carrental-backend/internal/invoice"
	"carrental-backend/internal/listing"
	"carrental-backend/internal/query"
)

type ListService interface {
	List(ctx context.Context, entity string, scope listing.Scope, req query.ListRequest) (*query.ListResult, error)
}

type BookingService interface {
	GetBooking(ctx context.Context, scope listing.Scope, id primitive.ObjectID) (*BookingDetail, error)
	GetInvoice(ctx context.Context, scope listing.Scope, id primitive.ObjectID) (*invoice.Invoice, error)
}

type QuoteService interface {
	Quote(ctx context.Context, req QuoteRequest) (*finance.FinancialBreakdown, error)
}

type ReportService interface {
	RevenueSummary(ctx context.Context, scope listing.Scope, from, to time.Time) (*RevenueSummary, error)
	CompanyRevenue(ctx context.Context, companyID *primitive.ObjectID, from, to time.Time) (*RevenueSummary, error)
}

type NotificationService interface {
	Notify(ctx context.Context, note *domain.Notification) error
	MarkAsRead(ctx context.Context, scope listing.Scope, notificationID primitive.ObjectID) error
}
