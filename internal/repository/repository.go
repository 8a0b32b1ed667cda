package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/query"
)

type CompanyRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Company, error)
	ListActive(ctx context.Context) ([]domain.Company, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

type CarRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Car, error)
	GetModel(ctx context.Context, id primitive.ObjectID) (*domain.CarModel, error)
}

type BookingRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Booking, error)
	// ListPickedUpBetween returns live bookings with from <= pickupDate < to.
	// A nil companyID spans every company.
	ListPickedUpBetween(ctx context.Context, companyID *primitive.ObjectID, from, to time.Time) ([]domain.Booking, error)
}

type TransactionRepository interface {
	ListByBooking(ctx context.Context, bookingID primitive.ObjectID) ([]domain.Transaction, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	MarkAsRead(ctx context.Context, id, recipientID primitive.ObjectID) error
}

// Store bundles the aggregation executor used by list endpoints with the
// per-collection repositories.
type Store struct {
	Lists query.Executor
	CompanyRepository
	UserRepository
	CarRepository
	BookingRepository
	TransactionRepository
	NotificationRepository
}
