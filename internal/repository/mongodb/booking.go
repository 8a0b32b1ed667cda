package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"
)

type bookingRepository struct {
	coll *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) repository.BookingRepository {
	return &bookingRepository{coll: db.Collection(domain.CollectionBookings)}
}

func (r *bookingRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Booking, error) {
	var b domain.Booking
	if err := findOne(ctx, r.coll, repository.LiveByID(id), "booking", &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) ListPickedUpBetween(ctx context.Context, companyID *primitive.ObjectID, from, to time.Time) ([]domain.Booking, error) {
	logger.EnterMethod("bookingRepository.ListPickedUpBetween", "companyID", companyID, "from", from, "to", to)
	bookings, err := findAll[domain.Booking](ctx, r.coll, repository.PickedUpBetween(companyID, from, to),
		options.Find().SetSort(bson.D{{Key: "pickupDate", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		logger.ExitMethodWithError("bookingRepository.ListPickedUpBetween", err)
		return nil, err
	}
	logger.ExitMethod("bookingRepository.ListPickedUpBetween", "count", len(bookings))
	return bookings, nil
}
