package memory

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

// NewStore wires every repository to one shared executor.
func NewStore(exec *Executor) *repository.Store {
	return &repository.Store{
		Lists:                  exec,
		CompanyRepository:      &companyRepository{exec: exec},
		UserRepository:         &userRepository{exec: exec},
		CarRepository:          &carRepository{exec: exec},
		BookingRepository:      &bookingRepository{exec: exec},
		TransactionRepository:  &transactionRepository{exec: exec},
		NotificationRepository: &notificationRepository{exec: exec},
	}
}

func getLive(exec *Executor, collection string, id primitive.ObjectID, resource string, out any) error {
	found, err := exec.findOne(collection, repository.LiveByID(id), out)
	if err != nil {
		return err
	}
	if !found {
		return domain.NotFound(resource)
	}
	return nil
}

func findAll[T any](exec *Executor, collection string, filter bson.D) ([]T, error) {
	docs, err := exec.find(collection, filter)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		var item T
		if err := fromDocument(doc, &item); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

type companyRepository struct{ exec *Executor }

func (r *companyRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Company, error) {
	var c domain.Company
	if err := getLive(r.exec, domain.CollectionCompanies, id, "company", &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *companyRepository) ListActive(ctx context.Context) ([]domain.Company, error) {
	return findAll[domain.Company](r.exec, domain.CollectionCompanies, repository.ActiveCompanies())
}

type userRepository struct{ exec *Executor }

func (r *userRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	var u domain.User
	if err := getLive(r.exec, domain.CollectionUsers, id, "user", &u); err != nil {
		return nil, err
	}
	return &u, nil
}

type carRepository struct{ exec *Executor }

func (r *carRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Car, error) {
	var c domain.Car
	if err := getLive(r.exec, domain.CollectionCars, id, "car", &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *carRepository) GetModel(ctx context.Context, id primitive.ObjectID) (*domain.CarModel, error) {
	var m domain.CarModel
	found, err := r.exec.findOne(domain.CollectionCarModels, bson.D{{Key: "_id", Value: id}}, &m)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.NotFound("car model")
	}
	return &m, nil
}

type bookingRepository struct{ exec *Executor }

func (r *bookingRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Booking, error) {
	var b domain.Booking
	if err := getLive(r.exec, domain.CollectionBookings, id, "booking", &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) ListPickedUpBetween(ctx context.Context, companyID *primitive.ObjectID, from, to time.Time) ([]domain.Booking, error) {
	return findAll[domain.Booking](r.exec, domain.CollectionBookings, repository.PickedUpBetween(companyID, from, to))
}

type transactionRepository struct{ exec *Executor }

func (r *transactionRepository) ListByBooking(ctx context.Context, bookingID primitive.ObjectID) ([]domain.Transaction, error) {
	return findAll[domain.Transaction](r.exec, domain.CollectionTransactions, repository.TransactionsOfBooking(bookingID))
}

type notificationRepository struct{ exec *Executor }

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	return r.exec.Insert(domain.CollectionNotifications, n)
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id, recipientID primitive.ObjectID) error {
	found, err := r.exec.updateOne(domain.CollectionNotifications,
		repository.NotificationOf(id, recipientID),
		bson.D{{Key: "isRead", Value: true}})
	if err != nil {
		return err
	}
	if !found {
		return domain.NotFound("notification")
	}
	return nil
}
