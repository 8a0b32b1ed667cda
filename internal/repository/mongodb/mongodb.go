package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"
)

// Connect opens a client and verifies the deployment answers within timeout.
func Connect(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	logger.ExternalServiceCall("mongodb", "connect")
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetConnectTimeout(timeout))
	if err != nil {
		logger.ExternalServiceResult("mongodb", "connect", err)
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		logger.ExternalServiceResult("mongodb", "ping", err)
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	logger.ExternalServiceResult("mongodb", "connect", nil)
	return client, nil
}

func NewStore(db *mongo.Database) *repository.Store {
	return &repository.Store{
		Lists:                  NewExecutor(db),
		CompanyRepository:      NewCompanyRepository(db),
		UserRepository:         NewUserRepository(db),
		CarRepository:          NewCarRepository(db),
		BookingRepository:      NewBookingRepository(db),
		TransactionRepository:  NewTransactionRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}

// findOne decodes the first match into out, mapping "no documents" to NotFound.
func findOne(ctx context.Context, coll *mongo.Collection, filter bson.D, resource string, out any) error {
	logger.DatabaseCall("FIND_ONE", coll.Name(), "filter", filter)
	err := coll.FindOne(ctx, filter).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		logger.DatabaseResult("FIND_ONE", 0, nil)
		return domain.NotFound(resource)
	}
	logger.DatabaseResult("FIND_ONE", 1, err)
	if err != nil {
		return domain.ExecutionFailure("find "+resource, err)
	}
	return nil
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter bson.D, opts ...*options.FindOptions) ([]T, error) {
	logger.DatabaseCall("FIND", coll.Name(), "filter", filter)
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		logger.DatabaseResult("FIND", 0, err)
		return nil, domain.ExecutionFailure("find in "+coll.Name(), err)
	}
	out := []T{}
	err = cursor.All(ctx, &out)
	logger.DatabaseResult("FIND", int64(len(out)), err)
	if err != nil {
		return nil, domain.ExecutionFailure("decode "+coll.Name(), err)
	}
	return out, nil
}
