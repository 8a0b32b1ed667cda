package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

type transactionRepository struct {
	coll *mongo.Collection
}

func NewTransactionRepository(db *mongo.Database) repository.TransactionRepository {
	return &transactionRepository{coll: db.Collection(domain.CollectionTransactions)}
}

func (r *transactionRepository) ListByBooking(ctx context.Context, bookingID primitive.ObjectID) ([]domain.Transaction, error) {
	return findAll[domain.Transaction](ctx, r.coll, repository.TransactionsOfBooking(bookingID),
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
}
