package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"
)

type notificationRepository struct {
	coll *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) repository.NotificationRepository {
	return &notificationRepository{coll: db.Collection(domain.CollectionNotifications)}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	logger.EnterMethod("notificationRepository.Create", "recipientID", n.RecipientID, "title", n.Title)

	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}

	logger.DatabaseCall("INSERT", r.coll.Name(), "recipientID", n.RecipientID)
	_, err := r.coll.InsertOne(ctx, n)
	logger.DatabaseResult("INSERT", 1, err, "notificationID", n.ID.Hex())

	if err != nil {
		logger.ExitMethodWithError("notificationRepository.Create", err, "recipientID", n.RecipientID)
		return domain.ExecutionFailure("insert notification", err)
	}
	logger.ExitMethod("notificationRepository.Create", "notificationID", n.ID.Hex())
	return nil
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id, recipientID primitive.ObjectID) error {
	logger.DatabaseCall("UPDATE", r.coll.Name(), "notificationID", id.Hex())
	res, err := r.coll.UpdateOne(ctx, repository.NotificationOf(id, recipientID),
		bson.D{{Key: "$set", Value: bson.D{{Key: "isRead", Value: true}}}})
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err)
		return domain.ExecutionFailure("mark notification read", err)
	}
	logger.DatabaseResult("UPDATE", res.MatchedCount, nil)
	if res.MatchedCount == 0 {
		return domain.NotFound("notification")
	}
	return nil
}
