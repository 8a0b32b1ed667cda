package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/listing"
	"carrental-backend/internal/service"
)

func TestNotificationService(t *testing.T) {
	ctx := context.Background()

	t.Run("Notify", func(t *testing.T) {
		repo := new(MockNotificationRepo)
		svc := service.NewNotificationService(repo)
		note := &domain.Notification{RecipientID: primitive.NewObjectID(), Title: "Revenue"}
		repo.On("Create", ctx, note).Return(nil)

		assert.NoError(t, svc.Notify(ctx, note))
		repo.AssertExpectations(t)
	})

	t.Run("MarkAsReadUsesCaller", func(t *testing.T) {
		repo := new(MockNotificationRepo)
		svc := service.NewNotificationService(repo)
		caller := listing.Scope{Role: domain.RoleUser, SubjectID: primitive.NewObjectID()}
		id := primitive.NewObjectID()
		repo.On("MarkAsRead", ctx, id, caller.SubjectID).Return(domain.NotFound("notification"))

		err := svc.MarkAsRead(ctx, caller, id)
		assert.True(t, domain.IsNotFound(err))
		repo.AssertExpectations(t)
	})
}
