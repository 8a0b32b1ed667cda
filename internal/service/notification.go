package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/listing"
	"carrental-backend/internal/repository"
)

type notificationService struct {
	noteRepo repository.NotificationRepository
}

func NewNotificationService(noteRepo repository.NotificationRepository) NotificationService {
	return &notificationService{noteRepo: noteRepo}
}

func (s *notificationService) Notify(ctx context.Context, note *domain.Notification) error {
	return s.noteRepo.Create(ctx, note)
}

func (s *notificationService) MarkAsRead(ctx context.Context, scope listing.Scope, notificationID primitive.ObjectID) error {
	return s.noteRepo.MarkAsRead(ctx, notificationID, scope.SubjectID)
}
