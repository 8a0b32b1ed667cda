package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Notification struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RecipientID   primitive.ObjectID `bson:"recipientId" json:"recipientId"`
	RecipientRole Role               `bson:"recipientRole" json:"recipientRole"`
	Title         string             `bson:"title" json:"title"`
	Message       string             `bson:"message" json:"message"`
	IsRead        bool               `bson:"isRead" json:"isRead"`
	IsDeleted     bool               `bson:"isDeleted" json:"-"`
	Attributes    map[string]string  `bson:"attributes,omitempty" json:"attributes,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
