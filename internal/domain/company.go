package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Company struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone" json:"phone"`
	City      string             `bson:"city" json:"city"`
	Address   string             `bson:"address" json:"address"`
	VATNumber string             `bson:"vatNumber" json:"vatNumber"`
	IsActive  bool               `bson:"isActive" json:"isActive"`
	IsDeleted bool               `bson:"isDeleted" json:"-"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
