package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CarModel struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name  string             `bson:"name" json:"name"`
	Brand string             `bson:"brand" json:"brand"`
}

type Car struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CompanyID   primitive.ObjectID `bson:"companyId" json:"companyId"`
	ModelID     primitive.ObjectID `bson:"modelId" json:"modelId"`
	PlateNumber string             `bson:"plateNumber" json:"plateNumber"`
	Color       string             `bson:"color" json:"color"`
	Year        int                `bson:"year" json:"year"`
	DailyRate   float64            `bson:"dailyRate" json:"dailyRate"`
	IsAvailable bool               `bson:"isAvailable" json:"isAvailable"`
	IsDeleted   bool               `bson:"isDeleted" json:"-"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
