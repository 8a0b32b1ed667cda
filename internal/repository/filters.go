package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Filters shared by the MongoDB and in-memory repositories.

var notDeleted = bson.E{Key: "isDeleted", Value: false}

func LiveByID(id primitive.ObjectID) bson.D {
	return bson.D{{Key: "_id", Value: id}, notDeleted}
}

func ActiveCompanies() bson.D {
	return bson.D{notDeleted, {Key: "isActive", Value: true}}
}

func PickedUpBetween(companyID *primitive.ObjectID, from, to time.Time) bson.D {
	filter := bson.D{notDeleted}
	if companyID != nil {
		filter = append(filter, bson.E{Key: "companyId", Value: *companyID})
	}
	return append(filter, bson.E{Key: "pickupDate", Value: bson.D{
		{Key: "$gte", Value: from.UTC()},
		{Key: "$lt", Value: to.UTC()},
	}})
}

func TransactionsOfBooking(bookingID primitive.ObjectID) bson.D {
	return bson.D{{Key: "bookingId", Value: bookingID}, notDeleted}
}

func NotificationOf(id, recipientID primitive.ObjectID) bson.D {
	return bson.D{{Key: "_id", Value: id}, {Key: "recipientId", Value: recipientID}, notDeleted}
}
