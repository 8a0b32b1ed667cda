package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

type carRepository struct {
	cars   *mongo.Collection
	models *mongo.Collection
}

func NewCarRepository(db *mongo.Database) repository.CarRepository {
	return &carRepository{
		cars:   db.Collection(domain.CollectionCars),
		models: db.Collection(domain.CollectionCarModels),
	}
}

func (r *carRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Car, error) {
	var c domain.Car
	if err := findOne(ctx, r.cars, repository.LiveByID(id), "car", &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *carRepository) GetModel(ctx context.Context, id primitive.ObjectID) (*domain.CarModel, error) {
	var m domain.CarModel
	if err := findOne(ctx, r.models, bson.D{{Key: "_id", Value: id}}, "car model", &m); err != nil {
		return nil, err
	}
	return &m, nil
}
