package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"carrental-backend/internal/logger"
)

// Executor runs list pipelines against a database.
type Executor struct {
	db *mongo.Database
}

func NewExecutor(db *mongo.Database) *Executor {
	return &Executor{db: db}
}

func (e *Executor) Aggregate(ctx context.Context, collection string, pipeline mongo.Pipeline) ([]bson.M, error) {
	logger.PipelineCall(collection, len(pipeline))

	cursor, err := e.db.Collection(collection).Aggregate(ctx, pipeline, options.Aggregate().SetAllowDiskUse(true))
	if err != nil {
		logger.PipelineResult(collection, 0, err)
		return nil, err
	}
	var docs []bson.M
	err = cursor.All(ctx, &docs)
	logger.PipelineResult(collection, len(docs), err)
	if err != nil {
		return nil, err
	}
	return docs, nil
}
