package memory

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"carrental-backend/internal/logger"
)

// Executor keeps collections in process and evaluates aggregation pipelines
// over them. It backs the "memory" storage type and the list tests.
type Executor struct {
	mu          sync.RWMutex
	collections map[string][]bson.M
}

func NewExecutor() *Executor {
	return &Executor{collections: make(map[string][]bson.M)}
}

// Insert stores documents after a bson round trip, so they carry the same
// types a MongoDB read would return. Missing _id values are generated.
func (e *Executor) Insert(collection string, docs ...any) error {
	stored := make([]bson.M, 0, len(docs))
	for _, doc := range docs {
		m, err := toDocument(doc)
		if err != nil {
			return fmt.Errorf("insert into %s: %w", collection, err)
		}
		if _, ok := m["_id"]; !ok {
			m["_id"] = primitive.NewObjectID()
		}
		stored = append(stored, m)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.collections[collection] = append(e.collections[collection], stored...)
	return nil
}

func (e *Executor) Aggregate(ctx context.Context, collection string, pipeline mongo.Pipeline) ([]bson.M, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger.PipelineCall(collection, len(pipeline))

	e.mu.RLock()
	defer e.mu.RUnlock()

	docs, err := e.run(append([]bson.M(nil), e.collections[collection]...), pipeline)
	logger.PipelineResult(collection, len(docs), err)
	return docs, err
}

func (e *Executor) find(collection string, filter bson.D) ([]bson.M, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return matchStage(e.collections[collection], filter)
}

func (e *Executor) findOne(collection string, filter bson.D, out any) (bool, error) {
	docs, err := e.find(collection, filter)
	if err != nil || len(docs) == 0 {
		return false, err
	}
	return true, fromDocument(docs[0], out)
}

// updateOne applies set to the first document matching filter and reports
// whether one matched.
func (e *Executor) updateOne(collection string, filter, set bson.D) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, doc := range e.collections[collection] {
		ok, err := matches(doc, filter)
		if err != nil {
			return false, err
		}
		if !ok {
			continue
		}
		updated := clone(doc)
		for _, f := range set {
			assign(updated, f.Key, normalize(f.Value))
		}
		e.collections[collection][i] = updated
		return true, nil
	}
	return false, nil
}

func toDocument(v any) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func fromDocument(m bson.M, out any) error {
	raw, err := bson.Marshal(m)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, out)
}
