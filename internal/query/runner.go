package query

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"carrental-backend/internal/domain"
)

// Executor runs an aggregation pipeline against a named collection.
type Executor interface {
	Aggregate(ctx context.Context, collection string, pipeline mongo.Pipeline) ([]bson.M, error)
}

// ListResult is one page of rows plus the number of rows matching all filters.
type ListResult struct {
	RecordsTotal int64    `json:"recordsTotal"`
	Data         []bson.M `json:"data"`
}

// Run builds the pipeline and executes it in a single round trip.
func Run(ctx context.Context, exec Executor, req ListRequest, spec QuerySpec) (ListResult, error) {
	pipeline, err := Build(req, spec)
	if err != nil {
		return ListResult{}, err
	}
	docs, err := exec.Aggregate(ctx, spec.Collection, pipeline)
	if err != nil {
		return ListResult{}, domain.ExecutionFailure("aggregate "+spec.Collection, err)
	}
	return decodeFacet(docs), nil
}

func decodeFacet(docs []bson.M) ListResult {
	result := ListResult{Data: []bson.M{}}
	if len(docs) == 0 {
		return result
	}
	facet := docs[0]
	result.Data = append(result.Data, toDocs(facet["data"])...)
	if totals := toDocs(facet["total"]); len(totals) > 0 {
		result.RecordsTotal = toInt64(totals[0]["count"])
	}
	return result
}

func toDocs(v any) []bson.M {
	var items []any
	switch t := v.(type) {
	case bson.A:
		items = t
	case []any:
		items = t
	case []bson.M:
		return t
	default:
		return nil
	}
	out := make([]bson.M, 0, len(items))
	for _, item := range items {
		switch d := item.(type) {
		case bson.M:
			out = append(out, d)
		case map[string]any:
			out = append(out, bson.M(d))
		case bson.D:
			out = append(out, d.Map())
		}
	}
	return out
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int32:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	case primitive.Decimal128:
		if i, _, err := n.BigInt(); err == nil {
			return i.Int64()
		}
	}
	return 0
}
