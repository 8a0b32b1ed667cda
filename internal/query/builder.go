package query

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// SortKeyField is the temporary field holding the lower-cased sort key.
const SortKeyField = "__sortKey"

var errNoCollection = errors.New("query: spec has no collection")

// matchNothing is a predicate no document satisfies.
func matchNothing() bson.D {
	return bson.D{{Key: "$expr", Value: false}}
}

// Build compiles a list request against a spec into a single aggregation
// pipeline. Stage order is fixed: joins, base filter, date range, search,
// sort, then one $facet producing the page and the filtered total.
func Build(req ListRequest, spec QuerySpec) (mongo.Pipeline, error) {
	if spec.Collection == "" {
		return nil, errNoCollection
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{}

	for _, j := range spec.Joins {
		pipeline = append(pipeline,
			bson.D{{Key: "$lookup", Value: bson.D{
				{Key: "from", Value: j.From},
				{Key: "localField", Value: j.LocalField},
				{Key: "foreignField", Value: j.ForeignField},
				{Key: "as", Value: j.As},
			}}},
			bson.D{{Key: "$unwind", Value: bson.D{
				{Key: "path", Value: "$" + j.As},
				{Key: "preserveNullAndEmptyArrays", Value: j.PreserveUnmatched},
			}}},
		)
	}

	if len(spec.Match) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: spec.Match}})
	}

	if stage, ok := dateRangeStage(req.DateRange, spec.DateField); ok {
		pipeline = append(pipeline, stage)
	}

	if stage, ok := searchStage(req, spec); ok {
		pipeline = append(pipeline, stage)
	}

	pipeline = append(pipeline, sortStages(req, spec)...)

	return append(pipeline, facetStage(req, spec)), nil
}

func dateRangeStage(dr *DateRange, field string) (bson.D, bool) {
	if dr == nil || field == "" || (dr.From == nil && dr.Until == nil) {
		return nil, false
	}
	cond := bson.D{}
	if dr.From != nil {
		cond = append(cond, bson.E{Key: "$gte", Value: dr.From.UTC()})
	}
	if dr.Until != nil {
		cond = append(cond, bson.E{Key: "$lt", Value: dr.Until.UTC()})
	}
	return bson.D{{Key: "$match", Value: bson.D{{Key: field, Value: cond}}}}, true
}

func searchStage(req ListRequest, spec QuerySpec) (bson.D, bool) {
	term := req.SearchTerm()
	if term == "" {
		return nil, false
	}
	var or bson.A
	for _, requested := range req.Columns {
		col, ok := spec.resolve(requested)
		if !ok {
			continue
		}
		or = append(or, columnPredicate(col, term))
	}
	if len(or) == 0 {
		return nil, false
	}
	return bson.D{{Key: "$match", Value: bson.D{{Key: "$or", Value: or}}}}, true
}

func columnPredicate(col Column, term string) bson.D {
	switch {
	case col.IsNumber:
		n, err := strconv.ParseInt(term, 10, 64)
		if err != nil {
			return matchNothing()
		}
		return bson.D{{Key: col.Name, Value: n}}
	case col.IsBoolean:
		return bson.D{{Key: col.Name, Value: IsAffirmative(term)}}
	default:
		return bson.D{{Key: col.Name, Value: primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}}}
	}
}

// IsAffirmative reports whether a search term reads as "yes".
func IsAffirmative(term string) bool {
	switch strings.ToLower(strings.TrimSpace(term)) {
	case "yes", "ye", "y":
		return true
	}
	return false
}

func sortStages(req ListRequest, spec QuerySpec) []bson.D {
	if req.Order == nil || req.Order.Column < 0 || req.Order.Column >= len(req.Columns) {
		return nil
	}
	col, ok := spec.resolve(req.Columns[req.Order.Column])
	if !ok {
		return nil
	}
	dir := -1
	if req.Order.Ascending() {
		dir = 1
	}

	if col.IsNumber || col.IsBoolean {
		return []bson.D{
			{{Key: "$sort", Value: bson.D{{Key: col.Name, Value: dir}, {Key: "_id", Value: 1}}}},
		}
	}
	return []bson.D{
		{{Key: "$addFields", Value: bson.D{{Key: SortKeyField, Value: bson.D{{Key: "$toLower", Value: "$" + col.Name}}}}}},
		{{Key: "$sort", Value: bson.D{{Key: SortKeyField, Value: dir}, {Key: "_id", Value: 1}}}},
		{{Key: "$unset", Value: SortKeyField}},
	}
}

func facetStage(req ListRequest, spec QuerySpec) bson.D {
	data := bson.A{}
	if req.Length > 0 {
		if req.Start > 0 {
			data = append(data, bson.D{{Key: "$skip", Value: int64(req.Start)}})
		}
		data = append(data, bson.D{{Key: "$limit", Value: int64(req.Length)}})
		if len(spec.Project) > 0 {
			data = append(data, bson.D{{Key: "$project", Value: spec.Project}})
		}
	} else {
		data = append(data, bson.D{{Key: "$match", Value: matchNothing()}})
	}

	return bson.D{{Key: "$facet", Value: bson.D{
		{Key: "data", Value: data},
		{Key: "total", Value: bson.A{bson.D{{Key: "$count", Value: "count"}}}},
	}}}
}
