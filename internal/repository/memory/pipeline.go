package memory

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// run evaluates the stages the list compiler and the repositories emit.
// Anything else is reported as unsupported rather than guessed at.
func (e *Executor) run(docs []bson.M, stages []bson.D) ([]bson.M, error) {
	for _, stage := range stages {
		if len(stage) != 1 {
			return nil, fmt.Errorf("memory: a pipeline stage must have exactly one field, got %d", len(stage))
		}
		op, arg := stage[0].Key, normalize(stage[0].Value)

		var err error
		switch op {
		case "$lookup":
			docs, err = e.lookupStage(docs, arg)
		case "$unwind":
			docs, err = unwindStage(docs, arg)
		case "$match":
			docs, err = matchStage(docs, arg)
		case "$addFields", "$set":
			docs, err = addFieldsStage(docs, arg)
		case "$sort":
			docs, err = sortStage(docs, arg)
		case "$unset":
			docs, err = unsetStage(docs, arg)
		case "$skip":
			n, ok := toInt(arg)
			if !ok || n < 0 {
				return nil, fmt.Errorf("memory: $skip needs a non-negative integer, got %v", arg)
			}
			if n > len(docs) {
				n = len(docs)
			}
			docs = docs[n:]
		case "$limit":
			n, ok := toInt(arg)
			if !ok || n <= 0 {
				return nil, fmt.Errorf("memory: $limit needs a positive integer, got %v", arg)
			}
			if n < len(docs) {
				docs = docs[:n]
			}
		case "$count":
			name, ok := arg.(string)
			if !ok || name == "" {
				return nil, fmt.Errorf("memory: $count needs a field name")
			}
			if len(docs) == 0 {
				docs = []bson.M{}
			} else {
				docs = []bson.M{{name: int32(len(docs))}}
			}
		case "$facet":
			docs, err = e.facetStage(docs, arg)
		case "$project":
			docs, err = projectStage(docs, arg)
		default:
			err = fmt.Errorf("memory: unsupported stage %s", op)
		}
		if err != nil {
			return nil, err
		}
	}
	return docs, nil
}

func toStages(v any) ([]bson.D, error) {
	items, ok := normalize(v).(bson.A)
	if !ok {
		if stages, ok := v.([]bson.D); ok {
			return stages, nil
		}
		return nil, fmt.Errorf("memory: sub-pipeline must be an array, got %T", v)
	}
	stages := make([]bson.D, 0, len(items))
	for _, item := range items {
		d, ok := elements(item)
		if !ok {
			return nil, fmt.Errorf("memory: pipeline stage must be a document, got %T", item)
		}
		stages = append(stages, d)
	}
	return stages, nil
}

func stringField(d bson.D, key string) string {
	for _, e := range d {
		if e.Key == key {
			s, _ := e.Value.(string)
			return s
		}
	}
	return ""
}

func (e *Executor) lookupStage(docs []bson.M, arg any) ([]bson.M, error) {
	d, ok := elements(arg)
	if !ok {
		return nil, fmt.Errorf("memory: $lookup needs a document")
	}
	from, local, foreign, as := stringField(d, "from"), stringField(d, "localField"), stringField(d, "foreignField"), stringField(d, "as")
	if from == "" || local == "" || foreign == "" || as == "" {
		return nil, fmt.Errorf("memory: $lookup needs from, localField, foreignField and as")
	}

	related := e.collections[from]
	out := make([]bson.M, 0, len(docs))
	for _, doc := range docs {
		lv, _ := lookup(doc, local)
		joined := bson.A{}
		for _, candidate := range related {
			fv, _ := lookup(candidate, foreign)
			if joinMatches(lv, fv) {
				joined = append(joined, clone(candidate))
			}
		}
		c := clone(doc)
		assign(c, as, joined)
		out = append(out, c)
	}
	return out, nil
}

func joinMatches(local, foreign any) bool {
	if arr, ok := local.(bson.A); ok {
		for _, item := range arr {
			if equal(item, foreign) {
				return true
			}
		}
		return false
	}
	return equal(local, foreign)
}

func unwindStage(docs []bson.M, arg any) ([]bson.M, error) {
	var path string
	preserve := false
	switch t := arg.(type) {
	case string:
		path = t
	default:
		d, ok := elements(arg)
		if !ok {
			return nil, fmt.Errorf("memory: $unwind needs a path")
		}
		path = stringField(d, "path")
		for _, e := range d {
			if e.Key == "preserveNullAndEmptyArrays" {
				preserve = isTruthy(e.Value)
			}
		}
	}
	if !strings.HasPrefix(path, "$") {
		return nil, fmt.Errorf("memory: $unwind path must start with $, got %q", path)
	}
	field := path[1:]

	out := make([]bson.M, 0, len(docs))
	for _, doc := range docs {
		v, present := lookup(doc, field)
		arr, isArray := v.(bson.A)
		switch {
		case isArray && len(arr) > 0:
			for _, item := range arr {
				c := clone(doc)
				assign(c, field, item)
				out = append(out, c)
			}
		case isArray:
			if preserve {
				c := clone(doc)
				remove(c, field)
				out = append(out, c)
			}
		case !present || v == nil:
			if preserve {
				out = append(out, doc)
			}
		default:
			out = append(out, doc)
		}
	}
	return out, nil
}

func matchStage(docs []bson.M, filter any) ([]bson.M, error) {
	out := make([]bson.M, 0, len(docs))
	for _, doc := range docs {
		ok, err := matches(doc, filter)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, doc)
		}
	}
	return out, nil
}

func matches(doc bson.M, filter any) (bool, error) {
	d, ok := elements(normalize(filter))
	if !ok {
		return false, fmt.Errorf("memory: filter must be a document, got %T", filter)
	}
	for _, e := range d {
		ok, err := matchElement(doc, e.Key, normalize(e.Value))
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func matchElement(doc bson.M, key string, value any) (bool, error) {
	switch key {
	case "$or", "$and", "$nor":
		list, ok := value.(bson.A)
		if !ok || len(list) == 0 {
			return false, fmt.Errorf("memory: %s needs a non-empty array", key)
		}
		for _, item := range list {
			ok, err := matches(doc, item)
			if err != nil {
				return false, err
			}
			switch {
			case key == "$or" && ok:
				return true, nil
			case key == "$and" && !ok:
				return false, nil
			case key == "$nor" && ok:
				return false, nil
			}
		}
		return key != "$or", nil
	case "$expr":
		b, ok := value.(bool)
		if !ok {
			return false, fmt.Errorf("memory: only constant $expr is supported")
		}
		return b, nil
	}
	if strings.HasPrefix(key, "$") {
		return false, fmt.Errorf("memory: unknown top level operator %s", key)
	}

	fv, present := lookup(doc, key)
	if re, ok := value.(primitive.Regex); ok {
		return matchRegex(fv, re.Pattern, re.Options)
	}
	if isOperatorDoc(value) {
		return matchOperators(fv, present, value)
	}
	return matchEquals(fv, present, value), nil
}

func matchEquals(fv any, present bool, want any) bool {
	if want == nil {
		return !present || fv == nil
	}
	if !present {
		return false
	}
	if arr, ok := fv.(bson.A); ok {
		if _, wantArray := want.(bson.A); !wantArray {
			for _, item := range arr {
				if equal(item, want) {
					return true
				}
			}
			return false
		}
	}
	return equal(fv, want)
}

func matchOperators(fv any, present bool, ops any) (bool, error) {
	d, _ := elements(ops)
	options := stringField(d, "$options")

	for _, e := range d {
		arg := normalize(e.Value)
		var ok bool
		switch e.Key {
		case "$eq":
			ok = matchEquals(fv, present, arg)
		case "$ne":
			ok = !matchEquals(fv, present, arg)
		case "$gt", "$gte", "$lt", "$lte":
			if present && typeRank(fv) == typeRank(arg) {
				c := compare(fv, arg)
				switch e.Key {
				case "$gt":
					ok = c > 0
				case "$gte":
					ok = c >= 0
				case "$lt":
					ok = c < 0
				case "$lte":
					ok = c <= 0
				}
			}
		case "$in", "$nin":
			list, isList := arg.(bson.A)
			if !isList {
				return false, fmt.Errorf("memory: %s needs an array", e.Key)
			}
			for _, item := range list {
				if matchEquals(fv, present, normalize(item)) {
					ok = true
					break
				}
			}
			if e.Key == "$nin" {
				ok = !ok
			}
		case "$exists":
			ok = present == isTruthy(arg)
		case "$regex":
			var err error
			switch p := arg.(type) {
			case string:
				ok, err = matchRegex(fv, p, options)
			case primitive.Regex:
				if options == "" {
					options = p.Options
				}
				ok, err = matchRegex(fv, p.Pattern, options)
			default:
				return false, fmt.Errorf("memory: $regex needs a pattern, got %T", arg)
			}
			if err != nil {
				return false, err
			}
		case "$options":
			continue
		default:
			return false, fmt.Errorf("memory: unsupported query operator %s", e.Key)
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func matchRegex(fv any, pattern, options string) (bool, error) {
	flags := ""
	for _, o := range options {
		switch o {
		case 'i', 'm', 's':
			flags += string(o)
		default:
			return false, fmt.Errorf("memory: unsupported regex option %q", o)
		}
	}
	if flags != "" {
		pattern = "(?" + flags + ")" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false, fmt.Errorf("memory: invalid regex: %w", err)
	}

	switch t := fv.(type) {
	case string:
		return re.MatchString(t), nil
	case bson.A:
		for _, item := range t {
			if s, ok := item.(string); ok && re.MatchString(s) {
				return true, nil
			}
		}
	}
	return false, nil
}

// eval resolves an aggregation expression. The bool result is false when a
// field path points at a missing field.
func eval(doc bson.M, expr any) (any, bool, error) {
	expr = normalize(expr)
	if s, ok := expr.(string); ok && strings.HasPrefix(s, "$") {
		v, present := lookup(doc, s[1:])
		return v, present, nil
	}
	if isOperatorDoc(expr) {
		d, _ := elements(expr)
		if len(d) != 1 {
			return nil, false, fmt.Errorf("memory: an expression must have exactly one operator")
		}
		switch d[0].Key {
		case "$toLower":
			v, _, err := eval(doc, d[0].Value)
			if err != nil {
				return nil, false, err
			}
			return strings.ToLower(stringify(v)), true, nil
		case "$literal":
			return d[0].Value, true, nil
		}
		return nil, false, fmt.Errorf("memory: unsupported expression operator %s", d[0].Key)
	}
	return expr, true, nil
}

func addFieldsStage(docs []bson.M, arg any) ([]bson.M, error) {
	fields, ok := elements(arg)
	if !ok {
		return nil, fmt.Errorf("memory: $addFields needs a document")
	}
	out := make([]bson.M, 0, len(docs))
	for _, doc := range docs {
		c := clone(doc)
		for _, f := range fields {
			v, present, err := eval(doc, f.Value)
			if err != nil {
				return nil, err
			}
			if present {
				assign(c, f.Key, v)
			}
		}
		out = append(out, c)
	}
	return out, nil
}

func sortStage(docs []bson.M, arg any) ([]bson.M, error) {
	keys, ok := elements(arg)
	if !ok || len(keys) == 0 {
		return nil, fmt.Errorf("memory: $sort needs at least one key")
	}
	dirs := make([]int, len(keys))
	for i, k := range keys {
		n, ok := toInt(normalize(k.Value))
		if !ok || (n != 1 && n != -1) {
			return nil, fmt.Errorf("memory: $sort direction for %s must be 1 or -1", k.Key)
		}
		dirs[i] = n
	}

	out := append([]bson.M(nil), docs...)
	sort.SliceStable(out, func(i, j int) bool {
		for k, key := range keys {
			a, _ := lookup(out[i], key.Key)
			b, _ := lookup(out[j], key.Key)
			if c := compare(a, b) * dirs[k]; c != 0 {
				return c < 0
			}
		}
		return false
	})
	return out, nil
}

func unsetStage(docs []bson.M, arg any) ([]bson.M, error) {
	var fields []string
	switch t := arg.(type) {
	case string:
		fields = []string{t}
	case bson.A:
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("memory: $unset needs field names")
			}
			fields = append(fields, s)
		}
	default:
		return nil, fmt.Errorf("memory: $unset needs field names")
	}

	out := make([]bson.M, 0, len(docs))
	for _, doc := range docs {
		c := clone(doc)
		for _, f := range fields {
			remove(c, f)
		}
		out = append(out, c)
	}
	return out, nil
}

func (e *Executor) facetStage(docs []bson.M, arg any) ([]bson.M, error) {
	branches, ok := elements(arg)
	if !ok {
		return nil, fmt.Errorf("memory: $facet needs a document")
	}
	result := bson.M{}
	for _, branch := range branches {
		stages, err := toStages(branch.Value)
		if err != nil {
			return nil, err
		}
		rows, err := e.run(append([]bson.M(nil), docs...), stages)
		if err != nil {
			return nil, err
		}
		arr := make(bson.A, len(rows))
		for i, row := range rows {
			arr[i] = row
		}
		result[branch.Key] = arr
	}
	return []bson.M{result}, nil
}

func projectStage(docs []bson.M, arg any) ([]bson.M, error) {
	spec, ok := elements(arg)
	if !ok || len(spec) == 0 {
		return nil, fmt.Errorf("memory: $project needs at least one field")
	}

	inclusion, keepID := false, true
	for _, f := range spec {
		v := normalize(f.Value)
		if f.Key == "_id" {
			if isFlag(v) {
				keepID = isTruthy(v)
			}
			continue
		}
		if !isFlag(v) || isTruthy(v) {
			inclusion = true
		}
	}

	out := make([]bson.M, 0, len(docs))
	for _, doc := range docs {
		if !inclusion {
			c := clone(doc)
			for _, f := range spec {
				if f.Key != "_id" || !keepID {
					remove(c, f.Key)
				}
			}
			out = append(out, c)
			continue
		}

		projected := bson.M{}
		if id, ok := doc["_id"]; ok && keepID {
			projected["_id"] = id
		}
		for _, f := range spec {
			v := normalize(f.Value)
			if f.Key == "_id" && isFlag(v) {
				continue
			}
			if isFlag(v) {
				if val, ok := lookup(doc, f.Key); ok && isTruthy(v) {
					assign(projected, f.Key, val)
				}
				continue
			}
			val, present, err := eval(doc, v)
			if err != nil {
				return nil, err
			}
			if present {
				assign(projected, f.Key, val)
			}
		}
		out = append(out, projected)
	}
	return out, nil
}

func isFlag(v any) bool {
	switch v.(type) {
	case bool, int32, int64, float64:
		return true
	}
	return false
}
