package query

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
	"strings"
	"time"

	"carrental-backend/internal/domain"
)

// Column is one visible grid column. Name is the document field path.
type Column struct {
	Name      string `json:"name"`
	IsNumber  bool   `json:"isNumber"`
	IsBoolean bool   `json:"isBoolean"`
}

type Search struct {
	Value string `json:"value"`
}

// Order is a single-column sort. Column indexes into ListRequest.Columns.
type Order struct {
	Column int    `json:"column"`
	Dir    string `json:"dir"`
}

func (o Order) Ascending() bool {
	return strings.EqualFold(o.Dir, "asc")
}

// DateRange restricts rows to From <= field < Until. Either bound may be nil.
type DateRange struct {
	From  *time.Time
	Until *time.Time
}

// ListRequest is the grid-control request shared by every list and report.
type ListRequest struct {
	Start     int
	Length    int
	Search    *Search
	Columns   []Column
	Order     *Order
	DateRange *DateRange
}

func (r ListRequest) SearchTerm() string {
	if r.Search == nil {
		return ""
	}
	return strings.TrimSpace(r.Search.Value)
}

func (r ListRequest) Validate() error {
	if r.Start < 0 {
		return domain.InvalidRequest("start", "must not be negative")
	}
	if dr := r.DateRange; dr != nil && dr.From != nil && dr.Until != nil && dr.Until.Before(*dr.From) {
		return domain.InvalidRequest("dateRange", "to must not be before from")
	}
	return nil
}

type wireRequest struct {
	Start     json.RawMessage `json:"start"`
	Length    json.RawMessage `json:"length"`
	Search    *Search         `json:"search"`
	Columns   []Column        `json:"columns"`
	Order     json.RawMessage `json:"order"`
	DateRange *struct {
		From string `json:"from"`
		To   string `json:"to"`
	} `json:"dateRange"`
}

type wireOrder struct {
	Column json.RawMessage `json:"column"`
	Dir    string          `json:"dir"`
}

// DecodeListRequest parses a grid-control JSON body. start and length are
// mandatory and may be sent as numbers or numeric strings. order may be a
// single object or the DataTables array form, of which the first entry is used.
func DecodeListRequest(r io.Reader) (ListRequest, error) {
	var wire wireRequest
	if err := json.NewDecoder(r).Decode(&wire); err != nil {
		return ListRequest{}, &domain.Error{Kind: domain.KindInvalidRequest, Msg: "malformed list request", Err: err}
	}

	start, err := requiredInt("start", wire.Start)
	if err != nil {
		return ListRequest{}, err
	}
	length, err := requiredInt("length", wire.Length)
	if err != nil {
		return ListRequest{}, err
	}

	req := ListRequest{
		Start:   start,
		Length:  length,
		Search:  wire.Search,
		Columns: wire.Columns,
	}

	if req.Order, err = decodeOrder(wire.Order); err != nil {
		return ListRequest{}, err
	}

	if wire.DateRange != nil {
		dr := &DateRange{}
		if dr.From, err = ParseBound("dateRange.from", wire.DateRange.From, false); err != nil {
			return ListRequest{}, err
		}
		if dr.Until, err = ParseBound("dateRange.to", wire.DateRange.To, true); err != nil {
			return ListRequest{}, err
		}
		if dr.From != nil || dr.Until != nil {
			req.DateRange = dr
		}
	}

	if err := req.Validate(); err != nil {
		return ListRequest{}, err
	}
	return req, nil
}

func decodeOrder(raw json.RawMessage) (*Order, error) {
	if isAbsent(raw) {
		return nil, nil
	}

	var wo wireOrder
	trimmed := bytes.TrimSpace(raw)
	if trimmed[0] == '[' {
		var list []wireOrder
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, &domain.Error{Kind: domain.KindInvalidRequest, Field: "order", Msg: "malformed order", Err: err}
		}
		if len(list) == 0 {
			return nil, nil
		}
		wo = list[0]
	} else if err := json.Unmarshal(trimmed, &wo); err != nil {
		return nil, &domain.Error{Kind: domain.KindInvalidRequest, Field: "order", Msg: "malformed order", Err: err}
	}

	column, err := requiredInt("order.column", wo.Column)
	if err != nil {
		return nil, err
	}
	return &Order{Column: column, Dir: wo.Dir}, nil
}

func requiredInt(field string, raw json.RawMessage) (int, error) {
	if isAbsent(raw) {
		return 0, domain.InvalidRequest(field, "is required")
	}
	text := string(bytes.TrimSpace(raw))
	if strings.HasPrefix(text, `"`) {
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, domain.InvalidRequest(field, "must be an integer")
		}
		text = strings.TrimSpace(text)
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, domain.InvalidRequest(field, "must be an integer")
	}
	return n, nil
}

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// ParseBound accepts YYYY-MM-DD or RFC 3339. A bare date used as the upper
// bound covers that whole day.
func ParseBound(field, value string, upper bool) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		if upper {
			t = t.AddDate(0, 0, 1)
		}
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, domain.InvalidRequest(field, "must be YYYY-MM-DD or RFC 3339")
	}
	return &t, nil
}
