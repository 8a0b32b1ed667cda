package query

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// Join attaches one related document to each row. The joined array is
// flattened right away, so a join is expected to match at most one document.
type Join struct {
	From              string
	LocalField        string
	ForeignField      string
	As                string
	PreserveUnmatched bool
}

// QuerySpec is the per-entity list configuration. It is compiled into the
// service, never taken from user input.
type QuerySpec struct {
	Collection string
	Joins      []Join
	// Match is the base filter, applied after the joins so it may reference
	// joined fields.
	Match bson.D
	// DateField is the field a request DateRange applies to. Empty disables
	// date filtering.
	DateField string
	// Columns, when set, is the allow-list of searchable and sortable columns.
	// Its type hints override the ones sent by the client.
	Columns []Column
	// Project is applied to the returned page only.
	Project bson.D
}

// resolve maps a requested column onto the QuerySpec column contract.
func (s QuerySpec) resolve(c Column) (Column, bool) {
	if c.Name == "" || strings.HasPrefix(c.Name, "$") {
		return Column{}, false
	}
	if len(s.Columns) == 0 {
		return c, true
	}
	for _, allowed := range s.Columns {
		if allowed.Name == c.Name {
			return allowed, true
		}
	}
	return Column{}, false
}
