package query

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carrental-backend/internal/domain"
)

func TestDecodeListRequest(t *testing.T) {
	body := `{
		"start": 10,
		"length": "25",
		"search": {"value": "golf"},
		"columns": [{"name": "model.name"}, {"name": "year", "isNumber": true}, {"name": "isAvailable", "isBoolean": true}],
		"order": {"column": "1", "dir": "desc"}
	}`

	req, err := DecodeListRequest(strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, 10, req.Start)
	assert.Equal(t, 25, req.Length)
	assert.Equal(t, "golf", req.SearchTerm())
	assert.Equal(t, []Column{
		{Name: "model.name"},
		{Name: "year", IsNumber: true},
		{Name: "isAvailable", IsBoolean: true},
	}, req.Columns)
	require.NotNil(t, req.Order)
	assert.Equal(t, Order{Column: 1, Dir: "desc"}, *req.Order)
	assert.False(t, req.Order.Ascending())
	assert.Nil(t, req.DateRange)
}

func TestDecodeListRequest_DataTablesOrderArray(t *testing.T) {
	req, err := DecodeListRequest(strings.NewReader(`{"start":0,"length":10,"order":[{"column":2,"dir":"asc"},{"column":0,"dir":"desc"}]}`))
	require.NoError(t, err)
	require.NotNil(t, req.Order)
	assert.Equal(t, Order{Column: 2, Dir: "asc"}, *req.Order)

	req, err = DecodeListRequest(strings.NewReader(`{"start":0,"length":10,"order":[]}`))
	require.NoError(t, err)
	assert.Nil(t, req.Order)
}

func TestDecodeListRequest_ZeroIsNotMissing(t *testing.T) {
	req, err := DecodeListRequest(strings.NewReader(`{"start":0,"length":0}`))
	require.NoError(t, err)
	assert.Zero(t, req.Start)
	assert.Zero(t, req.Length)
}

func TestDecodeListRequest_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing start", `{"length":10}`, "start"},
		{"missing length", `{"start":0}`, "length"},
		{"null length", `{"start":0,"length":null}`, "length"},
		{"non numeric start", `{"start":"abc","length":10}`, "start"},
		{"fractional length", `{"start":0,"length":2.5}`, "length"},
		{"negative start", `{"start":-5,"length":10}`, "start"},
		{"bad order column", `{"start":0,"length":10,"order":{"column":"x"}}`, "order.column"},
		{"order without column", `{"start":0,"length":10,"order":{"dir":"asc"}}`, "order.column"},
		{"bad date", `{"start":0,"length":10,"dateRange":{"from":"01/02/2024"}}`, "dateRange.from"},
		{"reversed range", `{"start":0,"length":10,"dateRange":{"from":"2024-02-01","to":"2024-01-01"}}`, "dateRange"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeListRequest(strings.NewReader(tt.body))
			require.Error(t, err)
			assert.True(t, domain.IsInvalidRequest(err))
			var derr *domain.Error
			require.ErrorAs(t, err, &derr)
			assert.Equal(t, tt.field, derr.Field)
		})
	}

	_, err := DecodeListRequest(strings.NewReader(`{"start":`))
	assert.True(t, domain.IsInvalidRequest(err))
}

func TestDecodeListRequest_DateRange(t *testing.T) {
	req, err := DecodeListRequest(strings.NewReader(`{"start":0,"length":10,"dateRange":{"from":"2024-01-15","to":"2024-01-31"}}`))
	require.NoError(t, err)
	require.NotNil(t, req.DateRange)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), *req.DateRange.From)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), *req.DateRange.Until, "a bare end date covers the whole day")

	req, err = DecodeListRequest(strings.NewReader(`{"start":0,"length":10,"dateRange":{"to":"2024-01-31T12:00:00Z"}}`))
	require.NoError(t, err)
	assert.Nil(t, req.DateRange.From)
	assert.Equal(t, time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC), req.DateRange.Until.UTC())

	req, err = DecodeListRequest(strings.NewReader(`{"start":0,"length":10,"dateRange":{"from":"","to":""}}`))
	require.NoError(t, err)
	assert.Nil(t, req.DateRange)
}

func TestIsAffirmative(t *testing.T) {
	for _, term := range []string{"yes", "YES", "Ye", "y", " y "} {
		assert.True(t, IsAffirmative(term), term)
	}
	for _, term := range []string{"no", "true", "1", "yess", ""} {
		assert.False(t, IsAffirmative(term), term)
	}
}
