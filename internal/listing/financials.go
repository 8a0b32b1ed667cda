package listing

import (
	"go.mongodb.org/mongo-driver/bson"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/finance"
)

const (
	FinancialsField      = "financials"
	FinancialsErrorField = "financialsError"
)

// FinancialsDecorator attaches the computed breakdown to booking rows so the
// list agrees with the detail page and the invoice. A row whose stored
// amounts are inconsistent keeps its data and carries the error instead.
func FinancialsDecorator(engine *finance.Engine) func(bson.M) {
	return func(row bson.M) {
		breakdown, err := RowFinancials(engine, row)
		if err != nil {
			row[FinancialsErrorField] = err.Error()
			return
		}
		row[FinancialsField] = breakdown
	}
}

// RowFinancials decodes the booking fields of an aggregation row and runs
// them through the engine.
func RowFinancials(engine *finance.Engine, row bson.M) (finance.FinancialBreakdown, error) {
	raw, err := bson.Marshal(row)
	if err != nil {
		return finance.FinancialBreakdown{}, err
	}
	var b domain.Booking
	if err := bson.Unmarshal(raw, &b); err != nil {
		return finance.FinancialBreakdown{}, err
	}
	return engine.Breakdown(finance.FromBooking(b))
}
