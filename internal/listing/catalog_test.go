package listing

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/finance"
	"carrental-backend/internal/query"
	"carrental-backend/internal/repository/memory"
)

func TestCatalog_Names(t *testing.T) {
	c := Default(finance.NewEngine(finance.DefaultConfig()))
	assert.Equal(t, []string{"agents", "bookings", "cars", "companies", "notifications", "transactions", "users"}, c.Names())
}

func TestCatalog_Resolve(t *testing.T) {
	c := Default(finance.NewEngine(finance.DefaultConfig()))
	subject, company := primitive.NewObjectID(), primitive.NewObjectID()

	tests := []struct {
		name   string
		entity string
		scope  Scope
		want   bson.D
	}{
		{
			name:   "super admin sees every booking",
			entity: "bookings",
			scope:  Scope{Role: domain.RoleSuperAdmin, SubjectID: subject},
			want:   bson.D{{Key: "isDeleted", Value: false}},
		},
		{
			name:   "company sees its own bookings",
			entity: "bookings",
			scope:  Scope{Role: domain.RoleCompany, SubjectID: subject, CompanyID: company},
			want:   bson.D{{Key: "isDeleted", Value: false}, {Key: "companyId", Value: company}},
		},
		{
			name:   "agent sees assigned bookings",
			entity: "bookings",
			scope:  Scope{Role: domain.RoleAgent, SubjectID: subject, CompanyID: company},
			want:   bson.D{{Key: "isDeleted", Value: false}, {Key: "agentId", Value: subject}},
		},
		{
			name:   "user sees own bookings",
			entity: "bookings",
			scope:  Scope{Role: domain.RoleUser, SubjectID: subject},
			want:   bson.D{{Key: "isDeleted", Value: false}, {Key: "userId", Value: subject}},
		},
		{
			name:   "agent sees company cars",
			entity: "cars",
			scope:  Scope{Role: domain.RoleAgent, SubjectID: subject, CompanyID: company},
			want:   bson.D{{Key: "isDeleted", Value: false}, {Key: "companyId", Value: company}},
		},
		{
			name:   "notifications belong to the recipient",
			entity: "notifications",
			scope:  Scope{Role: domain.RoleUser, SubjectID: subject},
			want:   bson.D{{Key: "isDeleted", Value: false}, {Key: "recipientId", Value: subject}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, spec, err := c.Resolve(tt.entity, tt.scope)
			require.NoError(t, err)
			assert.Equal(t, tt.want, spec.Match)
		})
	}

	t.Run("scoping never leaks into the shared spec", func(t *testing.T) {
		_, _, err := c.Resolve("bookings", Scope{Role: domain.RoleUser, SubjectID: subject})
		require.NoError(t, err)
		_, spec, err := c.Resolve("bookings", Scope{Role: domain.RoleSuperAdmin})
		require.NoError(t, err)
		assert.Equal(t, bson.D{{Key: "isDeleted", Value: false}}, spec.Match)
	})
}

func TestCatalog_ResolveErrors(t *testing.T) {
	c := Default(finance.NewEngine(finance.DefaultConfig()))

	_, _, err := c.Resolve("invoices", Scope{Role: domain.RoleSuperAdmin})
	assert.True(t, domain.IsNotFound(err))

	for _, tt := range []struct {
		entity string
		role   domain.Role
	}{
		{"companies", domain.RoleCompany},
		{"users", domain.RoleAgent},
		{"agents", domain.RoleUser},
		{"transactions", domain.RoleAgent},
		{"bookings", domain.Role("guest")},
	} {
		_, _, err := c.Resolve(tt.entity, Scope{Role: tt.role})
		assert.True(t, domain.IsForbidden(err), "%s as %s", tt.entity, tt.role)
	}
}

func TestFinancialsDecorator(t *testing.T) {
	decorate := FinancialsDecorator(finance.NewEngine(finance.DefaultConfig()))

	row := bson.M{"dailyRate": 100.0, "days": int32(2), "vatRate": 15.0, "couponPercentage": 10.0, "depositAmount": 0.0}
	decorate(row)
	require.Contains(t, row, FinancialsField)
	fb := row[FinancialsField].(finance.FinancialBreakdown)
	assert.True(t, decimal.NewFromInt(227).Equal(fb.GrandTotal))
	assert.True(t, fb.RefundableAmount.IsZero())

	cancelled := primitive.NewDateTimeFromTime(time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC))
	broken := bson.M{"dailyRate": 100.0, "days": int32(1), "vatRate": 0.0, "cancellationCharge": 150.0, "cancelledAt": cancelled}
	decorate(broken)
	assert.NotContains(t, broken, FinancialsField)
	assert.Contains(t, broken[FinancialsErrorField], "cancellationCharge")
}

func TestBookingsList_EndToEnd(t *testing.T) {
	exec := memory.NewExecutor()
	engine := finance.NewEngine(finance.DefaultConfig())
	c := Default(engine)

	company := primitive.NewObjectID()
	customer := domain.User{ID: primitive.NewObjectID(), FirstName: "Maria", LastName: "Lopez", Email: "maria@example.com"}
	model := domain.CarModel{ID: primitive.NewObjectID(), Name: "Golf", Brand: "VW"}
	car := domain.Car{ID: primitive.NewObjectID(), CompanyID: company, ModelID: model.ID, PlateNumber: "B-GO-1"}
	coupon := 10.0
	require.NoError(t, exec.Insert(domain.CollectionUsers, bson.M{
		"_id": customer.ID, "firstName": customer.FirstName, "lastName": customer.LastName,
		"email": customer.Email, "password": "$2a$10$hash", "isDeleted": false,
	}))
	require.NoError(t, exec.Insert(domain.CollectionCarModels, model))
	require.NoError(t, exec.Insert(domain.CollectionCars, car))
	require.NoError(t, exec.Insert(domain.CollectionCompanies, domain.Company{ID: company, Name: "Sunrise Cars", IsActive: true}))
	require.NoError(t, exec.Insert(domain.CollectionBookings,
		domain.Booking{BookingNumber: 5001, UserID: customer.ID, CompanyID: company, CarID: car.ID,
			PickupDate: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC), Days: 2, DailyRate: 100, VATRate: 15, CouponPercentage: &coupon},
		domain.Booking{BookingNumber: 5002, UserID: customer.ID, CompanyID: primitive.NewObjectID(), CarID: car.ID,
			PickupDate: time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC), Days: 1, DailyRate: 80, VATRate: 15},
	))

	entity, spec, err := c.Resolve("bookings", Scope{Role: domain.RoleCompany, CompanyID: company})
	require.NoError(t, err)

	req := query.ListRequest{
		Length:  10,
		Search:  &query.Search{Value: "golf"},
		Columns: []query.Column{{Name: "model.name"}, {Name: "bookingNumber", IsNumber: true}},
	}
	res, err := query.Run(context.Background(), exec, req, spec)
	require.NoError(t, err)
	require.Equal(t, int64(1), res.RecordsTotal)

	row := res.Data[0]
	entity.Decorate(row)
	assert.EqualValues(t, 5001, row["bookingNumber"])
	assert.Equal(t, "Sunrise Cars", row["company"].(bson.M)["name"])
	assert.NotContains(t, row["user"].(bson.M), "password")
	assert.NotContains(t, row, "agent")
	fb := row[FinancialsField].(finance.FinancialBreakdown)
	assert.Equal(t, "227", fb.GrandTotal.String())
}
