package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/finance"
	"carrental-backend/internal/listing"
	"carrental-backend/internal/query"
	"carrental-backend/internal/repository/memory"
	"carrental-backend/internal/service"
)

func TestListService_List(t *testing.T) {
	exec := memory.NewExecutor()
	engine := finance.NewEngine(finance.DefaultConfig())
	svc := service.NewListService(exec, listing.Default(engine))
	ctx := context.Background()

	companyA, companyB := primitive.NewObjectID(), primitive.NewObjectID()
	customer := domain.User{ID: primitive.NewObjectID(), FirstName: "Nadia", LastName: "Haddad", Email: "nadia@example.com"}
	car := domain.Car{ID: primitive.NewObjectID(), PlateNumber: "AA-11-BB"}
	require.NoError(t, exec.Insert(domain.CollectionUsers, customer))
	require.NoError(t, exec.Insert(domain.CollectionCars, car))

	pickup := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, exec.Insert(domain.CollectionBookings,
		domain.Booking{ID: primitive.NewObjectID(), BookingNumber: 1, CompanyID: companyA, UserID: customer.ID, CarID: car.ID, PickupDate: pickup, Days: 2, DailyRate: 100, VATRate: 15},
		domain.Booking{ID: primitive.NewObjectID(), BookingNumber: 2, CompanyID: companyA, UserID: customer.ID, CarID: car.ID, PickupDate: pickup, Days: 1, DailyRate: 80, VATRate: 15},
		domain.Booking{ID: primitive.NewObjectID(), BookingNumber: 3, CompanyID: companyB, UserID: customer.ID, CarID: car.ID, PickupDate: pickup, Days: 1, DailyRate: 50, VATRate: 15},
	))

	req := query.ListRequest{
		Start:   0,
		Length:  10,
		Columns: []query.Column{{Name: "bookingNumber", IsNumber: true}},
		Order:   &query.Order{Column: 0, Dir: "desc"},
	}

	t.Run("CompanySeesOwnBookings", func(t *testing.T) {
		res, err := svc.List(ctx, "bookings", listing.Scope{Role: domain.RoleCompany, SubjectID: companyA, CompanyID: companyA}, req)
		require.NoError(t, err)
		assert.Equal(t, int64(2), res.RecordsTotal)
		require.Len(t, res.Data, 2)
		assert.EqualValues(t, 2, res.Data[0]["bookingNumber"])

		fb, ok := res.Data[1][listing.FinancialsField].(finance.FinancialBreakdown)
		require.True(t, ok)
		assert.True(t, fb.GrandTotal.Equal(decimal.NewFromInt(230)), fb.GrandTotal.String())
	})

	t.Run("SuperAdminSeesAll", func(t *testing.T) {
		res, err := svc.List(ctx, "bookings", listing.Scope{Role: domain.RoleSuperAdmin}, req)
		require.NoError(t, err)
		assert.Equal(t, int64(3), res.RecordsTotal)
	})

	t.Run("UnknownEntity", func(t *testing.T) {
		_, err := svc.List(ctx, "invoices", listing.Scope{Role: domain.RoleSuperAdmin}, req)
		assert.True(t, domain.IsNotFound(err))
	})

	t.Run("Forbidden", func(t *testing.T) {
		_, err := svc.List(ctx, "companies", listing.Scope{Role: domain.RoleUser, SubjectID: customer.ID}, req)
		assert.True(t, domain.IsForbidden(err))
	})

	t.Run("InvalidRequest", func(t *testing.T) {
		bad := req
		bad.Start = -1
		_, err := svc.List(ctx, "bookings", listing.Scope{Role: domain.RoleSuperAdmin}, bad)
		assert.True(t, domain.IsInvalidRequest(err))
	})
}

func TestListService_ExecutionFailure(t *testing.T) {
	exec := new(MockExecutor)
	svc := service.NewListService(exec, listing.NewCatalog(listing.Companies()))
	ctx := context.Background()

	exec.On("Aggregate", ctx, domain.CollectionCompanies, mock.Anything).Return(nil, errors.New("connection reset"))

	_, err := svc.List(ctx, "companies", listing.Scope{Role: domain.RoleSuperAdmin}, query.ListRequest{Length: 10})
	assert.True(t, domain.IsExecutionFailure(err))
	exec.AssertExpectations(t)
}

func TestListService_DecoratesEveryRow(t *testing.T) {
	exec := new(MockExecutor)
	svc := service.NewListService(exec, listing.NewCatalog(listing.Bookings(finance.NewEngine(finance.DefaultConfig()))))
	ctx := context.Background()

	rows := []bson.M{
		{"_id": primitive.NewObjectID(), "days": int32(1), "dailyRate": 10.0, "vatRate": 0.0},
		{"_id": primitive.NewObjectID(), "days": int32(1), "dailyRate": 10.0, "vatRate": 0.0,
			"cancelledAt": time.Now(), "cancellationCharge": 50.0},
	}
	exec.On("Aggregate", ctx, domain.CollectionBookings, mock.Anything).
		Return([]bson.M{{"data": rows, "total": []bson.M{{"count": int32(2)}}}}, nil)

	res, err := svc.List(ctx, "bookings", listing.Scope{Role: domain.RoleSuperAdmin}, query.ListRequest{Length: 10})
	require.NoError(t, err)
	require.Len(t, res.Data, 2)
	assert.Contains(t, res.Data[0], listing.FinancialsField)
	assert.Contains(t, res.Data[1], listing.FinancialsErrorField)
	assert.NotContains(t, res.Data[1], listing.FinancialsField)
}
