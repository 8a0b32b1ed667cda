package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"carrental-backend/internal/domain"
)

func TestStore_Bookings(t *testing.T) {
	exec := NewExecutor()
	store := NewStore(exec)
	ctx := context.Background()

	companyA, companyB := primitive.NewObjectID(), primitive.NewObjectID()
	coupon := 10.0
	jan := func(d int) time.Time { return time.Date(2024, 1, d, 10, 0, 0, 0, time.UTC) }

	live := domain.Booking{ID: primitive.NewObjectID(), BookingNumber: 1001, CompanyID: companyA, PickupDate: jan(5),
		Days: 2, DailyRate: 100, VATRate: 15, CouponPercentage: &coupon, Status: domain.BookingStatusConfirmed}
	other := domain.Booking{ID: primitive.NewObjectID(), BookingNumber: 1002, CompanyID: companyB, PickupDate: jan(6), Days: 1}
	deleted := domain.Booking{ID: primitive.NewObjectID(), BookingNumber: 1003, CompanyID: companyA, PickupDate: jan(7), IsDeleted: true}
	late := domain.Booking{ID: primitive.NewObjectID(), BookingNumber: 1004, CompanyID: companyA, PickupDate: jan(20)}
	require.NoError(t, exec.Insert(domain.CollectionBookings, live, other, deleted, late))

	got, err := store.BookingRepository.GetByID(ctx, live.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1001), got.BookingNumber)
	require.NotNil(t, got.CouponPercentage)
	assert.Equal(t, 10.0, *got.CouponPercentage)
	assert.Nil(t, got.ExtensionDays)
	assert.True(t, got.PickupDate.Equal(jan(5)))

	_, err = store.BookingRepository.GetByID(ctx, deleted.ID)
	assert.True(t, domain.IsNotFound(err))
	_, err = store.BookingRepository.GetByID(ctx, primitive.NewObjectID())
	assert.True(t, domain.IsNotFound(err))

	all, err := store.BookingRepository.ListPickedUpBetween(ctx, nil, jan(1), jan(10))
	require.NoError(t, err)
	assert.Len(t, all, 2)

	own, err := store.BookingRepository.ListPickedUpBetween(ctx, &companyA, jan(1), jan(31))
	require.NoError(t, err)
	require.Len(t, own, 2)
	assert.Equal(t, int64(1001), own[0].BookingNumber)
	assert.Equal(t, int64(1004), own[1].BookingNumber)
}

func TestStore_CompaniesAndUsers(t *testing.T) {
	exec := NewExecutor()
	store := NewStore(exec)
	ctx := context.Background()

	active := domain.Company{ID: primitive.NewObjectID(), Name: "Sunrise Cars", IsActive: true}
	inactive := domain.Company{ID: primitive.NewObjectID(), Name: "Dormant", IsActive: false}
	require.NoError(t, exec.Insert(domain.CollectionCompanies, active, inactive))
	user := domain.User{ID: primitive.NewObjectID(), FirstName: "Ana", LastName: "Lee", IsActive: true}
	require.NoError(t, exec.Insert(domain.CollectionUsers, user))

	companies, err := store.CompanyRepository.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, "Sunrise Cars", companies[0].Name)

	c, err := store.CompanyRepository.GetByID(ctx, inactive.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dormant", c.Name)

	u, err := store.UserRepository.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Lee", u.FullName())
}

func TestStore_CarsAndTransactions(t *testing.T) {
	exec := NewExecutor()
	store := NewStore(exec)
	ctx := context.Background()

	model := domain.CarModel{ID: primitive.NewObjectID(), Name: "Corolla", Brand: "Toyota"}
	car := domain.Car{ID: primitive.NewObjectID(), ModelID: model.ID, PlateNumber: "KA-01", Year: 2022}
	require.NoError(t, exec.Insert(domain.CollectionCarModels, model))
	require.NoError(t, exec.Insert(domain.CollectionCars, car))

	gotCar, err := store.CarRepository.GetByID(ctx, car.ID)
	require.NoError(t, err)
	assert.Equal(t, 2022, gotCar.Year)
	gotModel, err := store.CarRepository.GetModel(ctx, gotCar.ModelID)
	require.NoError(t, err)
	assert.Equal(t, "Toyota", gotModel.Brand)
	_, err = store.CarRepository.GetModel(ctx, primitive.NewObjectID())
	assert.True(t, domain.IsNotFound(err))

	booking := primitive.NewObjectID()
	require.NoError(t, exec.Insert(domain.CollectionTransactions,
		domain.Transaction{BookingID: booking, Amount: 227, Status: domain.TransactionStatusPaid},
		domain.Transaction{BookingID: primitive.NewObjectID(), Amount: 10},
		domain.Transaction{BookingID: booking, Amount: 5, IsDeleted: true},
	))
	txs, err := store.TransactionRepository.ListByBooking(ctx, booking)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, 227.0, txs[0].Amount)
	assert.False(t, txs[0].ID.IsZero(), "insert assigns an id")
}

func TestStore_Notifications(t *testing.T) {
	exec := NewExecutor()
	store := NewStore(exec)
	ctx := context.Background()
	recipient := primitive.NewObjectID()

	n := &domain.Notification{RecipientID: recipient, RecipientRole: domain.RoleCompany, Title: "Daily revenue"}
	require.NoError(t, store.NotificationRepository.Create(ctx, n))
	assert.False(t, n.ID.IsZero())
	assert.False(t, n.CreatedAt.IsZero())

	err := store.NotificationRepository.MarkAsRead(ctx, n.ID, primitive.NewObjectID())
	assert.True(t, domain.IsNotFound(err), "only the recipient may mark it read")

	require.NoError(t, store.NotificationRepository.MarkAsRead(ctx, n.ID, recipient))
	docs, err := exec.find(domain.CollectionNotifications, nil)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, true, docs[0]["isRead"])
}
