package listing

import (
	"go.mongodb.org/mongo-driver/bson"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/finance"
	"carrental-backend/internal/query"
)

var live = bson.D{{Key: "isDeleted", Value: false}}

// Default builds the catalog served by the list endpoint.
func Default(engine *finance.Engine) *Catalog {
	return NewCatalog(
		Companies(),
		Agents(),
		Users(),
		Cars(),
		Bookings(engine),
		Transactions(),
		Notifications(),
	)
}

func Companies() Entity {
	return Entity{
		Name: "companies",
		Spec: query.QuerySpec{
			Collection: domain.CollectionCompanies,
			Match:      live,
			DateField:  "createdAt",
			Columns: []query.Column{
				{Name: "name"},
				{Name: "email"},
				{Name: "phone"},
				{Name: "city"},
				{Name: "vatNumber"},
				{Name: "isActive", IsBoolean: true},
			},
		},
		Scopes: map[domain.Role]func(Scope) bson.D{
			domain.RoleSuperAdmin: nil,
		},
	}
}

func Agents() Entity {
	return Entity{
		Name: "agents",
		Spec: query.QuerySpec{
			Collection: domain.CollectionAgents,
			Joins: []query.Join{
				{From: domain.CollectionCompanies, LocalField: "companyId", ForeignField: "_id", As: "company", PreserveUnmatched: true},
			},
			Match:     live,
			DateField: "createdAt",
			Columns: []query.Column{
				{Name: "name"},
				{Name: "email"},
				{Name: "phone"},
				{Name: "company.name"},
				{Name: "isActive", IsBoolean: true},
			},
		},
		Scopes: map[domain.Role]func(Scope) bson.D{
			domain.RoleSuperAdmin: nil,
			domain.RoleCompany:    byCompany("companyId"),
		},
	}
}

func Users() Entity {
	return Entity{
		Name: "users",
		Spec: query.QuerySpec{
			Collection: domain.CollectionUsers,
			Match:      live,
			DateField:  "createdAt",
			Columns: []query.Column{
				{Name: "firstName"},
				{Name: "lastName"},
				{Name: "email"},
				{Name: "phone"},
				{Name: "isActive", IsBoolean: true},
			},
			Project: bson.D{{Key: "password", Value: 0}},
		},
		Scopes: map[domain.Role]func(Scope) bson.D{
			domain.RoleSuperAdmin: nil,
		},
	}
}

func Cars() Entity {
	return Entity{
		Name: "cars",
		Spec: query.QuerySpec{
			Collection: domain.CollectionCars,
			Joins: []query.Join{
				{From: domain.CollectionCarModels, LocalField: "modelId", ForeignField: "_id", As: "model", PreserveUnmatched: true},
				{From: domain.CollectionCompanies, LocalField: "companyId", ForeignField: "_id", As: "company", PreserveUnmatched: true},
			},
			Match:     live,
			DateField: "createdAt",
			Columns: []query.Column{
				{Name: "plateNumber"},
				{Name: "color"},
				{Name: "year", IsNumber: true},
				{Name: "dailyRate", IsNumber: true},
				{Name: "model.name"},
				{Name: "model.brand"},
				{Name: "company.name"},
				{Name: "isAvailable", IsBoolean: true},
			},
		},
		Scopes: map[domain.Role]func(Scope) bson.D{
			domain.RoleSuperAdmin: nil,
			domain.RoleCompany:    byCompany("companyId"),
			domain.RoleAgent:      byCompany("companyId"),
		},
	}
}

func Bookings(engine *finance.Engine) Entity {
	return Entity{
		Name: "bookings",
		Spec: query.QuerySpec{
			Collection: domain.CollectionBookings,
			Joins: []query.Join{
				{From: domain.CollectionUsers, LocalField: "userId", ForeignField: "_id", As: "user"},
				{From: domain.CollectionCars, LocalField: "carId", ForeignField: "_id", As: "car"},
				{From: domain.CollectionCarModels, LocalField: "car.modelId", ForeignField: "_id", As: "model", PreserveUnmatched: true},
				{From: domain.CollectionCompanies, LocalField: "companyId", ForeignField: "_id", As: "company", PreserveUnmatched: true},
				{From: domain.CollectionAgents, LocalField: "agentId", ForeignField: "_id", As: "agent", PreserveUnmatched: true},
			},
			Match:     live,
			DateField: "pickupDate",
			Columns: []query.Column{
				{Name: "bookingNumber", IsNumber: true},
				{Name: "user.firstName"},
				{Name: "user.lastName"},
				{Name: "user.email"},
				{Name: "car.plateNumber"},
				{Name: "model.name"},
				{Name: "company.name"},
				{Name: "agent.name"},
				{Name: "status"},
				{Name: "couponCode"},
				{Name: "days", IsNumber: true},
			},
			Project: bson.D{
				{Key: "user.password", Value: 0},
				{Key: "car.isDeleted", Value: 0},
			},
		},
		Scopes: map[domain.Role]func(Scope) bson.D{
			domain.RoleSuperAdmin: nil,
			domain.RoleCompany:    byCompany("companyId"),
			domain.RoleAgent:      bySubject("agentId"),
			domain.RoleUser:       bySubject("userId"),
		},
		Decorate: FinancialsDecorator(engine),
	}
}

func Transactions() Entity {
	return Entity{
		Name: "transactions",
		Spec: query.QuerySpec{
			Collection: domain.CollectionTransactions,
			Joins: []query.Join{
				{From: domain.CollectionBookings, LocalField: "bookingId", ForeignField: "_id", As: "booking", PreserveUnmatched: true},
				{From: domain.CollectionUsers, LocalField: "userId", ForeignField: "_id", As: "user", PreserveUnmatched: true},
				{From: domain.CollectionCompanies, LocalField: "companyId", ForeignField: "_id", As: "company", PreserveUnmatched: true},
			},
			Match:     live,
			DateField: "createdAt",
			Columns: []query.Column{
				{Name: "reference"},
				{Name: "method"},
				{Name: "status"},
				{Name: "amount", IsNumber: true},
				{Name: "booking.bookingNumber", IsNumber: true},
				{Name: "user.email"},
				{Name: "company.name"},
			},
			Project: bson.D{{Key: "user.password", Value: 0}},
		},
		Scopes: map[domain.Role]func(Scope) bson.D{
			domain.RoleSuperAdmin: nil,
			domain.RoleCompany:    byCompany("companyId"),
			domain.RoleUser:       bySubject("userId"),
		},
	}
}

func Notifications() Entity {
	return Entity{
		Name: "notifications",
		Spec: query.QuerySpec{
			Collection: domain.CollectionNotifications,
			Match:      live,
			DateField:  "createdAt",
			Columns: []query.Column{
				{Name: "title"},
				{Name: "message"},
				{Name: "isRead", IsBoolean: true},
			},
		},
		Scopes: map[domain.Role]func(Scope) bson.D{
			domain.RoleSuperAdmin: nil,
			domain.RoleCompany:    bySubject("recipientId"),
			domain.RoleAgent:      bySubject("recipientId"),
			domain.RoleUser:       bySubject("recipientId"),
		},
	}
}
