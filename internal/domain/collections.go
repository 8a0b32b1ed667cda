package domain

// Collection names shared by the repositories and the list catalog.
const (
	CollectionCompanies     = "companies"
	CollectionAgents        = "agents"
	CollectionUsers         = "users"
	CollectionCars          = "cars"
	CollectionCarModels     = "carmodels"
	CollectionBookings      = "bookings"
	CollectionTransactions  = "transactions"
	CollectionNotifications = "notifications"
)
