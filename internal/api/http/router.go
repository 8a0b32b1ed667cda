package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"carrental-backend/internal/listing"
)

// NewRouter registers every route. Protected routes go through the auth
// middleware under the policy named in config.EndpointSecurityConfig.
func NewRouter(h *Handler, auth *AuthMiddleware) *mux.Router {
	router := mux.NewRouter()
	router.Use(requestID, recovery, accessLog)

	route := func(r *mux.Router, name, path string, fn http.HandlerFunc, method string) {
		r.Handle(path, auth.Protect(name, fn)).Methods(method).Name(name)
	}

	route(router, "health", "/health", h.Health, http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	route(api, "lists", "/lists/{entity}", h.List, http.MethodPost)
	route(api, "bookings.get", "/bookings/{id}", h.GetBooking, http.MethodGet)
	route(api, "bookings.invoice", "/bookings/{id}/invoice", h.GetInvoice, http.MethodGet)
	route(api, "bookings.invoice_pdf", "/bookings/{id}/invoice.pdf", h.GetInvoicePDF, http.MethodGet)
	route(api, "quote", "/quote", h.Quote, http.MethodPost)
	route(api, "reports.revenue", "/reports/revenue", h.RevenueReport, http.MethodGet)
	route(api, "notifications.read", "/notifications/{id}/read", h.MarkNotificationRead, http.MethodPost)

	return router
}

// mustScope is only called behind the auth middleware, which always sets the scope.
func mustScope(r *http.Request) listing.Scope {
	scope, _ := ScopeFromContext(r.Context())
	return scope
}
