package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/invoice"
	"carrental-backend/internal/query"
	"carrental-backend/internal/service"
)

// Handler serves the REST API on top of the services.
type Handler struct {
	lists         service.ListService
	bookings      service.BookingService
	quotes        service.QuoteService
	reports       service.ReportService
	notifications service.NotificationService
}

func NewHandler(lists service.ListService, bookings service.BookingService, quotes service.QuoteService,
	reports service.ReportService, notifications service.NotificationService) *Handler {
	return &Handler{
		lists:         lists,
		bookings:      bookings,
		quotes:        quotes,
		reports:       reports,
		notifications: notifications,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeResult(w, map[string]string{"status": "ok"})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req, err := query.DecodeListRequest(r.Body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.lists.List(r.Context(), mux.Vars(r)["entity"], mustScope(r), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, res)
}

func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	detail, err := h.bookings.GetBooking(r.Context(), mustScope(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, detail)
}

func (h *Handler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.invoice(w, r)
	if !ok {
		return
	}
	writeResult(w, inv)
}

func (h *Handler) GetInvoicePDF(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.invoice(w, r)
	if !ok {
		return
	}
	pdf, err := invoice.RenderPDF(*inv)
	if err != nil {
		writeError(w, r, domain.ExecutionFailure("render invoice", err))
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+inv.Filename()+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

func (h *Handler) invoice(w http.ResponseWriter, r *http.Request) (*invoice.Invoice, bool) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return nil, false
	}
	inv, err := h.bookings.GetInvoice(r.Context(), mustScope(r), id)
	if err != nil {
		writeError(w, r, err)
		return nil, false
	}
	return inv, true
}

func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	var req service.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, &domain.Error{Kind: domain.KindInvalidRequest, Msg: "malformed quote request", Err: err})
		return
	}
	fb, err := h.quotes.Quote(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, fb)
}

func (h *Handler) RevenueReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, err := query.ParseBound("from", q.Get("from"), false)
	if err != nil {
		writeError(w, r, err)
		return
	}
	to, err := query.ParseBound("to", q.Get("to"), true)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if from == nil || to == nil {
		writeError(w, r, domain.InvalidRequest("from", "from and to are required"))
		return
	}
	sum, err := h.reports.RevenueSummary(r.Context(), mustScope(r), *from, *to)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, sum)
}

func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.notifications.MarkAsRead(r.Context(), mustScope(r), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Message: "notification marked as read"})
}

func pathID(r *http.Request) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		return primitive.NilObjectID, domain.InvalidRequest("id", "must be a 24 character hex id")
	}
	return id, nil
}
