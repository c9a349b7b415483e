// Package server exposes the notebook's operations as a local JSON API.
// This is the boundary consumed by the desktop UI; it accepts and returns
// plain values, never presentation objects.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/konnash/konnash/internal/export"
	"github.com/konnash/konnash/internal/report"
	"github.com/konnash/konnash/internal/service"
	"github.com/konnash/konnash/internal/storage"
)

// Server routes API requests to the application services.
type Server struct {
	store      storage.Store
	clients    *service.ClientService
	categories *service.CategoryService
	debts      *service.DebtService
	mux        *http.ServeMux
}

// New creates a Server over the given storage backend.
func New(store storage.Store) *Server {
	s := &Server{
		store:      store,
		clients:    service.NewClientService(store),
		categories: service.NewCategoryService(store),
		debts:      service.NewDebtService(store),
		mux:        http.NewServeMux(),
	}
	s.routes()
	return s
}

// Handler returns the full handler chain: routing wrapped in CORS, request
// logging, and metrics.
func (s *Server) Handler() http.Handler {
	return s.loggingMiddleware(s.metricsMiddleware(corsMiddleware(s.mux)))
}

func (s *Server) routes() {
	s.mux.HandleFunc("POST /api/clients", s.handleCreateClient)
	s.mux.HandleFunc("GET /api/clients", s.handleListClients)
	s.mux.HandleFunc("DELETE /api/clients", s.handleDeleteAllClients)
	s.mux.HandleFunc("GET /api/clients/{id}", s.handleGetClient)
	s.mux.HandleFunc("PUT /api/clients/{id}", s.handleUpdateClient)
	s.mux.HandleFunc("DELETE /api/clients/{id}", s.handleDeleteClient)
	s.mux.HandleFunc("GET /api/clients/{id}/debts", s.handleListClientDebts)
	s.mux.HandleFunc("DELETE /api/clients/{id}/debts", s.handleDeleteClientDebts)
	s.mux.HandleFunc("DELETE /api/clients/{id}/payments", s.handleDeleteClientPayments)

	s.mux.HandleFunc("POST /api/categories", s.handleCreateCategory)
	s.mux.HandleFunc("GET /api/categories", s.handleListCategories)
	s.mux.HandleFunc("GET /api/categories/{id}", s.handleGetCategory)
	s.mux.HandleFunc("PUT /api/categories/{id}", s.handleRenameCategory)
	s.mux.HandleFunc("DELETE /api/categories/{id}", s.handleDeleteCategory)
	s.mux.HandleFunc("GET /api/categories/{id}/debts", s.handleListCategoryDebts)

	s.mux.HandleFunc("POST /api/debts", s.handleCreateDebt)
	s.mux.HandleFunc("GET /api/debts", s.handleListDebts)
	s.mux.HandleFunc("DELETE /api/debts", s.handleDeleteAllDebts)
	s.mux.HandleFunc("GET /api/debts/totals", s.handleDebtTotals)
	s.mux.HandleFunc("GET /api/debts/{id}", s.handleGetDebt)
	s.mux.HandleFunc("PUT /api/debts/{id}", s.handleUpdateDebt)
	s.mux.HandleFunc("DELETE /api/debts/{id}", s.handleDeleteDebt)
	s.mux.HandleFunc("GET /api/debts/{id}/client", s.handleGetDebtClient)
	s.mux.HandleFunc("POST /api/debts/{id}/payments", s.handleRecordPayment)
	s.mux.HandleFunc("GET /api/debts/{id}/payments", s.handleListDebtPayments)
	s.mux.HandleFunc("DELETE /api/debts/{id}/payments", s.handleDeleteDebtPayments)

	s.mux.HandleFunc("GET /api/payments", s.handleListPayments)
	s.mux.HandleFunc("GET /api/payments/{id}", s.handleGetPayment)
	s.mux.HandleFunc("PUT /api/payments/{id}", s.handleUpdatePayment)
	s.mux.HandleFunc("DELETE /api/payments/{id}", s.handleDeletePayment)

	s.mux.HandleFunc("GET /api/reports/clients", s.handleClientReport)
	s.mux.HandleFunc("GET /api/reports/overview", s.handleOverviewReport)

	s.mux.HandleFunc("GET /api/export/debts", s.handleExportDebts)
	s.mux.HandleFunc("GET /api/export/payments", s.handleExportPayments)

	s.mux.Handle("GET /metrics", promhttp.Handler())
}

type clientRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type categoryRequest struct {
	Name string `json:"name"`
}

type debtRequest struct {
	Amount     int64 `json:"amount"`
	ClientID   int64 `json:"clientId"`
	CategoryID int64 `json:"categoryId"`
}

type paymentRequest struct {
	AmountPaid int64 `json:"amountPaid"`
}

func (s *Server) handleCreateClient(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if !decode(w, r, &req) {
		return
	}

	client, err := s.clients.Create(r.Context(), req.Name, req.Phone)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, client)
}

// handleListClients returns all clients, or a filtered set when the name or
// phone query parameter carries a substring.
func (s *Server) handleListClients(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if name := r.URL.Query().Get("name"); name != "" {
		list, err := s.clients.SearchByName(ctx, name)
		respondList(w, list, err)
		return
	}
	if phone := r.URL.Query().Get("phone"); phone != "" {
		list, err := s.clients.SearchByPhone(ctx, phone)
		respondList(w, list, err)
		return
	}

	list, err := s.clients.List(ctx)
	respondList(w, list, err)
}

func (s *Server) handleGetClient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	client, err := s.clients.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, client)
}

func (s *Server) handleUpdateClient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req clientRequest
	if !decode(w, r, &req) {
		return
	}

	client, err := s.clients.Update(r.Context(), id, req.Name, req.Phone)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, client)
}

func (s *Server) handleDeleteClient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	respondDelete(w, s.clients.Delete(r.Context(), id))
}

func (s *Server) handleDeleteAllClients(w http.ResponseWriter, r *http.Request) {
	respondDelete(w, s.clients.DeleteAll(r.Context()))
}

func (s *Server) handleListClientDebts(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	list, err := s.debts.ListByClient(r.Context(), id)
	respondList(w, list, err)
}

func (s *Server) handleDeleteClientDebts(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	respondDelete(w, s.debts.DeleteByClient(r.Context(), id))
}

func (s *Server) handleDeleteClientPayments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	respondDelete(w, s.debts.DeletePaymentsByClient(r.Context(), id))
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !decode(w, r, &req) {
		return
	}

	category, err := s.categories.Create(r.Context(), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	list, err := s.categories.List(r.Context())
	respondList(w, list, err)
}

func (s *Server) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	category, err := s.categories.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (s *Server) handleRenameCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req categoryRequest
	if !decode(w, r, &req) {
		return
	}

	category, err := s.categories.Rename(r.Context(), id, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	respondDelete(w, s.categories.Delete(r.Context(), id))
}

func (s *Server) handleListCategoryDebts(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	list, err := s.debts.ListByCategory(r.Context(), id)
	respondList(w, list, err)
}

func (s *Server) handleCreateDebt(w http.ResponseWriter, r *http.Request) {
	var req debtRequest
	if !decode(w, r, &req) {
		return
	}

	debt, err := s.debts.Create(r.Context(), req.Amount, req.ClientID, req.CategoryID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, debt)
}

// handleListDebts returns debts, optionally filtered by the outstanding,
// amount-range (minAmount/maxAmount), or date-range (from/to) query
// parameters.
func (s *Server) handleListDebts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	if q.Get("outstanding") == "true" {
		list, err := s.debts.ListOutstanding(ctx)
		respondList(w, list, err)
		return
	}

	if q.Has("minAmount") || q.Has("maxAmount") {
		min, ok := queryInt64(w, q.Get("minAmount"), "minAmount")
		if !ok {
			return
		}
		max, ok := queryInt64(w, q.Get("maxAmount"), "maxAmount")
		if !ok {
			return
		}
		list, err := s.debts.ListByAmountRange(ctx, min, max)
		respondList(w, list, err)
		return
	}

	if q.Has("from") || q.Has("to") {
		from, ok := queryInt64(w, q.Get("from"), "from")
		if !ok {
			return
		}
		to, ok := queryInt64(w, q.Get("to"), "to")
		if !ok {
			return
		}
		list, err := s.debts.ListByDateRange(ctx, int(from), int(to))
		respondList(w, list, err)
		return
	}

	list, err := s.debts.List(ctx)
	respondList(w, list, err)
}

// handleDebtTotals serves the aggregate sums: by client, by category, over
// outstanding debts, or overall.
func (s *Server) handleDebtTotals(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	var (
		total int64
		err   error
	)
	switch {
	case q.Has("clientId"):
		var id int64
		var ok bool
		if id, ok = queryInt64(w, q.Get("clientId"), "clientId"); !ok {
			return
		}
		total, err = s.debts.TotalByClient(ctx, id)
	case q.Has("categoryId"):
		var id int64
		var ok bool
		if id, ok = queryInt64(w, q.Get("categoryId"), "categoryId"); !ok {
			return
		}
		total, err = s.debts.TotalByCategory(ctx, id)
	case q.Get("outstanding") == "true":
		total, err = s.debts.TotalOutstanding(ctx)
	default:
		total, err = s.debts.Total(ctx)
	}

	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"total": total})
}

func (s *Server) handleGetDebt(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	debt, err := s.debts.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, debt)
}

func (s *Server) handleUpdateDebt(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req debtRequest
	if !decode(w, r, &req) {
		return
	}

	debt, err := s.debts.Update(r.Context(), id, req.Amount, req.ClientID, req.CategoryID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, debt)
}

func (s *Server) handleDeleteDebt(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	respondDelete(w, s.debts.Delete(r.Context(), id))
}

func (s *Server) handleDeleteAllDebts(w http.ResponseWriter, r *http.Request) {
	respondDelete(w, s.debts.DeleteAll(r.Context()))
}

func (s *Server) handleGetDebtClient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	client, err := s.clients.GetByDebt(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, client)
}

func (s *Server) handleRecordPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req paymentRequest
	if !decode(w, r, &req) {
		return
	}

	payment, err := s.debts.RecordPayment(r.Context(), id, req.AmountPaid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, payment)
}

func (s *Server) handleListDebtPayments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	list, err := s.debts.ListPaymentsByDebt(r.Context(), id)
	respondList(w, list, err)
}

func (s *Server) handleDeleteDebtPayments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	respondDelete(w, s.debts.DeletePaymentsByDebt(r.Context(), id))
}

func (s *Server) handleListPayments(w http.ResponseWriter, r *http.Request) {
	list, err := s.debts.ListPayments(r.Context())
	respondList(w, list, err)
}

func (s *Server) handleGetPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	payment, err := s.debts.GetPayment(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}

func (s *Server) handleUpdatePayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req paymentRequest
	if !decode(w, r, &req) {
		return
	}

	payment, err := s.debts.UpdatePayment(r.Context(), id, req.AmountPaid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}

func (s *Server) handleDeletePayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	respondDelete(w, s.debts.DeletePayment(r.Context(), id))
}

func (s *Server) handleClientReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clients, err := s.clients.List(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	debts, err := s.debts.List(ctx)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report.BuildClientSummaries(clients, debts))
}

func (s *Server) handleOverviewReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clients, err := s.clients.List(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	debts, err := s.debts.List(ctx)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report.BuildOverview(clients, debts))
}

func (s *Server) handleExportDebts(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="debts.csv"`)
	if err := export.WriteDebtsCSV(r.Context(), s.store, w); err != nil {
		slog.Error("debts export failed", "error", err)
	}
}

func (s *Server) handleExportPayments(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="payments.csv"`)
	if err := export.WritePaymentsCSV(r.Context(), s.store, w); err != nil {
		slog.Error("payments export failed", "error", err)
	}
}

// decode parses the JSON request body into dst, writing a 400 on failure.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return false
	}
	return true
}

// pathID parses the {id} path segment, writing a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func queryInt64(w http.ResponseWriter, raw, name string) (int64, bool) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid " + name})
		return 0, false
	}
	return v, true
}

// respondList writes a query result, mapping failures through writeError.
// Empty results serialize as [] rather than null.
func respondList[T any](w http.ResponseWriter, list []T, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []T{}
	}
	writeJSON(w, http.StatusOK, list)
}

func respondDelete(w http.ResponseWriter, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeError maps domain errors onto HTTP statuses: validation failures are
// 400, missing rows 404, refused operations (category in use, overpayment)
// 409, anything else 500.
func writeError(w http.ResponseWriter, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": verr.Message,
			"field": verr.Field,
		})
	case errors.Is(err, storage.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, storage.ErrCategoryInUse), errors.Is(err, storage.ErrOverpayment):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		slog.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
