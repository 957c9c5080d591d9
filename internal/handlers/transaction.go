package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/granaapp/grana-backend/internal/dto"
	"github.com/granaapp/grana-backend/internal/middleware"
	"github.com/granaapp/grana-backend/internal/models"
	"github.com/granaapp/grana-backend/internal/response"
)

type TransactionService interface {
	Record(ctx context.Context, walletID, ownerUID, ownerName string, req dto.CreateTransactionRequest) ([]*models.Transaction, error)
	Update(ctx context.Context, walletID, id string, req dto.UpdateTransactionRequest) (*models.Transaction, error)
	Remove(ctx context.Context, walletID, id string, confirmed bool) error
}

type SummaryService interface {
	View(ctx context.Context, walletID string, filter dto.TransactionFilter) (dto.LedgerView, error)
	ExportCSV(ctx context.Context, walletID string, filter dto.TransactionFilter) ([]byte, error)
}

type transactionHandlers struct {
	ResponseHandler response.ResponseHandler
	TransactionSvc  TransactionService
	SummarySvc      SummaryService
	Wallet          walletResolver
}

func NewTransactionHandlers(deps *Deps) *transactionHandlers {
	return &transactionHandlers{
		ResponseHandler: deps.ResponseHandler,
		TransactionSvc:  deps.TransactionSvc,
		SummarySvc:      deps.SummarySvc,
		Wallet:          deps.WalletSvc,
	}
}

func (h *transactionHandlers) TransactionRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/export", h.Export) // must be before /{transactionId}
	r.Put("/{transactionId}", h.Update)
	r.Delete("/{transactionId}", h.Delete)
	return r
}

func filterFromQuery(r *http.Request) dto.TransactionFilter {
	q := r.URL.Query()
	return dto.TransactionFilter{
		Month:  q.Get("month"),
		Search: q.Get("search"),
		Source: q.Get("source"),
		Status: q.Get("status"),
	}
}

func confirmed(r *http.Request) bool {
	return r.URL.Query().Get("confirm") == "true"
}

func (h *transactionHandlers) List(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	walletID := h.Wallet.ResolveActiveWallet(r.Context(), uid)
	view, err := h.SummarySvc.View(r.Context(), walletID, filterFromQuery(r))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, view)
}

func (h *transactionHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	walletID := h.Wallet.ResolveActiveWallet(r.Context(), uid)
	created, err := h.TransactionSvc.Record(r.Context(), walletID, uid, middleware.DisplayName(r.Context()), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, created)
}

func (h *transactionHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "transactionId")
	var req dto.UpdateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	walletID := h.Wallet.ResolveActiveWallet(r.Context(), uid)
	updated, err := h.TransactionSvc.Update(r.Context(), walletID, id, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, updated)
}

func (h *transactionHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "transactionId")
	uid := middleware.UID(r.Context())
	walletID := h.Wallet.ResolveActiveWallet(r.Context(), uid)
	if err := h.TransactionSvc.Remove(r.Context(), walletID, id, confirmed(r)); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *transactionHandlers) Export(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	walletID := h.Wallet.ResolveActiveWallet(r.Context(), uid)
	csv, err := h.SummarySvc.ExportCSV(r.Context(), walletID, filterFromQuery(r))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="transacoes.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(csv)
}
