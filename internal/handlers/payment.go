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

type PaymentService interface {
	Pay(ctx context.Context, walletID, ownerUID, ownerName string, req dto.PaymentRequest) (*models.Transaction, error)
	Consolidate(ctx context.Context, walletID string, confirmed bool) (dto.ConsolidateResult, error)
	ConsolidateOne(ctx context.Context, walletID, id string) (dto.ConsolidateResult, error)
}

type paymentHandlers struct {
	ResponseHandler response.ResponseHandler
	PaymentSvc      PaymentService
	Wallet          walletResolver
}

func NewPaymentHandlers(deps *Deps) *paymentHandlers {
	return &paymentHandlers{
		ResponseHandler: deps.ResponseHandler,
		PaymentSvc:      deps.PaymentSvc,
		Wallet:          deps.WalletSvc,
	}
}

func (h *paymentHandlers) PaymentRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Pay)
	return r
}

func (h *paymentHandlers) ConsolidationRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Consolidate)
	r.Post("/{transactionId}", h.ConsolidateOne)
	return r
}

func (h *paymentHandlers) Pay(w http.ResponseWriter, r *http.Request) {
	var req dto.PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	walletID := h.Wallet.ResolveActiveWallet(r.Context(), uid)
	entry, err := h.PaymentSvc.Pay(r.Context(), walletID, uid, middleware.DisplayName(r.Context()), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, entry)
}

func (h *paymentHandlers) Consolidate(w http.ResponseWriter, r *http.Request) {
	var req dto.ConsolidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	walletID := h.Wallet.ResolveActiveWallet(r.Context(), uid)
	result, err := h.PaymentSvc.Consolidate(r.Context(), walletID, req.Confirm)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, result)
}

func (h *paymentHandlers) ConsolidateOne(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "transactionId")
	uid := middleware.UID(r.Context())
	walletID := h.Wallet.ResolveActiveWallet(r.Context(), uid)
	result, err := h.PaymentSvc.ConsolidateOne(r.Context(), walletID, id)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, result)
}
