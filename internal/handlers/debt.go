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

type DebtService interface {
	Create(ctx context.Context, walletID string, req dto.CreateDebtRequest) (*models.Debt, error)
	List(ctx context.Context, walletID string) ([]*models.Debt, error)
	Update(ctx context.Context, walletID, id string, req dto.UpdateDebtRequest) (*models.Debt, error)
	Delete(ctx context.Context, walletID, id string, confirmed bool) error
}

type debtHandlers struct {
	ResponseHandler response.ResponseHandler
	DebtSvc         DebtService
	Wallet          walletResolver
}

func NewDebtHandlers(deps *Deps) *debtHandlers {
	return &debtHandlers{
		ResponseHandler: deps.ResponseHandler,
		DebtSvc:         deps.DebtSvc,
		Wallet:          deps.WalletSvc,
	}
}

func (h *debtHandlers) DebtRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/{debtId}", h.Update)
	r.Delete("/{debtId}", h.Delete)
	return r
}

func (h *debtHandlers) List(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	walletID := h.Wallet.ResolveActiveWallet(r.Context(), uid)
	debts, err := h.DebtSvc.List(r.Context(), walletID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, debts)
}

func (h *debtHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDebtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	walletID := h.Wallet.ResolveActiveWallet(r.Context(), uid)
	debt, err := h.DebtSvc.Create(r.Context(), walletID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, debt)
}

func (h *debtHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "debtId")
	var req dto.UpdateDebtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	walletID := h.Wallet.ResolveActiveWallet(r.Context(), uid)
	debt, err := h.DebtSvc.Update(r.Context(), walletID, id, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, debt)
}

func (h *debtHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "debtId")
	uid := middleware.UID(r.Context())
	walletID := h.Wallet.ResolveActiveWallet(r.Context(), uid)
	if err := h.DebtSvc.Delete(r.Context(), walletID, id, confirmed(r)); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}
