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

type AccountService interface {
	Create(ctx context.Context, walletID string, req dto.CreateAccountRequest) (*models.Account, error)
	List(ctx context.Context, walletID string) ([]*models.Account, error)
	Update(ctx context.Context, walletID, id string, req dto.UpdateAccountRequest) (*models.Account, error)
	Delete(ctx context.Context, walletID, id string, confirmed bool) error
}

type accountHandlers struct {
	ResponseHandler response.ResponseHandler
	AccountSvc      AccountService
	Wallet          walletResolver
}

func NewAccountHandlers(deps *Deps) *accountHandlers {
	return &accountHandlers{
		ResponseHandler: deps.ResponseHandler,
		AccountSvc:      deps.AccountSvc,
		Wallet:          deps.WalletSvc,
	}
}

func (h *accountHandlers) AccountRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/{accountId}", h.Update)
	r.Delete("/{accountId}", h.Delete)
	return r
}

func (h *accountHandlers) List(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	walletID := h.Wallet.ResolveActiveWallet(r.Context(), uid)
	accounts, err := h.AccountSvc.List(r.Context(), walletID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, accounts)
}

func (h *accountHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	walletID := h.Wallet.ResolveActiveWallet(r.Context(), uid)
	acc, err := h.AccountSvc.Create(r.Context(), walletID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, acc)
}

func (h *accountHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "accountId")
	var req dto.UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	walletID := h.Wallet.ResolveActiveWallet(r.Context(), uid)
	acc, err := h.AccountSvc.Update(r.Context(), walletID, id, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, acc)
}

func (h *accountHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "accountId")
	uid := middleware.UID(r.Context())
	walletID := h.Wallet.ResolveActiveWallet(r.Context(), uid)
	if err := h.AccountSvc.Delete(r.Context(), walletID, id, confirmed(r)); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}
