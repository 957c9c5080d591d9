package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/granaapp/grana-backend/internal/dto"
	"github.com/granaapp/grana-backend/internal/middleware"
	"github.com/granaapp/grana-backend/internal/response"
)

type WalletService interface {
	ResolveActiveWallet(ctx context.Context, uid string) string
	Info(ctx context.Context, uid string) dto.WalletInfo
	Link(ctx context.Context, uid string, req dto.LinkWalletRequest) error
	Unlink(ctx context.Context, uid string) error
}

type walletHandlers struct {
	ResponseHandler response.ResponseHandler
	WalletSvc       WalletService
}

func NewWalletHandlers(deps *Deps) *walletHandlers {
	return &walletHandlers{
		ResponseHandler: deps.ResponseHandler,
		WalletSvc:       deps.WalletSvc,
	}
}

func (h *walletHandlers) WalletRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Info)
	r.Post("/link", h.Link)
	r.Post("/unlink", h.Unlink)
	return r
}

func (h *walletHandlers) Info(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, h.WalletSvc.Info(r.Context(), uid))
}

func (h *walletHandlers) Link(w http.ResponseWriter, r *http.Request) {
	var req dto.LinkWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	if err := h.WalletSvc.Link(r.Context(), uid, req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *walletHandlers) Unlink(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	if err := h.WalletSvc.Unlink(r.Context(), uid); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}
