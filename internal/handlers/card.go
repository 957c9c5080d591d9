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

type CardService interface {
	Create(ctx context.Context, walletID string, req dto.CreateCardRequest) (*models.Card, error)
	List(ctx context.Context, walletID string) ([]*models.Card, error)
	Update(ctx context.Context, walletID, id string, req dto.UpdateCardRequest) (*models.Card, error)
	Delete(ctx context.Context, walletID, id string, confirmed bool) error
}

type cardHandlers struct {
	ResponseHandler response.ResponseHandler
	CardSvc         CardService
	Wallet          walletResolver
}

func NewCardHandlers(deps *Deps) *cardHandlers {
	return &cardHandlers{
		ResponseHandler: deps.ResponseHandler,
		CardSvc:         deps.CardSvc,
		Wallet:          deps.WalletSvc,
	}
}

func (h *cardHandlers) CardRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/{cardId}", h.Update)
	r.Delete("/{cardId}", h.Delete)
	return r
}

func (h *cardHandlers) List(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	walletID := h.Wallet.ResolveActiveWallet(r.Context(), uid)
	cards, err := h.CardSvc.List(r.Context(), walletID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, cards)
}

func (h *cardHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	walletID := h.Wallet.ResolveActiveWallet(r.Context(), uid)
	card, err := h.CardSvc.Create(r.Context(), walletID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, card)
}

func (h *cardHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "cardId")
	var req dto.UpdateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	walletID := h.Wallet.ResolveActiveWallet(r.Context(), uid)
	card, err := h.CardSvc.Update(r.Context(), walletID, id, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, card)
}

func (h *cardHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "cardId")
	uid := middleware.UID(r.Context())
	walletID := h.Wallet.ResolveActiveWallet(r.Context(), uid)
	if err := h.CardSvc.Delete(r.Context(), walletID, id, confirmed(r)); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}
