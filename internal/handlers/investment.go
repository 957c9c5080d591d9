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

type InvestmentService interface {
	Create(ctx context.Context, walletID string, req dto.CreateInvestmentRequest) (*models.Investment, error)
	Portfolio(ctx context.Context, walletID string) (dto.InvestmentPortfolio, error)
	Update(ctx context.Context, walletID, id string, req dto.UpdateInvestmentRequest) (*models.Investment, error)
	Delete(ctx context.Context, walletID, id string, confirmed bool) error
}

type investmentHandlers struct {
	ResponseHandler response.ResponseHandler
	InvestmentSvc   InvestmentService
	Wallet          walletResolver
}

func NewInvestmentHandlers(deps *Deps) *investmentHandlers {
	return &investmentHandlers{
		ResponseHandler: deps.ResponseHandler,
		InvestmentSvc:   deps.InvestmentSvc,
		Wallet:          deps.WalletSvc,
	}
}

func (h *investmentHandlers) InvestmentRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Portfolio)
	r.Post("/", h.Create)
	r.Put("/{investmentId}", h.Update)
	r.Delete("/{investmentId}", h.Delete)
	return r
}

func (h *investmentHandlers) Portfolio(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	walletID := h.Wallet.ResolveActiveWallet(r.Context(), uid)
	portfolio, err := h.InvestmentSvc.Portfolio(r.Context(), walletID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, portfolio)
}

func (h *investmentHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateInvestmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	walletID := h.Wallet.ResolveActiveWallet(r.Context(), uid)
	inv, err := h.InvestmentSvc.Create(r.Context(), walletID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, inv)
}

func (h *investmentHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "investmentId")
	var req dto.UpdateInvestmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	walletID := h.Wallet.ResolveActiveWallet(r.Context(), uid)
	inv, err := h.InvestmentSvc.Update(r.Context(), walletID, id, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, inv)
}

func (h *investmentHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "investmentId")
	uid := middleware.UID(r.Context())
	walletID := h.Wallet.ResolveActiveWallet(r.Context(), uid)
	if err := h.InvestmentSvc.Delete(r.Context(), walletID, id, confirmed(r)); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}
