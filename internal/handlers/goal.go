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

type GoalService interface {
	Create(ctx context.Context, walletID string, req dto.CreateGoalRequest) (*models.Goal, error)
	List(ctx context.Context, walletID string) ([]*models.Goal, error)
	Update(ctx context.Context, walletID, id string, req dto.UpdateGoalRequest) (*models.Goal, error)
	Delete(ctx context.Context, walletID, id string, confirmed bool) error
}

type goalHandlers struct {
	ResponseHandler response.ResponseHandler
	GoalSvc         GoalService
	Wallet          walletResolver
}

func NewGoalHandlers(deps *Deps) *goalHandlers {
	return &goalHandlers{
		ResponseHandler: deps.ResponseHandler,
		GoalSvc:         deps.GoalSvc,
		Wallet:          deps.WalletSvc,
	}
}

func (h *goalHandlers) GoalRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/{goalId}", h.Update)
	r.Delete("/{goalId}", h.Delete)
	return r
}

func (h *goalHandlers) List(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	walletID := h.Wallet.ResolveActiveWallet(r.Context(), uid)
	goals, err := h.GoalSvc.List(r.Context(), walletID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, goals)
}

func (h *goalHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	walletID := h.Wallet.ResolveActiveWallet(r.Context(), uid)
	goal, err := h.GoalSvc.Create(r.Context(), walletID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, goal)
}

func (h *goalHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "goalId")
	var req dto.UpdateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	walletID := h.Wallet.ResolveActiveWallet(r.Context(), uid)
	goal, err := h.GoalSvc.Update(r.Context(), walletID, id, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, goal)
}

func (h *goalHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "goalId")
	uid := middleware.UID(r.Context())
	walletID := h.Wallet.ResolveActiveWallet(r.Context(), uid)
	if err := h.GoalSvc.Delete(r.Context(), walletID, id, confirmed(r)); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}
