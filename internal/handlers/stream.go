package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/granaapp/grana-backend/internal/middleware"
	"github.com/granaapp/grana-backend/internal/services"
	"github.com/granaapp/grana-backend/pkg/logger"
)

// streamHandlers pushes wallet snapshots over server-sent events. One
// event per change, full snapshot each time; the client replaces its
// local state wholesale.
type streamHandlers struct {
	Sync   *services.SyncManager
	Wallet walletResolver
}

func NewStreamHandlers(deps *Deps) *streamHandlers {
	return &streamHandlers{
		Sync:   deps.Sync,
		Wallet: deps.WalletSvc,
	}
}

func (h *streamHandlers) StreamRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Stream)
	return r
}

func (h *streamHandlers) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	uid := middleware.UID(r.Context())
	walletID := h.Wallet.ResolveActiveWallet(r.Context(), uid)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	snapshots, detach := h.Sync.Attach(r.Context(), walletID)
	defer detach()

	log := logger.FromContext(r.Context())
	for {
		select {
		case <-r.Context().Done():
			return
		case snap, open := <-snapshots:
			if !open {
				return
			}
			payload, err := json.Marshal(snap)
			if err != nil {
				log.Error("snapshot encode failed", "wallet_id", walletID, "error", err)
				continue
			}
			if _, err := fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", payload); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
