package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/elcoders/payment-portal/internal/api/httpx"
	"github.com/elcoders/payment-portal/internal/models"
	"github.com/elcoders/payment-portal/internal/services"
)

type OfflineHandler struct {
	Queue *services.OfflineQueue
}

func NewOfflineHandler(q *services.OfflineQueue) *OfflineHandler {
	return &OfflineHandler{Queue: q}
}

func (h *OfflineHandler) Status(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"online": h.Queue.Online(),
		"queued": len(h.Queue.Actions()),
	})
}

// SetConnectivity mirrors the browser's online/offline events: the demo UI
// reports its connectivity here and a false→true transition replays the
// queue.
func (h *OfflineHandler) SetConnectivity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Online bool `json:"online"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid JSON body", nil)
		return
	}
	h.Queue.SetOnline(req.Online)
	h.Status(w, r)
}

func (h *OfflineHandler) Actions(w http.ResponseWriter, r *http.Request) {
	actions := h.Queue.Actions()
	if actions == nil {
		actions = []models.QueuedAction{}
	}
	httpx.WriteJSON(w, http.StatusOK, actions)
}
