package handlers

import (
	"net/http"

	"github.com/elcoders/payment-portal/internal/api/httpx"
	"github.com/elcoders/payment-portal/internal/services"
)

type SessionHandler struct {
	Sessions *services.SessionService
}

func NewSessionHandler(s *services.SessionService) *SessionHandler {
	return &SessionHandler{Sessions: s}
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.Sessions.Recover()
	if !ok {
		httpx.WriteError(w, http.StatusNotFound, "no_session", "no recoverable session", nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, snap)
}

func (h *SessionHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Clear()
	w.WriteHeader(http.StatusNoContent)
}
