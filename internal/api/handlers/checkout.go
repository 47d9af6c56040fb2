package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/elcoders/payment-portal/internal/api/httpx"
	"github.com/elcoders/payment-portal/internal/api/validate"
	"github.com/elcoders/payment-portal/internal/flow"
	"github.com/elcoders/payment-portal/internal/models"
	"github.com/elcoders/payment-portal/internal/services"
)

type CheckoutHandler struct {
	Checkout *flow.Checkout
	Sessions *services.SessionService
}

func NewCheckoutHandler(c *flow.Checkout, s *services.SessionService) *CheckoutHandler {
	return &CheckoutHandler{Checkout: c, Sessions: s}
}

func (h *CheckoutHandler) State(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.Checkout.View())
}

type fieldsReq struct {
	Fields models.FormData `json:"fields"`
	Preset string          `json:"preset,omitempty"`
}

func (h *CheckoutHandler) SetFields(w http.ResponseWriter, r *http.Request) {
	var req fieldsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid JSON body", nil)
		return
	}
	view, err := h.Checkout.SetFields(req.Fields, req.Preset)
	if err != nil {
		httpx.WriteError(w, http.StatusConflict, "not_editable", err.Error(), nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, view)
}

func (h *CheckoutHandler) Start(w http.ResponseWriter, r *http.Request) {
	view, queued, err := h.Checkout.Start(r.Context())
	if err != nil {
		writeFlowError(w, err)
		return
	}
	if queued {
		httpx.WriteJSON(w, http.StatusAccepted, map[string]any{"queued": true, "view": view})
		return
	}
	httpx.WriteJSON(w, http.StatusOK, view)
}

func (h *CheckoutHandler) Verify(w http.ResponseWriter, r *http.Request) {
	record, queued, err := h.Checkout.Verify(r.Context())
	if err != nil {
		writeFlowError(w, err)
		return
	}
	if queued {
		httpx.WriteJSON(w, http.StatusAccepted, map[string]any{"queued": true})
		return
	}
	httpx.WriteJSON(w, http.StatusOK, record)
}

func (h *CheckoutHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.Checkout.Cancel())
}

// Recover restores the form from the saved snapshot, if one is worth
// restoring.
func (h *CheckoutHandler) Recover(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.Sessions.Recover()
	if !ok {
		httpx.WriteError(w, http.StatusNotFound, "no_session", "no recoverable session", nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, h.Checkout.Restore(snap))
}

func writeFlowError(w http.ResponseWriter, err error) {
	var verrs validate.Errs
	if errors.As(err, &verrs) {
		httpx.WriteError(w, http.StatusBadRequest, "validation", verrs.Error(), verrs)
		return
	}
	httpx.WriteError(w, http.StatusConflict, "flow", err.Error(), nil)
}
