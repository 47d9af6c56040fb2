package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/elcoders/payment-portal/internal/api/httpx"
	"github.com/elcoders/payment-portal/internal/api/validate"
	"github.com/elcoders/payment-portal/internal/models"
	"github.com/elcoders/payment-portal/internal/services"
)

type PaymentsHandler struct {
	Payments *services.PaymentService
	Queue    *services.OfflineQueue
}

func NewPaymentsHandler(p *services.PaymentService, q *services.OfflineQueue) *PaymentsHandler {
	return &PaymentsHandler{Payments: p, Queue: q}
}

// List supports the history view: GET /payments?q=<substring>.
func (h *PaymentsHandler) List(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	records := h.Payments.Search(r.Context(), term)
	if records == nil {
		records = []models.PaymentRecord{}
	}
	httpx.WriteJSON(w, http.StatusOK, records)
}

func (h *PaymentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p := h.Payments.GetByID(r.Context(), id)
	if p == nil {
		httpx.WriteError(w, http.StatusNotFound, "not_found", "payment not found", nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}

// Create accepts a draft record. While offline the intent is queued instead
// of stored, and 202 is returned with the queued action.
func (h *PaymentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var draft models.PaymentRecord
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid JSON body", nil)
		return
	}
	if err := draft.Validate(); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "validation", err.Error(), nil)
		return
	}

	if !h.Queue.Online() {
		action := h.Queue.Enqueue(models.ActionCreatePayment, draft)
		httpx.WriteJSON(w, http.StatusAccepted, map[string]any{
			"queued": true,
			"action": action,
		})
		return
	}

	created, err := h.Payments.Create(r.Context(), draft)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "create_failed", err.Error(), nil)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, created)
}

// Verify merges the submitted fields and forces the record to completed.
func (h *PaymentsHandler) Verify(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var patch models.PaymentPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid JSON body", nil)
		return
	}

	if !h.Queue.Online() {
		data := models.PaymentRecord{ID: id}
		data.Apply(patch)
		data.ID = id
		action := h.Queue.Enqueue(models.ActionVerifyPayment, data)
		httpx.WriteJSON(w, http.StatusAccepted, map[string]any{
			"queued": true,
			"action": action,
		})
		return
	}

	verified, err := h.Payments.Verify(r.Context(), id, patch)
	if err != nil {
		var verrs validate.Errs
		if errors.As(err, &verrs) {
			httpx.WriteError(w, http.StatusBadRequest, "validation", verrs.Error(), verrs)
			return
		}
		httpx.WriteError(w, http.StatusBadRequest, "verify_failed", err.Error(), nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, verified)
}

func (h *PaymentsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var patch models.PaymentPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid JSON body", nil)
		return
	}
	p := h.Payments.Update(r.Context(), id, patch)
	if p == nil {
		httpx.WriteError(w, http.StatusNotFound, "not_found", "payment not found", nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}

func (h *PaymentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.Payments.Delete(r.Context(), id) {
		httpx.WriteError(w, http.StatusNotFound, "not_found", "payment not found", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
