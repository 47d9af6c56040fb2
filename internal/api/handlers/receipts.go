package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/elcoders/payment-portal/internal/api/httpx"
	"github.com/elcoders/payment-portal/internal/models"
	"github.com/elcoders/payment-portal/internal/services"
)

const (
	// Completed receipts auto-redirect the visitor to support after a
	// short countdown, as the original receipt page did.
	receiptRedirectURL   = "https://wa.link/gvw4ue"
	receiptRedirectDelay = 10
	qrSize               = 256
)

type ReceiptsHandler struct {
	Payments *services.PaymentService
}

func NewReceiptsHandler(p *services.PaymentService) *ReceiptsHandler {
	return &ReceiptsHandler{Payments: p}
}

type receiptResp struct {
	Payment              models.PaymentRecord `json:"payment"`
	RedirectURL          string               `json:"redirectUrl,omitempty"`
	RedirectAfterSeconds int                  `json:"redirectAfterSeconds,omitempty"`
}

// Get returns the receipt view model for a record id.
func (h *ReceiptsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p := h.Payments.GetByID(r.Context(), id)
	if p == nil {
		httpx.WriteError(w, http.StatusNotFound, "not_found", "payment not found", nil)
		return
	}
	resp := receiptResp{Payment: *p}
	if p.Status == models.StatusCompleted {
		resp.RedirectURL = receiptRedirectURL
		resp.RedirectAfterSeconds = receiptRedirectDelay
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// QR renders a PNG QR code linking to the receipt.
func (h *ReceiptsHandler) QR(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p := h.Payments.GetByID(r.Context(), id)
	if p == nil {
		httpx.WriteError(w, http.StatusNotFound, "not_found", "payment not found", nil)
		return
	}
	png, err := qrcode.Encode("/receipt/"+p.ID, qrcode.Medium, qrSize)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "qr_failed", "could not render QR code", nil)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}
