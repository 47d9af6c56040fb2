package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/elcoders/payment-portal/internal/api/httpx"
	"github.com/elcoders/payment-portal/internal/models"
)

// AccountsHandler serves the disclosed payment rails and the preset amount
// table. All values are fixed demo data.
type AccountsHandler struct{}

func NewAccountsHandler() *AccountsHandler { return &AccountsHandler{} }

func (h *AccountsHandler) Bank(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, models.BankAccounts)
}

func (h *AccountsHandler) Crypto(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, models.CryptoNetworks)
}

// CryptoQR renders the deposit address of a network as a PNG QR code.
func (h *AccountsHandler) CryptoQR(w http.ResponseWriter, r *http.Request) {
	network := models.CryptoNetwork(chi.URLParam(r, "network"))
	info, ok := models.CryptoNetworkByID(network)
	if !ok {
		httpx.WriteError(w, http.StatusNotFound, "not_found", "unknown crypto network", nil)
		return
	}
	png, err := qrcode.Encode(info.Address, qrcode.Medium, qrSize)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "qr_failed", "could not render QR code", nil)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

func (h *AccountsHandler) Amounts(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, models.PresetAmounts)
}
