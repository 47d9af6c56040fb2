package handlers

import (
	"net/http"

	"github.com/elcoders/payment-portal/internal/api/httpx"
	"github.com/elcoders/payment-portal/internal/services"
)

type RatesHandler struct {
	Rates *services.RateService
}

func NewRatesHandler(r *services.RateService) *RatesHandler {
	return &RatesHandler{Rates: r}
}

type rateResp struct {
	Rate    float64 `json:"rate"`
	Loading bool    `json:"loading"`
}

func (h *RatesHandler) Current(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, rateResp{Rate: h.Rates.Current(), Loading: h.Rates.Loading()})
}

func (h *RatesHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	rate := h.Rates.Refresh(r.Context())
	httpx.WriteJSON(w, http.StatusOK, rateResp{Rate: rate})
}
