package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/elcoders/payment-portal/internal/api/httpx"
	"github.com/elcoders/payment-portal/internal/auth"
	"github.com/elcoders/payment-portal/internal/services"
)

// AdminHandler issues the bearer tokens that guard the admin surface and
// hosts the destructive operations behind it.
type AdminHandler struct {
	TM       *auth.TokenManager
	KeyHash  string
	Payments *services.PaymentService
}

func NewAdminHandler(tm *auth.TokenManager, keyHash string, payments *services.PaymentService) *AdminHandler {
	return &AdminHandler{TM: tm, KeyHash: keyHash, Payments: payments}
}

type tokenResp struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	ExpiresIn    time.Duration `json:"expires_in"`
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Key == "" {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "admin key required", nil)
		return
	}
	if err := auth.VerifyKey(req.Key, h.KeyHash); err != nil {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "invalid admin key", nil)
		return
	}
	access, refresh, exp, err := h.TM.GeneratePair("admin")
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "token_failed", "token generation failed", nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tokenResp{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    time.Until(exp).Truncate(time.Second),
	})
}

func (h *AdminHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid request", nil)
		return
	}
	claims, isRefresh, err := h.TM.ParseAny(req.RefreshToken)
	if err != nil || !isRefresh {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "invalid refresh token", nil)
		return
	}
	access, refresh, exp, err := h.TM.GeneratePair(claims.Scope)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "token_failed", "token generation failed", nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tokenResp{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    time.Until(exp).Truncate(time.Second),
	})
}

// Purge wipes the payment store.
func (h *AdminHandler) Purge(w http.ResponseWriter, r *http.Request) {
	if err := h.Payments.Purge(r.Context()); err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "purge_failed", err.Error(), nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
