package middleware

import (
	"net/http"
	"strings"

	"github.com/elcoders/payment-portal/internal/api/httpx"
	"github.com/elcoders/payment-portal/internal/auth"
)

// AdminAuth guards the admin surface (error reports, store purge) with a
// bearer access token scoped "admin".
type AdminAuth struct {
	TM *auth.TokenManager
}

func NewAdminAuth(tm *auth.TokenManager) *AdminAuth {
	return &AdminAuth{TM: tm}
}

func (m *AdminAuth) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ah := r.Header.Get("Authorization")
		if ah == "" || !strings.HasPrefix(strings.ToLower(ah), "bearer ") {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token", nil)
			return
		}
		token := strings.TrimSpace(ah[len("Bearer "):])

		claims, isRefresh, err := m.TM.ParseAny(token)
		if err != nil || isRefresh || claims.Scope != "admin" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "invalid access token", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
