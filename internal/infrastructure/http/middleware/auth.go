package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	appauth "github.com/jiggy-ai/jiggy-user-api/internal/application/auth"
	domerrors "github.com/jiggy-ai/jiggy-user-api/internal/domain/errors"
)

// AuthValidator verifies the bearer credential (first-party token or
// identity-provider token) and sets the verified identity in context.
type AuthValidator struct {
	verify *appauth.VerifyCredential
}

func NewAuthValidator(verify *appauth.VerifyCredential) *AuthValidator {
	return &AuthValidator{verify: verify}
}

func (m *AuthValidator) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		credential, ok := BearerCredential(r)
		if !ok {
			writeErr(w, http.StatusUnauthorized, "missing or invalid authorization")
			return
		}
		identity, err := m.verify.Execute(r.Context(), credential)
		if err != nil {
			switch {
			case errors.Is(err, domerrors.ErrUserNotFound):
				// Authenticated at the provider but no linked account; the
				// client must register before anything else.
				writeErr(w, http.StatusBadRequest, "no user found for the authenticated subject; create a user first")
			case errors.Is(err, domerrors.ErrInvalidCredential):
				writeErr(w, http.StatusUnauthorized, "invalid token")
			default:
				writeErr(w, http.StatusInternalServerError, "internal error")
			}
			RecordAuthAttempt("verify", false)
			return
		}
		RecordAuthAttempt(string(identity.Method), true)
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

// BearerCredential extracts the bearer token from the Authorization header.
func BearerCredential(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(auth, "Bearer "), true
}

func writeErr(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
