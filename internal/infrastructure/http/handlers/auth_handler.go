package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/jiggy-ai/jiggy-user-api/internal/application/auth"
	"github.com/jiggy-ai/jiggy-user-api/internal/application/ports"
	domerrors "github.com/jiggy-ai/jiggy-user-api/internal/domain/errors"
)

// AuthHandler serves the API-key-to-token exchange.
type AuthHandler struct {
	exchange *auth.ExchangeKey
	emitter  ports.WebhookEmitter
	validate *validator.Validate
	log      zerolog.Logger
}

func NewAuthHandler(exchange *auth.ExchangeKey, emitter ports.WebhookEmitter, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		exchange: exchange,
		emitter:  emitter,
		validate: validator.New(),
		log:      log,
	}
}

// Exchange handles POST /auth. The body carries an API key; the response
// carries a short-lived signed token bound to the key's owner.
func (h *AuthHandler) Exchange(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Key string `json:"key" validate:"required,max=64"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}
	if !auth.ValidKeyFormat(body.Key) {
		AuditEmit(h.log, r, h.emitter, "auth.exchange", 0, "api_key", false, "malformed key")
		writeErr(w, http.StatusUnauthorized, ErrCodeInvalidCredential, "invalid api key")
		return
	}
	token, err := h.exchange.Execute(r.Context(), body.Key)
	if err != nil {
		if errors.Is(err, domerrors.ErrInvalidCredential) {
			AuditEmit(h.log, r, h.emitter, "auth.exchange", 0, "api_key", false, "unknown key")
			writeErr(w, http.StatusUnauthorized, ErrCodeInvalidCredential, "invalid api key")
			return
		}
		h.log.Error().Err(err).Msg("key exchange failed")
		writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
		return
	}
	AuditEmit(h.log, r, h.emitter, "auth.exchange", 0, "api_key", true, "")
	writeJSON(w, http.StatusOK, map[string]string{"jwt": token})
}
