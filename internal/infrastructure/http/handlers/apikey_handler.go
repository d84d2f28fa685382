package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/jiggy-ai/jiggy-user-api/internal/application/auth"
	"github.com/jiggy-ai/jiggy-user-api/internal/application/ports"
	"github.com/jiggy-ai/jiggy-user-api/internal/domain"
	"github.com/jiggy-ai/jiggy-user-api/internal/infrastructure/http/middleware"
)

// APIKeyHandler serves API key management for the authenticated user.
type APIKeyHandler struct {
	create   *auth.CreateKey
	keys     ports.APIKeyRepository
	validate *validator.Validate
	log      zerolog.Logger
}

func NewAPIKeyHandler(create *auth.CreateKey, keys ports.APIKeyRepository, log zerolog.Logger) *APIKeyHandler {
	return &APIKeyHandler{
		create:   create,
		keys:     keys,
		validate: validator.New(),
		log:      log,
	}
}

type apiKeyResponse struct {
	Key         string    `json:"key"`
	UserID      int64     `json:"user_id"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	LastUsed    time.Time `json:"last_used"`
}

func toAPIKeyResponse(k *domain.APIKey) apiKeyResponse {
	return apiKeyResponse{
		Key:         k.Key,
		UserID:      k.UserID,
		Description: k.Description,
		CreatedAt:   k.CreatedAt,
		LastUsed:    k.LastUsed,
	}
}

// Create handles POST /apikey.
func (h *APIKeyHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
		return
	}
	var body struct {
		Description string `json:"description" validate:"max=255"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}
	key, err := h.create.Execute(r.Context(), identity.UserID, body.Description)
	if err != nil {
		h.log.Error().Err(err).Msg("create api key failed")
		writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
		return
	}
	writeJSON(w, http.StatusCreated, toAPIKeyResponse(key))
}

// List handles GET /apikey. Only the caller's own keys are visible.
func (h *APIKeyHandler) List(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
		return
	}
	keys, err := h.keys.ListByUser(r.Context(), identity.UserID)
	if err != nil {
		h.log.Error().Err(err).Msg("list api keys failed")
		writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
		return
	}
	out := make([]apiKeyResponse, 0, len(keys))
	for _, k := range keys {
		out = append(out, toAPIKeyResponse(k))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": out})
}

// Delete handles DELETE /apikey/{key}. A key that does not exist or belongs
// to someone else gets the same 404 so key secrets cannot be probed.
func (h *APIKeyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
		return
	}
	secret := chi.URLParam(r, "key")
	key, err := h.keys.GetBySecret(r.Context(), secret)
	if err != nil {
		h.log.Error().Err(err).Msg("lookup api key failed")
		writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
		return
	}
	if key == nil || key.UserID != identity.UserID {
		writeErr(w, http.StatusNotFound, ErrCodeNotFound, "api key not found")
		return
	}
	if err := h.keys.Delete(r.Context(), secret); err != nil {
		h.log.Error().Err(err).Msg("delete api key failed")
		writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
