package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/jiggy-ai/jiggy-user-api/internal/infrastructure/http/middleware"
	"github.com/jiggy-ai/jiggy-user-api/internal/infrastructure/storage"
)

// AssetsHandler issues presigned download URLs for objects in the assets
// bucket. The handler never proxies object bytes.
type AssetsHandler struct {
	presigner *storage.Presigner
	log       zerolog.Logger
}

func NewAssetsHandler(presigner *storage.Presigner, log zerolog.Logger) *AssetsHandler {
	return &AssetsHandler{presigner: presigner, log: log}
}

// URL handles GET /assets/{key}/url.
func (h *AssetsHandler) URL(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
		return
	}
	if h.presigner == nil {
		writeErr(w, http.StatusNotImplemented, ErrCodeNotImplemented, "asset storage is not configured")
		return
	}
	objectKey := chi.URLParam(r, "key")
	if objectKey == "" {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "missing object key")
		return
	}
	url, err := h.presigner.PresignGet(r.Context(), objectKey, storage.DefaultURLLifetime)
	if err != nil {
		h.log.Error().Err(err).Str("object_key", objectKey).Msg("presign failed")
		writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
