package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/jiggy-ai/jiggy-user-api/internal/application/ports"
	"github.com/jiggy-ai/jiggy-user-api/internal/application/user"
	"github.com/jiggy-ai/jiggy-user-api/internal/domain"
	"github.com/jiggy-ai/jiggy-user-api/internal/infrastructure/http/middleware"
)

// UsersHandler serves registration and account operations.
type UsersHandler struct {
	register *user.Register
	remove   *user.Delete
	users    ports.UserRepository
	emitter  ports.WebhookEmitter
	validate *validator.Validate
	log      zerolog.Logger
}

func NewUsersHandler(register *user.Register, remove *user.Delete, users ports.UserRepository, emitter ports.WebhookEmitter, log zerolog.Logger) *UsersHandler {
	return &UsersHandler{
		register: register,
		remove:   remove,
		users:    users,
		emitter:  emitter,
		validate: validator.New(),
		log:      log,
	}
}

type userResponse struct {
	ID            int64     `json:"id"`
	Username      string    `json:"username"`
	DefaultTeamID int64     `json:"default_team_id"`
	CreatedAt     time.Time `json:"created_at"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:            u.ID,
		Username:      u.Username,
		DefaultTeamID: u.DefaultTeamID,
		CreatedAt:     u.CreatedAt,
	}
}

// Create handles POST /users. The bearer credential must be an identity
// provider token; the regular verification middleware does not run here
// because the account does not exist yet.
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	credential, ok := middleware.BearerCredential(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "missing or invalid authorization")
		return
	}
	var body struct {
		Username string `json:"username" validate:"required,min=3,max=39"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}
	result, err := h.register.Execute(r.Context(), credential, body.Username)
	if err != nil {
		AuditEmit(h.log, r, h.emitter, "user.register", 0, "third_party", false, err.Error())
		writeDomainErr(w, err)
		return
	}
	AuditEmit(h.log, r, h.emitter, "user.register", result.User.ID, "third_party", true, "")
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"user": toUserResponse(result.User),
		"key":  toAPIKeyResponse(result.Key),
	})
}

// Current handles GET /users/current.
func (h *UsersHandler) Current(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
		return
	}
	u, err := h.users.GetByID(r.Context(), identity.UserID)
	if err != nil {
		h.log.Error().Err(err).Msg("lookup current user failed")
		writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
		return
	}
	if u == nil {
		writeErr(w, http.StatusNotFound, ErrCodeNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(u))
}

// Delete handles DELETE /users/{user_id}. Self-delete only; memberships,
// API keys and the personal team go with the account.
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
		return
	}
	userID, err := strconv.ParseInt(chi.URLParam(r, "user_id"), 10, 64)
	if err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid user id")
		return
	}
	if err := h.remove.Execute(r.Context(), identity.UserID, userID); err != nil {
		AuditEmit(h.log, r, h.emitter, "user.delete", identity.UserID, string(identity.Method), false, err.Error())
		writeDomainErr(w, err)
		return
	}
	AuditEmit(h.log, r, h.emitter, "user.delete", identity.UserID, string(identity.Method), true, "")
	w.WriteHeader(http.StatusNoContent)
}
