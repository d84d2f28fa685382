package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/jiggy-ai/jiggy-user-api/internal/application/team"
	"github.com/jiggy-ai/jiggy-user-api/internal/domain"
	"github.com/jiggy-ai/jiggy-user-api/internal/infrastructure/http/middleware"
)

// TeamsHandler serves team and membership operations.
type TeamsHandler struct {
	createTeam   *team.CreateTeam
	listTeams    *team.ListTeams
	listMembers  *team.ListMembers
	addMember    *team.AddMember
	updateMember *team.UpdateMember
	removeMember *team.RemoveMember
	validate     *validator.Validate
	log          zerolog.Logger
}

func NewTeamsHandler(createTeam *team.CreateTeam, listTeams *team.ListTeams, listMembers *team.ListMembers, addMember *team.AddMember, updateMember *team.UpdateMember, removeMember *team.RemoveMember, log zerolog.Logger) *TeamsHandler {
	return &TeamsHandler{
		createTeam:   createTeam,
		listTeams:    listTeams,
		listMembers:  listMembers,
		addMember:    addMember,
		updateMember: updateMember,
		removeMember: removeMember,
		validate:     validator.New(),
		log:          log,
	}
}

type teamResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toTeamResponse(t *domain.Team) teamResponse {
	return teamResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

type memberResponse struct {
	ID        int64     `json:"id"`
	TeamID    int64     `json:"team_id"`
	UserID    int64     `json:"user_id"`
	InvitedBy int64     `json:"invited_by"`
	Role      string    `json:"role"`
	Accepted  bool      `json:"accepted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toMemberResponse(m *domain.TeamMember) memberResponse {
	return memberResponse{
		ID:        m.ID,
		TeamID:    m.TeamID,
		UserID:    m.UserID,
		InvitedBy: m.InvitedBy,
		Role:      string(m.Role),
		Accepted:  m.Accepted,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// Create handles POST /team.
func (h *TeamsHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
		return
	}
	var body struct {
		Name        string `json:"name" validate:"required,min=3,max=39"`
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
	t, err := h.createTeam.Execute(r.Context(), identity.UserID, body.Name, body.Description)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTeamResponse(t))
}

// List handles GET /teams; every team the caller is a member of.
func (h *TeamsHandler) List(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
		return
	}
	teams, err := h.listTeams.Execute(r.Context(), identity.UserID)
	if err != nil {
		h.log.Error().Err(err).Msg("list teams failed")
		writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
		return
	}
	out := make([]teamResponse, 0, len(teams))
	for _, t := range teams {
		out = append(out, toTeamResponse(t))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": out})
}

// Delete handles DELETE /team/{team_id}. Teams are never deleted; the route
// answers so clients get a stable error instead of a 404.
func (h *TeamsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	writeErr(w, http.StatusNotImplemented, ErrCodeNotImplemented, "team deletion is not supported")
}

// ListMembers handles GET /team/{team_id}/member.
func (h *TeamsHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
		return
	}
	teamID, ok := pathID(w, r, "team_id")
	if !ok {
		return
	}
	members, err := h.listMembers.Execute(r.Context(), teamID, identity.UserID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	out := make([]memberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, toMemberResponse(m))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": out})
}

// AddMember handles POST /team/{team_id}/member. The target is named by
// username; the membership is created accepted.
func (h *TeamsHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
		return
	}
	teamID, ok := pathID(w, r, "team_id")
	if !ok {
		return
	}
	var body struct {
		Username string `json:"username" validate:"required,min=3,max=39"`
		Role     string `json:"role" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}
	role := domain.TeamRole(body.Role)
	if !role.Valid() {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid role")
		return
	}
	m, err := h.addMember.Execute(r.Context(), team.AddMemberInput{
		TeamID:   teamID,
		CallerID: identity.UserID,
		Username: body.Username,
		Role:     role,
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toMemberResponse(m))
}

// UpdateMember handles PATCH /team/{team_id}/member/{member_id}. Admins may
// patch role and acceptance; a member may flip only their own accepted flag.
func (h *TeamsHandler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
		return
	}
	teamID, ok := pathID(w, r, "team_id")
	if !ok {
		return
	}
	memberID, ok := pathID(w, r, "member_id")
	if !ok {
		return
	}
	var body struct {
		Role     *string `json:"role"`
		Accepted *bool   `json:"accepted"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid body")
		return
	}
	if body.Role == nil && body.Accepted == nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "nothing to update")
		return
	}
	var role *domain.TeamRole
	if body.Role != nil {
		parsed := domain.TeamRole(*body.Role)
		if !parsed.Valid() {
			writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid role")
			return
		}
		role = &parsed
	}
	m, err := h.updateMember.Execute(r.Context(), team.UpdateMemberInput{
		TeamID:   teamID,
		MemberID: memberID,
		CallerID: identity.UserID,
		Role:     role,
		Accepted: body.Accepted,
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMemberResponse(m))
}

// RemoveMember handles DELETE /team/{team_id}/member/{member_id}.
func (h *TeamsHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
		return
	}
	teamID, ok := pathID(w, r, "team_id")
	if !ok {
		return
	}
	memberID, ok := pathID(w, r, "member_id")
	if !ok {
		return
	}
	if err := h.removeMember.Execute(r.Context(), teamID, memberID, identity.UserID); err != nil {
		writeDomainErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}
