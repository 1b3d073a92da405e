package rest

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/ewasl-backend/internal/domain"
	"github.com/heartmarshall/ewasl-backend/internal/service/team"
)

type teamService interface {
	ListMembers(ctx context.Context) ([]domain.TeamMember, error)
	UpdateMemberRole(ctx context.Context, input team.UpdateRoleInput) (*domain.TeamMember, error)
	RemoveMember(ctx context.Context, memberID uuid.UUID) error
	Invite(ctx context.Context, input team.InviteInput) (*team.Invite, error)
	ListInvitations(ctx context.Context) ([]domain.TeamInvitation, error)
	RevokeInvitation(ctx context.Context, id uuid.UUID) error
	AcceptInvitation(ctx context.Context, token string) (*domain.TeamMember, error)
	DeclineInvitation(ctx context.Context, token string) error
}

// invitationParam names the invitation path segment. It carries the id for
// revoke and the raw token for accept and decline.
const invitationParam = "invitation"

// TeamHandler serves /api/team.
type TeamHandler struct {
	svc       teamService
	publicURL string
	log       *slog.Logger
}

// NewTeamHandler creates a TeamHandler. Invitation links point at publicURL.
func NewTeamHandler(svc teamService, publicURL string, logger *slog.Logger) *TeamHandler {
	return &TeamHandler{svc: svc, publicURL: publicURL, log: logger.With("handler", "team")}
}

type memberResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type invitationResponse struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	ExpiresAt   time.Time  `json:"expires_at"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type inviteResponse struct {
	Invitation invitationResponse `json:"invitation"`
	Token      string             `json:"token"`
	InviteURL  string             `json:"invite_url"`
}

type inviteRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

// ListMembers handles GET /api/team/members.
func (h *TeamHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.svc.ListMembers(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	out := make([]memberResponse, len(members))
	for i := range members {
		out[i] = toMemberResponse(&members[i])
	}
	writeJSON(w, http.StatusOK, map[string]any{"members": out})
}

// UpdateMember handles PATCH /api/team/members/{id}.
func (h *TeamHandler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var req updateRoleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	m, err := h.svc.UpdateMemberRole(r.Context(), team.UpdateRoleInput{MemberID: id, Role: req.Role})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toMemberResponse(m))
}

// RemoveMember handles DELETE /api/team/members/{id}.
func (h *TeamHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.RemoveMember(r.Context(), id); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListInvitations handles GET /api/team/invitations.
func (h *TeamHandler) ListInvitations(w http.ResponseWriter, r *http.Request) {
	invs, err := h.svc.ListInvitations(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	out := make([]invitationResponse, len(invs))
	for i := range invs {
		out[i] = toInvitationResponse(&invs[i])
	}
	writeJSON(w, http.StatusOK, map[string]any{"invitations": out})
}

// Invite handles POST /api/team/invitations.
func (h *TeamHandler) Invite(w http.ResponseWriter, r *http.Request) {
	var req inviteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	inv, err := h.svc.Invite(r.Context(), team.InviteInput{Email: req.Email, Role: req.Role})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, inviteResponse{
		Invitation: toInvitationResponse(inv.Invitation),
		Token:      inv.Token,
		InviteURL:  h.publicURL + "/team/invitations/" + url.PathEscape(inv.Token),
	})
}

// RevokeInvitation handles DELETE /api/team/invitations/{invitation}.
func (h *TeamHandler) RevokeInvitation(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, invitationParam)
	if !ok {
		return
	}

	if err := h.svc.RevokeInvitation(r.Context(), id); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AcceptInvitation handles POST /api/team/invitations/{invitation}/accept.
func (h *TeamHandler) AcceptInvitation(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.AcceptInvitation(r.Context(), chi.URLParam(r, invitationParam))
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toMemberResponse(m))
}

// DeclineInvitation handles POST /api/team/invitations/{invitation}/decline.
func (h *TeamHandler) DeclineInvitation(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeclineInvitation(r.Context(), chi.URLParam(r, invitationParam)); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "declined"})
}

func toMemberResponse(m *domain.TeamMember) memberResponse {
	return memberResponse{
		ID:        m.ID,
		UserID:    m.MemberUserID,
		Email:     m.Email,
		Role:      m.Role.String(),
		CreatedAt: m.CreatedAt,
	}
}

func toInvitationResponse(i *domain.TeamInvitation) invitationResponse {
	return invitationResponse{
		ID:          i.ID,
		Email:       i.Email,
		Role:        i.Role.String(),
		Status:      i.Status.String(),
		ExpiresAt:   i.ExpiresAt,
		RespondedAt: i.RespondedAt,
		CreatedAt:   i.CreatedAt,
	}
}
