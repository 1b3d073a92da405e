package domain

import (
	"time"

	"github.com/google/uuid"
)

// TeamRole is the permission level of a team member.
type TeamRole string

const (
	TeamRoleAdmin  TeamRole = "admin"
	TeamRoleEditor TeamRole = "editor"
	TeamRoleViewer TeamRole = "viewer"
)

func (r TeamRole) String() string { return string(r) }

func (r TeamRole) IsValid() bool {
	switch r {
	case TeamRoleAdmin, TeamRoleEditor, TeamRoleViewer:
		return true
	}
	return false
}

// CanPublish returns true for roles allowed to compose and schedule posts.
func (r TeamRole) CanPublish() bool {
	return r == TeamRoleAdmin || r == TeamRoleEditor
}

// TeamMember links a user to the team owned by another user.
type TeamMember struct {
	ID           uuid.UUID
	OwnerID      uuid.UUID
	MemberUserID uuid.UUID
	Email        string
	Role         TeamRole
	CreatedAt    time.Time
}

// InvitationStatus is the lifecycle state of a team invitation.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
	InvitationRevoked  InvitationStatus = "revoked"
	InvitationExpired  InvitationStatus = "expired"
)

func (s InvitationStatus) String() string { return string(s) }

// TeamInvitation invites an email address to join an owner's team.
// Only the SHA-256 hash of the invitation token is stored.
type TeamInvitation struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Email       string
	Role        TeamRole
	TokenHash   string
	Status      InvitationStatus
	ExpiresAt   time.Time
	RespondedAt *time.Time
	CreatedAt   time.Time
}

// IsOpen reports whether the invitation can still be accepted or declined.
func (i *TeamInvitation) IsOpen(now time.Time) bool {
	return i.Status == InvitationPending && now.Before(i.ExpiresAt)
}
