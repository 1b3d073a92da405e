package team

import (
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/ewasl-backend/internal/domain"
)

// InviteInput invites an email address into the caller's team.
type InviteInput struct {
	Email string
	Role  string
}

// Validate checks all fields and collects all errors.
func (i InviteInput) Validate() error {
	var errs []domain.FieldError

	email := strings.TrimSpace(i.Email)
	if email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	} else if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		errs = append(errs, domain.FieldError{Field: "email", Message: "invalid email"})
	}
	errs = validateRole(errs, i.Role)

	return domain.ValidationErrorOrNil(errs)
}

// UpdateRoleInput changes a member's role.
type UpdateRoleInput struct {
	MemberID uuid.UUID
	Role     string
}

// Validate checks all fields and collects all errors.
func (i UpdateRoleInput) Validate() error {
	var errs []domain.FieldError
	if i.MemberID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "member_id", Message: "required"})
	}
	errs = validateRole(errs, i.Role)
	return domain.ValidationErrorOrNil(errs)
}

func validateRole(errs []domain.FieldError, role string) []domain.FieldError {
	if role == "" {
		return append(errs, domain.FieldError{Field: "role", Message: "required"})
	}
	if !domain.TeamRole(role).IsValid() {
		return append(errs, domain.FieldError{Field: "role", Message: "must be admin, editor or viewer"})
	}
	return errs
}
