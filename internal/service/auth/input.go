package auth

import (
	"net/mail"
	"unicode/utf8"

	"github.com/heartmarshall/ewasl-backend/internal/domain"
)

const (
	minPasswordLen = 8
	maxPasswordLen = 72 // bcrypt ignores bytes past 72
	maxEmailLen    = 254
	minUsernameLen = 2
	maxUsernameLen = 50
	maxNameLen     = 255
)

// RegisterInput holds parameters for password registration.
type RegisterInput struct {
	Email    string
	Username string
	Password string
	// Name is the display name; it defaults to Username.
	Name string
}

// Validate validates the register input.
func (i RegisterInput) Validate() error {
	var errs []domain.FieldError

	errs = validateEmail(errs, i.Email)

	if i.Username == "" {
		errs = append(errs, domain.FieldError{Field: "username", Message: "required"})
	} else if n := utf8.RuneCountInString(i.Username); n < minUsernameLen || n > maxUsernameLen {
		errs = append(errs, domain.FieldError{Field: "username", Message: "must be between 2 and 50 characters"})
	}

	if utf8.RuneCountInString(i.Name) > maxNameLen {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long"})
	}

	errs = validatePassword(errs, "password", i.Password)

	return domain.ValidationErrorOrNil(errs)
}

// LoginPasswordInput holds parameters for email + password login.
type LoginPasswordInput struct {
	Email    string
	Password string
}

// Validate validates the login input.
func (i LoginPasswordInput) Validate() error {
	var errs []domain.FieldError

	if i.Email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	}
	if i.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	} else if len(i.Password) > maxPasswordLen {
		errs = append(errs, domain.FieldError{Field: "password", Message: "too long"})
	}

	return domain.ValidationErrorOrNil(errs)
}

// RefreshInput holds parameters for token refresh operation.
type RefreshInput struct {
	RefreshToken string
}

// Validate validates the refresh input.
func (i RefreshInput) Validate() error {
	var errs []domain.FieldError

	if i.RefreshToken == "" {
		errs = append(errs, domain.FieldError{Field: "refresh_token", Message: "required"})
	} else if len(i.RefreshToken) > 512 {
		errs = append(errs, domain.FieldError{Field: "refresh_token", Message: "too long"})
	}

	return domain.ValidationErrorOrNil(errs)
}

// ResetPasswordInput redeems a reset token.
type ResetPasswordInput struct {
	Token    string
	Password string
}

// Validate validates the reset input.
func (i ResetPasswordInput) Validate() error {
	var errs []domain.FieldError

	if i.Token == "" {
		errs = append(errs, domain.FieldError{Field: "token", Message: "required"})
	} else if len(i.Token) > 512 {
		errs = append(errs, domain.FieldError{Field: "token", Message: "too long"})
	}
	errs = validatePassword(errs, "password", i.Password)

	return domain.ValidationErrorOrNil(errs)
}

func validateEmail(errs []domain.FieldError, email string) []domain.FieldError {
	switch {
	case email == "":
		return append(errs, domain.FieldError{Field: "email", Message: "required"})
	case len(email) > maxEmailLen:
		return append(errs, domain.FieldError{Field: "email", Message: "too long"})
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return append(errs, domain.FieldError{Field: "email", Message: "invalid email"})
	}
	return errs
}

func validatePassword(errs []domain.FieldError, field, password string) []domain.FieldError {
	switch {
	case password == "":
		return append(errs, domain.FieldError{Field: field, Message: "required"})
	case len(password) < minPasswordLen:
		return append(errs, domain.FieldError{Field: field, Message: "must be at least 8 characters"})
	case len(password) > maxPasswordLen:
		return append(errs, domain.FieldError{Field: field, Message: "must be at most 72 bytes"})
	}
	return errs
}
