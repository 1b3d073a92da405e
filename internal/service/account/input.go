package account

import (
	"net/url"
	"strings"

	"github.com/heartmarshall/ewasl-backend/internal/domain"
)

// CreateInput registers an account without going through a provider,
// for example a manually entered or test account.
type CreateInput struct {
	Platform    string
	ExternalID  string
	Username    string
	DisplayName string
	AvatarURL   *string
	AccessToken string
}

// Validate checks all fields and collects all errors.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	if i.Platform == "" {
		errs = append(errs, domain.FieldError{Field: "platform", Message: "required"})
	} else if !domain.Platform(i.Platform).IsValid() {
		errs = append(errs, domain.FieldError{Field: "platform", Message: "unsupported platform"})
	}

	username := strings.TrimSpace(i.Username)
	if username == "" {
		errs = append(errs, domain.FieldError{Field: "username", Message: "required"})
	} else if len(username) > 100 {
		errs = append(errs, domain.FieldError{Field: "username", Message: "max 100 characters"})
	}
	if len(i.DisplayName) > 200 {
		errs = append(errs, domain.FieldError{Field: "display_name", Message: "max 200 characters"})
	}
	if i.AvatarURL != nil && *i.AvatarURL != "" {
		if u, err := url.Parse(*i.AvatarURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			errs = append(errs, domain.FieldError{Field: "avatar_url", Message: "must be an http(s) URL"})
		}
	}
	if len(i.AccessToken) > 4096 {
		errs = append(errs, domain.FieldError{Field: "access_token", Message: "too long"})
	}

	return domain.ValidationErrorOrNil(errs)
}
