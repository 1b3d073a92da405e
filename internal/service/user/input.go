package user

import (
	"net/url"
	"strings"

	"github.com/heartmarshall/ewasl-backend/internal/domain"
)

const (
	maxNameLen      = 255
	maxAvatarURLLen = 512
)

// UpdateProfileInput holds a partial profile update. Nil fields are left
// unchanged.
type UpdateProfileInput struct {
	Name      *string
	AvatarURL *string
}

// Validate validates the update profile input.
func (i UpdateProfileInput) Validate() error {
	var errs []domain.FieldError

	if i.Name == nil && i.AvatarURL == nil {
		errs = append(errs, domain.FieldError{Field: "name", Message: "nothing to update"})
	}

	if i.Name != nil {
		switch name := strings.TrimSpace(*i.Name); {
		case name == "":
			errs = append(errs, domain.FieldError{Field: "name", Message: "cannot be empty"})
		case len(name) > maxNameLen:
			errs = append(errs, domain.FieldError{Field: "name", Message: "too long"})
		}
	}

	if i.AvatarURL != nil && *i.AvatarURL != "" {
		if len(*i.AvatarURL) > maxAvatarURLLen {
			errs = append(errs, domain.FieldError{Field: "avatar_url", Message: "too long"})
		} else if u, err := url.Parse(*i.AvatarURL); err != nil || (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
			errs = append(errs, domain.FieldError{Field: "avatar_url", Message: "must be an http(s) URL"})
		}
	}

	return domain.ValidationErrorOrNil(errs)
}
