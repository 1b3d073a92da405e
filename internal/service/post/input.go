package post

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/ewasl-backend/internal/domain"
)

const maxMediaURLs = 10

// CreateInput holds parameters for composing a post. A non-nil
// ScheduledAt schedules it right away.
type CreateInput struct {
	Content     string
	Platforms   []string
	MediaURLs   []string
	ScheduledAt *time.Time
}

// Validate checks all fields and collects all errors.
func (i CreateInput) Validate() error {
	errs := validateBody(nil, i.Content, i.Platforms, i.MediaURLs)
	return domain.ValidationErrorOrNil(errs)
}

// UpdateInput changes the body of an editable post. Nil fields are kept.
type UpdateInput struct {
	ID        uuid.UUID
	Content   *string
	Platforms []string
	MediaURLs []string
}

// Validate checks the fields that are set.
func (i UpdateInput) Validate() error {
	var errs []domain.FieldError
	if i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if i.Content != nil && strings.TrimSpace(*i.Content) == "" {
		errs = append(errs, domain.FieldError{Field: "content", Message: "required"})
	}
	if i.Platforms != nil {
		errs = validatePlatforms(errs, i.Platforms)
	}
	if i.MediaURLs != nil {
		errs = validateMedia(errs, i.MediaURLs)
	}
	return domain.ValidationErrorOrNil(errs)
}

// ListInput holds listing parameters.
type ListInput struct {
	Status *string
	Limit  int
	Offset int
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	var errs []domain.FieldError
	if i.Status != nil && !domain.PostStatus(*i.Status).IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "invalid status"})
	}
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be non-negative"})
	}
	if i.Limit > MaxLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: fmt.Sprintf("max %d", MaxLimit)})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}
	return domain.ValidationErrorOrNil(errs)
}

// Validate checks a complete post body against every target's limits.
func Validate(p *domain.Post) error {
	names := make([]string, len(p.Platforms))
	for i, pl := range p.Platforms {
		names[i] = pl.String()
	}
	if errs := validateBody(nil, p.Content, names, p.MediaURLs); len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func validateBody(errs []domain.FieldError, content string, platforms, media []string) []domain.FieldError {
	content = strings.TrimSpace(content)
	if content == "" {
		errs = append(errs, domain.FieldError{Field: "content", Message: "required"})
	}
	errs = validatePlatforms(errs, platforms)
	errs = validateMedia(errs, media)

	n := utf8.RuneCountInString(content)
	for _, name := range platforms {
		limit := domain.MaxContentLength(domain.Platform(name))
		if limit > 0 && n > limit {
			errs = append(errs, domain.FieldError{
				Field:   "content",
				Message: fmt.Sprintf("exceeds %d characters allowed on %s", limit, name),
			})
		}
	}
	return errs
}

func validatePlatforms(errs []domain.FieldError, platforms []string) []domain.FieldError {
	if len(platforms) == 0 {
		return append(errs, domain.FieldError{Field: "platforms", Message: "at least one platform required"})
	}
	seen := make(map[string]bool, len(platforms))
	for _, name := range platforms {
		if !domain.Platform(name).IsValid() {
			errs = append(errs, domain.FieldError{Field: "platforms", Message: fmt.Sprintf("unsupported platform %q", name)})
			continue
		}
		if seen[name] {
			errs = append(errs, domain.FieldError{Field: "platforms", Message: fmt.Sprintf("duplicate platform %q", name)})
		}
		seen[name] = true
	}
	return errs
}

func validateMedia(errs []domain.FieldError, media []string) []domain.FieldError {
	if len(media) > maxMediaURLs {
		errs = append(errs, domain.FieldError{Field: "media_urls", Message: fmt.Sprintf("max %d items", maxMediaURLs)})
	}
	for _, raw := range media {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, domain.FieldError{Field: "media_urls", Message: "must be http(s) URLs"})
			break
		}
	}
	return errs
}

func toPlatforms(names []string) []domain.Platform {
	out := make([]domain.Platform, len(names))
	for i, n := range names {
		out[i] = domain.Platform(n)
	}
	return out
}
