package platform

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/heartmarshall/ewasl-backend/internal/domain"
)

const (
	connectHandlerPath = "/connect-handler"
	connectErrorPath   = "/connect"
	resetPasswordPath  = "/reset-password/"
)

// SuccessRedirect is where the callback sends the browser after a
// successful exchange. Redirect flows land on the connect handler page,
// popup flows on a per-platform callback page the opener ignores.
func SuccessRedirect(baseURL string, d Descriptor, token string) string {
	q := url.Values{}
	q.Set("token", token)
	if d.Strategy == domain.StrategyPopup {
		return baseURL + "/auth/" + d.Platform.String() + "/callback?" + q.Encode()
	}
	q.Set("action", ActionFor(d.Platform))
	return baseURL + connectHandlerPath + "?" + q.Encode()
}

// FailureRedirect sends the browser back to the dashboard with an error code.
func FailureRedirect(baseURL string, p domain.Platform, code domain.ErrorCode) string {
	q := url.Values{}
	q.Set("error", p.String())
	q.Set("message", code.String())
	return baseURL + connectErrorPath + "?" + q.Encode()
}

// ResetPasswordURL is the link mailed for a password reset.
func ResetPasswordURL(baseURL, token string) string {
	return baseURL + resetPasswordPath + url.PathEscape(token)
}

// ActionFor is the connect-handler action name for a platform.
func ActionFor(p domain.Platform) string { return p.String() + "_connect" }

// Return is a parsed landing URL of a redirect flow.
type Return struct {
	Platform domain.Platform
	// Token is the one-shot completion token. Empty on failure.
	Token string
	// Code is set on failure.
	Code domain.ErrorCode
}

// Succeeded reports whether the landing URL carries a completion token.
func (r Return) Succeeded() bool { return r.Token != "" && r.Code == "" }

// ParseReturn reads a landing URL produced by SuccessRedirect or
// FailureRedirect. Popup callback pages are accepted too.
func ParseReturn(raw string) (Return, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Return{}, fmt.Errorf("parse return url: %w", err)
	}
	q := u.Query()

	switch {
	case u.Path == connectHandlerPath:
		name, ok := strings.CutSuffix(q.Get("action"), "_connect")
		if !ok {
			return Return{}, domain.NewValidationError("action", "missing or malformed connect action")
		}
		p, err := domain.ParsePlatform(name)
		if err != nil {
			return Return{}, err
		}
		token := q.Get("token")
		if token == "" {
			return Return{}, domain.NewValidationError("token", "required")
		}
		return Return{Platform: p, Token: token}, nil

	case u.Path == connectErrorPath && q.Has("error"):
		p, err := domain.ParsePlatform(q.Get("error"))
		if err != nil {
			return Return{}, err
		}
		code := domain.ErrorCode(q.Get("message"))
		if !domain.IsKnownErrorCode(code) {
			code = domain.ErrCodeUnknown
		}
		return Return{Platform: p, Code: code}, nil

	case strings.HasPrefix(u.Path, "/auth/") && strings.HasSuffix(u.Path, "/callback"):
		name := strings.TrimSuffix(strings.TrimPrefix(u.Path, "/auth/"), "/callback")
		p, err := domain.ParsePlatform(name)
		if err != nil {
			return Return{}, err
		}
		token := q.Get("token")
		if token == "" {
			return Return{}, domain.NewValidationError("token", "required")
		}
		return Return{Platform: p, Token: token}, nil
	}

	return Return{}, domain.NewValidationError("url", fmt.Sprintf("%q is not a connect return url", u.Path))
}
