package connect

import (
	"github.com/heartmarshall/ewasl-backend/internal/auth"
	"github.com/heartmarshall/ewasl-backend/internal/domain"
)

// AuthStart is returned to the client that asked for an authorization URL.
// OAuthToken and OAuthTokenSecret are set for OAuth 1.0a platforms only.
type AuthStart struct {
	AuthURL          string
	State            string
	Platform         domain.Platform
	Strategy         domain.ConnectStrategy
	OAuthToken       string
	OAuthTokenSecret string
}

// CallbackParams are the query parameters a provider appends to the
// callback URL.
type CallbackParams struct {
	State         string
	Code          string
	OAuthToken    string
	OAuthVerifier string
	// Error is the OAuth 2.0 error parameter, Denied the OAuth 1.0a one.
	Error  string
	Denied string
}

func randomToken() (string, error) {
	raw, _, err := auth.NewOpaqueToken()
	return raw, err
}
