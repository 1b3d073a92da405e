// Package connect is the client half of the social connect flow. A
// Controller starts an attempt through the REST API, sends the user to the
// provider and waits for the server to report the outcome.
package connect

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/ewasl-backend/internal/domain"
)

// AuthResponse is the body of GET /api/<platform>/auth.
type AuthResponse struct {
	AuthURL          string                 `json:"authUrl"`
	State            string                 `json:"state"`
	Strategy         domain.ConnectStrategy `json:"strategy,omitempty"`
	OAuthToken       string                 `json:"oauth_token,omitempty"`
	OAuthTokenSecret string                 `json:"oauth_token_secret,omitempty"`
}

// Account is a connected account as the dashboard sees it.
type Account struct {
	ID          uuid.UUID            `json:"id"`
	Platform    domain.Platform      `json:"platform"`
	Username    string               `json:"username"`
	DisplayName string               `json:"display_name"`
	AvatarURL   *string              `json:"avatar_url,omitempty"`
	Status      domain.AccountStatus `json:"status"`
	CreatedAt   time.Time            `json:"created_at"`
}

// API is the part of the REST surface the connect flow uses.
//
// CompleteAuth returns domain.ErrPending while the callback has not landed,
// domain.ErrNotFound once the completion is gone, and a *domain.ConnectError
// when the attempt failed server-side.
type API interface {
	StartAuth(ctx context.Context, p domain.Platform) (*AuthResponse, error)
	CompleteAuth(ctx context.Context, p domain.Platform, token string) (*Account, error)
	DeleteAccount(ctx context.Context, id uuid.UUID) error
	ListAccounts(ctx context.Context) ([]Account, error)
}

// Window is an opened popup.
type Window interface {
	// Closed is closed when the user or the callback page closes the window.
	Closed() <-chan struct{}
	Close()
}

// Navigator sends the user to the provider consent page.
type Navigator interface {
	Navigate(ctx context.Context, url string) error
	OpenPopup(ctx context.Context, url string) (Window, error)
}

// AccountCache is the cached account list the dashboard renders.
type AccountCache interface {
	Invalidate()
}
