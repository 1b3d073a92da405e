// Package social talks to the social platforms: it starts OAuth handshakes,
// exchanges grants, loads profiles, refreshes tokens and publishes posts.
package social

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/jpillora/backoff"
	"golang.org/x/oauth2"

	"github.com/heartmarshall/ewasl-backend/internal/domain"
	"github.com/heartmarshall/ewasl-backend/internal/platform"
)

// Credentials is one platform's OAuth application.
type Credentials struct {
	ClientID     string
	ClientSecret string
	CallbackURL  string
}

func (c Credentials) configured() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.CallbackURL != ""
}

// Grant is what the browser needs to reach the consent page, plus the
// secrets that must be kept server-side until the callback.
type Grant struct {
	AuthURL       string
	CodeVerifier  string
	RequestToken  string
	RequestSecret string
}

// Tokens is a provider credential set in plaintext.
type Tokens struct {
	AccessToken  string
	RefreshToken *string
	TokenSecret  *string
	ExpiresAt    *time.Time
}

// Profile is the connected account's identity on the platform.
type Profile struct {
	ExternalID  string
	Username    string
	DisplayName string
	AvatarURL   *string
}

// maxAttempts bounds provider calls made through doWithRetry.
const maxAttempts = 3

// Client dispatches provider calls by platform descriptor.
type Client struct {
	registry   *platform.Registry
	creds      map[domain.Platform]Credentials
	httpClient *http.Client
	log        *slog.Logger
	now        func() time.Time
	nonce      func() string
	retryMin   time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithClock overrides the clock used for OAuth 1.0a timestamps and expiries.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// NewClient creates a provider client. Platforms missing from creds
// fail with missing_credentials.
func NewClient(registry *platform.Registry, creds map[domain.Platform]Credentials, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		registry:   registry,
		creds:      creds,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        logger.With("adapter", "social"),
		now:        time.Now,
		nonce:      randomNonce,
		retryMin:   250 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether the platform has a registered descriptor and
// complete credentials.
func (c *Client) Configured(p domain.Platform) bool {
	if _, err := c.registry.Lookup(p); err != nil {
		return false
	}
	return c.creds[p].configured()
}

func (c *Client) resolve(p domain.Platform) (platform.Descriptor, Credentials, error) {
	d, err := c.registry.Lookup(p)
	if err != nil {
		return platform.Descriptor{}, Credentials{}, err
	}
	creds := c.creds[p]
	if !creds.configured() {
		return platform.Descriptor{}, Credentials{}, domain.NewConnectError(p, domain.ErrCodeMissingCredentials,
			fmt.Errorf("client id, secret or callback url is not set"))
	}
	return d, creds, nil
}

// Begin starts a handshake for p, correlated by state.
func (c *Client) Begin(ctx context.Context, p domain.Platform, state string) (*Grant, error) {
	d, creds, err := c.resolve(p)
	if err != nil {
		return nil, err
	}
	if d.Protocol == domain.ProtocolOAuth1 {
		return c.requestToken(ctx, d, creds, state)
	}
	return c.authCodeURL(d, creds, state), nil
}

// Exchange trades the callback parameters for tokens.
func (c *Client) Exchange(ctx context.Context, pending *domain.PendingAuth, params Params) (*Tokens, error) {
	d, creds, err := c.resolve(pending.Platform)
	if err != nil {
		return nil, err
	}
	if d.Protocol == domain.ProtocolOAuth1 {
		return c.accessToken(ctx, d, creds, pending, params)
	}
	return c.exchangeCode(ctx, d, creds, pending, params)
}

// Refresh obtains a new access token from a refresh token.
func (c *Client) Refresh(ctx context.Context, p domain.Platform, refreshToken string) (*Tokens, error) {
	d, creds, err := c.resolve(p)
	if err != nil {
		return nil, err
	}
	if d.Protocol == domain.ProtocolOAuth1 {
		return nil, domain.NewConnectError(p, domain.ErrCodeUnsupportedPlatform,
			fmt.Errorf("oauth1 tokens do not expire"))
	}
	return c.refreshToken(ctx, d, creds, refreshToken)
}

// Params is the subset of callback query parameters the exchange reads.
type Params struct {
	Code          string
	OAuthToken    string
	OAuthVerifier string
}

// oauthCtx makes x/oauth2 use the client's transport.
func (c *Client) oauthCtx(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}

// doWithRetry retries network errors and 5xx responses with jittered
// backoff, up to maxAttempts tries. Bodies must be replayable through
// req.GetBody.
func (c *Client) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	b := &backoff.Backoff{Min: c.retryMin, Max: 8 * c.retryMin, Factor: 2, Jitter: true}
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		resp, err := c.httpClient.Do(req)
		if (err == nil && resp.StatusCode < 500) || attempt == maxAttempts {
			return resp, err
		}
		if resp != nil {
			resp.Body.Close()
		}
		c.log.DebugContext(ctx, "retrying provider call",
			slog.String("host", req.URL.Host), slog.Int("attempt", attempt))

		select {
		case <-time.After(b.Duration()):
		case <-ctx.Done():
			return nil, ctx.Err()
		}

		if req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, err
			}
			req.Body = body
		}
	}
}

// doJSON executes req and decodes a 2xx JSON body into out.
// Non-2xx responses are returned as *statusError.
func (c *Client) doJSON(ctx context.Context, req *http.Request, out any) error {
	resp, err := c.doWithRetry(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &statusError{Status: resp.StatusCode, Body: string(body)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

type statusError struct {
	Status int
	Body   string
}

func (e *statusError) Error() string {
	body := e.Body
	if len(body) > 200 {
		body = body[:200]
	}
	return fmt.Sprintf("provider responded %d: %s", e.Status, body)
}

// classify wraps err into a ConnectError. Transport failures become
// network errors, 401s become unauthorized, everything else gets fallback.
func classify(p domain.Platform, fallback domain.ErrorCode, err error) error {
	var ce *domain.ConnectError
	if errors.As(err, &ce) {
		return err
	}
	var se *statusError
	var ue *url.Error
	switch {
	case errors.As(err, &se) && se.Status == http.StatusUnauthorized:
		return domain.NewConnectError(p, domain.ErrCodeUnauthorized, err)
	case errors.As(err, &ue):
		return domain.NewConnectError(p, domain.ErrCodeNetwork, err)
	}
	return domain.NewConnectError(p, fallback, err)
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
