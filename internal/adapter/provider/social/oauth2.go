package social

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/heartmarshall/ewasl-backend/internal/domain"
	"github.com/heartmarshall/ewasl-backend/internal/platform"
)

func oauthConfig(d platform.Descriptor, creds Credentials) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		RedirectURL:  creds.CallbackURL,
		Scopes:       d.Scopes,
		Endpoint:     d.Endpoint,
	}
}

func (c *Client) authCodeURL(d platform.Descriptor, creds Credentials, state string) *Grant {
	cfg := oauthConfig(d, creds)

	var opts []oauth2.AuthCodeOption
	if d.ClientIDParam != "" {
		opts = append(opts, oauth2.SetAuthURLParam(d.ClientIDParam, creds.ClientID))
	}
	if d.Platform == domain.PlatformYouTube {
		// a refresh token is only issued on the first consent
		opts = append(opts, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	}

	g := &Grant{}
	if d.PKCE {
		g.CodeVerifier = oauth2.GenerateVerifier()
		opts = append(opts, oauth2.S256ChallengeOption(g.CodeVerifier))
	}
	g.AuthURL = cfg.AuthCodeURL(state, opts...)
	return g
}

func (c *Client) exchangeCode(ctx context.Context, d platform.Descriptor, creds Credentials, pending *domain.PendingAuth, params Params) (*Tokens, error) {
	if params.Code == "" {
		return nil, domain.NewConnectError(d.Platform, domain.ErrCodeExchangeFailed, fmt.Errorf("callback has no code"))
	}

	cfg := oauthConfig(d, creds)
	var opts []oauth2.AuthCodeOption
	if d.ClientIDParam != "" {
		opts = append(opts, oauth2.SetAuthURLParam(d.ClientIDParam, creds.ClientID))
	}
	if d.PKCE {
		opts = append(opts, oauth2.VerifierOption(pending.CodeVerifier))
	}

	tok, err := cfg.Exchange(c.oauthCtx(ctx), params.Code, opts...)
	if err != nil {
		return nil, classify(d.Platform, domain.ErrCodeExchangeFailed, fmt.Errorf("exchange code: %w", err))
	}

	if d.LongLivedExchange != "" {
		tok, err = c.longLived(ctx, d, creds, tok.AccessToken)
		if err != nil {
			return nil, classify(d.Platform, domain.ErrCodeExchangeFailed, fmt.Errorf("long-lived exchange: %w", err))
		}
	}
	return tokensFrom(tok), nil
}

// longLived upgrades a short-lived Graph API user token.
func (c *Client) longLived(ctx context.Context, d platform.Descriptor, creds Credentials, short string) (*oauth2.Token, error) {
	q := url.Values{}
	q.Set("grant_type", "fb_exchange_token")
	q.Set("client_id", creds.ClientID)
	q.Set("client_secret", creds.ClientSecret)
	q.Set("fb_exchange_token", short)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.LongLivedExchange+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	var res tokenJSON
	if err := c.doJSON(ctx, req, &res); err != nil {
		return nil, err
	}
	if res.AccessToken == "" {
		return nil, fmt.Errorf("response has no access_token")
	}
	return res.token(c.now()), nil
}

func (c *Client) refreshToken(ctx context.Context, d platform.Descriptor, creds Credentials, refresh string) (*Tokens, error) {
	if d.ClientIDParam != "" {
		tok, err := c.refreshWithParam(ctx, d, creds, refresh)
		if err != nil {
			return nil, classify(d.Platform, domain.ErrCodeExchangeFailed, fmt.Errorf("refresh: %w", err))
		}
		return tokensFrom(tok), nil
	}

	cfg := oauthConfig(d, creds)
	src := cfg.TokenSource(c.oauthCtx(ctx), &oauth2.Token{RefreshToken: refresh, Expiry: c.now().Add(-time.Minute)})
	tok, err := src.Token()
	if err != nil {
		return nil, classify(d.Platform, domain.ErrCodeExchangeFailed, fmt.Errorf("refresh: %w", err))
	}
	if tok.RefreshToken == "" {
		tok.RefreshToken = refresh
	}
	return tokensFrom(tok), nil
}

// refreshWithParam refreshes against providers that reject client_id in
// favour of their own parameter name, which x/oauth2 cannot express.
func (c *Client) refreshWithParam(ctx context.Context, d platform.Descriptor, creds Credentials, refresh string) (*oauth2.Token, error) {
	form := url.Values{}
	form.Set(d.ClientIDParam, creds.ClientID)
	form.Set("client_secret", creds.ClientSecret)
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refresh)
	encoded := form.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.Endpoint.TokenURL, strings.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(encoded)), nil
	}

	var res tokenJSON
	if err := c.doJSON(ctx, req, &res); err != nil {
		return nil, err
	}
	if res.AccessToken == "" {
		return nil, fmt.Errorf("response has no access_token")
	}
	tok := res.token(c.now())
	if tok.RefreshToken == "" {
		tok.RefreshToken = refresh
	}
	return tok, nil
}

type tokenJSON struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (t tokenJSON) token(now time.Time) *oauth2.Token {
	tok := &oauth2.Token{AccessToken: t.AccessToken, RefreshToken: t.RefreshToken}
	if t.ExpiresIn > 0 {
		tok.Expiry = now.Add(time.Duration(t.ExpiresIn) * time.Second)
	}
	return tok
}

func tokensFrom(tok *oauth2.Token) *Tokens {
	t := &Tokens{
		AccessToken:  tok.AccessToken,
		RefreshToken: strPtr(tok.RefreshToken),
	}
	if !tok.Expiry.IsZero() {
		exp := tok.Expiry.UTC()
		t.ExpiresAt = &exp
	}
	return t
}
