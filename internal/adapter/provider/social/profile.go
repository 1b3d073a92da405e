package social

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/heartmarshall/ewasl-backend/internal/domain"
	"github.com/heartmarshall/ewasl-backend/internal/platform"
)

// FetchProfile loads the identity behind tokens.
func (c *Client) FetchProfile(ctx context.Context, p domain.Platform, tokens *Tokens) (*Profile, error) {
	d, creds, err := c.resolve(p)
	if err != nil {
		return nil, err
	}

	var prof *Profile
	switch p {
	case domain.PlatformTwitter:
		prof, err = c.twitterProfile(ctx, d, creds, tokens)
	case domain.PlatformYouTube:
		prof, err = c.youtubeProfile(ctx, d, tokens)
	default:
		prof, err = c.bearerProfile(ctx, d, tokens)
	}
	if err != nil {
		return nil, classify(p, domain.ErrCodeProfileFailed, fmt.Errorf("fetch profile: %w", err))
	}
	if prof.ExternalID == "" {
		return nil, domain.NewConnectError(p, domain.ErrCodeProfileFailed, fmt.Errorf("profile has no id"))
	}
	if prof.Username == "" {
		prof.Username = prof.ExternalID
	}
	return prof, nil
}

func (c *Client) twitterProfile(ctx context.Context, d platform.Descriptor, creds Credentials, tokens *Tokens) (*Profile, error) {
	s := signer{consumerKey: creds.ClientID, consumerSecret: creds.ClientSecret, token: tokens.AccessToken}
	if tokens.TokenSecret != nil {
		s.tokenSecret = *tokens.TokenSecret
	}
	req, err := c.signedRequest(ctx, s, http.MethodGet, d.ProfileURL, nil, nil, nil, "")
	if err != nil {
		return nil, err
	}

	var res struct {
		Data struct {
			ID              string `json:"id"`
			Name            string `json:"name"`
			Username        string `json:"username"`
			ProfileImageURL string `json:"profile_image_url"`
		} `json:"data"`
	}
	if err := c.doJSON(ctx, req, &res); err != nil {
		return nil, err
	}
	return &Profile{
		ExternalID:  res.Data.ID,
		Username:    res.Data.Username,
		DisplayName: res.Data.Name,
		AvatarURL:   strPtr(res.Data.ProfileImageURL),
	}, nil
}

// youtubeProfile reads the authenticated user's channel. ProfileURL, when
// set, overrides the API endpoint.
func (c *Client) youtubeProfile(ctx context.Context, d platform.Descriptor, tokens *Tokens) (*Profile, error) {
	hc := oauth2.NewClient(c.oauthCtx(ctx), oauth2.StaticTokenSource(&oauth2.Token{AccessToken: tokens.AccessToken}))
	opts := []option.ClientOption{option.WithHTTPClient(hc)}
	if d.ProfileURL != "" {
		opts = append(opts, option.WithEndpoint(d.ProfileURL))
	}

	svc, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	resp, err := svc.Channels.List([]string{"id", "snippet"}).Mine(true).MaxResults(1).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list channels: %w", err)
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("account has no youtube channel")
	}

	ch := resp.Items[0]
	prof := &Profile{ExternalID: ch.Id}
	if ch.Snippet != nil {
		prof.DisplayName = ch.Snippet.Title
		prof.Username = ch.Snippet.CustomUrl
		if ch.Snippet.Thumbnails != nil && ch.Snippet.Thumbnails.Default != nil {
			prof.AvatarURL = strPtr(ch.Snippet.Thumbnails.Default.Url)
		}
	}
	if prof.Username == "" {
		prof.Username = prof.DisplayName
	}
	return prof, nil
}

// profileJSON covers every bearer-token profile shape we read.
type profileJSON struct {
	// facebook, instagram
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Picture  any    `json:"picture"`

	// linkedin userinfo
	Sub   string `json:"sub"`
	Email string `json:"email"`

	Data struct {
		// snapchat
		Me struct {
			ExternalID  string `json:"externalId"`
			DisplayName string `json:"displayName"`
			Bitmoji     struct {
				Avatar string `json:"avatar"`
			} `json:"bitmoji"`
		} `json:"me"`
		// tiktok
		User struct {
			OpenID      string `json:"open_id"`
			AvatarURL   string `json:"avatar_url"`
			DisplayName string `json:"display_name"`
			Username    string `json:"username"`
		} `json:"user"`
	} `json:"data"`
}

func (c *Client) bearerProfile(ctx context.Context, d platform.Descriptor, tokens *Tokens) (*Profile, error) {
	if d.ProfileURL == "" {
		return nil, fmt.Errorf("no profile endpoint")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.ProfileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)

	var res profileJSON
	if err := c.doJSON(ctx, req, &res); err != nil {
		return nil, err
	}

	switch d.Platform {
	case domain.PlatformFacebook:
		return &Profile{ExternalID: res.ID, Username: res.Name, DisplayName: res.Name, AvatarURL: pictureURL(res.Picture)}, nil
	case domain.PlatformInstagram:
		return &Profile{ExternalID: res.ID, Username: res.Username, DisplayName: res.Username}, nil
	case domain.PlatformLinkedIn:
		username := res.Email
		if username == "" {
			username = res.Name
		}
		return &Profile{ExternalID: res.Sub, Username: username, DisplayName: res.Name, AvatarURL: pictureURL(res.Picture)}, nil
	case domain.PlatformSnapchat:
		me := res.Data.Me
		return &Profile{ExternalID: me.ExternalID, Username: me.DisplayName, DisplayName: me.DisplayName, AvatarURL: strPtr(me.Bitmoji.Avatar)}, nil
	case domain.PlatformTikTok:
		u := res.Data.User
		return &Profile{ExternalID: u.OpenID, Username: u.Username, DisplayName: u.DisplayName, AvatarURL: strPtr(u.AvatarURL)}, nil
	}
	return nil, domain.NewConnectError(d.Platform, domain.ErrCodeUnsupportedPlatform, fmt.Errorf("no profile mapping"))
}

// pictureURL handles both a bare URL (linkedin) and the Graph API
// {"data": {"url": ...}} envelope (facebook).
func pictureURL(v any) *string {
	switch p := v.(type) {
	case string:
		return strPtr(p)
	case map[string]any:
		if data, ok := p["data"].(map[string]any); ok {
			if u, ok := data["url"].(string); ok {
				return strPtr(u)
			}
		}
	}
	return nil
}
