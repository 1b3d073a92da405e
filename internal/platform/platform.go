// Package platform holds per-platform connect metadata and the URL
// conventions shared by the server callback and the client resolver.
package platform

import (
	"fmt"
	"sort"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/linkedin"

	"github.com/heartmarshall/ewasl-backend/internal/domain"
)

// OAuth1Endpoints are the three legs of an OAuth 1.0a handshake.
type OAuth1Endpoints struct {
	RequestTokenURL string
	AuthorizeURL    string
	AccessTokenURL  string
}

// Descriptor is everything the connect flow needs to know about a platform.
type Descriptor struct {
	Platform domain.Platform
	Strategy domain.ConnectStrategy
	Protocol domain.AuthProtocol

	// OAuth 2.0
	Endpoint oauth2.Endpoint
	Scopes   []string
	PKCE     bool
	// ClientIDParam overrides the query name of the client id
	// for providers that do not use client_id.
	ClientIDParam string
	// LongLivedExchange upgrades short-lived user tokens after the code exchange.
	LongLivedExchange string

	// OAuth 1.0a
	OAuth1 OAuth1Endpoints

	// ProfileURL returns the connected user's identity. For platforms read
	// through a client library it overrides the library endpoint.
	ProfileURL string
	// PublishURL is where posts are delivered. Empty when publishing is unsupported.
	PublishURL string
}

// AuthPath is the server endpoint that starts a connect attempt.
func (d Descriptor) AuthPath() string { return "/api/" + d.Platform.String() + "/auth" }

// AuthURLPath is the alias of AuthPath used by popup clients.
func (d Descriptor) AuthURLPath() string { return "/api/" + d.Platform.String() + "/auth-url" }

// CallbackPath is the provider redirect target.
func (d Descriptor) CallbackPath() string { return "/api/" + d.Platform.String() + "/callback" }

// CompletePath is the one-shot completion endpoint.
func (d Descriptor) CompletePath() string {
	return "/api/" + d.Platform.String() + "/complete-auth"
}

// CanPublish reports whether posts can be delivered to the platform.
func (d Descriptor) CanPublish() bool { return d.PublishURL != "" }

// Registry is a lookup table of descriptors.
type Registry struct {
	byPlatform map[domain.Platform]Descriptor
}

// NewRegistry builds a registry from descriptors. Later entries replace
// earlier ones for the same platform.
func NewRegistry(descs ...Descriptor) *Registry {
	r := &Registry{byPlatform: make(map[domain.Platform]Descriptor, len(descs))}
	for _, d := range descs {
		r.byPlatform[d.Platform] = d
	}
	return r
}

// Default returns the production registry for every supported platform.
func Default() *Registry {
	return NewRegistry(defaults()...)
}

// Lookup returns the descriptor for p.
func (r *Registry) Lookup(p domain.Platform) (Descriptor, error) {
	d, ok := r.byPlatform[p]
	if !ok {
		return Descriptor{}, domain.NewConnectError(p, domain.ErrCodeUnsupportedPlatform,
			fmt.Errorf("platform %q is not registered", p))
	}
	return d, nil
}

// All returns descriptors in domain.AllPlatforms order, then any extras by name.
func (r *Registry) All() []Descriptor {
	out := make([]Descriptor, 0, len(r.byPlatform))
	seen := make(map[domain.Platform]bool, len(r.byPlatform))
	for _, p := range domain.AllPlatforms {
		if d, ok := r.byPlatform[p]; ok {
			out = append(out, d)
			seen[p] = true
		}
	}
	var extra []Descriptor
	for p, d := range r.byPlatform {
		if !seen[p] {
			extra = append(extra, d)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i].Platform < extra[j].Platform })
	return append(out, extra...)
}

func defaults() []Descriptor {
	return []Descriptor{
		{
			Platform: domain.PlatformTwitter,
			Strategy: domain.StrategyRedirect,
			Protocol: domain.ProtocolOAuth1,
			OAuth1: OAuth1Endpoints{
				RequestTokenURL: "https://api.twitter.com/oauth/request_token",
				AuthorizeURL:    "https://api.twitter.com/oauth/authorize",
				AccessTokenURL:  "https://api.twitter.com/oauth/access_token",
			},
			ProfileURL: "https://api.twitter.com/2/users/me?user.fields=profile_image_url,name,username",
			PublishURL: "https://api.twitter.com/2/tweets",
		},
		{
			Platform:          domain.PlatformFacebook,
			Strategy:          domain.StrategyPopup,
			Protocol:          domain.ProtocolOAuth2,
			Endpoint:          facebook.Endpoint,
			Scopes:            []string{"public_profile", "pages_show_list", "pages_manage_posts", "pages_read_engagement"},
			LongLivedExchange: "https://graph.facebook.com/v24.0/oauth/access_token",
			ProfileURL:        "https://graph.facebook.com/v24.0/me?fields=id,name,picture",
			PublishURL:        "https://graph.facebook.com/v24.0/me/feed",
		},
		{
			Platform: domain.PlatformInstagram,
			Strategy: domain.StrategyPopup,
			Protocol: domain.ProtocolOAuth2,
			Endpoint: oauth2.Endpoint{
				AuthURL:   "https://api.instagram.com/oauth/authorize",
				TokenURL:  "https://api.instagram.com/oauth/access_token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
			Scopes:     []string{"user_profile", "user_media"},
			ProfileURL: "https://graph.instagram.com/me?fields=id,username",
		},
		{
			Platform:   domain.PlatformLinkedIn,
			Strategy:   domain.StrategyRedirect,
			Protocol:   domain.ProtocolOAuth2,
			Endpoint:   linkedin.Endpoint,
			Scopes:     []string{"openid", "profile", "email", "w_member_social"},
			ProfileURL: "https://api.linkedin.com/v2/userinfo",
			PublishURL: "https://api.linkedin.com/v2/ugcPosts",
		},
		{
			Platform: domain.PlatformSnapchat,
			Strategy: domain.StrategyRedirect,
			Protocol: domain.ProtocolOAuth2,
			Endpoint: oauth2.Endpoint{
				AuthURL:   "https://accounts.snapchat.com/accounts/oauth2/auth",
				TokenURL:  "https://accounts.snapchat.com/accounts/oauth2/token",
				AuthStyle: oauth2.AuthStyleInHeader,
			},
			Scopes: []string{
				"https://auth.snapchat.com/oauth2/api/user.display_name",
				"https://auth.snapchat.com/oauth2/api/user.bitmoji.avatar",
			},
			PKCE:       true,
			ProfileURL: "https://kit.snapchat.com/v1/me?query=%7Bme%7BexternalId+displayName+bitmoji%7Bavatar%7D%7D%7D",
		},
		{
			Platform: domain.PlatformTikTok,
			Strategy: domain.StrategyRedirect,
			Protocol: domain.ProtocolOAuth2,
			Endpoint: oauth2.Endpoint{
				AuthURL:   "https://www.tiktok.com/v2/auth/authorize/",
				TokenURL:  "https://open.tiktokapis.com/v2/oauth/token/",
				AuthStyle: oauth2.AuthStyleInParams,
			},
			Scopes:        []string{"user.info.basic", "video.publish"},
			PKCE:          true,
			ClientIDParam: "client_key",
			ProfileURL:    "https://open.tiktokapis.com/v2/user/info/?fields=open_id,avatar_url,display_name,username",
		},
		{
			Platform: domain.PlatformYouTube,
			Strategy: domain.StrategyRedirect,
			Protocol: domain.ProtocolOAuth2,
			Endpoint: google.Endpoint,
			Scopes: []string{
				"https://www.googleapis.com/auth/youtube.readonly",
				"https://www.googleapis.com/auth/youtube.upload",
			},
			PKCE: true,
		},
	}
}
