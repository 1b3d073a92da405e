package domain

import "fmt"

// Platform identifies a social network a user can connect.
type Platform string

const (
	PlatformTwitter   Platform = "twitter"
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformSnapchat  Platform = "snapchat"
	PlatformTikTok    Platform = "tiktok"
	PlatformYouTube   Platform = "youtube"
)

// AllPlatforms lists every supported platform in display order.
var AllPlatforms = []Platform{
	PlatformTwitter,
	PlatformFacebook,
	PlatformInstagram,
	PlatformLinkedIn,
	PlatformSnapchat,
	PlatformTikTok,
	PlatformYouTube,
}

func (p Platform) String() string { return string(p) }

func (p Platform) IsValid() bool {
	switch p {
	case PlatformTwitter, PlatformFacebook, PlatformInstagram, PlatformLinkedIn,
		PlatformSnapchat, PlatformTikTok, PlatformYouTube:
		return true
	}
	return false
}

// ParsePlatform converts a path or form value into a Platform.
func ParsePlatform(s string) (Platform, error) {
	p := Platform(s)
	if !p.IsValid() {
		return "", NewValidationError("platform", fmt.Sprintf("unsupported platform %q", s))
	}
	return p, nil
}

// ConnectStrategy is how the browser reaches the provider's consent page.
type ConnectStrategy string

const (
	// StrategyRedirect navigates the whole window away and relies on the
	// server callback to redirect back to the dashboard.
	StrategyRedirect ConnectStrategy = "redirect"
	// StrategyPopup opens a separate window while the opener waits.
	StrategyPopup ConnectStrategy = "popup"
)

func (s ConnectStrategy) String() string { return string(s) }

// AuthProtocol is the OAuth dialect spoken by a platform.
type AuthProtocol string

const (
	ProtocolOAuth1 AuthProtocol = "oauth1"
	ProtocolOAuth2 AuthProtocol = "oauth2"
)

func (p AuthProtocol) String() string { return string(p) }
