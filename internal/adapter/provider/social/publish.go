package social

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/heartmarshall/ewasl-backend/internal/domain"
	"github.com/heartmarshall/ewasl-backend/internal/platform"
)

// Publish delivers content to account and returns the platform's post id.
func (c *Client) Publish(ctx context.Context, account *domain.SocialAccount, content string, mediaURLs []string) (string, error) {
	d, creds, err := c.resolve(account.Platform)
	if err != nil {
		return "", err
	}
	if !d.CanPublish() {
		return "", domain.NewConnectError(account.Platform, domain.ErrCodeUnsupportedPlatform,
			fmt.Errorf("publishing to %s is not supported", account.Platform))
	}

	var id string
	switch account.Platform {
	case domain.PlatformTwitter:
		id, err = c.publishTweet(ctx, d, creds, account, content)
	case domain.PlatformFacebook:
		id, err = c.publishFacebook(ctx, d, account, content, mediaURLs)
	case domain.PlatformLinkedIn:
		id, err = c.publishLinkedIn(ctx, d, account, content)
	default:
		return "", domain.NewConnectError(account.Platform, domain.ErrCodeUnsupportedPlatform,
			fmt.Errorf("no publisher for %s", account.Platform))
	}
	if err != nil {
		return "", classify(account.Platform, domain.ErrCodePublishFailed, fmt.Errorf("publish: %w", err))
	}

	c.log.InfoContext(ctx, "post published",
		"platform", account.Platform, "account_id", account.ID, "external_id", id)
	return id, nil
}

func jsonRequest(ctx context.Context, method, rawURL string, payload any) (*http.Request, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(body)), nil
	}
	return req, nil
}

// publishTweet posts through the v2 API with user-context OAuth 1.0a.
// JSON bodies are not part of the signature.
func (c *Client) publishTweet(ctx context.Context, d platform.Descriptor, creds Credentials, account *domain.SocialAccount, content string) (string, error) {
	s := signer{consumerKey: creds.ClientID, consumerSecret: creds.ClientSecret, token: account.AccessToken}
	if account.TokenSecret != nil {
		s.tokenSecret = *account.TokenSecret
	}

	body, err := json.Marshal(map[string]string{"text": content})
	if err != nil {
		return "", fmt.Errorf("encode payload: %w", err)
	}
	req, err := c.signedRequest(ctx, s, http.MethodPost, d.PublishURL, nil, nil, bytes.NewReader(body), "application/json")
	if err != nil {
		return "", err
	}
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(body)), nil
	}

	var res struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := c.doJSON(ctx, req, &res); err != nil {
		return "", err
	}
	return res.Data.ID, nil
}

func (c *Client) publishFacebook(ctx context.Context, d platform.Descriptor, account *domain.SocialAccount, content string, mediaURLs []string) (string, error) {
	form := url.Values{}
	form.Set("message", content)
	if len(mediaURLs) > 0 {
		form.Set("link", mediaURLs[0])
	}
	encoded := form.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.PublishURL, strings.NewReader(encoded))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+account.AccessToken)
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(encoded)), nil
	}

	var res struct {
		ID string `json:"id"`
	}
	if err := c.doJSON(ctx, req, &res); err != nil {
		return "", err
	}
	return res.ID, nil
}

func (c *Client) publishLinkedIn(ctx context.Context, d platform.Descriptor, account *domain.SocialAccount, content string) (string, error) {
	payload := map[string]any{
		"author":         "urn:li:person:" + account.ExternalID,
		"lifecycleState": "PUBLISHED",
		"specificContent": map[string]any{
			"com.linkedin.ugc.ShareContent": map[string]any{
				"shareCommentary":    map[string]string{"text": content},
				"shareMediaCategory": "NONE",
			},
		},
		"visibility": map[string]string{
			"com.linkedin.ugc.MemberNetworkVisibility": "PUBLIC",
		},
	}
	req, err := jsonRequest(ctx, http.MethodPost, d.PublishURL, payload)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+account.AccessToken)
	req.Header.Set("X-Restli-Protocol-Version", "2.0.0")

	var res struct {
		ID string `json:"id"`
	}
	if err := c.doJSON(ctx, req, &res); err != nil {
		return "", err
	}
	return res.ID, nil
}
