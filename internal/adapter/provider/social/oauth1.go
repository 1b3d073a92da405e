package social

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/heartmarshall/ewasl-backend/internal/domain"
	"github.com/heartmarshall/ewasl-backend/internal/platform"
)

// signer produces OAuth 1.0a HMAC-SHA1 Authorization headers (RFC 5849).
type signer struct {
	consumerKey    string
	consumerSecret string
	token          string
	tokenSecret    string
}

// header signs method+rawURL with oauth params plus form, and returns the
// Authorization header value. Query parameters of rawURL are signed too.
func (s signer) header(method, rawURL string, oauthExtra, form url.Values, timestamp int64, nonce string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}

	oauth := url.Values{}
	oauth.Set("oauth_consumer_key", s.consumerKey)
	oauth.Set("oauth_nonce", nonce)
	oauth.Set("oauth_signature_method", "HMAC-SHA1")
	oauth.Set("oauth_timestamp", strconv.FormatInt(timestamp, 10))
	oauth.Set("oauth_version", "1.0")
	if s.token != "" {
		oauth.Set("oauth_token", s.token)
	}
	for k, vs := range oauthExtra {
		for _, v := range vs {
			oauth.Add(k, v)
		}
	}

	all := url.Values{}
	for _, src := range []url.Values{oauth, u.Query(), form} {
		for k, vs := range src {
			for _, v := range vs {
				all.Add(k, v)
			}
		}
	}

	base := strings.ToUpper(method) + "&" + percentEncode(baseURL(u)) + "&" + percentEncode(normalize(all))
	key := percentEncode(s.consumerSecret) + "&" + percentEncode(s.tokenSecret)
	mac := hmac.New(sha1.New, []byte(key))
	mac.Write([]byte(base))
	oauth.Set("oauth_signature", base64.StdEncoding.EncodeToString(mac.Sum(nil)))

	keys := make([]string, 0, len(oauth))
	for k := range oauth {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, percentEncode(k)+`="`+percentEncode(oauth.Get(k))+`"`)
	}
	return "OAuth " + strings.Join(parts, ", "), nil
}

func baseURL(u *url.URL) string {
	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Host)
	if (scheme == "http" && strings.HasSuffix(host, ":80")) || (scheme == "https" && strings.HasSuffix(host, ":443")) {
		host = host[:strings.LastIndex(host, ":")]
	}
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	return scheme + "://" + host + path
}

// normalize sorts by encoded key, then encoded value.
func normalize(v url.Values) string {
	type pair struct{ k, v string }
	pairs := make([]pair, 0, len(v))
	for k, vs := range v {
		for _, val := range vs {
			pairs = append(pairs, pair{percentEncode(k), percentEncode(val)})
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].k != pairs[j].k {
			return pairs[i].k < pairs[j].k
		}
		return pairs[i].v < pairs[j].v
	})
	out := make([]string, len(pairs))
	for i, p := range pairs {
		out[i] = p.k + "=" + p.v
	}
	return strings.Join(out, "&")
}

// percentEncode is RFC 3986 encoding: unreserved characters stay, spaces are %20.
func percentEncode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func randomNonce() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// signedRequest builds a request signed for the given token.
// A non-nil form becomes an url-encoded body and is part of the signature.
func (c *Client) signedRequest(ctx context.Context, s signer, method, rawURL string, oauthExtra, form url.Values, body io.Reader, contentType string) (*http.Request, error) {
	var encoded string
	if form != nil {
		encoded = form.Encode()
		body = strings.NewReader(encoded)
		contentType = "application/x-www-form-urlencoded"
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if form != nil {
		req.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(encoded)), nil
		}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	auth, err := s.header(method, rawURL, oauthExtra, form, c.now().Unix(), c.nonce())
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", auth)
	return req, nil
}

// doForm executes req and parses an url-encoded 2xx body.
func (c *Client) doForm(ctx context.Context, req *http.Request) (url.Values, error) {
	resp, err := c.doWithRetry(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &statusError{Status: resp.StatusCode, Body: string(body)}
	}
	vals, err := url.ParseQuery(string(body))
	if err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return vals, nil
}

// requestToken performs the first leg. The state rides on the callback URL
// because OAuth 1.0a has no state parameter of its own.
func (c *Client) requestToken(ctx context.Context, d platform.Descriptor, creds Credentials, state string) (*Grant, error) {
	callback, err := withQuery(creds.CallbackURL, "state", state)
	if err != nil {
		return nil, domain.NewConnectError(d.Platform, domain.ErrCodeCallbackMisconfigured, err)
	}

	s := signer{consumerKey: creds.ClientID, consumerSecret: creds.ClientSecret}
	req, err := c.signedRequest(ctx, s, http.MethodPost, d.OAuth1.RequestTokenURL,
		url.Values{"oauth_callback": {callback}}, url.Values{}, nil, "")
	if err != nil {
		return nil, domain.NewConnectError(d.Platform, domain.ErrCodeUnknown, err)
	}

	vals, err := c.doForm(ctx, req)
	if err != nil {
		return nil, classify(d.Platform, domain.ErrCodeExchangeFailed, fmt.Errorf("request token: %w", err))
	}
	if vals.Get("oauth_callback_confirmed") != "true" {
		return nil, domain.NewConnectError(d.Platform, domain.ErrCodeCallbackMisconfigured,
			fmt.Errorf("provider did not confirm the callback url"))
	}
	token, secret := vals.Get("oauth_token"), vals.Get("oauth_token_secret")
	if token == "" || secret == "" {
		return nil, domain.NewConnectError(d.Platform, domain.ErrCodeExchangeFailed,
			fmt.Errorf("request token response is incomplete"))
	}

	authURL, err := withQuery(d.OAuth1.AuthorizeURL, "oauth_token", token)
	if err != nil {
		return nil, domain.NewConnectError(d.Platform, domain.ErrCodeUnknown, err)
	}
	return &Grant{AuthURL: authURL, RequestToken: token, RequestSecret: secret}, nil
}

func (c *Client) accessToken(ctx context.Context, d platform.Descriptor, creds Credentials, pending *domain.PendingAuth, params Params) (*Tokens, error) {
	if params.OAuthToken == "" || params.OAuthVerifier == "" {
		return nil, domain.NewConnectError(d.Platform, domain.ErrCodeExchangeFailed,
			fmt.Errorf("callback has no oauth_token or oauth_verifier"))
	}
	if params.OAuthToken != pending.RequestToken {
		return nil, domain.NewConnectError(d.Platform, domain.ErrCodeInvalidState,
			fmt.Errorf("oauth_token does not match the pending request token"))
	}

	s := signer{
		consumerKey:    creds.ClientID,
		consumerSecret: creds.ClientSecret,
		token:          pending.RequestToken,
		tokenSecret:    pending.RequestSecret,
	}
	req, err := c.signedRequest(ctx, s, http.MethodPost, d.OAuth1.AccessTokenURL,
		url.Values{"oauth_verifier": {params.OAuthVerifier}}, url.Values{}, nil, "")
	if err != nil {
		return nil, domain.NewConnectError(d.Platform, domain.ErrCodeUnknown, err)
	}

	vals, err := c.doForm(ctx, req)
	if err != nil {
		return nil, classify(d.Platform, domain.ErrCodeExchangeFailed, fmt.Errorf("access token: %w", err))
	}
	token, secret := vals.Get("oauth_token"), vals.Get("oauth_token_secret")
	if token == "" || secret == "" {
		return nil, domain.NewConnectError(d.Platform, domain.ErrCodeExchangeFailed,
			fmt.Errorf("access token response is incomplete"))
	}
	return &Tokens{AccessToken: token, TokenSecret: &secret}, nil
}

func withQuery(rawURL, key, value string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse %q: %w", rawURL, err)
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
