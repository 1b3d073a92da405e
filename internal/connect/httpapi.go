package connect

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/ewasl-backend/internal/domain"
)

// HTTPAPI is the API backed by the REST server.
type HTTPAPI struct {
	baseURL     string
	accessToken string
	client      *http.Client
}

var _ API = (*HTTPAPI)(nil)

// NewHTTPAPI creates a client for the server at baseURL that authenticates
// with accessToken. A nil client uses http.DefaultClient.
func NewHTTPAPI(baseURL, accessToken string, client *http.Client) *HTTPAPI {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPAPI{
		baseURL:     strings.TrimRight(baseURL, "/"),
		accessToken: accessToken,
		client:      client,
	}
}

type errorBody struct {
	Error string           `json:"error"`
	Code  domain.ErrorCode `json:"code"`
}

func (h *HTTPAPI) StartAuth(ctx context.Context, p domain.Platform) (*AuthResponse, error) {
	var out AuthResponse
	if _, err := h.do(ctx, p, http.MethodGet, "/api/"+p.String()+"/auth", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (h *HTTPAPI) CompleteAuth(ctx context.Context, p domain.Platform, token string) (*Account, error) {
	var out struct {
		Account *Account `json:"account"`
	}
	status, err := h.do(ctx, p, http.MethodPost, "/api/"+p.String()+"/complete-auth", map[string]string{"token": token}, &out)
	if err != nil {
		return nil, err
	}
	if status == http.StatusAccepted {
		return nil, domain.ErrPending
	}
	if out.Account == nil {
		return nil, domain.NewConnectError(p, domain.ErrCodeUnknown, errors.New("completion without account"))
	}
	return out.Account, nil
}

func (h *HTTPAPI) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	_, err := h.do(ctx, "", http.MethodDelete, "/api/social-accounts/"+id.String(), nil, nil)
	return err
}

func (h *HTTPAPI) ListAccounts(ctx context.Context) ([]Account, error) {
	var out struct {
		Accounts []Account `json:"accounts"`
	}
	if _, err := h.do(ctx, "", http.MethodGet, "/api/social-accounts", nil, &out); err != nil {
		return nil, err
	}
	return out.Accounts, nil
}

// do sends one request and decodes a 2xx body into out. Error statuses
// map to domain errors: 401 to ErrUnauthorized, 404 to ErrNotFound, others
// to a *domain.ConnectError carrying the server's code.
func (h *HTTPAPI) do(ctx context.Context, p domain.Platform, method, path string, in, out any) (int, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return 0, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, body)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if h.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+h.accessToken)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return 0, domain.NewConnectError(p, domain.ErrCodeNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out != nil && resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusAccepted {
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return resp.StatusCode, domain.NewConnectError(p, domain.ErrCodeUnknown, fmt.Errorf("decode response: %w", err))
			}
		}
		return resp.StatusCode, nil
	}

	var eb errorBody
	_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&eb)
	cause := fmt.Errorf("%s %s: %d %s", method, path, resp.StatusCode, eb.Error)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return resp.StatusCode, fmt.Errorf("%w: %w", domain.ErrUnauthorized, cause)
	case http.StatusNotFound:
		return resp.StatusCode, fmt.Errorf("%w: %w", domain.ErrNotFound, cause)
	}

	code := eb.Code
	if !domain.IsKnownErrorCode(code) {
		code = domain.ErrCodeUnknown
		if resp.StatusCode >= 500 {
			code = domain.ErrCodeNetwork
		}
	}
	return resp.StatusCode, domain.NewConnectError(p, code, cause)
}
