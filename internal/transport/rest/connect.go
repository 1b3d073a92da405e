package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/ewasl-backend/internal/domain"
	"github.com/heartmarshall/ewasl-backend/internal/service/connect"
)

type connectService interface {
	StartAuth(ctx context.Context, p domain.Platform) (*connect.AuthStart, error)
	HandleCallback(ctx context.Context, p domain.Platform, params connect.CallbackParams) string
	CompleteAuth(ctx context.Context, p domain.Platform, token string) (*domain.SocialAccount, error)
}

// ConnectHandler serves the per-platform connect endpoints.
type ConnectHandler struct {
	svc connectService
	log *slog.Logger
}

// NewConnectHandler creates a ConnectHandler.
func NewConnectHandler(svc connectService, logger *slog.Logger) *ConnectHandler {
	return &ConnectHandler{svc: svc, log: logger.With("handler", "connect")}
}

type authStartResponse struct {
	AuthURL          string `json:"authUrl"`
	State            string `json:"state"`
	Platform         string `json:"platform"`
	Strategy         string `json:"strategy"`
	OAuthToken       string `json:"oauth_token,omitempty"`
	OAuthTokenSecret string `json:"oauth_token_secret,omitempty"`
}

type completeAuthRequest struct {
	Token string `json:"token"`
}

// StartAuth handles GET /api/{platform}/auth and /api/{platform}/auth-url.
func (h *ConnectHandler) StartAuth(w http.ResponseWriter, r *http.Request) {
	p := domain.Platform(chi.URLParam(r, "platform"))

	start, err := h.svc.StartAuth(r.Context(), p)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, authStartResponse{
		AuthURL:          start.AuthURL,
		State:            start.State,
		Platform:         start.Platform.String(),
		Strategy:         string(start.Strategy),
		OAuthToken:       start.OAuthToken,
		OAuthTokenSecret: start.OAuthTokenSecret,
	})
}

// Callback handles GET /api/{platform}/callback, the provider redirect
// target. It always answers with a redirect back into the dashboard.
func (h *ConnectHandler) Callback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	target := h.svc.HandleCallback(r.Context(), domain.Platform(chi.URLParam(r, "platform")), connect.CallbackParams{
		State:         q.Get("state"),
		Code:          q.Get("code"),
		OAuthToken:    q.Get("oauth_token"),
		OAuthVerifier: q.Get("oauth_verifier"),
		Error:         q.Get("error"),
		Denied:        q.Get("denied"),
	})
	http.Redirect(w, r, target, http.StatusFound)
}

// CompleteAuth handles POST /api/{platform}/complete-auth. It answers 202
// while the provider callback has not landed yet.
func (h *ConnectHandler) CompleteAuth(w http.ResponseWriter, r *http.Request) {
	var req completeAuthRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	acct, err := h.svc.CompleteAuth(r.Context(), domain.Platform(chi.URLParam(r, "platform")), req.Token)
	if errors.Is(err, domain.ErrPending) {
		writeJSON(w, http.StatusAccepted, map[string]string{"status": "pending"})
		return
	}
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"account": toAccountResponse(acct)})
}
