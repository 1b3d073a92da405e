package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/ewasl-backend/internal/domain"
	"github.com/heartmarshall/ewasl-backend/internal/service/account"
)

type accountService interface {
	List(ctx context.Context) ([]domain.SocialAccount, error)
	Create(ctx context.Context, input account.CreateInput) (*domain.SocialAccount, error)
	Disconnect(ctx context.Context, id uuid.UUID) error
}

// AccountHandler serves /api/social-accounts.
type AccountHandler struct {
	svc accountService
	log *slog.Logger
}

// NewAccountHandler creates an AccountHandler.
func NewAccountHandler(svc accountService, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{svc: svc, log: logger.With("handler", "accounts")}
}

// accountResponse never carries provider tokens.
type accountResponse struct {
	ID             uuid.UUID  `json:"id"`
	Platform       string     `json:"platform"`
	ExternalID     string     `json:"external_id"`
	Username       string     `json:"username"`
	DisplayName    string     `json:"display_name"`
	AvatarURL      *string    `json:"avatar_url,omitempty"`
	Status         string     `json:"status"`
	TokenExpiresAt *time.Time `json:"token_expires_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type createAccountRequest struct {
	Platform    string  `json:"platform"`
	ExternalID  string  `json:"external_id"`
	Username    string  `json:"username"`
	DisplayName string  `json:"display_name"`
	AvatarURL   *string `json:"avatar_url"`
	AccessToken string  `json:"access_token"`
}

// List handles GET /api/social-accounts.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.svc.List(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	out := make([]accountResponse, len(accounts))
	for i := range accounts {
		out[i] = toAccountResponse(&accounts[i])
	}
	writeJSON(w, http.StatusOK, map[string]any{"accounts": out})
}

// Create handles POST /api/social-accounts.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	acct, err := h.svc.Create(r.Context(), account.CreateInput{
		Platform:    req.Platform,
		ExternalID:  req.ExternalID,
		Username:    req.Username,
		DisplayName: req.DisplayName,
		AvatarURL:   req.AvatarURL,
		AccessToken: req.AccessToken,
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"account": toAccountResponse(acct)})
}

// Delete handles DELETE /api/social-accounts/{id}.
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.Disconnect(r.Context(), id); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toAccountResponse(a *domain.SocialAccount) accountResponse {
	return accountResponse{
		ID:             a.ID,
		Platform:       a.Platform.String(),
		ExternalID:     a.ExternalID,
		Username:       a.Username,
		DisplayName:    a.DisplayName,
		AvatarURL:      a.AvatarURL,
		Status:         a.Status.String(),
		TokenExpiresAt: a.TokenExpiresAt,
		CreatedAt:      a.CreatedAt,
	}
}
