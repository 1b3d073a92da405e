package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/ewasl-backend/internal/domain"
	"github.com/heartmarshall/ewasl-backend/internal/service/post"
)

type postService interface {
	Create(ctx context.Context, input post.CreateInput) (*domain.Post, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	List(ctx context.Context, input post.ListInput) ([]domain.Post, int, error)
	Update(ctx context.Context, input post.UpdateInput) (*domain.Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Schedule(ctx context.Context, id uuid.UUID, at time.Time) (*domain.Post, error)
	Deliveries(ctx context.Context, id uuid.UUID) ([]domain.PostDelivery, error)
}

// PostHandler serves /api/posts.
type PostHandler struct {
	svc postService
	log *slog.Logger
}

// NewPostHandler creates a PostHandler.
func NewPostHandler(svc postService, logger *slog.Logger) *PostHandler {
	return &PostHandler{svc: svc, log: logger.With("handler", "posts")}
}

type postResponse struct {
	ID          uuid.UUID  `json:"id"`
	Content     string     `json:"content"`
	Platforms   []string   `json:"platforms"`
	MediaURLs   []string   `json:"media_urls"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	Status      string     `json:"status"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	LastError   *string    `json:"last_error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type deliveryResponse struct {
	ID             uuid.UUID `json:"id"`
	AccountID      uuid.UUID `json:"account_id"`
	Platform       string    `json:"platform"`
	Status         string    `json:"status"`
	ExternalPostID *string   `json:"external_post_id,omitempty"`
	ErrorCode      *string   `json:"error_code,omitempty"`
	Message        string    `json:"message,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type createPostRequest struct {
	Content     string     `json:"content"`
	Platforms   []string   `json:"platforms"`
	MediaURLs   []string   `json:"media_urls"`
	ScheduledAt *time.Time `json:"scheduled_at"`
}

type updatePostRequest struct {
	Content   *string  `json:"content"`
	Platforms []string `json:"platforms"`
	MediaURLs []string `json:"media_urls"`
}

type scheduleRequest struct {
	ScheduledAt time.Time `json:"scheduled_at"`
}

// List handles GET /api/posts?status=&limit=&offset=.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", post.DefaultLimit)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	input := post.ListInput{Limit: limit, Offset: offset}
	if s := r.URL.Query().Get("status"); s != "" {
		input.Status = &s
	}

	posts, total, err := h.svc.List(r.Context(), input)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	out := make([]postResponse, len(posts))
	for i := range posts {
		out[i] = toPostResponse(&posts[i])
	}
	writeJSON(w, http.StatusOK, map[string]any{"posts": out, "total": total})
}

// Create handles POST /api/posts.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := h.svc.Create(r.Context(), post.CreateInput{
		Content:     req.Content,
		Platforms:   req.Platforms,
		MediaURLs:   req.MediaURLs,
		ScheduledAt: req.ScheduledAt,
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toPostResponse(p))
}

// Get handles GET /api/posts/{id}.
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toPostResponse(p))
}

// Update handles PUT /api/posts/{id}.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var req updatePostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := h.svc.Update(r.Context(), post.UpdateInput{
		ID:        id,
		Content:   req.Content,
		Platforms: req.Platforms,
		MediaURLs: req.MediaURLs,
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toPostResponse(p))
}

// Delete handles DELETE /api/posts/{id}.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Schedule handles POST /api/posts/{id}/schedule.
func (h *PostHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var req scheduleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := h.svc.Schedule(r.Context(), id, req.ScheduledAt)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toPostResponse(p))
}

// Deliveries handles GET /api/posts/{id}/deliveries.
func (h *PostHandler) Deliveries(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	ds, err := h.svc.Deliveries(r.Context(), id)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	out := make([]deliveryResponse, len(ds))
	for i, d := range ds {
		out[i] = deliveryResponse{
			ID:             d.ID,
			AccountID:      d.AccountID,
			Platform:       d.Platform.String(),
			Status:         string(d.Status),
			ExternalPostID: d.ExternalPostID,
			CreatedAt:      d.CreatedAt,
		}
		if d.ErrorCode != nil {
			code := d.ErrorCode.String()
			out[i].ErrorCode = &code
			out[i].Message = domain.ErrorMessage(*d.ErrorCode)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"deliveries": out})
}

func toPostResponse(p *domain.Post) postResponse {
	platforms := make([]string, len(p.Platforms))
	for i, pl := range p.Platforms {
		platforms[i] = pl.String()
	}
	media := p.MediaURLs
	if media == nil {
		media = []string{}
	}
	return postResponse{
		ID:          p.ID,
		Content:     p.Content,
		Platforms:   platforms,
		MediaURLs:   media,
		ScheduledAt: p.ScheduledAt,
		Status:      p.Status.String(),
		PublishedAt: p.PublishedAt,
		LastError:   p.LastError,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
