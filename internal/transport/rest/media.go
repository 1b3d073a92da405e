package rest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/ewasl-backend/internal/adapter/supabase"
	"github.com/heartmarshall/ewasl-backend/internal/domain"
	"github.com/heartmarshall/ewasl-backend/pkg/ctxutil"
)

type mediaStorage interface {
	Upload(ctx context.Context, owner uuid.UUID, filename, contentType string, data []byte) (*supabase.Object, error)
}

// MediaHandler serves POST /api/media.
type MediaHandler struct {
	storage  mediaStorage
	maxBytes int64
	log      *slog.Logger
}

// NewMediaHandler creates a MediaHandler. A nil storage answers every
// upload with 503.
func NewMediaHandler(storage mediaStorage, maxBytes int64, logger *slog.Logger) *MediaHandler {
	return &MediaHandler{storage: storage, maxBytes: maxBytes, log: logger.With("handler", "media")}
}

type mediaResponse struct {
	URL         string `json:"url"`
	Path        string `json:"path"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// Upload handles POST /api/media with a multipart "file" field. Only images
// and videos are accepted; the type is sniffed from the content.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil {
		writeError(w, http.StatusServiceUnavailable, "media storage is not configured", codeDisabled)
		return
	}
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		respondError(w, r, h.log, domain.ErrUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+(1<<20))
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "file too large", codeValidation)
			return
		}
		writeError(w, http.StatusBadRequest, "multipart field \"file\" is required", codeBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read file", codeBadRequest)
		return
	}
	if int64(len(data)) > h.maxBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "file too large", codeValidation)
		return
	}
	if len(data) == 0 {
		respondError(w, r, h.log, domain.NewValidationError("file", "empty file"))
		return
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") && !strings.HasPrefix(contentType, "video/") {
		respondError(w, r, h.log, domain.NewValidationError("file", "must be an image or video"))
		return
	}

	obj, err := h.storage.Upload(r.Context(), userID, header.Filename, contentType, data)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, mediaResponse{
		URL:         obj.PublicURL,
		Path:        obj.Path,
		ContentType: obj.ContentType,
		Size:        obj.Size,
	})
}
