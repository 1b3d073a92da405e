package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/ewasl-backend/internal/domain"
)

// Error codes for failures outside the connect taxonomy.
const (
	codeValidation = "validation_error"
	codeBadRequest = "bad_request"
	codeNotFound   = "not_found"
	codeForbidden  = "forbidden"
	codeConflict   = "conflict"
	codeExists     = "already_exists"
	codeInternal   = "internal_error"
	codeDisabled   = "not_configured"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error  string       `json:"error"`
	Code   string       `json:"code"`
	Fields []fieldError `json:"fields,omitempty"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, errorResponse{Error: message, Code: code})
}

// respondError maps a service error onto a status and error body.
// Unexpected errors are logged and reported without detail.
func respondError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var (
		ve *domain.ValidationError
		ce *domain.ConnectError
	)
	switch {
	case errors.As(err, &ve):
		fields := make([]fieldError, len(ve.Errors))
		for i, fe := range ve.Errors {
			fields[i] = fieldError{Field: fe.Field, Message: fe.Message}
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: ve.Error(), Code: codeValidation, Fields: fields})
	case errors.As(err, &ce):
		writeError(w, connectStatus(ce.Code), domain.ErrorMessage(ce.Code), ce.Code.String())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized", domain.ErrCodeUnauthorized.String())
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden", codeForbidden)
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found", codeNotFound)
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "already exists", codeExists)
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "conflict", codeConflict)
	default:
		log.ErrorContext(r.Context(), "internal error",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "internal server error", codeInternal)
	}
}

func connectStatus(code domain.ErrorCode) int {
	switch code {
	case domain.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case domain.ErrCodeMissingCredentials, domain.ErrCodeCallbackMisconfigured:
		return http.StatusServiceUnavailable
	case domain.ErrCodeUnsupportedPlatform, domain.ErrCodeInvalidState:
		return http.StatusBadRequest
	case domain.ErrCodeNetwork:
		return http.StatusBadGateway
	}
	return http.StatusUnprocessableEntity
}

// decodeJSON reads a size-limited JSON body into v, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", codeBadRequest)
		return false
	}
	return true
}

// uuidParam parses a chi path parameter, writing a 400 on failure.
func uuidParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name, codeBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, domain.NewValidationError(name, "must be an integer")
	}
	return n, nil
}

func extractBearer(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
