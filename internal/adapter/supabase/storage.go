// Package supabase uploads media to Supabase Storage.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Storage is a Supabase Storage bucket client.
type Storage struct {
	baseURL    string
	serviceKey string
	bucket     string
	httpClient *http.Client
	log        *slog.Logger
}

// NewStorage creates a client for bucket on the project at projectURL.
// serviceKey must be the service role key: uploads bypass row level security.
func NewStorage(projectURL, serviceKey, bucket string, logger *slog.Logger) *Storage {
	return &Storage{
		baseURL:    strings.TrimRight(projectURL, "/"),
		serviceKey: serviceKey,
		bucket:     bucket,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		log:        logger.With("adapter", "supabase_storage"),
	}
}

// Object is an uploaded file.
type Object struct {
	Path        string
	PublicURL   string
	ContentType string
	Size        int64
}

type storageError struct {
	StatusCode string `json:"statusCode"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}

// Upload stores data under <owner>/<random>.<ext> and returns its public URL.
func (s *Storage) Upload(ctx context.Context, owner uuid.UUID, filename, contentType string, data []byte) (*Object, error) {
	objectPath := owner.String() + "/" + uuid.NewString() + strings.ToLower(path.Ext(filename))

	endpoint := s.baseURL + "/storage/v1/object/" + url.PathEscape(s.bucket) + "/" + objectPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("supabase.Upload create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("apikey", s.serviceKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "false")
	req.Header.Set("Cache-Control", "max-age=3600")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("supabase.Upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var se storageError
		if json.Unmarshal(body, &se) == nil && se.Message != "" {
			s.log.ErrorContext(ctx, "supabase upload failed",
				slog.Int("status", resp.StatusCode), slog.String("error", se.Message))
			return nil, fmt.Errorf("supabase.Upload: %d: %s", resp.StatusCode, se.Message)
		}
		s.log.ErrorContext(ctx, "supabase upload failed", slog.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("supabase.Upload: unexpected status %d", resp.StatusCode)
	}

	return &Object{
		Path:        objectPath,
		PublicURL:   s.PublicURL(objectPath),
		ContentType: contentType,
		Size:        int64(len(data)),
	}, nil
}

// PublicURL is the CDN address of an object in a public bucket.
func (s *Storage) PublicURL(objectPath string) string {
	return s.baseURL + "/storage/v1/object/public/" + url.PathEscape(s.bucket) + "/" + objectPath
}

// Ping checks that the bucket exists and the key is accepted.
func (s *Storage) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/storage/v1/bucket/"+url.PathEscape(s.bucket), nil)
	if err != nil {
		return fmt.Errorf("supabase.Ping create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("apikey", s.serviceKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("supabase.Ping: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("supabase.Ping: unexpected status %d", resp.StatusCode)
	}
	return nil
}
