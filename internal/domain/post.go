package domain

import (
	"time"

	"github.com/google/uuid"
)

// PostStatus tracks a post through compose, schedule and publish.
type PostStatus string

const (
	PostStatusDraft      PostStatus = "draft"
	PostStatusScheduled  PostStatus = "scheduled"
	PostStatusPublishing PostStatus = "publishing"
	PostStatusPublished  PostStatus = "published"
	PostStatusFailed     PostStatus = "failed"
)

func (s PostStatus) String() string { return string(s) }

func (s PostStatus) IsValid() bool {
	switch s {
	case PostStatusDraft, PostStatusScheduled, PostStatusPublishing,
		PostStatusPublished, PostStatusFailed:
		return true
	}
	return false
}

// IsEditable returns true while the post has not been handed to publishers.
func (s PostStatus) IsEditable() bool {
	return s == PostStatusDraft || s == PostStatusScheduled || s == PostStatusFailed
}

// Post is content targeted at one or more platforms.
type Post struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Content     string
	Platforms   []Platform
	MediaURLs   []string
	ScheduledAt *time.Time
	Status      PostStatus
	PublishedAt *time.Time
	LastError   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TargetsPlatform reports whether p is one of the post's targets.
func (p *Post) TargetsPlatform(platform Platform) bool {
	for _, t := range p.Platforms {
		if t == platform {
			return true
		}
	}
	return false
}

// DeliveryStatus is the result of publishing a post to one account.
type DeliveryStatus string

const (
	DeliveryStatusSucceeded DeliveryStatus = "succeeded"
	DeliveryStatusFailed    DeliveryStatus = "failed"
)

// PostDelivery records a single publish attempt.
type PostDelivery struct {
	ID             uuid.UUID
	PostID         uuid.UUID
	AccountID      uuid.UUID
	Platform       Platform
	Status         DeliveryStatus
	ExternalPostID *string
	ErrorCode      *ErrorCode
	CreatedAt      time.Time
}

// MaxContentLength returns the platform's post body limit in runes,
// or 0 if the platform imposes none we enforce.
func MaxContentLength(p Platform) int {
	switch p {
	case PlatformTwitter:
		return 280
	case PlatformLinkedIn:
		return 3000
	case PlatformInstagram:
		return 2200
	case PlatformTikTok:
		return 2200
	case PlatformFacebook:
		return 63206
	case PlatformYouTube:
		return 5000
	case PlatformSnapchat:
		return 250
	}
	return 0
}
