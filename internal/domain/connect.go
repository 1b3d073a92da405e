package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrorCode is the structured failure class of a connect attempt.
// Servers return it in error bodies and redirects; clients map it to a
// message with ErrorMessage.
type ErrorCode string

const (
	ErrCodeNetwork               ErrorCode = "network_error"
	ErrCodeUnauthorized          ErrorCode = "unauthorized"
	ErrCodeMissingCredentials    ErrorCode = "missing_credentials"
	ErrCodeCallbackMisconfigured ErrorCode = "callback_misconfigured"
	ErrCodeCancelled             ErrorCode = "cancelled"
	ErrCodeMissingAuthURL        ErrorCode = "missing_auth_url"
	ErrCodeTimeout               ErrorCode = "timeout"
	ErrCodeInvalidState          ErrorCode = "invalid_state"
	ErrCodeExchangeFailed        ErrorCode = "exchange_failed"
	ErrCodeProfileFailed         ErrorCode = "profile_failed"
	ErrCodeUnsupportedPlatform   ErrorCode = "unsupported_platform"
	ErrCodeDisconnectFailed      ErrorCode = "disconnect_failed"
	ErrCodePublishFailed         ErrorCode = "publish_failed"
	ErrCodeUnknown               ErrorCode = "unknown"
)

func (c ErrorCode) String() string { return string(c) }

var errorMessages = map[ErrorCode]string{
	ErrCodeNetwork:               "Could not reach the server. Check your connection and try again.",
	ErrCodeUnauthorized:          "Your session has expired. Please sign in again.",
	ErrCodeMissingCredentials:    "This platform is not configured on the server.",
	ErrCodeCallbackMisconfigured: "The platform callback URL is misconfigured.",
	ErrCodeCancelled:             "Connection was cancelled.",
	ErrCodeMissingAuthURL:        "The server did not return an authorization URL.",
	ErrCodeTimeout:               "Timed out waiting for the platform to respond.",
	ErrCodeInvalidState:          "The connection request expired or was already used. Please try again.",
	ErrCodeExchangeFailed:        "The platform rejected the authorization.",
	ErrCodeProfileFailed:         "Connected, but the account profile could not be loaded.",
	ErrCodeUnsupportedPlatform:   "This platform is not supported.",
	ErrCodeDisconnectFailed:      "Could not disconnect the account.",
	ErrCodePublishFailed:         "The platform rejected the post.",
	ErrCodeUnknown:               "Something went wrong. Please try again.",
}

// ErrorMessage returns the user-facing message for a code.
// Unknown codes fall back to the generic message.
func ErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return errorMessages[ErrCodeUnknown]
}

// IsKnownErrorCode reports whether code has an entry in the message table.
func IsKnownErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}

// ConnectError is a typed connect-flow failure.
type ConnectError struct {
	Code     ErrorCode
	Platform Platform
	Err      error
}

func (e *ConnectError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("connect %s: %s: %v", e.Platform, e.Code, e.Err)
	}
	return fmt.Sprintf("connect %s: %s", e.Platform, e.Code)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// NewConnectError creates a ConnectError.
func NewConnectError(platform Platform, code ErrorCode, err error) *ConnectError {
	return &ConnectError{Code: code, Platform: platform, Err: err}
}

// CodeOf extracts the ErrorCode from err, or ErrCodeUnknown.
func CodeOf(err error) ErrorCode {
	var ce *ConnectError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ErrCodeUnknown
}

// ConnectState is the per-attempt state of a connect flow.
type ConnectState string

const (
	ConnectIdle       ConnectState = "idle"
	ConnectConnecting ConnectState = "connecting"
	ConnectConnected  ConnectState = "connected"
	ConnectCancelled  ConnectState = "cancelled"
	ConnectFailed     ConnectState = "failed"
)

func (s ConnectState) String() string { return string(s) }

// IsTerminal reports whether no further transitions are possible
// besides returning to idle.
func (s ConnectState) IsTerminal() bool {
	return s == ConnectConnected || s == ConnectCancelled || s == ConnectFailed
}

// CanTransition reports whether s → next is a legal move.
func (s ConnectState) CanTransition(next ConnectState) bool {
	switch s {
	case ConnectIdle:
		return next == ConnectConnecting
	case ConnectConnecting:
		return next.IsTerminal()
	case ConnectConnected, ConnectCancelled, ConnectFailed:
		return next == ConnectIdle
	}
	return false
}

// PendingAuth is the server-side record of a started connect attempt,
// keyed by its correlation state.
type PendingAuth struct {
	State         string    `json:"state"`
	Platform      Platform  `json:"platform"`
	UserID        uuid.UUID `json:"user_id"`
	CodeVerifier  string    `json:"code_verifier,omitempty"`
	RequestToken  string    `json:"request_token,omitempty"`
	RequestSecret string    `json:"request_secret,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Completion is the one-shot result of a provider callback.
type Completion struct {
	Token     string     `json:"token"`
	State     string     `json:"state"`
	Platform  Platform   `json:"platform"`
	UserID    uuid.UUID  `json:"user_id"`
	AccountID *uuid.UUID `json:"account_id,omitempty"`
	Code      ErrorCode  `json:"code,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Succeeded reports whether the callback produced an account.
func (c *Completion) Succeeded() bool {
	return c.Code == "" && c.AccountID != nil
}
