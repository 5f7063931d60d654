package domain

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrClassNotFound      = errors.New("class not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrNoTokensConfigured = errors.New("no auth token configured")

	ErrTokensInvalid   = errors.New("tokens invalid")
	ErrNoUserData      = errors.New("no user data")
	ErrNoSessionStored = errors.New("no session stored")
	ErrSessionExpired  = errors.New("session expired")
	ErrTokensMissing   = errors.New("tokens missing")

	ErrNoUploadTicket  = errors.New("no upload ticket returned")
	ErrNothingAttached = errors.New("nothing attached")
)

const (
	RemediationTokensInvalid = "the supplied authToken/contextToken were rejected; copy fresh values from a logged-in browser session and run `halo tokens set` then `halo session setup`"
	RemediationNoUserData    = "the session was created without a user; the tokens are probably stale, update them with `halo tokens set` and run `halo session setup` again"
	RemediationNoSession     = "run initial setup first: 1) provide authToken/contextToken with `halo tokens set` 2) run `halo session setup` to create a long-lived session"
	RemediationExpired       = "the long-lived session has expired: 1) log into https://halo.gcu.edu in your browser 2) update the tokens with `halo tokens set` 3) run `halo session setup`"
	RemediationTokensMissing = "the session is valid but returned no tokens; retry `halo tokens refresh` and re-run `halo session setup` if it persists"
	RemediationUnauthorized  = "tokens were rejected; run `halo tokens refresh`, or `halo session setup` after updating the tokens if the session has expired"
)

// AuthFailure is returned by the session lifecycle. Err is one of the ErrTokens*/ErrSession* sentinels.
type AuthFailure struct {
	Err         error
	Remediation string
}

func NewAuthFailure(err error, remediation string) *AuthFailure {
	return &AuthFailure{Err: err, Remediation: remediation}
}

func (e *AuthFailure) Error() string {
	if e.Remediation == "" {
		return fmt.Sprintf("auth failure: %v", e.Err)
	}
	return fmt.Sprintf("auth failure: %v: %s", e.Err, e.Remediation)
}

func (e *AuthFailure) Unwrap() error { return e.Err }

// APIError carries application-level errors reported by the GraphQL gateway.
type APIError struct {
	Operation string
	Messages  []string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("halo api error in %q: %s", e.Operation, strings.Join(e.Messages, "; "))
}

// TransportError is a non-success HTTP status that is not an authentication rejection.
type TransportError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *TransportError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: status %d", e.Operation, e.StatusCode)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Operation, e.StatusCode, e.Body)
}

func (e *TransportError) Retryable() bool {
	return e.StatusCode >= http.StatusInternalServerError || e.StatusCode == http.StatusTooManyRequests
}

type UploadError struct {
	FileName string
	Stage    AttachStage
	Err      error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload %q failed at %s: %v", e.FileName, e.Stage, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

type SubmissionError struct {
	AssessmentID string
	Err          error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("assignment %s was NOT submitted for grading: %v", e.AssessmentID, e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

type LocalIOError struct {
	Path string
	Err  error
}

func (e *LocalIOError) Error() string {
	return fmt.Sprintf("local file %q: %v", e.Path, e.Err)
}

func (e *LocalIOError) Unwrap() error { return e.Err }

type Remedy string

const (
	RemedyNone           Remedy = "none"
	RemedyReauthenticate Remedy = "reauthenticate"
	RemedyRetry          Remedy = "retry"
	RemedyFixInput       Remedy = "fix_input"
)

// Classify tells whether err needs user re-authentication, a retry, or different input.
func Classify(err error) Remedy {
	if err == nil {
		return RemedyNone
	}

	var authFailure *AuthFailure
	if errors.As(err, &authFailure) || errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrNoTokensConfigured) {
		return RemedyReauthenticate
	}

	var localErr *LocalIOError
	if errors.As(err, &localErr) || errors.Is(err, ErrClassNotFound) || errors.Is(err, ErrNothingAttached) || errors.Is(err, ErrInvalidInput) {
		return RemedyFixInput
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) && transportErr.Retryable() {
		return RemedyRetry
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return RemedyRetry
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return RemedyRetry
	}

	return RemedyNone
}
