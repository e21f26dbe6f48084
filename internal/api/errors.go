package api

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotAuthenticated is returned before any network call when an operation
// needs a logged-in user and the session has no usable token. Callers turn
// it into a login prompt, never into a server-error notice.
var ErrNotAuthenticated = errors.New("not authenticated")

// Error is a failure response from the association API.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.StatusCode)
}

// Conflict reports whether the failure means the resource already exists —
// for registrations, that the (user, event) pair is taken. The server does
// not expose a structured conflict code, so this matches both the 409
// status and the human-readable message the backend is known to send.
// TODO: drop the substring match once the backend returns a conflict code.
func (e *Error) Conflict() bool {
	return e.StatusCode == 409 ||
		strings.Contains(strings.ToLower(e.Message), "already registered")
}

// IsConflict reports whether err is an API conflict. Conflicts are a
// reconciliation case, not a true failure: the caller surfaces a specific
// non-retryable notice instead of a generic error.
func IsConflict(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Conflict()
}
