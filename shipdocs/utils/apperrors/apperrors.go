// Error taxonomy for the chat path. Every failure is classified exactly
// once and surfaced with a machine-readable type and an HTTP status.
package apperrors

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"syscall"
)

type Type string

const (
	TypeRAGUnavailable Type = "rag_unavailable"
	TypeQuotaExceeded  Type = "quota_exceeded"
	TypeTimeout        Type = "timeout"
	TypeAuthError      Type = "auth_error"
	TypeRateLimited    Type = "rate_limited"
	TypeDatabaseError  Type = "database_error"
	TypeUnknown        Type = "unknown"
)

var statusByType = map[Type]int{
	TypeRAGUnavailable: http.StatusServiceUnavailable,
	TypeQuotaExceeded:  http.StatusServiceUnavailable,
	TypeTimeout:        http.StatusGatewayTimeout,
	TypeAuthError:      http.StatusUnauthorized,
	TypeRateLimited:    http.StatusTooManyRequests,
	TypeDatabaseError:  http.StatusInternalServerError,
	TypeUnknown:        http.StatusInternalServerError,
}

type ChatError struct {
	Type    Type
	Message string
	Err     error
}

func (e *ChatError) Error() string {
	return e.Message
}

func (e *ChatError) Unwrap() error {
	return e.Err
}

func (e *ChatError) Status() int {
	if s, ok := statusByType[e.Type]; ok {
		return s
	}
	return http.StatusInternalServerError
}

func New(t Type, message string, cause error) *ChatError {
	return &ChatError{Type: t, Message: message, Err: cause}
}

// Classify maps an arbitrary error onto the taxonomy. Errors that were
// already classified pass through unchanged.
func Classify(err error) *ChatError {
	var chatErr *ChatError
	if errors.As(err, &chatErr) {
		return chatErr
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return New(TypeRAGUnavailable,
			"Unable to connect to the AI backend. Please make sure all services are running.", err)
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return New(TypeTimeout,
			"The request timed out. The AI service may be overloaded - please try again in a moment.", err)
	}

	if isMissingTable(err) {
		return New(TypeDatabaseError,
			"Database tables have not been set up yet. Run the migrations to create them.", err)
	}

	return New(TypeUnknown, "Something went wrong. Please try again.", err)
}

// isMissingTable recognises the undefined-table errors postgres (42P01)
// and sqlite emit before the schema has been migrated.
func isMissingTable(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "42P01") ||
		strings.Contains(msg, "does not exist") ||
		strings.Contains(msg, "no such table")
}
