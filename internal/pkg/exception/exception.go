package exception

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies application errors by failure domain.
type Kind string

const (
	KindConfig Kind = "config"
	KindAuth   Kind = "auth"
	KindSearch Kind = "search"
	KindParse  Kind = "parse"
)

// ApplicationError handles application level errors.
type ApplicationError struct {
	Kind       Kind
	Message    string
	StatusCode int
	Cause      error
}

// Error interface implementation.
func (e ApplicationError) Error() string {
	if e.Cause == nil {
		return e.Message
	}

	return fmt.Sprintf("%s: %s", e.Message, e.Cause)
}

func (e ApplicationError) Unwrap() error {
	if e.Cause == nil {
		return errors.New(e.Message)
	}

	return e.Cause
}

func (e ApplicationError) Is(target error) bool {
	var targetErr ApplicationError

	if !errors.As(target, &targetErr) {
		return false
	}

	return e.Kind == targetErr.Kind &&
		e.Message == targetErr.Message
}

// ErrorCode returns error code for an application error.
func (e ApplicationError) ErrorCode() int {
	return e.StatusCode
}

// NewConfigError reports missing or invalid configuration. Fatal: no
// partial operation is possible without credentials.
func NewConfigError(message string) ApplicationError {
	return ApplicationError{
		Kind:       KindConfig,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
	}
}

// NewAuthError reports a failed token exchange with the upstream API.
func NewAuthError(message string, cause error) ApplicationError {
	return ApplicationError{
		Kind:       KindAuth,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

// NewSearchError reports a non-2xx upstream search response, carrying
// the server-provided message when one was extracted.
func NewSearchError(message string, statusCode int, cause error) ApplicationError {
	if statusCode == 0 {
		statusCode = http.StatusBadGateway
	}

	return ApplicationError{
		Kind:       KindSearch,
		Message:    message,
		StatusCode: statusCode,
		Cause:      cause,
	}
}

// NewParseError reports a malformed upstream record.
func NewParseError(message string, cause error) ApplicationError {
	return ApplicationError{
		Kind:       KindParse,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

// IsKind reports whether err is an ApplicationError of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr ApplicationError
	if !errors.As(err, &appErr) {
		return false
	}

	return appErr.Kind == kind
}
