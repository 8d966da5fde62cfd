package zosmf

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Static errors that can be wrapped with context.
var (
	ErrConfigRequired    = errors.New("config is required")
	ErrBaseURLRequired   = errors.New("base URL is required")
	ErrNoSessionCookie   = errors.New("no session cookie in authentication response")
	ErrInvalidJobID      = errors.New("job identifier requires a name and id or a correlator")
	ErrJCLRequired       = errors.New("JCL source is required")
	ErrNotAuthenticated  = errors.New("not authenticated")
	ErrPatternRequired   = errors.New("dataset name pattern is required")
	ErrPathRequired      = errors.New("file path is required")
	ErrExecutorRequired  = errors.New("executor is required")
	ErrInvalidDataType   = errors.New("invalid data type")
	ErrSkipTLSOnlyInDev  = errors.New("skipTLS is only allowed in development environments")
	ErrVariablesRequired = errors.New("at least one variable is required")
)

// Error represents an error response from z/OSMF. The server reports failures
// as a JSON body with a category, return code, reason, and message.
type Error struct {
	StatusCode int      `json:"-"           yaml:"-"`
	URL        string   `json:"-"           yaml:"-"`
	Category   int      `json:"category"    yaml:"category"`
	ReturnCode int      `json:"rc"          yaml:"rc"`
	Reason     int      `json:"reason"      yaml:"reason"`
	Message    string   `json:"message"     yaml:"message"`
	Details    []string `json:"details,omitempty" yaml:"details,omitempty"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "z/OSMF error (status %d)", e.StatusCode)

	if e.Message != "" {
		fmt.Fprintf(&builder, ": %s", e.Message)
	}

	if e.Category != 0 || e.ReturnCode != 0 || e.Reason != 0 {
		fmt.Fprintf(&builder, " (category: %d, rc: %d, reason: %d)", e.Category, e.ReturnCode, e.Reason)
	}

	return builder.String()
}

// TransportError represents a network-level failure: the request never
// produced an HTTP response.
type TransportError struct {
	URL string
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError represents a failure to decode an otherwise-successful response
// body into the expected shape.
type DecodeError struct {
	URL string
	Err error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding response from %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying cause.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsAuthError checks if the error is an authentication failure (invalid
// credentials or expired session).
func IsAuthError(err error) bool {
	zosmfErr := &Error{}
	if errors.As(err, &zosmfErr) {
		return zosmfErr.StatusCode == http.StatusUnauthorized || zosmfErr.StatusCode == http.StatusForbidden
	}

	return false
}

// AsError extracts the server-reported *Error from an error chain.
func AsError(err error) (*Error, bool) {
	zosmfErr := &Error{}
	if errors.As(err, &zosmfErr) {
		return zosmfErr, true
	}

	return nil, false
}

// IsNotFound checks if the error is a not-found error.
func IsNotFound(err error) bool {
	zosmfErr := &Error{}
	if errors.As(err, &zosmfErr) {
		return zosmfErr.StatusCode == http.StatusNotFound
	}

	return false
}

// ParseError parses a z/OSMF error body into an Error. The status code and
// URL are filled in by the caller. A body that does not parse as the
// structured error shape yields an Error carrying the raw body as message.
func ParseError(statusCode int, url string, body []byte) *Error {
	zosmfErr := &Error{
		StatusCode: statusCode,
		URL:        url,
	}

	if len(body) > 0 {
		if err := json.Unmarshal(body, zosmfErr); err != nil {
			zosmfErr.Message = strings.TrimSpace(string(body))
		}
	}

	return zosmfErr
}
