package zosmf_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wmcgee3/z-osmf-go/pkg/zosmf"
)

func TestParseError(t *testing.T) {
	t.Parallel()
	t.Run("structured body", func(t *testing.T) {
		t.Parallel()

		body := []byte(`{"category":4,"rc":8,"reason":16,"message":"data set not found","details":["ISRZ002"]}`)

		zosmfErr := zosmf.ParseError(http.StatusNotFound, "https://host/zosmf/restfiles/ds/SYS1.NOPE", body)

		assert.Equal(t, http.StatusNotFound, zosmfErr.StatusCode)
		assert.Equal(t, 4, zosmfErr.Category)
		assert.Equal(t, 8, zosmfErr.ReturnCode)
		assert.Equal(t, 16, zosmfErr.Reason)
		assert.Equal(t, "data set not found", zosmfErr.Message)
		assert.Equal(t, []string{"ISRZ002"}, zosmfErr.Details)
	})

	t.Run("unstructured body falls back to raw message", func(t *testing.T) {
		t.Parallel()

		zosmfErr := zosmf.ParseError(http.StatusBadGateway, "https://host/zosmf/info", []byte("Bad Gateway\n"))

		assert.Equal(t, http.StatusBadGateway, zosmfErr.StatusCode)
		assert.Equal(t, "Bad Gateway", zosmfErr.Message)
		assert.Zero(t, zosmfErr.Category)
	})

	t.Run("empty body", func(t *testing.T) {
		t.Parallel()

		zosmfErr := zosmf.ParseError(http.StatusInternalServerError, "https://host/zosmf/info", nil)

		assert.Equal(t, http.StatusInternalServerError, zosmfErr.StatusCode)
		assert.Empty(t, zosmfErr.Message)
	})
}

func TestError_Error(t *testing.T) {
	t.Parallel()

	zosmfErr := &zosmf.Error{
		StatusCode: http.StatusNotFound,
		Category:   4,
		ReturnCode: 8,
		Reason:     16,
		Message:    "data set not found",
	}

	msg := zosmfErr.Error()
	assert.Contains(t, msg, "status 404")
	assert.Contains(t, msg, "data set not found")
	assert.Contains(t, msg, "rc: 8")
}

func TestIsAuthError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "unauthorized",
			err:      &zosmf.Error{StatusCode: http.StatusUnauthorized},
			expected: true,
		},
		{
			name:     "forbidden",
			err:      &zosmf.Error{StatusCode: http.StatusForbidden},
			expected: true,
		},
		{
			name:     "wrapped unauthorized",
			err:      fmt.Errorf("logging in: %w", &zosmf.Error{StatusCode: http.StatusUnauthorized}),
			expected: true,
		},
		{
			name:     "not found",
			err:      &zosmf.Error{StatusCode: http.StatusNotFound},
			expected: false,
		},
		{
			name:     "plain error",
			err:      errors.New("boom"),
			expected: false,
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.expected, zosmf.IsAuthError(testCase.err))
		})
	}
}

func TestAsError(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("reading dataset: %w", &zosmf.Error{StatusCode: http.StatusNotFound, Message: "not found"})

	zosmfErr, ok := zosmf.AsError(wrapped)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, zosmfErr.StatusCode)
	assert.Equal(t, "not found", zosmfErr.Message)

	_, ok = zosmf.AsError(errors.New("boom"))
	assert.False(t, ok)
}

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	assert.True(t, zosmf.IsNotFound(&zosmf.Error{StatusCode: http.StatusNotFound}))
	assert.False(t, zosmf.IsNotFound(&zosmf.Error{StatusCode: http.StatusUnauthorized}))
	assert.False(t, zosmf.IsNotFound(errors.New("boom")))
}

func TestTransportError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	transportErr := &zosmf.TransportError{URL: "https://host/zosmf/info", Err: cause}

	require.ErrorIs(t, transportErr, cause)
	assert.Contains(t, transportErr.Error(), "connection refused")
	assert.Contains(t, transportErr.Error(), "https://host/zosmf/info")
}

func TestDecodeError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("unexpected end of JSON input")
	decodeErr := &zosmf.DecodeError{URL: "https://host/zosmf/info", Err: cause}

	require.ErrorIs(t, decodeErr, cause)
	assert.Contains(t, decodeErr.Error(), "https://host/zosmf/info")
}
