package auth_test

import (
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wmcgee3/z-osmf-go/internal/auth"
)

func TestSession(t *testing.T) {
	t.Parallel()
	t.Run("empty session has no cookie", func(t *testing.T) {
		t.Parallel()

		session := auth.NewSession()

		cookie, ok := session.Cookie()
		assert.False(t, ok)
		assert.Empty(t, cookie)
	})

	t.Run("set and clear", func(t *testing.T) {
		t.Parallel()

		session := auth.NewSession()
		session.Set("LtpaToken2=abc123", "ref-1")

		cookie, ok := session.Cookie()
		assert.True(t, ok)
		assert.Equal(t, "LtpaToken2=abc123", cookie)
		assert.Equal(t, "ref-1", session.Ref())

		session.Clear()

		_, ok = session.Cookie()
		assert.False(t, ok)
		assert.Empty(t, session.Ref())
	})

	t.Run("concurrent access", func(t *testing.T) {
		t.Parallel()

		session := auth.NewSession()

		var waitGroup sync.WaitGroup

		for i := 0; i < 50; i++ {
			waitGroup.Add(2)

			go func() {
				defer waitGroup.Done()
				session.Set("LtpaToken2=abc123", "")
			}()

			go func() {
				defer waitGroup.Done()
				_, _ = session.Cookie()
			}()
		}

		waitGroup.Wait()
	})
}

func TestCookieFromHeaders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		setCookies []string
		expected   string
		found      bool
	}{
		{
			name:       "single cookie with attributes",
			setCookies: []string{"LtpaToken2=abc123; Path=/; HttpOnly; Secure"},
			expected:   "LtpaToken2=abc123",
			found:      true,
		},
		{
			name: "multiple cookies join",
			setCookies: []string{
				"LtpaToken2=abc123; Path=/",
				"JSESSIONID=xyz789; HttpOnly",
			},
			expected: "LtpaToken2=abc123; JSESSIONID=xyz789",
			found:    true,
		},
		{
			name:       "no cookies",
			setCookies: nil,
			found:      false,
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			headers := http.Header{}
			for _, value := range testCase.setCookies {
				headers.Add("Set-Cookie", value)
			}

			cookie, ok := auth.CookieFromHeaders(headers)
			assert.Equal(t, testCase.found, ok)
			assert.Equal(t, testCase.expected, cookie)
		})
	}
}
