// Package auth manages the z/OSMF session credential.
package auth

import (
	"net/http"
	"strings"
	"sync"
)

// Session stores the cookie of an authenticated z/OSMF session. It is safe
// for concurrent use.
type Session struct {
	mutex  sync.RWMutex
	cookie string
	ref    string
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{}
}

// Cookie returns the stored session cookie. The second return is false when
// no session is established.
func (s *Session) Cookie() (string, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.cookie, s.cookie != ""
}

// Set stores the session cookie and reference returned by a login.
func (s *Session) Set(cookie, ref string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.cookie = cookie
	s.ref = ref
}

// Ref returns the session reference header value, if the server sent one.
func (s *Session) Ref() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.ref
}

// Clear drops the stored session.
func (s *Session) Clear() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.cookie = ""
	s.ref = ""
}

// CookieFromHeaders extracts the session cookie pairs from the Set-Cookie
// headers of an authentication response. Cookie attributes like Path and
// HttpOnly are dropped; multiple cookies are joined the way a Cookie request
// header expects.
func CookieFromHeaders(headers http.Header) (string, bool) {
	var pairs []string

	for _, setCookie := range headers.Values("Set-Cookie") {
		pair, _, _ := strings.Cut(setCookie, ";")

		pair = strings.TrimSpace(pair)
		if pair != "" {
			pairs = append(pairs, pair)
		}
	}

	if len(pairs) == 0 {
		return "", false
	}

	return strings.Join(pairs, "; "), true
}
