package auth

import (
	"net/http"
	"time"
)

// Session writes the access token into the browser cookie that a
// cookie-enabled Authenticator reads. The cookie is scoped to path so only
// requests under it carry the token.
type Session struct {
	name string
	path string
}

// NewSession creates a session cookie writer for name scoped to path.
func NewSession(name, path string) *Session {
	if path == "" {
		path = "/"
	}
	return &Session{name: name, path: path}
}

// Name returns the cookie name.
func (s *Session) Name() string {
	return s.name
}

// Set stores token in the session cookie until expires.
func (s *Session) Set(w http.ResponseWriter, r *http.Request, token string, expires time.Time) {
	http.SetCookie(w, s.cookie(r, token, expires, 0))
}

// Clear expires the session cookie.
func (s *Session) Clear(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, s.cookie(r, "", time.Unix(0, 0), -1))
}

func (s *Session) cookie(r *http.Request, value string, expires time.Time, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     s.name,
		Value:    value,
		Path:     s.path,
		Expires:  expires,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
	}
}
