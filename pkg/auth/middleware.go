package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JaimeStill/facility-management/pkg/handlers"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("staff access required")
)

// Authenticator resolves the caller from a bearer token or, when a cookie
// name is configured, from that cookie.
type Authenticator struct {
	tokens *Tokens
	cookie string
	logger *slog.Logger
}

// NewAuthenticator creates an Authenticator. An empty cookie disables cookie lookup.
func NewAuthenticator(tokens *Tokens, cookie string, logger *slog.Logger) *Authenticator {
	return &Authenticator{
		tokens: tokens,
		cookie: cookie,
		logger: logger,
	}
}

// Middleware rejects requests without a valid access token with 401.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, err := a.authenticate(r)
		if err != nil {
			w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
			handlers.RespondError(w, a.logger, http.StatusUnauthorized, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
	})
}

// Require wraps a single handler with Middleware.
func (a *Authenticator) Require(next http.HandlerFunc) http.HandlerFunc {
	return a.Middleware(next).ServeHTTP
}

// RequireStaff rejects authenticated non-staff callers with 403. It must run
// after Middleware.
func RequireStaff(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := FromContext(r.Context())
			if !ok {
				handlers.RespondError(w, logger, http.StatusUnauthorized, ErrUnauthenticated)
				return
			}
			if !p.Staff {
				handlers.RespondError(w, logger, http.StatusForbidden, ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (a *Authenticator) authenticate(r *http.Request) (Principal, error) {
	token := bearer(r)
	if token == "" && a.cookie != "" {
		if c, err := r.Cookie(a.cookie); err == nil {
			token = c.Value
		}
	}
	if token == "" {
		return Principal{}, ErrUnauthenticated
	}

	claims, err := a.tokens.Parse(token, AccessToken)
	if err != nil {
		return Principal{}, err
	}

	id, _ := claims.UserID()
	return Principal{
		ID:       id,
		Username: claims.Username,
		Staff:    claims.Staff,
	}, nil
}

func bearer(r *http.Request) string {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
