package accounts

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/facility-management/pkg/auth"
	"github.com/JaimeStill/facility-management/pkg/handlers"
	"github.com/JaimeStill/facility-management/pkg/routes"
	"github.com/google/uuid"
)

// Handler provides HTTP handlers for registration, login, and the caller's
// own account.
type Handler struct {
	sys    System
	tokens *auth.Tokens
	authn   *auth.Authenticator
	session *auth.Session
	logger  *slog.Logger
}

// NewHandler creates a new accounts HTTP handler. When session is non-nil,
// login and refresh also store the access token in the session cookie and
// logout clears it.
func NewHandler(sys System, tokens *auth.Tokens, authn *auth.Authenticator, session *auth.Session, logger *slog.Logger) *Handler {
	return &Handler{
		sys:     sys,
		tokens:  tokens,
		authn:   authn,
		session: session,
		logger:  logger,
	}
}

// Routes returns the route group configuration for authentication endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Tags:        []string{"Auth"},
		Description: "Registration, token issuance, and the current user",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/register", Handler: h.Register, OpenAPI: Spec.Register},
			{Method: "POST", Pattern: "/login", Handler: h.Login, OpenAPI: Spec.Login},
			{Method: "POST", Pattern: "/refresh", Handler: h.Refresh, OpenAPI: Spec.Refresh},
			{Method: "POST", Pattern: "/logout", Handler: h.authn.Require(h.Logout), OpenAPI: Spec.Logout},
			{Method: "GET", Pattern: "/me", Handler: h.authn.Require(h.Me), OpenAPI: Spec.Me},
			{Method: "PUT", Pattern: "/me", Handler: h.authn.Require(h.UpdateMe), OpenAPI: Spec.UpdateMe},
			{Method: "POST", Pattern: "/password", Handler: h.authn.Require(h.Password), OpenAPI: Spec.Password},
		},
		Schemas: Spec.Schemas(),
	}
}

// Register handles POST /api/auth/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var cmd RegisterCommand
	if err := handlers.DecodeJSON(r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	u, err := h.sys.Register(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, u)
}

// Login handles POST /api/auth/login and issues an access/refresh pair.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var cmd LoginCommand
	if err := handlers.DecodeJSON(r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	u, err := h.sys.Authenticate(r.Context(), cmd.Username, cmd.Password)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	sub := subject(u)
	access, claims, err := h.tokens.Issue(sub, auth.AccessToken)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}
	refresh, _, err := h.tokens.Issue(sub, auth.RefreshToken)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	if h.session != nil {
		h.session.Set(w, r, access, claims.ExpiresAt.Time)
	}
	handlers.RespondJSON(w, http.StatusOK, TokenPair{Access: access, Refresh: refresh, User: u})
}

// Refresh handles POST /api/auth/refresh. The user is reloaded so disabled
// accounts and changed staff flags are honoured.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var cmd RefreshCommand
	if err := handlers.DecodeJSON(r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	claims, jti, err := h.parseRefresh(cmd.Refresh)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, err)
		return
	}

	revoked, err := h.sys.IsRevoked(r.Context(), jti)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}
	if revoked {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, ErrTokenRevoked)
		return
	}

	id, _ := claims.UserID()
	u, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, fmt.Errorf("%w: %v", auth.ErrInvalidToken, err))
		return
	}
	if !u.IsActive {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, ErrInactive)
		return
	}

	access, issued, err := h.tokens.Issue(subject(u), auth.AccessToken)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	if h.session != nil {
		h.session.Set(w, r, access, issued.ExpiresAt.Time)
	}
	handlers.RespondJSON(w, http.StatusOK, AccessResponse{Access: access})
}

// Logout handles POST /api/auth/logout by revoking the submitted refresh token.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.FromContext(r.Context())

	var cmd RefreshCommand
	if err := handlers.DecodeJSON(r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	claims, jti, err := h.parseRefresh(cmd.Refresh)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, err)
		return
	}

	owner, _ := claims.UserID()
	if owner != p.ID {
		handlers.RespondError(w, h.logger, MapHTTPStatus(ErrTokenOwner), ErrTokenOwner)
		return
	}

	if err := h.sys.RevokeToken(r.Context(), jti, owner, claims.ExpiresAt.Time); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	if h.session != nil {
		h.session.Clear(w, r)
	}
	handlers.RespondNoContent(w)
}

// Me handles GET /api/auth/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.FromContext(r.Context())

	u, err := h.sys.Find(r.Context(), p.ID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, u)
}

// UpdateMe handles PUT /api/auth/me.
func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.FromContext(r.Context())

	var cmd UpdateCommand
	if err := handlers.DecodeJSON(r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	u, err := h.sys.UpdateProfile(r.Context(), p.ID, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, u)
}

// Password handles POST /api/auth/password.
func (h *Handler) Password(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.FromContext(r.Context())

	var cmd PasswordCommand
	if err := handlers.DecodeJSON(r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := h.sys.ChangePassword(r.Context(), p.ID, cmd); err != nil {
		status := MapHTTPStatus(err)
		if status == http.StatusUnauthorized {
			// the caller is authenticated; a wrong old password is a bad request
			status = http.StatusBadRequest
		}
		handlers.RespondError(w, h.logger, status, err)
		return
	}

	handlers.RespondNoContent(w)
}

func (h *Handler) parseRefresh(token string) (*auth.Claims, uuid.UUID, error) {
	if token == "" {
		return nil, uuid.Nil, fmt.Errorf("%w: refresh token required", auth.ErrInvalidToken)
	}

	claims, err := h.tokens.Parse(token, auth.RefreshToken)
	if err != nil {
		return nil, uuid.Nil, err
	}

	jti, err := uuid.Parse(claims.ID)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%w: bad token id", auth.ErrInvalidToken)
	}
	return claims, jti, nil
}

func subject(u *User) auth.Subject {
	return auth.Subject{
		ID:       u.ID,
		Username: u.Username,
		Staff:    u.Staff(),
	}
}
