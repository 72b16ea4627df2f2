// Package admin provides the staff-only administrative handler group: an
// HTML dashboard plus JSON views over accounts, facilities, grants, the
// running configuration, and the mounted routing table.
package admin

import (
	"embed"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/facility-management/internal/accounts"
	"github.com/JaimeStill/facility-management/internal/facilities"
	"github.com/JaimeStill/facility-management/internal/permissions"
	"github.com/JaimeStill/facility-management/pkg/auth"
	"github.com/JaimeStill/facility-management/pkg/handlers"
	"github.com/JaimeStill/facility-management/pkg/pagination"
	"github.com/JaimeStill/facility-management/pkg/routes"
	"github.com/JaimeStill/facility-management/pkg/web"
	"github.com/google/uuid"
)

//go:embed templates
var templateFS embed.FS

const layout = "admin.html"

var dashboardPage = web.PageDef{Template: "dashboard.html", Title: "Dashboard"}

// Deps carries everything the admin group reads from.
type Deps struct {
	Accounts    accounts.System
	Facilities  facilities.System
	Permissions permissions.System

	// Settings is the redacted configuration snapshot served by GET /config.
	Settings any

	// Prefixes reports the router's mounted prefixes at request time.
	Prefixes func() []string

	Logger     *slog.Logger
	Pagination pagination.Config
	BasePath   string
	Title      string
	Version    string
}

// Handler serves the admin group. Every route expects the authentication
// and staff middleware to have run.
type Handler struct {
	accounts    accounts.System
	facilities  facilities.System
	permissions permissions.System
	settings    any
	prefixes    func() []string
	templates   *web.TemplateSet
	logger      *slog.Logger
	pagination  pagination.Config
	title       string
	version     string
}

// Dashboard is the data rendered by the dashboard page.
type Dashboard struct {
	Users      int
	Facilities int
	Grants     int
	Version    string
	Username   string
	Prefixes   []string
}

// NewHandler parses the embedded templates and creates the admin handler.
func NewHandler(d Deps) (*Handler, error) {
	ts, err := web.NewTemplateSet(templateFS, "templates/layouts/*.html", "templates/pages", d.BasePath, []web.PageDef{dashboardPage})
	if err != nil {
		return nil, fmt.Errorf("admin templates: %w", err)
	}

	prefixes := d.Prefixes
	if prefixes == nil {
		prefixes = func() []string { return nil }
	}

	return &Handler{
		accounts:    d.Accounts,
		facilities:  d.Facilities,
		permissions: d.Permissions,
		settings:    d.Settings,
		prefixes:    prefixes,
		templates:   ts,
		logger:      d.Logger,
		pagination:  d.Pagination,
		title:       d.Title,
		version:     d.Version,
	}, nil
}

// Routes returns the admin route group. None of these routes are published
// in the OpenAPI document.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Tags:        []string{"Admin"},
		Description: "Staff administration",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.Dashboard},
			{Method: "GET", Pattern: "/users", Handler: h.Users},
			{Method: "PUT", Pattern: "/users/{id}", Handler: h.UpdateUser},
			{Method: "DELETE", Pattern: "/users/{id}", Handler: h.DeleteUser},
			{Method: "GET", Pattern: "/facilities", Handler: h.Facilities},
			{Method: "GET", Pattern: "/permissions", Handler: h.Permissions},
			{Method: "GET", Pattern: "/config", Handler: h.Config},
			{Method: "GET", Pattern: "/routes", Handler: h.Prefixes},
		},
	}
}

// Dashboard handles GET /admin/.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, _ := auth.FromContext(ctx)

	data := Dashboard{
		Version:  h.version,
		Username: p.Username,
		Prefixes: h.prefixes(),
	}

	var err error
	if data.Users, err = h.accounts.Count(ctx); err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}
	if data.Facilities, err = h.facilities.Count(ctx); err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}
	if data.Grants, err = h.permissions.Count(ctx); err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	page := dashboardPage
	if h.title != "" {
		page.Title = h.title
	}

	if err := h.templates.Render(w, http.StatusOK, layout, page, data); err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
	}
}

// Users handles GET /admin/users.
func (h *Handler) Users(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)

	result, err := h.accounts.List(r.Context(), page, accounts.FiltersFromQuery(r.URL.Query()))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// UpdateUser handles PUT /admin/users/{id}, toggling is_active and is_staff.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.target(w, r)
	if !ok {
		return
	}

	var cmd accounts.FlagsCommand
	if err := handlers.DecodeJSON(r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	u, err := h.accounts.SetFlags(r.Context(), id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, accounts.MapHTTPStatus(err), err)
		return
	}

	h.logger.Info("user flags changed", "user_id", id, "by", principal(r).Username)
	handlers.RespondJSON(w, http.StatusOK, u)
}

// DeleteUser handles DELETE /admin/users/{id}.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.target(w, r)
	if !ok {
		return
	}

	if err := h.accounts.Delete(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, accounts.MapHTTPStatus(err), err)
		return
	}

	h.logger.Info("user deleted", "user_id", id, "by", principal(r).Username)
	handlers.RespondNoContent(w)
}

// Facilities handles GET /admin/facilities. Staff see every facility.
func (h *Handler) Facilities(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)

	result, err := h.facilities.List(r.Context(), page, facilities.FiltersFromQuery(r.URL.Query()))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Permissions handles GET /admin/permissions.
func (h *Handler) Permissions(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)

	result, err := h.permissions.List(r.Context(), page, permissions.FiltersFromQuery(r.URL.Query()))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Config handles GET /admin/config.
func (h *Handler) Config(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.settings)
}

// Prefixes handles GET /admin/routes.
func (h *Handler) Prefixes(w http.ResponseWriter, r *http.Request) {
	prefixes := h.prefixes()
	if prefixes == nil {
		prefixes = []string{}
	}
	handlers.RespondJSON(w, http.StatusOK, map[string][]string{"prefixes": prefixes})
}

// target parses {id} and refuses the caller's own account.
func (h *Handler) target(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return uuid.Nil, false
	}
	if id == principal(r).ID {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrSelf)
		return uuid.Nil, false
	}
	return id, true
}

func principal(r *http.Request) auth.Principal {
	p, _ := auth.FromContext(r.Context())
	return p
}
