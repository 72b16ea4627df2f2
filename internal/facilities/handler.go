package facilities

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/facility-management/internal/permissions"
	"github.com/JaimeStill/facility-management/pkg/auth"
	"github.com/JaimeStill/facility-management/pkg/handlers"
	"github.com/JaimeStill/facility-management/pkg/pagination"
	"github.com/JaimeStill/facility-management/pkg/routes"
	"github.com/google/uuid"
)

// Handler provides HTTP handlers for facility CRUD. Every route expects the
// authentication middleware to have run.
type Handler struct {
	sys        System
	perms      permissions.Checker
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a new facilities HTTP handler.
func NewHandler(sys System, perms permissions.Checker, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		perms:      perms,
		logger:     logger,
		pagination: pagination,
	}
}

// Routes returns the route group configuration for facility endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Tags:        []string{"Facilities"},
		Description: "Facility catalog",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: Spec.List},
			{Method: "POST", Pattern: "", Handler: h.Create, OpenAPI: Spec.Create},
			{Method: "POST", Pattern: "/search", Handler: h.Search, OpenAPI: Spec.Search},
			{Method: "GET", Pattern: "/types", Handler: h.Types, OpenAPI: Spec.Types},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find, OpenAPI: Spec.Find},
			{Method: "PUT", Pattern: "/{id}", Handler: h.Update, OpenAPI: Spec.Update},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete, OpenAPI: Spec.Delete},
		},
		Schemas: Spec.Schemas(),
	}
}

// List handles GET /api/facilities.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	h.list(w, r, page)
}

// Search handles POST /api/facilities/search with a PageRequest body.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var page pagination.PageRequest
	if err := handlers.DecodeJSON(r, &page); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	h.list(w, r, page)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, page pagination.PageRequest) {
	p, _ := auth.FromContext(r.Context())
	filters := FiltersFromQuery(r.URL.Query())
	if !p.Staff {
		filters.VisibleTo = &p.ID
	}

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create handles POST /api/facilities. Staff only; the creator becomes the
// facility's first admin.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.FromContext(r.Context())
	if !p.Staff {
		handlers.RespondError(w, h.logger, http.StatusForbidden, auth.ErrForbidden)
		return
	}

	var cmd CreateCommand
	if err := handlers.DecodeJSON(r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	f, err := h.sys.Create(r.Context(), cmd, p.ID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, f)
}

// Find handles GET /api/facilities/{id}. Requires view.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, ok := h.authorize(w, r, permissions.View)
	if !ok {
		return
	}

	f, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, f)
}

// Update handles PUT /api/facilities/{id}. Requires manage.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.authorize(w, r, permissions.Manage)
	if !ok {
		return
	}

	var cmd UpdateCommand
	if err := handlers.DecodeJSON(r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	f, err := h.sys.Update(r.Context(), id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, f)
}

// Delete handles DELETE /api/facilities/{id}. Requires admin.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.authorize(w, r, permissions.Admin)
	if !ok {
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondNoContent(w)
}

// Types handles GET /api/facilities/types.
func (h *Handler) Types(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, Types)
}

// authorize parses the {id} path value and checks the caller holds level on
// it, writing the error response when not.
func (h *Handler) authorize(w http.ResponseWriter, r *http.Request, level permissions.Level) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return uuid.Nil, false
	}

	p, _ := auth.FromContext(r.Context())
	allowed, err := h.perms.Allowed(r.Context(), p, id, level)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return uuid.Nil, false
	}
	if !allowed {
		handlers.RespondError(w, h.logger, http.StatusForbidden, ErrForbidden)
		return uuid.Nil, false
	}
	return id, true
}
