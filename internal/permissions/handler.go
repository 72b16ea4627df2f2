package permissions

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/facility-management/pkg/auth"
	"github.com/JaimeStill/facility-management/pkg/handlers"
	"github.com/JaimeStill/facility-management/pkg/pagination"
	"github.com/JaimeStill/facility-management/pkg/routes"
	"github.com/google/uuid"
)

// Handler provides HTTP handlers for grant management and permission checks.
// Every route expects the authentication middleware to have run.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a new permissions HTTP handler.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger,
		pagination: pagination,
	}
}

// Routes returns the route group configuration for permission endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Tags:        []string{"Permissions"},
		Description: "Facility access grants",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: Spec.List},
			{Method: "POST", Pattern: "", Handler: h.Create, OpenAPI: Spec.Create},
			{Method: "GET", Pattern: "/check", Handler: h.Check, OpenAPI: Spec.Check},
			{Method: "GET", Pattern: "/levels", Handler: h.Levels, OpenAPI: Spec.Levels},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find, OpenAPI: Spec.Find},
			{Method: "PUT", Pattern: "/{id}", Handler: h.Update, OpenAPI: Spec.Update},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete, OpenAPI: Spec.Delete},
		},
		Schemas: Spec.Schemas(),
	}
}

// List handles GET /api/permissions. Non-staff callers see their own grants,
// or every grant on a facility they administer when filtering by it.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.FromContext(r.Context())
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	if !p.Staff {
		admin := false
		if filters.FacilityID != nil {
			ok, err := h.sys.Allowed(r.Context(), p, *filters.FacilityID, Admin)
			if err != nil {
				handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
				return
			}
			admin = ok
		}
		if !admin {
			filters.UserID = &p.ID
		}
	}

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create handles POST /api/permissions.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.FromContext(r.Context())

	var cmd CreateCommand
	if err := handlers.DecodeJSON(r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	if err := cmd.validate(); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	if !h.authorize(w, r, p, cmd.FacilityID) {
		return
	}

	g, err := h.sys.Create(r.Context(), cmd, p.ID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, g)
}

// Find handles GET /api/permissions/{id}. The grantee may read their own grant.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.FromContext(r.Context())

	g, ok := h.load(w, r)
	if !ok {
		return
	}

	if g.UserID != p.ID && !h.authorize(w, r, p, g.FacilityID) {
		return
	}

	handlers.RespondJSON(w, http.StatusOK, g)
}

// Update handles PUT /api/permissions/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.FromContext(r.Context())

	g, ok := h.load(w, r)
	if !ok {
		return
	}

	var cmd UpdateCommand
	if err := handlers.DecodeJSON(r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if !h.authorize(w, r, p, g.FacilityID) {
		return
	}

	updated, err := h.sys.Update(r.Context(), g.ID, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/permissions/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.FromContext(r.Context())

	g, ok := h.load(w, r)
	if !ok {
		return
	}

	if !h.authorize(w, r, p, g.FacilityID) {
		return
	}

	if err := h.sys.Delete(r.Context(), g.ID); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondNoContent(w)
}

// Check handles GET /api/permissions/check?facility_id=&level= for the caller.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.FromContext(r.Context())

	facilityID, err := uuid.Parse(r.URL.Query().Get("facility_id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: facility_id: %v", ErrInvalid, err))
		return
	}

	level := View
	if raw := r.URL.Query().Get("level"); raw != "" {
		if level, err = ParseLevel(raw); err != nil {
			handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
			return
		}
	}

	allowed, err := h.sys.Allowed(r.Context(), p, facilityID, level)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, CheckResult{
		FacilityID: facilityID,
		Level:      level,
		Allowed:    allowed,
	})
}

// Levels handles GET /api/permissions/levels.
func (h *Handler) Levels(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, Levels)
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (*Grant, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return nil, false
	}

	g, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return nil, false
	}
	return g, true
}

// authorize writes 403 unless p is staff or administers facilityID.
func (h *Handler) authorize(w http.ResponseWriter, r *http.Request, p auth.Principal, facilityID uuid.UUID) bool {
	ok, err := h.sys.Allowed(r.Context(), p, facilityID, Admin)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return false
	}
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusForbidden, ErrForbidden)
		return false
	}
	return true
}
