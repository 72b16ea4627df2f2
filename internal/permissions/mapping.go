package permissions

import (
	"net/url"

	"github.com/JaimeStill/facility-management/pkg/query"
	"github.com/JaimeStill/facility-management/pkg/repository"
	"github.com/google/uuid"
)

var projection = query.
	NewProjectionMap("public", "grants", "g").
	Project("id", "id").
	Project("user_id", "user_id").
	Project("facility_id", "facility_id").
	Project("level", "level").
	Project("granted_by", "granted_by").
	Project("created_at", "created_at")

var defaultSort = query.SortField{Field: "created_at", Descending: true}

const returning = "id, user_id, facility_id, level, granted_by, created_at"

func scanGrant(s repository.Scanner) (Grant, error) {
	var g Grant
	err := s.Scan(&g.ID, &g.UserID, &g.FacilityID, &g.Level, &g.GrantedBy, &g.CreatedAt)
	return g, err
}

// Filters contains optional filtering criteria for grant queries.
type Filters struct {
	UserID     *uuid.UUID
	FacilityID *uuid.UUID
	Level      *Level
}

// FiltersFromQuery extracts filter values from URL query parameters.
// Malformed identifiers and levels are ignored.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters
	if id, err := uuid.Parse(values.Get("user_id")); err == nil {
		f.UserID = &id
	}
	if id, err := uuid.Parse(values.Get("facility_id")); err == nil {
		f.FacilityID = &id
	}
	if l, err := ParseLevel(values.Get("level")); err == nil {
		f.Level = &l
	}
	return f
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("user_id", f.UserID).
		WhereEquals("facility_id", f.FacilityID).
		WhereEquals("level", f.Level)
}
