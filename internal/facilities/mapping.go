package facilities

import (
	"net/url"
	"strconv"

	"github.com/JaimeStill/facility-management/pkg/query"
	"github.com/JaimeStill/facility-management/pkg/repository"
	"github.com/google/uuid"
)

var projection = query.
	NewProjectionMap("public", "facilities", "f").
	Project("id", "id").
	Project("name", "name").
	Project("code", "code").
	Project("type", "type").
	Project("address", "address").
	Project("city", "city").
	Project("capacity", "capacity").
	Project("description", "description").
	Project("is_active", "is_active").
	Project("created_by", "created_by").
	Project("created_at", "created_at").
	Project("updated_at", "updated_at")

var defaultSort = query.SortField{Field: "name"}

const returning = `id, name, code, type, address, city, capacity, description,
	is_active, created_by, created_at, updated_at`

func scanFacility(s repository.Scanner) (Facility, error) {
	var f Facility
	err := s.Scan(
		&f.ID, &f.Name, &f.Code, &f.Type, &f.Address, &f.City, &f.Capacity,
		&f.Description, &f.IsActive, &f.CreatedBy, &f.CreatedAt, &f.UpdatedAt,
	)
	return f, err
}

// Filters contains optional filtering criteria for facility queries.
// VisibleTo restricts results to facilities the user holds any grant on; it
// is set by the handler, never from the query string.
type Filters struct {
	Type      *Type
	City      *string
	Active    *bool
	VisibleTo *uuid.UUID
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters
	if t := Type(values.Get("type")); t.Valid() {
		f.Type = &t
	}
	if c := values.Get("city"); c != "" {
		f.City = &c
	}
	if a, err := strconv.ParseBool(values.Get("active")); err == nil {
		f.Active = &a
	}
	return f
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	b.
		WhereEquals("type", f.Type).
		WhereContains("city", f.City).
		WhereEquals("is_active", f.Active)

	if f.VisibleTo != nil {
		b.WhereSubquery("id", "SELECT facility_id FROM grants WHERE user_id = $%d", *f.VisibleTo)
	}
	return b
}
