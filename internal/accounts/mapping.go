package accounts

import (
	"net/url"
	"strconv"

	"github.com/JaimeStill/facility-management/pkg/query"
	"github.com/JaimeStill/facility-management/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "users", "u").
	Project("id", "id").
	Project("username", "username").
	Project("email", "email").
	Project("first_name", "first_name").
	Project("last_name", "last_name").
	Project("password_hash", "password_hash").
	Project("is_active", "is_active").
	Project("is_staff", "is_staff").
	Project("is_superuser", "is_superuser").
	Project("date_joined", "date_joined").
	Project("last_login", "last_login")

var defaultSort = query.SortField{Field: "username"}

const returning = `id, username, email, first_name, last_name, password_hash,
	is_active, is_staff, is_superuser, date_joined, last_login`

func scanUser(s repository.Scanner) (User, error) {
	var u User
	err := s.Scan(
		&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash,
		&u.IsActive, &u.IsStaff, &u.IsSuperuser, &u.DateJoined, &u.LastLogin,
	)
	return u, err
}

// Filters contains optional filtering criteria for user queries.
type Filters struct {
	Active *bool
	Staff  *bool
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	return Filters{
		Active: boolParam(values, "active"),
		Staff:  boolParam(values, "staff"),
	}
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("is_active", f.Active).
		WhereEquals("is_staff", f.Staff)
}

func boolParam(values url.Values, name string) *bool {
	v := values.Get(name)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}
	return &b
}
