// Package permissions stores per-facility access grants and answers whether a
// caller may act on a facility at a given level.
package permissions

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Level is an ordered access level: view < manage < admin.
type Level string

const (
	View   Level = "view"
	Manage Level = "manage"
	Admin  Level = "admin"
)

// Levels lists every level in ascending order.
var Levels = []Level{View, Manage, Admin}

// Rank orders levels. Unknown levels rank 0 and satisfy nothing.
func (l Level) Rank() int {
	switch l {
	case View:
		return 1
	case Manage:
		return 2
	case Admin:
		return 3
	}
	return 0
}

// Satisfies reports whether holding l grants required.
func (l Level) Satisfies(required Level) bool {
	return l.Rank() > 0 && required.Rank() > 0 && l.Rank() >= required.Rank()
}

// ParseLevel validates a level name.
func ParseLevel(s string) (Level, error) {
	l := Level(s)
	if l.Rank() == 0 {
		return "", fmt.Errorf("%w: unknown level %q", ErrInvalidLevel, s)
	}
	return l, nil
}

// Grant is one user's access level on one facility.
type Grant struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	FacilityID uuid.UUID  `json:"facility_id"`
	Level      Level      `json:"level"`
	GrantedBy  *uuid.UUID `json:"granted_by"`
	CreatedAt  time.Time  `json:"created_at"`
}

// CreateCommand contains the data required to grant access.
type CreateCommand struct {
	UserID     uuid.UUID `json:"user_id"`
	FacilityID uuid.UUID `json:"facility_id"`
	Level      Level     `json:"level"`
}

// UpdateCommand changes the level of an existing grant.
type UpdateCommand struct {
	Level Level `json:"level"`
}

// CheckResult answers GET /check.
type CheckResult struct {
	FacilityID uuid.UUID `json:"facility_id"`
	Level      Level     `json:"level"`
	Allowed    bool      `json:"allowed"`
}

func (c CreateCommand) validate() error {
	if c.UserID == uuid.Nil {
		return fmt.Errorf("%w: user_id required", ErrInvalid)
	}
	if c.FacilityID == uuid.Nil {
		return fmt.Errorf("%w: facility_id required", ErrInvalid)
	}
	_, err := ParseLevel(string(c.Level))
	return err
}
