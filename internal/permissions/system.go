package permissions

import (
	"context"

	"github.com/JaimeStill/facility-management/pkg/auth"
	"github.com/JaimeStill/facility-management/pkg/pagination"
	"github.com/google/uuid"
)

// Checker answers whether a principal holds at least a level on a facility.
// Staff principals are always allowed.
type Checker interface {
	Allowed(ctx context.Context, p auth.Principal, facilityID uuid.UUID, required Level) (bool, error)
}

// System defines grant storage and permission checks.
type System interface {
	Checker

	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Grant], error)
	Find(ctx context.Context, id uuid.UUID) (*Grant, error)
	Create(ctx context.Context, cmd CreateCommand, grantedBy uuid.UUID) (*Grant, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Grant, error)
	Delete(ctx context.Context, id uuid.UUID) error
	LevelFor(ctx context.Context, userID, facilityID uuid.UUID) (Level, bool, error)
	Count(ctx context.Context) (int, error)
}
