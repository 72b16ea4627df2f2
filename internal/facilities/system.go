package facilities

import (
	"context"

	"github.com/JaimeStill/facility-management/pkg/pagination"
	"github.com/google/uuid"
)

// System defines the interface for facility storage and retrieval operations.
type System interface {
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Facility], error)
	Find(ctx context.Context, id uuid.UUID) (*Facility, error)
	Create(ctx context.Context, cmd CreateCommand, creator uuid.UUID) (*Facility, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Facility, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
}
