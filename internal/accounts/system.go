package accounts

import (
	"context"
	"time"

	"github.com/JaimeStill/facility-management/pkg/pagination"
	"github.com/google/uuid"
)

// System defines account storage, credential checks, and refresh token
// revocation.
type System interface {
	Register(ctx context.Context, cmd RegisterCommand) (*User, error)
	Authenticate(ctx context.Context, username, password string) (*User, error)
	Find(ctx context.Context, id uuid.UUID) (*User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*User, error)
	ChangePassword(ctx context.Context, id uuid.UUID, cmd PasswordCommand) error

	RevokeToken(ctx context.Context, jti, userID uuid.UUID, expires time.Time) error
	IsRevoked(ctx context.Context, jti uuid.UUID) (bool, error)

	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[User], error)
	SetFlags(ctx context.Context, id uuid.UUID, cmd FlagsCommand) (*User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
}
