package api

import (
	"github.com/JaimeStill/facility-management/internal/accounts"
	"github.com/JaimeStill/facility-management/internal/config"
	"github.com/JaimeStill/facility-management/internal/facilities"
	"github.com/JaimeStill/facility-management/internal/permissions"
)

// Domain holds the domain systems shared by the handler groups. The admin
// group reads from all three.
type Domain struct {
	Accounts    accounts.System
	Facilities  facilities.System
	Permissions permissions.System
}

// NewDomain creates all domain systems on the runtime's connection pool.
func NewDomain(cfg *config.Config, runtime *Runtime) *Domain {
	db := runtime.Database.Connection()

	return &Domain{
		Accounts: accounts.New(
			db,
			runtime.Logger,
			runtime.Pagination,
			accounts.PolicyFromConfig(&cfg.Auth),
		),
		Facilities: facilities.New(
			db,
			runtime.Logger,
			runtime.Pagination,
		),
		Permissions: permissions.New(
			db,
			runtime.Logger,
			runtime.Pagination,
		),
	}
}
