package api

import (
	"github.com/JaimeStill/facility-management/internal/config"
	"github.com/JaimeStill/facility-management/internal/infrastructure"
	"github.com/JaimeStill/facility-management/pkg/pagination"
)

// Runtime extends Infrastructure with handler-group settings.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination pagination.Config
}

// NewRuntime creates a runtime whose logger is tagged with the handler
// group name.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure, group string) *Runtime {
	scoped := *infra
	scoped.Logger = infra.Logger.With("module", group)

	return &Runtime{
		Infrastructure: &scoped,
		Pagination:     cfg.API.Pagination,
	}
}
