// Package infrastructure assembles the shared systems every handler group
// depends on: lifecycle coordination, logging, the database pool, metrics,
// and token authentication.
package infrastructure

import (
	"fmt"
	"log/slog"

	"github.com/JaimeStill/facility-management/internal/config"
	"github.com/JaimeStill/facility-management/pkg/auth"
	"github.com/JaimeStill/facility-management/pkg/database"
	"github.com/JaimeStill/facility-management/pkg/lifecycle"
	"github.com/JaimeStill/facility-management/pkg/logging"
	"github.com/JaimeStill/facility-management/pkg/metrics"
)

// Infrastructure holds the core systems required by all handler groups.
type Infrastructure struct {
	Lifecycle     *lifecycle.Coordinator
	Logger        *slog.Logger
	Database      database.System
	Metrics       *metrics.Metrics
	Tokens        *auth.Tokens

	// Authenticator accepts bearer tokens only. Cookie sessions are scoped
	// to the admin group, which builds its own authenticator.
	Authenticator *auth.Authenticator
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	logger := logging.New(&cfg.Logging)

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	tokens := auth.NewTokens(&cfg.Auth)

	return &Infrastructure{
		Lifecycle:     lifecycle.New(),
		Logger:        logger,
		Database:      db,
		Metrics:       metrics.New(&cfg.Metrics),
		Tokens:        tokens,
		Authenticator: auth.NewAuthenticator(tokens, "", logger.With("system", "auth")),
	}, nil
}

// Start verifies the database connection and registers its shutdown.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	return nil
}
