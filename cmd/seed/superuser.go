package main

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/JaimeStill/facility-management/pkg/auth"
)

// SuperuserSeeder creates or promotes an administrative account.
type SuperuserSeeder struct {
	Username  string
	Email     string
	Password  string
	Cost      int
	MinLength int
}

func (s *SuperuserSeeder) Name() string {
	return "superuser"
}

func (s *SuperuserSeeder) Description() string {
	return "Creates a staff superuser, or resets an existing one's password and flags"
}

// Seed upserts the account by username. An existing account keeps its id
// and email but is reactivated and promoted.
func (s *SuperuserSeeder) Seed(ctx context.Context, tx *sql.Tx) error {
	if err := s.validate(); err != nil {
		return err
	}

	hash, err := auth.HashPassword(s.Password, s.Cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	const q = `
		INSERT INTO users (username, email, password_hash, is_active, is_staff, is_superuser)
		VALUES ($1, $2, $3, TRUE, TRUE, TRUE)
		ON CONFLICT (username) DO UPDATE SET
			password_hash = EXCLUDED.password_hash,
			is_active = TRUE,
			is_staff = TRUE,
			is_superuser = TRUE`

	_, err = tx.ExecContext(ctx, q, s.Username, strings.ToLower(s.Email), hash)
	return err
}

func (s *SuperuserSeeder) validate() error {
	if strings.TrimSpace(s.Username) == "" {
		return fmt.Errorf("superuser username required")
	}
	if strings.TrimSpace(s.Email) == "" {
		return fmt.Errorf("superuser email required")
	}
	if len(s.Password) < s.MinLength {
		return fmt.Errorf("superuser password must be at least %d characters", s.MinLength)
	}
	if len(s.Password) > auth.MaxPasswordBytes {
		return fmt.Errorf("superuser password exceeds %d bytes", auth.MaxPasswordBytes)
	}
	return nil
}
