package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/JaimeStill/facility-management/pkg/auth"
	"github.com/JaimeStill/facility-management/pkg/pagination"
	"github.com/JaimeStill/facility-management/pkg/query"
	"github.com/JaimeStill/facility-management/pkg/repository"
	"github.com/google/uuid"
)

// Policy holds the password rules the repository enforces.
type Policy struct {
	MinPasswordLength int
	BcryptCost        int
}

// PolicyFromConfig extracts the password policy from the auth config.
func PolicyFromConfig(cfg *auth.Config) Policy {
	return Policy{
		MinPasswordLength: cfg.MinPasswordLength,
		BcryptCost:        cfg.BcryptCost,
	}
}

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
	policy     Policy

	// dummy is compared against when a username does not exist so unknown
	// and known usernames cost the same.
	dummy string
}

// New creates a new accounts repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config, policy Policy) System {
	dummy, _ := auth.HashPassword("unused-password", policy.BcryptCost)
	return &repo{
		db:         db,
		logger:     logger.With("system", "accounts"),
		pagination: pagination,
		policy:     policy,
		dummy:      dummy,
	}
}

func (r *repo) Register(ctx context.Context, cmd RegisterCommand) (*User, error) {
	if err := cmd.validate(r.policy.MinPasswordLength); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(cmd.Password, r.policy.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	q := `
		INSERT INTO users (username, email, first_name, last_name, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + returning

	u, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (User, error) {
		args := []any{cmd.Username, cmd.Email, cmd.FirstName, cmd.LastName, hash}
		return repository.QueryOne(ctx, tx, q, args, scanUser)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("user registered", "id", u.ID, "username", u.Username)
	return &u, nil
}

func (r *repo) Authenticate(ctx context.Context, username, password string) (*User, error) {
	q, args := query.NewBuilder(projection).BuildSingle("username", username)

	u, err := repository.QueryOne(ctx, r.db, q, args, scanUser)
	if errors.Is(err, sql.ErrNoRows) {
		auth.CheckPassword(r.dummy, password)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, ErrInactive
	}

	now := time.Now().UTC()
	if err := repository.ExecExpectOne(ctx, r.db, "UPDATE users SET last_login = $1 WHERE id = $2", now, u.ID); err != nil {
		return nil, fmt.Errorf("record login: %w", err)
	}
	u.LastLogin = &now

	r.logger.Info("user authenticated", "id", u.ID)
	return &u, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*User, error) {
	q, args := query.NewBuilder(projection).BuildSingle("id", id)

	u, err := repository.QueryOne(ctx, r.db, q, args, scanUser)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &u, nil
}

func (r *repo) UpdateProfile(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*User, error) {
	if err := cmd.validate(); err != nil {
		return nil, err
	}

	q := `
		UPDATE users
		SET email = $1, first_name = $2, last_name = $3
		WHERE id = $4
		RETURNING ` + returning

	u, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (User, error) {
		return repository.QueryOne(ctx, tx, q, []any{cmd.Email, cmd.FirstName, cmd.LastName, id}, scanUser)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("user updated", "id", u.ID)
	return &u, nil
}

func (r *repo) ChangePassword(ctx context.Context, id uuid.UUID, cmd PasswordCommand) error {
	if err := validatePassword(cmd.NewPassword, r.policy.MinPasswordLength); err != nil {
		return err
	}

	u, err := r.Find(ctx, id)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(u.PasswordHash, cmd.OldPassword) {
		return ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(cmd.NewPassword, r.policy.BcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := repository.ExecExpectOne(ctx, r.db, "UPDATE users SET password_hash = $1 WHERE id = $2", hash, id); err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("password changed", "id", id)
	return nil
}

func (r *repo) RevokeToken(ctx context.Context, jti, userID uuid.UUID, expires time.Time) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if _, err := tx.ExecContext(ctx, "DELETE FROM revoked_tokens WHERE expires_at < NOW()"); err != nil {
			return struct{}{}, err
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO revoked_tokens (jti, user_id, expires_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (jti) DO NOTHING`,
			jti, userID, expires)
		return struct{}{}, err
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("refresh token revoked", "user_id", userID, "jti", jti)
	return nil
}

func (r *repo) IsRevoked(ctx context.Context, jti uuid.UUID) (bool, error) {
	revoked, err := repository.QueryScalar[bool](ctx, r.db,
		"SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE jti = $1)", jti)
	if err != nil {
		return false, fmt.Errorf("check revocation: %w", err)
	}
	return revoked, nil
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[User], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "username", "email", "first_name", "last_name")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	total, err := repository.QueryScalar[int](ctx, r.db, countSQL, countArgs...)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	users, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanUser)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}

	result := pagination.NewPageResult(users, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) SetFlags(ctx context.Context, id uuid.UUID, cmd FlagsCommand) (*User, error) {
	q := `
		UPDATE users
		SET is_active = COALESCE($1, is_active), is_staff = COALESCE($2, is_staff)
		WHERE id = $3
		RETURNING ` + returning

	u, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (User, error) {
		return repository.QueryOne(ctx, tx, q, []any{cmd.IsActive, cmd.IsStaff, id}, scanUser)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("user flags updated", "id", u.ID, "active", u.IsActive, "staff", u.IsStaff)
	return &u, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		err := repository.ExecExpectOne(ctx, tx, "DELETE FROM users WHERE id = $1", id)
		return struct{}{}, err
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("user deleted", "id", id)
	return nil
}

func (r *repo) Count(ctx context.Context) (int, error) {
	n, err := repository.QueryScalar[int](ctx, r.db, "SELECT COUNT(*) FROM users")
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
