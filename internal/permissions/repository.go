package permissions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/facility-management/pkg/auth"
	"github.com/JaimeStill/facility-management/pkg/pagination"
	"github.com/JaimeStill/facility-management/pkg/query"
	"github.com/JaimeStill/facility-management/pkg/repository"
	"github.com/google/uuid"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a new permissions repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "permissions"),
		pagination: pagination,
	}
}

func (r *repo) Allowed(ctx context.Context, p auth.Principal, facilityID uuid.UUID, required Level) (bool, error) {
	if p.Staff {
		return true, nil
	}

	level, ok, err := r.LevelFor(ctx, p.ID, facilityID)
	if err != nil || !ok {
		return false, err
	}
	return level.Satisfies(required), nil
}

func (r *repo) LevelFor(ctx context.Context, userID, facilityID uuid.UUID) (Level, bool, error) {
	level, err := repository.QueryScalar[Level](ctx, r.db,
		"SELECT level FROM grants WHERE user_id = $1 AND facility_id = $2", userID, facilityID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("find grant level: %w", err)
	}
	return level, true, nil
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Grant], error) {
	page.Normalize(r.pagination)

	qb := query.NewBuilder(projection, defaultSort)
	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	total, err := repository.QueryScalar[int](ctx, r.db, countSQL, countArgs...)
	if err != nil {
		return nil, fmt.Errorf("count grants: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	grants, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanGrant)
	if err != nil {
		return nil, fmt.Errorf("query grants: %w", err)
	}

	result := pagination.NewPageResult(grants, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Grant, error) {
	q, args := query.NewBuilder(projection).BuildSingle("id", id)

	g, err := repository.QueryOne(ctx, r.db, q, args, scanGrant)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &g, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand, grantedBy uuid.UUID) (*Grant, error) {
	if err := cmd.validate(); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO grants (user_id, facility_id, level, granted_by)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + returning

	g, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Grant, error) {
		args := []any{cmd.UserID, cmd.FacilityID, cmd.Level, grantedBy}
		return repository.QueryOne(ctx, tx, q, args, scanGrant)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrUnknownTarget, ErrDuplicate)
	}

	r.logger.Info("grant created",
		"id", g.ID,
		"user_id", g.UserID,
		"facility_id", g.FacilityID,
		"level", g.Level,
	)
	return &g, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Grant, error) {
	if _, err := ParseLevel(string(cmd.Level)); err != nil {
		return nil, err
	}

	q := `
		UPDATE grants
		SET level = $1
		WHERE id = $2
		RETURNING ` + returning

	g, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Grant, error) {
		return repository.QueryOne(ctx, tx, q, []any{cmd.Level, id}, scanGrant)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("grant updated", "id", g.ID, "level", g.Level)
	return &g, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		err := repository.ExecExpectOne(ctx, tx, "DELETE FROM grants WHERE id = $1", id)
		return struct{}{}, err
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("grant deleted", "id", id)
	return nil
}

func (r *repo) Count(ctx context.Context) (int, error) {
	n, err := repository.QueryScalar[int](ctx, r.db, "SELECT COUNT(*) FROM grants")
	if err != nil {
		return 0, fmt.Errorf("count grants: %w", err)
	}
	return n, nil
}
