package facilities

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

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

// New creates a new facilities repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "facilities"),
		pagination: pagination,
	}
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Facility], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "name", "code", "city")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	total, err := repository.QueryScalar[int](ctx, r.db, countSQL, countArgs...)
	if err != nil {
		return nil, fmt.Errorf("count facilities: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanFacility)
	if err != nil {
		return nil, fmt.Errorf("query facilities: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Facility, error) {
	q, args := query.NewBuilder(projection).BuildSingle("id", id)

	f, err := repository.QueryOne(ctx, r.db, q, args, scanFacility)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &f, nil
}

// Create inserts the facility and grants the creator admin on it in the
// same transaction.
func (r *repo) Create(ctx context.Context, cmd CreateCommand, creator uuid.UUID) (*Facility, error) {
	if err := cmd.validate(); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO facilities (name, code, type, address, city, capacity, description, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + returning

	grant := `
		INSERT INTO grants (user_id, facility_id, level, granted_by)
		VALUES ($1, $2, 'admin', $1)`

	f, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Facility, error) {
		args := []any{cmd.Name, cmd.Code, cmd.Type, cmd.Address, cmd.City, cmd.Capacity, cmd.Description, creator}
		f, err := repository.QueryOne(ctx, tx, q, args, scanFacility)
		if err != nil {
			return f, err
		}
		if _, err := tx.ExecContext(ctx, grant, creator, f.ID); err != nil {
			return f, fmt.Errorf("grant creator: %w", err)
		}
		return f, nil
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("facility created", "id", f.ID, "code", f.Code, "creator", creator)
	return &f, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Facility, error) {
	if err := cmd.validate(); err != nil {
		return nil, err
	}

	q := `
		UPDATE facilities
		SET name = $1, code = $2, type = $3, address = $4, city = $5,
			capacity = $6, description = $7, is_active = COALESCE($8, is_active),
			updated_at = NOW()
		WHERE id = $9
		RETURNING ` + returning

	f, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Facility, error) {
		args := []any{
			cmd.Name, cmd.Code, cmd.Type, cmd.Address, cmd.City,
			cmd.Capacity, cmd.Description, cmd.IsActive, id,
		}
		return repository.QueryOne(ctx, tx, q, args, scanFacility)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("facility updated", "id", f.ID, "code", f.Code)
	return &f, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		err := repository.ExecExpectOne(ctx, tx, "DELETE FROM facilities WHERE id = $1", id)
		return struct{}{}, err
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("facility deleted", "id", id)
	return nil
}

func (r *repo) Count(ctx context.Context) (int, error) {
	n, err := repository.QueryScalar[int](ctx, r.db, "SELECT COUNT(*) FROM facilities")
	if err != nil {
		return 0, fmt.Errorf("count facilities: %w", err)
	}
	return n, nil
}
