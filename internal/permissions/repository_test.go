package permissions_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/facility-management/internal/permissions"
	"github.com/JaimeStill/facility-management/pkg/auth"
	"github.com/JaimeStill/facility-management/pkg/logging"
	"github.com/JaimeStill/facility-management/pkg/pagination"
)

var grantColumns = []string{"id", "user_id", "facility_id", "level", "granted_by", "created_at"}

func newRepo(t *testing.T) (permissions.System, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	pg := pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
	return permissions.New(db, logging.Discard(), pg), mock
}

const levelQuery = "SELECT level FROM grants WHERE user_id = $1 AND facility_id = $2"

func TestAllowed(t *testing.T) {
	user, facility := uuid.New(), uuid.New()

	tests := []struct {
		name     string
		held     string
		required permissions.Level
		want     bool
	}{
		{"no grant", "", permissions.View, false},
		{"view satisfies view", "view", permissions.View, true},
		{"view lacks manage", "view", permissions.Manage, false},
		{"manage satisfies view", "manage", permissions.View, true},
		{"admin satisfies admin", "admin", permissions.Admin, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys, mock := newRepo(t)

			rows := sqlmock.NewRows([]string{"level"})
			if tt.held != "" {
				rows.AddRow(tt.held)
			}
			mock.ExpectQuery(regexp.QuoteMeta(levelQuery)).
				WithArgs(user, facility).
				WillReturnRows(rows)

			got, err := sys.Allowed(context.Background(), auth.Principal{ID: user}, facility, tt.required)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAllowed_StaffSkipsLookup(t *testing.T) {
	sys, mock := newRepo(t)

	got, err := sys.Allowed(context.Background(), auth.Principal{ID: uuid.New(), Staff: true}, uuid.New(), permissions.Admin)
	require.NoError(t, err)
	assert.True(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate(t *testing.T) {
	sys, mock := newRepo(t)
	id, user, facility, by := uuid.New(), uuid.New(), uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO grants").
		WithArgs(user, facility, "manage", by).
		WillReturnRows(sqlmock.NewRows(grantColumns).
			AddRow(id.String(), user.String(), facility.String(), "manage", by.String(), time.Now()))
	mock.ExpectCommit()

	g, err := sys.Create(context.Background(), permissions.CreateCommand{
		UserID:     user,
		FacilityID: facility,
		Level:      permissions.Manage,
	}, by)
	require.NoError(t, err)
	assert.Equal(t, permissions.Manage, g.Level)
	require.NotNil(t, g.GrantedBy)
	assert.Equal(t, by, *g.GrantedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		pgCode  string
		wantErr error
	}{
		{"duplicate", "23505", permissions.ErrDuplicate},
		{"missing user or facility", "23503", permissions.ErrUnknownTarget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys, mock := newRepo(t)

			mock.ExpectBegin()
			mock.ExpectQuery("INSERT INTO grants").
				WillReturnError(&pgconn.PgError{Code: tt.pgCode})
			mock.ExpectRollback()

			_, err := sys.Create(context.Background(), permissions.CreateCommand{
				UserID:     uuid.New(),
				FacilityID: uuid.New(),
				Level:      permissions.View,
			}, uuid.New())
			assert.ErrorIs(t, err, tt.wantErr)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCreate_Invalid(t *testing.T) {
	sys, mock := newRepo(t)

	_, err := sys.Create(context.Background(), permissions.CreateCommand{
		UserID:     uuid.New(),
		FacilityID: uuid.New(),
		Level:      "owner",
	}, uuid.New())
	assert.ErrorIs(t, err, permissions.ErrInvalidLevel)

	_, err = sys.Create(context.Background(), permissions.CreateCommand{Level: permissions.View}, uuid.New())
	assert.ErrorIs(t, err, permissions.ErrInvalid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_NotFound(t *testing.T) {
	sys, mock := newRepo(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE grants SET level").
		WithArgs("admin", id).
		WillReturnRows(sqlmock.NewRows(grantColumns))
	mock.ExpectRollback()

	_, err := sys.Update(context.Background(), id, permissions.UpdateCommand{Level: permissions.Admin})
	assert.ErrorIs(t, err, permissions.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_FilterByUser(t *testing.T) {
	sys, mock := newRepo(t)
	user := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM public.grants g WHERE g.user_id = $1")).
		WithArgs(user).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`FROM public.grants g WHERE g.user_id = \$1 ORDER BY g.created_at DESC LIMIT 20 OFFSET 0`).
		WithArgs(user).
		WillReturnRows(sqlmock.NewRows(grantColumns))

	result, err := sys.List(context.Background(), pagination.PageRequest{}, permissions.Filters{UserID: &user})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Total)
	assert.Empty(t, result.Data)
	assert.NoError(t, mock.ExpectationsWereMet())
}
