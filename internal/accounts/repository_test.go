package accounts_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/JaimeStill/facility-management/internal/accounts"
	"github.com/JaimeStill/facility-management/pkg/auth"
	"github.com/JaimeStill/facility-management/pkg/logging"
	"github.com/JaimeStill/facility-management/pkg/pagination"
	"github.com/JaimeStill/facility-management/pkg/query"
)

var userColumns = []string{
	"id", "username", "email", "first_name", "last_name", "password_hash",
	"is_active", "is_staff", "is_superuser", "date_joined", "last_login",
}

var policy = accounts.Policy{MinPasswordLength: 8, BcryptCost: bcrypt.MinCost}

func newRepo(t *testing.T) (accounts.System, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	pg := pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
	return accounts.New(db, logging.Discard(), pg, policy), mock
}

func userRow(id uuid.UUID, username, hash string, active bool) *sqlmock.Rows {
	return sqlmock.NewRows(userColumns).AddRow(
		id.String(), username, username+"@example.com", "", "", hash,
		active, false, false, time.Now(), nil,
	)
}

func TestRegister(t *testing.T) {
	sys, mock := newRepo(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("jdoe", "jdoe@example.com", "Jane", "Doe", sqlmock.AnyArg()).
		WillReturnRows(userRow(id, "jdoe", "hash", true))
	mock.ExpectCommit()

	u, err := sys.Register(context.Background(), accounts.RegisterCommand{
		Username:  " jdoe ",
		Email:     "jdoe@example.com",
		Password:  "long enough",
		FirstName: "Jane",
		LastName:  "Doe",
	})
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.True(t, u.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_Duplicate(t *testing.T) {
	sys, mock := newRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	_, err := sys.Register(context.Background(), accounts.RegisterCommand{
		Username: "jdoe",
		Email:    "jdoe@example.com",
		Password: "long enough",
	})
	assert.ErrorIs(t, err, accounts.ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cmd  accounts.RegisterCommand
	}{
		{"short username", accounts.RegisterCommand{Username: "jd", Email: "a@b.io", Password: "long enough"}},
		{"username with space", accounts.RegisterCommand{Username: "j doe", Email: "a@b.io", Password: "long enough"}},
		{"missing email", accounts.RegisterCommand{Username: "jdoe", Password: "long enough"}},
		{"display name email", accounts.RegisterCommand{Username: "jdoe", Email: "Jane <a@b.io>", Password: "long enough"}},
		{"short password", accounts.RegisterCommand{Username: "jdoe", Email: "a@b.io", Password: "short"}},
		{"blank password", accounts.RegisterCommand{Username: "jdoe", Email: "a@b.io", Password: "          "}},
		{"password over 72 bytes", accounts.RegisterCommand{Username: "jdoe", Email: "a@b.io", Password: string(make([]byte, 73))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys, mock := newRepo(t)

			_, err := sys.Register(context.Background(), tt.cmd)
			assert.ErrorIs(t, err, accounts.ErrInvalid)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAuthenticate(t *testing.T) {
	hash, err := auth.HashPassword("correct horse", bcrypt.MinCost)
	require.NoError(t, err)
	id := uuid.New()

	tests := []struct {
		name     string
		password string
		active   bool
		found    bool
		wantErr  error
	}{
		{"valid", "correct horse", true, true, nil},
		{"wrong password", "wrong horse", true, true, accounts.ErrInvalidCredentials},
		{"inactive", "correct horse", false, true, accounts.ErrInactive},
		{"unknown user", "correct horse", true, false, accounts.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys, mock := newRepo(t)

			rows := sqlmock.NewRows(userColumns)
			if tt.found {
				rows = userRow(id, "jdoe", hash, tt.active)
			}
			mock.ExpectQuery(`SELECT (.+) FROM public.users u WHERE u.username = \$1`).
				WithArgs("jdoe").
				WillReturnRows(rows)

			if tt.wantErr == nil {
				mock.ExpectExec("UPDATE users SET last_login").
					WithArgs(sqlmock.AnyArg(), id).
					WillReturnResult(sqlmock.NewResult(0, 1))
			}

			u, err := sys.Authenticate(context.Background(), "jdoe", tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, id, u.ID)
				assert.NotNil(t, u.LastLogin)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestFind_NotFound(t *testing.T) {
	sys, mock := newRepo(t)
	id := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM public.users u WHERE u.id = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := sys.Find(context.Background(), id)
	assert.ErrorIs(t, err, accounts.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChangePassword(t *testing.T) {
	hash, err := auth.HashPassword("old password", bcrypt.MinCost)
	require.NoError(t, err)
	id := uuid.New()

	t.Run("success", func(t *testing.T) {
		sys, mock := newRepo(t)

		mock.ExpectQuery(`SELECT (.+) FROM public.users u WHERE u.id = \$1`).
			WithArgs(id).
			WillReturnRows(userRow(id, "jdoe", hash, true))
		mock.ExpectExec("UPDATE users SET password_hash").
			WithArgs(sqlmock.AnyArg(), id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := sys.ChangePassword(context.Background(), id, accounts.PasswordCommand{
			OldPassword: "old password",
			NewPassword: "new password",
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wrong old password", func(t *testing.T) {
		sys, mock := newRepo(t)

		mock.ExpectQuery(`SELECT (.+) FROM public.users u WHERE u.id = \$1`).
			WithArgs(id).
			WillReturnRows(userRow(id, "jdoe", hash, true))

		err := sys.ChangePassword(context.Background(), id, accounts.PasswordCommand{
			OldPassword: "not it at all",
			NewPassword: "new password",
		})
		assert.ErrorIs(t, err, accounts.ErrInvalidCredentials)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("weak new password", func(t *testing.T) {
		sys, mock := newRepo(t)

		err := sys.ChangePassword(context.Background(), id, accounts.PasswordCommand{
			OldPassword: "old password",
			NewPassword: "short",
		})
		assert.ErrorIs(t, err, accounts.ErrInvalid)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRevokeToken(t *testing.T) {
	sys, mock := newRepo(t)
	jti, userID := uuid.New(), uuid.New()
	expires := time.Now().Add(time.Hour)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM revoked_tokens WHERE expires_at").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("INSERT INTO revoked_tokens").
		WithArgs(jti, userID, expires).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, sys.RevokeToken(context.Background(), jti, userID, expires))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsRevoked(t *testing.T) {
	sys, mock := newRepo(t)
	jti := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE jti = $1)")).
		WithArgs(jti).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	revoked, err := sys.IsRevoked(context.Background(), jti)
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_Filters(t *testing.T) {
	sys, mock := newRepo(t)
	active := true

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM public.users u WHERE u.is_active = $1")).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`FROM public.users u WHERE u.is_active = \$1 ORDER BY u.date_joined DESC LIMIT 5 OFFSET 5`).
		WithArgs(true).
		WillReturnRows(userRow(uuid.New(), "jdoe", "hash", true))

	page := pagination.PageRequest{Page: 2, PageSize: 5, Sort: []query.SortField{{Field: "date_joined", Descending: true}}}
	result, err := sys.List(context.Background(), page, accounts.Filters{Active: &active})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)
	assert.Len(t, result.Data, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetFlags(t *testing.T) {
	sys, mock := newRepo(t)
	id := uuid.New()
	staff := true

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE users SET is_active = COALESCE").
		WithArgs(nil, true, id).
		WillReturnRows(userRow(id, "jdoe", "hash", true))
	mock.ExpectCommit()

	_, err := sys.SetFlags(context.Background(), id, accounts.FlagsCommand{IsStaff: &staff})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_NotFound(t *testing.T) {
	sys, mock := newRepo(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM users WHERE id").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := sys.Delete(context.Background(), id)
	assert.True(t, errors.Is(err, accounts.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
