package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/facility-management/pkg/repository"
)

var (
	errNotFound  = errors.New("not found")
	errDuplicate = errors.New("duplicate")
)

type item struct {
	ID   int
	Name string
}

func scanItem(s repository.Scanner) (item, error) {
	var i item
	err := s.Scan(&i.ID, &i.Name)
	return i, err
}

func TestMapError(t *testing.T) {
	other := errors.New("some other error")
	pgOther := &pgconn.PgError{Code: "12345"}

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", sql.ErrNoRows, errNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505"}, errDuplicate},
		{"foreign key violation", &pgconn.PgError{Code: "23503"}, errNotFound},
		{"other pg error", pgOther, pgOther},
		{"other error", other, other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := repository.MapError(tt.err, errNotFound, errDuplicate)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQueryMany(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM items")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(1, "alpha").
			AddRow(2, "beta"))

	items, err := repository.QueryMany(context.Background(), db, "SELECT id, name FROM items", nil, scanItem)
	require.NoError(t, err)
	assert.Equal(t, []item{{1, "alpha"}, {2, "beta"}}, items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryOne_NoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, name FROM items WHERE id").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	_, err = repository.QueryOne(context.Background(), db, "SELECT id, name FROM items WHERE id = $1", []any{7}, scanItem)
	assert.ErrorIs(t, repository.MapError(err, errNotFound, errDuplicate), errNotFound)
}

func TestExecExpectOne(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM items").WithArgs(1).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM items").WithArgs(2).WillReturnResult(sqlmock.NewResult(0, 0))

	ctx := context.Background()
	assert.NoError(t, repository.ExecExpectOne(ctx, db, "DELETE FROM items WHERE id = $1", 1))
	assert.ErrorIs(t, repository.ExecExpectOne(ctx, db, "DELETE FROM items WHERE id = $1", 2), sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_Commit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO items").
		WithArgs("gamma").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(3, "gamma"))
	mock.ExpectCommit()

	ctx := context.Background()
	got, err := repository.WithTx(ctx, db, func(tx *sql.Tx) (item, error) {
		return repository.QueryOne(ctx, tx, "INSERT INTO items (name) VALUES ($1) RETURNING id, name", []any{"gamma"}, scanItem)
	})

	require.NoError(t, err)
	assert.Equal(t, item{3, "gamma"}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_Rollback(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	_, err = repository.WithTx(context.Background(), db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, boom
	})

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}
