package api_test

import (
	"bytes"
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/facility-management/internal/api"
	"github.com/JaimeStill/facility-management/internal/config"
	"github.com/JaimeStill/facility-management/internal/infrastructure"
	"github.com/JaimeStill/facility-management/pkg/lifecycle"
	"github.com/JaimeStill/facility-management/pkg/pagination"
)

type pool struct{ db *sql.DB }

func (p pool) Connection() *sql.DB               { return p.db }
func (p pool) Start(*lifecycle.Coordinator) error { return nil }

func TestNewDomain_TagsRepositoryLogsOnce(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var buf bytes.Buffer
	rt := &api.Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Logger:   slog.New(slog.NewJSONHandler(&buf, nil)),
			Database: pool{db: db},
		},
		Pagination: pagination.Config{DefaultPageSize: 20, MaxPageSize: 100},
	}
	domain := api.NewDomain(&config.Config{}, rt)

	id := uuid.New()
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM facilities").WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, domain.Facilities.Delete(context.Background(), id))
	require.NoError(t, mock.ExpectationsWereMet())

	line := buf.String()
	assert.Contains(t, line, "facility deleted")
	assert.Equal(t, 1, strings.Count(line, `"system":"facilities"`))
}
