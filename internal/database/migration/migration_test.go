package migration

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestEnsureMigrated_Skip(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT to_regclass`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	core, logs := observer.New(zap.InfoLevel)
	err = EnsureMigrated(context.Background(), db, zap.New(core), "localhost")

	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("db_migration_skip").Len())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureMigrated_RunsAllSteps(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT to_regclass`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	for range steps {
		mock.ExpectExec(`CREATE`).WillReturnResult(sqlmock.NewResult(0, 0))
	}

	core, logs := observer.New(zap.InfoLevel)
	err = EnsureMigrated(context.Background(), db, zap.New(core), "localhost")

	require.NoError(t, err)
	assert.Equal(t, len(steps), logs.FilterMessage("db_migration_step").Len())
	assert.Equal(t, 1, logs.FilterMessage("db_migration_success").Len())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureMigrated_StepFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT to_regclass`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS documents`).WillReturnError(errors.New("permission denied"))

	core, logs := observer.New(zap.InfoLevel)
	err = EnsureMigrated(context.Background(), db, zap.New(core), "localhost")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration step create_table_documents failed")
	assert.Equal(t, 1, logs.FilterMessage("db_migration_failed").Len())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureMigrated_SentinelFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT to_regclass`).WillReturnError(errors.New("connection reset"))

	err = EnsureMigrated(context.Background(), db, zap.NewNop(), "localhost")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to check sentinel tables")
}
