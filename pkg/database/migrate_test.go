package database

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateFreshDatabase(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS schema_migrations`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectQuery(`SELECT COALESCE\(MAX\(version\), 0\) FROM schema_migrations`).
		WillReturnRows(pgxmock.NewRows([]string{"version"}).AddRow(0))

	for i, group := range migrations {
		mock.ExpectBegin()
		for range group {
			mock.ExpectExec(`.*`).WillReturnResult(pgxmock.NewResult("ALTER", 0))
		}
		mock.ExpectExec(`INSERT INTO schema_migrations \(version\) VALUES \(\$1\)`).
			WithArgs(i + 1).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()
	}

	err = Migrate(context.Background(), mock)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateUpToDateIsNoOp(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS schema_migrations`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectQuery(`SELECT COALESCE\(MAX\(version\), 0\) FROM schema_migrations`).
		WillReturnRows(pgxmock.NewRows([]string{"version"}).AddRow(len(migrations)))

	err = Migrate(context.Background(), mock)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateResumesFromRecordedVersion(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS schema_migrations`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectQuery(`SELECT COALESCE\(MAX\(version\), 0\) FROM schema_migrations`).
		WillReturnRows(pgxmock.NewRows([]string{"version"}).AddRow(1))

	// Only migration 2 should run.
	mock.ExpectBegin()
	for range migrations[1] {
		mock.ExpectExec(`.*`).WillReturnResult(pgxmock.NewResult("ALTER", 0))
	}
	mock.ExpectExec(`INSERT INTO schema_migrations \(version\) VALUES \(\$1\)`).
		WithArgs(2).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err = Migrate(context.Background(), mock)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateStatementFailureRollsBack(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS schema_migrations`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectQuery(`SELECT COALESCE\(MAX\(version\), 0\) FROM schema_migrations`).
		WillReturnRows(pgxmock.NewRows([]string{"version"}).AddRow(0))

	mock.ExpectBegin()
	mock.ExpectExec(`.*`).WillReturnError(errors.New("permission denied"))
	mock.ExpectRollback()

	err = Migrate(context.Background(), mock)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "apply migration 1")
	assert.NoError(t, mock.ExpectationsWereMet())
}
