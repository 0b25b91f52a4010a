package migrations

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devcampdir/api/internal/database"
)

func newMockMigrator(t *testing.T) (*Migrator, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	migrator := NewMigrator(&database.Pool{DB: db})
	return migrator, mock, func() { db.Close() }
}

func TestGetMigrations_Order(t *testing.T) {
	migrations := GetMigrations()
	require.Len(t, migrations, 4)

	// Referential order: users and bootcamps before the tables that
	// reference them.
	assert.Equal(t, "users", migrations[0].TableName)
	assert.Equal(t, "bootcamps", migrations[1].TableName)
	assert.Equal(t, "courses", migrations[2].TableName)
	assert.Equal(t, "reviews", migrations[3].TableName)
}

func TestMigrator_TableExists(t *testing.T) {
	migrator, mock, cleanup := newMockMigrator(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1`).
		WithArgs("users").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1`).
		WithArgs("widgets").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err := migrator.tableExists(context.Background(), "users")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = migrator.tableExists(context.Background(), "widgets")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMigrator_RunMigration_RecordsInTransaction(t *testing.T) {
	migrator, mock, cleanup := newMockMigrator(t)
	defer cleanup()

	migration := Migration{
		Name:        "create_widgets_table",
		Description: "test migration",
		TableName:   "widgets",
		RunSQL: func(ctx context.Context, tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, "CREATE TABLE widgets (id SERIAL PRIMARY KEY)")
			return err
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TABLE widgets`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO migrations \(name, description\) VALUES \(\$1, \$2\)`).
		WithArgs("create_widgets_table", "test migration").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := migrator.runMigration(context.Background(), migration)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrator_RunMigration_RollsBackOnFailure(t *testing.T) {
	migrator, mock, cleanup := newMockMigrator(t)
	defer cleanup()

	migration := Migration{
		Name:      "create_widgets_table",
		TableName: "widgets",
		RunSQL: func(ctx context.Context, tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, "CREATE TABLE widgets (id SERIAL PRIMARY KEY)")
			return err
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TABLE widgets`).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := migrator.runMigration(context.Background(), migration)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrator_RunMigrations_UpToDateSchema(t *testing.T) {
	migrator, mock, cleanup := newMockMigrator(t)
	defer cleanup()

	// The reset-column checks iterate a map, so their order varies
	mock.MatchExpectationsInOrder(false)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS migrations`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	for _, table := range []string{"users", "bootcamps", "courses", "reviews"} {
		mock.ExpectQuery(`SELECT EXISTS\(SELECT 1`).
			WithArgs(table).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	}

	mock.ExpectQuery(`SELECT name FROM migrations`).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).
			AddRow("create_users_table").
			AddRow("create_bootcamps_table").
			AddRow("create_courses_table").
			AddRow("create_reviews_table"))

	for _, column := range []string{"reset_token_hash", "reset_token_expires_at"} {
		mock.ExpectQuery(`SELECT EXISTS \(`).
			WithArgs(column).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	}

	err := migrator.RunMigrations(context.Background())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrator_RunMigrations_AddsMissingResetColumns(t *testing.T) {
	migrator, mock, cleanup := newMockMigrator(t)
	defer cleanup()

	mock.MatchExpectationsInOrder(false)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS migrations`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	for _, table := range []string{"users", "bootcamps", "courses", "reviews"} {
		mock.ExpectQuery(`SELECT EXISTS\(SELECT 1`).
			WithArgs(table).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	}

	mock.ExpectQuery(`SELECT name FROM migrations`).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).
			AddRow("create_users_table").
			AddRow("create_bootcamps_table").
			AddRow("create_courses_table").
			AddRow("create_reviews_table"))

	mock.ExpectQuery(`SELECT EXISTS \(`).
		WithArgs("reset_token_hash").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`ALTER TABLE users ADD COLUMN reset_token_hash`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectQuery(`SELECT EXISTS \(`).
		WithArgs("reset_token_expires_at").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`ALTER TABLE users ADD COLUMN reset_token_expires_at`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := migrator.RunMigrations(context.Background())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
