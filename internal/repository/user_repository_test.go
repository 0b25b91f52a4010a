package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devcampdir/api/internal/database"
	"github.com/devcampdir/api/internal/models"
	"github.com/devcampdir/api/internal/utils"
)

func newMockRepo(t *testing.T) (UserRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewUserRepository(&database.Pool{DB: db})
	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"user_id", "name", "email", "role", "password_hash", "salt",
		"password_changed_at", "reset_token_hash", "reset_token_expires_at",
		"created_at", "updated_at",
	})
}

func TestUserRepository_Create(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	user := &models.User{
		Name:         "Jamie Doe",
		Email:        "Jamie@Example.com",
		PasswordHash: "hash",
		Salt:         "salt",
	}

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("Jamie Doe", "jamie@example.com", "user", "hash", "salt",
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(int64(7)))

	err := repo.Create(context.Background(), user)
	require.NoError(t, err)

	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, "jamie@example.com", user.Email)
	assert.Equal(t, "user", user.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	user := &models.User{
		Name:  "Jamie Doe",
		Email: "jamie@example.com",
	}

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "idx_email"})

	err := repo.Create(context.Background(), user)
	require.Error(t, err)
	assert.True(t, utils.IsDuplicateError(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByEmail(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(`SELECT (.+) FROM users WHERE LOWER\(email\) = LOWER\(\$1\)`).
		WithArgs("jamie@example.com").
		WillReturnRows(userRows().AddRow(
			int64(7), "Jamie Doe", "jamie@example.com", "user", "hash", "salt",
			now, nil, nil, now, now,
		))

	user, err := repo.GetByEmail(context.Background(), "jamie@example.com")
	require.NoError(t, err)

	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, "jamie@example.com", user.Email)
	assert.Nil(t, user.ResetTokenHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByEmail_NotFound(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE LOWER\(email\) = LOWER\(\$1\)`).
		WithArgs("nobody@example.com").
		WillReturnError(sql.ErrNoRows)

	user, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	require.Error(t, err)
	assert.Nil(t, user)
	assert.True(t, utils.IsNotFoundError(err))
}

func TestUserRepository_ChangePassword(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	mock.ExpectExec(`UPDATE users\s+SET password_hash = \$1, salt = \$2, password_changed_at = \$3, updated_at = \$3`).
		WithArgs("newhash", "newsalt", sqlmock.AnyArg(), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.ChangePassword(context.Background(), 7, "newhash", "newsalt")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ChangePassword_UnknownUser(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	mock.ExpectExec(`UPDATE users`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.ChangePassword(context.Background(), 99, "newhash", "newsalt")
	require.Error(t, err)
	assert.True(t, utils.IsNotFoundError(err))
}

func TestUserRepository_SetResetToken(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	expiresAt := time.Now().Add(10 * time.Minute)
	mock.ExpectExec(`UPDATE users\s+SET reset_token_hash = \$1, reset_token_expires_at = \$2`).
		WithArgs("fingerprint", expiresAt, sqlmock.AnyArg(), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SetResetToken(context.Background(), 7, "fingerprint", expiresAt)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ClearResetToken(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	mock.ExpectExec(`UPDATE users\s+SET reset_token_hash = NULL, reset_token_expires_at = NULL`).
		WithArgs(sqlmock.AnyArg(), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.ClearResetToken(context.Background(), 7)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByResetTokenHash(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	now := time.Now()
	hash := "fingerprint"
	expires := now.Add(5 * time.Minute)

	mock.ExpectQuery(`WHERE reset_token_hash = \$1 AND reset_token_expires_at > \$2`).
		WithArgs(hash, now).
		WillReturnRows(userRows().AddRow(
			int64(7), "Jamie Doe", "jamie@example.com", "user", "hash", "salt",
			now, &hash, &expires, now, now,
		))

	user, err := repo.GetByResetTokenHash(context.Background(), hash, now)
	require.NoError(t, err)

	assert.Equal(t, int64(7), user.ID)
	require.NotNil(t, user.ResetTokenHash)
	assert.Equal(t, hash, *user.ResetTokenHash)
}

func TestUserRepository_GetByResetTokenHash_Miss(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	mock.ExpectQuery(`WHERE reset_token_hash = \$1 AND reset_token_expires_at > \$2`).
		WillReturnError(sql.ErrNoRows)

	user, err := repo.GetByResetTokenHash(context.Background(), "wrong", time.Now())
	assert.Nil(t, user)
	assert.ErrorIs(t, err, ErrResetTokenNotFound)
}

func TestUserRepository_List(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT (.+) FROM users\s+ORDER BY user_id`).
		WithArgs(25, 0).
		WillReturnRows(userRows().
			AddRow(int64(1), "A", "a@example.com", "user", "h", "s", now, nil, nil, now, now).
			AddRow(int64(2), "B", "b@example.com", "admin", "h", "s", now, nil, nil, now, now))

	users, total, err := repo.List(context.Background(), 25, 0)
	require.NoError(t, err)

	assert.Equal(t, 2, total)
	require.Len(t, users, 2)
	assert.Equal(t, "admin", users[1].Role)
}

func TestUserRepository_Delete_NotFound(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	mock.ExpectExec(`DELETE FROM users WHERE user_id = \$1`).
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 99)
	require.Error(t, err)
	assert.True(t, utils.IsNotFoundError(err))
}
