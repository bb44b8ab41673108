package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Vinay9897/postpaid-billing-system/internal/models"
	pkgerrors "github.com/Vinay9897/postpaid-billing-system/pkg/errors"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const insertUserQuery = `
	INSERT INTO users (username, email, password_hash, role)
	VALUES ($1, $2, $3, $4)
	RETURNING user_id, created_at
	`

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		mock.ExpectQuery(regexp.QuoteMeta(insertUserQuery)).
			WithArgs("alice", "alice@example.com", "hash", "customer").
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "created_at"}).AddRow(int64(1), createdAt))

		repo := NewUserRepository(db)
		user := &models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "hash", Role: models.RoleCustomer}
		require.NoError(t, repo.Create(ctx, user))
		assert.Equal(t, int64(1), user.ID)
		assert.Equal(t, createdAt, user.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate username", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta(insertUserQuery)).
			WithArgs("alice", "alice@example.com", "hash", "customer").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "users_username_key"})

		repo := NewUserRepository(db)
		user := &models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "hash", Role: models.RoleCustomer}
		assert.ErrorIs(t, repo.Create(ctx, user), pkgerrors.ErrUsernameExists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta(insertUserQuery)).
			WithArgs("bob", "alice@example.com", "hash", "customer").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

		repo := NewUserRepository(db)
		user := &models.User{Username: "bob", Email: "alice@example.com", PasswordHash: "hash", Role: models.RoleCustomer}
		assert.ErrorIs(t, repo.Create(ctx, user), pkgerrors.ErrEmailExists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing fields", func(t *testing.T) {
		db, _, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewUserRepository(db)
		assert.ErrorIs(t, repo.Create(ctx, &models.User{Username: "alice"}), pkgerrors.ErrInvalidInput)
	})
}

func TestUserRepository_GetByUsername(t *testing.T) {
	ctx := context.Background()
	query := `SELECT user_id, username, email, password_hash, role, created_at FROM users WHERE username = $1`

	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		mock.ExpectQuery(regexp.QuoteMeta(query)).
			WithArgs("alice").
			WillReturnRows(sqlmock.NewRows(
				[]string{"user_id", "username", "email", "password_hash", "role", "created_at"}).
				AddRow(int64(7), "alice", "alice@example.com", "hash", "admin", createdAt))

		repo := NewUserRepository(db)
		user, err := repo.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, int64(7), user.ID)
		assert.Equal(t, models.RoleAdmin, user.Role)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta(query)).
			WithArgs("nobody").
			WillReturnRows(sqlmock.NewRows(
				[]string{"user_id", "username", "email", "password_hash", "role", "created_at"}))

		repo := NewUserRepository(db)
		_, err = repo.GetByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, pkgerrors.ErrUserNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_Delete(t *testing.T) {
	ctx := context.Background()
	query := `DELETE FROM users WHERE user_id = $1`

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(regexp.QuoteMeta(query)).
			WithArgs(int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewUserRepository(db)
		require.NoError(t, repo.Delete(ctx, 7))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(regexp.QuoteMeta(query)).
			WithArgs(int64(404)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewUserRepository(db)
		assert.ErrorIs(t, repo.Delete(ctx, 404), pkgerrors.ErrUserNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
