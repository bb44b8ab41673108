package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Vinay9897/postpaid-billing-system/internal/models"
	pkgerrors "github.com/Vinay9897/postpaid-billing-system/pkg/errors"
	"github.com/lib/pq"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) (err error) {
	defer observe("user_create", time.Now(), &err)

	if user == nil {
		return pkgerrors.ErrInvalidInput
	}
	if user.Username == "" || user.PasswordHash == "" {
		return fmt.Errorf("%w: username and password are required", pkgerrors.ErrInvalidInput)
	}

	query := `
	INSERT INTO users (username, email, password_hash, role)
	VALUES ($1, $2, $3, $4)
	RETURNING user_id, created_at
	`
	err = r.db.QueryRowContext(
		ctx,
		query,
		user.Username,
		user.Email,
		user.PasswordHash,
		string(user.Role),
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			if strings.Contains(pqErr.Constraint, "email") {
				return pkgerrors.ErrEmailExists
			}
			return pkgerrors.ErrUsernameExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (user *models.User, err error) {
	defer observe("user_get_by_id", time.Now(), &err)

	query := `SELECT user_id, username, email, password_hash, role, created_at FROM users WHERE user_id = $1`
	user = &models.User{}
	err = r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkgerrors.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return user, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (user *models.User, err error) {
	defer observe("user_get_by_username", time.Now(), &err)

	if username == "" {
		return nil, fmt.Errorf("%w: username cannot be empty", pkgerrors.ErrInvalidInput)
	}

	query := `SELECT user_id, username, email, password_hash, role, created_at FROM users WHERE username = $1`
	user = &models.User{}
	err = r.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkgerrors.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", username, err)
	}
	return user, nil
}

func (r *UserRepository) List(ctx context.Context) (users []models.User, err error) {
	defer observe("user_list", time.Now(), &err)

	query := `SELECT user_id, username, email, password_hash, role, created_at FROM users ORDER BY user_id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var user models.User
		if err = rows.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *UserRepository) Update(ctx context.Context, user *models.User) (err error) {
	defer observe("user_update", time.Now(), &err)

	query := `UPDATE users SET email = $1, role = $2 WHERE user_id = $3`
	res, err := r.db.ExecContext(ctx, query, user.Email, string(user.Role), user.ID)
	if err != nil {
		return fmt.Errorf("failed to update user %d: %w", user.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return pkgerrors.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) (err error) {
	defer observe("user_update_password", time.Now(), &err)

	query := `UPDATE users SET password_hash = $1 WHERE user_id = $2`
	res, err := r.db.ExecContext(ctx, query, passwordHash, id)
	if err != nil {
		return fmt.Errorf("failed to set password for user %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return pkgerrors.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) (err error) {
	defer observe("user_delete", time.Now(), &err)

	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE user_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return pkgerrors.ErrUserNotFound
	}
	return nil
}
