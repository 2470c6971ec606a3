package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bookery/internal/models"
)

func (db *DB) CreateUser(ctx context.Context, user *models.User) error {
	query := `INSERT INTO users (email, username, full_name, phone, is_active, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?, ?)`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		user.Email,
		user.Username,
		user.FullName,
		user.Phone,
		user.IsActive,
		now,
		now,
	)
	if err != nil {
		if isConstraintErr(err) {
			return fmt.Errorf("%w: email or username taken", ErrDuplicate)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	user.ID = id
	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

const userColumns = `id, email, username, full_name, phone, is_active, created_at, updated_at`

func (db *DB) GetUser(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return db.queryUser(ctx, query, id)
}

func (db *DB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	return db.queryUser(ctx, query, email)
}

func (db *DB) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = ?`
	return db.queryUser(ctx, query, username)
}

func (db *DB) queryUser(ctx context.Context, query string, args ...interface{}) (*models.User, error) {
	var user models.User
	var phone sql.NullString
	err := db.QueryRowContext(ctx, query, args...).Scan(
		&user.ID, &user.Email, &user.Username, &user.FullName, &phone,
		&user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	user.Phone = phone.String
	return &user, nil
}

func (db *DB) ListUsers(ctx context.Context, skip, limit int) ([]*models.User, error) {
	skip, limit = clampLimit(skip, limit)
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id LIMIT ? OFFSET ?`
	rows, err := db.QueryContext(ctx, query, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u := &models.User{}
		var phone sql.NullString
		err := rows.Scan(&u.ID, &u.Email, &u.Username, &u.FullName, &phone,
			&u.IsActive, &u.CreatedAt, &u.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		u.Phone = phone.String
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateUser replaces all mutable fields; the original API treats user
// update as a full replace, not a patch.
func (db *DB) UpdateUser(ctx context.Context, user *models.User) error {
	query := `UPDATE users SET email = ?, username = ?, full_name = ?, phone = ?, is_active = ?, updated_at = ?
              WHERE id = ?`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		user.Email, user.Username, user.FullName, user.Phone, user.IsActive, now, user.ID)
	if err != nil {
		if isConstraintErr(err) {
			return fmt.Errorf("%w: email or username taken", ErrDuplicate)
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrUserNotFound
	}
	user.UpdatedAt = now
	return nil
}

func (db *DB) DeleteUser(ctx context.Context, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
