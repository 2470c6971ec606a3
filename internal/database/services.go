package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bookery/internal/models"
)

const serviceColumns = `id, name, description, price, duration_minutes, category, is_available, created_at, updated_at`

func (db *DB) CreateService(ctx context.Context, svc *models.Service) error {
	query := `INSERT INTO services (name, description, price, duration_minutes, category, is_available, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		svc.Name, svc.Description, svc.Price, svc.DurationMinutes, svc.Category, svc.IsAvailable, now, now)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	svc.ID = id
	svc.CreatedAt = now
	svc.UpdatedAt = now
	return nil
}

func (db *DB) GetService(ctx context.Context, id int64) (*models.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = ?`
	var svc models.Service
	var description sql.NullString
	err := db.QueryRowContext(ctx, query, id).Scan(
		&svc.ID, &svc.Name, &description, &svc.Price, &svc.DurationMinutes,
		&svc.Category, &svc.IsAvailable, &svc.CreatedAt, &svc.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	svc.Description = description.String
	return &svc, nil
}

func (db *DB) ListServices(ctx context.Context, skip, limit int) ([]*models.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services ORDER BY id LIMIT ? OFFSET ?`
	skip, limit = clampLimit(skip, limit)
	return db.queryServices(ctx, query, limit, skip)
}

func (db *DB) ListServicesByCategory(ctx context.Context, category string, skip, limit int) ([]*models.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE category = ? ORDER BY id LIMIT ? OFFSET ?`
	skip, limit = clampLimit(skip, limit)
	return db.queryServices(ctx, query, category, limit, skip)
}

func (db *DB) ListAvailableServices(ctx context.Context, skip, limit int) ([]*models.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE is_available = 1 ORDER BY id LIMIT ? OFFSET ?`
	skip, limit = clampLimit(skip, limit)
	return db.queryServices(ctx, query, limit, skip)
}

// SearchServices matches available services by name or description substring.
func (db *DB) SearchServices(ctx context.Context, term string, skip, limit int) ([]*models.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services
              WHERE is_available = 1 AND (name LIKE ? OR description LIKE ?)
              ORDER BY id LIMIT ? OFFSET ?`
	pattern := "%" + term + "%"
	skip, limit = clampLimit(skip, limit)
	return db.queryServices(ctx, query, pattern, pattern, limit, skip)
}

func (db *DB) queryServices(ctx context.Context, query string, args ...interface{}) ([]*models.Service, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query services: %w", err)
	}
	defer rows.Close()

	var services []*models.Service
	for rows.Next() {
		s := &models.Service{}
		var description sql.NullString
		err := rows.Scan(&s.ID, &s.Name, &description, &s.Price, &s.DurationMinutes,
			&s.Category, &s.IsAvailable, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		s.Description = description.String
		services = append(services, s)
	}
	return services, rows.Err()
}

func (db *DB) UpdateService(ctx context.Context, svc *models.Service) error {
	query := `UPDATE services SET name = ?, description = ?, price = ?, duration_minutes = ?, category = ?, is_available = ?, updated_at = ?
              WHERE id = ?`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		svc.Name, svc.Description, svc.Price, svc.DurationMinutes, svc.Category, svc.IsAvailable, now, svc.ID)
	if err != nil {
		return fmt.Errorf("failed to update service: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrServiceNotFound
	}
	svc.UpdatedAt = now
	return nil
}

func (db *DB) DeleteService(ctx context.Context, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM services WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrServiceNotFound
	}
	return nil
}
