package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"bookery/internal/models"
)

// BookingStats aggregates totals, status distribution, the trailing
// twelve-month trend anchored to now, and revenue over completed bookings.
func (db *DB) BookingStats(ctx context.Context, now time.Time) (*models.BookingStats, error) {
	stats := &models.BookingStats{
		StatusDistribution: make(map[string]int64),
	}

	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&stats.TotalBookings)
	if err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}

	rows, err := db.QueryContext(ctx, `SELECT status, COUNT(*) FROM bookings GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to get status distribution: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		stats.StatusDistribution[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	trends, err := db.monthlyTrends(ctx, now)
	if err != nil {
		return nil, err
	}
	stats.MonthlyTrends = trends

	var total, avg sql.NullFloat64
	err = db.QueryRowContext(ctx,
		`SELECT SUM(total_price), AVG(total_price) FROM bookings WHERE status = ?`,
		models.StatusCompleted,
	).Scan(&total, &avg)
	if err != nil {
		return nil, fmt.Errorf("failed to get revenue stats: %w", err)
	}
	stats.Revenue = models.RevenueStats{Total: total.Float64, AveragePerBooking: avg.Float64}

	return stats, nil
}

func (db *DB) monthlyTrends(ctx context.Context, now time.Time) ([]models.MonthCount, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT substr(booking_date, 1, 7), COUNT(*) FROM bookings GROUP BY substr(booking_date, 1, 7)`)
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly trends: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var month string
		var count int64
		if err := rows.Scan(&month, &count); err != nil {
			return nil, fmt.Errorf("failed to scan month count: %w", err)
		}
		counts[month] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Newest month first, anchored to the current date.
	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	trends := make([]models.MonthCount, 0, models.HistoryWindowMonths)
	for i := 0; i < models.HistoryWindowMonths; i++ {
		month := anchor.AddDate(0, -i, 0).Format("2006-01")
		trends = append(trends, models.MonthCount{Month: month, Count: counts[month]})
	}
	return trends, nil
}

func (db *DB) ServiceStats(ctx context.Context) (*models.ServiceStats, error) {
	stats := &models.ServiceStats{
		CategoryDistribution: make(map[string]int64),
	}

	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(is_available), 0) FROM services`,
	).Scan(&stats.TotalServices, &stats.AvailableServices)
	if err != nil {
		return nil, fmt.Errorf("failed to count services: %w", err)
	}
	stats.UnavailableServices = stats.TotalServices - stats.AvailableServices

	rows, err := db.QueryContext(ctx, `SELECT category, COUNT(*) FROM services GROUP BY category`)
	if err != nil {
		return nil, fmt.Errorf("failed to get category distribution: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var category string
		var count int64
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("failed to scan category count: %w", err)
		}
		stats.CategoryDistribution[category] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var minPrice, maxPrice, avgPrice sql.NullFloat64
	err = db.QueryRowContext(ctx,
		`SELECT MIN(price), MAX(price), AVG(price) FROM services`,
	).Scan(&minPrice, &maxPrice, &avgPrice)
	if err != nil {
		return nil, fmt.Errorf("failed to get price range: %w", err)
	}
	stats.PriceRange = models.PriceRange{Min: minPrice.Float64, Max: maxPrice.Float64, Average: avgPrice.Float64}

	return stats, nil
}

func (db *DB) UserStats(ctx context.Context) (*models.UserStats, error) {
	stats := &models.UserStats{}

	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(is_active), 0) FROM users`,
	).Scan(&stats.TotalUsers, &stats.ActiveUsers)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	stats.InactiveUsers = stats.TotalUsers - stats.ActiveUsers

	err = db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT user_id) FROM bookings`,
	).Scan(&stats.UsersWithBookings)
	if err != nil {
		return nil, fmt.Errorf("failed to count users with bookings: %w", err)
	}

	return stats, nil
}
