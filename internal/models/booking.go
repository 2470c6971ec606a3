package models

import "time"

type Booking struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	ServiceID   int64     `json:"service_id"`
	BookingDate time.Time `json:"booking_date"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Status      string    `json:"status"` // pending, confirmed, cancelled, completed
	Notes       string    `json:"notes,omitempty"`
	TotalPrice  float64   `json:"total_price"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Overlaps reports whether the booking's half-open interval
// [StartTime, EndTime) intersects [start, end). Touching endpoints
// do not overlap.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && b.EndTime.After(start)
}

// BookingPatch carries a partial update; nil fields keep their value.
// Status is never patched here, it has its own operation.
type BookingPatch struct {
	BookingDate *time.Time `json:"booking_date"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	Notes       *string    `json:"notes"`
	TotalPrice  *float64   `json:"total_price"`
}

// Apply merges the present fields onto b.
func (p BookingPatch) Apply(b *Booking) {
	if p.BookingDate != nil {
		b.BookingDate = *p.BookingDate
	}
	if p.StartTime != nil {
		b.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		b.EndTime = *p.EndTime
	}
	if p.Notes != nil {
		b.Notes = *p.Notes
	}
	if p.TotalPrice != nil {
		b.TotalPrice = *p.TotalPrice
	}
}

// TouchesTimes reports whether the patch changes the booked interval.
func (p BookingPatch) TouchesTimes() bool {
	return p.StartTime != nil || p.EndTime != nil
}
