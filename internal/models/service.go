package models

import "time"

type Service struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	Price           float64   `json:"price"`
	DurationMinutes int64     `json:"duration_minutes"`
	Category        string    `json:"category"`
	IsAvailable     bool      `json:"is_available"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ServicePatch carries a partial update; nil fields keep their value.
type ServicePatch struct {
	Name            *string  `json:"name"`
	Description     *string  `json:"description"`
	Price           *float64 `json:"price"`
	DurationMinutes *int64   `json:"duration_minutes"`
	Category        *string  `json:"category"`
	IsAvailable     *bool    `json:"is_available"`
}

// Apply merges the present fields onto svc.
func (p ServicePatch) Apply(svc *Service) {
	if p.Name != nil {
		svc.Name = *p.Name
	}
	if p.Description != nil {
		svc.Description = *p.Description
	}
	if p.Price != nil {
		svc.Price = *p.Price
	}
	if p.DurationMinutes != nil {
		svc.DurationMinutes = *p.DurationMinutes
	}
	if p.Category != nil {
		svc.Category = *p.Category
	}
	if p.IsAvailable != nil {
		svc.IsAvailable = *p.IsAvailable
	}
}
