package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// City represents a served geography in the catalog.
type City struct {
	ID             uuid.UUID      `json:"id" db:"id"`
	Name           string         `json:"name" db:"name"`
	Slug           string         `json:"slug" db:"slug"`
	State          string         `json:"state" db:"state"`
	Description    string         `json:"description" db:"description"`
	Landmarks      pq.StringArray `json:"landmarks" db:"landmarks"`
	LocalKeywords  pq.StringArray `json:"local_keywords" db:"local_keywords"`
	IsActive       bool           `json:"is_active" db:"is_active"`
	PagesGenerated bool           `json:"pages_generated" db:"pages_generated"`
	GeneratedAt    *time.Time     `json:"generated_at" db:"generated_at"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at" db:"updated_at"`
}

// CityCreateRequest represents the request payload for creating a city
type CityCreateRequest struct {
	Name          string   `json:"name" binding:"required"`
	State         string   `json:"state" binding:"required"`
	Description   string   `json:"description"`
	Landmarks     []string `json:"landmarks"`
	LocalKeywords []string `json:"local_keywords"`
	IsActive      *bool    `json:"is_active"` // Defaults to true
}

// CityUpdateRequest represents the request payload for updating a city.
// A name change recomputes the slug without touching existing pages.
type CityUpdateRequest struct {
	Name          *string  `json:"name"`
	State         *string  `json:"state"`
	Description   *string  `json:"description"`
	Landmarks     []string `json:"landmarks"`
	LocalKeywords []string `json:"local_keywords"`
	IsActive      *bool    `json:"is_active"`
}

// Validate validates the city update request
func (r *CityUpdateRequest) Validate() error {
	if r.Name == nil && r.State == nil && r.Description == nil &&
		r.Landmarks == nil && r.LocalKeywords == nil && r.IsActive == nil {
		return ErrNoFieldsToUpdate
	}
	return nil
}
