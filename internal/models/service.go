package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Service categories form a closed enumeration.
const (
	CategoryWebDevelopment   = "web-development"
	CategoryAppDevelopment   = "app-development"
	CategoryDigitalMarketing = "digital-marketing"
	CategorySEO              = "seo"
	CategoryDesign           = "design"
	CategoryEcommerce        = "ecommerce"
)

// ServiceCategories lists all valid categories.
var ServiceCategories = []string{
	CategoryWebDevelopment,
	CategoryAppDevelopment,
	CategoryDigitalMarketing,
	CategorySEO,
	CategoryDesign,
	CategoryEcommerce,
}

// Service represents a sellable offering in the catalog.
type Service struct {
	ID          uuid.UUID      `json:"id" db:"id"`
	Title       string         `json:"title" db:"title"`
	Slug        string         `json:"slug" db:"slug"`
	Description string         `json:"description" db:"description"`
	Category    string         `json:"category" db:"category"`
	Price       int64          `json:"price" db:"price"`
	Features    pq.StringArray `json:"features" db:"features"`
	IsActive    bool           `json:"is_active" db:"is_active"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`
}

// ServiceCreateRequest represents the request payload for creating a service
type ServiceCreateRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Category    string   `json:"category" binding:"required,oneof=web-development app-development digital-marketing seo design ecommerce"`
	Price       int64    `json:"price" binding:"required,min=0"`
	Features    []string `json:"features"`
	IsActive    *bool    `json:"is_active"` // Defaults to true
}

// ServiceUpdateRequest represents the request payload for updating a service.
// A title change recomputes the slug; existing generated pages keep the slug
// they were created under.
type ServiceUpdateRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Category    *string  `json:"category" binding:"omitempty,oneof=web-development app-development digital-marketing seo design ecommerce"`
	Price       *int64   `json:"price" binding:"omitempty,min=0"`
	Features    []string `json:"features"`
	IsActive    *bool    `json:"is_active"`
}

// Validate validates the service update request
func (r *ServiceUpdateRequest) Validate() error {
	if r.Title == nil && r.Description == nil && r.Category == nil &&
		r.Price == nil && r.Features == nil && r.IsActive == nil {
		return ErrNoFieldsToUpdate
	}
	return nil
}
