package api

import (
	"context"

	"github.com/google/uuid"

	"github.com/jonesrussell/pagegen/internal/generator"
	"github.com/jonesrussell/pagegen/internal/models"
)

// Store is the persistence surface the API depends on. *database.Repository
// satisfies it; tests substitute fakes.
type Store interface {
	Ping(ctx context.Context) error

	CreateService(ctx context.Context, req *models.ServiceCreateRequest) (*models.Service, error)
	GetServiceByID(ctx context.Context, id uuid.UUID) (*models.Service, error)
	ListServices(ctx context.Context, activeOnly bool) ([]models.Service, error)
	UpdateService(ctx context.Context, id uuid.UUID, req *models.ServiceUpdateRequest) (*models.Service, error)
	DeleteService(ctx context.Context, id uuid.UUID) error
	CountServices(ctx context.Context, activeOnly bool) (int64, error)

	CreateCity(ctx context.Context, req *models.CityCreateRequest) (*models.City, error)
	GetCityByID(ctx context.Context, id uuid.UUID) (*models.City, error)
	ListCities(ctx context.Context, activeOnly bool) ([]models.City, error)
	UpdateCity(ctx context.Context, id uuid.UUID, req *models.CityUpdateRequest) (*models.City, error)
	DeleteCity(ctx context.Context, id uuid.UUID) error
	CountCities(ctx context.Context, activeOnly bool) (int64, error)

	GetPageBySlug(ctx context.Context, slug string) (*models.Page, error)
	ListPageSlugs(ctx context.Context, limit int) ([]string, error)
	DeleteAllPages(ctx context.Context) (int64, error)
	CountPages(ctx context.Context) (int64, error)
}

// PageResolver is the cached read path for public page resolution
type PageResolver interface {
	Get(ctx context.Context, slug string) *models.Page
	Set(ctx context.Context, page *models.Page) error
	Flush(ctx context.Context) error
}

// PassRunner triggers a generation pass and reports on the last one
type PassRunner interface {
	Run(ctx context.Context) (*generator.Report, error)
	LastReport() *generator.Report
}
