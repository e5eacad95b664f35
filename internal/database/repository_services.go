package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/jonesrussell/pagegen/internal/models"
)

const pqUniqueViolation = "23505"

// ====================
// Services
// ====================

// CreateService creates a new service. The slug is derived from the title.
func (r *Repository) CreateService(ctx context.Context, req *models.ServiceCreateRequest) (*models.Service, error) {
	now := time.Now()
	service := &models.Service{
		ID:          uuid.New(),
		Title:       req.Title,
		Slug:        models.Slugify(req.Title),
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Features:    pq.StringArray(req.Features),
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}
	if service.Features == nil {
		service.Features = pq.StringArray{}
	}

	query := `
		INSERT INTO services (id, title, slug, description, category, price, features, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, title, slug, description, category, price, features, is_active, created_at, updated_at
	`

	err := r.db.QueryRowxContext(
		ctx, query,
		service.ID, service.Title, service.Slug, service.Description, service.Category,
		service.Price, service.Features, service.IsActive, service.CreatedAt, service.UpdatedAt,
	).StructScan(service)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return nil, models.ErrSlugExists
		}
		return nil, fmt.Errorf("failed to create service: %w", err)
	}

	return service, nil
}

// GetServiceByID retrieves a service by ID
func (r *Repository) GetServiceByID(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	service := &models.Service{}
	query := `
		SELECT id, title, slug, description, category, price, features, is_active, created_at, updated_at
		FROM services
		WHERE id = $1
	`

	err := r.db.GetContext(ctx, service, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}

	return service, nil
}

// ListServices retrieves all services, optionally restricted to active ones
func (r *Repository) ListServices(ctx context.Context, activeOnly bool) ([]models.Service, error) {
	services := []models.Service{}
	query := `
		SELECT id, title, slug, description, category, price, features, is_active, created_at, updated_at
		FROM services
	`

	if activeOnly {
		query += " WHERE is_active = true"
	}

	query += " ORDER BY created_at ASC"

	err := r.db.SelectContext(ctx, &services, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	return services, nil
}

// ListActiveServices retrieves all active services in stable creation order.
// This is the catalog view consumed by the generation pass.
func (r *Repository) ListActiveServices(ctx context.Context) ([]models.Service, error) {
	return r.ListServices(ctx, true)
}

// UpdateService updates a service. A title change recomputes the slug;
// previously generated pages keep the slug they were created under.
func (r *Repository) UpdateService(ctx context.Context, id uuid.UUID, req *models.ServiceUpdateRequest) (*models.Service, error) {
	updateFields := []string{}
	args := []any{}
	argPos := 1

	if req.Title != nil {
		updateFields = append(updateFields, fmt.Sprintf("title = $%d", argPos))
		args = append(args, *req.Title)
		argPos++

		updateFields = append(updateFields, fmt.Sprintf("slug = $%d", argPos))
		args = append(args, models.Slugify(*req.Title))
		argPos++
	}

	if req.Description != nil {
		updateFields = append(updateFields, fmt.Sprintf("description = $%d", argPos))
		args = append(args, *req.Description)
		argPos++
	}

	if req.Category != nil {
		updateFields = append(updateFields, fmt.Sprintf("category = $%d", argPos))
		args = append(args, *req.Category)
		argPos++
	}

	if req.Price != nil {
		updateFields = append(updateFields, fmt.Sprintf("price = $%d", argPos))
		args = append(args, *req.Price)
		argPos++
	}

	if req.Features != nil {
		updateFields = append(updateFields, fmt.Sprintf("features = $%d", argPos))
		args = append(args, pq.Array(req.Features))
		argPos++
	}

	if req.IsActive != nil {
		updateFields = append(updateFields, fmt.Sprintf("is_active = $%d", argPos))
		args = append(args, *req.IsActive)
		argPos++
	}

	if len(updateFields) == 0 {
		return nil, models.ErrNoFieldsToUpdate
	}

	updateFields = append(updateFields, fmt.Sprintf("updated_at = $%d", argPos))
	args = append(args, time.Now())
	argPos++

	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE services
		SET %s
		WHERE id = $%d
		RETURNING id, title, slug, description, category, price, features, is_active, created_at, updated_at
	`, joinStrings(updateFields, ", "), argPos)

	service := &models.Service{}
	err := r.db.QueryRowxContext(ctx, query, args...).StructScan(service)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return nil, models.ErrSlugExists
		}
		return nil, fmt.Errorf("failed to update service: %w", err)
	}

	return service, nil
}

// DeleteService deletes a service. Generated pages referencing it survive
// until an explicit clear-pages operation.
func (r *Repository) DeleteService(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM services WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrNotFound
	}

	return nil
}

// CountServices returns the number of services, optionally active only
func (r *Repository) CountServices(ctx context.Context, activeOnly bool) (int64, error) {
	query := `SELECT COUNT(*) FROM services`
	if activeOnly {
		query += " WHERE is_active = true"
	}

	var count int64
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("failed to count services: %w", err)
	}

	return count, nil
}
