package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/jonesrussell/pagegen/internal/models"
)

// joinStrings joins update fragments for dynamic SET clauses
func joinStrings(fields []string, sep string) string {
	return strings.Join(fields, sep)
}

// ====================
// Cities
// ====================

// CreateCity creates a new city. The slug is derived from the name.
func (r *Repository) CreateCity(ctx context.Context, req *models.CityCreateRequest) (*models.City, error) {
	now := time.Now()
	city := &models.City{
		ID:            uuid.New(),
		Name:          req.Name,
		Slug:          models.Slugify(req.Name),
		State:         req.State,
		Description:   req.Description,
		Landmarks:     pq.StringArray(req.Landmarks),
		LocalKeywords: pq.StringArray(req.LocalKeywords),
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if req.IsActive != nil {
		city.IsActive = *req.IsActive
	}
	if city.Landmarks == nil {
		city.Landmarks = pq.StringArray{}
	}
	if city.LocalKeywords == nil {
		city.LocalKeywords = pq.StringArray{}
	}

	query := `
		INSERT INTO cities (id, name, slug, state, description, landmarks, local_keywords, is_active, pages_generated, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, false, $9, $10)
		RETURNING id, name, slug, state, description, landmarks, local_keywords, is_active, pages_generated, generated_at, created_at, updated_at
	`

	err := r.db.QueryRowxContext(
		ctx, query,
		city.ID, city.Name, city.Slug, city.State, city.Description,
		city.Landmarks, city.LocalKeywords, city.IsActive, city.CreatedAt, city.UpdatedAt,
	).StructScan(city)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return nil, models.ErrSlugExists
		}
		return nil, fmt.Errorf("failed to create city: %w", err)
	}

	return city, nil
}

// GetCityByID retrieves a city by ID
func (r *Repository) GetCityByID(ctx context.Context, id uuid.UUID) (*models.City, error) {
	city := &models.City{}
	query := `
		SELECT id, name, slug, state, description, landmarks, local_keywords, is_active, pages_generated, generated_at, created_at, updated_at
		FROM cities
		WHERE id = $1
	`

	err := r.db.GetContext(ctx, city, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get city: %w", err)
	}

	return city, nil
}

// ListCities retrieves all cities, optionally restricted to active ones
func (r *Repository) ListCities(ctx context.Context, activeOnly bool) ([]models.City, error) {
	cities := []models.City{}
	query := `
		SELECT id, name, slug, state, description, landmarks, local_keywords, is_active, pages_generated, generated_at, created_at, updated_at
		FROM cities
	`

	if activeOnly {
		query += " WHERE is_active = true"
	}

	query += " ORDER BY created_at ASC"

	err := r.db.SelectContext(ctx, &cities, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}

	return cities, nil
}

// ListActiveCities retrieves all active cities in stable creation order.
// This is the catalog view consumed by the generation pass.
func (r *Repository) ListActiveCities(ctx context.Context) ([]models.City, error) {
	return r.ListCities(ctx, true)
}

// UpdateCity updates a city. A name change recomputes the slug; previously
// generated pages keep the slug they were created under.
func (r *Repository) UpdateCity(ctx context.Context, id uuid.UUID, req *models.CityUpdateRequest) (*models.City, error) {
	updateFields := []string{}
	args := []any{}
	argPos := 1

	if req.Name != nil {
		updateFields = append(updateFields, fmt.Sprintf("name = $%d", argPos))
		args = append(args, *req.Name)
		argPos++

		updateFields = append(updateFields, fmt.Sprintf("slug = $%d", argPos))
		args = append(args, models.Slugify(*req.Name))
		argPos++
	}

	if req.State != nil {
		updateFields = append(updateFields, fmt.Sprintf("state = $%d", argPos))
		args = append(args, *req.State)
		argPos++
	}

	if req.Description != nil {
		updateFields = append(updateFields, fmt.Sprintf("description = $%d", argPos))
		args = append(args, *req.Description)
		argPos++
	}

	if req.Landmarks != nil {
		updateFields = append(updateFields, fmt.Sprintf("landmarks = $%d", argPos))
		args = append(args, pq.Array(req.Landmarks))
		argPos++
	}

	if req.LocalKeywords != nil {
		updateFields = append(updateFields, fmt.Sprintf("local_keywords = $%d", argPos))
		args = append(args, pq.Array(req.LocalKeywords))
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
		UPDATE cities
		SET %s
		WHERE id = $%d
		RETURNING id, name, slug, state, description, landmarks, local_keywords, is_active, pages_generated, generated_at, created_at, updated_at
	`, joinStrings(updateFields, ", "), argPos)

	city := &models.City{}
	err := r.db.QueryRowxContext(ctx, query, args...).StructScan(city)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return nil, models.ErrSlugExists
		}
		return nil, fmt.Errorf("failed to update city: %w", err)
	}

	return city, nil
}

// DeleteCity deletes a city. Generated pages referencing it survive until an
// explicit clear-pages operation.
func (r *Repository) DeleteCity(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM cities WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete city: %w", err)
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

// MarkCityGenerated records the completion of a full generation pass for a
// city. Written only by the generation orchestrator.
func (r *Repository) MarkCityGenerated(ctx context.Context, id uuid.UUID, generatedAt time.Time) error {
	query := `
		UPDATE cities
		SET pages_generated = true, generated_at = $1, updated_at = $2
		WHERE id = $3
	`

	result, err := r.db.ExecContext(ctx, query, generatedAt, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to mark city generated: %w", err)
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

// CountCities returns the number of cities, optionally active only
func (r *Repository) CountCities(ctx context.Context, activeOnly bool) (int64, error) {
	query := `SELECT COUNT(*) FROM cities`
	if activeOnly {
		query += " WHERE is_active = true"
	}

	var count int64
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("failed to count cities: %w", err)
	}

	return count, nil
}
