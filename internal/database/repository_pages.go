package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/jonesrussell/pagegen/internal/models"
)

// ====================
// Pages
// ====================

// CreatePage persists a generated page. The unique constraints on
// (service_id, city_id) and on slug are enforced by the database, so two
// overlapping generation passes can never produce two pages for the same
// pair; a violation of either surfaces as ErrPageExists and is never an
// overwrite.
func (r *Repository) CreatePage(ctx context.Context, page *models.Page) error {
	query := `
		INSERT INTO pages (
			id, service_id, city_id, slug, title, meta_title, meta_description,
			keywords, content, canonical_url, breadcrumbs, structured_data, faq_schema,
			is_generated, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.ExecContext(
		ctx, query,
		page.ID, page.ServiceID, page.CityID, page.Slug, page.Title,
		page.MetaTitle, page.MetaDescription, page.Keywords, page.Content,
		page.CanonicalURL, page.Breadcrumbs, page.StructuredData, page.FAQSchema,
		page.IsGenerated, page.CreatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return models.ErrPageExists
		}
		return fmt.Errorf("failed to create page: %w", err)
	}

	return nil
}

// GetPageBySlug retrieves a page by its composite slug "{citySlug}/{serviceSlug}"
func (r *Repository) GetPageBySlug(ctx context.Context, slug string) (*models.Page, error) {
	page := &models.Page{}
	query := `
		SELECT id, service_id, city_id, slug, title, meta_title, meta_description,
			keywords, content, canonical_url, breadcrumbs, structured_data, faq_schema,
			is_generated, created_at
		FROM pages
		WHERE slug = $1
	`

	err := r.db.GetContext(ctx, page, query, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get page: %w", err)
	}

	return page, nil
}

// ListPageSlugs returns up to limit known page slugs for pre-rendering,
// oldest first so the long-standing pages are pre-rendered ahead of newer
// ones.
func (r *Repository) ListPageSlugs(ctx context.Context, limit int) ([]string, error) {
	slugs := []string{}
	query := `
		SELECT slug
		FROM pages
		ORDER BY created_at ASC
		LIMIT $1
	`

	err := r.db.SelectContext(ctx, &slugs, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list page slugs: %w", err)
	}

	return slugs, nil
}

// DeleteAllPages removes every generated page unconditionally and returns the
// number of pages removed. This is the administrative clear operation.
func (r *Repository) DeleteAllPages(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM pages`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete pages: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return deleted, nil
}

// CountPages returns the total number of generated pages
func (r *Repository) CountPages(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM pages`); err != nil {
		return 0, fmt.Errorf("failed to count pages: %w", err)
	}

	return count, nil
}
