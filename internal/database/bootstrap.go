package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schema creates the catalog and page tables. The unique constraints on
// pages(service_id, city_id) and pages(slug) are the correctness mechanism
// for the generation pass: the orchestrator's existence check only avoids
// redundant synthesis work. Pages carry no foreign keys because a generated
// page survives deletion of its parent service or city until an explicit
// clear.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS services (
		id UUID PRIMARY KEY,
		title TEXT NOT NULL,
		slug TEXT NOT NULL,
		description TEXT NOT NULL,
		category TEXT NOT NULL,
		price BIGINT NOT NULL,
		features TEXT[] NOT NULL DEFAULT '{}',
		is_active BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		CONSTRAINT services_slug_key UNIQUE (slug)
	)`,
	`CREATE TABLE IF NOT EXISTS cities (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		slug TEXT NOT NULL,
		state TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		landmarks TEXT[] NOT NULL DEFAULT '{}',
		local_keywords TEXT[] NOT NULL DEFAULT '{}',
		is_active BOOLEAN NOT NULL DEFAULT true,
		pages_generated BOOLEAN NOT NULL DEFAULT false,
		generated_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		CONSTRAINT cities_slug_key UNIQUE (slug)
	)`,
	`CREATE TABLE IF NOT EXISTS pages (
		id UUID PRIMARY KEY,
		service_id UUID NOT NULL,
		city_id UUID NOT NULL,
		slug TEXT NOT NULL,
		title TEXT NOT NULL,
		meta_title TEXT NOT NULL,
		meta_description TEXT NOT NULL,
		keywords TEXT[] NOT NULL DEFAULT '{}',
		content TEXT NOT NULL,
		canonical_url TEXT NOT NULL,
		breadcrumbs JSONB NOT NULL,
		structured_data JSONB NOT NULL,
		faq_schema JSONB,
		is_generated BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMPTZ NOT NULL,
		CONSTRAINT pages_service_city_key UNIQUE (service_id, city_id),
		CONSTRAINT pages_slug_key UNIQUE (slug)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_services_active ON services (is_active)`,
	`CREATE INDEX IF NOT EXISTS idx_cities_active ON cities (is_active)`,
}

// Bootstrap creates the tables and indexes if they do not exist
func Bootstrap(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
