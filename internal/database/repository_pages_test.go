package database

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/pagegen/internal/models"
)

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func samplePage() *models.Page {
	return &models.Page{
		ID:              uuid.New(),
		ServiceID:       uuid.New(),
		CityID:          uuid.New(),
		Slug:            "pune/web-design",
		Title:           "Best Web Design Services in Pune (2026)",
		MetaTitle:       "Web Design Pune | #1 2026",
		MetaDescription: "Professional web design in Pune.",
		Keywords:        pq.StringArray{"web design pune", "pune"},
		Content:         "# Web Design in Pune",
		CanonicalURL:    "https://pagegen.example/pune/web-design",
		Breadcrumbs: models.Breadcrumbs{
			{Label: "Home", Path: "/"},
			{Label: "Pune", Path: "/pune"},
			{Label: "Web Design", Path: "/pune/web-design"},
		},
		StructuredData: models.JSONDoc(`{"@type":"Service"}`),
		FAQSchema:      models.JSONDoc(`{"@type":"FAQPage"}`),
		IsGenerated:    true,
		CreatedAt:      time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC),
	}
}

func TestCreatePage(t *testing.T) {
	repo, mock := newMockRepository(t)
	page := samplePage()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO pages`)).
		WithArgs(
			page.ID, page.ServiceID, page.CityID, page.Slug, page.Title,
			page.MetaTitle, page.MetaDescription, page.Keywords, page.Content,
			page.CanonicalURL, page.Breadcrumbs, page.StructuredData, page.FAQSchema,
			page.IsGenerated, page.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.CreatePage(context.Background(), page)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePageUniqueViolation(t *testing.T) {
	repo, mock := newMockRepository(t)
	page := samplePage()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO pages`)).
		WillReturnError(&pq.Error{Code: pqUniqueViolation, Constraint: "pages_service_city_key"})

	err := repo.CreatePage(context.Background(), page)
	assert.ErrorIs(t, err, models.ErrPageExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPageBySlugNotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM pages`)).
		WithArgs("pune/missing").
		WillReturnRows(sqlmock.NewRows([]string{"slug"}))

	_, err := repo.GetPageBySlug(context.Background(), "pune/missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPageBySlug(t *testing.T) {
	repo, mock := newMockRepository(t)
	page := samplePage()

	breadcrumbs, err := json.Marshal(page.Breadcrumbs)
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{
		"id", "service_id", "city_id", "slug", "title", "meta_title",
		"meta_description", "keywords", "content", "canonical_url",
		"breadcrumbs", "structured_data", "faq_schema", "is_generated", "created_at",
	}).AddRow(
		page.ID, page.ServiceID, page.CityID, page.Slug, page.Title,
		page.MetaTitle, page.MetaDescription, `{"web design pune","pune"}`,
		page.Content, page.CanonicalURL, breadcrumbs, []byte(page.StructuredData),
		[]byte(page.FAQSchema), page.IsGenerated, page.CreatedAt,
	)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM pages`)).
		WithArgs(page.Slug).
		WillReturnRows(rows)

	got, err := repo.GetPageBySlug(context.Background(), page.Slug)
	require.NoError(t, err)

	assert.Equal(t, page.Slug, got.Slug)
	assert.Equal(t, page.Keywords, got.Keywords)
	assert.Equal(t, page.Breadcrumbs, got.Breadcrumbs)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListPageSlugs(t *testing.T) {
	repo, mock := newMockRepository(t)

	rows := sqlmock.NewRows([]string{"slug"}).
		AddRow("pune/web-design").
		AddRow("pune/seo")

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT slug`)).
		WithArgs(100).
		WillReturnRows(rows)

	slugs, err := repo.ListPageSlugs(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, []string{"pune/web-design", "pune/seo"}, slugs)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAllPages(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM pages`)).
		WillReturnResult(sqlmock.NewResult(0, 36))

	deleted, err := repo.DeleteAllPages(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(36), deleted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCountPages(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM pages`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(36))

	count, err := repo.CountPages(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(36), count)
	require.NoError(t, mock.ExpectationsWereMet())
}
