package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/pagegen/internal/config"
	"github.com/jonesrussell/pagegen/internal/generator"
	"github.com/jonesrussell/pagegen/internal/logger"
	"github.com/jonesrussell/pagegen/internal/models"
)

type fakeStore struct {
	pages     map[string]*models.Page
	slugs     []string
	deleted   int64
	pageCount int64
	svcCount  int64
	cityCount int64
	pingErr   error
}

func (f *fakeStore) Ping(_ context.Context) error { return f.pingErr }

func (f *fakeStore) CreateService(context.Context, *models.ServiceCreateRequest) (*models.Service, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeStore) GetServiceByID(context.Context, uuid.UUID) (*models.Service, error) {
	return nil, models.ErrNotFound
}

func (f *fakeStore) ListServices(context.Context, bool) ([]models.Service, error) {
	return nil, nil
}

func (f *fakeStore) UpdateService(context.Context, uuid.UUID, *models.ServiceUpdateRequest) (*models.Service, error) {
	return nil, models.ErrNotFound
}

func (f *fakeStore) DeleteService(context.Context, uuid.UUID) error { return models.ErrNotFound }

func (f *fakeStore) CountServices(context.Context, bool) (int64, error) { return f.svcCount, nil }

func (f *fakeStore) CreateCity(context.Context, *models.CityCreateRequest) (*models.City, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeStore) GetCityByID(context.Context, uuid.UUID) (*models.City, error) {
	return nil, models.ErrNotFound
}

func (f *fakeStore) ListCities(context.Context, bool) ([]models.City, error) { return nil, nil }

func (f *fakeStore) UpdateCity(context.Context, uuid.UUID, *models.CityUpdateRequest) (*models.City, error) {
	return nil, models.ErrNotFound
}

func (f *fakeStore) DeleteCity(context.Context, uuid.UUID) error { return models.ErrNotFound }

func (f *fakeStore) CountCities(context.Context, bool) (int64, error) { return f.cityCount, nil }

func (f *fakeStore) GetPageBySlug(_ context.Context, slug string) (*models.Page, error) {
	if page, ok := f.pages[slug]; ok {
		return page, nil
	}
	return nil, models.ErrNotFound
}

func (f *fakeStore) ListPageSlugs(_ context.Context, limit int) ([]string, error) {
	if limit < len(f.slugs) {
		return f.slugs[:limit], nil
	}
	return f.slugs, nil
}

func (f *fakeStore) DeleteAllPages(_ context.Context) (int64, error) { return f.deleted, nil }

func (f *fakeStore) CountPages(_ context.Context) (int64, error) { return f.pageCount, nil }

type fakeResolver struct {
	entries map[string]*models.Page
	flushed bool
}

func (f *fakeResolver) Get(_ context.Context, slug string) *models.Page {
	return f.entries[slug]
}

func (f *fakeResolver) Set(_ context.Context, page *models.Page) error {
	if f.entries == nil {
		f.entries = map[string]*models.Page{}
	}
	f.entries[page.Slug] = page
	return nil
}

func (f *fakeResolver) Flush(_ context.Context) error {
	f.flushed = true
	f.entries = map[string]*models.Page{}
	return nil
}

type fakePasses struct {
	report *generator.Report
	runErr error
	runs   int
}

func (f *fakePasses) Run(_ context.Context) (*generator.Report, error) {
	f.runs++
	if f.runErr != nil {
		return nil, f.runErr
	}
	return f.report, nil
}

func (f *fakePasses) LastReport() *generator.Report { return f.report }

func testConfig() *config.Config {
	return &config.Config{
		Site: config.SiteConfig{
			Origin: "https://pagegen.example",
			Brand:  "Pagegen Digital",
		},
		Generation: config.GenerationConfig{
			PrerenderLimit: 5,
			CacheTTL:       time.Hour,
		},
	}
}

func newTestRouter(store *fakeStore, resolver *fakeResolver, passes *fakePasses) http.Handler {
	r := NewRouter(store, resolver, passes, nil, testConfig(), logger.NewNopLogger(), "test")
	return r.Engine()
}

func perform(t *testing.T, handler http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	body := map[string]any{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func storedPage(slug string) *models.Page {
	return &models.Page{
		ID:        uuid.New(),
		ServiceID: uuid.New(),
		CityID:    uuid.New(),
		Slug:      slug,
		Title:     "Best Web Design Services in Pune (2026)",
	}
}

func TestResolvePageFromStore(t *testing.T) {
	store := &fakeStore{pages: map[string]*models.Page{
		"pune/web-design": storedPage("pune/web-design"),
	}}
	resolver := &fakeResolver{}
	handler := newTestRouter(store, resolver, &fakePasses{})

	rec := perform(t, handler, http.MethodGet, "/pune/web-design")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	page := body["page"].(map[string]any)
	assert.Equal(t, "pune/web-design", page["slug"])

	// The resolved page is written back to the cache.
	assert.NotNil(t, resolver.entries["pune/web-design"])
}

func TestResolvePageFromCache(t *testing.T) {
	cached := storedPage("pune/web-design")
	cached.Title = "cached copy"

	store := &fakeStore{}
	resolver := &fakeResolver{entries: map[string]*models.Page{
		"pune/web-design": cached,
	}}
	handler := newTestRouter(store, resolver, &fakePasses{})

	rec := perform(t, handler, http.MethodGet, "/pune/web-design")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	page := body["page"].(map[string]any)
	assert.Equal(t, "cached copy", page["title"])
}

func TestResolvePageNotFound(t *testing.T) {
	handler := newTestRouter(&fakeStore{}, &fakeResolver{}, &fakePasses{})

	rec := perform(t, handler, http.MethodGet, "/pune/never-generated")

	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "page not found", body["error"])
	assert.Equal(t, "Page Not Found | Pagegen Digital", body["meta_title"])
	assert.NotEmpty(t, body["meta_description"])
}

func TestResolvePageRejectsMalformedPaths(t *testing.T) {
	handler := newTestRouter(&fakeStore{}, &fakeResolver{}, &fakePasses{})

	for _, path := range []string{"/", "/pune", "/pune/web-design/extra"} {
		rec := perform(t, handler, http.MethodGet, path)
		assert.Equal(t, http.StatusNotFound, rec.Code, "path %q", path)
	}
}

func TestResolvePageRejectsNonGet(t *testing.T) {
	store := &fakeStore{pages: map[string]*models.Page{
		"pune/web-design": storedPage("pune/web-design"),
	}}
	handler := newTestRouter(store, &fakeResolver{}, &fakePasses{})

	rec := perform(t, handler, http.MethodPost, "/pune/web-design")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListPageSlugsCapsLimit(t *testing.T) {
	store := &fakeStore{slugs: []string{"a/a", "b/b", "c/c", "d/d", "e/e", "f/f", "g/g"}}
	handler := newTestRouter(store, &fakeResolver{}, &fakePasses{})

	// No explicit limit uses the configured prerender limit of 5.
	rec := perform(t, handler, http.MethodGet, "/api/v1/pages/slugs")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(5), body["count"])

	// An explicit limit above the cap is still capped.
	rec = perform(t, handler, http.MethodGet, "/api/v1/pages/slugs?limit=100")
	body = decodeBody(t, rec)
	assert.Equal(t, float64(5), body["count"])

	// A smaller limit is honored.
	rec = perform(t, handler, http.MethodGet, "/api/v1/pages/slugs?limit=2")
	body = decodeBody(t, rec)
	assert.Equal(t, float64(2), body["count"])
}

func TestListPageSlugsRejectsBadLimit(t *testing.T) {
	handler := newTestRouter(&fakeStore{}, &fakeResolver{}, &fakePasses{})

	for _, limit := range []string{"abc", "0", "-3"} {
		rec := perform(t, handler, http.MethodGet, "/api/v1/pages/slugs?limit="+limit)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "limit %q", limit)
	}
}

func TestClearPagesFlushesCache(t *testing.T) {
	store := &fakeStore{deleted: 36}
	resolver := &fakeResolver{entries: map[string]*models.Page{
		"pune/web-design": storedPage("pune/web-design"),
	}}
	handler := newTestRouter(store, resolver, &fakePasses{})

	rec := perform(t, handler, http.MethodDelete, "/api/v1/pages")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(36), body["deleted"])
	assert.True(t, resolver.flushed)
}

func TestTriggerGeneration(t *testing.T) {
	passes := &fakePasses{report: &generator.Report{Generated: 36, Cities: 6, Services: 6}}
	handler := newTestRouter(&fakeStore{}, &fakeResolver{}, passes)

	rec := perform(t, handler, http.MethodPost, "/api/v1/generate")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, passes.runs)

	body := decodeBody(t, rec)
	report := body["report"].(map[string]any)
	assert.Equal(t, float64(36), report["generated"])
}

func TestTriggerGenerationFailure(t *testing.T) {
	passes := &fakePasses{runErr: errors.New("catalog unreachable")}
	handler := newTestRouter(&fakeStore{}, &fakeResolver{}, passes)

	rec := perform(t, handler, http.MethodPost, "/api/v1/generate")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetStats(t *testing.T) {
	store := &fakeStore{pageCount: 36, svcCount: 6, cityCount: 6}
	passes := &fakePasses{report: &generator.Report{Generated: 36}}
	handler := newTestRouter(store, &fakeResolver{}, passes)

	rec := perform(t, handler, http.MethodGet, "/api/v1/stats")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(36), body["pages"])
	assert.Equal(t, float64(6), body["active_services"])
	assert.Equal(t, float64(6), body["active_cities"])
	assert.Contains(t, body, "last_pass")
}

func TestHealthDegradedWithoutRedis(t *testing.T) {
	handler := newTestRouter(&fakeStore{}, &fakeResolver{}, &fakePasses{})

	rec := perform(t, handler, http.MethodGet, "/health")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "degraded", body["status"])
}

func TestHealthDegradedOnDatabaseFailure(t *testing.T) {
	store := &fakeStore{pingErr: errors.New("connection refused")}
	handler := newTestRouter(store, &fakeResolver{}, &fakePasses{})

	rec := perform(t, handler, http.MethodGet, "/health")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "degraded", body["status"])
}
