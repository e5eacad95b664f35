// Package generator drives the combinatorial generation pass: every active
// city crossed with every active service, one page per pair, idempotently.
package generator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jonesrussell/pagegen/internal/logger"
	"github.com/jonesrussell/pagegen/internal/metrics"
	"github.com/jonesrussell/pagegen/internal/models"
	"github.com/jonesrussell/pagegen/internal/seo"
)

// Catalog is the read-mostly view of the service and city collections. The
// orchestrator is the only writer of the per-city generation flag.
type Catalog interface {
	ListActiveCities(ctx context.Context) ([]models.City, error)
	ListActiveServices(ctx context.Context) ([]models.Service, error)
	MarkCityGenerated(ctx context.Context, id uuid.UUID, generatedAt time.Time) error
}

// PageStore is the keyed store of generated pages. Create must enforce the
// (service, city) uniqueness constraint itself; the orchestrator's existence
// check is only an optimization.
type PageStore interface {
	GetPageBySlug(ctx context.Context, slug string) (*models.Page, error)
	CreatePage(ctx context.Context, page *models.Page) error
}

// Report aggregates the outcome of one full generation pass
type Report struct {
	Generated   int       `json:"generated"`
	Skipped     int       `json:"skipped"`
	Failed      int       `json:"failed"`
	Cities      int       `json:"cities"`
	Services    int       `json:"services"`
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`
}

// Generator is the generation orchestrator
type Generator struct {
	catalog     Catalog
	pages       PageStore
	synthesizer *seo.Synthesizer
	metrics     *metrics.Metrics
	logger      logger.Logger
	tracer      trace.Tracer

	mu         sync.Mutex
	lastReport *Report
}

// New creates a generation orchestrator
func New(catalog Catalog, pages PageStore, synth *seo.Synthesizer, m *metrics.Metrics, log logger.Logger) *Generator {
	return &Generator{
		catalog:     catalog,
		pages:       pages,
		synthesizer: synth,
		metrics:     m,
		logger:      log,
		tracer:      otel.Tracer("page-generator"),
	}
}

// Run executes one full pass. A catalog load failure aborts before any
// mutation; a single pair failure is counted and the sweep continues. The
// pass is interruptible: context cancellation stops between pairs, leaving a
// consistent state the next pass completes.
func (g *Generator) Run(ctx context.Context) (*Report, error) {
	start := time.Now()

	cities, err := g.catalog.ListActiveCities(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active cities: %w", err)
	}

	services, err := g.catalog.ListActiveServices(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active services: %w", err)
	}

	report := &Report{
		Cities:    len(cities),
		Services:  len(services),
		StartedAt: start,
	}

	g.logger.Info("starting generation pass",
		logger.Int("cities", len(cities)),
		logger.Int("services", len(services)),
	)

	for ci := range cities {
		city := &cities[ci]

		for si := range services {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return report, ctxErr
			}
			g.generateOne(ctx, &services[si], city, report)
		}

		// A city with zero pending services is still fully generated.
		if markErr := g.catalog.MarkCityGenerated(ctx, city.ID, time.Now()); markErr != nil {
			g.logger.Error("failed to mark city generated",
				logger.String("city", city.Slug),
				logger.Error(markErr),
			)
		}
	}

	report.CompletedAt = time.Now()
	g.metrics.PassDuration.Observe(report.CompletedAt.Sub(start).Seconds())

	g.mu.Lock()
	g.lastReport = report
	g.mu.Unlock()

	g.logger.Info("generation pass complete",
		logger.Int("generated", report.Generated),
		logger.Int("skipped", report.Skipped),
		logger.Int("failed", report.Failed),
		logger.Duration("elapsed", report.CompletedAt.Sub(start)),
	)

	return report, nil
}

// generateOne processes a single (service, city) pair
func (g *Generator) generateOne(ctx context.Context, service *models.Service, city *models.City, report *Report) {
	ctx, span := g.tracer.Start(ctx, "generator.pair",
		trace.WithAttributes(
			attribute.String("service", service.Slug),
			attribute.String("city", city.Slug),
		))
	defer span.End()

	slug := models.PageSlug(city.Slug, service.Slug)

	_, err := g.pages.GetPageBySlug(ctx, slug)
	switch {
	case err == nil:
		// Already generated; idempotent skip.
		report.Skipped++
		g.metrics.PagesSkipped.Inc()
		return
	case !errors.Is(err, models.ErrNotFound):
		report.Failed++
		g.metrics.PagesFailed.Inc()
		g.logger.Error("page lookup failed",
			logger.String("slug", slug),
			logger.Error(err),
		)
		return
	}

	bundle := g.synthesizer.Synthesize(service, city, time.Now())

	page := &models.Page{
		ID:              uuid.New(),
		ServiceID:       service.ID,
		CityID:          city.ID,
		Slug:            bundle.Slug,
		Title:           bundle.Title,
		MetaTitle:       bundle.MetaTitle,
		MetaDescription: bundle.MetaDescription,
		Keywords:        bundle.Keywords,
		Content:         bundle.Content,
		CanonicalURL:    bundle.CanonicalURL,
		Breadcrumbs:     bundle.Breadcrumbs,
		StructuredData:  bundle.StructuredData,
		FAQSchema:       bundle.FAQSchema,
		IsGenerated:     true,
		CreatedAt:       time.Now(),
	}

	if createErr := g.pages.CreatePage(ctx, page); createErr != nil {
		if errors.Is(createErr, models.ErrPageExists) {
			// Lost a race with a concurrent pass; the constraint held.
			report.Skipped++
			g.metrics.PagesSkipped.Inc()
			g.logger.Debug("page created by concurrent pass",
				logger.String("slug", slug),
			)
			return
		}

		report.Failed++
		g.metrics.PagesFailed.Inc()
		g.logger.Error("failed to persist page",
			logger.String("slug", slug),
			logger.Error(createErr),
		)
		return
	}

	report.Generated++
	g.metrics.PagesGenerated.Inc()
	g.logger.Debug("generated page", logger.String("slug", slug))
}

// LastReport returns the most recent completed pass report, or nil
func (g *Generator) LastReport() *Report {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastReport
}
