package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/pagegen/internal/logger"
	"github.com/jonesrussell/pagegen/internal/models"
)

// resolvePage serves GET /{citySlug}/{serviceSlug}. It is registered as the
// NoRoute handler, so every unresolved path lands here and collapses to the
// same not-found payload whether the page was never generated or its parents
// were deactivated.
func (r *Router) resolvePage(c *gin.Context) {
	if c.Request.Method != http.MethodGet {
		r.renderNotFound(c)
		return
	}

	parts := strings.Split(strings.Trim(c.Request.URL.Path, "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		r.renderNotFound(c)
		return
	}

	slug := models.PageSlug(parts[0], parts[1])
	ctx := c.Request.Context()

	if page := r.pageCache.Get(ctx, slug); page != nil {
		c.JSON(http.StatusOK, gin.H{"page": page})
		return
	}

	page, err := r.store.GetPageBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			r.renderNotFound(c)
			return
		}
		r.logger.Error("page resolution failed",
			logger.String("slug", slug),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve page"})
		return
	}

	if cacheErr := r.pageCache.Set(ctx, page); cacheErr != nil {
		r.logger.Warn("failed to cache page",
			logger.String("slug", slug),
			logger.Error(cacheErr),
		)
	}

	c.JSON(http.StatusOK, gin.H{"page": page})
}

// renderNotFound emits the generic not-found payload with fallback metadata
func (r *Router) renderNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"error":            "page not found",
		"meta_title":       "Page Not Found | " + r.cfg.Site.Brand,
		"meta_description": "The page you are looking for does not exist or is no longer available.",
	})
}

// listPageSlugs handles GET /api/v1/pages/slugs, the bounded listing used to
// pre-render pages ahead of request time. The limit is capped by the
// operator-configured prerender limit.
func (r *Router) listPageSlugs(c *gin.Context) {
	limit := r.cfg.Generation.PrerenderLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		if parsed < limit {
			limit = parsed
		}
	}

	slugs, err := r.store.ListPageSlugs(c.Request.Context(), limit)
	if err != nil {
		r.logger.Error("failed to list page slugs", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list page slugs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"slugs": slugs,
		"count": len(slugs),
	})
}

// clearPages handles DELETE /api/v1/pages: the administrative operation that
// removes all generated pages unconditionally.
func (r *Router) clearPages(c *gin.Context) {
	ctx := c.Request.Context()

	deleted, err := r.store.DeleteAllPages(ctx)
	if err != nil {
		r.logger.Error("failed to clear pages", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear pages"})
		return
	}

	if flushErr := r.pageCache.Flush(ctx); flushErr != nil {
		r.logger.Warn("failed to flush page cache after clear", logger.Error(flushErr))
	}

	r.logger.Info("cleared generated pages", logger.Int64("deleted", deleted))
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// triggerGeneration handles POST /api/v1/generate: one full pass over the
// active catalog.
func (r *Router) triggerGeneration(c *gin.Context) {
	report, err := r.passes.Run(c.Request.Context())
	if err != nil {
		r.logger.Error("generation pass failed", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "generation pass failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}

// getStats handles GET /api/v1/stats
func (r *Router) getStats(c *gin.Context) {
	ctx := c.Request.Context()

	pageCount, err := r.store.CountPages(ctx)
	if err != nil {
		r.logger.Error("failed to count pages", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve stats"})
		return
	}

	serviceCount, err := r.store.CountServices(ctx, true)
	if err != nil {
		r.logger.Error("failed to count services", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve stats"})
		return
	}

	cityCount, err := r.store.CountCities(ctx, true)
	if err != nil {
		r.logger.Error("failed to count cities", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve stats"})
		return
	}

	stats := gin.H{
		"pages":           pageCount,
		"active_services": serviceCount,
		"active_cities":   cityCount,
	}
	if report := r.passes.LastReport(); report != nil {
		stats["last_pass"] = report
	}

	c.JSON(http.StatusOK, stats)
}
