package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jonesrussell/pagegen/internal/logger"
	"github.com/jonesrussell/pagegen/internal/models"
)

// parseIDParam parses the :id route parameter as a UUID
func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrInvalidUUID.Error()})
		return uuid.Nil, false
	}
	return id, true
}

// listServices handles GET /api/v1/services
func (r *Router) listServices(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	services, err := r.store.ListServices(c.Request.Context(), activeOnly)
	if err != nil {
		r.logger.Error("failed to list services", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list services"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"services": services,
		"count":    len(services),
	})
}

// createService handles POST /api/v1/services
func (r *Router) createService(c *gin.Context) {
	var req models.ServiceCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	service, err := r.store.CreateService(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, models.ErrSlugExists) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		r.logger.Error("failed to create service", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create service"})
		return
	}

	c.JSON(http.StatusCreated, service)
}

// getService handles GET /api/v1/services/:id
func (r *Router) getService(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	service, err := r.store.GetServiceByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		r.logger.Error("failed to get service", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get service"})
		return
	}

	c.JSON(http.StatusOK, service)
}

// updateService handles PUT /api/v1/services/:id. Editing a service never
// retroactively touches existing generated pages.
func (r *Router) updateService(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req models.ServiceUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	service, err := r.store.UpdateService(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, models.ErrSlugExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			r.logger.Error("failed to update service", logger.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update service"})
		}
		return
	}

	c.JSON(http.StatusOK, service)
}

// deleteService handles DELETE /api/v1/services/:id
func (r *Router) deleteService(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := r.store.DeleteService(c.Request.Context(), id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		r.logger.Error("failed to delete service", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete service"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
