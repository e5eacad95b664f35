package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/pagegen/internal/logger"
	"github.com/jonesrussell/pagegen/internal/models"
)

// listCities handles GET /api/v1/cities
func (r *Router) listCities(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	cities, err := r.store.ListCities(c.Request.Context(), activeOnly)
	if err != nil {
		r.logger.Error("failed to list cities", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list cities"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cities": cities,
		"count":  len(cities),
	})
}

// createCity handles POST /api/v1/cities
func (r *Router) createCity(c *gin.Context) {
	var req models.CityCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	city, err := r.store.CreateCity(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, models.ErrSlugExists) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		r.logger.Error("failed to create city", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create city"})
		return
	}

	c.JSON(http.StatusCreated, city)
}

// getCity handles GET /api/v1/cities/:id
func (r *Router) getCity(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	city, err := r.store.GetCityByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		r.logger.Error("failed to get city", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get city"})
		return
	}

	c.JSON(http.StatusOK, city)
}

// updateCity handles PUT /api/v1/cities/:id. Editing a city never
// retroactively touches existing generated pages.
func (r *Router) updateCity(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req models.CityUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	city, err := r.store.UpdateCity(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, models.ErrSlugExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			r.logger.Error("failed to update city", logger.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update city"})
		}
		return
	}

	c.JSON(http.StatusOK, city)
}

// deleteCity handles DELETE /api/v1/cities/:id
func (r *Router) deleteCity(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := r.store.DeleteCity(c.Request.Context(), id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		r.logger.Error("failed to delete city", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete city"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
