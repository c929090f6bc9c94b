package api

import (
	"alcyxob/workout-builder/internal/catalog"
	"alcyxob/workout-builder/internal/domain"
	"alcyxob/workout-builder/internal/repository"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the read-only exercise catalog.
type CatalogHandler struct {
	catalogService catalog.Service
}

func NewCatalogHandler(catalogService catalog.Service) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// CatalogSearchQuery binds the catalog search query string.
type CatalogSearchQuery struct {
	Query     string `form:"q"`
	Muscle    string `form:"muscle"`
	Equipment string `form:"equipment"`
}

// SearchCatalog handles GET /api/v1/catalog?q=&muscle=&equipment=
func (h *CatalogHandler) SearchCatalog(c *gin.Context) {
	var query CatalogSearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid query: "+err.Error())
		return
	}

	entries, err := h.catalogService.Search(c.Request.Context(), repository.CatalogFilter{
		Query:     query.Query,
		Muscle:    query.Muscle,
		Equipment: query.Equipment,
	})
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	if entries == nil {
		entries = []domain.CatalogEntry{}
	}
	c.JSON(http.StatusOK, entries)
}

// GetCatalogEntry handles GET /api/v1/catalog/:name
func (h *CatalogHandler) GetCatalogEntry(c *gin.Context) {
	entry, err := h.catalogService.Find(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}
