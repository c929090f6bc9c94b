package api

import (
	"alcyxob/workout-builder/internal/catalog"
	"alcyxob/workout-builder/internal/service"
	"alcyxob/workout-builder/internal/session"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// respondWithServiceError maps service errors to HTTP status codes.
func respondWithServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrWorkoutNotFound),
		errors.Is(err, catalog.ErrEntryNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, session.ErrUnknownCommand),
		errors.Is(err, session.ErrInvalidPayload):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrExportUnavailable):
		abortWithError(c, http.StatusNotImplemented, err.Error())
	case errors.Is(err, service.ErrCatalogUnavailable):
		abortWithError(c, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, service.ErrSaveFailed),
		errors.Is(err, service.ErrExportFailed):
		abortWithError(c, http.StatusBadGateway, err.Error())
	default:
		log.Errorf("unhandled error serving %s: %v", c.Request.URL.Path, err)
		abortWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}
