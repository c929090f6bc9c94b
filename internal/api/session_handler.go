package api

import (
	"alcyxob/workout-builder/internal/service"
	"alcyxob/workout-builder/internal/session"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// SessionHandler serves live workout sessions.
type SessionHandler struct {
	sessionService service.SessionService
}

func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// --- DTOs ---

// AddLibraryExerciseRequest names a catalog exercise to add to a session.
type AddLibraryExerciseRequest struct {
	Name string `json:"name" binding:"required"`
}

// --- Handlers ---

// StartSession handles POST /api/v1/sessions
func (h *SessionHandler) StartSession(c *gin.Context) {
	view, err := h.sessionService.Start(c.Request.Context())
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// GetSession handles GET /api/v1/sessions/:id
func (h *SessionHandler) GetSession(c *gin.Context) {
	view, err := h.sessionService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ApplyCommand handles POST /api/v1/sessions/:id/commands
func (h *SessionHandler) ApplyCommand(c *gin.Context) {
	var envelope session.Envelope
	if err := c.ShouldBindJSON(&envelope); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	cmd, err := envelope.Decode()
	if err != nil {
		log.Debugf("rejected command %q for session %s: %v", envelope.Type, c.Param("id"), err)
		respondWithServiceError(c, err)
		return
	}

	view, err := h.sessionService.Dispatch(c.Request.Context(), c.Param("id"), cmd)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// AddLibraryExercise handles POST /api/v1/sessions/:id/library-exercises
func (h *SessionHandler) AddLibraryExercise(c *gin.Context) {
	var req AddLibraryExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	view, err := h.sessionService.AddFromLibrary(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// LoadWorkout handles POST /api/v1/sessions/:id/load/:workoutId
func (h *SessionHandler) LoadWorkout(c *gin.Context) {
	view, err := h.sessionService.LoadStored(c.Request.Context(), c.Param("id"), c.Param("workoutId"))
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// CompleteSession handles POST /api/v1/sessions/:id/complete
func (h *SessionHandler) CompleteSession(c *gin.Context) {
	record, err := h.sessionService.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapRecordToResponse(record))
}

// DiscardSession handles DELETE /api/v1/sessions/:id
func (h *SessionHandler) DiscardSession(c *gin.Context) {
	if err := h.sessionService.Discard(c.Request.Context(), c.Param("id")); err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
