package api

import (
	"alcyxob/workout-builder/internal/domain"
	"alcyxob/workout-builder/internal/service"
	"alcyxob/workout-builder/internal/session"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// WorkoutHandler serves stored workout logs and templates.
type WorkoutHandler struct {
	sessionService service.SessionService
}

func NewWorkoutHandler(sessionService service.SessionService) *WorkoutHandler {
	return &WorkoutHandler{sessionService: sessionService}
}

// --- DTOs ---

// WorkoutRecordResponse is a stored workout with its derived progress.
type WorkoutRecordResponse struct {
	domain.WorkoutSession
	IsTemplate bool             `json:"is_template"`
	SavedAt    time.Time        `json:"savedAt"`
	Progress   session.Progress `json:"progress"`
}

// WorkoutSummaryResponse is the list form of a stored workout.
type WorkoutSummaryResponse struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	IsTemplate           bool      `json:"is_template"`
	ElapsedSeconds       int       `json:"elapsedSeconds"`
	ExerciseCount        int       `json:"exerciseCount"`
	TotalSets            int       `json:"totalSets"`
	CompletionPercentage float64   `json:"completionPercentage"`
	SavedAt              time.Time `json:"savedAt"`
}

func MapRecordToResponse(record *domain.WorkoutRecord) WorkoutRecordResponse {
	if record == nil {
		return WorkoutRecordResponse{}
	}
	return WorkoutRecordResponse{
		WorkoutSession: record.WorkoutSession,
		IsTemplate:     record.IsTemplate,
		SavedAt:        record.SavedAt,
		Progress:       session.ProgressOf(record.WorkoutSession),
	}
}

func MapRecordsToSummaries(records []domain.WorkoutRecord) []WorkoutSummaryResponse {
	summaries := make([]WorkoutSummaryResponse, len(records))
	for i, r := range records {
		progress := session.ProgressOf(r.WorkoutSession)
		summaries[i] = WorkoutSummaryResponse{
			ID:                   r.ID,
			Name:                 r.Name,
			IsTemplate:           r.IsTemplate,
			ElapsedSeconds:       r.ElapsedSeconds,
			ExerciseCount:        len(r.Exercises),
			TotalSets:            progress.TotalSets,
			CompletionPercentage: progress.CompletionPercentage,
			SavedAt:              r.SavedAt,
		}
	}
	return summaries
}

// --- Handlers ---

// ListHistory handles GET /api/v1/workouts
func (h *WorkoutHandler) ListHistory(c *gin.Context) {
	records, err := h.sessionService.History(c.Request.Context())
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapRecordsToSummaries(records))
}

// ListTemplates handles GET /api/v1/templates
func (h *WorkoutHandler) ListTemplates(c *gin.Context) {
	records, err := h.sessionService.Templates(c.Request.Context())
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapRecordsToSummaries(records))
}

// GetWorkout handles GET /api/v1/workouts/:id
func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	record, err := h.sessionService.Stored(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapRecordToResponse(record))
}

// ExportWorkout handles POST /api/v1/workouts/:id/export
func (h *WorkoutHandler) ExportWorkout(c *gin.Context) {
	export, err := h.sessionService.Export(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, export)
}
