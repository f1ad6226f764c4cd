package api

import (
	"fmt"
	"net/http"
	"time"

	"alcyxob/smartfit/internal/domain"
	"alcyxob/smartfit/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type WorkoutHandler struct {
	workoutService service.WorkoutService
}

func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// LogWorkoutRequest is a finished session. Exercises is an object keyed by
// exercise name: {"Bench Press": [{"weight": 100, "reps": 5}]}.
type LogWorkoutRequest struct {
	Type      string           `json:"type" binding:"required"`
	Exercises domain.Exercises `json:"exercises"`
	Date      *time.Time       `json:"date"`
	RoutineID string           `json:"routineId"`
}

// LogWorkout godoc
// @Summary Log a finished workout
// @Description Exercises without sets are dropped; a session with no sets is rejected.
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workout body LogWorkoutRequest true "Session"
// @Success 201 {object} domain.WorkoutLog
// @Failure 400 {object} gin.H "Validation error"
// @Router /workouts [post]
func (h *WorkoutHandler) LogWorkout(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req LogWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	in := service.WorkoutInput{Type: req.Type, Exercises: req.Exercises}
	if req.Date != nil {
		in.Date = *req.Date
	}
	if req.RoutineID != "" {
		routineID, err := primitive.ObjectIDFromHex(req.RoutineID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid routine ID format.")
			return
		}
		in.RoutineID = &routineID
	}

	workout, err := h.workoutService.Log(c.Request.Context(), userID, in)
	if err != nil {
		respondError(c, err, "Failed to save workout.")
		return
	}
	c.JSON(http.StatusCreated, workout)
}

func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	workouts, err := h.workoutService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve workouts.")
		return
	}
	c.JSON(http.StatusOK, workouts)
}

// Volume returns the volume chart series for the most recent sessions.
func (h *WorkoutHandler) Volume(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	series, err := h.workoutService.Volume(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to compute volume.")
		return
	}
	c.JSON(http.StatusOK, series)
}

// LastOfType returns the newest session of ?type=, or null.
func (h *WorkoutHandler) LastOfType(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	typeLabel := c.Query("type")
	if typeLabel == "" {
		abortWithError(c, http.StatusBadRequest, "type query parameter is required")
		return
	}
	last, err := h.workoutService.LastOfType(c.Request.Context(), userID, typeLabel)
	if err != nil {
		respondError(c, err, "Failed to retrieve workouts.")
		return
	}
	c.JSON(http.StatusOK, last)
}

// Summary returns the shareable plain-text summary of a session.
func (h *WorkoutHandler) Summary(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	workoutID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout ID format.")
		return
	}
	summary, err := h.workoutService.Summary(c.Request.Context(), userID, workoutID)
	if err != nil {
		respondError(c, err, "Failed to build summary.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
