package api

import (
	"fmt"
	"net/http"

	"alcyxob/smartfit/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RoutineHandler struct {
	routineService service.RoutineService
}

func NewRoutineHandler(routineService service.RoutineService) *RoutineHandler {
	return &RoutineHandler{routineService: routineService}
}

type CreateRoutineRequest struct {
	Name         string   `json:"name" binding:"required"`
	ScheduleDays []string `json:"scheduleDays"`
	Exercises    []string `json:"exercises"`
}

// UpdateRoutineRequest leaves omitted fields unchanged.
type UpdateRoutineRequest struct {
	Name         string   `json:"name"`
	ScheduleDays []string `json:"scheduleDays"`
	Exercises    []string `json:"exercises"`
}

func (h *RoutineHandler) ListRoutines(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	routines, err := h.routineService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve routines.")
		return
	}
	c.JSON(http.StatusOK, routines)
}

func (h *RoutineHandler) CreateRoutine(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req CreateRoutineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	if req.ScheduleDays == nil {
		req.ScheduleDays = []string{}
	}
	if req.Exercises == nil {
		req.Exercises = []string{}
	}

	created, err := h.routineService.Create(c.Request.Context(), userID, req.Name, req.ScheduleDays, req.Exercises)
	if err != nil {
		respondError(c, err, "Failed to create routine.")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *RoutineHandler) UpdateRoutine(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	routineID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid routine ID format.")
		return
	}
	var req UpdateRoutineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	updated, err := h.routineService.Update(c.Request.Context(), userID, routineID, req.Name, req.ScheduleDays, req.Exercises)
	if err != nil {
		respondError(c, err, "Failed to update routine.")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// SessionExercises godoc
// @Summary Starting exercises for a session
// @Description The routine's own exercises, or the split named by ?template= when it has none.
// @Description Use "-" as the id to resolve a template without a routine.
// @Tags Routines
// @Produce json
// @Security BearerAuth
// @Param id path string true "Routine ObjectID Hex or -"
// @Param template query string false "Split template, e.g. Push A"
// @Success 200 {array} string
// @Failure 404 {object} gin.H "Routine not found"
// @Router /routines/{id}/exercises [get]
func (h *RoutineHandler) SessionExercises(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	routineID := primitive.NilObjectID
	if raw := c.Param("id"); raw != "-" {
		parsed, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid routine ID format.")
			return
		}
		routineID = parsed
	}

	exercises, err := h.routineService.SessionExercises(c.Request.Context(), userID, routineID, c.Query("template"))
	if err != nil {
		respondError(c, err, "Failed to resolve exercises.")
		return
	}
	c.JSON(http.StatusOK, exercises)
}

// Splits returns the built-in split templates.
func (h *RoutineHandler) Splits(c *gin.Context) {
	c.JSON(http.StatusOK, h.routineService.Splits())
}
