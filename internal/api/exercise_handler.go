package api

import (
	"net/http"

	"alcyxob/smartfit/internal/domain"
	"alcyxob/smartfit/internal/routine"
	"alcyxob/smartfit/internal/service"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler serves the shared exercise catalog.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

type ExerciseResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// MapExercisesToResponse converts a slice of domain.Exercise to a slice of ExerciseResponse DTO.
func MapExercisesToResponse(exercises []domain.Exercise) []ExerciseResponse {
	responses := make([]ExerciseResponse, len(exercises))
	for i, ex := range exercises {
		responses[i] = ExerciseResponse{
			ID:       ex.ID.Hex(),
			Name:     ex.Name,
			Category: ex.Category,
		}
	}
	return responses
}

// ListExercises godoc
// @Summary List the exercise catalog
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Param category query string false "Muscle group, e.g. Chest"
// @Success 200 {array} ExerciseResponse "List of exercises"
// @Router /exercises [get]
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	exercises, err := h.exerciseService.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		respondError(c, err, "Failed to retrieve exercises.")
		return
	}
	c.JSON(http.StatusOK, MapExercisesToResponse(exercises))
}

// ListCategories returns the catalog's muscle groups in display order.
func (h *ExerciseHandler) ListCategories(c *gin.Context) {
	catalog := routine.DefaultCatalog()
	names := make([]string, 0, len(catalog))
	for _, category := range catalog {
		names = append(names, category.Name)
	}
	c.JSON(http.StatusOK, names)
}
