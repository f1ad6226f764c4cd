package api

import (
	"net/http"

	"alcyxob/smartfit/internal/domain"
	"alcyxob/smartfit/internal/preferences"
	"alcyxob/smartfit/internal/service"

	"github.com/gin-gonic/gin"
)

type WeightHandler struct {
	weightService service.WeightService
	prefs         *preferences.Manager
}

func NewWeightHandler(weightService service.WeightService, prefs *preferences.Manager) *WeightHandler {
	return &WeightHandler{weightService: weightService, prefs: prefs}
}

// AddWeightRequest carries the weight as typed, in the user's display unit.
type AddWeightRequest struct {
	Weight domain.Quantity `json:"weight" binding:"required"`
}

// AddWeight godoc
// @Summary Record today's weight
// @Description Replaces today's entry if one exists and updates the profile's current weight.
// @Tags Weights
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param weight body AddWeightRequest true "Weight in display unit"
// @Success 201 {object} service.WeightPoint
// @Failure 400 {object} gin.H "Invalid weight"
// @Failure 409 {object} gin.H "A newer submission replaced this one"
// @Router /weights [post]
func (h *WeightHandler) AddWeight(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req AddWeightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, service.ErrInvalidWeight.Error())
		return
	}

	prefs, ok := loadPreferences(c, h.prefs, userID)
	if !ok {
		return
	}
	point, err := h.weightService.AddWeight(c.Request.Context(), userID, string(req.Weight), prefs.WeightUnit)
	if err != nil {
		respondError(c, err, "Failed to save weight.")
		return
	}
	c.JSON(http.StatusCreated, point)
}

// History returns the weight history oldest first in the display unit.
func (h *WeightHandler) History(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	prefs := currentPreferences(h.prefs, userID)
	history, err := h.weightService.History(c.Request.Context(), userID, prefs.WeightUnit)
	if err != nil {
		respondError(c, err, "Failed to load weight history.")
		return
	}
	c.JSON(http.StatusOK, history)
}
