package api

import (
	"fmt"
	"net/http"

	"alcyxob/smartfit/internal/preferences"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PreferencesHandler exposes the per-user display unit settings.
type PreferencesHandler struct {
	prefs *preferences.Manager
}

func NewPreferencesHandler(prefs *preferences.Manager) *PreferencesHandler {
	return &PreferencesHandler{prefs: prefs}
}

// currentPreferences loads the user's units for display, falling back to the
// defaults when the store cannot be read. Writes use loadPreferences.
func currentPreferences(prefs *preferences.Manager, userID primitive.ObjectID) preferences.Preferences {
	current, err := prefs.For(userID.Hex()).Current()
	if err != nil {
		log.Errorf("load preferences for %s: %s", userID.Hex(), err)
		return preferences.Defaults()
	}
	return current
}

// loadPreferences loads the user's units ahead of a write that converts input
// with them. On failure the request is aborted and ok is false.
func loadPreferences(c *gin.Context, prefs *preferences.Manager, userID primitive.ObjectID) (preferences.Preferences, bool) {
	current, err := prefs.For(userID.Hex()).Current()
	if err != nil {
		respondError(c, err, "Failed to load preferences.")
		return preferences.Preferences{}, false
	}
	return current, true
}

func (h *PreferencesHandler) Get(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	current, err := h.prefs.For(userID.Hex()).Current()
	if err != nil {
		respondError(c, err, "Failed to load preferences.")
		return
	}
	c.JSON(http.StatusOK, current)
}

func (h *PreferencesHandler) Update(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req preferences.Preferences
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	updated, err := h.prefs.For(userID.Hex()).Set(req)
	if err != nil {
		respondError(c, err, "Failed to save preferences.")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *PreferencesHandler) ToggleWeight(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	updated, err := h.prefs.For(userID.Hex()).ToggleWeightUnit()
	if err != nil {
		respondError(c, err, "Failed to save preferences.")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *PreferencesHandler) ToggleHeight(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	updated, err := h.prefs.For(userID.Hex()).ToggleHeightUnit()
	if err != nil {
		respondError(c, err, "Failed to save preferences.")
		return
	}
	c.JSON(http.StatusOK, updated)
}
