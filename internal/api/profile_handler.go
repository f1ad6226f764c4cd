package api

import (
	"fmt"
	"net/http"

	"alcyxob/smartfit/internal/domain"
	"alcyxob/smartfit/internal/preferences"
	"alcyxob/smartfit/internal/service"
	"alcyxob/smartfit/internal/units"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// ProfileHandler serves the profile, dashboard stats, onboarding and avatar
// endpoints. Bodies and responses use the caller's display units.
type ProfileHandler struct {
	profileService service.ProfileService
	prefs          *preferences.Manager
}

func NewProfileHandler(profileService service.ProfileService, prefs *preferences.Manager) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, prefs: prefs}
}

// ProfileResponse is a profile with weights and height in display units.
type ProfileResponse struct {
	Profile       *domain.Profile `json:"profile"`
	CurrentWeight float64         `json:"currentWeight"`
	GoalWeight    float64         `json:"goalWeight"`
	WeightUnit    string          `json:"weightUnit"`
	Height        string          `json:"height"`
	HeightUnit    string          `json:"heightUnit"`
	AvatarURL     string          `json:"avatarUrl,omitempty"`
}

type OnboardingRequest struct {
	service.ProfileInput
	RoutineType string   `json:"routineType"`
	CustomDays  []string `json:"customDays"`
}

type AvatarUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

func (h *ProfileHandler) toResponse(c *gin.Context, profile *domain.Profile, prefs preferences.Preferences) ProfileResponse {
	resp := ProfileResponse{
		Profile:    profile,
		WeightUnit: units.WeightLabel(prefs.WeightUnit),
		HeightUnit: string(prefs.HeightUnit),
	}
	if profile == nil {
		return resp
	}
	resp.CurrentWeight = units.ToDisplayWeight(profile.CurrentWeightKg, prefs.WeightUnit)
	resp.GoalWeight = units.ToDisplayWeight(profile.GoalWeightKg, prefs.WeightUnit)
	resp.Height = units.ToDisplayHeight(profile.HeightCm, prefs.HeightUnit)

	avatarURL, err := h.profileService.AvatarURL(c.Request.Context(), profile)
	if err != nil {
		log.Warnf("presign avatar for %s: %s", profile.UserID.Hex(), err)
	}
	resp.AvatarURL = avatarURL
	return resp
}

// GetProfile godoc
// @Summary Get my profile
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ProfileResponse "profile is null before onboarding"
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	profile, err := h.profileService.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to load profile.")
		return
	}
	prefs := currentPreferences(h.prefs, userID)
	c.JSON(http.StatusOK, h.toResponse(c, profile, prefs))
}

// UpdateProfile godoc
// @Summary Replace my profile
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body service.ProfileInput true "Profile in display units"
// @Success 200 {object} ProfileResponse
// @Failure 400 {object} gin.H "Validation error"
// @Router /profile [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req service.ProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	prefs, ok := loadPreferences(c, h.prefs, userID)
	if !ok {
		return
	}
	profile, err := h.profileService.Update(c.Request.Context(), userID, req, prefs)
	if err != nil {
		respondError(c, err, "Failed to save profile.")
		return
	}
	c.JSON(http.StatusOK, h.toResponse(c, profile, prefs))
}

func (h *ProfileHandler) GetStats(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	stats, err := h.profileService.Stats(c.Request.Context(), userID, currentPreferences(h.prefs, userID))
	if err != nil {
		respondError(c, err, "Failed to load stats.")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Onboard godoc
// @Summary Complete onboarding
// @Description Saves the profile, records the starting weight and creates starter routines.
// @Description Non-fatal failures are listed in warnings.
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param onboarding body OnboardingRequest true "Profile and routine choice"
// @Success 201 {object} service.OnboardingResult
// @Failure 400 {object} gin.H "Validation error"
// @Router /profile/onboarding [post]
func (h *ProfileHandler) Onboard(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req OnboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	prefs, ok := loadPreferences(c, h.prefs, userID)
	if !ok {
		return
	}
	result, err := h.profileService.Onboard(c.Request.Context(), userID, service.OnboardingInput{
		Profile:     req.ProfileInput,
		RoutineType: req.RoutineType,
		CustomDays:  req.CustomDays,
	}, prefs)
	if err != nil {
		respondError(c, err, "Failed to complete onboarding.")
		return
	}
	c.JSON(http.StatusCreated, result)
}

// CreateAvatarUpload godoc
// @Summary Request an avatar upload URL
// @Description Returns a presigned PUT URL; the client uploads the image directly to storage.
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AvatarUploadRequest true "Image content type"
// @Success 200 {object} service.AvatarUpload
// @Failure 400 {object} gin.H "Unsupported content type"
// @Failure 503 {object} gin.H "Storage not configured"
// @Router /profile/avatar [post]
func (h *ProfileHandler) CreateAvatarUpload(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req AvatarUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	upload, err := h.profileService.CreateAvatarUpload(c.Request.Context(), userID, req.ContentType)
	if err != nil {
		respondError(c, err, "Failed to prepare avatar upload.")
		return
	}
	c.JSON(http.StatusOK, upload)
}
