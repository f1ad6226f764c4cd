package api

import (
	"net/http"
	"strconv"

	"alcyxob/smartfit/internal/domain"
	"alcyxob/smartfit/internal/preferences"
	"alcyxob/smartfit/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService service.ReportService
	prefs         *preferences.Manager
}

func NewReportHandler(reportService service.ReportService, prefs *preferences.Manager) *ReportHandler {
	return &ReportHandler{reportService: reportService, prefs: prefs}
}

type GenerateReportRequest struct {
	Type domain.ReportType `json:"type" binding:"required"`
}

// GenerateReport godoc
// @Summary Generate a coaching report
// @Description Summarizes the trailing day, week or month and asks the coach model for feedback.
// @Tags Reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body GenerateReportRequest true "daily, weekly or monthly"
// @Success 201 {object} domain.Report
// @Failure 400 {object} gin.H "Unknown report type"
// @Failure 429 {object} gin.H "Too many reports requested"
// @Failure 502 {object} gin.H "Text generation failed"
// @Failure 503 {object} gin.H "Text generation not configured"
// @Router /reports [post]
func (h *ReportHandler) GenerateReport(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req GenerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, service.ErrInvalidReportType.Error())
		return
	}

	prefs, ok := loadPreferences(c, h.prefs, userID)
	if !ok {
		return
	}
	report, err := h.reportService.Generate(c.Request.Context(), userID, req.Type, prefs.WeightUnit)
	if err != nil {
		respondError(c, err, "Failed to generate report.")
		return
	}
	c.JSON(http.StatusCreated, report)
}

// ListReports returns reports newest first, optionally filtered by ?type=.
func (h *ReportHandler) ListReports(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var limit int64
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			abortWithError(c, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	reports, err := h.reportService.List(c.Request.Context(), userID, domain.ReportType(c.Query("type")), limit)
	if err != nil {
		respondError(c, err, "Failed to retrieve reports.")
		return
	}
	c.JSON(http.StatusOK, reports)
}

// LatestReport returns the newest report of ?type=, or null.
func (h *ReportHandler) LatestReport(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	report, err := h.reportService.Latest(c.Request.Context(), userID, domain.ReportType(c.DefaultQuery("type", string(domain.ReportWeekly))))
	if err != nil {
		respondError(c, err, "Failed to retrieve report.")
		return
	}
	c.JSON(http.StatusOK, report)
}
