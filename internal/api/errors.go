package api

import (
	"errors"
	"net/http"

	"alcyxob/smartfit/internal/coach"
	"alcyxob/smartfit/internal/preferences"
	"alcyxob/smartfit/internal/service"
	"alcyxob/smartfit/internal/storage"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

var (
	badRequestErrors = []error{
		service.ErrInvalidWeight,
		service.ErrInvalidProfile,
		service.ErrEmptySession,
		service.ErrInvalidWorkout,
		service.ErrInvalidRoutine,
		service.ErrInvalidRoutineType,
		service.ErrNoTrainingDays,
		service.ErrInvalidScheduleDays,
		service.ErrInvalidReportType,
		service.ErrInvalidCredentials,
		preferences.ErrInvalidUnit,
		storage.ErrUnsupportedContentType,
	}
	notFoundErrors = []error{
		service.ErrRoutineNotFound,
		service.ErrWorkoutNotFound,
	}
)

// respondError maps service errors to HTTP responses. Unknown errors are
// logged and hidden behind a generic message.
func respondError(c *gin.Context, err error, fallback string) {
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
	}
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
	}

	switch {
	case errors.Is(err, service.ErrWeightSuperseded):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, coach.ErrMissingCredential), errors.Is(err, service.ErrStorageUnavailable):
		abortWithError(c, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, coach.ErrGeneration):
		abortWithError(c, http.StatusBadGateway, err.Error())
	default:
		log.Errorf("%s %s: %s", c.Request.Method, c.FullPath(), err)
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}
