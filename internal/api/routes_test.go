package api_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"alcyxob/smartfit/internal/coach"
	"alcyxob/smartfit/internal/domain"
	"alcyxob/smartfit/internal/preferences"
	"alcyxob/smartfit/internal/service"
	"alcyxob/smartfit/internal/units"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPing(t *testing.T) {
	ts := newTestServer(t)
	rr := ts.do(t, http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(ts.metrics.CounterRequests.WithLabelValues("GET", "200")))
}

func TestAuthMiddleware(t *testing.T) {
	ts := newTestServer(t)
	userID := primitive.NewObjectID()

	rr := ts.do(t, http.MethodGet, "/api/v1/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.do(t, http.MethodGet, "/api/v1/me", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.do(t, http.MethodGet, "/api/v1/me", tokenFor(t, userID, -time.Minute), nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "expired")

	rr = ts.do(t, http.MethodGet, "/api/v1/me", tokenFor(t, userID, time.Hour), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), userID.Hex())
}

func TestPreferencesToggle(t *testing.T) {
	ts := newTestServer(t)
	token := tokenFor(t, primitive.NewObjectID(), time.Hour)
	other := tokenFor(t, primitive.NewObjectID(), time.Hour)

	var prefs preferences.Preferences
	rr := ts.do(t, http.MethodPost, "/api/v1/preferences/toggle-weight", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &prefs))
	assert.Equal(t, units.Pounds, prefs.WeightUnit)
	assert.Equal(t, units.FeetInches, prefs.HeightUnit)

	rr = ts.do(t, http.MethodPost, "/api/v1/preferences/toggle-height", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &prefs))
	assert.Equal(t, units.Pounds, prefs.WeightUnit)
	assert.Equal(t, units.Centimeters, prefs.HeightUnit)

	// other users keep their own settings
	rr = ts.do(t, http.MethodGet, "/api/v1/preferences", other, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &prefs))
	assert.Equal(t, preferences.Defaults(), prefs)

	rr = ts.do(t, http.MethodPut, "/api/v1/preferences", token, `{"weightUnit":"stone","heightUnit":"cm"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLogWorkout(t *testing.T) {
	ts := newTestServer(t)
	token := tokenFor(t, primitive.NewObjectID(), time.Hour)

	body := `{"type":"Push A","exercises":{"Bench Press":[{"weight":100,"reps":"5"}],"Dips":[]}}`
	rr := ts.do(t, http.MethodPost, "/api/v1/workouts", token, body)
	require.Equal(t, http.StatusCreated, rr.Code)
	require.Len(t, ts.workouts.logged, 1)
	assert.Equal(t, []string{"Bench Press", "Dips"}, ts.workouts.logged[0].Exercises.Names())
	assert.Contains(t, rr.Body.String(), `"exercises":{"Bench Press":[{"weight":100,"reps":5}]}`)

	rr = ts.do(t, http.MethodPost, "/api/v1/workouts", token, `{"type":"Legs","exercises":{"Squat":[]}}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.do(t, http.MethodPost, "/api/v1/workouts", token, `{"type":"Legs","routineId":"nope","exercises":{}}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestWorkoutQueries(t *testing.T) {
	ts := newTestServer(t)
	token := tokenFor(t, primitive.NewObjectID(), time.Hour)

	rr := ts.do(t, http.MethodGet, "/api/v1/workouts/last", token, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.do(t, http.MethodGet, "/api/v1/workouts/last?type=Push+A", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "null", rr.Body.String())

	rr = ts.do(t, http.MethodGet, "/api/v1/workouts/"+primitive.NewObjectID().Hex()+"/summary", token, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = ts.do(t, http.MethodGet, "/api/v1/workouts/xyz/summary", token, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRoutineSplits(t *testing.T) {
	ts := newTestServer(t)
	token := tokenFor(t, primitive.NewObjectID(), time.Hour)

	rr := ts.do(t, http.MethodGet, "/api/v1/routines/splits", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var splits map[string][]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &splits))
	assert.Contains(t, splits, "Push A")

	rr = ts.do(t, http.MethodGet, "/api/v1/routines/-/exercises?template=Legs+B", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var exercises []string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &exercises))
	assert.Equal(t, splits["Legs B"], exercises)
}

func TestGenerateReport_RateLimited(t *testing.T) {
	ts := newTestServer(t)
	userID := primitive.NewObjectID()
	token := tokenFor(t, userID, time.Hour)
	ts.limiter.Limits["reports:"+userID.Hex()] = 2

	for i := 0; i < 2; i++ {
		rr := ts.do(t, http.MethodPost, "/api/v1/reports", token, `{"type":"weekly"}`)
		require.Equal(t, http.StatusCreated, rr.Code)
	}

	rr := ts.do(t, http.MethodPost, "/api/v1/reports", token, `{"type":"weekly"}`)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Contains(t, rr.Body.String(), "retry after 30 seconds")
	assert.Equal(t, "30", rr.Header().Get("Retry-After"))
	assert.Equal(t, 1.0, testutil.ToFloat64(ts.metrics.CounterRateLimitedRequests))
	assert.Len(t, ts.reports.units, 2)
}

func TestGenerateReport_UsesPreferredUnit(t *testing.T) {
	ts := newTestServer(t)
	userID := primitive.NewObjectID()
	token := tokenFor(t, userID, time.Hour)
	ts.limiter.Limits["reports:"+userID.Hex()] = 5

	_, err := ts.prefs.For(userID.Hex()).ToggleWeightUnit()
	require.NoError(t, err)

	rr := ts.do(t, http.MethodPost, "/api/v1/reports", token, `{"type":"daily"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, []units.WeightUnit{units.Pounds}, ts.reports.units)

	var report domain.Report
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &report))
	assert.Equal(t, "Keep going.", report.Text)
}

func TestGenerateReport_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		body string
		code int
	}{
		{"unknown type", nil, `{"type":"yearly"}`, http.StatusBadRequest},
		{"missing type", nil, `{}`, http.StatusBadRequest},
		{"missing credential", coach.ErrMissingCredential, `{"type":"weekly"}`, http.StatusServiceUnavailable},
		{"remote failure", &coach.GenerationError{Message: "boom"}, `{"type":"weekly"}`, http.StatusBadGateway},
		{"store failure", errors.New("mongo down"), `{"type":"weekly"}`, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			userID := primitive.NewObjectID()
			ts.limiter.Limits["reports:"+userID.Hex()] = 1
			ts.reports.err = tt.err

			rr := ts.do(t, http.MethodPost, "/api/v1/reports", tokenFor(t, userID, time.Hour), tt.body)
			assert.Equal(t, tt.code, rr.Code)
		})
	}
}

func TestAddWeight_ConvertsFromPreferredUnit(t *testing.T) {
	ts := newTestServer(t)
	userID := primitive.NewObjectID()
	token := tokenFor(t, userID, time.Hour)

	rr := ts.do(t, http.MethodPost, "/api/v1/preferences/toggle-weight", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.do(t, http.MethodPost, "/api/v1/weights", token, `{"weight":"220"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, []units.WeightUnit{units.Pounds}, ts.weights.units)

	var point struct {
		Weight   float64 `json:"weight"`
		WeightKg float64 `json:"weightKg"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &point))
	assert.InDelta(t, 99.79, point.WeightKg, 0.01)
	assert.Equal(t, 220.0, point.Weight)
}

func TestWrites_FailWhenPreferencesUnreadable(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"add weight", http.MethodPost, "/api/v1/weights", `{"weight":"220"}`},
		{"update profile", http.MethodPut, "/api/v1/profile", `{"height":"180"}`},
		{"onboarding", http.MethodPost, "/api/v1/profile/onboarding", `{"routineType":"default"}`},
		{"generate report", http.MethodPost, "/api/v1/reports", `{"type":"weekly"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServerWith(t, brokenPersistence{})
			userID := primitive.NewObjectID()
			ts.limiter.Limits["reports:"+userID.Hex()] = 1

			rr := ts.do(t, tt.method, tt.path, tokenFor(t, userID, time.Hour), tt.body)
			assert.Equal(t, http.StatusInternalServerError, rr.Code)
			assert.Contains(t, rr.Body.String(), "Failed to load preferences.")
			assert.Empty(t, ts.weights.units)
			assert.Empty(t, ts.reports.units)
		})
	}
}

func TestWeightHistory_DisplaysWithDefaultsWhenPreferencesUnreadable(t *testing.T) {
	ts := newTestServerWith(t, brokenPersistence{})
	rr := ts.do(t, http.MethodGet, "/api/v1/weights", tokenFor(t, primitive.NewObjectID(), time.Hour), nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAddWeight_SupersededIsConflict(t *testing.T) {
	ts := newTestServer(t)
	ts.weights.err = service.ErrWeightSuperseded

	rr := ts.do(t, http.MethodPost, "/api/v1/weights", tokenFor(t, primitive.NewObjectID(), time.Hour), `{"weight":"80"}`)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "newer weight")
}
