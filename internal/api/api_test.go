package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daylog/daylog/server/internal/store/sqlite"
)

func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()
	st, err := sqlite.New(filepath.Join(t.TempDir(), "daylog.db"))
	require.NoError(t, err)
	return NewRouter(st, time.UTC)
}

func doJSON(t *testing.T, router *mux.Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), out))
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)
	rr := doJSON(t, router, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var body map[string]interface{}
	decode(t, rr, &body)
	assert.Contains(t, []interface{}{"healthy", "unhealthy"}, body["status"])
}

func TestActivityRoutes(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, http.MethodPost, "/api/users/alice/activities", map[string]interface{}{
		"category":  "Coding",
		"startTime": "2026-04-06T09:00:00Z",
		"endTime":   "2026-04-06T10:30:00Z",
		"note":      "refactoring",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var created map[string]interface{}
	decode(t, rr, &created)
	assert.NotEmpty(t, created["id"])
	assert.Equal(t, "alice", created["userId"])

	// invalid category is a 400, not a silent normalization
	rr = doJSON(t, router, http.MethodPost, "/api/users/alice/activities", map[string]interface{}{
		"category":  "Gardening",
		"startTime": "2026-04-06T09:00:00Z",
		"endTime":   "2026-04-06T10:00:00Z",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// end before start
	rr = doJSON(t, router, http.MethodPost, "/api/users/alice/activities", map[string]interface{}{
		"category":  "Coding",
		"startTime": "2026-04-06T10:00:00Z",
		"endTime":   "2026-04-06T09:00:00Z",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doJSON(t, router, http.MethodGet, "/api/users/alice/activities?start=2026-04-06T00:00:00Z", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var list []map[string]interface{}
	decode(t, rr, &list)
	assert.Len(t, list, 1)

	// malformed range
	rr = doJSON(t, router, http.MethodGet, "/api/users/alice/activities?start=yesterday", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestInterruptionRoutes(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, http.MethodPost, "/api/users/alice/interruptions", map[string]interface{}{
		"time":            "2026-04-06T14:00:00Z",
		"kind":            "Phone",
		"durationMinutes": 10,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = doJSON(t, router, http.MethodPost, "/api/users/alice/interruptions", map[string]interface{}{
		"time": "2026-04-06T15:00:00Z",
		"kind": "Doorbell",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doJSON(t, router, http.MethodGet, "/api/users/alice/interruptions", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var list []map[string]interface{}
	decode(t, rr, &list)
	assert.Len(t, list, 1)
}

func TestPlanAndGoalRoutes(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, http.MethodPut, "/api/users/alice/plans/2026-04-06", map[string]interface{}{
		"goals":             []string{"write draft", "review PRs"},
		"plannedFocusHours": 4,
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	// replace wholesale
	rr = doJSON(t, router, http.MethodPut, "/api/users/alice/plans/2026-04-06", map[string]interface{}{
		"goals":             []string{"ship release"},
		"plannedFocusHours": 2,
	})
	require.Equal(t, http.StatusOK, rr.Code)
	var plan map[string]interface{}
	decode(t, rr, &plan)
	assert.Equal(t, []interface{}{"ship release"}, plan["goals"])

	// toggle within bounds
	rr = doJSON(t, router, http.MethodPost, "/api/users/alice/plans/2026-04-06/goals/0",
		map[string]interface{}{"completed": true})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var state map[string]bool
	decode(t, rr, &state)
	assert.Equal(t, map[string]bool{"0": true}, state)

	// out of bounds
	rr = doJSON(t, router, http.MethodPost, "/api/users/alice/plans/2026-04-06/goals/5",
		map[string]interface{}{"completed": true})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// no plan for that day
	rr = doJSON(t, router, http.MethodPost, "/api/users/alice/plans/2026-04-07/goals/0",
		map[string]interface{}{"completed": true})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doJSON(t, router, http.MethodGet, "/api/users/alice/plans/2026-04-06/goals", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, router, http.MethodGet, "/api/users/alice/plans/2026-04-07", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestReflectionRoutes(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, http.MethodPost, "/api/users/alice/reflections", map[string]interface{}{
		"date":       "2026-04-06",
		"goalsMet":   "partial",
		"whatWorked": "morning block",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var first map[string]interface{}
	decode(t, rr, &first)

	// second save for the same day updates, never duplicates
	rr = doJSON(t, router, http.MethodPost, "/api/users/alice/reflections", map[string]interface{}{
		"date":       "2026-04-06",
		"adjustment": "fewer meetings",
	})
	require.Equal(t, http.StatusOK, rr.Code)
	var second map[string]interface{}
	decode(t, rr, &second)
	assert.Equal(t, first["id"], second["id"])
	assert.Equal(t, "morning block", second["whatWorked"])
	assert.Equal(t, "fewer meetings", second["adjustment"])

	rr = doJSON(t, router, http.MethodGet, "/api/users/alice/reflections/2026-04-06", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, router, http.MethodGet, "/api/users/alice/reflections?start=2026-04-01&end=2026-04-30", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var list []map[string]interface{}
	decode(t, rr, &list)
	assert.Len(t, list, 1)

	rr = doJSON(t, router, http.MethodGet, "/api/users/alice/reflections/2026-04-07", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doJSON(t, router, http.MethodPost, "/api/users/alice/reflections", map[string]interface{}{
		"date":     "2026-04-06",
		"goalsMet": "mostly",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSummaryAndAnalyticsRoutes(t *testing.T) {
	router := newTestRouter(t)
	day := "2026-04-06"

	rr := doJSON(t, router, http.MethodPut, "/api/users/alice/plans/"+day, map[string]interface{}{
		"goals":             []string{"a", "b"},
		"plannedFocusHours": 1.5,
	})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, router, http.MethodPost, "/api/users/alice/activities", map[string]interface{}{
		"category":  "Coding",
		"startTime": day + "T09:00:00Z",
		"endTime":   day + "T10:30:00Z",
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = doJSON(t, router, http.MethodPost, "/api/users/alice/interruptions", map[string]interface{}{
		"time": day + "T09:45:00Z",
		"kind": "Phone",
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/users/alice/plans/%s/goals/1", day),
		map[string]interface{}{"completed": true})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, router, http.MethodGet, "/api/users/alice/summary/"+day, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var sum struct {
		HasPlan             bool    `json:"hasPlan"`
		ActualFocusHours    float64 `json:"actualFocusHours"`
		TimeAccuracy        int     `json:"timeAccuracy"`
		Narrative           string  `json:"narrative"`
		GoalsCompleted      int     `json:"goalsCompleted"`
		InterruptionMinutes float64 `json:"interruptionMinutes"`
	}
	decode(t, rr, &sum)
	assert.True(t, sum.HasPlan)
	assert.Equal(t, 1.5, sum.ActualFocusHours)
	assert.Equal(t, 100, sum.TimeAccuracy)
	assert.Equal(t, "great", sum.Narrative)
	assert.Equal(t, 1, sum.GoalsCompleted)
	assert.Equal(t, 5.0, sum.InterruptionMinutes, "untimed interruption falls back to the 5-minute default")

	// summary for a day with no plan reports actuals with hasPlan=false
	rr = doJSON(t, router, http.MethodGet, "/api/users/alice/summary/2026-04-07", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	decode(t, rr, &sum)
	assert.False(t, sum.HasPlan)
	assert.Empty(t, sum.Narrative)

	for _, path := range []string{
		"/api/users/alice/analytics/breakdown?days=30",
		"/api/users/alice/analytics/streaks",
		"/api/users/alice/analytics/summary?days=30",
		"/api/users/alice/insights?days=30",
	} {
		rr = doJSON(t, router, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, rr.Code, path)
	}

	rr = doJSON(t, router, http.MethodGet, "/api/users/alice/analytics/breakdown?days=soon", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
