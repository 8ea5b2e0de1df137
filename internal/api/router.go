package api

import (
	"time"

	"github.com/gorilla/mux"

	"github.com/daylog/daylog/server/internal/api/recovery"
	"github.com/daylog/daylog/server/internal/services"
	"github.com/daylog/daylog/server/internal/store"
)

// NewRouter wires every HTTP route over the given record store. The
// reference timezone fixes day bucketing for all derived views.
func NewRouter(st store.Store, loc *time.Location) *mux.Router {
	router := mux.NewRouter()
	router.Use(recovery.Middleware)

	activitySvc := services.NewActivityService(st)
	interruptionSvc := services.NewInterruptionService(st)
	plannerSvc := services.NewPlannerService(st)
	reflectionSvc := services.NewReflectionService(st)
	analyticsSvc := services.NewAnalyticsService(st, loc)

	healthHandler := NewHealthHandler()
	recordHandler := NewRecordHandler(activitySvc, interruptionSvc)
	plannerHandler := NewPlannerHandler(plannerSvc)
	reflectionHandler := NewReflectionHandler(reflectionSvc)
	analyticsHandler := NewAnalyticsHandler(analyticsSvc)

	// Health
	router.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")

	// Immutable records
	router.HandleFunc("/api/users/{userId}/activities", recordHandler.CreateActivity).Methods("POST")
	router.HandleFunc("/api/users/{userId}/activities", recordHandler.ListActivities).Methods("GET")
	router.HandleFunc("/api/users/{userId}/interruptions", recordHandler.CreateInterruption).Methods("POST")
	router.HandleFunc("/api/users/{userId}/interruptions", recordHandler.ListInterruptions).Methods("GET")

	// Daily plans and goal completion
	router.HandleFunc("/api/users/{userId}/plans/{date:\\d{4}-\\d{2}-\\d{2}}", plannerHandler.UpsertPlan).Methods("PUT")
	router.HandleFunc("/api/users/{userId}/plans/{date:\\d{4}-\\d{2}-\\d{2}}", plannerHandler.GetPlan).Methods("GET")
	router.HandleFunc("/api/users/{userId}/plans/{date:\\d{4}-\\d{2}-\\d{2}}/goals", plannerHandler.GetGoalState).Methods("GET")
	router.HandleFunc("/api/users/{userId}/plans/{date:\\d{4}-\\d{2}-\\d{2}}/goals/{index}", plannerHandler.ToggleGoal).Methods("POST")

	// End-of-day reflections (upsert by date)
	router.HandleFunc("/api/users/{userId}/reflections", reflectionHandler.UpsertReflection).Methods("POST")
	router.HandleFunc("/api/users/{userId}/reflections", reflectionHandler.ListReflections).Methods("GET")
	router.HandleFunc("/api/users/{userId}/reflections/{date:\\d{4}-\\d{2}-\\d{2}}", reflectionHandler.GetReflection).Methods("GET")

	// Derived views
	router.HandleFunc("/api/users/{userId}/summary/{date:\\d{4}-\\d{2}-\\d{2}}", analyticsHandler.GetDailySummary).Methods("GET")
	router.HandleFunc("/api/users/{userId}/analytics/breakdown", analyticsHandler.GetBreakdown).Methods("GET")
	router.HandleFunc("/api/users/{userId}/analytics/streaks", analyticsHandler.GetStreaks).Methods("GET")
	router.HandleFunc("/api/users/{userId}/analytics/summary", analyticsHandler.GetAnalyticsSummary).Methods("GET")
	router.HandleFunc("/api/users/{userId}/insights", analyticsHandler.GetInsights).Methods("GET")

	return router
}
