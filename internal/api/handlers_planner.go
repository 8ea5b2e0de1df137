package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	respond "github.com/daylog/daylog/server/internal/api/respond"
	"github.com/daylog/daylog/server/internal/api/validate"
	"github.com/daylog/daylog/server/internal/model"
	"github.com/daylog/daylog/server/internal/services"
)

// PlannerHandler serves daily plans and goal completion.
type PlannerHandler struct {
	svc *services.PlannerService
}

func NewPlannerHandler(svc *services.PlannerService) *PlannerHandler {
	return &PlannerHandler{svc: svc}
}

// UpsertPlan PUT /api/users/{userId}/plans/{date}
func (h *PlannerHandler) UpsertPlan(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := validate.UserID(vars["userId"]); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	var req struct {
		Goals             []string `json:"goals"`
		PlannedFocusHours float64  `json:"plannedFocusHours"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	p := &model.DailyPlan{
		UserID:            vars["userId"],
		Date:              vars["date"],
		Goals:             req.Goals,
		PlannedFocusHours: req.PlannedFocusHours,
	}
	out, err := h.svc.SetPlan(r.Context(), p)
	if err != nil {
		respond.WriteFromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// GetPlan GET /api/users/{userId}/plans/{date}
func (h *PlannerHandler) GetPlan(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	out, err := h.svc.GetPlan(r.Context(), vars["userId"], vars["date"])
	if err != nil {
		respond.WriteFromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// ToggleGoal POST /api/users/{userId}/plans/{date}/goals/{index}
func (h *PlannerHandler) ToggleGoal(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	idx, err := validate.GoalIndex(vars["index"])
	if err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	var req struct {
		Completed bool `json:"completed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	err = h.svc.ToggleGoal(r.Context(), model.GoalCompletion{
		UserID:    vars["userId"],
		Date:      vars["date"],
		GoalIndex: idx,
		Completed: req.Completed,
	})
	if err != nil {
		respond.WriteFromError(w, err)
		return
	}
	h.writeGoalState(w, r, vars["userId"], vars["date"])
}

// GetGoalState GET /api/users/{userId}/plans/{date}/goals
func (h *PlannerHandler) GetGoalState(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	h.writeGoalState(w, r, vars["userId"], vars["date"])
}

// writeGoalState renders the completion map with string keys; JSON objects
// cannot carry integer keys.
func (h *PlannerHandler) writeGoalState(w http.ResponseWriter, r *http.Request, userID, date string) {
	state, err := h.svc.GoalState(r.Context(), userID, date)
	if err != nil {
		respond.WriteFromError(w, err)
		return
	}
	out := make(map[string]bool, len(state))
	for idx, done := range state {
		out[strconv.Itoa(idx)] = done
	}
	respond.WriteJSON(w, http.StatusOK, out)
}
