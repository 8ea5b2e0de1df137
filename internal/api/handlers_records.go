package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	respond "github.com/daylog/daylog/server/internal/api/respond"
	"github.com/daylog/daylog/server/internal/api/validate"
	"github.com/daylog/daylog/server/internal/model"
	"github.com/daylog/daylog/server/internal/services"
)

// RecordHandler is a thin HTTP transport over activity and interruption
// logging. Records are immutable; there are no update or delete routes.
type RecordHandler struct {
	activities    *services.ActivityService
	interruptions *services.InterruptionService
}

func NewRecordHandler(a *services.ActivityService, i *services.InterruptionService) *RecordHandler {
	return &RecordHandler{activities: a, interruptions: i}
}

// CreateActivity POST /api/users/{userId}/activities
func (h *RecordHandler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if err := validate.UserID(userID); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	var req model.Activity
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	req.UserID = userID
	out, err := h.activities.LogActivity(r.Context(), &req)
	if err != nil {
		respond.WriteFromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

// ListActivities GET /api/users/{userId}/activities?start=&end=
func (h *RecordHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	rng, err := listRange(r)
	if err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	out, err := h.activities.ListActivities(r.Context(), userID, rng)
	if err != nil {
		respond.WriteFromError(w, err)
		return
	}
	if out == nil {
		out = []*model.Activity{}
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// CreateInterruption POST /api/users/{userId}/interruptions
func (h *RecordHandler) CreateInterruption(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if err := validate.UserID(userID); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	var req model.Interruption
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	req.UserID = userID
	out, err := h.interruptions.LogInterruption(r.Context(), &req)
	if err != nil {
		respond.WriteFromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

// ListInterruptions GET /api/users/{userId}/interruptions?start=&end=
func (h *RecordHandler) ListInterruptions(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	rng, err := listRange(r)
	if err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	out, err := h.interruptions.ListInterruptions(r.Context(), userID, rng)
	if err != nil {
		respond.WriteFromError(w, err)
		return
	}
	if out == nil {
		out = []*model.Interruption{}
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

func listRange(r *http.Request) (model.ListRange, error) {
	start, err := validate.Timestamp(r.URL.Query().Get("start"))
	if err != nil {
		return model.ListRange{}, err
	}
	end, err := validate.Timestamp(r.URL.Query().Get("end"))
	if err != nil {
		return model.ListRange{}, err
	}
	return model.ListRange{Start: start, End: end}, nil
}
