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

// ReflectionHandler serves end-of-day reviews.
type ReflectionHandler struct {
	svc *services.ReflectionService
}

func NewReflectionHandler(svc *services.ReflectionService) *ReflectionHandler {
	return &ReflectionHandler{svc: svc}
}

// UpsertReflection POST /api/users/{userId}/reflections
// The body carries the date; saving twice for one day updates in place.
func (h *ReflectionHandler) UpsertReflection(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if err := validate.UserID(userID); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	var req struct {
		Date string `json:"date"`
		model.ReviewFields
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	out, err := h.svc.SaveReflection(r.Context(), userID, req.Date, req.ReviewFields)
	if err != nil {
		respond.WriteFromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// GetReflection GET /api/users/{userId}/reflections/{date}
func (h *ReflectionHandler) GetReflection(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	out, err := h.svc.GetReflection(r.Context(), vars["userId"], vars["date"])
	if err != nil {
		respond.WriteFromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// ListReflections GET /api/users/{userId}/reflections?start=&end=
func (h *ReflectionHandler) ListReflections(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	q := r.URL.Query()
	out, err := h.svc.ListReflections(r.Context(), vars["userId"], q.Get("start"), q.Get("end"))
	if err != nil {
		respond.WriteFromError(w, err)
		return
	}
	if out == nil {
		out = []*model.DailyReview{}
	}
	respond.WriteJSON(w, http.StatusOK, out)
}
