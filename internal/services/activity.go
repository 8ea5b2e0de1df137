package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/daylog/daylog/server/internal/model"
	"github.com/daylog/daylog/server/internal/store"
)

const maxNoteLen = 1000

var energyCosts = map[string]bool{"light": true, "medium": true, "heavy": true}
var workTypes = map[string]bool{"deep": true, "shallow": true, "mixed": true, "rest": true}

// ActivityService handles activity logging and listing.
type ActivityService struct {
	store store.Store
}

func NewActivityService(s store.Store) *ActivityService { return &ActivityService{store: s} }

// LogActivity validates and persists one immutable time block.
func (s *ActivityService) LogActivity(ctx context.Context, a *model.Activity) (*model.Activity, error) {
	if a.UserID == "" {
		return nil, fmt.Errorf("%w: userId is required", model.ErrValidation)
	}
	if !a.Category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", model.ErrValidation, a.Category)
	}
	if a.StartTime.IsZero() || a.EndTime.IsZero() {
		return nil, fmt.Errorf("%w: startTime and endTime are required", model.ErrValidation)
	}
	if !a.EndTime.After(a.StartTime) {
		return nil, fmt.Errorf("%w: endTime must be after startTime", model.ErrValidation)
	}
	if a.EndTime.Sub(a.StartTime) > 24*time.Hour {
		return nil, fmt.Errorf("%w: activity longer than 24 hours", model.ErrValidation)
	}
	a.Note = normalizeText(a.Note)
	if a.Note != nil && len(*a.Note) > maxNoteLen {
		return nil, fmt.Errorf("%w: note exceeds %d characters", model.ErrValidation, maxNoteLen)
	}
	if a.EnergyCost != nil && !energyCosts[*a.EnergyCost] {
		return nil, fmt.Errorf("%w: unknown energyCost %q", model.ErrValidation, *a.EnergyCost)
	}
	if a.WorkType != nil && !workTypes[*a.WorkType] {
		return nil, fmt.Errorf("%w: unknown workType %q", model.ErrValidation, *a.WorkType)
	}
	return s.store.Activities().Create(ctx, a)
}

func (s *ActivityService) ListActivities(ctx context.Context, userID string, r model.ListRange) ([]*model.Activity, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", model.ErrValidation)
	}
	return s.store.Activities().List(ctx, userID, r)
}

// normalizeText trims the value and maps blank strings to nil so optional
// text is never stored as "".
func normalizeText(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}
