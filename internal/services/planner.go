package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/daylog/daylog/server/internal/aggregate"
	"github.com/daylog/daylog/server/internal/model"
	"github.com/daylog/daylog/server/internal/store"
)

const maxGoals = 10

// PlannerService manages daily plans and goal completion.
type PlannerService struct {
	store store.Store
}

func NewPlannerService(s store.Store) *PlannerService { return &PlannerService{store: s} }

// SetPlan validates and upserts the plan for its date. A second write for
// the same day replaces the goals and focus budget wholesale.
func (s *PlannerService) SetPlan(ctx context.Context, p *model.DailyPlan) (*model.DailyPlan, error) {
	if p.UserID == "" {
		return nil, fmt.Errorf("%w: userId is required", model.ErrValidation)
	}
	if err := validDate(p.Date); err != nil {
		return nil, err
	}
	if len(p.Goals) > maxGoals {
		return nil, fmt.Errorf("%w: at most %d goals per day", model.ErrValidation, maxGoals)
	}
	goals := make([]string, 0, len(p.Goals))
	for _, g := range p.Goals {
		g = strings.TrimSpace(g)
		if g == "" {
			return nil, fmt.Errorf("%w: goals must be non-blank", model.ErrValidation)
		}
		goals = append(goals, g)
	}
	p.Goals = goals
	if p.PlannedFocusHours < 0 || p.PlannedFocusHours > 24 {
		return nil, fmt.Errorf("%w: plannedFocusHours must be between 0 and 24", model.ErrValidation)
	}
	return s.store.Plans().Upsert(ctx, p)
}

func (s *PlannerService) GetPlan(ctx context.Context, userID, date string) (*model.DailyPlan, error) {
	if err := validDate(date); err != nil {
		return nil, err
	}
	return s.store.Plans().GetByDate(ctx, userID, date)
}

// ToggleGoal marks one plan goal done or not done. The index is validated
// against the stored plan; toggling without a plan is a not-found.
func (s *PlannerService) ToggleGoal(ctx context.Context, g model.GoalCompletion) error {
	if err := validDate(g.Date); err != nil {
		return err
	}
	plan, err := s.store.Plans().GetByDate(ctx, g.UserID, g.Date)
	if err != nil {
		return err
	}
	if g.GoalIndex < 0 || g.GoalIndex >= len(plan.Goals) {
		return fmt.Errorf("%w: goal index %d out of range [0,%d)",
			model.ErrValidation, g.GoalIndex, len(plan.Goals))
	}
	return s.store.Goals().SetCompletion(ctx, g)
}

func (s *PlannerService) GoalState(ctx context.Context, userID, date string) (model.GoalState, error) {
	if err := validDate(date); err != nil {
		return nil, err
	}
	return s.store.Goals().State(ctx, userID, date)
}

func validDate(date string) error {
	if _, err := time.Parse(aggregate.DayKeyLayout, date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", model.ErrValidation)
	}
	return nil
}
