package aggregate

import (
	"time"

	"github.com/daylog/daylog/server/internal/model"
)

// Narrative buckets for planning accuracy. Thresholds are policy, not
// derived values; callers may override them via SummaryThresholds.
const (
	NarrativeGreat       = "great"
	NarrativeClose       = "close"
	NarrativeOverplanned = "overplanned"
)

// SummaryThresholds holds the timeAccuracy cutoffs for the narrative.
type SummaryThresholds struct {
	Great int // timeAccuracy >= Great   -> "great"
	Close int // timeAccuracy >= Close   -> "close", else "overplanned"
}

// DefaultThresholds are the stock narrative cutoffs.
var DefaultThresholds = SummaryThresholds{Great: 90, Close: 70}

// DailySummary is the derived view of one calendar day. It is recomputed
// on every read and never persisted.
type DailySummary struct {
	Date    string `json:"date"`
	HasPlan bool   `json:"hasPlan"`

	GoalsTotal     int `json:"goalsTotal"`
	GoalsCompleted int `json:"goalsCompleted"`
	GoalsProgress  int `json:"goalsProgress"` // percent

	PlannedFocusHours float64 `json:"plannedFocusHours"`
	ActualFocusHours  float64 `json:"actualFocusHours"`
	FocusProgress     int     `json:"focusProgress"` // percent, capped at 100
	TimeAccuracy      int     `json:"timeAccuracy"`  // percent, uncapped

	InterruptionMinutes float64 `json:"interruptionMinutes"`
	InterruptionCount   int     `json:"interruptionCount"`

	// Narrative classifies planning accuracy; empty when no plan exists.
	Narrative string `json:"narrative,omitempty"`
}

// DeriveDailySummary combines the day's plan, activities, interruptions and
// goal-completion state into a single view. A nil plan yields an explicit
// no-plan state: actuals are still reported, but goal and accuracy metrics
// stay zero and the narrative is empty so callers can render a distinct
// empty state instead of fabricated zeros.
func DeriveDailySummary(
	plan *model.DailyPlan,
	activities []model.Activity,
	interruptions []model.Interruption,
	goals model.GoalState,
	day string,
	loc *time.Location,
	th SummaryThresholds,
) DailySummary {
	w := Day(day)

	focusMinutes := FocusMinutes(activities, w, loc)
	actualHours := RoundHours(focusMinutes / 60)

	intMinutes, intCount := InterruptionLoad(interruptions, w, loc)

	s := DailySummary{
		Date:                day,
		ActualFocusHours:    actualHours,
		InterruptionMinutes: RoundMinutes(intMinutes),
		InterruptionCount:   intCount,
	}
	if plan == nil {
		return s
	}

	s.HasPlan = true
	s.GoalsTotal = len(plan.Goals)
	for i := range plan.Goals {
		if goals[i] {
			s.GoalsCompleted++
		}
	}
	if s.GoalsTotal > 0 {
		s.GoalsProgress = RoundPercent(float64(s.GoalsCompleted) / float64(s.GoalsTotal) * 100)
	}

	s.PlannedFocusHours = plan.PlannedFocusHours
	if plan.PlannedFocusHours > 0 {
		ratio := actualHours / plan.PlannedFocusHours * 100
		s.TimeAccuracy = RoundPercent(ratio)
		s.FocusProgress = RoundPercent(ratio)
		if s.FocusProgress > 100 {
			s.FocusProgress = 100
		}
	}

	switch {
	case s.TimeAccuracy >= th.Great:
		s.Narrative = NarrativeGreat
	case s.TimeAccuracy >= th.Close:
		s.Narrative = NarrativeClose
	default:
		s.Narrative = NarrativeOverplanned
	}
	return s
}
