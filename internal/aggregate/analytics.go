package aggregate

import (
	"time"

	"github.com/daylog/daylog/server/internal/model"
)

// AnalyticsSummary is the rolling-window overview combining focus totals,
// interruption load, per-category breakdown, streaks and a quality score.
type AnalyticsSummary struct {
	TotalFocusHours          float64          `json:"totalFocusHours"`
	TotalInterruptionMinutes float64          `json:"totalInterruptionMinutes"`
	AvgDailyFocusHours       float64          `json:"avgDailyFocusHours"`
	CategoryBreakdown        []BreakdownEntry `json:"categoryBreakdown"`
	Streaks                  Streaks          `json:"streaks"`
	QualityScore             float64          `json:"qualityScore"`
}

// DeriveAnalyticsSummary aggregates a window of activities and
// interruptions into the overview metrics. The average daily focus divides
// by days that actually have activity, not by the window length, so sparse
// loggers see their real per-day effort.
func DeriveAnalyticsSummary(
	activities []model.Activity,
	interruptions []model.Interruption,
	w Window,
	today time.Time,
	loc *time.Location,
) AnalyticsSummary {
	focusMinutes := FocusMinutes(activities, w, loc)
	intMinutes, _ := InterruptionLoad(interruptions, w, loc)
	streaks := DeriveStreaks(activities, today, loc)

	avgDaily := 0.0
	if streaks.DaysWithActivity > 0 {
		avgDaily = focusMinutes / float64(streaks.DaysWithActivity)
	}

	insights := DeriveInsights(activities, interruptions, loc)

	return AnalyticsSummary{
		TotalFocusHours:          RoundHours(focusMinutes / 60),
		TotalInterruptionMinutes: Round1(intMinutes),
		AvgDailyFocusHours:       RoundHours(avgDaily / 60),
		CategoryBreakdown:        Breakdown(activities, w, loc),
		Streaks:                  streaks,
		QualityScore:             Round1(insights.ConsistencyScore * 100),
	}
}
