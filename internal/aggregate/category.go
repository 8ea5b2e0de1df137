package aggregate

import (
	"math"
	"sort"
	"time"

	"github.com/daylog/daylog/server/internal/model"
)

// BreakdownEntry is one row of a per-category breakdown. Percentages are
// normalized against the window total and sum to 100 within a rounding
// tolerance of one point per entry.
type BreakdownEntry struct {
	Category     model.Category `json:"category"`
	TotalMinutes float64        `json:"totalMinutes"`
	SessionCount int            `json:"sessionCount"`
	AvgDuration  float64        `json:"avgDuration"`
	Percentage   int            `json:"percentage"`
}

// Breakdown groups activities by category within the window and produces
// per-category totals, counts, averages and normalized percentages. An
// activity belongs to the day its start instant buckets to; activities
// spanning midnight contribute entirely to their start day. Unknown
// categories count as Other. Entries sort by total descending; ties keep
// first-seen category order.
func Breakdown(activities []model.Activity, w Window, loc *time.Location) []BreakdownEntry {
	type group struct {
		total float64
		count int
	}
	groups := make(map[model.Category]*group)
	var order []model.Category

	for _, a := range activities {
		if !w.Contains(DayKey(a.StartTime, loc)) {
			continue
		}
		cat := a.Category.Normalize()
		g, ok := groups[cat]
		if !ok {
			g = &group{}
			groups[cat] = g
			order = append(order, cat)
		}
		g.total += DurationMinutes(a.StartTime, a.EndTime)
		g.count++
	}

	var windowTotal float64
	for _, g := range groups {
		windowTotal += g.total
	}

	entries := make([]BreakdownEntry, 0, len(order))
	for _, cat := range order {
		g := groups[cat]
		pct := 0
		if windowTotal > 0 {
			pct = RoundPercent(g.total / windowTotal * 100)
		}
		entries = append(entries, BreakdownEntry{
			Category:     cat,
			TotalMinutes: Round1(g.total),
			SessionCount: g.count,
			AvgDuration:  math.Round(g.total / float64(g.count)),
			Percentage:   pct,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalMinutes > entries[j].TotalMinutes
	})
	return entries
}

// FocusMinutes sums the duration of focus-category activities whose start
// day falls inside the window.
func FocusMinutes(activities []model.Activity, w Window, loc *time.Location) float64 {
	var total float64
	for _, a := range activities {
		if !a.Category.IsFocus() {
			continue
		}
		if !w.Contains(DayKey(a.StartTime, loc)) {
			continue
		}
		total += DurationMinutes(a.StartTime, a.EndTime)
	}
	return total
}

// InterruptionLoad sums resolved interruption minutes for interruptions
// whose time buckets inside the window, and returns the count alongside.
func InterruptionLoad(interruptions []model.Interruption, w Window, loc *time.Location) (minutes float64, count int) {
	for _, i := range interruptions {
		if !w.Contains(DayKey(i.Time, loc)) {
			continue
		}
		minutes += InterruptionMinutes(i)
		count++
	}
	return minutes, count
}
