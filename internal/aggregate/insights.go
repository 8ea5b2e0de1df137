package aggregate

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/daylog/daylog/server/internal/model"
)

// Insights holds explainable observations derived from raw records.
type Insights struct {
	PeakFocusWindow    string  `json:"peakFocusWindow"`
	DistractionHotspot string  `json:"distractionHotspot"`
	ConsistencyScore   float64 `json:"consistencyScore"` // 0..1
	BalanceRatio       float64 `json:"balanceRatio"`     // focus / (focus+rest)
	Suggestion         string  `json:"suggestion"`
}

// DeriveInsights inspects activities and interruptions for hour-of-day and
// day-to-day patterns. With no activities it returns a defined "not enough
// data" state rather than an error.
func DeriveInsights(activities []model.Activity, interruptions []model.Interruption, loc *time.Location) Insights {
	if len(activities) == 0 {
		return Insights{
			PeakFocusWindow:    "Not enough data yet",
			DistractionHotspot: "Not enough data yet",
			ConsistencyScore:   0,
			BalanceRatio:       0.5,
			Suggestion:         "Start logging your activities to see insights.",
		}
	}

	hourFocus := make(map[int]float64)
	dailyFocus := make(map[string]float64)
	var totalFocus, totalRest float64
	for _, a := range activities {
		d := DurationMinutes(a.StartTime, a.EndTime)
		switch {
		case a.Category.IsFocus():
			local := a.StartTime.In(loc)
			hourFocus[local.Hour()] += d
			dailyFocus[DayKey(a.StartTime, loc)] += d
			totalFocus += d
		case a.Category == model.CategoryRest:
			totalRest += d
		}
	}

	peak := "No focus time logged yet"
	if len(hourFocus) > 0 {
		peakHour, best := 0, -1.0
		for h := 0; h < 24; h++ {
			if m, ok := hourFocus[h]; ok && m > best {
				peakHour, best = h, m
			}
		}
		peak = fmt.Sprintf("%02d:00 - %02d:00", peakHour, (peakHour+1)%24)
	}

	hourInterruptions := make(map[int]int)
	for _, i := range interruptions {
		hourInterruptions[i.Time.In(loc).Hour()]++
	}
	hotspot := "No interruptions logged"
	maxHits := 0
	if len(hourInterruptions) > 0 {
		hotHour := 0
		for h := 0; h < 24; h++ {
			if n, ok := hourInterruptions[h]; ok && n > maxHits {
				hotHour, maxHits = h, n
			}
		}
		hotspot = fmt.Sprintf("Most interruptions around %02d:00", hotHour)
	}

	consistency := 0.5
	if len(dailyFocus) > 1 {
		var sum float64
		for _, v := range dailyFocus {
			sum += v
		}
		avg := sum / float64(len(dailyFocus))
		var variance float64
		for _, v := range dailyFocus {
			variance += (v - avg) * (v - avg)
		}
		variance /= float64(len(dailyFocus))
		stdDev := math.Sqrt(variance)
		consistency = 1 - stdDev/(avg+1)
		if consistency < 0 {
			consistency = 0
		}
	}

	balance := 0.5
	if total := totalFocus + totalRest; total > 0 {
		balance = totalFocus / total
	}

	var suggestions []string
	if balance > 0.8 {
		suggestions = append(suggestions, "Consider adding more rest time to your schedule.")
	} else if balance < 0.3 {
		suggestions = append(suggestions, "You might benefit from more focused work blocks.")
	}
	if maxHits > 3 {
		suggestions = append(suggestions, "Try scheduling deep work during hours with fewer interruptions.")
	}
	if consistency < 0.5 {
		suggestions = append(suggestions, "A more consistent schedule might help you find better focus.")
	}
	if len(suggestions) == 0 {
		suggestions = append(suggestions, "Keep tracking to discover more patterns.")
	}

	return Insights{
		PeakFocusWindow:    fmt.Sprintf("Your focus is strongest between %s", peak),
		DistractionHotspot: hotspot,
		ConsistencyScore:   Round2(consistency),
		BalanceRatio:       Round2(balance),
		Suggestion:         strings.Join(suggestions, " "),
	}
}
