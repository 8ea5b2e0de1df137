package aggregate

import (
	"sort"
	"time"

	"github.com/daylog/daylog/server/internal/model"
)

// Streaks summarizes day-level logging consistency.
type Streaks struct {
	CurrentStreak    int `json:"currentStreak"`
	LongestStreak    int `json:"longestStreak"`
	DaysWithActivity int `json:"daysWithActivity"`
}

// DeriveStreaks computes consecutive-day streaks from activity start days.
// today anchors the current streak; a day counts once no matter how many
// activities it holds. Empty input yields all zeros.
func DeriveStreaks(activities []model.Activity, today time.Time, loc *time.Location) Streaks {
	seen := make(map[string]bool)
	for _, a := range activities {
		seen[DayKey(a.StartTime, loc)] = true
	}
	if len(seen) == 0 {
		return Streaks{}
	}

	days := make([]string, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))

	anchor := today.In(loc)
	current := 0
	for i, d := range days {
		if d == anchor.AddDate(0, 0, -i).Format(DayKeyLayout) {
			current++
		} else {
			break
		}
	}

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		prev, err := ParseDayKey(days[i-1], loc)
		if err == nil && prev.AddDate(0, 0, -1).Format(DayKeyLayout) == days[i] {
			run++
		} else {
			if run > longest {
				longest = run
			}
			run = 1
		}
	}
	if run > longest {
		longest = run
	}

	return Streaks{
		CurrentStreak:    current,
		LongestStreak:    longest,
		DaysWithActivity: len(seen),
	}
}
