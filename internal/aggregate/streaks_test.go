package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/daylog/daylog/server/internal/model"
)

func TestDeriveStreaksEmpty(t *testing.T) {
	s := DeriveStreaks(nil, time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC), time.UTC)
	assert.Equal(t, Streaks{}, s)
}

func TestDeriveStreaksCurrentAndLongest(t *testing.T) {
	today := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	mk := func(day int) model.Activity {
		return act(model.CategoryWork, time.Date(2024, 1, day, 9, 0, 0, 0, time.UTC), 30)
	}

	// 13,14,15 consecutive through today; 5,6,7,8 is an older 4-day run.
	activities := []model.Activity{
		mk(15), mk(14), mk(13),
		mk(8), mk(7), mk(6), mk(5),
	}

	s := DeriveStreaks(activities, today, time.UTC)
	assert.Equal(t, 3, s.CurrentStreak)
	assert.Equal(t, 4, s.LongestStreak)
	assert.Equal(t, 7, s.DaysWithActivity)
}

func TestDeriveStreaksBrokenToday(t *testing.T) {
	today := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	activities := []model.Activity{
		act(model.CategoryWork, time.Date(2024, 1, 13, 9, 0, 0, 0, time.UTC), 30),
		act(model.CategoryWork, time.Date(2024, 1, 12, 9, 0, 0, 0, time.UTC), 30),
	}

	s := DeriveStreaks(activities, today, time.UTC)
	assert.Equal(t, 0, s.CurrentStreak)
	assert.Equal(t, 2, s.LongestStreak)
	assert.Equal(t, 2, s.DaysWithActivity)
}

func TestDeriveStreaksCountsDayOnce(t *testing.T) {
	today := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	activities := []model.Activity{
		act(model.CategoryWork, time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC), 30),
		act(model.CategoryStudy, time.Date(2024, 1, 15, 14, 0, 0, 0, time.UTC), 30),
	}

	s := DeriveStreaks(activities, today, time.UTC)
	assert.Equal(t, 1, s.CurrentStreak)
	assert.Equal(t, 1, s.DaysWithActivity)
}
