package aggregate

import (
	"time"

	"github.com/daylog/daylog/server/internal/model"
)

// DefaultInterruptionMinutes applies when an interruption carries neither
// an explicit duration nor an end time.
const DefaultInterruptionMinutes = 5

// DurationMinutes returns end minus start in fractional minutes. A negative
// result means end precedes start; the caller decides whether that is a data
// error. Validation belongs on the write path, not here.
func DurationMinutes(start, end time.Time) float64 {
	return end.Sub(start).Minutes()
}

// InterruptionMinutes resolves an interruption's length in minutes.
// Priority order: explicit DurationMinutes, then EndTime minus Time,
// then the fixed default. Exactly one rule applies per record.
func InterruptionMinutes(i model.Interruption) float64 {
	switch {
	case i.DurationMinutes != nil:
		return float64(*i.DurationMinutes)
	case i.EndTime != nil:
		return DurationMinutes(i.Time, *i.EndTime)
	default:
		return DefaultInterruptionMinutes
	}
}
