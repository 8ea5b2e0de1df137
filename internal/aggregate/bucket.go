package aggregate

import "time"

// DayKeyLayout is the wire format for calendar-day keys.
const DayKeyLayout = "2006-01-02"

// DayKey maps an absolute instant to its calendar-day key in the given
// reference timezone. Two instants share a key iff they fall in the same
// local calendar day in that zone. The whole engine must use one zone;
// mixing zones breaks every day-boundary comparison.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DayKeyLayout)
}

// ParseDayKey parses a YYYY-MM-DD key into midnight of that day in loc.
func ParseDayKey(key string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DayKeyLayout, key, loc)
}

// Window is an inclusive range of calendar-day keys. Day keys compare
// correctly as strings because the layout is fixed-width big-endian.
type Window struct {
	Start string
	End   string
}

// Day returns a single-day window.
func Day(key string) Window {
	return Window{Start: key, End: key}
}

// LastNDays returns the window covering today and the n-1 preceding days.
func LastNDays(today time.Time, n int, loc *time.Location) Window {
	if n < 1 {
		n = 1
	}
	end := today.In(loc)
	start := end.AddDate(0, 0, -(n - 1))
	return Window{Start: start.Format(DayKeyLayout), End: end.Format(DayKeyLayout)}
}

// Contains reports whether the day key falls inside the window.
func (w Window) Contains(key string) bool {
	return key >= w.Start && key <= w.End
}
