package commons

import "time"

const DisplayTimeLayout = "2006-01-02 15:04:05"

// FormatDisplayTime renders a stored UTC instant in the display zone.
func FormatDisplayTime(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DisplayTimeLayout)
}
