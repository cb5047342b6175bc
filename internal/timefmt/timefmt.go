package timefmt

import (
	"fmt"
	"time"
)

// dateLayout renders older times as month, day and clock time.
const dateLayout = "Jan 2, 3:04 PM"

// Ago renders how long before now t was, in the coarsest unit below a
// week ("just now", "5 mins ago", "1 hour ago", "3 days ago"). Older
// times, and times in the future beyond a minute, render as a date.
func Ago(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < 0 && d > -time.Minute:
		return "just now"
	case d < 0:
		return t.Format(dateLayout)
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d/time.Minute), "min")
	case d < 24*time.Hour:
		return plural(int(d/time.Hour), "hour")
	case d < 7*24*time.Hour:
		return plural(int(d/(24*time.Hour)), "day")
	default:
		return t.Format(dateLayout)
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
