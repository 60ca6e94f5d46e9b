// Package date parses calendar dates given on the command line and turns
// them into the absolute instants used by Twilio list filters.
package date

import (
	"errors"
	"fmt"
	"time"
)

// Layout is the only accepted input format.
const Layout = "2006-01-02"

// ErrInvalid indicates a date string does not match Layout.
var ErrInvalid = errors.New("invalid date")

// lastSecond is the offset of 23:59:59 from midnight.
const lastSecond = 23*time.Hour + 59*time.Minute + 59*time.Second

// Parse parses a yyyy-mm-dd string into midnight UTC of that day.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is not yyyy-mm-dd: %w", s, ErrInvalid)
	}
	return t, nil
}

// Window is an inclusive range of absolute instants.
type Window struct {
	Start time.Time
	End   time.Time
}

// LocalDayWindow covers start 00:00:00 through end 23:59:59 in a zone that
// is offsetSeconds east of UTC. The returned instants are in UTC.
//
// The offset is applied uniformly to both ends: a range that crosses a
// daylight-saving change is not corrected per day.
func LocalDayWindow(start, end time.Time, offsetSeconds int) Window {
	shift := time.Duration(offsetSeconds) * time.Second
	return Window{
		Start: midnight(start).Add(-shift),
		End:   midnight(end).Add(lastSecond - shift),
	}
}

// Offset returns the UTC offset of now in seconds east of UTC.
func Offset(now time.Time) int {
	_, off := now.Zone()
	return off
}

// midnight drops the clock part of t, keeping its calendar date, in UTC.
func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
