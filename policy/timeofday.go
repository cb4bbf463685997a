package policy

import (
	"fmt"
	"time"
)

// =============================================================================
// TIME OF DAY - Clock position with second precision
// =============================================================================

// TimeOfDay is a clock position within a day, stored as seconds since
// midnight. Second precision matters: the late-break boundary is
// inclusive, so 12:59:00 and 12:59:01 classify differently.
type TimeOfDay struct {
	secs int // 0 .. 86399
}

const secondsPerDay = 24 * 60 * 60

// ClockTime builds a TimeOfDay from hour/minute/second components.
func ClockTime(hour, minute, second int) TimeOfDay {
	s := (hour*60+minute)*60 + second
	return TimeOfDay{secs: ((s % secondsPerDay) + secondsPerDay) % secondsPerDay}
}

// ParseTimeOfDay accepts "15:04:05" and "15:04". Anything else is an error;
// callers map unparseable cells to nil (missing), not to midnight.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return ClockTime(t.Hour(), t.Minute(), t.Second()), nil
		}
	}
	return TimeOfDay{}, fmt.Errorf("invalid time of day %q", s)
}

// Comparison
func (t TimeOfDay) Before(other TimeOfDay) bool        { return t.secs < other.secs }
func (t TimeOfDay) After(other TimeOfDay) bool         { return t.secs > other.secs }
func (t TimeOfDay) Equal(other TimeOfDay) bool         { return t.secs == other.secs }
func (t TimeOfDay) BeforeOrEqual(other TimeOfDay) bool { return t.secs <= other.secs }
func (t TimeOfDay) AfterOrEqual(other TimeOfDay) bool  { return t.secs >= other.secs }

// Sub returns the signed clock distance from other to t. A negative
// result means t reads earlier on the clock than other; whether that is
// an overnight shift or bad data is a policy decision, not wrapped here.
func (t TimeOfDay) Sub(other TimeOfDay) time.Duration {
	return time.Duration(t.secs-other.secs) * time.Second
}

// Add shifts the clock position by d, wrapping around midnight.
// Used for lunch-start imputation (lunch_end minus the break length).
func (t TimeOfDay) Add(d time.Duration) TimeOfDay {
	s := (t.secs + int(d/time.Second)) % secondsPerDay
	if s < 0 {
		s += secondsPerDay
	}
	return TimeOfDay{secs: s}
}

// Properties
func (t TimeOfDay) Hour() int   { return t.secs / 3600 }
func (t TimeOfDay) Minute() int { return (t.secs / 60) % 60 }
func (t TimeOfDay) Second() int { return t.secs % 60 }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
}

// At anchors the clock position onto a calendar date.
func (t TimeOfDay) At(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}
