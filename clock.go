package arrivals

import (
	"errors"
	"fmt"
)

// Returned by ElapsedSince when the reference time is chronologically
// after the receiver. Arrivals are always emitted at or before "now",
// so hitting this indicates a caller bug.
var ErrTimeOrder = errors.New("reference time is after this time")

// TimeOfDay is the simulated clock: a recurring daily time with hour
// in [1,24] and a fractional minute in [0,60). Hour 24 is the last
// hour of the service day, not a calendar midnight; ticking past it
// wraps back to hour 1. There are no timezone or date semantics.
type TimeOfDay struct {
	Hour   int
	Minute float64
}

// NewTimeOfDay clamps out-of-range inputs to valid bounds rather than
// failing. Upstream data and UI-driven resets are trusted to be close
// enough that clamping beats crashing the simulation.
func NewTimeOfDay(hour int, minute float64) TimeOfDay {
	if hour < 1 {
		hour = 1
	}
	if hour > 24 {
		hour = 24
	}
	if minute < 0 {
		minute = 0
	}
	if minute > 59 {
		minute = 59
	}
	return TimeOfDay{Hour: hour, Minute: minute}
}

// Tick advances the clock by deltaMinutes (fractional deltas are
// fine) and re-normalizes: minute back into [0,60), hour wrapped into
// [1,24]. A single large delta may cross several hour or day
// boundaries.
func (t *TimeOfDay) Tick(deltaMinutes float64) {
	t.Minute += deltaMinutes
	for t.Minute >= 60 {
		t.Minute -= 60
		t.Hour++
	}
	for t.Hour >= 25 {
		t.Hour -= 24
	}
}

// ElapsedSince returns the minutes elapsed since earlier. It fails
// with ErrTimeOrder if earlier is chronologically after t; the
// comparison does not wrap around the day boundary.
func (t TimeOfDay) ElapsedSince(earlier TimeOfDay) (float64, error) {
	if earlier.Hour > t.Hour || (earlier.Hour == t.Hour && earlier.Minute > t.Minute) {
		return 0, fmt.Errorf("%s is before %s: %w", t, earlier, ErrTimeOrder)
	}
	return float64(t.Hour-earlier.Hour)*60 + (t.Minute - earlier.Minute), nil
}

// Minutes since the start of the service day (hour 1, minute 0).
func (t TimeOfDay) minuteOfDay() float64 {
	return float64(t.Hour-1)*60 + t.Minute
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%d:%02d", t.Hour, int(t.Minute))
}
