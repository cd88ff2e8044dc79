package clock

import "time"

// Clock abstracts time to keep tick accounting deterministic in tests.
// Now returns local time so day/hour aggregations bucket by the user's calendar.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
