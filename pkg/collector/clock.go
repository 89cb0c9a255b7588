package collector

import "time"

// Clock abstracts time so sessions can be tested deterministically.
type Clock interface {
	Now() time.Time
}

// wallClock is the default Clock. time.Now carries a monotonic reading, so
// elapsed time measured through it is immune to wall-clock adjustments.
type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }
