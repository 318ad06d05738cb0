// internal/util/clock.go
// Time abstraction so services can be tested with a fixed clock.

package util

import "time"

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }
