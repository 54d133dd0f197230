package services

import "time"

// Clock supplies the current time. Injected so transition preconditions and
// sweep ticks can be tested without sleeping.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// NewClock returns a Clock backed by the system time.
func NewClock() Clock {
	return realClock{}
}
