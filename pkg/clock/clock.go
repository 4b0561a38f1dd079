package clock

import "time"

// Clock supplies the reference instant. Services read it once per request.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func System() Clock {
	return systemClock{}
}

// Fixed always returns t.
type Fixed time.Time

func (f Fixed) Now() time.Time {
	return time.Time(f)
}
