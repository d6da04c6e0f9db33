// Package clock supplies the time source used by the use case handlers.
package clock

import "time"

// System reads the wall clock in UTC.
type System struct{}

func (System) Now() time.Time {
	return time.Now().UTC()
}

// Fixed always returns the same instant. Tests move it with Advance.
type Fixed struct {
	at time.Time
}

func NewFixed(at time.Time) *Fixed {
	return &Fixed{at: at}
}

func (f *Fixed) Now() time.Time {
	return f.at
}

func (f *Fixed) Set(at time.Time) {
	f.at = at
}

func (f *Fixed) Advance(d time.Duration) {
	f.at = f.at.Add(d)
}
