package service

import (
	"time"

	"github.com/google/uuid"
)

type settings struct {
	now   func() time.Time
	newID func() string
}

// Option customizes a service. The defaults are the wall clock and random UUIDs.
type Option func(*settings)

// WithClock replaces the time source used for timestamps and windows.
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

// WithIDGenerator replaces the identifier source for new records.
func WithIDGenerator(newID func() string) Option {
	return func(s *settings) { s.newID = newID }
}

func applyOptions(opts []Option) settings {
	s := settings{
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, o := range opts {
		o(&s)
	}
	return s
}
