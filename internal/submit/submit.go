package submit

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Submitter delivers one payload. Booking and contact submissions both
// go through this shape so a network-backed implementation can replace
// the simulated one without touching the state machines.
type Submitter[T any] interface {
	Submit(ctx context.Context, payload T) error
}

// Simulated stands in for a network call: it waits Delay and succeeds.
// A cancelled context ends the wait early with the context error.
type Simulated[T any] struct {
	Delay time.Duration

	// After defaults to time.After. Tests swap it to control the delay.
	After func(time.Duration) <-chan time.Time
}

func NewSimulated[T any](delay time.Duration) Simulated[T] {
	return Simulated[T]{Delay: delay}
}

func (s Simulated[T]) Submit(ctx context.Context, _ T) error {
	after := s.After
	if after == nil {
		after = time.After
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-after(s.Delay):
		return nil
	}
}

// Func adapts a function to Submitter.
type Func[T any] func(ctx context.Context, payload T) error

func (f Func[T]) Submit(ctx context.Context, payload T) error {
	return f(ctx, payload)
}

// Logged wraps a submitter and writes one debug line with the duration
// of every call, and an error line when it fails.
type Logged[T any] struct {
	Next Submitter[T]
	Name string
	Log  *zerolog.Logger
}

func WithLogging[T any](next Submitter[T], name string, log *zerolog.Logger) Logged[T] {
	return Logged[T]{Next: next, Name: name, Log: log}
}

func (l Logged[T]) Submit(ctx context.Context, payload T) error {
	start := time.Now()
	err := l.Next.Submit(ctx, payload)
	if l.Log == nil {
		return err
	}
	duration := time.Since(start)
	if err != nil {
		l.Log.Error().
			Err(err).
			Str("label", "submit").
			Str("target", l.Name).
			Float64("duration", duration.Seconds()).
			Msg("submission failed")
		return err
	}
	l.Log.Debug().
		Str("label", "submit").
		Str("target", l.Name).
		Float64("duration", duration.Seconds()).
		Msg("")
	return nil
}
