package state

import (
	"time"

	"go.uber.org/zap"
)

// Clock supplies the current time. Tests substitute a fixed clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Option customizes a manager or a Dashboard.
type Option func(*options)

type options struct {
	clock    Clock
	logger   *zap.Logger
	seedDemo bool
}

// WithClock overrides the time source used for ids and timestamps.
func WithClock(c Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithDemoNotifications makes New seed the demo feed when no
// notifications have been persisted yet.
func WithDemoNotifications(enabled bool) Option {
	return func(o *options) { o.seedDemo = enabled }
}

func buildOptions(opts []Option) options {
	o := options{clock: systemClock{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	return o
}

// idSource issues ids from the clock in Unix milliseconds. Ids are
// strictly increasing even when the clock has not advanced.
type idSource struct {
	clock Clock
	last  int64
}

func (s *idSource) next() int64 {
	id := s.clock.Now().UnixMilli()
	if id <= s.last {
		id = s.last + 1
	}
	s.last = id
	return id
}
