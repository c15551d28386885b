// Package recorder captures live input into timestamped actions.
//
// A recorder subscribes to a capture.Source for the duration of one Record
// call. Callbacks arrive on the source's goroutines; every buffer mutation
// and timestamp read happens under one mutex so a session's events are
// ordered by timestamp.
package recorder

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SmitUplenchwar2687/Toca/internal/action"
	"github.com/SmitUplenchwar2687/Toca/internal/clock"
)

// ErrRecording is returned by Record while a session is already running.
var ErrRecording = errors.New("recording already in progress")

// Event is a captured transition handed to an Observer. Exactly one of Key
// and Mouse is set.
type Event struct {
	Session string
	Kind    action.Kind
	Key     *action.KeyEv
	Mouse   *action.MouseEv
}

// Observer is called for each captured event on a goroutine owned by the
// session, never on the capture source's goroutine. Events are queued up to
// observerBuffer deep; once the queue is full further events are dropped
// for the observer but still recorded.
type Observer func(Event)

const observerBuffer = 256

// Option configures a recorder.
type Option func(*options)

type options struct {
	clock    clock.Clock
	logger   *slog.Logger
	observer Observer
}

// WithClock sets the timestamp source. Defaults to the real clock.
func WithClock(c clock.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithObserver registers fn to see every captured event as it happens.
func WithObserver(fn Observer) Option {
	return func(o *options) { o.observer = fn }
}

func buildOptions(opts []Option) options {
	o := options{
		clock:  clock.NewRealClock(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// session is the state shared by the keyboard and mouse recorders.
type session[E any] struct {
	opts options

	mu        sync.Mutex
	recording bool
	events    []E
	start     time.Time
	till      uint64
	stop      chan struct{}
	id        string
	feed      chan Event
	dropped   int
}

// run is one session as seen by the Record call that opened it.
type run struct {
	id      string
	stop    <-chan struct{}
	drained <-chan struct{}
}

// begin clears the previous buffer and opens a new session. With an
// observer configured it also starts the goroutine that delivers to it.
func (s *session[E]) begin() (run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.recording {
		return run{}, ErrRecording
	}
	s.recording = true
	s.events = nil
	s.till = 0
	s.dropped = 0
	s.start = s.opts.clock.Now()
	s.stop = make(chan struct{})
	s.id = uuid.NewString()

	drained := make(chan struct{})
	if s.opts.observer == nil {
		s.feed = nil
		close(drained)
	} else {
		s.feed = make(chan Event, observerBuffer)
		go deliver(s.feed, s.opts.observer, drained)
	}
	return run{id: s.id, stop: s.stop, drained: drained}, nil
}

func deliver(feed <-chan Event, fn Observer, drained chan<- struct{}) {
	defer close(drained)
	for ev := range feed {
		fn(ev)
	}
}

// add appends the event built from the current timestamp and queues it for
// the observer. It reports false once the session has ended.
func (s *session[E]) add(build func(ts uint64) E, notify func(id string, ev *E) Event) (E, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.recording {
		var zero E
		return zero, "", false
	}
	ev := build(clock.Millis(s.opts.clock, s.start))
	s.events = append(s.events, ev)
	if s.feed != nil {
		cp := ev
		select {
		case s.feed <- notify(s.id, &cp):
		default:
			s.dropped++
		}
	}
	return ev, s.id, true
}

// halt ends the session. Only the first call has an effect.
func (s *session[E]) halt() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.recording {
		return
	}
	s.recording = false
	s.till = clock.Millis(s.opts.clock, s.start)
	close(s.stop)
	if s.feed != nil {
		close(s.feed)
		s.feed = nil
	}
}

// wait blocks until the stop signal or ctx, snapshots the buffer, then
// waits for the observer to see every queued event.
func (s *session[E]) wait(ctx context.Context, r run, logger *slog.Logger) ([]E, uint64, error) {
	var err error
	select {
	case <-r.stop:
	case <-ctx.Done():
		s.halt()
		err = ctx.Err()
	}

	s.mu.Lock()
	events := make([]E, len(s.events))
	copy(events, s.events)
	till, dropped := s.till, s.dropped
	s.mu.Unlock()

	<-r.drained
	if dropped > 0 {
		logger.Warn("observer fell behind, events not delivered", "dropped", dropped)
	}
	return events, till, err
}

// snapshot copies the most recent buffer.
func (s *session[E]) snapshot() []E {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]E, len(s.events))
	copy(out, s.events)
	return out
}

// Recording reports whether a session is running.
func (s *session[E]) Recording() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recording
}

// Stop ends the running session as if the stop key had been pressed. It is
// a no-op when idle.
func (s *session[E]) Stop() {
	s.halt()
}
