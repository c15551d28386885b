// Package player replays recorded actions through an injection sink with
// the recorded inter-event timing.
package player

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/SmitUplenchwar2687/Toca/internal/clock"
)

// ErrBusy is returned by Load and Play while a playback is running.
var ErrBusy = errors.New("playback in progress")

// Summary aggregates playback statistics.
type Summary struct {
	Total        int           `json:"total"`
	Injected     int           `json:"injected"`
	Skipped      int           `json:"skipped"`       // unmappable or ignored in tap mode
	Failed       int           `json:"failed"`        // sink returned an error
	Duration     time.Duration `json:"duration"`      // recorded till
	WallDuration time.Duration `json:"wall_duration"` // time spent in Play on the player's clock
}

// Option configures a player.
type Option func(*options)

type options struct {
	clock      clock.Clock
	speed      float64
	tap        bool
	startDelay time.Duration
	logger     *slog.Logger
}

// WithClock sets the clock waits are taken on. Defaults to the real clock.
func WithClock(c clock.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithSpeed scales every inter-event delay by 1/speed. 1.0 is real time,
// 2.0 twice as fast, 0 plays everything without waiting. Negative values
// are treated as 0.
func WithSpeed(speed float64) Option {
	return func(o *options) {
		if speed < 0 {
			speed = 0
		}
		o.speed = speed
	}
}

// WithTapMode makes the keyboard player send a click for every press and
// ignore releases. Useful for recordings that only contain presses.
func WithTapMode(tap bool) Option {
	return func(o *options) { o.tap = tap }
}

// WithStartDelay waits d before the first event. The delay is not scaled
// by speed.
func WithStartDelay(d time.Duration) Option {
	return func(o *options) { o.startDelay = d }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func buildOptions(opts []Option) options {
	o := options{
		clock:  clock.NewRealClock(),
		speed:  1,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type outcome int

const (
	injected outcome = iota
	skipped
	failed
)

// queue is the state shared by the keyboard and mouse players.
type queue[E any] struct {
	opts options

	mu      sync.Mutex
	playing bool
	events  []E
	till    uint64
}

func (q *queue[E]) load(events []E, till uint64) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.playing {
		return ErrBusy
	}
	q.events = make([]E, len(events))
	copy(q.events, events)
	q.till = till
	return nil
}

// begin marks the player busy and hands out the queue to replay.
func (q *queue[E]) begin() ([]E, uint64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.playing {
		return nil, 0, ErrBusy
	}
	q.playing = true
	return q.events, q.till, nil
}

func (q *queue[E]) end() {
	q.mu.Lock()
	q.playing = false
	q.mu.Unlock()
}

// Playing reports whether Play is running.
func (q *queue[E]) Playing() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.playing
}

// Duration returns the loaded action's till in milliseconds.
func (q *queue[E]) Duration() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.till
}

func (q *queue[E]) snapshot() []E {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]E, len(q.events))
	copy(out, q.events)
	return out
}

// play runs the schedule. It must be called between begin and end. The
// slice is never mutated by load, which always allocates.
func (q *queue[E]) play(events []E, till uint64, stamp func(E) uint64, inject func(E) outcome) Summary {
	sum := Summary{
		Total:    len(events),
		Duration: time.Duration(till) * time.Millisecond,
	}
	if len(events) == 0 || till == 0 {
		q.opts.logger.Info("nothing to play", "events", len(events), "till_ms", till)
		return sum
	}

	start := q.opts.clock.Now()
	if q.opts.startDelay > 0 {
		<-q.opts.clock.After(q.opts.startDelay)
	}

	var last uint64
	for _, ev := range events {
		ts := stamp(ev)
		if ts > last {
			q.wait(time.Duration(ts-last) * time.Millisecond)
		}
		last = ts

		switch inject(ev) {
		case injected:
			sum.Injected++
		case skipped:
			sum.Skipped++
		case failed:
			sum.Failed++
		}
	}

	sum.WallDuration = q.opts.clock.Since(start)
	q.opts.logger.Info("playback finished",
		"total", sum.Total, "injected", sum.Injected, "skipped", sum.Skipped,
		"failed", sum.Failed, "wall", sum.WallDuration)
	return sum
}

func (q *queue[E]) wait(delay time.Duration) {
	if q.opts.speed == 0 {
		return
	}
	scaled := time.Duration(float64(delay) / q.opts.speed)
	if scaled <= 0 {
		return
	}
	<-q.opts.clock.After(scaled)
}
