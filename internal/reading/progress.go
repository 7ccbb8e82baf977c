package reading

import (
	"sync"
	"time"

	"jianstory-server/internal/domain"
)

// DefaultThrottleWindow bounds how often a reader session writes progress.
const DefaultThrottleWindow = time.Second

// Clock abstracts time for the progress reporter so the trailing-edge
// throttle is testable without real delays.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is an armed callback that can be cancelled.
type Timer interface {
	Stop() bool
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// SystemClock returns a Clock backed by the time package.
func SystemClock() Clock { return realClock{} }

// ProgressReport is one throttled progress emission.
type ProgressReport struct {
	ScrollPercent float64
	LastReadAt    time.Time
}

// ProgressSink receives throttled reports. Errors are logged by the
// reporter and never retried; losing a report is accepted.
type ProgressSink interface {
	Send(report ProgressReport) error
}

// ProgressSinkFunc adapts a function to the ProgressSink interface.
type ProgressSinkFunc func(report ProgressReport) error

func (f ProgressSinkFunc) Send(report ProgressReport) error { return f(report) }

// ProgressReporter converts scroll observations into bounded-rate progress
// reports: at most one per throttle window, carrying the most recent value
// at the moment the window elapses (trailing edge, so the first event of a
// burst is not sent immediately).
//
// Two states: idle (no timer armed) and pending (timer armed). Observations
// while pending only refresh the latest value. Close cancels any armed
// timer and discards the pending value; nothing is emitted afterwards.
type ProgressReporter struct {
	sink   ProgressSink
	clock  Clock
	window time.Duration
	logger domain.Logger

	mu      sync.Mutex
	pending bool
	latest  float64
	timer   Timer
	closed  bool
}

func NewProgressReporter(sink ProgressSink, clock Clock, window time.Duration, logger domain.Logger) *ProgressReporter {
	if window <= 0 {
		window = DefaultThrottleWindow
	}
	return &ProgressReporter{
		sink:   sink,
		clock:  clock,
		window: window,
		logger: logger,
	}
}

// ComputePercent turns a scroll position into a progress percentage,
// clamped to [0,100]. Content that fits entirely in the viewport counts as
// fully read; the zero denominator never produces a NaN.
func ComputePercent(scrollOffset, contentHeight, viewportHeight float64) float64 {
	scrollable := contentHeight - viewportHeight
	if scrollable <= 0 {
		return 100
	}
	percent := 100 * scrollOffset / scrollable
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

// Observe records a scroll event. The first event of a window arms the
// timer; later events within the window only update the value it will send.
func (r *ProgressReporter) Observe(scrollOffset, contentHeight, viewportHeight float64) {
	percent := ComputePercent(scrollOffset, contentHeight, viewportHeight)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.latest = percent
	if r.pending {
		return
	}
	r.pending = true
	r.timer = r.clock.AfterFunc(r.window, r.fire)
}

// fire runs when the throttle window elapses.
func (r *ProgressReporter) fire() {
	r.mu.Lock()
	if r.closed || !r.pending {
		r.mu.Unlock()
		return
	}
	r.pending = false
	r.timer = nil
	report := ProgressReport{
		ScrollPercent: r.latest,
		LastReadAt:    r.clock.Now(),
	}
	r.mu.Unlock()

	if err := r.sink.Send(report); err != nil {
		r.logger.Warn("Failed to report reading progress", "error", err)
	}
}

// Close tears the reporter down: any armed timer is cancelled and the
// pending value is discarded. Up to one window of progress can be lost.
func (r *ProgressReporter) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.closed = true
	r.pending = false
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}
