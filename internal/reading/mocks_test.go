package reading

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Mock logger used by reading package tests.
type mockLogger struct{}

func (l *mockLogger) Info(msg string, fields ...interface{})             {}
func (l *mockLogger) Error(msg string, err error, fields ...interface{}) {}
func (l *mockLogger) Debug(msg string, fields ...interface{})            {}
func (l *mockLogger) Warn(msg string, fields ...interface{})             {}

// In-memory settings repository.
type memorySettingsRepo struct {
	records map[string][]byte
	loadErr error
	saveErr error
}

func newMemorySettingsRepo() *memorySettingsRepo {
	return &memorySettingsRepo{records: make(map[string][]byte)}
}

func (m *memorySettingsRepo) Load(_ context.Context, key string) ([]byte, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.records[key], nil
}

func (m *memorySettingsRepo) Save(_ context.Context, key string, record []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.records[key] = record
	return nil
}

// Manual clock driving the reporter's throttle timer by hand.
type manualClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*manualTimer
}

type manualTimer struct {
	clock    *manualClock
	deadline time.Time
	f        func()
	stopped  bool
	fired    bool
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{clock: c, deadline: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves the clock forward, firing every due timer.
func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []*manualTimer
	for _, t := range c.timers {
		if !t.fired && !t.stopped && !t.deadline.After(c.now) {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	for _, t := range due {
		t.f()
	}
}

// Progress sink capturing sent reports.
type captureSink struct {
	mu      sync.Mutex
	reports []ProgressReport
	err     error
}

func (s *captureSink) Send(report ProgressReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.reports = append(s.reports, report)
	return nil
}

func (s *captureSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reports)
}

func (s *captureSink) last() ProgressReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reports[len(s.reports)-1]
}

// Rating store capturing upserts.
type captureRatingStore struct {
	upserts []capturedRating
	err     error
}

type capturedRating struct {
	userID  string
	storyID string
	value   int
}

func (s *captureRatingStore) Upsert(_ context.Context, userID, storyID string, value int) error {
	if s.err != nil {
		return s.err
	}
	s.upserts = append(s.upserts, capturedRating{userID: userID, storyID: storyID, value: value})
	return nil
}

var errRemote = errors.New("remote store unavailable")
