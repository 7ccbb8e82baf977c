package service

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"jianstory-server/internal/domain"
	"jianstory-server/internal/reading"
)

// sessionIdleTTL is how long a reader session may go without scroll events
// before the janitor tears its reporter down.
const sessionIdleTTL = 5 * time.Minute

const janitorInterval = time.Minute

type sessionKey struct {
	userID    string
	storyID   string
	chapterID string
}

// readerSession pairs one reporter with the most recent auth token seen for
// it. The token is refreshed on every observation so writes fired by the
// throttle timer use a credential that is still valid.
type readerSession struct {
	reporter *reading.ProgressReporter

	mu       sync.Mutex
	token    string
	lastSeen time.Time
}

func (s *readerSession) refresh(token string, now time.Time) {
	s.mu.Lock()
	s.token = token
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *readerSession) currentToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *readerSession) idleSince(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen.Before(cutoff)
}

type progressService struct {
	progressRepo domain.ProgressRepository
	logger       domain.Logger
	clock        reading.Clock
	window       time.Duration

	mu       sync.Mutex
	sessions map[sessionKey]*readerSession

	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewProgressService creates a new progress service
func NewProgressService(progressRepo domain.ProgressRepository, logger domain.Logger, clock reading.Clock, window time.Duration) domain.ProgressService {
	s := &progressService{
		progressRepo: progressRepo,
		logger:       logger,
		clock:        clock,
		window:       window,
		sessions:     make(map[sessionKey]*readerSession),
		stopCh:       make(chan struct{}),
	}
	go s.janitor()
	return s
}

func (s *progressService) Observe(userID string, obs domain.ScrollObservation, token string) error {
	if userID == "" {
		return domain.ErrUnauthenticated
	}
	if _, err := uuid.Parse(obs.StoryID); err != nil {
		return domain.ErrInvalidTarget
	}
	if _, err := uuid.Parse(obs.ChapterID); err != nil {
		return domain.ErrInvalidTarget
	}

	sess := s.session(userID, obs.StoryID, obs.ChapterID)
	sess.refresh(token, s.clock.Now())
	sess.reporter.Observe(obs.ScrollOffset, obs.ContentHeight, obs.ViewportHeight)
	return nil
}

// session returns the reader session for the key, creating it on first use.
func (s *progressService) session(userID, storyID, chapterID string) *readerSession {
	key := sessionKey{userID: userID, storyID: storyID, chapterID: chapterID}

	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[key]; ok {
		return sess
	}

	sess := &readerSession{}
	sink := reading.ProgressSinkFunc(func(report reading.ProgressReport) error {
		return s.progressRepo.Upsert(&domain.ReadingProgress{
			UserID:        userID,
			StoryID:       storyID,
			ChapterID:     chapterID,
			ScrollPercent: report.ScrollPercent,
			LastReadAt:    report.LastReadAt,
		}, sess.currentToken())
	})
	sess.reporter = reading.NewProgressReporter(sink, s.clock, s.window, s.logger)
	s.sessions[key] = sess
	return sess
}

// EndSession tears down the reporter for one chapter. Any value still
// waiting on the throttle timer is discarded, not flushed.
func (s *progressService) EndSession(userID, storyID, chapterID string) {
	key := sessionKey{userID: userID, storyID: storyID, chapterID: chapterID}

	s.mu.Lock()
	sess, ok := s.sessions[key]
	if ok {
		delete(s.sessions, key)
	}
	s.mu.Unlock()

	if ok {
		sess.reporter.Close()
	}
}

func (s *progressService) GetLatest(userID, storyID string, token string) (*domain.ProgressEntry, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.progressRepo.GetLatest(userID, storyID, token)
}

// History returns the user's progress rows, newest first, keeping only the
// most recent chapter per story.
func (s *progressService) History(userID string, token string) ([]*domain.ProgressEntry, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}

	entries, err := s.progressRepo.History(userID, token)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(entries))
	deduped := make([]*domain.ProgressEntry, 0, len(entries))
	for _, entry := range entries {
		if seen[entry.StoryID] {
			continue
		}
		seen[entry.StoryID] = true
		deduped = append(deduped, entry)
	}
	return deduped, nil
}

// Stop closes every live reporter and ends the janitor. Used on shutdown.
func (s *progressService) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })

	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[sessionKey]*readerSession)
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.reporter.Close()
	}
}

// janitor reaps sessions that stopped sending scroll events without an
// explicit EndSession, such as a closed browser tab.
func (s *progressService) janitor() {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.reapIdle(s.clock.Now().Add(-sessionIdleTTL))
		}
	}
}

func (s *progressService) reapIdle(cutoff time.Time) {
	var idle []*readerSession

	s.mu.Lock()
	for key, sess := range s.sessions {
		if sess.idleSince(cutoff) {
			delete(s.sessions, key)
			idle = append(idle, sess)
		}
	}
	s.mu.Unlock()

	for _, sess := range idle {
		sess.reporter.Close()
	}
	if len(idle) > 0 {
		s.logger.Debug("Reaped idle reader sessions", "count", len(idle))
	}
}
