package service

import (
	"sync"
	"time"

	"jianstory-server/internal/domain"
	"jianstory-server/internal/reading"
)

type mockLogger struct{}

func (m *mockLogger) Info(msg string, fields ...interface{})             {}
func (m *mockLogger) Error(msg string, err error, fields ...interface{}) {}
func (m *mockLogger) Debug(msg string, fields ...interface{})            {}
func (m *mockLogger) Warn(msg string, fields ...interface{})             {}

type mockStoryRepository struct {
	stories      map[string]*domain.Story
	listResult   *domain.StoryList
	listParams   domain.StoryListParams
	incrementIDs []string
	incrementErr error
}

func (m *mockStoryRepository) List(params domain.StoryListParams) (*domain.StoryList, error) {
	m.listParams = params
	return m.listResult, nil
}

func (m *mockStoryRepository) GetBySlug(slug string) (*domain.Story, error) {
	if story, ok := m.stories[slug]; ok {
		return story, nil
	}
	return nil, domain.ErrStoryNotFound
}

func (m *mockStoryRepository) GetByID(id string) (*domain.Story, error) {
	for _, story := range m.stories {
		if story.ID == id {
			return story, nil
		}
	}
	return nil, domain.ErrStoryNotFound
}

func (m *mockStoryRepository) IncrementViewCount(id string) error {
	m.incrementIDs = append(m.incrementIDs, id)
	return m.incrementErr
}

func (m *mockStoryRepository) Upsert(story *domain.Story) (*domain.Story, error) {
	return story, nil
}

type mockChapterRepository struct {
	chapters map[string]*domain.Chapter
	prev     *domain.ChapterSummary
	next     *domain.ChapterSummary
	listErr  error
}

func (m *mockChapterRepository) ListByStory(storyID string) ([]*domain.ChapterSummary, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var summaries []*domain.ChapterSummary
	for _, ch := range m.chapters {
		if ch.StoryID == storyID {
			summaries = append(summaries, &domain.ChapterSummary{
				ID:            ch.ID,
				StoryID:       ch.StoryID,
				ChapterNumber: ch.ChapterNumber,
				Title:         ch.Title,
				Slug:          ch.Slug,
			})
		}
	}
	return summaries, nil
}

func (m *mockChapterRepository) GetBySlug(storyID, chapterSlug string) (*domain.Chapter, error) {
	if ch, ok := m.chapters[chapterSlug]; ok && ch.StoryID == storyID {
		return ch, nil
	}
	return nil, domain.ErrChapterNotFound
}

func (m *mockChapterRepository) Neighbors(storyID string, chapterNumber int) (*domain.ChapterSummary, *domain.ChapterSummary, error) {
	return m.prev, m.next, nil
}

func (m *mockChapterRepository) Upsert(chapter *domain.Chapter) error { return nil }

func (m *mockChapterRepository) CountByStory(storyID string) (int, error) {
	return len(m.chapters), nil
}

type mockProgressRepository struct {
	mu      sync.Mutex
	upserts []*domain.ReadingProgress
	tokens  []string
	history []*domain.ProgressEntry
	latest  *domain.ProgressEntry
}

func (m *mockProgressRepository) Upsert(progress *domain.ReadingProgress, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upserts = append(m.upserts, progress)
	m.tokens = append(m.tokens, token)
	return nil
}

func (m *mockProgressRepository) GetLatest(userID, storyID string, token string) (*domain.ProgressEntry, error) {
	if m.latest == nil {
		return nil, domain.ErrProgressNotFound
	}
	return m.latest, nil
}

func (m *mockProgressRepository) History(userID string, token string) ([]*domain.ProgressEntry, error) {
	return m.history, nil
}

func (m *mockProgressRepository) upsertCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.upserts)
}

func (m *mockProgressRepository) lastUpsert() *domain.ReadingProgress {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.upserts) == 0 {
		return nil
	}
	return m.upserts[len(m.upserts)-1]
}

type mockRatingRepository struct {
	userRatings map[string]int
	aggregate   domain.RatingAggregate
	upserts     []*domain.Rating
	upsertErr   error
}

func (m *mockRatingRepository) Upsert(rating *domain.Rating, token string) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserts = append(m.upserts, rating)
	return nil
}

func (m *mockRatingRepository) GetUserRating(userID, storyID string, token string) (int, error) {
	return m.userRatings[userID+"|"+storyID], nil
}

func (m *mockRatingRepository) Aggregate(storyID string) (domain.RatingAggregate, error) {
	return m.aggregate, nil
}

type mockBookmarkRepository struct {
	bookmarks map[string]*domain.Bookmark
}

func (m *mockBookmarkRepository) Add(userID, storyID string, token string) (*domain.Bookmark, error) {
	key := userID + "|" + storyID
	if _, ok := m.bookmarks[key]; ok {
		return nil, domain.ErrAlreadyBookmarked
	}
	b := &domain.Bookmark{ID: key, UserID: userID, StoryID: storyID}
	m.bookmarks[key] = b
	return b, nil
}

func (m *mockBookmarkRepository) Remove(userID, storyID string, token string) error {
	delete(m.bookmarks, userID+"|"+storyID)
	return nil
}

func (m *mockBookmarkRepository) ListByUser(userID string, token string) ([]*domain.Bookmark, error) {
	var list []*domain.Bookmark
	for _, b := range m.bookmarks {
		if b.UserID == userID {
			list = append(list, b)
		}
	}
	return list, nil
}

// manualClock drives reporter timers by hand.
type manualClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*manualTimer
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) reading.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{deadline: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []*manualTimer
	var rest []*manualTimer
	for _, t := range c.timers {
		if t.stopped {
			continue
		}
		if !t.deadline.After(c.now) {
			due = append(due, t)
		} else {
			rest = append(rest, t)
		}
	}
	c.timers = rest
	c.mu.Unlock()

	for _, t := range due {
		t.f()
	}
}

type manualTimer struct {
	deadline time.Time
	f        func()
	stopped  bool
}

func (t *manualTimer) Stop() bool {
	t.stopped = true
	return true
}
