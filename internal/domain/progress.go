package domain

import "time"

// ReadingProgress is the furthest scroll position a user reached in a
// chapter, as a percentage. At most one row exists per
// (user_id, story_id, chapter_id); writes are upserts on that key.
type ReadingProgress struct {
	UserID        string    `json:"user_id"`
	StoryID       string    `json:"story_id"`
	ChapterID     string    `json:"chapter_id"`
	ScrollPercent float64   `json:"scroll_percent"`
	LastReadAt    time.Time `json:"last_read_at"`
}

// ProgressEntry is a progress row joined with its story and chapter,
// as returned by the reading-history endpoint.
type ProgressEntry struct {
	ReadingProgress
	Story   *Story          `json:"story,omitempty"`
	Chapter *ChapterSummary `json:"chapter,omitempty"`
}

// ScrollObservation is a single scroll event from a reading surface.
type ScrollObservation struct {
	StoryID        string  `json:"story_id"`
	ChapterID      string  `json:"chapter_id"`
	ScrollOffset   float64 `json:"scroll_offset"`
	ContentHeight  float64 `json:"content_height"`
	ViewportHeight float64 `json:"viewport_height"`
}

// ProgressRepository defines persistence operations for reading progress.
type ProgressRepository interface {
	Upsert(progress *ReadingProgress, token string) error
	GetLatest(userID, storyID string, token string) (*ProgressEntry, error)
	History(userID string, token string) ([]*ProgressEntry, error)
}

// ProgressService converts scroll observations into bounded-rate progress
// writes and serves progress reads.
type ProgressService interface {
	Observe(userID string, obs ScrollObservation, token string) error
	EndSession(userID, storyID, chapterID string)
	GetLatest(userID, storyID string, token string) (*ProgressEntry, error)
	History(userID string, token string) ([]*ProgressEntry, error)
	Stop()
}
