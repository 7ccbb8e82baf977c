package domain

import "time"

// Bookmark marks a story in a user's library. At most one row exists per
// (user_id, story_id); duplicates are rejected by the store.
type Bookmark struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	StoryID   string    `json:"story_id"`
	CreatedAt time.Time `json:"created_at"`
	Story     *Story    `json:"story,omitempty"`
}

type BookmarkRepository interface {
	Add(userID, storyID string, token string) (*Bookmark, error)
	Remove(userID, storyID string, token string) error
	ListByUser(userID string, token string) ([]*Bookmark, error)
}

type BookmarkService interface {
	AddBookmark(userID, storyID string, token string) (*Bookmark, error)
	RemoveBookmark(userID, storyID string, token string) error
	ListBookmarks(userID string, token string) ([]*Bookmark, error)
}
