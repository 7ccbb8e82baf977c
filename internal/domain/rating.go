package domain

import "time"

// Rating is one user's 1-5 star rating of a story. At most one row exists
// per (user_id, story_id); writes are upserts on that key.
type Rating struct {
	UserID    string    `json:"user_id"`
	StoryID   string    `json:"story_id"`
	Rating    int       `json:"rating"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RatingAggregate is the running (average, count) pair shown next to a story.
type RatingAggregate struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// RatingRepository defines persistence operations for story ratings.
type RatingRepository interface {
	Upsert(rating *Rating, token string) error
	GetUserRating(userID, storyID string, token string) (int, error)
	Aggregate(storyID string) (RatingAggregate, error)
}

// RatingService defines the use-case operations for ratings.
type RatingService interface {
	SubmitRating(userID, storyID string, value int, token string) (RatingAggregate, error)
	GetRating(userID, storyID string, token string) (int, RatingAggregate, error)
}
