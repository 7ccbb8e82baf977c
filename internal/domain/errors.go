package domain

import "errors"

// Domain errors
var (
	ErrUnauthenticated   = errors.New("authentication required")
	ErrInvalidTarget     = errors.New("invalid target identifier")
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
	ErrConflict          = errors.New("remote store rejected the write")
	ErrRemoteWrite       = errors.New("remote write failed")
	ErrStoryNotFound     = errors.New("story not found")
	ErrChapterNotFound   = errors.New("chapter not found")
	ErrProfileNotFound   = errors.New("profile not found")
	ErrAlreadyBookmarked = errors.New("story already bookmarked")
	ErrBookmarkNotFound  = errors.New("bookmark not found")
	ErrInvalidToken      = errors.New("invalid token")
	ErrProgressNotFound  = errors.New("reading progress not found")
)

// ValidationError represents a validation error with field and message information.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}
