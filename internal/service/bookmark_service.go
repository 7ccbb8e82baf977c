package service

import (
	"github.com/google/uuid"

	"jianstory-server/internal/domain"
)

type bookmarkService struct {
	bookmarkRepo domain.BookmarkRepository
	logger       domain.Logger
}

// NewBookmarkService creates a new bookmark service
func NewBookmarkService(bookmarkRepo domain.BookmarkRepository, logger domain.Logger) domain.BookmarkService {
	return &bookmarkService{
		bookmarkRepo: bookmarkRepo,
		logger:       logger,
	}
}

func (s *bookmarkService) AddBookmark(userID, storyID string, token string) (*domain.Bookmark, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if _, err := uuid.Parse(storyID); err != nil {
		return nil, domain.ErrInvalidTarget
	}
	return s.bookmarkRepo.Add(userID, storyID, token)
}

func (s *bookmarkService) RemoveBookmark(userID, storyID string, token string) error {
	if userID == "" {
		return domain.ErrUnauthenticated
	}
	if _, err := uuid.Parse(storyID); err != nil {
		return domain.ErrInvalidTarget
	}
	return s.bookmarkRepo.Remove(userID, storyID, token)
}

func (s *bookmarkService) ListBookmarks(userID string, token string) ([]*domain.Bookmark, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.bookmarkRepo.ListByUser(userID, token)
}
